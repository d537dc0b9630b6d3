package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"headpointer/config"
)

func TestFlagsOverrideOnlyWhenSet(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--replay", "/data/frames", "--wait", "40ms", "--log-level", "DEBUG"}))

	cfg := config.Default()
	cfg.Camera = 3
	var f flags
	f.replay, _ = cmd.Flags().GetString("replay")
	f.wait, _ = cmd.Flags().GetDuration("wait")
	f.logLevel, _ = cmd.Flags().GetString("log-level")

	require.NoError(t, f.apply(cmd, cfg))
	require.Equal(t, 3, cfg.Camera)
	require.Equal(t, "/data/frames", cfg.ReplayDir)
	require.Equal(t, 40*time.Millisecond, cfg.FrameWait)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, 300, cfg.FrameWidth)
}

func TestFlagsRejectInvalidValues(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--width", "0"}))

	f := flags{width: 0}
	require.Error(t, f.apply(cmd, config.Default()))
}
