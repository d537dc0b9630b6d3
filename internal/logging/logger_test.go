package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Output: &buf})
	require.NoError(t, err)

	logger.Debug("move cursor", "dx", -1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "move cursor", rec["msg"])
	require.Equal(t, "DEBUG", rec["level"])
	require.EqualValues(t, -1, rec["dx"])
	require.Regexp(t, `Z$`, rec["time"])
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "WARN", Format: "text", Output: &buf})
	require.NoError(t, err)

	logger.Info("eye pair found")
	require.Empty(t, buf.String())

	logger.Warn("control queue is full")
	require.Contains(t, buf.String(), "control queue is full")
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	require.Error(t, err)

	_, err = New(Options{Format: "xml"})
	require.Error(t, err)
}
