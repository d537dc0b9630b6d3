package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"headpointer/config"
	"headpointer/internal/container"
	"headpointer/internal/logging"
)

type flags struct {
	camera    int
	replay    string
	width     int
	height    int
	wait      time.Duration
	window    bool
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "headpointer",
		Short:         "Управление курсором носом, клик морганием",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := f.apply(cmd, cfg); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&f.camera, "camera", 0, "индекс веб-камеры")
	fs.StringVar(&f.replay, "replay", "", "каталог с кадрами вместо камеры")
	fs.IntVar(&f.width, "width", 300, "ширина кадра")
	fs.IntVar(&f.height, "height", 250, "высота кадра")
	fs.DurationVar(&f.wait, "wait", 10*time.Millisecond, "ожидание на каждом кадре")
	fs.BoolVar(&f.window, "window", true, "показывать окно предпросмотра")
	fs.StringVar(&f.logLevel, "log-level", "info", "уровень логов: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "text", "формат логов: text или json")
	return cmd
}

// apply переносит явно заданные флаги поверх окружения
func (f *flags) apply(cmd *cobra.Command, cfg *config.Config) error {
	fs := cmd.Flags()
	if fs.Changed("camera") {
		cfg.Camera = f.camera
	}
	if fs.Changed("replay") {
		cfg.ReplayDir = f.replay
	}
	if fs.Changed("width") {
		cfg.FrameWidth = f.width
	}
	if fs.Changed("height") {
		cfg.FrameHeight = f.height
	}
	if fs.Changed("wait") {
		cfg.FrameWait = f.wait
	}
	if fs.Changed("window") {
		cfg.Window = f.window
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if fs.Changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
	return cfg.Validate()
}

func run(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stderr,
	})
	if err != nil {
		return err
	}

	c, err := container.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("start-up failed", "error", err)
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Warn("close failed", "error", err)
		}
	}()

	logger.Info("headpointer is running", "session", c.Session.ID(), "replay", cfg.ReplayDir != "", "telegram", c.Bot != nil)
	if err := c.Run(ctx); err != nil {
		logger.Error("session failed", "error", err)
		return err
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
