package container

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"headpointer/config"
	telegram "headpointer/internal/api"
	app "headpointer/internal/application"
	"headpointer/internal/domain/port"
	"headpointer/internal/infrastructure/camera"
	"headpointer/internal/infrastructure/display"
	"headpointer/internal/infrastructure/notify"
	"headpointer/internal/infrastructure/pointer"
	"headpointer/internal/infrastructure/storage"
	"headpointer/internal/infrastructure/vision"
)

const (
	windowTitle       = "headpointer"
	notificationQueue = 16
)

type Container struct {
	Session           *app.Session
	SubscriberService *app.SubscriberService
	Bot               *telegram.Bot // nil без TELEGRAM_TOKEN

	logger  *slog.Logger
	async   *notify.Async
	closers []func() error
}

// New собирает сессию и её окружение по конфигурации
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *Container, err error) {
	c := &Container{logger: logger}
	defer func() {
		if err != nil {
			_ = c.Close()
		}
	}()

	engine := vision.NewDefaultEngine()
	c.closers = append(c.closers, engine.Close)

	overlay, window := c.overlay(cfg)

	source, err := c.source(cfg, window != nil)
	if err != nil {
		return nil, err
	}

	c.SubscriberService = app.NewSubscriberService(storage.NewMemorySubscriberRepository())

	notifiers := notify.Multi{notify.NewLogNotifier(logger)}
	if cfg.TelegramToken != "" {
		c.Bot, err = telegram.NewBot(cfg.TelegramToken, c.SubscriberService, logger)
		if err != nil {
			return nil, err
		}
		c.async = notify.NewAsync(c.Bot, notificationQueue, logger)
		notifiers = append(notifiers, c.async)

		if cfg.TelegramChatID != 0 {
			if _, err := c.SubscriberService.Subscribe(ctx, cfg.TelegramChatID, cfg.TelegramChatID); err != nil {
				return nil, errors.Wrap(err, "subscribe start-up chat")
			}
		}
	}

	c.Session = app.NewSession(app.SessionDeps{
		Engine:   engine,
		Source:   source,
		Pointer:  pointer.NewLogPointer(logger),
		Overlay:  overlay,
		Notifier: notifiers,
		Logger:   logger,
	}, app.SessionOptions{
		NoseFixedReference: cfg.NoseFixedReference,
	})

	if window != nil {
		window.Bind(c.Session)
	}
	if c.Bot != nil {
		c.Bot.Bind(c.Session)
	}
	return c, nil
}

// overlay открывает окно предпросмотра, а без него пишет разметку в лог
func (c *Container) overlay(cfg *config.Config) (port.OverlayRenderer, *display.Window) {
	if !cfg.Window {
		return display.NewLogRenderer(c.logger), nil
	}

	window, err := display.NewWindow(windowTitle, cfg.Mirror, int(cfg.FrameWait.Milliseconds()), c.logger)
	if err != nil {
		c.logger.Warn("preview window unavailable, overlay goes to debug log", "error", err)
		return display.NewLogRenderer(c.logger), nil
	}
	c.closers = append(c.closers, window.Close)
	return window, window
}

// source открывает камеру или каталог с кадрами. Окно само ждёт клавишу,
// поэтому повтор кадров с окном не делает своей паузы.
func (c *Container) source(cfg *config.Config, windowWaits bool) (port.FrameSource, error) {
	if cfg.ReplayDir != "" {
		wait := cfg.FrameWait
		if windowWaits {
			wait = 0
		}
		replay, err := camera.OpenReplay(cfg.ReplayDir, cfg.FrameWidth, cfg.FrameHeight, wait, c.logger)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, replay.Close)
		return replay, nil
	}

	webcam, err := camera.OpenWebcam(cfg.Camera, cfg.FrameWidth, cfg.FrameHeight, c.logger)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, webcam.Close)
	return webcam, nil
}

// Run запускает бота и доставку уведомлений в фоне, а цикл кадров в текущей горутине
func (c *Container) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	if c.async != nil {
		g.Go(func() error {
			c.async.Run(gctx)
			return nil
		})
	}
	if c.Bot != nil {
		g.Go(func() error {
			return c.Bot.Run(gctx)
		})
	}

	err := c.Session.Run(gctx)
	cancel()
	if werr := g.Wait(); err == nil {
		err = werr
	}
	return err
}

// Close освобождает ресурсы в обратном порядке
func (c *Container) Close() error {
	var first error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}
