package notify

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"headpointer/internal/domain/entity"
	"headpointer/internal/domain/port"
)

// LogNotifier пишет события трекинга в лог
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify пишет событие в лог. Потеря глаза и моргание идут на уровне debug.
func (n *LogNotifier) Notify(ctx context.Context, ev entity.Event) error {
	level := slog.LevelInfo
	if ev.Kind == entity.EventEyeLost || ev.Kind == entity.EventBlink {
		level = slog.LevelDebug
	}
	n.logger.Log(ctx, level, ev.Message(),
		"event", string(ev.Kind),
		"frame", ev.Frame,
		"x", ev.Point.X,
		"y", ev.Point.Y,
	)
	return nil
}

// Multi рассылает событие всем получателям. Ошибка одного не мешает остальным.
type Multi []port.EventNotifier

func (m Multi) Notify(ctx context.Context, ev entity.Event) error {
	var first error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, ev); err != nil && first == nil {
			first = errors.Wrapf(err, "notify %s", ev.Kind)
		}
	}
	return first
}

var (
	_ port.EventNotifier = (*LogNotifier)(nil)
	_ port.EventNotifier = Multi(nil)
)
