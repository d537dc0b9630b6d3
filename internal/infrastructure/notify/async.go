package notify

import (
	"context"
	"log/slog"

	"headpointer/internal/domain/entity"
	"headpointer/internal/domain/port"
)

// Async отдаёт события медленному получателю (сеть) из отдельной горутины,
// чтобы цикл кадров не ждал. При переполнении очереди событие теряется.
type Async struct {
	next   port.EventNotifier
	queue  chan entity.Event
	logger *slog.Logger
}

func NewAsync(next port.EventNotifier, size int, logger *slog.Logger) *Async {
	if size <= 0 {
		size = 1
	}
	return &Async{
		next:   next,
		queue:  make(chan entity.Event, size),
		logger: logger,
	}
}

func (a *Async) Notify(ctx context.Context, ev entity.Event) error {
	select {
	case a.queue <- ev:
	default:
		a.logger.Warn("notification queue is full, event dropped", "event", string(ev.Kind))
	}
	return nil
}

// Run доставляет события до отмены контекста
func (a *Async) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-a.queue:
			if err := a.next.Notify(ctx, ev); err != nil {
				a.logger.Warn("notification failed", "event", string(ev.Kind), "error", err)
			}
		}
	}
}

var _ port.EventNotifier = (*Async)(nil)
