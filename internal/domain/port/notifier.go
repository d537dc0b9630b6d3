package port

import (
	"context"

	"headpointer/internal/domain/entity"
)

// EventNotifier интерфейс доставки событий трекинга
type EventNotifier interface {
	Notify(ctx context.Context, event entity.Event) error
}
