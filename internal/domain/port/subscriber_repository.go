package port

import (
	"context"

	"headpointer/internal/domain/entity"
)

// SubscriberRepository интерфейс хранилища подписчиков
type SubscriberRepository interface {
	// Get возвращает подписчика по ID, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.Subscriber, error)

	// Save сохраняет состояние подписчика
	Save(ctx context.Context, subscriber *entity.Subscriber) error

	// UpdateState обновляет состояние подписчика
	UpdateState(ctx context.Context, userID int64, state entity.SubscriberState) error

	// List возвращает всех подписчиков
	List(ctx context.Context) ([]*entity.Subscriber, error)
}
