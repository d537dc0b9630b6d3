package port

import (
	"context"

	"headpointer/internal/domain/entity"
)

// FrameSource интерфейс источника кадров
type FrameSource interface {
	// NextFrame ждёт следующий кадр (ожидание ограничено) и возвращает его в полутонах.
	// По окончании потока возвращает entity.ErrEndOfStream.
	NextFrame(ctx context.Context) (*entity.Frame, error)

	// Close освобождает устройство
	Close() error
}
