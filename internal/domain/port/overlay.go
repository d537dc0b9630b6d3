package port

import (
	"context"

	"headpointer/internal/domain/entity"
)

// OverlayRenderer интерфейс отладочной отрисовки
type OverlayRenderer interface {
	// DrawOverlay показывает кадр с прямоугольниками окон поиска и совпадений
	DrawOverlay(ctx context.Context, frame *entity.Frame, rects []entity.OverlayRect) error
}
