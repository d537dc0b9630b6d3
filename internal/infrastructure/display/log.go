package display

import (
	"context"
	"log/slog"

	"headpointer/internal/domain/entity"
	"headpointer/internal/domain/port"
)

// LogRenderer пишет разметку кадра в отладочный лог вместо окна
type LogRenderer struct {
	logger *slog.Logger
	frames int64
}

func NewLogRenderer(logger *slog.Logger) *LogRenderer {
	return &LogRenderer{logger: logger}
}

func (r *LogRenderer) DrawOverlay(ctx context.Context, frame *entity.Frame, rects []entity.OverlayRect) error {
	r.frames++
	if !r.logger.Enabled(ctx, slog.LevelDebug) {
		return nil
	}

	attrs := make([]any, 0, len(rects)+1)
	attrs = append(attrs, slog.Int64("frame", r.frames))
	for _, rect := range rects {
		attrs = append(attrs, slog.String(rect.Label, rect.Rect.String()))
	}
	r.logger.DebugContext(ctx, "overlay", attrs...)
	return nil
}

var _ port.OverlayRenderer = (*LogRenderer)(nil)
