package pointer

import (
	"context"
	"log/slog"
	"sync"

	"headpointer/internal/domain/entity"
	"headpointer/internal/domain/port"
)

// LogPointer пишет команды курсора в лог и копит итоговое смещение.
// Используется там, где нет доступа к мыши ОС.
type LogPointer struct {
	mu       sync.Mutex
	logger   *slog.Logger
	position entity.Point
	clicks   int
}

func NewLogPointer(logger *slog.Logger) *LogPointer {
	return &LogPointer{logger: logger}
}

func (p *LogPointer) MoveCursorBy(ctx context.Context, dx, dy int) error {
	p.mu.Lock()
	p.position = p.position.Add(entity.Point{X: dx, Y: dy})
	pos := p.position
	p.mu.Unlock()

	p.logger.DebugContext(ctx, "cursor moved", "dx", dx, "dy", dy, "x", pos.X, "y", pos.Y)
	return nil
}

func (p *LogPointer) ClickPrimaryButton(ctx context.Context) error {
	p.mu.Lock()
	p.clicks++
	clicks := p.clicks
	p.mu.Unlock()

	p.logger.InfoContext(ctx, "click", "total", clicks)
	return nil
}

// Position возвращает накопленное смещение курсора
func (p *LogPointer) Position() entity.Point {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position
}

// Clicks возвращает число кликов
func (p *LogPointer) Clicks() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clicks
}

var _ port.Pointer = (*LogPointer)(nil)
