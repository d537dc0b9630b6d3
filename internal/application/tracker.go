package app

import (
	"headpointer/internal/domain/entity"
	"headpointer/internal/domain/port"
)

// TemplateTracker ищет неподвижный образец в окне вокруг последнего положения.
// Состояния не хранит.
type TemplateTracker struct {
	engine port.ImageEngine
	window entity.Size
}

// NewTemplateTracker создаёт трекер с окном поиска заданного размера
func NewTemplateTracker(engine port.ImageEngine, window entity.Size) *TemplateTracker {
	return &TemplateTracker{engine: engine, window: window}
}

// Locate строит окно с центром на образце, стоящем в точке anchor, сдвигает его
// внутрь кадра и ищет в нём образец. Положение в результате отсчитывается от угла окна.
func (t *TemplateTracker) Locate(frame *entity.Frame, tpl entity.Template, anchor entity.Point) (entity.MatchResult, entity.Rect, error) {
	ts := tpl.Size()
	size := entity.Size{
		Width:  max(t.window.Width, ts.Width),
		Height: max(t.window.Height, ts.Height),
	}

	window, err := entity.RectAt(anchor, ts).CenteredOn(size).ClampInto(frame.Size())
	if err != nil {
		return entity.MatchResult{}, entity.Rect{}, err
	}

	res, err := t.engine.MatchTemplate(frame, tpl, window)
	if err != nil {
		return entity.MatchResult{}, window, err
	}
	return res, window, nil
}

// Window возвращает размер окна поиска
func (t *TemplateTracker) Window() entity.Size {
	return t.window
}
