package app

import (
	"headpointer/internal/domain/entity"
	"headpointer/internal/domain/port"
)

// Overflow стороны внутреннего окна, за которые вышел образец
type Overflow struct {
	Top    bool
	Right  bool
	Bottom bool
	Left   bool
}

// Any сообщает, что образец вышел хотя бы за одну сторону
func (o Overflow) Any() bool {
	return o.Top || o.Right || o.Bottom || o.Left
}

// NoseOutcome итог одного кадра для трекинга носа
type NoseOutcome struct {
	Armed          bool        // трекинг активен после кадра
	Lost           bool        // объект потерян на этом кадре
	Moved          bool        // нужно сдвинуть курсор
	DX             int         // сдвиг курсора по X
	DY             int         // сдвиг курсора по Y
	Score          float64     // оценка совпадения образца
	Flags          Overflow    // выход образца за внутреннее окно
	Match          entity.Rect // найденное положение образца
	SearchWindow   entity.Rect // внутреннее окно
	BoundaryWindow entity.Rect // внешнее окно
}

// NosePointer переводит смещение носа относительно внутреннего окна в движение курсора.
// Пока образец за пределами окна, скорость растёт на единицу за кадр;
// как только он вернулся внутрь, скорость обнуляется.
type NosePointer struct {
	tracker        *TemplateTracker
	fixedReference bool
	state          entity.NoseTrackState
}

// NewNosePointer создаёт выключенный трекер носа. При fixedReference окна
// остаются вокруг точки выбора, иначе следуют за последним совпадением.
func NewNosePointer(engine port.ImageEngine, fixedReference bool) *NosePointer {
	return &NosePointer{
		tracker:        NewTemplateTracker(engine, entity.NoseBoundaryWindowSize),
		fixedReference: fixedReference,
	}
}

// State возвращает текущее состояние
func (n *NosePointer) State() entity.NoseTrackState {
	return n.state
}

// Armed сообщает, что трекинг включён
func (n *NosePointer) Armed() bool {
	return n.state.Armed
}

// Arm захватывает образец 10×10 с центром в точке center и включает трекинг.
// Скорость обнуляется.
func (n *NosePointer) Arm(frame *entity.Frame, center entity.Point) error {
	edge := center.Sub(entity.Point{X: entity.NoseTemplateWidth / 2, Y: entity.NoseTemplateHeight / 2})
	r, err := entity.RectAt(edge, entity.NoseTemplateSize).ClampInto(frame.Size())
	if err != nil {
		return err
	}
	tpl, err := entity.CaptureTemplate(frame, r)
	if err != nil {
		return err
	}

	n.state = entity.NoseTrackState{
		Armed:    true,
		Template: tpl,
		Origin:   r.Origin(),
		Anchor:   r.Origin(),
	}
	return nil
}

// Disarm выключает трекинг и забывает образец
func (n *NosePointer) Disarm() {
	n.state = entity.NoseTrackState{}
}

// Step ищет образец на кадре и считает сдвиг курсора
func (n *NosePointer) Step(frame *entity.Frame) (NoseOutcome, error) {
	if !n.state.Armed {
		return NoseOutcome{}, nil
	}

	ref := n.state.Anchor
	if n.fixedReference {
		ref = n.state.Origin
	}
	search := entity.RectAt(ref, entity.NoseTemplateSize).CenteredOn(entity.NoseSearchWindowSize)

	res, boundary, err := n.tracker.Locate(frame, n.state.Template, ref)
	if err != nil {
		return NoseOutcome{}, err
	}
	n.state.SearchWindow = search
	n.state.BoundaryWindow = boundary

	out := NoseOutcome{
		Armed:          true,
		Score:          res.Score,
		SearchWindow:   search,
		BoundaryWindow: boundary,
	}

	if res.Score > entity.NoseLossThreshold {
		n.Disarm()
		out.Armed = false
		out.Lost = true
		return out, nil
	}

	edge := res.Absolute(boundary)
	match := entity.RectAt(edge, entity.NoseTemplateSize)
	out.Match = match
	out.Flags = Overflow{
		Top:    match.Y < search.Y,
		Right:  match.Right() > search.Right(),
		Bottom: match.Bottom() > search.Bottom(),
		Left:   match.X < search.X,
	}

	n.applyFlags(out.Flags)
	if out.Flags.Any() {
		out.Moved = true
		out.DX = n.state.VelocityX
		out.DY = n.state.VelocityY
	}

	n.state.Anchor = edge
	return out, nil
}

// applyFlags копит скорость. Кадр не отражён, поэтому выход вправо уменьшает скорость по X.
func (n *NosePointer) applyFlags(f Overflow) {
	if !f.Any() {
		n.state.VelocityX = 0
		n.state.VelocityY = 0
		return
	}
	if f.Top {
		n.state.VelocityY--
	}
	if f.Right {
		n.state.VelocityX--
	}
	if f.Bottom {
		n.state.VelocityY++
	}
	if f.Left {
		n.state.VelocityX++
	}
}
