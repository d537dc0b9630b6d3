package app

import (
	"headpointer/internal/domain/entity"
	"headpointer/internal/domain/port"
)

// EyeOutcome итог одного кадра для трекинга глаза
type EyeOutcome struct {
	Stage      entity.EyeStage // стадия после кадра
	Components int             // число компонент движения
	Acquired   bool            // пара глаз найдена на этом кадре
	Tracked    bool            // глаз искали по образцу на этом кадре
	Lost       bool            // образец не найден, возврат к поиску
	Reset      bool            // сброс по запросу пользователя
	Blink      bool            // моргание, нужен клик
	Score      float64         // оценка совпадения образца
	Window     entity.Rect     // окно поиска, по которому проверялось моргание
	Eye        entity.Rect     // положение глаза, по которому проверялось моргание
}

// EyeTracker конечный автомат поиска глаз и детекции моргания
type EyeTracker struct {
	engine       port.ImageEngine
	tracker      *TemplateTracker
	state        entity.TrackerState
	resetPending bool
}

// NewEyeTracker создаёт автомат в стадии поиска
func NewEyeTracker(engine port.ImageEngine) *EyeTracker {
	return &EyeTracker{
		engine:  engine,
		tracker: NewTemplateTracker(engine, entity.EyeSearchWindowSize),
		state:   entity.NewTrackerState(),
	}
}

// State возвращает текущее состояние
func (t *EyeTracker) State() entity.TrackerState {
	return t.state
}

// Reset запрашивает возврат к поиску на следующем кадре
func (t *EyeTracker) Reset() {
	t.resetPending = true
}

// Step обрабатывает кадр, prev должен быть предыдущим кадром того же размера.
func (t *EyeTracker) Step(frame, prev *entity.Frame) (EyeOutcome, error) {
	// сброс действует только на уже идущий трекинг
	reset := t.resetPending && t.state.Stage == entity.EyeTracking
	t.resetPending = false

	if t.state.Stage == entity.EyeSearching {
		t.state.Window = frame.Bounds()
	}

	mask, err := t.engine.MotionMask(frame, prev, t.state.Window)
	if err != nil {
		return EyeOutcome{}, err
	}
	comps := t.engine.Components(mask)
	out := EyeOutcome{Components: len(comps)}

	if t.state.Stage == entity.EyeSearching {
		if err := t.acquire(frame, comps, &out); err != nil {
			return EyeOutcome{}, err
		}
	}

	if t.state.Stage == entity.EyeTracking {
		if err := t.track(frame, comps, reset, &out); err != nil {
			return EyeOutcome{}, err
		}
	}

	out.Stage = t.state.Stage
	return out, nil
}

func (t *EyeTracker) acquire(frame *entity.Frame, comps []entity.Rect, out *EyeOutcome) error {
	eye, ok := IsEyePair(comps)
	if !ok {
		return nil
	}

	eye, err := eye.ClampInto(frame.Size())
	if err != nil {
		return err
	}
	tpl, err := entity.CaptureTemplate(frame, eye)
	if err != nil {
		return err
	}

	t.state = entity.TrackerState{
		Stage:    entity.EyeTracking,
		Window:   t.state.Window,
		Eye:      eye,
		Template: tpl,
	}
	out.Acquired = true
	return nil
}

func (t *EyeTracker) track(frame *entity.Frame, comps []entity.Rect, reset bool, out *EyeOutcome) error {
	res, window, err := t.tracker.Locate(frame, t.state.Template, t.state.Eye.Origin())
	if err != nil {
		return err
	}
	out.Tracked = true
	out.Score = res.Score

	lost := res.Score > entity.EyeLossThreshold
	if !lost {
		t.state.Window = window
		t.state.Eye = entity.RectAt(res.Absolute(window), t.state.Template.Size())
	}

	// моргание проверяется при любом исходе поиска образца
	out.Window = t.state.Window
	out.Eye = t.state.Eye
	out.Blink = IsBlink(comps, t.state.Window, t.state.Eye)

	if lost || reset {
		out.Lost = lost
		out.Reset = reset
		t.state = entity.NewTrackerState()
	}
	return nil
}
