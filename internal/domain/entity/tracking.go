package entity

// MatchResult результат сопоставления образца с окном поиска.
type MatchResult struct {
	Location Point   // положение образца относительно окна поиска
	Score    float64 // нормированная непохожесть, 0 при полном совпадении, не больше 1
}

// Absolute переводит положение в координаты кадра
func (m MatchResult) Absolute(window Rect) Point {
	return window.Origin().Add(m.Location)
}

// EyeStage стадия трекинга глаза
type EyeStage string

const (
	EyeSearching EyeStage = "searching" // Поиск пары глаз по движению
	EyeTracking  EyeStage = "tracking"  // Глаз найден, ждём моргания
)

// TrackerState состояние трекинга глаза
type TrackerState struct {
	Stage    EyeStage // текущая стадия
	Window   Rect     // окно поиска движения
	Eye      Rect     // последнее известное положение глаза
	Template Template // образец глаза, пуст в стадии поиска
}

// NewTrackerState создаёт состояние в стадии поиска
func NewTrackerState() TrackerState {
	return TrackerState{Stage: EyeSearching}
}

// NoseTrackState состояние трекинга носа
type NoseTrackState struct {
	Armed          bool     // трекинг включён
	Template       Template // образец носа
	Origin         Point    // угол образца в момент выбора области
	Anchor         Point    // угол образца по последнему совпадению
	SearchWindow   Rect     // внутреннее окно: выход за него двигает курсор
	BoundaryWindow Rect     // внешнее окно, в котором ищется образец
	VelocityX      int      // накопленная скорость курсора по X
	VelocityY      int      // накопленная скорость курсора по Y
}
