package entity

import "time"

// EventKind тип события трекинга
type EventKind string

const (
	EventNoseArmed   EventKind = "nose_armed"   // Выбрана область, трекинг носа запущен
	EventNoseLost    EventKind = "nose_lost"    // Объект потерян
	EventEyeAcquired EventKind = "eye_acquired" // Найдена пара глаз
	EventEyeLost     EventKind = "eye_lost"     // Глаз потерян, снова ищем
	EventBlink       EventKind = "blink"        // Моргание, выполнен клик
)

// Event событие трекинга для уведомлений
type Event struct {
	Kind  EventKind
	Frame int64
	At    time.Time
	Point Point
}

// Message возвращает текст события для пользователя
func (e Event) Message() string {
	switch e.Kind {
	case EventNoseArmed:
		return "Template selected. Start tracking..."
	case EventNoseLost:
		return "Lost object."
	case EventEyeAcquired:
		return "Eyes found. Watching for blinks."
	case EventEyeLost:
		return "Eye lost. Searching again."
	case EventBlink:
		return "Eye blinked!"
	default:
		return string(e.Kind)
	}
}
