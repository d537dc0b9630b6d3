package display

import (
	"headpointer/internal/domain/entity"
	"headpointer/internal/domain/port"
)

const (
	keyEsc    = 27
	keyReset  = 'r'
	keySelect = 's'
	keyQuit   = 'q'
)

// dispatchKey передаёт нажатие в сессию. Возвращает true, если пользователь
// хочет выбрать область мышью.
func dispatchKey(key int, controls port.Controls) bool {
	if key < 0 || controls == nil {
		return false
	}
	switch key & 0xff {
	case keyEsc, keyQuit:
		controls.Stop()
	case keyReset:
		controls.RequestReset()
	case keySelect:
		return true
	}
	return false
}

// selectionCenter возвращает центр выделенной области в координатах исходного кадра.
// Пустое выделение (отмена) даёт false.
func selectionCenter(roi entity.Rect, width int, mirror bool) (entity.Point, bool) {
	if roi.Empty() {
		return entity.Point{}, false
	}
	c := roi.Center()
	if mirror {
		c.X = width - 1 - c.X
	}
	return c, true
}
