package port

import "headpointer/internal/domain/entity"

// Controls команды пользователя для сессии. Методы можно вызывать из любой горутины.
type Controls interface {
	// SelectRegion включает трекинг носа вокруг точки
	SelectRegion(center entity.Point)

	// RequestReset возвращает трекинг глаза в стадию поиска
	RequestReset()

	// Stop завершает цикл на границе кадра
	Stop()
}
