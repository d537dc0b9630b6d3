package vision

import "headpointer/internal/domain/port"

// ClosableEngine движок, который нужно закрыть после использования
type ClosableEngine interface {
	port.ImageEngine
	Close() error
}
