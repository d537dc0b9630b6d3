//go:build !gocv
// +build !gocv

package vision

// NewDefaultEngine возвращает движок на чистом Go (сборка без тега gocv)
func NewDefaultEngine() ClosableEngine {
	return NewEngine()
}
