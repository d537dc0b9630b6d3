//go:build gocv
// +build gocv

package vision

// NewDefaultEngine возвращает движок на OpenCV (сборка с тегом gocv)
func NewDefaultEngine() ClosableEngine {
	return NewGoCVEngine()
}
