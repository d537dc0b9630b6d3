//go:build !gocv
// +build !gocv

package camera

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"headpointer/internal/domain/entity"
	"headpointer/internal/domain/port"
)

// Webcam заглушка без OpenCV
type Webcam struct{}

// OpenWebcam без тега gocv камера недоступна
func OpenWebcam(device, width, height int, logger *slog.Logger) (*Webcam, error) {
	return nil, errors.Wrap(entity.ErrNotConfigured, "gocv build tag is not enabled, use replay instead")
}

func (w *Webcam) NextFrame(ctx context.Context) (*entity.Frame, error) {
	return nil, errors.Wrap(entity.ErrNotConfigured, "gocv build tag is not enabled")
}

func (w *Webcam) Close() error {
	return nil
}

var _ port.FrameSource = (*Webcam)(nil)
