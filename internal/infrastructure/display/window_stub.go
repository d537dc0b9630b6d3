//go:build !gocv
// +build !gocv

package display

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"headpointer/internal/domain/entity"
	"headpointer/internal/domain/port"
)

// Window заглушка без OpenCV
type Window struct{}

// NewWindow без тега gocv окно недоступно
func NewWindow(title string, mirror bool, waitMillis int, logger *slog.Logger) (*Window, error) {
	return nil, errors.Wrap(entity.ErrNotConfigured, "gocv build tag is not enabled")
}

func (w *Window) Bind(controls port.Controls) {}

func (w *Window) DrawOverlay(ctx context.Context, frame *entity.Frame, rects []entity.OverlayRect) error {
	return nil
}

func (w *Window) Close() error {
	return nil
}

var _ port.OverlayRenderer = (*Window)(nil)
