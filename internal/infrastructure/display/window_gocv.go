//go:build gocv
// +build gocv

package display

import (
	"context"
	"image"
	"log/slog"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"headpointer/internal/domain/entity"
	"headpointer/internal/domain/port"
)

// Window окно предпросмотра с разметкой. Читает клавиши и передаёт их сессии:
// ESC или q останавливает, r сбрасывает трекинг глаза, s выбирает область носа.
type Window struct {
	window   *gocv.Window
	canvas   gocv.Mat
	mirror   bool
	wait     int
	controls port.Controls
	logger   *slog.Logger
}

// NewWindow открывает окно. wait задаёт ожидание клавиши в миллисекундах.
func NewWindow(title string, mirror bool, waitMillis int, logger *slog.Logger) (*Window, error) {
	if waitMillis <= 0 {
		waitMillis = 1
	}
	return &Window{
		window: gocv.NewWindow(title),
		canvas: gocv.NewMat(),
		mirror: mirror,
		wait:   waitMillis,
		logger: logger,
	}, nil
}

// Bind подключает сессию, которой передаются клавиши
func (w *Window) Bind(controls port.Controls) {
	w.controls = controls
}

// DrawOverlay рисует кадр с прямоугольниками и обрабатывает клавиши
func (w *Window) DrawOverlay(ctx context.Context, frame *entity.Frame, rects []entity.OverlayRect) error {
	gray, err := gocv.NewMatFromBytes(frame.Height, frame.Width, gocv.MatTypeCV8U, frame.Pix)
	if err != nil {
		return errors.Wrap(err, "frame to mat")
	}
	defer gray.Close()

	gocv.CvtColor(gray, &w.canvas, gocv.ColorGrayToBGR)
	for _, r := range rects {
		gocv.Rectangle(&w.canvas, r.Rect.Image(), r.Color, 1)
	}
	// отражение только для показа, координаты трекинга не меняются
	if w.mirror {
		gocv.Flip(w.canvas, &w.canvas, 1)
	}

	w.window.IMShow(w.canvas)
	key := w.window.WaitKey(w.wait)
	if dispatchKey(key, w.controls) {
		w.selectRegion(frame.Width)
	}
	return nil
}

func (w *Window) selectRegion(width int) {
	roi := entity.RectFromImage(w.window.SelectROI(w.canvas))
	center, ok := selectionCenter(roi, width, w.mirror)
	if !ok {
		w.logger.Debug("region selection cancelled")
		return
	}
	w.logger.Debug("region selected", "roi", roi.String(), "center_x", center.X, "center_y", center.Y)
	w.controls.SelectRegion(center)
}

// Close закрывает окно
func (w *Window) Close() error {
	_ = w.canvas.Close()
	return w.window.Close()
}

var _ port.OverlayRenderer = (*Window)(nil)
