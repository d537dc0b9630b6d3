//go:build gocv
// +build gocv

package camera

import (
	"context"
	"image"
	"log/slog"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"headpointer/internal/domain/entity"
	"headpointer/internal/domain/port"
)

// Webcam источник кадров с веб-камеры через OpenCV
type Webcam struct {
	capture *gocv.VideoCapture
	frame   gocv.Mat
	gray    gocv.Mat
	width   int
	height  int
	logger  *slog.Logger
}

// OpenWebcam открывает камеру и задаёт размер кадра
func OpenWebcam(device, width, height int, logger *slog.Logger) (*Webcam, error) {
	capture, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open camera %d", device)
	}
	if !capture.IsOpened() {
		_ = capture.Close()
		return nil, errors.Errorf("camera %d is not available", device)
	}

	capture.Set(gocv.VideoCaptureFrameWidth, float64(width))
	capture.Set(gocv.VideoCaptureFrameHeight, float64(height))

	logger.Info("camera opened", "device", device,
		"width", capture.Get(gocv.VideoCaptureFrameWidth),
		"height", capture.Get(gocv.VideoCaptureFrameHeight))

	return &Webcam{
		capture: capture,
		frame:   gocv.NewMat(),
		gray:    gocv.NewMat(),
		width:   width,
		height:  height,
		logger:  logger,
	}, nil
}

// NextFrame читает кадр и переводит его в полутона
func (w *Webcam) NextFrame(ctx context.Context) (*entity.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if ok := w.capture.Read(&w.frame); !ok || w.frame.Empty() {
		return nil, errors.Wrap(entity.ErrEndOfStream, "camera read failed")
	}

	// камера может отдать кадр другого размера
	if w.frame.Cols() != w.width || w.frame.Rows() != w.height {
		gocv.Resize(w.frame, &w.frame, image.Pt(w.width, w.height), 0, 0, gocv.InterpolationLinear)
	}
	gocv.CvtColor(w.frame, &w.gray, gocv.ColorBGRToGray)

	pix, err := w.gray.DataPtrUint8()
	if err != nil {
		return nil, errors.Wrap(err, "gray frame data")
	}

	f := entity.NewFrame(w.gray.Cols(), w.gray.Rows())
	copy(f.Pix, pix)
	return f, nil
}

// Close освобождает камеру
func (w *Webcam) Close() error {
	_ = w.frame.Close()
	_ = w.gray.Close()
	return w.capture.Close()
}

// Проверка реализации интерфейса
var _ port.FrameSource = (*Webcam)(nil)
