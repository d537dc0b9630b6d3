package camera

import (
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"headpointer/internal/domain/entity"
	"headpointer/internal/domain/port"
)

// Replay отдаёт кадры из каталога с изображениями по порядку имён.
// Кадры приводятся к заданному размеру и переводятся в полутона.
type Replay struct {
	files  []string
	next   int
	width  int
	height int
	wait   time.Duration
	logger *slog.Logger
}

// OpenReplay читает список png и jpeg файлов каталога
func OpenReplay(dir string, width, height int, wait time.Duration, logger *slog.Logger) (*Replay, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read replay dir %s", dir)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, errors.Errorf("no frames in %s", dir)
	}
	sort.Strings(files)

	logger.Info("replay opened", "dir", dir, "frames", len(files))
	return &Replay{
		files:  files,
		width:  width,
		height: height,
		wait:   wait,
		logger: logger,
	}, nil
}

// NextFrame ждёт wait и возвращает следующий кадр
func (r *Replay) NextFrame(ctx context.Context) (*entity.Frame, error) {
	if r.next >= len(r.files) {
		return nil, entity.ErrEndOfStream
	}

	if r.next > 0 && r.wait > 0 {
		timer := time.NewTimer(r.wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := r.files[r.next]
	r.next++

	img, err := decodeImage(path)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	if b.Dx() != r.width || b.Dy() != r.height {
		img = resize.Resize(uint(r.width), uint(r.height), img, resize.Bilinear)
	}
	return entity.FrameFromImage(img), nil
}

// Len возвращает число кадров
func (r *Replay) Len() int {
	return len(r.files)
}

func (r *Replay) Close() error {
	r.next = len(r.files)
	return nil
}

func decodeImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open frame")
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "decode frame %s", filepath.Base(path))
	}
	return img, nil
}

// Проверка реализации интерфейса
var _ port.FrameSource = (*Replay)(nil)
