//go:build gocv
// +build gocv

package vision

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"headpointer/internal/domain/entity"
	"headpointer/internal/domain/port"
)

// GoCVEngine реализация примитивов на OpenCV
type GoCVEngine struct {
	kernel gocv.Mat
}

// NewGoCVEngine создаёт движок с крестообразным структурным элементом 3×3
func NewGoCVEngine() *GoCVEngine {
	return &GoCVEngine{
		kernel: gocv.GetStructuringElement(gocv.MorphCross,
			image.Pt(entity.StructuringElementSize, entity.StructuringElementSize)),
	}
}

// MotionMask строит маску движения внутри окна
func (e *GoCVEngine) MotionMask(cur, prev *entity.Frame, window entity.Rect) (*entity.Frame, error) {
	if cur == nil || !cur.SameSize(prev) {
		return nil, errors.Wrapf(entity.ErrPrecondition, "motion mask: frame sizes differ")
	}

	win := intersect(window, cur.Bounds())
	if win.Empty() {
		return entity.NewFrame(cur.Width, cur.Height), nil
	}

	curMat, err := toMat(cur)
	if err != nil {
		return nil, err
	}
	defer curMat.Close()

	prevMat, err := toMat(prev)
	if err != nil {
		return nil, err
	}
	defer prevMat.Close()

	curROI := curMat.Region(win.Image())
	defer curROI.Close()
	prevROI := prevMat.Region(win.Image())
	defer prevROI.Close()

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(curROI, prevROI, &diff)

	// ThresholdBinary оставляет значения строго больше порога
	gocv.Threshold(diff, &diff, float32(entity.MotionThreshold-1), 255, gocv.ThresholdBinary)

	opened := gocv.NewMat()
	defer opened.Close()
	gocv.MorphologyEx(diff, &opened, gocv.MorphOpen, e.kernel)

	mask := gocv.Zeros(cur.Height, cur.Width, gocv.MatTypeCV8U)
	defer mask.Close()
	maskROI := mask.Region(win.Image())
	opened.CopyTo(&maskROI)
	maskROI.Close()

	return &entity.Frame{Width: cur.Width, Height: cur.Height, Pix: mask.ToBytes()}, nil
}

// Components размечает 4-связные области маски и возвращает их ограничивающие
// прямоугольники в порядке первого пикселя при обходе строк
func (e *GoCVEngine) Components(mask *entity.Frame) []entity.Rect {
	comps := make([]entity.Rect, 0)
	if mask == nil {
		return comps
	}

	mat, err := toMat(mask)
	if err != nil {
		return comps
	}
	defer mat.Close()

	labels := gocv.NewMat()
	defer labels.Close()
	stats := gocv.NewMat()
	defer stats.Close()
	centroids := gocv.NewMat()
	defer centroids.Close()

	n := gocv.ConnectedComponentsWithStatsWithParams(mat, &labels, &stats, &centroids,
		4, gocv.MatTypeCV32S, gocv.CCL_DEFAULT)
	if n <= 1 {
		return comps
	}

	// метка 0 это фон
	seen := make([]bool, n)
	seen[0] = true
	for y := 0; y < mask.Height && len(comps) < n-1; y++ {
		for x := 0; x < mask.Width; x++ {
			label := int(labels.GetIntAt(y, x))
			if seen[label] {
				continue
			}
			seen[label] = true
			comps = append(comps, entity.Rect{
				X:      int(stats.GetIntAt(label, int(gocv.CC_STAT_LEFT))),
				Y:      int(stats.GetIntAt(label, int(gocv.CC_STAT_TOP))),
				Width:  int(stats.GetIntAt(label, int(gocv.CC_STAT_WIDTH))),
				Height: int(stats.GetIntAt(label, int(gocv.CC_STAT_HEIGHT))),
			})
		}
	}
	return comps
}

// MatchTemplate ищет образец в окне методом TM_SQDIFF_NORMED
func (e *GoCVEngine) MatchTemplate(frame *entity.Frame, tpl entity.Template, window entity.Rect) (entity.MatchResult, error) {
	if tpl.Empty() {
		return entity.MatchResult{}, errors.Wrap(entity.ErrPrecondition, "match template: empty template")
	}
	if err := checkWindow(frame, tpl.Size(), window); err != nil {
		return entity.MatchResult{}, err
	}

	img, err := toMat(frame)
	if err != nil {
		return entity.MatchResult{}, err
	}
	defer img.Close()

	roi := img.Region(window.Image())
	defer roi.Close()

	ts := tpl.Size()
	tplMat, err := gocv.NewMatFromBytes(ts.Height, ts.Width, gocv.MatTypeCV8U, tpl.Pix())
	if err != nil {
		return entity.MatchResult{}, errors.Wrap(err, "template to mat")
	}
	defer tplMat.Close()

	result := gocv.NewMat()
	defer result.Close()
	noMask := gocv.NewMat()
	defer noMask.Close()
	gocv.MatchTemplate(roi, tplMat, &result, gocv.TmSqdiffNormed, noMask)

	minVal, _, minLoc, _ := gocv.MinMaxLoc(result)
	return entity.MatchResult{
		Location: entity.Point{X: minLoc.X, Y: minLoc.Y},
		Score:    clampScore(float64(minVal)),
	}, nil
}

// Close освобождает структурный элемент
func (e *GoCVEngine) Close() error {
	return e.kernel.Close()
}

// toMat оборачивает кадр в gocv.Mat без копирования пикселей
func toMat(f *entity.Frame) (gocv.Mat, error) {
	mat, err := gocv.NewMatFromBytes(f.Height, f.Width, gocv.MatTypeCV8U, f.Pix)
	if err != nil {
		return gocv.NewMat(), errors.Wrap(err, "frame to mat")
	}
	return mat, nil
}

// Проверка реализации интерфейса
var _ port.ImageEngine = (*GoCVEngine)(nil)
