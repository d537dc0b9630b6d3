package vision

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"headpointer/internal/domain/entity"
	"headpointer/internal/domain/port"
)

// Engine реализация примитивов обработки изображений на чистом Go.
// Состояния не хранит: одинаковые входы дают одинаковый результат.
type Engine struct{}

// NewEngine создаёт движок на чистом Go
func NewEngine() *Engine {
	return &Engine{}
}

// MotionMask строит маску движения: модуль разности кадров внутри окна,
// порог entity.MotionThreshold и морфологическое открытие крестом 3×3.
// Вне окна маска нулевая.
func (e *Engine) MotionMask(cur, prev *entity.Frame, window entity.Rect) (*entity.Frame, error) {
	if cur == nil || !cur.SameSize(prev) {
		return nil, errors.Wrapf(entity.ErrPrecondition, "motion mask: frame sizes differ")
	}

	mask := entity.NewFrame(cur.Width, cur.Height)
	win := intersect(window, cur.Bounds())
	if win.Empty() {
		return mask, nil
	}

	binary := entity.NewFrame(cur.Width, cur.Height)
	for y := win.Y; y < win.Bottom(); y++ {
		for x := win.X; x < win.Right(); x++ {
			d := int(cur.At(x, y)) - int(prev.At(x, y))
			if d < 0 {
				d = -d
			}
			if d >= entity.MotionThreshold {
				binary.Set(x, y, 255)
			}
		}
	}

	eroded := erodeCross(binary, win)
	dilateCross(eroded, win, mask)
	return mask, nil
}

// erodeCross оставляет пиксель, если он и все четыре соседа внутри окна установлены.
// Соседи за пределами окна не мешают, как граница по умолчанию у OpenCV.
func erodeCross(src *entity.Frame, win entity.Rect) *entity.Frame {
	dst := entity.NewFrame(src.Width, src.Height)
	for y := win.Y; y < win.Bottom(); y++ {
		for x := win.X; x < win.Right(); x++ {
			if src.At(x, y) == 0 {
				continue
			}
			if x > win.X && src.At(x-1, y) == 0 {
				continue
			}
			if x < win.Right()-1 && src.At(x+1, y) == 0 {
				continue
			}
			if y > win.Y && src.At(x, y-1) == 0 {
				continue
			}
			if y < win.Bottom()-1 && src.At(x, y+1) == 0 {
				continue
			}
			dst.Set(x, y, 255)
		}
	}
	return dst
}

// dilateCross устанавливает пиксель, если он или любой из четырёх соседей внутри окна установлен
func dilateCross(src *entity.Frame, win entity.Rect, dst *entity.Frame) {
	for y := win.Y; y < win.Bottom(); y++ {
		for x := win.X; x < win.Right(); x++ {
			if src.At(x, y) != 0 ||
				(x > win.X && src.At(x-1, y) != 0) ||
				(x < win.Right()-1 && src.At(x+1, y) != 0) ||
				(y > win.Y && src.At(x, y-1) != 0) ||
				(y < win.Bottom()-1 && src.At(x, y+1) != 0) {
				dst.Set(x, y, 255)
			}
		}
	}
}

// Components находит 4-связные области маски в порядке обхода строк.
// Пустая маска даёт пустой список.
func (e *Engine) Components(mask *entity.Frame) []entity.Rect {
	comps := make([]entity.Rect, 0)
	if mask == nil {
		return comps
	}

	visited := make([]bool, len(mask.Pix))
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			idx := y*mask.Width + x
			if visited[idx] || mask.Pix[idx] == 0 {
				continue
			}
			comps = append(comps, floodFill(mask, visited, x, y))
		}
	}
	return comps
}

// floodFill обходит область от (startX, startY) и возвращает её ограничивающий прямоугольник
func floodFill(mask *entity.Frame, visited []bool, startX, startY int) entity.Rect {
	minX, minY := startX, startY
	maxX, maxY := startX+1, startY+1

	stack := []entity.Point{{X: startX, Y: startY}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= mask.Width || p.Y < 0 || p.Y >= mask.Height {
			continue
		}
		idx := p.Y*mask.Width + p.X
		if visited[idx] || mask.Pix[idx] == 0 {
			continue
		}
		visited[idx] = true

		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X+1)
		maxY = max(maxY, p.Y+1)

		stack = append(stack,
			entity.Point{X: p.X - 1, Y: p.Y},
			entity.Point{X: p.X + 1, Y: p.Y},
			entity.Point{X: p.X, Y: p.Y - 1},
			entity.Point{X: p.X, Y: p.Y + 1},
		)
	}

	return entity.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// MatchTemplate считает нормированную сумму квадратов разностей для каждого
// положения образца в окне и возвращает минимум. При равенстве побеждает
// первое положение в порядке обхода строк.
func (e *Engine) MatchTemplate(frame *entity.Frame, tpl entity.Template, window entity.Rect) (entity.MatchResult, error) {
	if tpl.Empty() {
		return entity.MatchResult{}, errors.Wrap(entity.ErrPrecondition, "match template: empty template")
	}
	if err := checkWindow(frame, tpl.Size(), window); err != nil {
		return entity.MatchResult{}, err
	}

	ts := tpl.Size()
	tplRows := make([][]float64, ts.Height)
	var sumT2 float64
	for y := 0; y < ts.Height; y++ {
		row := toFloats(tpl.Pix()[y*ts.Width : (y+1)*ts.Width])
		tplRows[y] = row
		sumT2 += floats.Dot(row, row)
	}

	winRows := make([][]float64, window.Height)
	for y := 0; y < window.Height; y++ {
		off := (window.Y+y)*frame.Width + window.X
		winRows[y] = toFloats(frame.Pix[off : off+window.Width])
	}

	best := entity.MatchResult{Score: math.Inf(1)}
	for v := 0; v <= window.Height-ts.Height; v++ {
		for u := 0; u <= window.Width-ts.Width; u++ {
			var cross, sumI2 float64
			for y := 0; y < ts.Height; y++ {
				seg := winRows[v+y][u : u+ts.Width]
				cross += floats.Dot(tplRows[y], seg)
				sumI2 += floats.Dot(seg, seg)
			}
			score := normalizedSqDiff(sumT2, sumI2, cross)
			if score < best.Score {
				best = entity.MatchResult{Location: entity.Point{X: u, Y: v}, Score: score}
			}
		}
	}
	return best, nil
}

// normalizedSqDiff повторяет TM_SQDIFF_NORMED и ограничивает результат отрезком [0, 1]
func normalizedSqDiff(sumT2, sumI2, cross float64) float64 {
	num := sumT2 + sumI2 - 2*cross
	den := math.Sqrt(sumT2 * sumI2)
	if den == 0 {
		if num == 0 {
			return 0
		}
		return 1
	}
	return clampScore(num / den)
}

func clampScore(s float64) float64 {
	switch {
	case s < 0:
		return 0
	case s > 1:
		return 1
	default:
		return s
	}
}

func checkWindow(frame *entity.Frame, tpl entity.Size, window entity.Rect) error {
	if frame == nil {
		return errors.Wrap(entity.ErrPrecondition, "match template: nil frame")
	}
	if !frame.Bounds().Contains(window) {
		return errors.Wrapf(entity.ErrPrecondition, "match template: window %s outside frame %dx%d",
			window, frame.Width, frame.Height)
	}
	if window.Width < tpl.Width || window.Height < tpl.Height {
		return errors.Wrapf(entity.ErrPrecondition, "match template: window %s smaller than template %dx%d",
			window, tpl.Width, tpl.Height)
	}
	return nil
}

func toFloats(px []uint8) []float64 {
	out := make([]float64, len(px))
	for i, v := range px {
		out[i] = float64(v)
	}
	return out
}

func intersect(a, b entity.Rect) entity.Rect {
	return entity.RectFromImage(a.Image().Intersect(b.Image()))
}

// Проверка реализации интерфейса
var _ port.ImageEngine = (*Engine)(nil)

// Close ничего не освобождает: движок на чистом Go не держит нативных ресурсов
func (e *Engine) Close() error {
	return nil
}
