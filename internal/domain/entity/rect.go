package entity

import (
	"fmt"
	"image"

	"github.com/pkg/errors"
)

// Point точка в координатах кадра
type Point struct {
	X int
	Y int
}

// Add возвращает сумму двух точек
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub возвращает разность двух точек
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect прямоугольная область кадра
type Rect struct {
	X      int // координата X левого верхнего угла
	Y      int // координата Y левого верхнего угла
	Width  int // ширина области в пикселях
	Height int // высота области в пикселях
}

// NewRect создаёт прямоугольник по углу и размеру
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// RectAt создаёт прямоугольник заданного размера с левым верхним углом в точке p
func RectAt(p Point, size Size) Rect {
	return Rect{X: p.X, Y: p.Y, Width: size.Width, Height: size.Height}
}

// Center возвращает координаты центра области (целочисленное деление)
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Origin возвращает левый верхний угол
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size возвращает размер области
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Right возвращает X правой границы (не включая)
func (r Rect) Right() int { return r.X + r.Width }

// Bottom возвращает Y нижней границы (не включая)
func (r Rect) Bottom() int { return r.Y + r.Height }

// Empty сообщает, что у области нет площади
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains проверяет, что o целиком лежит внутри r (границы допускаются)
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// StrictlyContains проверяет, что точка лежит строго внутри r, не на границе
func (r Rect) StrictlyContains(p Point) bool {
	return p.X > r.X && p.X < r.Right() && p.Y > r.Y && p.Y < r.Bottom()
}

// CenteredOn строит область размера size с тем же центром, что и r
func (r Rect) CenteredOn(size Size) Rect {
	c := r.Center()
	return Rect{
		X:      c.X - size.Width/2,
		Y:      c.Y - size.Height/2,
		Width:  size.Width,
		Height: size.Height,
	}
}

// ClampInto сдвигает область внутрь кадра bounds, не меняя её размер.
// Если область больше кадра, возвращается ErrPrecondition.
func (r Rect) ClampInto(bounds Size) (Rect, error) {
	if r.Width > bounds.Width || r.Height > bounds.Height {
		return r, errors.Wrapf(ErrPrecondition, "window %dx%d does not fit frame %dx%d",
			r.Width, r.Height, bounds.Width, bounds.Height)
	}
	if r.X < 0 {
		r.X = 0
	}
	if r.Y < 0 {
		r.Y = 0
	}
	if r.Right() > bounds.Width {
		r.X = bounds.Width - r.Width
	}
	if r.Bottom() > bounds.Height {
		r.Y = bounds.Height - r.Height
	}
	return r, nil
}

// Image переводит область в image.Rectangle
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.Right(), r.Bottom())
}

// RectFromImage переводит image.Rectangle в Rect
func RectFromImage(r image.Rectangle) Rect {
	return Rect{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// Size размер области или кадра
type Size struct {
	Width  int
	Height int
}

// Square возвращает квадратный размер со стороной n
func Square(n int) Size {
	return Size{Width: n, Height: n}
}

// Rect возвращает область этого размера с углом в начале координат
func (s Size) Rect() Rect {
	return Rect{Width: s.Width, Height: s.Height}
}
