package entity

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// Frame 8-битный полутоновый кадр. Пиксели хранятся построчно, шаг строки равен Width.
// Двоичные маски движения используют тот же тип со значениями 0 и 255.
type Frame struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewFrame создаёт чёрный кадр заданного размера
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// FrameFromImage переводит произвольное изображение в полутоновый кадр
func FrameFromImage(img image.Image) *Frame {
	b := img.Bounds()
	f := NewFrame(b.Dx(), b.Dy())

	if gray, ok := img.(*image.Gray); ok {
		for y := 0; y < f.Height; y++ {
			off := gray.PixOffset(b.Min.X, b.Min.Y+y)
			copy(f.Pix[y*f.Width:(y+1)*f.Width], gray.Pix[off:off+f.Width])
		}
		return f
	}

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			f.Pix[y*f.Width+x] = g.Y
		}
	}
	return f
}

// Size возвращает размер кадра
func (f *Frame) Size() Size {
	return Size{Width: f.Width, Height: f.Height}
}

// Bounds возвращает область всего кадра
func (f *Frame) Bounds() Rect {
	return Rect{Width: f.Width, Height: f.Height}
}

// At возвращает яркость пикселя
func (f *Frame) At(x, y int) uint8 {
	return f.Pix[y*f.Width+x]
}

// Set задаёт яркость пикселя
func (f *Frame) Set(x, y int, v uint8) {
	f.Pix[y*f.Width+x] = v
}

// Fill заливает область значением v
func (f *Frame) Fill(r Rect, v uint8) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			f.Pix[y*f.Width+x] = v
		}
	}
}

// SameSize проверяет совпадение размеров двух кадров
func (f *Frame) SameSize(o *Frame) bool {
	return o != nil && f.Width == o.Width && f.Height == o.Height
}

// Clone возвращает независимую копию кадра
func (f *Frame) Clone() *Frame {
	c := &Frame{Width: f.Width, Height: f.Height, Pix: make([]uint8, len(f.Pix))}
	copy(c.Pix, f.Pix)
	return c
}

// Crop копирует область кадра. Область должна целиком лежать внутри кадра.
func (f *Frame) Crop(r Rect) (*Frame, error) {
	if r.Empty() || !f.Bounds().Contains(r) {
		return nil, errors.Wrapf(ErrPrecondition, "crop %s outside frame %dx%d", r, f.Width, f.Height)
	}
	c := NewFrame(r.Width, r.Height)
	for y := 0; y < r.Height; y++ {
		src := (r.Y+y)*f.Width + r.X
		copy(c.Pix[y*r.Width:(y+1)*r.Width], f.Pix[src:src+r.Width])
	}
	return c, nil
}

// Gray переводит кадр в *image.Gray (данные копируются)
func (f *Frame) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	copy(img.Pix, f.Pix)
	return img
}

// Template неизменяемый образец, вырезанный из кадра
type Template struct {
	patch *Frame
}

// CaptureTemplate вырезает образец из области r кадра
func CaptureTemplate(f *Frame, r Rect) (Template, error) {
	patch, err := f.Crop(r)
	if err != nil {
		return Template{}, err
	}
	return Template{patch: patch}, nil
}

// Empty сообщает, что образец не захвачен
func (t Template) Empty() bool {
	return t.patch == nil
}

// Size возвращает размер образца
func (t Template) Size() Size {
	if t.patch == nil {
		return Size{}
	}
	return t.patch.Size()
}

// At возвращает яркость пикселя образца
func (t Template) At(x, y int) uint8 {
	return t.patch.At(x, y)
}

// Pix возвращает пиксели образца построчно. Срез изменять нельзя.
func (t Template) Pix() []uint8 {
	if t.patch == nil {
		return nil
	}
	return t.patch.Pix
}
