package entity

import "image/color"

// Цвета отладочной разметки.
var (
	ColorBoundary = color.RGBA{B: 255, A: 255}
	ColorSearch   = color.RGBA{G: 255, A: 255}
	ColorMatch    = color.RGBA{R: 255, A: 255}
	ColorEye      = color.RGBA{R: 255, G: 255, A: 255}
)

// OverlayRect прямоугольник отладочной разметки
type OverlayRect struct {
	Color color.RGBA
	Rect  Rect
	Label string
}
