package port

import "headpointer/internal/domain/entity"

// ImageEngine примитивы обработки изображений
type ImageEngine interface {
	// MotionMask строит двоичную маску движения между кадрами внутри окна
	MotionMask(cur, prev *entity.Frame, window entity.Rect) (*entity.Frame, error)

	// Components возвращает ограничивающие прямоугольники связных областей маски
	Components(mask *entity.Frame) []entity.Rect

	// MatchTemplate ищет образец внутри окна кадра
	MatchTemplate(frame *entity.Frame, tpl entity.Template, window entity.Rect) (entity.MatchResult, error)
}
