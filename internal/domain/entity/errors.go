package entity

import "errors"

var (
	// ErrEndOfStream источник кадров закончился
	ErrEndOfStream = errors.New("end of stream")

	// ErrPrecondition нарушено предусловие вызова (ошибка программы, а не штатный исход кадра)
	ErrPrecondition = errors.New("precondition violated")

	// ErrNotConfigured компонент не настроен
	ErrNotConfigured = errors.New("not configured")
)
