package port

import "context"

// Pointer интерфейс управления курсором
type Pointer interface {
	// MoveCursorBy сдвигает курсор на (dx, dy)
	MoveCursorBy(ctx context.Context, dx, dy int) error

	// ClickPrimaryButton нажимает основную кнопку мыши
	ClickPrimaryButton(ctx context.Context) error
}
