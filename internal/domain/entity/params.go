package entity

// Параметры трекинга носа.
const (
	NoseTemplateWidth        = 10
	NoseTemplateHeight       = 10
	NoseSearchWindowWidth    = 18
	NoseSearchWindowHeight   = 18
	NoseBoundaryWindowWidth  = 75
	NoseBoundaryWindowHeight = 75

	// NoseLossThreshold выше этого значения объект считается потерянным
	NoseLossThreshold = 0.4
)

// Параметры трекинга глаза.
const (
	EyeTemplateWidth      = 15
	EyeTemplateHeight     = 15
	EyeSearchWindowWidth  = EyeTemplateWidth * 2
	EyeSearchWindowHeight = EyeTemplateHeight * 2

	// EyeLossThreshold выше этого значения глаз считается потерянным
	EyeLossThreshold = 0.6
)

// Параметры анализа движения.
const (
	// MotionThreshold минимальная разница яркости (8 бит), которая считается движением
	MotionThreshold = 5

	// StructuringElementSize сторона крестообразного структурного элемента
	StructuringElementSize = 3
)

// Размеры окон в виде Size.
var (
	NoseTemplateSize       = Size{Width: NoseTemplateWidth, Height: NoseTemplateHeight}
	NoseSearchWindowSize   = Size{Width: NoseSearchWindowWidth, Height: NoseSearchWindowHeight}
	NoseBoundaryWindowSize = Size{Width: NoseBoundaryWindowWidth, Height: NoseBoundaryWindowHeight}
	EyeTemplateSize        = Size{Width: EyeTemplateWidth, Height: EyeTemplateHeight}
	EyeSearchWindowSize    = Size{Width: EyeSearchWindowWidth, Height: EyeSearchWindowHeight}
)
