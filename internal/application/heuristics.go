package app

import "headpointer/internal/domain/entity"

// Эвристики пары глаз, подобраны экспериментально.
const (
	eyePairTolerance    = 5 // допустимая разница размеров и вертикального положения
	minEyeDistanceRatio = 2 // горизонтальное расстояние в ширинах компоненты
	maxEyeDistanceRatio = 5
)

// IsEyePair проверяет, что две компоненты движения похожи на пару глаз,
// и возвращает область глаза 15×15 вокруг центра первой компоненты.
// Правила проверяются по порядку, первое нарушенное отклоняет пару.
func IsEyePair(comps []entity.Rect) (entity.Rect, bool) {
	if len(comps) != 2 {
		return entity.Rect{}, false
	}
	r1, r2 := comps[0], comps[1]

	// ширины примерно равны
	if abs(r1.Width-r2.Width) >= eyePairTolerance {
		return entity.Rect{}, false
	}
	// высоты примерно равны
	if abs(r1.Height-r2.Height) >= eyePairTolerance {
		return entity.Rect{}, false
	}
	// по вертикали почти на одной линии
	if abs(r1.Y-r2.Y) >= eyePairTolerance {
		return entity.Rect{}, false
	}
	// разумное расстояние по горизонтали; деление целочисленное
	if r1.Width <= 0 {
		return entity.Rect{}, false
	}
	ratio := abs(r1.X-r2.X) / r1.Width
	if ratio < minEyeDistanceRatio || ratio > maxEyeDistanceRatio {
		return entity.Rect{}, false
	}

	c := r1.Center()
	eye := entity.RectAt(entity.Point{
		X: c.X - entity.EyeTemplateWidth/2,
		Y: c.Y - entity.EyeTemplateHeight/2,
	}, entity.EyeTemplateSize)
	return eye, true
}

// IsBlink проверяет, что единственная компонента движения лежит внутри окна поиска
// и накрывает центр глаза (строго, не на границе).
func IsBlink(comps []entity.Rect, window, eye entity.Rect) bool {
	if len(comps) != 1 {
		return false
	}
	r := comps[0]
	if !window.Contains(r) {
		return false
	}
	return r.StrictlyContains(eye.Center())
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
