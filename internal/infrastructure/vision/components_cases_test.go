package vision

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"headpointer/internal/domain/entity"
	"headpointer/internal/domain/port"
)

type componentsCase struct {
	name  string
	paint func(mask *entity.Frame)
	want  []entity.Rect
}

// общие случаи разметки, которые обязаны совпадать у всех движков
func componentsCases() []componentsCase {
	return []componentsCase{
		{
			name: "blocks touching at a corner stay apart",
			paint: func(m *entity.Frame) {
				m.Fill(entity.Rect{X: 8, Y: 8, Width: 3, Height: 3}, 255)
				m.Fill(entity.Rect{X: 11, Y: 11, Width: 3, Height: 3}, 255)
			},
			want: []entity.Rect{
				{X: 8, Y: 8, Width: 3, Height: 3},
				{X: 11, Y: 11, Width: 3, Height: 3},
			},
		},
		{
			name: "blocks sharing an edge merge",
			paint: func(m *entity.Frame) {
				m.Fill(entity.Rect{X: 2, Y: 2, Width: 3, Height: 3}, 255)
				m.Fill(entity.Rect{X: 5, Y: 3, Width: 3, Height: 3}, 255)
			},
			want: []entity.Rect{{X: 2, Y: 2, Width: 6, Height: 4}},
		},
		{
			name: "raster order of first pixel",
			paint: func(m *entity.Frame) {
				m.Fill(entity.Rect{X: 15, Y: 1, Width: 2, Height: 2}, 255)
				// высокий блок слева начинается ниже остальных
				m.Fill(entity.Rect{X: 1, Y: 4, Width: 3, Height: 10}, 255)
				m.Fill(entity.Rect{X: 10, Y: 3, Width: 2, Height: 2}, 255)
			},
			want: []entity.Rect{
				{X: 15, Y: 1, Width: 2, Height: 2},
				{X: 10, Y: 3, Width: 2, Height: 2},
				{X: 1, Y: 4, Width: 3, Height: 10},
			},
		},
		{
			name: "ring with a hole is one component",
			paint: func(m *entity.Frame) {
				m.Fill(entity.Rect{X: 4, Y: 4, Width: 7, Height: 7}, 255)
				m.Fill(entity.Rect{X: 6, Y: 6, Width: 3, Height: 3}, 0)
			},
			want: []entity.Rect{{X: 4, Y: 4, Width: 7, Height: 7}},
		},
	}
}

func checkComponents(t *testing.T, engine port.ImageEngine) {
	t.Helper()
	for _, tt := range componentsCases() {
		t.Run(tt.name, func(t *testing.T) {
			mask := entity.NewFrame(20, 20)
			tt.paint(mask)
			if diff := cmp.Diff(tt.want, engine.Components(mask)); diff != "" {
				t.Fatalf("components mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComponents_SharedCases(t *testing.T) {
	checkComponents(t, NewEngine())
}
