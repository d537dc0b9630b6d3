package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"headpointer/internal/domain/entity"
)

func TestIsEyePair_Accepts(t *testing.T) {
	comps := []entity.Rect{
		{X: 40, Y: 50, Width: 20, Height: 20},
		{X: 100, Y: 50, Width: 20, Height: 20},
	}

	eye, ok := IsEyePair(comps)
	require.True(t, ok)
	require.Equal(t, entity.Rect{X: 43, Y: 53, Width: 15, Height: 15}, eye)
	require.Equal(t, comps[0].Center(), eye.Center())
}

func TestIsEyePair_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		comps []entity.Rect
	}{
		{
			name:  "single component",
			comps: []entity.Rect{{X: 40, Y: 50, Width: 20, Height: 20}},
		},
		{
			name: "three components",
			comps: []entity.Rect{
				{X: 40, Y: 50, Width: 20, Height: 20},
				{X: 100, Y: 50, Width: 20, Height: 20},
				{X: 160, Y: 50, Width: 20, Height: 20},
			},
		},
		{
			name: "too close",
			comps: []entity.Rect{
				{X: 40, Y: 50, Width: 20, Height: 20},
				{X: 60, Y: 50, Width: 20, Height: 20},
			},
		},
		{
			name: "too far",
			comps: []entity.Rect{
				{X: 0, Y: 50, Width: 20, Height: 20},
				{X: 120, Y: 50, Width: 20, Height: 20},
			},
		},
		{
			name: "width differs",
			comps: []entity.Rect{
				{X: 40, Y: 50, Width: 20, Height: 20},
				{X: 100, Y: 50, Width: 25, Height: 20},
			},
		},
		{
			name: "height differs",
			comps: []entity.Rect{
				{X: 40, Y: 50, Width: 20, Height: 20},
				{X: 100, Y: 50, Width: 20, Height: 15},
			},
		},
		{
			name: "vertical offset",
			comps: []entity.Rect{
				{X: 40, Y: 50, Width: 20, Height: 20},
				{X: 100, Y: 55, Width: 20, Height: 20},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := IsEyePair(tt.comps)
			require.False(t, ok)
		})
	}
}

func TestIsEyePair_IntegerRatio(t *testing.T) {
	// 119/20 = 5 после усечения: принимается
	_, ok := IsEyePair([]entity.Rect{
		{X: 0, Y: 50, Width: 20, Height: 20},
		{X: 119, Y: 50, Width: 20, Height: 20},
	})
	require.True(t, ok)

	// 39/20 = 1: отклоняется
	_, ok = IsEyePair([]entity.Rect{
		{X: 0, Y: 50, Width: 20, Height: 20},
		{X: 39, Y: 50, Width: 20, Height: 20},
	})
	require.False(t, ok)
}

func TestIsBlink(t *testing.T) {
	window := entity.Rect{X: 35, Y: 45, Width: 30, Height: 30}
	eye := entity.Rect{X: 43, Y: 53, Width: 15, Height: 15} // центр (50,60)

	require.True(t, IsBlink([]entity.Rect{window}, window, eye))
	require.True(t, IsBlink([]entity.Rect{{X: 45, Y: 55, Width: 10, Height: 10}}, window, eye))

	// центр глаза на левой границе компоненты
	require.False(t, IsBlink([]entity.Rect{{X: 50, Y: 50, Width: 10, Height: 20}}, window, eye))
	// компонента выходит за окно
	require.False(t, IsBlink([]entity.Rect{{X: 30, Y: 50, Width: 30, Height: 20}}, window, eye))
	// компонент не одна
	require.False(t, IsBlink([]entity.Rect{window, window}, window, eye))
	require.False(t, IsBlink(nil, window, eye))
}
