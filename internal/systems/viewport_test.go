package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roguely-server/internal/domain"
)

func TestViewport_Update(t *testing.T) {
	mapSize := domain.Size{Width: 100, Height: 40}

	tests := []struct {
		name    string
		tracked domain.Point
		origin  domain.Point
		size    domain.Size
	}{
		{"centre", domain.Point{X: 50, Y: 20}, domain.Point{X: 40, Y: 15}, domain.Size{Width: 60, Height: 25}},
		{"top left", domain.Point{X: 2, Y: 2}, domain.Point{X: 0, Y: 0}, domain.Size{Width: 20, Height: 10}},
		{"bottom right", domain.Point{X: 99, Y: 39}, domain.Point{X: 80, Y: 30}, domain.Size{Width: 100, Height: 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport(20, 10)
			dim, changed := v.Update(tt.tracked, mapSize)

			assert.True(t, changed)
			assert.Equal(t, tt.origin, dim.Origin)
			assert.Equal(t, tt.size, dim.Size)
			assert.Equal(t, tt.tracked, dim.Focus)
		})
	}
}

func TestViewport_ChangeDetection(t *testing.T) {
	v := NewViewport(20, 10)
	mapSize := domain.Size{Width: 100, Height: 40}

	_, changed := v.Update(domain.Point{X: 50, Y: 20}, mapSize)
	assert.True(t, changed)

	_, changed = v.Update(domain.Point{X: 50, Y: 20}, mapSize)
	assert.False(t, changed)

	_, changed = v.Update(domain.Point{X: 51, Y: 20}, mapSize)
	assert.True(t, changed)
}

func TestViewport_SmallMap(t *testing.T) {
	v := NewViewport(20, 10)

	dim, _ := v.Update(domain.Point{X: 8, Y: 4}, domain.Size{Width: 10, Height: 5})

	assert.Equal(t, domain.Point{X: 0, Y: 0}, dim.Origin)
}

func TestViewport_Contains(t *testing.T) {
	v := NewViewport(20, 10)
	assert.False(t, v.Contains(0, 0), "no window before the first update")

	v.Update(domain.Point{X: 50, Y: 20}, domain.Size{Width: 100, Height: 40})

	assert.True(t, v.Contains(40, 15))
	assert.True(t, v.Contains(59, 24))
	assert.False(t, v.Contains(60, 24))
	assert.False(t, v.Contains(39, 15))
	assert.Equal(t, v.Current().Origin, domain.Point{X: 40, Y: 15})
}

func TestViewportCells(t *testing.T) {
	assert.Equal(t, 25, ViewportCells(800, 16, 2))
	assert.Equal(t, 0, ViewportCells(800, 0, 2))
}
