package systems

import (
	"testing"

	"roguely-server/internal/domain"
)

func TestHasLineOfSight(t *testing.T) {
	m := mapFromRows(
		".....",
		"..#..",
		".....",
	)

	tests := []struct {
		name   string
		p1, p2 domain.Point
		want   bool
	}{
		{"same point", domain.Point{X: 0, Y: 0}, domain.Point{X: 0, Y: 0}, true},
		{"adjacent", domain.Point{X: 0, Y: 0}, domain.Point{X: 1, Y: 0}, true},
		{"open row", domain.Point{X: 0, Y: 0}, domain.Point{X: 4, Y: 0}, true},
		{"through wall", domain.Point{X: 0, Y: 1}, domain.Point{X: 4, Y: 1}, false},
		{"wall is target", domain.Point{X: 0, Y: 1}, domain.Point{X: 2, Y: 1}, true},
		{"around wall", domain.Point{X: 0, Y: 2}, domain.Point{X: 4, Y: 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasLineOfSight(m, tt.p1, tt.p2); got != tt.want {
				t.Errorf("HasLineOfSight(%v, %v) = %v, want %v", tt.p1, tt.p2, got, tt.want)
			}
		})
	}
}
