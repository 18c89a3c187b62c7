package domain

import (
	"math"

	"roguely-server/internal/core/types/enums"
)

// Point - координата клетки. Сравнивается по значению.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Dimension - видимый прямоугольник карты.
// Origin - левый верхний угол, Size - дальний край (origin + протяженность),
// Focus - отслеживаемая точка, из которой пересчитывается поле зрения.
// Сравнение по значению используется для инвалидации кэша отрисовки.
type Dimension struct {
	Origin Point `json:"origin"`
	Focus  Point `json:"focus"`
	Size   Size  `json:"size"`
}

// Contains - проверка по замкнутому интервалу [origin, size-1].
func (d Dimension) Contains(x, y int) bool {
	return x >= d.Origin.X && x <= d.Size.Width-1 &&
		y >= d.Origin.Y && y <= d.Size.Height-1
}

// Shift возвращает новую точку со смещением.
func (p Point) Shift(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Step - соседняя клетка в направлении d.
func (p Point) Step(d enums.Direction) Point {
	dx, dy := d.Delta()
	return p.Shift(dx, dy)
}

// DistanceTo возвращает евклидово расстояние.
func (p Point) DistanceTo(other Point) float64 {
	return math.Sqrt(float64(p.DistanceSquaredTo(other)))
}

// DistanceSquaredTo - квадрат расстояния, для сравнения без корней.
func (p Point) DistanceSquaredTo(other Point) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// ManhattanTo - |dx| + |dy|.
func (p Point) ManhattanTo(other Point) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// IsAdjacent - соседняя клетка по одной из четырех сторон.
func (p Point) IsAdjacent(other Point) bool {
	return p.ManhattanTo(other) == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
