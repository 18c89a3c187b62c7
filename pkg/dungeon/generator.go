package dungeon

import (
	"roguely-server/internal/domain"
	"roguely-server/pkg/grid"
)

// Параметры клеточного автомата.
const (
	DefaultPasses = 10

	// Порог засева: значение в [1,100] больше порога дает пол.
	floorThreshold = 48
	// Клетка становится стеной, если стен в окне 3x3 больше этого числа.
	wallNeighborLimit = 4
)

// Seed заполняет сетку width x height случайными стенами и полом (~52% стен).
// Отрицательные размеры - паника.
func Seed(width, height int, rng domain.Rand) *grid.Matrix[int] {
	m := grid.New(height, width, domain.CellWall)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if rng.IntRange(1, 100) > floorThreshold {
				m.Set(row, col, domain.CellFloor)
			}
		}
	}
	return m
}

// NeighborWallCount считает стены в окне 3x3 вокруг (row, col), включая саму клетку.
// Клетки вне [1,rows-2]x[1,cols-2] считаются стенами: карта получает рамку.
func NeighborWallCount(m *grid.Matrix[int], row, col int) int {
	count := 0
	for r := row - 1; r <= row+1; r++ {
		for c := col - 1; c <= col+1; c++ {
			if r < 1 || r > m.Rows()-2 || c < 1 || c > m.Cols()-2 {
				count++
				continue
			}
			if m.At(r, c) == domain.CellWall {
				count++
			}
		}
	}
	return count
}

// Smooth выполняет один проход автомата. Читает только src и пишет в новую сетку.
func Smooth(src *grid.Matrix[int]) *grid.Matrix[int] {
	dst := grid.New(src.Rows(), src.Cols(), domain.CellFloor)
	for row := 0; row < src.Rows(); row++ {
		for col := 0; col < src.Cols(); col++ {
			if NeighborWallCount(src, row, col) > wallNeighborLimit {
				dst.Set(row, col, domain.CellWall)
			}
		}
	}
	return dst
}

// RunCellularAutomaton повторяет Smooth passes раз.
func RunCellularAutomaton(m *grid.Matrix[int], passes int) *grid.Matrix[int] {
	for i := 0; i < passes; i++ {
		m = Smooth(m)
	}
	return m
}

// Generate - засев и сглаживание одной функцией.
func Generate(name string, width, height, passes int, rng domain.Rand) *domain.Map {
	cells := RunCellularAutomaton(Seed(width, height, rng), passes)
	return domain.NewMap(name, cells)
}

// OpenRoom создает прямоугольную комнату: рамка из стен, внутри пол.
func OpenRoom(name string, width, height int) *domain.Map {
	m := grid.New(height, width, domain.CellFloor)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if row == 0 || col == 0 || row == height-1 || col == width-1 {
				m.Set(row, col, domain.CellWall)
			}
		}
	}
	return domain.NewMap(name, m)
}
