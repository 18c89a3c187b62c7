package domain

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"roguely-server/internal/core/types"
	"roguely-server/pkg/grid"
)

var (
	ErrEmptyMap        = errors.New("empty map")
	ErrNoRandomPoint   = errors.New("unable to find a random point in map")
	ErrMapSizeMismatch = errors.New("light matrix size does not match map")
)

// Rand - источник случайных чисел, нужный карте и пространственным запросам.
type Rand interface {
	IntRange(min, max int) int
}

// Map - уровень: сетка стен/пола, карта освещенности и метаданные кэша отрисовки.
// Матрицы хранятся как rows=height, cols=width; адресация (x, y) -> (y, x).
type Map struct {
	ID     types.ID `json:"id"`
	Name   string   `json:"name"`
	Width  int      `json:"width"`
	Height int      `json:"height"`

	cells *grid.Matrix[int]
	light *grid.Matrix[int]

	// Кэш сегмента отрисовки: ключ - последний использованный Dimension.
	segment    Dimension
	hasSegment bool
	dirty      bool
}

// NewMap оборачивает готовую сетку клеток.
func NewMap(name string, cells *grid.Matrix[int]) *Map {
	return &Map{
		Name:   name,
		Width:  cells.Cols(),
		Height: cells.Rows(),
		cells:  cells,
		light:  grid.New(cells.Rows(), cells.Cols(), LightUnseen),
		dirty:  true,
	}
}

func (m *Map) Size() Size {
	return Size{Width: m.Width, Height: m.Height}
}

// Cells - сетка стен/пола. Изменения видны карте напрямую.
func (m *Map) Cells() *grid.Matrix[int] { return m.cells }

// Light - текущая карта видимости.
func (m *Map) Light() *grid.Matrix[int] { return m.light }

// SetLight заменяет карту видимости целиком.
func (m *Map) SetLight(light *grid.Matrix[int]) error {
	if light.Rows() != m.Height || light.Cols() != m.Width {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrMapSizeMismatch, light.Cols(), light.Rows(), m.Width, m.Height)
	}
	m.light = light
	return nil
}

func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// CellAt возвращает значение клетки. Выход за границы - паника.
func (m *Map) CellAt(x, y int) int {
	return m.cells.At(y, x)
}

// SetCell меняет клетку и помечает кэш отрисовки устаревшим.
func (m *Map) SetCell(x, y, v int) {
	m.cells.Set(y, x, v)
	m.dirty = true
}

// IsWall - клетки вне карты считаются стенами.
func (m *Map) IsWall(x, y int) bool {
	if !m.InBounds(x, y) {
		return true
	}
	return m.cells.At(y, x) == CellWall
}

func (m *Map) LightAt(x, y int) int {
	return m.light.At(y, x)
}

func (m *Map) IsVisible(x, y int) bool {
	return m.InBounds(x, y) && m.light.At(y, x) != LightUnseen
}

// TriggerRedraw сбрасывает кэш сегмента отрисовки.
func (m *Map) TriggerRedraw() {
	m.dirty = true
}

// NeedsRedraw - true, если был явный запрос или Dimension отличается от закэшированного.
func (m *Map) NeedsRedraw(dim Dimension) bool {
	return m.dirty || !m.hasSegment || m.segment != dim
}

// MarkDrawn запоминает Dimension, для которого сегмент отрисован.
func (m *Map) MarkDrawn(dim Dimension) {
	m.segment = dim
	m.hasSegment = true
	m.dirty = false
}

// RandomPoint возвращает случайную клетку, значение которой не входит в offLimit.
// Пустой offLimit - любая клетка. Число попыток ограничено width*height.
func (m *Map) RandomPoint(offLimit mapset.Set[int], rng Rand) (Point, error) {
	if m.Width <= 0 || m.Height <= 0 {
		return Point{}, ErrEmptyMap
	}

	if offLimit.Size() == 0 {
		return Point{X: rng.IntRange(0, m.Width-1), Y: rng.IntRange(0, m.Height-1)}, nil
	}

	maxAttempts := m.Width * m.Height
	for attempt := 0; attempt < maxAttempts; attempt++ {
		row := rng.IntRange(0, m.Height-1)
		col := rng.IntRange(0, m.Width-1)
		if !offLimit.Has(m.cells.At(row, col)) {
			return Point{X: col, Y: row}, nil
		}
	}

	return Point{}, fmt.Errorf("%w %q after %d attempts", ErrNoRandomPoint, m.Name, maxAttempts)
}

// FloorOnly - множество значений для RandomPoint, исключающее стены.
func FloorOnly() mapset.Set[int] {
	s := mapset.New[int]()
	s.Put(CellWall)
	return s
}
