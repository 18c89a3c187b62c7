package grid

import "fmt"

// IndexError - паника при обращении за пределы матрицы.
type IndexError struct {
	Row, Col   int
	Rows, Cols int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("grid: index (%d,%d) out of range [%d x %d]", e.Row, e.Col, e.Rows, e.Cols)
}

// Matrix - двумерный массив фиксированного размера (row-major).
// После создания размер не меняется.
type Matrix[T any] struct {
	rows, cols int
	data       []T
}

// New создает матрицу rows x cols, заполненную значением fill.
// Отрицательные размеры - нарушение предусловия.
func New[T any](rows, cols int, fill T) *Matrix[T] {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("grid: negative size %dx%d", rows, cols))
	}
	m := &Matrix[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}
	m.Fill(fill)
	return m
}

func (m *Matrix[T]) Rows() int { return m.rows }
func (m *Matrix[T]) Cols() int { return m.cols }

// Len - общее количество ячеек.
func (m *Matrix[T]) Len() int { return len(m.data) }

// InBounds проверяет 0 <= row < rows и 0 <= col < cols.
func (m *Matrix[T]) InBounds(row, col int) bool {
	return row >= 0 && row < m.rows && col >= 0 && col < m.cols
}

func (m *Matrix[T]) index(row, col int) int {
	if !m.InBounds(row, col) {
		panic(&IndexError{Row: row, Col: col, Rows: m.rows, Cols: m.cols})
	}
	return row*m.cols + col
}

func (m *Matrix[T]) At(row, col int) T {
	return m.data[m.index(row, col)]
}

func (m *Matrix[T]) Set(row, col int, v T) {
	m.data[m.index(row, col)] = v
}

// Fill записывает v во все ячейки.
func (m *Matrix[T]) Fill(v T) {
	for i := range m.data {
		m.data[i] = v
	}
}

// Clear сбрасывает все ячейки в нулевое значение T.
func (m *Matrix[T]) Clear() {
	var zero T
	m.Fill(zero)
}

// Clone возвращает независимую копию.
func (m *Matrix[T]) Clone() *Matrix[T] {
	c := &Matrix[T]{rows: m.rows, cols: m.cols, data: make([]T, len(m.data))}
	copy(c.data, m.data)
	return c
}

// Each обходит ячейки построчно.
func (m *Matrix[T]) Each(fn func(row, col int, v T)) {
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			fn(r, c, m.data[r*m.cols+c])
		}
	}
}

// Equal сравнивает размеры и содержимое с помощью eq.
func Equal[T any](a, b *Matrix[T], eq func(x, y T) bool) bool {
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	for i := range a.data {
		if !eq(a.data[i], b.data[i]) {
			return false
		}
	}
	return true
}

// EqualComparable - Equal для сравнимых типов.
func EqualComparable[T comparable](a, b *Matrix[T]) bool {
	return Equal(a, b, func(x, y T) bool { return x == y })
}

// Count возвращает число ячеек, для которых pred истинно.
func (m *Matrix[T]) Count(pred func(v T) bool) int {
	n := 0
	for _, v := range m.data {
		if pred(v) {
			n++
		}
	}
	return n
}
