package systems

import (
	"container/heap"
	"math"

	"github.com/sirupsen/logrus"

	"roguely-server/internal/domain"
	"roguely-server/pkg/grid"
	"roguely-server/pkg/logger"
)

// Cell - координата матрицы (строка, столбец).
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Порядок соседей фиксирован: вверх, вниз, влево, вправо.
var neighborOffsets = [4]Cell{
	{Row: -1, Col: 0},
	{Row: 1, Col: 0},
	{Row: 0, Col: -1},
	{Row: 0, Col: 1},
}

var noParent = Cell{Row: -1, Col: -1}

// FindPath ищет кратчайший 4-связный путь по сетке (A*, манхэттенская эвристика).
// Проходима любая клетка, не равная CellWall.
// Возвращает путь от start до goal включительно или пустой срез.
func FindPath(g *grid.Matrix[int], start, goal Cell) []Cell {
	return FindPathWithBudget(g, start, goal, 0)
}

// FindPathWithBudget - FindPath с ограничением числа раскрытых узлов (0 - без ограничения).
// Исчерпанный бюджет дает пустой путь.
func FindPathWithBudget(g *grid.Matrix[int], start, goal Cell, maxExpansions int) []Cell {
	pathLogger := logger.Log.WithFields(logrus.Fields{
		"component": "pathfinding",
		"start":     start,
		"goal":      goal,
	})

	if !g.InBounds(start.Row, start.Col) || !g.InBounds(goal.Row, goal.Col) {
		pathLogger.Debug("Path rejected: endpoint out of bounds.")
		return nil
	}
	if g.At(start.Row, start.Col) == domain.CellWall {
		pathLogger.Debug("Path rejected: start cell is blocked.")
		return nil
	}

	cost := grid.New(g.Rows(), g.Cols(), math.MaxInt)
	parent := grid.New(g.Rows(), g.Cols(), noParent)
	closed := grid.New(g.Rows(), g.Cols(), false)

	open := make(pathQueue, 0, 16)
	heap.Init(&open)

	seq := 0
	push := func(c Cell, cst int) {
		heap.Push(&open, &pathItem{Cell: c, Cost: cst, Priority: cst + manhattan(c, goal), Seq: seq})
		seq++
	}

	cost.Set(start.Row, start.Col, 0)
	push(start, 0)

	expansions := 0
	for open.Len() > 0 {
		cur := heap.Pop(&open).(*pathItem)
		c := cur.Cell
		if closed.At(c.Row, c.Col) {
			continue
		}
		closed.Set(c.Row, c.Col, true)

		if c == goal {
			path := reconstruct(parent, start, goal)
			pathLogger.WithFields(logrus.Fields{"length": len(path), "expanded": expansions}).
				Debug("Path found.")
			return path
		}

		expansions++
		if maxExpansions > 0 && expansions > maxExpansions {
			pathLogger.WithField("budget", maxExpansions).Debug("Path search budget exhausted.")
			return nil
		}

		for _, off := range neighborOffsets {
			n := Cell{Row: c.Row + off.Row, Col: c.Col + off.Col}
			if !g.InBounds(n.Row, n.Col) || g.At(n.Row, n.Col) == domain.CellWall || closed.At(n.Row, n.Col) {
				continue
			}
			ng := cur.Cost + 1
			if ng < cost.At(n.Row, n.Col) {
				cost.Set(n.Row, n.Col, ng)
				parent.Set(n.Row, n.Col, c)
				push(n, ng)
			}
		}
	}

	pathLogger.WithField("expanded", expansions).Debug("No path exists.")
	return nil
}

func reconstruct(parent *grid.Matrix[Cell], start, goal Cell) []Cell {
	var rev []Cell
	for c := goal; ; c = parent.At(c.Row, c.Col) {
		rev = append(rev, c)
		if c == start {
			break
		}
	}

	path := make([]Cell, len(rev))
	for i, c := range rev {
		path[len(rev)-1-i] = c
	}
	return path
}

func manhattan(a, b Cell) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

// CellOf переводит точку карты (x, y) в координату матрицы.
func CellOf(p domain.Point) Cell {
	return Cell{Row: p.Y, Col: p.X}
}

// PathToPoints переводит путь в точки карты.
func PathToPoints(path []Cell) []domain.Point {
	out := make([]domain.Point, len(path))
	for i, c := range path {
		out[i] = domain.Point{X: c.Col, Y: c.Row}
	}
	return out
}

// WalkableGrid копирует сетку карты и помечает клетки blockers стенами.
func WalkableGrid(m *domain.Map, blockers []domain.Point) *grid.Matrix[int] {
	g := m.Cells().Clone()
	for _, p := range blockers {
		if g.InBounds(p.Y, p.X) {
			g.Set(p.Y, p.X, domain.CellWall)
		}
	}
	return g
}
