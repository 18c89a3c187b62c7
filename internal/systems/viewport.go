package systems

import "roguely-server/internal/domain"

// Viewport хранит протяженность окна в клетках и последний вычисленный Dimension.
type Viewport struct {
	Width  int
	Height int

	current domain.Dimension
	valid   bool
}

func NewViewport(width, height int) *Viewport {
	return &Viewport{Width: width, Height: height}
}

// Update центрирует окно на tracked и прижимает его к краям карты.
// Окно охватывает Width x Height клеток. Если карта меньше окна, origin = 0.
// Возвращает новый Dimension и признак того, что он изменился.
func (v *Viewport) Update(tracked domain.Point, mapSize domain.Size) (domain.Dimension, bool) {
	ox := clamp(tracked.X-v.Width/2, 0, mapSize.Width-v.Width)
	oy := clamp(tracked.Y-v.Height/2, 0, mapSize.Height-v.Height)

	dim := domain.Dimension{
		Origin: domain.Point{X: ox, Y: oy},
		Focus:  tracked,
		Size:   domain.Size{Width: ox + v.Width, Height: oy + v.Height},
	}

	changed := !v.valid || dim != v.current
	v.current = dim
	v.valid = true
	return dim, changed
}

// Current - последний вычисленный Dimension.
func (v *Viewport) Current() domain.Dimension { return v.current }

// Contains - проверка по замкнутому интервалу относительно последнего Dimension.
func (v *Viewport) Contains(x, y int) bool {
	return v.valid && v.current.Contains(x, y)
}

// clamp с приоритетом нижней границы, когда hi < lo.
func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// ViewportCells - размер окна в клетках для окна и спрайта заданного размера.
func ViewportCells(windowPx, spritePx, scale int) int {
	if spritePx <= 0 || scale <= 0 {
		return 0
	}
	return windowPx / (spritePx * scale)
}
