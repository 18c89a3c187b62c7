package engine

import (
	"roguely-server/internal/core/types"
	"roguely-server/internal/domain"
	"roguely-server/pkg/api"
)

// Во сколько раз тускнеют клетки вне поля зрения.
const unseenDim = 3

// BuildSnapshot создает слепок текущего кадра для клиентов.
// Клетки окна включаются, только если карта требует перерисовки; после этого сегмент
// помечается отрисованным. Звуки и логи кадра забираются из очереди.
func (s *Service) BuildSnapshot() api.FrameSnapshot {
	snap := api.FrameSnapshot{
		Type:  "FRAME",
		Frame: s.frame,
	}

	snap.Sounds, s.sounds = s.sounds, nil
	snap.Logs, s.logs = s.logs, nil

	if s.current == nil {
		return snap
	}

	m := s.current
	dim := s.viewport.Current()

	snap.Map = m.Name
	snap.Grid = &api.GridMeta{Width: m.Width, Height: m.Height}
	snap.Viewport = api.ViewportView{
		X:      dim.Origin.X,
		Y:      dim.Origin.Y,
		Right:  dim.Size.Width,
		Bottom: dim.Size.Height,
		FocusX: dim.Focus.X,
		FocusY: dim.Focus.Y,
	}

	if m.NeedsRedraw(dim) {
		snap.Tiles = s.buildTiles(m, dim)
		m.MarkDrawn(dim)
	}

	playerID := s.registry.PlayerID()
	for _, ve := range s.registry.EntitiesInViewport(s.IsWithinViewport) {
		if ve.ID != playerID && !m.IsVisible(ve.Point.X, ve.Point.Y) {
			continue
		}
		e, ok := s.registry.Lookup(ve.ID)
		if !ok {
			continue
		}
		snap.Entities = append(snap.Entities, toEntityView(ve, e))
	}

	return snap
}

func (s *Service) buildTiles(m *domain.Map, dim domain.Dimension) []api.TileView {
	right := min(dim.Size.Width, m.Width)
	bottom := min(dim.Size.Height, m.Height)

	tiles := make([]api.TileView, 0, max(0, (right-dim.Origin.X)*(bottom-dim.Origin.Y)))
	for y := dim.Origin.Y; y < bottom; y++ {
		for x := dim.Origin.X; x < right; x++ {
			isWall := m.IsWall(x, y)
			visible := m.IsVisible(x, y)

			g := types.GlyphFloor
			if isWall {
				g = types.GlyphWall
			}
			if !visible {
				g = g.Dim(unseenDim)
			}

			tiles = append(tiles, api.TileView{
				X:         x,
				Y:         y,
				Symbol:    string(g.Rune()),
				Color:     g.HexColor(),
				IsWall:    isWall,
				IsVisible: visible,
			})
		}
	}
	return tiles
}

// toEntityView конвертирует доменную сущность в DTO
func toEntityView(ve domain.ViewportEntry, e *domain.Entity) api.EntityView {
	view := api.EntityView{
		ID:       ve.ID.String(),
		Group:    ve.Group,
		Name:     ve.Name,
		FullName: ve.FullName,
	}
	view.Pos.X = ve.Point.X
	view.Pos.Y = ve.Point.Y

	g := e.Glyph()
	view.Render.Symbol = string(g.Rune())
	view.Render.Color = g.HexColor()

	for _, c := range e.Components() {
		if iv, ok := c.(domain.IntValued); ok {
			if view.Values == nil {
				view.Values = make(map[string]int)
			}
			v, _ := iv.IntValue("")
			view.Values[c.Name()] = v
		}
	}
	if h, ok := domain.FirstComponent[*domain.HealthComponent](e); ok {
		view.Values["health_max"] = h.Max
	}

	if inv, ok := domain.FirstComponent[*domain.InventoryComponent](e); ok && len(inv.Items) > 0 {
		view.Inventory = make(map[string]int, len(inv.Items))
		for _, it := range inv.Items {
			view.Inventory[it.Name] = it.Count
		}
	}
	return view
}

// EntityViews - все сущности реестра (или только группы group) вне зависимости от окна.
func (s *Service) EntityViews(group string) []api.EntityView {
	views := []api.EntityView{}
	s.registry.Each(func(g string, e *domain.Entity) bool {
		if group != "" && g != group {
			return true
		}
		pos, _ := e.Position()
		ve := domain.ViewportEntry{ID: e.ID, Group: g, Name: e.Name(), FullName: e.FullName(), Point: pos}
		views = append(views, toEntityView(ve, e))
		return true
	})
	return views
}
