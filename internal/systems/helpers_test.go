package systems

import (
	"roguely-server/internal/domain"
	"roguely-server/pkg/dungeon"
	"roguely-server/pkg/grid"
)

// mapFromRows строит карту из строк: '#' - стена, остальное - пол.
func mapFromRows(rows ...string) *domain.Map {
	cells := grid.New(len(rows), len(rows[0]), domain.CellFloor)
	for y, row := range rows {
		for x, ch := range row {
			if ch == '#' {
				cells.Set(y, x, domain.CellWall)
			}
		}
	}
	return domain.NewMap("test", cells)
}

// worldWithPlayer - реестр с игроком в точке p.
func worldWithPlayer(p domain.Point) (*domain.Registry, *domain.Entity) {
	reg := domain.NewRegistry()
	player := dungeon.NewPlayer("hero", p)
	reg.SetPlayer(reg.AddEntityToGroup(domain.GroupPlayer, player))
	return reg, player
}

func spawn(reg *domain.Registry, t dungeon.EntityTemplate, p domain.Point) *domain.Entity {
	e := t.Spawn(p)
	reg.AddEntityToGroup(t.Group, e)
	return e
}
