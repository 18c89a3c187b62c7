package domain

import (
	"roguely-server/internal/core/types"
	"roguely-server/internal/core/types/enums"
)

// Overlap - сущность, найденная в точке запроса.
type Overlap struct {
	Group    string
	FullName string
	Entity   *Entity
}

// ViewportEntry - сущность внутри видимого прямоугольника.
type ViewportEntry struct {
	ID       types.ID `json:"id"`
	Group    string   `json:"groupName"`
	Name     string   `json:"name"`
	FullName string   `json:"fullName"`
	Point    Point    `json:"point"`
}

// BlockedPoint описывает сущность, преграждающую шаг в направлении Direction.
type BlockedPoint struct {
	EntityName     string          `json:"entityName"`
	EntityFullName string          `json:"entityFullName"`
	Position       Point           `json:"entityPosition"`
	Direction      enums.Direction `json:"direction"`
}

// IsPointUnique - ни одна сущность не стоит в p.
func (r *Registry) IsPointUnique(p Point) bool {
	unique := true
	r.Each(func(_ string, e *Entity) bool {
		if e.IsAt(p) {
			unique = false
			return false
		}
		return true
	})
	return unique
}

// EntitiesAt возвращает сущности в p из перечисленных групп (или из всех, если groups пуст).
func (r *Registry) EntitiesAt(p Point, groups ...string) []*Entity {
	var out []*Entity
	if len(groups) == 0 {
		r.Each(func(_ string, e *Entity) bool {
			if e.IsAt(p) {
				out = append(out, e)
			}
			return true
		})
		return out
	}
	for _, g := range groups {
		out = append(out, r.FindEntitiesInGroup(g, AtPoint(p))...)
	}
	return out
}

// ForEachOverlapping вызывает fn для каждой сущности в p, чье имя не равно excludeName.
// Совпадения собираются до вызовов, поэтому fn может удалять сущности.
func (r *Registry) ForEachOverlapping(excludeName string, p Point, fn func(Overlap)) int {
	var hits []Overlap
	r.Each(func(group string, e *Entity) bool {
		if e.EntityName != excludeName && e.IsAt(p) {
			hits = append(hits, Overlap{Group: group, FullName: e.FullName(), Entity: e})
		}
		return true
	})
	for _, h := range hits {
		fn(h)
	}
	return len(hits)
}

// EntitiesInViewport отбирает размещенные сущности, для позиций которых contains истинно.
func (r *Registry) EntitiesInViewport(contains func(x, y int) bool) []ViewportEntry {
	var out []ViewportEntry
	r.Each(func(group string, e *Entity) bool {
		pos, ok := e.Position()
		if ok && contains(pos.X, pos.Y) {
			out = append(out, ViewportEntry{
				ID:       e.ID,
				Group:    group,
				Name:     e.EntityName,
				FullName: e.FullName(),
				Point:    pos,
			})
		}
		return true
	})
	return out
}

// BlockedBy ищет в группе первую сущность, стоящую в соседней клетке from по направлению dir.
func (r *Registry) BlockedBy(group string, from Point, dir enums.Direction) (BlockedPoint, bool) {
	if dir == enums.DirectionNone {
		return BlockedPoint{}, false
	}
	target := from.Step(dir)
	e, ok := r.FindEntity(group, AtPoint(target))
	if !ok {
		return BlockedPoint{}, false
	}
	return BlockedPoint{
		EntityName:     e.EntityName,
		EntityFullName: e.FullName(),
		Position:       target,
		Direction:      dir,
	}, true
}
