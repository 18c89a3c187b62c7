package domain

import (
	"roguely-server/internal/core/types"
	"roguely-server/internal/core/types/enums"
)

// Predicate отбирает сущности в запросах реестра.
type Predicate func(e *Entity) bool

func ByName(name string) Predicate {
	return func(e *Entity) bool { return e.EntityName == name }
}

func ByID(id types.ID) Predicate {
	return func(e *Entity) bool { return e.ID == id }
}

func AtPoint(p Point) Predicate {
	return func(e *Entity) bool { return e.IsAt(p) }
}

func HasComponent(kind enums.ComponentKind) Predicate {
	return func(e *Entity) bool { return e.FirstComponentOfKind(kind) != nil }
}

// All - все предикаты истинны.
func All(preds ...Predicate) Predicate {
	return func(e *Entity) bool {
		for _, p := range preds {
			if !p(e) {
				return false
			}
		}
		return true
	}
}
