package domain

import (
	"fmt"

	"roguely-server/internal/core/types"
	"roguely-server/internal/core/types/enums"
)

// Entity - идентификатор, отображаемое имя и упорядоченный набор компонентов.
// Компоненты принадлежат сущности; схема не фиксирована.
type Entity struct {
	ID         types.ID `json:"id"`
	EntityName string   `json:"name"`
	components []Component
}

func NewEntity(name string) *Entity {
	return &Entity{EntityName: name}
}

func (e *Entity) Name() string { return e.EntityName }

// FullName - "имя-id", используется в колбэках пересечений и снимках.
func (e *Entity) FullName() string {
	return fmt.Sprintf("%s-%d", e.EntityName, uint64(e.ID))
}

func (e *Entity) Components() []Component { return e.components }

func (e *Entity) ComponentCount() int { return len(e.components) }

func (e *Entity) AddComponent(c Component) {
	e.components = append(e.components, c)
}

// RemoveComponent удаляет именно этот экземпляр компонента.
func (e *Entity) RemoveComponent(c Component) bool {
	for i, existing := range e.components {
		if existing == c {
			e.components = append(e.components[:i], e.components[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveComponentsByName удаляет все компоненты с данным именем и возвращает их количество.
func (e *Entity) RemoveComponentsByName(name string) int {
	kept := e.components[:0]
	removed := 0
	for _, c := range e.components {
		if c.Name() == name {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	e.components = kept
	return removed
}

func (e *Entity) ClearComponents() {
	e.components = nil
}

func (e *Entity) FirstComponentOfKind(kind enums.ComponentKind) Component {
	for _, c := range e.components {
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}

func (e *Entity) ComponentsOfKind(kind enums.ComponentKind) []Component {
	var out []Component
	for _, c := range e.components {
		if c.Kind() == kind {
			out = append(out, c)
		}
	}
	return out
}

func (e *Entity) FirstComponentByName(name string) Component {
	for _, c := range e.components {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

func (e *Entity) ComponentsByName(name string) []Component {
	var out []Component
	for _, c := range e.components {
		if c.Name() == name {
			out = append(out, c)
		}
	}
	return out
}

// FirstComponent ищет первый компонент конкретного типа.
//
//	hp, ok := domain.FirstComponent[*domain.HealthComponent](e)
func FirstComponent[T Component](e *Entity) (T, bool) {
	for _, c := range e.components {
		if v, ok := c.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Components возвращает все компоненты типа T.
func Components[T Component](e *Entity) []T {
	var out []T
	for _, c := range e.components {
		if v, ok := c.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// Position возвращает клетку сущности, если у нее есть PositionComponent.
func (e *Entity) Position() (Point, bool) {
	if pc, ok := FirstComponent[*PositionComponent](e); ok {
		return pc.Point, true
	}
	return Point{}, false
}

// SetPosition создает компонент позиции при необходимости.
func (e *Entity) SetPosition(p Point) {
	if pc, ok := FirstComponent[*PositionComponent](e); ok {
		pc.Point = p
		return
	}
	e.AddComponent(&PositionComponent{Point: p})
}

// IsAt - сущность стоит в клетке p.
func (e *Entity) IsAt(p Point) bool {
	pos, ok := e.Position()
	return ok && pos == p
}

// Glyph возвращает глиф спрайта или GlyphUnknown.
func (e *Entity) Glyph() types.Glyph {
	if s, ok := FirstComponent[*SpriteComponent](e); ok {
		return s.Glyph
	}
	return types.GlyphUnknown
}
