package domain

import (
	"roguely-server/internal/core/types"
	"roguely-server/internal/core/types/enums"
)

// ComponentValue читает целое значение компонента по имени вида и ключу.
// score -> счет, health -> здоровье, stats -> атака, value -> ценность.
// Типизированные компоненты принимают пустой ключ или имя своего поля
// ("score", "attack", "value"; у здоровья "current"/"health" и "max").
// Неизвестный вид ищется в таблицах PropertiesComponent.
// Во всех остальных случаях, включая нераспознанный ключ, возвращается ValueNotFound.
func ComponentValue(e *Entity, component, key string) int {
	if e == nil {
		return ValueNotFound
	}

	if c, ok := intValued(e, component); ok {
		if v, ok := c.IntValue(key); ok {
			return v
		}
		return ValueNotFound
	}

	for _, p := range Components[*PropertiesComponent](e) {
		if v, ok := p.Get(component, key); ok {
			return v
		}
	}
	return ValueNotFound
}

// SetComponentValue - зеркальная запись. Возвращает, удалось ли обновить значение.
func SetComponentValue(e *Entity, component, key string, v int) bool {
	if e == nil {
		return false
	}

	if c, ok := intValued(e, component); ok {
		return c.SetIntValue(key, v)
	}

	for _, p := range Components[*PropertiesComponent](e) {
		if p.Set(component, key, v) {
			return true
		}
	}
	return false
}

func intValued(e *Entity, component string) (IntValued, bool) {
	switch kind := enums.ParseComponentKind(component); kind {
	case enums.ComponentScore, enums.ComponentHealth, enums.ComponentStats, enums.ComponentValue:
		if c, ok := e.FirstComponentOfKind(kind).(IntValued); ok {
			return c, true
		}
	}
	return nil, false
}

// GetComponentValue - ComponentValue для сущности группы.
func (r *Registry) GetComponentValue(group string, id types.ID, component, key string) int {
	e, ok := r.EntityByID(group, id)
	if !ok {
		return ValueNotFound
	}
	return ComponentValue(e, component, key)
}

func (r *Registry) SetComponentValue(group string, id types.ID, component, key string, v int) bool {
	e, ok := r.EntityByID(group, id)
	if !ok {
		return false
	}
	return SetComponentValue(e, component, key, v)
}

// UpsertInventoryItem обновляет количество предмета или добавляет его.
// Сущность без инвентаря - отказ.
func (r *Registry) UpsertInventoryItem(group string, id types.ID, item string, count int) bool {
	e, ok := r.EntityByID(group, id)
	if !ok {
		return false
	}
	inv, ok := FirstComponent[*InventoryComponent](e)
	if !ok {
		return false
	}
	inv.Upsert(item, count)
	return true
}
