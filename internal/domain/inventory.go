package domain

import "roguely-server/internal/core/types/enums"

// InventoryItem - запись "название предмета -> количество".
type InventoryItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// InventoryComponent хранит предметы в порядке первого появления.
type InventoryComponent struct {
	Items []InventoryItem `json:"items"`
}

func (*InventoryComponent) Kind() enums.ComponentKind { return enums.ComponentInventory }
func (*InventoryComponent) Name() string              { return enums.ComponentInventory.String() }

// Upsert: если предмет уже есть, количество заменяется; иначе запись добавляется в конец.
func (inv *InventoryComponent) Upsert(name string, count int) {
	for i := range inv.Items {
		if inv.Items[i].Name == name {
			inv.Items[i].Count = count
			return
		}
	}
	inv.Items = append(inv.Items, InventoryItem{Name: name, Count: count})
}

// Count возвращает количество предмета или 0.
func (inv *InventoryComponent) Count(name string) int {
	for _, it := range inv.Items {
		if it.Name == name {
			return it.Count
		}
	}
	return 0
}

// Remove удаляет запись. Возвращает false, если предмета не было.
func (inv *InventoryComponent) Remove(name string) bool {
	for i, it := range inv.Items {
		if it.Name == name {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			return true
		}
	}
	return false
}
