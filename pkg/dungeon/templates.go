package dungeon

import (
	"sort"

	"roguely-server/internal/core/types"
	"roguely-server/internal/domain"
)

// EntityTemplate описывает, из каких компонентов собирается сущность.
// Нулевые поля означают отсутствие компонента.
type EntityTemplate struct {
	Name   string
	Group  string
	Glyph  types.Glyph
	Health int
	Attack int
	Value  int
}

// Spawn создает сущность в клетке pos. Дескриптор выдает реестр при добавлении.
func (t EntityTemplate) Spawn(pos domain.Point) *domain.Entity {
	e := domain.NewEntity(t.Name)
	e.AddComponent(&domain.SpriteComponent{Glyph: t.Glyph})
	e.SetPosition(pos)

	if t.Health > 0 {
		e.AddComponent(&domain.HealthComponent{Current: t.Health, Max: t.Health})
	}
	if t.Attack > 0 {
		e.AddComponent(&domain.StatsComponent{Attack: t.Attack})
	}
	if t.Value > 0 {
		e.AddComponent(&domain.ValueComponent{Value: t.Value})
	}
	return e
}

// --- МОБЫ ---

var Rat = EntityTemplate{
	Name:   "rat",
	Group:  domain.GroupMobs,
	Glyph:  types.MakeGlyph(0xA16207, 'r'),
	Health: 4,
	Attack: 1,
}

var Goblin = EntityTemplate{
	Name:   "goblin",
	Group:  domain.GroupMobs,
	Glyph:  types.MakeGlyph(0x22C55E, 'g'),
	Health: 15,
	Attack: 2,
}

var Orc = EntityTemplate{
	Name:   "orc",
	Group:  domain.GroupMobs,
	Glyph:  types.MakeGlyph(0xDC2626, 'O'),
	Health: 30,
	Attack: 5,
}

var MobTemplates = map[string]EntityTemplate{
	"rat":    Rat,
	"goblin": Goblin,
	"orc":    Orc,
}

// --- ПРЕДМЕТЫ ---

var GoldCoin = EntityTemplate{
	Name:  "coin",
	Group: domain.GroupItems,
	Glyph: types.MakeGlyph(0xFACC15, '$'),
	Value: 10,
}

var Gem = EntityTemplate{
	Name:  "gem",
	Group: domain.GroupItems,
	Glyph: types.MakeGlyph(0x38BDF8, '*'),
	Value: 50,
}

var HealthPotion = EntityTemplate{
	Name:  "health_potion",
	Group: domain.GroupItems,
	Glyph: types.MakeGlyph(0xEF4444, '!'),
	Value: 1,
}

var ItemTemplates = map[string]EntityTemplate{
	"coin":          GoldCoin,
	"gem":           Gem,
	"health_potion": HealthPotion,
}

// LookupTemplate ищет шаблон среди мобов и предметов.
func LookupTemplate(name string) (EntityTemplate, bool) {
	if t, ok := MobTemplates[name]; ok {
		return t, true
	}
	t, ok := ItemTemplates[name]
	return t, ok
}

// TemplateNames - имена всех шаблонов по алфавиту.
func TemplateNames() []string {
	names := make([]string, 0, len(MobTemplates)+len(ItemTemplates))
	for n := range MobTemplates {
		names = append(names, n)
	}
	for n := range ItemTemplates {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NewPlayer создает игрока со стартовыми компонентами.
func NewPlayer(name string, pos domain.Point) *domain.Entity {
	p := EntityTemplate{
		Name:   name,
		Group:  domain.GroupPlayer,
		Glyph:  types.GlyphPlayer,
		Health: 100,
		Attack: 10,
	}.Spawn(pos)

	p.AddComponent(&domain.ScoreComponent{})
	p.AddComponent(&domain.InventoryComponent{})
	return p
}
