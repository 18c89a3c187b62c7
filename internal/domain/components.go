package domain

import (
	"roguely-server/internal/core/types"
	"roguely-server/internal/core/types/enums"
)

// Component - элемент открытого набора данных сущности.
type Component interface {
	Kind() enums.ComponentKind
	Name() string
}

// IntValued - компонент, отдающий и принимающий одно целое значение по ключу.
type IntValued interface {
	Component
	IntValue(key string) (int, bool)
	SetIntValue(key string, v int) bool
}

// --- КОМПОНЕНТЫ ---

// SpriteComponent - визуальное представление (спрайт-лист или глиф).
type SpriteComponent struct {
	Sheet    string      `json:"sheet,omitempty"`
	SpriteID int         `json:"spriteId"`
	Glyph    types.Glyph `json:"glyph"`
}

func (*SpriteComponent) Kind() enums.ComponentKind { return enums.ComponentSprite }
func (*SpriteComponent) Name() string              { return enums.ComponentSprite.String() }

// PositionComponent - клетка, которую занимает сущность.
type PositionComponent struct {
	Point
}

func (*PositionComponent) Kind() enums.ComponentKind { return enums.ComponentPosition }
func (*PositionComponent) Name() string              { return enums.ComponentPosition.String() }

// HealthComponent - здоровье. Ключ "max" адресует максимум,
// "", "current" и "health" - текущее значение.
type HealthComponent struct {
	Current int  `json:"current"`
	Max     int  `json:"max"`
	IsDead  bool `json:"isDead"`
}

func (*HealthComponent) Kind() enums.ComponentKind { return enums.ComponentHealth }
func (*HealthComponent) Name() string              { return enums.ComponentHealth.String() }

func (h *HealthComponent) IntValue(key string) (int, bool) {
	switch key {
	case "max":
		return h.Max, true
	case "", "current", "health":
		return h.Current, true
	}
	return 0, false
}

func (h *HealthComponent) SetIntValue(key string, v int) bool {
	switch key {
	case "max":
		h.Max = v
	case "", "current", "health":
		h.Current = v
		h.IsDead = h.Current <= 0
	default:
		return false
	}
	return true
}

// TakeDamage наносит урон. Возвращает true, если цель погибла этим ударом.
func (h *HealthComponent) TakeDamage(amount int) bool {
	if h.IsDead {
		return false
	}
	if amount < 0 {
		amount = 0
	}

	h.Current -= amount
	if h.Current <= 0 {
		h.Current = 0
		h.IsDead = true
		return true
	}
	return false
}

// Heal лечит, не превышая максимум. Мертвых не лечит.
func (h *HealthComponent) Heal(amount int) {
	if h.IsDead {
		return
	}
	h.Current += amount
	if h.Max > 0 && h.Current > h.Max {
		h.Current = h.Max
	}
}

// StatsComponent - боевые характеристики. Обобщенный доступ отдает атаку.
type StatsComponent struct {
	Attack int `json:"attack"`
}

func (*StatsComponent) Kind() enums.ComponentKind { return enums.ComponentStats }
func (*StatsComponent) Name() string              { return enums.ComponentStats.String() }

func (s *StatsComponent) IntValue(key string) (int, bool) {
	if !fieldKey(key, "attack") {
		return 0, false
	}
	return s.Attack, true
}

func (s *StatsComponent) SetIntValue(key string, v int) bool {
	if !fieldKey(key, "attack") {
		return false
	}
	s.Attack = v
	return true
}

type ScoreComponent struct {
	Score int `json:"score"`
}

func (*ScoreComponent) Kind() enums.ComponentKind { return enums.ComponentScore }
func (*ScoreComponent) Name() string              { return enums.ComponentScore.String() }

func (s *ScoreComponent) IntValue(key string) (int, bool) {
	if !fieldKey(key, "score") {
		return 0, false
	}
	return s.Score, true
}

func (s *ScoreComponent) SetIntValue(key string, v int) bool {
	if !fieldKey(key, "score") {
		return false
	}
	s.Score = v
	return true
}

// ValueComponent - ценность предмета (сколько очков он дает).
type ValueComponent struct {
	Value int `json:"value"`
}

func (*ValueComponent) Kind() enums.ComponentKind { return enums.ComponentValue }
func (*ValueComponent) Name() string              { return enums.ComponentValue.String() }

func (v *ValueComponent) IntValue(key string) (int, bool) {
	if !fieldKey(key, "value") {
		return 0, false
	}
	return v.Value, true
}

func (v *ValueComponent) SetIntValue(key string, n int) bool {
	if !fieldKey(key, "value") {
		return false
	}
	v.Value = n
	return true
}

// fieldKey: пустой ключ или имя единственного поля компонента.
func fieldKey(key, field string) bool {
	return key == "" || key == field
}

// PropertiesComponent - открытый набор таблиц "компонент -> ключ -> значение"
// для сущностей, описанных данными, а не типами.
type PropertiesComponent struct {
	Label  string                    `json:"label"`
	Tables map[string]map[string]int `json:"tables"`
}

func NewPropertiesComponent(label string) *PropertiesComponent {
	return &PropertiesComponent{Label: label, Tables: make(map[string]map[string]int)}
}

func (*PropertiesComponent) Kind() enums.ComponentKind { return enums.ComponentProperties }

func (p *PropertiesComponent) Name() string {
	if p.Label == "" {
		return enums.ComponentProperties.String()
	}
	return p.Label
}

// Get читает tables[table][key].
func (p *PropertiesComponent) Get(table, key string) (int, bool) {
	t, ok := p.Tables[table]
	if !ok {
		return 0, false
	}
	v, ok := t[key]
	return v, ok
}

// Set пишет только в существующую таблицу.
func (p *PropertiesComponent) Set(table, key string, v int) bool {
	t, ok := p.Tables[table]
	if !ok {
		return false
	}
	t[key] = v
	return true
}

// Put создает таблицу при необходимости.
func (p *PropertiesComponent) Put(table, key string, v int) {
	t, ok := p.Tables[table]
	if !ok {
		t = make(map[string]int)
		p.Tables[table] = t
	}
	t[key] = v
}
