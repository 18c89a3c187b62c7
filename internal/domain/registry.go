package domain

import (
	"sort"

	"roguely-server/internal/core/types"
)

// EntityGroup - именованная группа, единолично владеющая списком своих сущностей.
type EntityGroup struct {
	Name     string    `json:"name"`
	Entities []*Entity `json:"entities"`
}

// slot - ячейка арены. Поколение растет при каждом освобождении.
// Ячейка, исчерпавшая поколения, выводится из оборота навсегда.
type slot struct {
	gen    uint32
	entity *Entity
	group  string
}

// Registry хранит группы сущностей и арену дескрипторов.
// Все ссылки (группы, игрок) - это types.ID, указатели живут только в арене.
type Registry struct {
	groups []*EntityGroup
	slots  []slot
	free   []uint32
	player types.ID
}

func NewRegistry() *Registry {
	return &Registry{}
}

// --- АРЕНА ---

func (r *Registry) alloc(e *Entity, group string) types.ID {
	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		idx = uint32(len(r.slots))
		r.slots = append(r.slots, slot{gen: 1})
	}

	s := &r.slots[idx]
	s.entity = e
	s.group = group
	e.ID = types.PackID(types.ArenaEntity, s.gen, idx)
	return e.ID
}

func (r *Registry) release(id types.ID) {
	s := &r.slots[id.Index()]
	s.entity = nil
	s.group = ""
	if s.gen < types.MaxGeneration {
		s.gen++
		r.free = append(r.free, id.Index())
	}
	if r.player == id {
		r.player = types.NilID
	}
}

func (r *Registry) live(id types.ID) (*slot, bool) {
	if id.Arena() != types.ArenaEntity || int(id.Index()) >= len(r.slots) {
		return nil, false
	}
	s := &r.slots[id.Index()]
	if s.entity == nil || s.gen != id.Generation() {
		return nil, false
	}
	return s, true
}

// Lookup разрешает дескриптор в сущность. Устаревший дескриптор не найдется.
func (r *Registry) Lookup(id types.ID) (*Entity, bool) {
	s, ok := r.live(id)
	if !ok {
		return nil, false
	}
	return s.entity, true
}

// GroupOf возвращает имя группы, которой принадлежит сущность.
func (r *Registry) GroupOf(id types.ID) (string, bool) {
	s, ok := r.live(id)
	if !ok {
		return "", false
	}
	return s.group, true
}

// Len - количество живых сущностей.
func (r *Registry) Len() int {
	return len(r.slots) - len(r.free)
}

// --- ГРУППЫ ---

// CreateGroup всегда добавляет новую группу, даже если имя уже занято.
func (r *Registry) CreateGroup(name string) *EntityGroup {
	g := &EntityGroup{Name: name}
	r.groups = append(r.groups, g)
	return g
}

// Group возвращает первую группу с данным именем.
func (r *Registry) Group(name string) (*EntityGroup, bool) {
	for _, g := range r.groups {
		if g.Name == name {
			return g, true
		}
	}
	return nil, false
}

func (r *Registry) groupOrCreate(name string) *EntityGroup {
	if g, ok := r.Group(name); ok {
		return g
	}
	return r.CreateGroup(name)
}

// GroupNames - имена групп в порядке создания (без повторов).
func (r *Registry) GroupNames() []string {
	seen := make(map[string]struct{}, len(r.groups))
	names := make([]string, 0, len(r.groups))
	for _, g := range r.groups {
		if _, dup := seen[g.Name]; dup {
			continue
		}
		seen[g.Name] = struct{}{}
		names = append(names, g.Name)
	}
	return names
}

func (r *Registry) EntitiesInGroup(name string) ([]*Entity, bool) {
	g, ok := r.Group(name)
	if !ok {
		return nil, false
	}
	return g.Entities, true
}

// AddEntityToGroup создает группу при отсутствии и добавляет сущность в конец.
// Сущность без живого дескриптора получает новый; сущность из другой группы переносится.
func (r *Registry) AddEntityToGroup(group string, e *Entity) types.ID {
	g := r.groupOrCreate(group)

	if s, ok := r.live(e.ID); ok && s.entity == e {
		if s.group == group {
			return e.ID
		}
		if old, ok := r.Group(s.group); ok {
			old.Entities = removeByID(old.Entities, e.ID)
		}
		s.group = group
	} else {
		r.alloc(e, group)
	}

	g.Entities = append(g.Entities, e)
	return e.ID
}

// CreateEntityInGroup создает пустую сущность. Отсутствующая группа - отказ.
func (r *Registry) CreateEntityInGroup(group, name string) (*Entity, bool) {
	g, ok := r.Group(group)
	if !ok {
		return nil, false
	}
	e := NewEntity(name)
	r.alloc(e, g.Name)
	g.Entities = append(g.Entities, e)
	return e, true
}

// RemoveEntity удаляет первую сущность группы с данным id. Иначе ничего не делает.
func (r *Registry) RemoveEntity(group string, id types.ID) bool {
	g, ok := r.Group(group)
	if !ok {
		return false
	}
	for i, e := range g.Entities {
		if e.ID == id {
			g.Entities = append(g.Entities[:i], g.Entities[i+1:]...)
			if s, ok := r.live(id); ok && s.entity == e {
				r.release(id)
			}
			return true
		}
	}
	return false
}

func removeByID(entities []*Entity, id types.ID) []*Entity {
	for i, e := range entities {
		if e.ID == id {
			return append(entities[:i], entities[i+1:]...)
		}
	}
	return entities
}

// --- ПОИСК ---

func (r *Registry) FindEntity(group string, pred Predicate) (*Entity, bool) {
	g, ok := r.Group(group)
	if !ok {
		return nil, false
	}
	for _, e := range g.Entities {
		if pred(e) {
			return e, true
		}
	}
	return nil, false
}

// FindEntitiesInGroup - пустой результат, если группы нет или совпадений нет.
func (r *Registry) FindEntitiesInGroup(group string, pred Predicate) []*Entity {
	g, ok := r.Group(group)
	if !ok {
		return nil
	}
	var out []*Entity
	for _, e := range g.Entities {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

func (r *Registry) EntityByName(group, name string) (*Entity, bool) {
	return r.FindEntity(group, ByName(name))
}

func (r *Registry) EntityByID(group string, id types.ID) (*Entity, bool) {
	return r.FindEntity(group, ByID(id))
}

func (r *Registry) EntityIDByName(group, name string) (types.ID, bool) {
	e, ok := r.EntityByName(group, name)
	if !ok {
		return types.NilID, false
	}
	return e.ID, true
}

// Each обходит все группы по порядку. fn возвращает false, чтобы остановиться.
func (r *Registry) Each(fn func(group string, e *Entity) bool) {
	for _, g := range r.groups {
		for _, e := range g.Entities {
			if !fn(g.Name, e) {
				return
			}
		}
	}
}

// --- ИГРОК ---

// SetPlayer назначает игрока. Роль игрока не зависит от членства в группе.
func (r *Registry) SetPlayer(id types.ID) bool {
	if _, ok := r.live(id); !ok {
		return false
	}
	r.player = id
	return true
}

func (r *Registry) PlayerID() types.ID { return r.player }

func (r *Registry) Player() (*Entity, bool) {
	return r.Lookup(r.player)
}

// PlayerPosition - позиция игрока, если он есть и размещен.
func (r *Registry) PlayerPosition() (Point, bool) {
	p, ok := r.Player()
	if !ok {
		return Point{}, false
	}
	return p.Position()
}

// Snapshot возвращает группы, отсортированные по имени (для отладочных ответов).
func (r *Registry) Snapshot() []*EntityGroup {
	out := make([]*EntityGroup, len(r.groups))
	copy(out, r.groups)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
