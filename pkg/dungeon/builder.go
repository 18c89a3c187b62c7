package dungeon

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"roguely-server/internal/domain"
)

var (
	ErrEmptyMap     = errors.New("map size must be positive")
	ErrUnknownSpawn = errors.New("unknown entity template")
)

// Placement - сущность, которую нужно добавить в группу реестра.
type Placement struct {
	Group  string
	Entity *domain.Entity
}

// Level - результат сборки: карта, размещенные сущности и стартовая клетка игрока.
type Level struct {
	Map      *domain.Map
	Entities []Placement
	Start    domain.Point
}

type spawnRequest struct {
	template string
	count    int
}

// LevelBuilder предоставляет fluent API для создания уровней.
type LevelBuilder struct {
	name   string
	width  int
	height int
	passes int
	spawns []spawnRequest
	rng    domain.Rand
}

// NewLevel создает builder уровня с размерами по умолчанию.
func NewLevel(name string, rng domain.Rand) *LevelBuilder {
	return &LevelBuilder{
		name:   name,
		width:  100,
		height: 40,
		passes: DefaultPasses,
		rng:    rng,
	}
}

func (b *LevelBuilder) WithSize(width, height int) *LevelBuilder {
	b.width = width
	b.height = height
	return b
}

func (b *LevelBuilder) WithPasses(passes int) *LevelBuilder {
	if passes < 0 {
		passes = 0
	}
	b.passes = passes
	return b
}

// Spawn добавляет count сущностей из шаблона. Имя проверяется в Build.
func (b *LevelBuilder) Spawn(template string, count int) *LevelBuilder {
	if count > 0 {
		b.spawns = append(b.spawns, spawnRequest{template: template, count: count})
	}
	return b
}

// Build генерирует карту и расставляет сущности на свободный пол.
// Отрицательные размеры - паника генератора, нулевые - ErrEmptyMap.
func (b *LevelBuilder) Build() (*Level, error) {
	if b.width == 0 || b.height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyMap, b.width, b.height)
	}

	m := Generate(b.name, b.width, b.height, b.passes, b.rng)
	level := &Level{Map: m}

	// Индексы занятых клеток: y*width + x.
	taken := mapset.New[int]()
	place := func() (domain.Point, error) {
		for attempt := 0; attempt < b.width*b.height; attempt++ {
			p, err := m.RandomPoint(domain.FloorOnly(), b.rng)
			if err != nil {
				return domain.Point{}, err
			}
			idx := p.Y*b.width + p.X
			if !taken.Has(idx) {
				taken.Put(idx)
				return p, nil
			}
		}
		return domain.Point{}, fmt.Errorf("%w: no free floor left on %q", domain.ErrNoRandomPoint, b.name)
	}

	start, err := place()
	if err != nil {
		return nil, fmt.Errorf("place player start: %w", err)
	}
	level.Start = start

	for _, req := range b.spawns {
		tmpl, ok := LookupTemplate(req.template)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSpawn, req.template)
		}
		for i := 0; i < req.count; i++ {
			p, err := place()
			if err != nil {
				return nil, fmt.Errorf("spawn %s: %w", req.template, err)
			}
			level.Entities = append(level.Entities, Placement{Group: tmpl.Group, Entity: tmpl.Spawn(p)})
		}
	}

	return level, nil
}
