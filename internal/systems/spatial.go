package systems

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"roguely-server/internal/core/types/enums"
	"roguely-server/internal/domain"
	"roguely-server/pkg/logger"
)

var ErrNoOpenPoint = errors.New("no unblocked point on map")

// Множитель площади карты для числа попыток RandomUnblockedPoint.
const randomPointAttemptFactor = 4

// Spatial отвечает на вопросы "занята ли клетка" по карте и позициям сущностей.
type Spatial struct {
	Map      *domain.Map
	Registry *domain.Registry
	Rand     domain.Rand
}

func NewSpatial(m *domain.Map, reg *domain.Registry, rng domain.Rand) *Spatial {
	return &Spatial{Map: m, Registry: reg, Rand: rng}
}

// IsBlocked - клетка вне карты, стена, занята сущностью из groups
// или совпадает с клеткой игрока. Клетка игрока всегда считается занятой,
// чтобы поиск свободных точек не выдавал ее.
func (s *Spatial) IsBlocked(x, y int, groups []string) bool {
	p := domain.Point{X: x, Y: y}

	if pp, ok := s.Registry.PlayerPosition(); ok && pp == p {
		return true
	}
	if s.Map.IsWall(x, y) {
		return true
	}
	for _, g := range groups {
		if _, ok := s.Registry.FindEntity(g, domain.AtPoint(p)); ok {
			return true
		}
	}
	return false
}

// OpenPointNear проверяет соседей в порядке влево, вправо, вверх, вниз,
// затем берет случайную свободную точку карты.
func (s *Spatial) OpenPointNear(x, y int, groups []string) (domain.Point, error) {
	candidates := [4]domain.Point{
		{X: x - 1, Y: y},
		{X: x + 1, Y: y},
		{X: x, Y: y - 1},
		{X: x, Y: y + 1},
	}
	for _, c := range candidates {
		if !s.IsBlocked(c.X, c.Y, groups) {
			return c, nil
		}
	}
	return s.RandomUnblockedPoint(groups)
}

// RandomUnblockedPoint выбирает случайные клетки, пока не найдет свободную.
// Число попыток пропорционально площади карты; после них - ErrNoOpenPoint.
func (s *Spatial) RandomUnblockedPoint(groups []string) (domain.Point, error) {
	if s.Map.Width <= 0 || s.Map.Height <= 0 {
		return domain.Point{}, domain.ErrEmptyMap
	}

	maxAttempts := s.Map.Width * s.Map.Height * randomPointAttemptFactor
	for attempt := 0; attempt < maxAttempts; attempt++ {
		x := s.Rand.IntRange(0, s.Map.Width-1)
		y := s.Rand.IntRange(0, s.Map.Height-1)
		if !s.IsBlocked(x, y, groups) {
			return domain.Point{X: x, Y: y}, nil
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "spatial_query",
		"map":       s.Map.Name,
		"attempts":  maxAttempts,
	}).Warn("Random point search exhausted.")
	return domain.Point{}, fmt.Errorf("%w %q after %d attempts", ErrNoOpenPoint, s.Map.Name, maxAttempts)
}

// TileWalkability - результат проверки шага.
type TileWalkability struct {
	Walkable  bool               `json:"walkable"`
	Point     domain.Point       `json:"point"`
	Occupant  enums.OccupantKind `json:"occupant"`
	BlockedBy *domain.Entity     `json:"-"`
}

// IsTileWalkable проверяет шаг из (x, y) в направлении dir.
// Порядок: столкновение с игроком, затем по каждой группе стена и занятость.
// Первая найденная преграда прерывает проверку.
func (s *Spatial) IsTileWalkable(x, y int, dir enums.Direction, groups []string) TileWalkability {
	dest := domain.Point{X: x, Y: y}.Step(dir)

	if player, ok := s.Registry.Player(); ok && player.IsAt(dest) {
		return TileWalkability{Point: dest, Occupant: enums.OccupantPlayer, BlockedBy: player}
	}

	if len(groups) == 0 && s.Map.IsWall(dest.X, dest.Y) {
		return TileWalkability{Point: dest, Occupant: enums.OccupantWall}
	}

	for _, g := range groups {
		if s.Map.IsWall(dest.X, dest.Y) {
			return TileWalkability{Point: dest, Occupant: enums.OccupantWall}
		}
		if e, ok := s.Registry.FindEntity(g, domain.AtPoint(dest)); ok {
			return TileWalkability{Point: dest, Occupant: enums.OccupantEntity, BlockedBy: e}
		}
	}

	return TileWalkability{Walkable: true, Point: dest, Occupant: enums.OccupantGround}
}

// Adjacent - соседняя клетка и ее проходимость.
type Adjacent struct {
	Point   domain.Point
	Blocked bool
}

// AdjacentPoints возвращает четыре соседние клетки с признаком занятости.
func (s *Spatial) AdjacentPoints(x, y int, groups []string) map[enums.Direction]Adjacent {
	out := make(map[enums.Direction]Adjacent, 4)
	for _, d := range []enums.Direction{enums.DirectionUp, enums.DirectionDown, enums.DirectionLeft, enums.DirectionRight} {
		p := domain.Point{X: x, Y: y}.Step(d)
		out[d] = Adjacent{Point: p, Blocked: s.IsBlocked(p.X, p.Y, groups)}
	}
	return out
}

// Occupants возвращает позиции сущностей из groups (для сетки проходимости A*).
func (s *Spatial) Occupants(groups []string, exclude ...*domain.Entity) []domain.Point {
	var out []domain.Point
	for _, g := range groups {
		entities, _ := s.Registry.EntitiesInGroup(g)
		for _, e := range entities {
			if containsEntity(exclude, e) {
				continue
			}
			if p, ok := e.Position(); ok {
				out = append(out, p)
			}
		}
	}
	return out
}

func containsEntity(list []*domain.Entity, e *domain.Entity) bool {
	for _, x := range list {
		if x == e {
			return true
		}
	}
	return false
}
