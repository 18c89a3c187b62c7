package systems

import (
	"github.com/sirupsen/logrus"

	"roguely-server/internal/core/types/enums"
	"roguely-server/internal/domain"
	"roguely-server/pkg/logger"
)

// MobIntent - решение моба на текущий кадр.
type MobIntent int

const (
	IntentWait MobIntent = iota
	IntentMove
	IntentAttack
)

func (i MobIntent) String() string {
	switch i {
	case IntentMove:
		return "MOVE"
	case IntentAttack:
		return "ATTACK"
	default:
		return "WAIT"
	}
}

// MobDecision - намерение и, для движения, следующая клетка.
type MobDecision struct {
	Intent MobIntent
	Step   domain.Point
}

// Ограничение A* для преследования: цель не дальше AggroRadius,
// значит и осмысленный путь короткий.
const pursuitBudget = 4 * domain.AggroRadius * domain.AggroRadius

// ComputeMobAction решает, что делать мобу по отношению к target.
// Моб без здоровья или мертвый ждет. Соседняя цель атакуется.
// Видимая цель в радиусе агрессии преследуется по A*, где прочие сущности groups считаются стенами.
func ComputeMobAction(sp *Spatial, mob *domain.Entity, target domain.Point, groups []string) MobDecision {
	aiLogger := logger.Log.WithFields(logrus.Fields{
		"component": "ai_system",
		"mob":       mob.FullName(),
		"target":    target,
	})

	pos, ok := mob.Position()
	if !ok || !IsAlive(mob) {
		return MobDecision{Intent: IntentWait}
	}

	if pos.IsAdjacent(target) {
		aiLogger.Debug("Target adjacent. Attacking.")
		return MobDecision{Intent: IntentAttack, Step: target}
	}

	if pos.DistanceTo(target) > domain.AggroRadius {
		return MobDecision{Intent: IntentWait}
	}
	if !HasLineOfSight(sp.Map, pos, target) {
		aiLogger.Debug("Target not visible.")
		return MobDecision{Intent: IntentWait}
	}

	g := WalkableGrid(sp.Map, sp.Occupants(groups, mob))
	path := FindPathWithBudget(g, CellOf(pos), CellOf(target), pursuitBudget)
	if len(path) < 2 {
		aiLogger.Debug("No path to target.")
		return MobDecision{Intent: IntentWait}
	}

	next := PathToPoints(path[1:2])[0]
	aiLogger.WithField("step", next).Debug("Pursuing target.")
	return MobDecision{Intent: IntentMove, Step: next}
}

// DirectionTo - направление шага между соседними клетками.
func DirectionTo(from, to domain.Point) enums.Direction {
	switch {
	case to.X == from.X && to.Y == from.Y-1:
		return enums.DirectionUp
	case to.X == from.X && to.Y == from.Y+1:
		return enums.DirectionDown
	case to.Y == from.Y && to.X == from.X-1:
		return enums.DirectionLeft
	case to.Y == from.Y && to.X == from.X+1:
		return enums.DirectionRight
	}
	return enums.DirectionNone
}
