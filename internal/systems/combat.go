package systems

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"roguely-server/internal/domain"
	"roguely-server/pkg/logger"
)

// AttackResult - итог одного удара.
type AttackResult struct {
	Damage  int
	Died    bool
	Message string
}

// ApplyAttack наносит target урон, равный атаке attacker (минимум 1).
func ApplyAttack(attacker, target *domain.Entity) AttackResult {
	combatLogger := logger.Log.WithFields(logrus.Fields{
		"component":   "combat_system",
		"attacker":    attacker.FullName(),
		"target":      target.FullName(),
		"target_name": target.Name(),
	})

	health, ok := domain.FirstComponent[*domain.HealthComponent](target)
	if !ok {
		combatLogger.Warn("Attack failed: target has no health component.")
		return AttackResult{Message: fmt.Sprintf("%s attacks %s, to no effect.", attacker.Name(), target.Name())}
	}
	if health.IsDead {
		combatLogger.Info("Attack ineffective: target is already dead.")
		return AttackResult{Message: fmt.Sprintf("%s kicks the corpse of %s.", attacker.Name(), target.Name())}
	}

	damage := 1
	if stats, ok := domain.FirstComponent[*domain.StatsComponent](attacker); ok && stats.Attack > damage {
		damage = stats.Attack
	}

	hpBefore := health.Current
	died := health.TakeDamage(damage)

	combatLogger.WithFields(logrus.Fields{
		"damage":      damage,
		"hp_before":   hpBefore,
		"hp_after":    health.Current,
		"target_died": died,
	}).Info("Attack resolved.")

	msg := fmt.Sprintf("%s hits %s for %d.", attacker.Name(), target.Name(), damage)
	if died {
		msg += fmt.Sprintf(" %s dies.", target.Name())
	}
	return AttackResult{Damage: damage, Died: died, Message: msg}
}

// IsAlive - у сущности есть здоровье и она не мертва.
func IsAlive(e *domain.Entity) bool {
	h, ok := domain.FirstComponent[*domain.HealthComponent](e)
	return ok && !h.IsDead
}
