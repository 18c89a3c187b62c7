package agent

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"roguely-server/internal/core/types/enums"
	"roguely-server/internal/domain"
	"roguely-server/internal/engine"
	"roguely-server/internal/systems"
	"roguely-server/pkg/logger"
)

// Имена встроенных систем в таблице движка.
const (
	PickupSystemName  = "pickup"
	PursuitSystemName = "pursuit"
	HealthSystemName  = "health"
)

// Register подключает встроенные системы к движку.
func Register(s *engine.Service) {
	s.AddSystem(enums.SystemInput, PickupSystemName, PickupSystem)
	s.AddSystem(enums.SystemGeneric, HealthSystemName, HealthSystem)
	s.AddSystem(enums.SystemTick, PursuitSystemName, PursuitSystem)
}

// PickupSystem подбирает предметы в клетке игрока после каждой команды.
func PickupSystem(ctx *engine.SystemContext) error {
	if ctx.Player == nil {
		return nil
	}
	pos, ok := ctx.Player.Position()
	if !ok {
		return nil
	}

	s := ctx.Service
	reg := s.Registry()
	var firstErr error
	s.ForEachOverlapping(ctx.Player.Name(), pos, func(o domain.Overlap) {
		if o.Group != domain.GroupItems || firstErr != nil {
			return
		}
		res, err := systems.TryPickup(reg, ctx.Player, o)
		if err != nil {
			firstErr = err
			return
		}
		s.PlaySound("pickup")
		s.AddLog(fmt.Sprintf("Picked up %s (x%d, +%d).", res.Item, res.Count, res.Points), "INFO")
	})
	return firstErr
}

// PursuitSystem на каждом такте двигает мобов к игроку или атакует его.
func PursuitSystem(ctx *engine.SystemContext) error {
	if ctx.Player == nil || !systems.IsAlive(ctx.Player) {
		return nil
	}
	target, ok := ctx.Player.Position()
	if !ok {
		return nil
	}

	s := ctx.Service
	sp := s.Spatial()
	mobs, _ := s.Registry().EntitiesInGroup(domain.GroupMobs)
	groups := []string{domain.GroupMobs}

	for _, mob := range mobs {
		d := systems.ComputeMobAction(sp, mob, target, groups)
		switch d.Intent {
		case systems.IntentAttack:
			res := systems.ApplyAttack(mob, ctx.Player)
			s.PlaySound("hit")
			s.AddLog(res.Message, "COMBAT")
			if res.Died {
				return nil
			}
		case systems.IntentMove:
			if !sp.IsBlocked(d.Step.X, d.Step.Y, groups) {
				mob.SetPosition(d.Step)
			}
		}
	}
	return nil
}

// HealthSystem убирает погибших мобов. Погибший игрок возрождается
// в случайной свободной клетке с полным здоровьем.
func HealthSystem(ctx *engine.SystemContext) error {
	s := ctx.Service
	reg := s.Registry()
	healthLogger := logger.Log.WithField("component", "health_system")

	mobs, _ := reg.EntitiesInGroup(domain.GroupMobs)
	var dead []*domain.Entity
	for _, mob := range mobs {
		if h, ok := domain.FirstComponent[*domain.HealthComponent](mob); ok && h.IsDead {
			dead = append(dead, mob)
		}
	}
	for _, mob := range dead {
		reg.RemoveEntity(domain.GroupMobs, mob.ID)
		s.PlaySound("death")
		s.AddLog(fmt.Sprintf("%s dies.", mob.Name()), "COMBAT")
		healthLogger.WithField("mob", mob.FullName()).Info("Mob removed.")
	}

	if ctx.Player == nil {
		return nil
	}
	h, ok := domain.FirstComponent[*domain.HealthComponent](ctx.Player)
	if !ok || !h.IsDead {
		return nil
	}

	p, err := s.RandomPointOnMap()
	if err != nil {
		return fmt.Errorf("respawn player: %w", err)
	}
	h.IsDead = false
	h.Current = h.Max
	ctx.Player.SetPosition(p)
	s.UpdateViewport(p)
	s.AddLog("You died. Respawned.", "INFO")
	healthLogger.WithFields(logrus.Fields{
		"player": ctx.Player.FullName(),
		"pos":    p,
	}).Info("Player respawned.")
	return nil
}
