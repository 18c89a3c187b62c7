package actions

import (
	"roguely-server/internal/core/types/enums"
	"roguely-server/internal/domain"
	"roguely-server/internal/engine/handlers"
	"roguely-server/internal/systems"
	"roguely-server/pkg/api"
)

// Группы, чьи сущности преграждают путь при ходьбе.
var blockingGroups = []string{domain.GroupMobs}

func HandleMove(ctx handlers.Context, p api.DirectionPayload) (handlers.Result, error) {
	dir := enums.ParseDirection(p.Direction)
	res := systems.CalculateMove(ctx.Spatial, ctx.Actor, dir, blockingGroups)

	if res.HasMoved {
		systems.ApplyMove(ctx.Actor, res)
		return handlers.EmptyResult(), nil
	}

	if res.BlockedBy != nil && res.BlockedBy != ctx.Actor && systems.IsAlive(res.BlockedBy) {
		atk := systems.ApplyAttack(ctx.Actor, res.BlockedBy)
		return handlers.Result{Msg: atk.Message, MsgType: "COMBAT", Sounds: []string{"hit"}}, nil
	}

	if res.IsWall {
		return handlers.Result{Sounds: []string{"bump"}}, nil
	}

	return handlers.EmptyResult(), nil
}
