package systems

import (
	"roguely-server/internal/core/types/enums"
	"roguely-server/internal/domain"
)

// MovementResult - результат вычисления движения
type MovementResult struct {
	Target    domain.Point
	HasMoved  bool
	BlockedBy *domain.Entity // Если врезались в кого-то (для атаки)
	IsWall    bool           // Если врезались в стену или край карты
	Occupant  enums.OccupantKind
}

// CalculateMove вычисляет новую позицию. Не меняет состояние мира!
func CalculateMove(sp *Spatial, e *domain.Entity, dir enums.Direction, groups []string) MovementResult {
	from, ok := e.Position()
	if !ok || dir == enums.DirectionNone {
		return MovementResult{Target: from}
	}

	tw := sp.IsTileWalkable(from.X, from.Y, dir, groups)
	res := MovementResult{Target: tw.Point, Occupant: tw.Occupant, BlockedBy: tw.BlockedBy}

	switch {
	case tw.Walkable:
		res.HasMoved = true
	case tw.Occupant == enums.OccupantWall:
		res.IsWall = true
	}
	return res
}

// ApplyMove переносит сущность, если движение состоялось.
func ApplyMove(e *domain.Entity, res MovementResult) bool {
	if !res.HasMoved {
		return false
	}
	e.SetPosition(res.Target)
	return true
}
