package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roguely-server/internal/core/types/enums"
	"roguely-server/internal/domain"
	"roguely-server/pkg/dungeon"
	"roguely-server/pkg/utils"
)

func TestCalculateMove(t *testing.T) {
	m := mapFromRows(
		"#####",
		"#...#",
		"#####",
	)
	reg, player := worldWithPlayer(domain.Point{X: 1, Y: 1})
	rat := spawn(reg, dungeon.Rat, domain.Point{X: 3, Y: 1})
	sp := NewSpatial(m, reg, utils.NewRandom(1))
	mobs := []string{domain.GroupMobs}

	res := CalculateMove(sp, player, enums.DirectionUp, mobs)
	assert.True(t, res.IsWall)
	assert.False(t, res.HasMoved)

	res = CalculateMove(sp, player, enums.DirectionRight, mobs)
	assert.True(t, res.HasMoved)
	assert.True(t, ApplyMove(player, res))
	assert.True(t, player.IsAt(domain.Point{X: 2, Y: 1}))

	res = CalculateMove(sp, player, enums.DirectionRight, mobs)
	assert.False(t, res.HasMoved)
	assert.Equal(t, rat, res.BlockedBy)
	assert.False(t, ApplyMove(player, res))

	res = CalculateMove(sp, rat, enums.DirectionLeft, mobs)
	assert.Equal(t, enums.OccupantPlayer, res.Occupant)
	assert.Equal(t, player, res.BlockedBy)

	res = CalculateMove(sp, player, enums.DirectionNone, mobs)
	assert.False(t, res.HasMoved)
}
