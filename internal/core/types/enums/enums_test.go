package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseComponentKind(t *testing.T) {
	tests := []struct {
		in   string
		want ComponentKind
	}{
		{"health", ComponentHealth},
		{"health_component", ComponentHealth},
		{"Score", ComponentScore},
		{"stats_component", ComponentStats},
		{"inventory", ComponentInventory},
		{"mana", ComponentUnknown},
		{"", ComponentUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseComponentKind(tt.in))
		})
	}
	assert.Equal(t, "unknown", ComponentUnknown.String())
}

func TestDirection(t *testing.T) {
	tests := []struct {
		d      Direction
		dx, dy int
	}{
		{DirectionUp, 0, -1},
		{DirectionDown, 0, 1},
		{DirectionLeft, -1, 0},
		{DirectionRight, 1, 0},
		{DirectionNone, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			dx, dy := tt.d.Delta()
			assert.Equal(t, tt.dx, dx)
			assert.Equal(t, tt.dy, dy)
			if tt.d != DirectionNone {
				assert.Equal(t, tt.d, ParseDirection(tt.d.String()))
			}
		})
	}
	assert.Equal(t, DirectionLeft, ParseDirection("left"))
}

func TestSystemCategoryOrder(t *testing.T) {
	assert.True(t, SystemInput < SystemGeneric)
	assert.True(t, SystemGeneric < SystemTick)
	assert.True(t, SystemTick < SystemRender)
	assert.Equal(t, SystemTick, ParseSystemCategory("TICK"))
	assert.Equal(t, SystemGeneric, ParseSystemCategory("whatever"))
	assert.Equal(t, "WALL", OccupantWall.String())
}
