package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roguely-server/internal/domain"
	"roguely-server/pkg/dungeon"
)

func TestApplyAttack(t *testing.T) {
	attacker := dungeon.NewPlayer("hero", domain.Point{})
	target := dungeon.Goblin.Spawn(domain.Point{X: 1})
	health, _ := domain.FirstComponent[*domain.HealthComponent](target)

	res := ApplyAttack(attacker, target)
	assert.Equal(t, 10, res.Damage)
	assert.False(t, res.Died)
	assert.Equal(t, 5, health.Current)
	assert.NotEmpty(t, res.Message)

	res = ApplyAttack(attacker, target)
	assert.True(t, res.Died)
	assert.True(t, health.IsDead)
	assert.Zero(t, health.Current)
	assert.False(t, IsAlive(target))

	res = ApplyAttack(attacker, target)
	assert.Zero(t, res.Damage, "dead targets take no damage")
}

func TestApplyAttack_Defaults(t *testing.T) {
	unarmed := domain.NewEntity("ghost")
	target := dungeon.Rat.Spawn(domain.Point{})

	res := ApplyAttack(unarmed, target)
	assert.Equal(t, 1, res.Damage)

	coin := dungeon.GoldCoin.Spawn(domain.Point{})
	res = ApplyAttack(target, coin)
	assert.Zero(t, res.Damage)
	assert.False(t, IsAlive(coin))
}
