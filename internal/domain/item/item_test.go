package item

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/tileclash/internal/domain/entity"
	"github.com/younwookim/tileclash/internal/domain/geom"
)

func newTestPlayer() entity.Entity {
	return entity.NewPlayer(geom.Vec{}, geom.Vec{X: 48, Y: 60}, 100)
}

func TestApply_Augments(t *testing.T) {
	p := newTestPlayer()

	require.NoError(t, Apply(&p, SpeedBoots{Multiplier: 1.5}))
	require.NoError(t, Apply(&p, FeatherCharm{Gravity: 0.4}))
	require.NoError(t, Apply(&p, DoubleJumpBoots{}))
	require.NoError(t, Apply(&p, QuickTrigger{Multiplier: 0.5}))

	a := p.Player.Augments
	assert.Equal(t, 1.5, a.SpeedMultiplier)
	assert.Equal(t, 0.4, a.GravityScale)
	assert.InDelta(t, math.Sqrt(0.4), a.JumpScale, 1e-15)
	assert.True(t, a.DoubleJump)
	assert.Equal(t, 0.5, a.CooldownMultiplier)
}

func TestApply_RejectsNonPlayer(t *testing.T) {
	e := entity.NewPatrolEnemy(geom.Vec{}, geom.Vec{X: 48, Y: 48}, 50, 1, 100)

	err := Apply(&e, DoubleJumpBoots{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotPlayer))
}

func TestPhoenixFeather_OneCharge(t *testing.T) {
	p := newTestPlayer()
	f := NewPhoenixFeather()
	require.NoError(t, Apply(&p, f))
	require.Len(t, p.Player.Absorbers, 1)

	assert.True(t, p.Player.Absorbers[0].AbsorbLethalHit(&p))
	assert.False(t, p.Player.Absorbers[0].AbsorbLethalHit(&p))
	assert.Equal(t, 0, f.Charges)
}

func TestByName(t *testing.T) {
	for _, name := range []string{"speed_boots", "feather_charm", "double_jump_boots", "quick_trigger", "phoenix_feather"} {
		it, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, it.Name())
	}

	_, ok := ByName("jetpack")
	assert.False(t, ok)
}
