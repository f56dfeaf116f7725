package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/tileclash/internal/domain/entity"
	"github.com/younwookim/tileclash/internal/domain/geom"
	"github.com/younwookim/tileclash/internal/infrastructure/config"
)

func createTestPatrol(x, y float64) entity.Entity {
	return entity.NewPatrolEnemy(geom.Vec{X: x, Y: y}, geom.Vec{X: 48, Y: 48}, 50, 2, 192)
}

func TestAISystem_PatrolTurnsAtWall(t *testing.T) {
	idx := createTestIndex(
		"......",
		"#.....",
		"######",
	)
	s := NewAISystem(config.DefaultTuning(), idx)

	e := createTestPatrol(64, 80)
	e.Body.OnGround = true
	s.Patrol(&e)
	assert.Equal(t, -2.0, e.Body.Vel.X, "no wall contact yet")

	e.Body.OnWallLeft = true
	s.Patrol(&e)
	assert.Equal(t, 2.0, e.Body.Vel.X)
	assert.True(t, e.Body.FacingRight)
}

func TestAISystem_PatrolTurnsAtDistance(t *testing.T) {
	s := NewAISystem(config.DefaultTuning(), createTestIndex("......"))

	e := createTestPatrol(300, 0)
	e.Body.Pos.X = 300 - 100
	s.Patrol(&e)
	assert.Equal(t, -1.0, e.Enemy.PatrolDir)

	e.Body.Pos.X = 300 - 192
	s.Patrol(&e)
	assert.Equal(t, 1.0, e.Enemy.PatrolDir)

	// Walking back from the limit does not flip again
	s.Patrol(&e)
	assert.Equal(t, 1.0, e.Enemy.PatrolDir)
}

func TestAISystem_PatrolTurnsAtLedge(t *testing.T) {
	idx := createTestIndex(
		"......",
		"......",
		"##....",
	)
	s := NewAISystem(config.DefaultTuning(), idx)

	e := createTestPatrol(70, 80)
	e.Enemy.PatrolDir = 1
	e.Body.OnGround = true
	s.Patrol(&e)
	assert.Equal(t, 1.0, e.Enemy.PatrolDir, "floor under the leading foot")

	e.Body.Pos.X = 80
	s.Patrol(&e)
	assert.Equal(t, -1.0, e.Enemy.PatrolDir)

	// Airborne enemies ignore ledges
	e.Enemy.PatrolDir = 1
	e.Body.OnGround = false
	s.Patrol(&e)
	assert.Equal(t, 1.0, e.Enemy.PatrolDir)
}

func createTestTurret(x, y float64) entity.Entity {
	return entity.NewTurretEnemy(geom.Vec{X: x, Y: y}, geom.Vec{X: 48, Y: 48}, 40, 480, 90)
}

func TestAISystem_TurretFireInterval(t *testing.T) {
	s := NewAISystem(config.DefaultTuning(), createTestIndex("......"))
	turret := createTestTurret(100, 100)
	player := createTestPlayer(400, 94)
	self := refOf(3, &turret)

	for i := 0; i < 89; i++ {
		_, ok := s.Turret(self, &player, 1)
		require.False(t, ok, "tick %d", i)
	}

	spec, ok := s.Turret(self, &player, 1)
	require.True(t, ok)
	assert.Equal(t, entity.OwnerEnemy, spec.Owner)
	assert.Equal(t, self.Handle, spec.Shooter)
	assert.InDelta(t, 6, spec.Vel.X, 1e-9)
	assert.InDelta(t, 0, spec.Vel.Y, 1e-9)
	assert.Equal(t, geom.Vec{X: 119, Y: 119}, spec.Pos)
	assert.Equal(t, geom.Vec{X: 10, Y: 10}, spec.Size)
	assert.Equal(t, 20, spec.Damage)
	assert.Equal(t, 120.0, spec.Lifetime)
	assert.Equal(t, 90.0, turret.Enemy.FireTimer)
	assert.True(t, turret.Body.FacingRight)
}

func TestAISystem_TurretRange(t *testing.T) {
	s := NewAISystem(config.DefaultTuning(), createTestIndex("......"))
	turret := createTestTurret(100, 100)
	turret.Enemy.FireTimer = 0
	player := createTestPlayer(700, 94)
	self := refOf(0, &turret)

	_, ok := s.Turret(self, &player, 1)
	assert.False(t, ok, "600 away is out of range")
	assert.Equal(t, 0.0, turret.Enemy.FireTimer)

	player.Body.Pos.X = 0
	spec, ok := s.Turret(self, &player, 1)
	require.True(t, ok, "fires as soon as the player is in range")
	assert.Less(t, spec.Vel.X, 0.0)
	assert.False(t, turret.Body.FacingRight)

	player.Health = 0
	turret.Enemy.FireTimer = 0
	_, ok = s.Turret(self, &player, 1)
	assert.False(t, ok, "dead players are not targeted")

	_, ok = s.Turret(self, nil, 1)
	assert.False(t, ok)
}
