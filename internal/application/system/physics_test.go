package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/tileclash/internal/domain/entity"
	"github.com/younwookim/tileclash/internal/domain/geom"
	"github.com/younwookim/tileclash/internal/domain/tile"
	"github.com/younwookim/tileclash/internal/infrastructure/config"
)

func TestFrameDelta(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    float64
	}{
		{time.Second / 60, 1},
		{16666666 * time.Nanosecond, 1},
		{33 * time.Millisecond, 1.98},
		{8 * time.Millisecond, 0.48},
		{12345 * time.Microsecond, 0.741},
		{0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FrameDelta(tt.elapsed), "elapsed %v", tt.elapsed)
	}
}

func TestPhysicsSystem_StepLandsOnTile(t *testing.T) {
	idx := tile.NewIndex(tile.CollisionMap{{X: 1, Y: 2}: 0}, tile.Bounds{MaxX: 4, MaxY: 4})
	sys := NewPhysicsSystem(config.DefaultTuning(), idx)

	e := entity.NewTurretEnemy(geom.Vec{X: 100, Y: 100}, geom.Vec{X: 60, Y: 60}, 10, 0, 0)
	e.Body.Vel.Y = 5

	alive := sys.Step(&e, 1)

	assert.True(t, alive)
	assert.Equal(t, 68.0, e.Body.Pos.Y)
	assert.Equal(t, 0.0, e.Body.Vel.Y)
	assert.True(t, e.Body.OnGround)
}

func TestPhysicsSystem_GravityAndTerminalVelocity(t *testing.T) {
	idx := createTestIndex(
		"....",
		"....",
	)
	sys := NewPhysicsSystem(config.DefaultTuning(), idx)

	e := createTestEnemy(10, 10, 10)
	sys.Step(&e, 1)
	assert.InDelta(t, 0.7, e.Body.Vel.Y, 1e-12)
	assert.InDelta(t, 10.7, e.Body.Pos.Y, 1e-12)

	e.Body.Vel.Y = 13.9
	sys.Step(&e, 1)
	assert.Equal(t, 14.0, e.Body.Vel.Y)

	// Half a frame applies half the gravity
	e = createTestEnemy(10, 10, 10)
	sys.Step(&e, 0.5)
	assert.InDelta(t, 0.35, e.Body.Vel.Y, 1e-12)
}

func TestPhysicsSystem_PlayerGravityScale(t *testing.T) {
	sys := NewPhysicsSystem(config.DefaultTuning(), createTestIndex("...."))

	p := createTestPlayer(10, 10)
	p.Player.Augments.ScaleGravity(0.4)

	sys.Step(&p, 1)
	assert.InDelta(t, 0.28, p.Body.Vel.Y, 1e-12)
}

func TestApplyFriction_ConvergesToZero(t *testing.T) {
	for _, start := range []float64{10, -10, 0.6, -0.6, 0.5, 0} {
		b := createTestBody(0, 0, 10, 10)
		b.Vel.X = start

		for i := 0; i < 100; i++ {
			prev := b.Vel.X
			ApplyFriction(b, 0.9, 0.5)

			if prev > 0 {
				assert.GreaterOrEqual(t, b.Vel.X, 0.0, "start %v must not undershoot", start)
			} else if prev < 0 {
				assert.LessOrEqual(t, b.Vel.X, 0.0, "start %v must not undershoot", start)
			}
			if b.Vel.X != 0 {
				assert.Greater(t, absf(prev), 0.5)
			}
		}
		assert.Equal(t, 0.0, b.Vel.X, "start %v", start)
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestPhysicsSystem_SurfaceFriction(t *testing.T) {
	tun := config.DefaultTuning()
	sys := NewPhysicsSystem(tun, createTestIndex("...."))

	b := createTestBody(0, 0, 10, 10)
	assert.Equal(t, tun.Physics.AirFriction, sys.Friction(b))

	b.OnGround = true
	tests := []struct {
		surface tile.CollisionType
		want    float64
	}{
		{tile.Solid, tun.Physics.GroundFriction},
		{tile.SemiSolid, tun.Physics.GroundFriction},
		{tile.OneWay, tun.Physics.GroundFriction},
		{tile.Slippery, tun.Physics.SlipperyFriction},
		{tile.Rough, tun.Physics.RoughFriction},
	}
	for _, tt := range tests {
		b.Surface = tt.surface
		assert.Equal(t, tt.want, sys.Friction(b), tt.surface.String())
	}
}

func TestPhysicsSystem_SlipperySlidesFurther(t *testing.T) {
	slide := func(floor string) float64 {
		tun := config.DefaultTuning()
		sys := NewPhysicsSystem(tun, createTestIndex(
			"..........",
			floor,
		))
		e := createTestEnemy(10, 16, 10)
		e.Body.Vel.X = 5
		for i := 0; i < 60; i++ {
			sys.Step(&e, 1)
		}
		require.True(t, e.Body.OnGround)
		return e.Body.Pos.X
	}

	ground := slide("##########")
	ice := slide("~~~~~~~~~~")
	rough := slide("%%%%%%%%%%")

	assert.Greater(t, ice, ground)
	assert.Greater(t, ground, rough)
}

func TestPhysicsSystem_GapCenteringNeedsHorizontalMove(t *testing.T) {
	sys := NewPhysicsSystem(config.DefaultTuning(), createTestIndex(
		"#.#",
		"#.#",
		"#.#",
		"#.#",
	))

	e := createTestEnemy(70, 70, 10)
	sys.Step(&e, 1)
	assert.Equal(t, 70.0, e.Body.Pos.X, "falling straight down leaves X alone")

	e.Body.Vel.X = 0.5
	sys.Step(&e, 1)
	assert.Greater(t, e.Body.Pos.X, 70.5, "moving sideways is nudged toward the shaft centre")
}

func TestPhysicsSystem_TimersCountDown(t *testing.T) {
	sys := NewPhysicsSystem(config.DefaultTuning(), createTestIndex("...."))

	e := createTestEnemy(10, 10, 10)
	e.Body.Invincibility = 1.5
	e.Body.DropCooldown = 12

	sys.Step(&e, 1)
	assert.Equal(t, 0.5, e.Body.Invincibility)
	assert.Equal(t, 11.0, e.Body.DropCooldown)

	sys.Step(&e, 1)
	assert.Equal(t, 0.0, e.Body.Invincibility)
}

func TestPhysicsSystem_KillPlane(t *testing.T) {
	sys := NewPhysicsSystem(config.DefaultTuning(), createTestIndex(
		"....",
		"....",
	))

	e := createTestEnemy(10, 120, 10)
	assert.True(t, sys.Step(&e, 1), "partly inside the world")

	e.Body.Pos.Y = 129
	assert.False(t, sys.Step(&e, 1))
	assert.Equal(t, 0, e.Health)
}

func TestPhysicsSystem_DamageWindowCloses(t *testing.T) {
	tun := config.DefaultTuning()
	sys := NewPhysicsSystem(tun, createTestIndex(
		"....",
		"####",
	))

	e := createTestEnemy(10, 16, 50)
	e.Enemy.Window.Open(2)
	e.Enemy.Window.Add(refOf(1, nil).Handle, 15)
	e.Enemy.Window.Add(refOf(2, nil).Handle, 15)

	assert.True(t, sys.Step(&e, 1))
	assert.Equal(t, 50, e.Health, "damage waits for the window to close")

	assert.True(t, sys.Step(&e, 1))
	assert.Equal(t, 20, e.Health)
	assert.Equal(t, tun.Combat.EnemyInvincibilityFrames, e.Body.Invincibility)
	assert.False(t, e.Enemy.Window.Active())
}

func TestPhysicsSystem_StepProjectile(t *testing.T) {
	idx := createTestIndex(
		"........",
		"...-#...",
		"........",
	)
	sys := NewPhysicsSystem(config.DefaultTuning(), idx)

	t.Run("moves and ages", func(t *testing.T) {
		p := createTestProjectile(entity.OwnerPlayer, 10, 10, geom.Vec{X: 4, Y: 2}, 5)
		sys.StepProjectile(&p, 0.5)
		assert.Equal(t, geom.Vec{X: 12, Y: 11}, p.Body.Pos)
		assert.Equal(t, 59.5, p.Projectile.Lifetime)
	})

	t.Run("semi-solid tiles let it through", func(t *testing.T) {
		p := createTestProjectile(entity.OwnerPlayer, 190, 90, geom.Vec{X: 10}, 5)
		sys.StepProjectile(&p, 1)
		assert.False(t, p.Projectile.Expired())
	})

	t.Run("solid tiles stop it", func(t *testing.T) {
		p := createTestProjectile(entity.OwnerPlayer, 250, 90, geom.Vec{X: 10}, 5)
		sys.StepProjectile(&p, 1)
		assert.True(t, p.Projectile.Expired())
	})

	t.Run("piercing passes walls", func(t *testing.T) {
		p := createTestProjectile(entity.OwnerPlayer, 250, 90, geom.Vec{X: 10}, 5)
		p.Projectile.Piercing = true
		sys.StepProjectile(&p, 1)
		assert.False(t, p.Projectile.Expired())
	})

	t.Run("leaving the world ends it", func(t *testing.T) {
		p := createTestProjectile(entity.OwnerPlayer, 2, 90, geom.Vec{X: -12}, 5)
		sys.StepProjectile(&p, 1)
		assert.True(t, p.Projectile.Expired())
	})

	t.Run("lifetime runs out", func(t *testing.T) {
		p := createTestProjectile(entity.OwnerPlayer, 10, 10, geom.Vec{}, 5)
		p.Projectile.Lifetime = 0.5
		sys.StepProjectile(&p, 1)
		assert.True(t, p.Projectile.Expired())
		assert.Equal(t, 0.0, p.Projectile.Lifetime)
	})
}
