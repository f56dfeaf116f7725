package system

import (
	"math"
	"time"

	"github.com/younwookim/tileclash/internal/domain/entity"
	"github.com/younwookim/tileclash/internal/domain/tile"
	"github.com/younwookim/tileclash/internal/infrastructure/config"
)

// FrameDelta converts elapsed wall time to frame units at 60 fps,
// rounded to 3 decimals so variable pacing does not accumulate drift.
func FrameDelta(elapsed time.Duration) float64 {
	return math.Round(elapsed.Seconds()*60*1000) / 1000
}

// PhysicsSystem integrates bodies against the tile index
type PhysicsSystem struct {
	tuning *config.Tuning
	index  *tile.Index
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(tuning *config.Tuning, index *tile.Index) *PhysicsSystem {
	return &PhysicsSystem{
		tuning: tuning,
		index:  index,
	}
}

// Step advances one tile-colliding entity by dt frames.
// It returns false once the entity's health has dropped to 0 or below.
func (s *PhysicsSystem) Step(e *entity.Entity, dt float64) bool {
	b := &e.Body
	b.ClearContacts()

	s.applyGravity(e, dt)

	ResolveVertical(b, b.Vel.Y*dt, s.index, ResolveOptions{
		SemiSolidTolerance: s.tuning.Collision.SemiSolidTolerance,
	})
	// Resting bodies are left where they are
	dx := b.Vel.X * dt
	if res := ResolveHorizontal(b, dx, s.index); dx != 0 && !res.Blocked {
		CenterInGap(b, s.index, s.gapCaps(e))
	}

	s.applyFriction(b)
	b.TickTimers(dt)

	if e.Enemy != nil {
		s.advanceDamageWindow(e, dt)
	}

	// Kill plane
	if b.Rect().Top() > s.index.Bounds().Rect().Bottom() {
		e.Health = 0
	}

	return e.Health > 0
}

func (s *PhysicsSystem) applyGravity(e *entity.Entity, dt float64) {
	gravity := s.tuning.Physics.Gravity
	if e.Player != nil {
		gravity *= e.Player.Augments.GravityScale
	}

	e.Body.Vel.Y += gravity * dt
	if e.Body.Vel.Y > s.tuning.Physics.TerminalVelocity {
		e.Body.Vel.Y = s.tuning.Physics.TerminalVelocity
	}
}

func (s *PhysicsSystem) gapCaps(e *entity.Entity) GapCaps {
	c := s.tuning.Collision
	if e.Kind == entity.KindPlayer {
		return GapCaps{Vertical: c.PlayerGapNudgeVertical, Horizontal: c.PlayerGapNudgeHorizontal}
	}
	return GapCaps{Vertical: c.GapNudge}
}

// Friction returns the horizontal friction coefficient for b's contact state.
func (s *PhysicsSystem) Friction(b *entity.Body) float64 {
	p := s.tuning.Physics
	if !b.OnGround {
		return p.AirFriction
	}
	switch b.Surface {
	case tile.Slippery:
		return p.SlipperyFriction
	case tile.Rough:
		return p.RoughFriction
	default:
		return p.GroundFriction
	}
}

func (s *PhysicsSystem) applyFriction(b *entity.Body) {
	ApplyFriction(b, s.Friction(b), s.tuning.Physics.FrictionThreshold)
}

// ApplyFriction scales vx by friction, or stops it once |vx| is at or
// below threshold.
func ApplyFriction(b *entity.Body, friction, threshold float64) {
	if math.Abs(b.Vel.X) > threshold {
		b.Vel.X *= friction
		return
	}
	b.Vel.X = 0
}

func (s *PhysicsSystem) advanceDamageWindow(e *entity.Entity, dt float64) {
	damage, closed := e.Enemy.Window.Advance(dt)
	if !closed {
		return
	}
	e.Health -= damage
	e.Body.Invincibility = s.tuning.Combat.EnemyInvincibilityFrames
}

// StepProjectile moves a projectile by its fixed velocity and counts its
// lifetime down. Wall tiles and leaving the world end it unless it pierces.
func (s *PhysicsSystem) StepProjectile(e *entity.Entity, dt float64) {
	p := e.Projectile
	b := &e.Body

	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	p.Lifetime -= dt

	rect := b.Rect()
	if !p.Piercing {
		for _, h := range s.index.Intersecting(rect) {
			if h.Type != tile.SemiSolid {
				p.Expire()
				break
			}
		}
	}

	if !s.index.Bounds().Rect().Intersects(rect) {
		p.Expire()
	}
	if p.Lifetime < 0 {
		p.Lifetime = 0
	}
}
