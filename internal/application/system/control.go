package system

import (
	"math"

	"github.com/younwookim/tileclash/internal/domain/entity"
	"github.com/younwookim/tileclash/internal/domain/geom"
	"github.com/younwookim/tileclash/internal/infrastructure/config"
)

// ControlSystem turns the player's intent into velocity changes and shots
type ControlSystem struct {
	tuning *config.Tuning
}

// NewControlSystem creates a new control system
func NewControlSystem(tuning *config.Tuning) *ControlSystem {
	return &ControlSystem{tuning: tuning}
}

// Apply runs one tick of player control and returns the projectiles the
// player's weapon wants to spawn. The ground flags read here are the ones
// left by the previous physics step.
func (s *ControlSystem) Apply(player Ref, in Intent, dt float64) []entity.ProjectileSpec {
	e := player.E
	if e.Player == nil {
		return nil
	}

	if !e.Body.Stunned() {
		s.handleMovement(e, in, dt)
	}
	s.handleJump(e, in, dt)
	s.handleDrop(e, in)
	return s.handleFire(player, in, dt)
}

// handleMovement handles horizontal movement
func (s *ControlSystem) handleMovement(e *entity.Entity, in Intent, dt float64) {
	b := &e.Body
	speed := e.Player.Augments.SpeedMultiplier
	c := s.tuning.Control

	dir := in.Direction()
	if dir == 0 {
		return
	}
	b.FacingRight = dir > 0

	maxSpeed := c.MaxRunSpeed * speed
	b.Vel.X += dir * c.Acceleration * speed * dt
	b.Vel.X = math.Max(-maxSpeed, math.Min(maxSpeed, b.Vel.X))
}

// handleJump handles jumping, coyote time and the double jump
func (s *ControlSystem) handleJump(e *entity.Entity, in Intent, dt float64) {
	b := &e.Body
	p := e.Player
	j := &p.Jump

	grounded := b.OnGround
	if grounded {
		j.Coyote = s.tuning.Control.CoyoteFrames
		j.DoubleJumpUsed = false
	}

	strength := s.tuning.Control.JumpStrength * p.Augments.JumpScale
	jumped := false

	switch {
	case in.JumpPressed && (grounded || j.Coyote > 0):
		b.Vel.Y = -strength
		b.OnGround = false
		j.Coyote = 0
		j.DoubleJumpUsed = false
		jumped = true
	case in.JumpPressed && p.Augments.DoubleJump && b.Vel.Y >= 0 && !j.DoubleJumpUsed && !grounded:
		b.Vel.Y = -strength
		j.DoubleJumpUsed = true
		jumped = true
	}

	if !grounded && !jumped {
		j.Coyote = math.Max(0, j.Coyote-dt)
	}
}

// handleDrop requests falling through semi-solid platforms while down is held
func (s *ControlSystem) handleDrop(e *entity.Entity, in Intent) {
	b := &e.Body
	b.DropRequested = in.DownHeld
	if in.DownHeld {
		b.DropCooldown = s.tuning.Collision.DropThroughFrames
	}
}

// handleFire ticks the weapon and fires it toward the aim point
func (s *ControlSystem) handleFire(player Ref, in Intent, dt float64) []entity.ProjectileSpec {
	p := player.E.Player
	p.Aim = in.Aim
	if p.Weapon == nil {
		return nil
	}
	p.Weapon.Tick(dt)
	if !in.Fire {
		return nil
	}

	origin := player.E.Center()
	fallback := geom.Vec{X: 1}
	if !player.E.Body.FacingRight {
		fallback.X = -1
	}

	shots := p.Weapon.Fire(origin, in.Aim.Sub(origin), fallback, p.Augments.CooldownMultiplier)
	if len(shots) == 0 {
		return nil
	}
	specs := make([]entity.ProjectileSpec, 0, len(shots))
	for _, shot := range shots {
		specs = append(specs, entity.ProjectileSpec{
			Owner:    entity.OwnerPlayer,
			Shooter:  player.Handle,
			Pos:      shot.Pos,
			Vel:      shot.Vel,
			Size:     shot.Size,
			Damage:   shot.Damage,
			Lifetime: shot.Lifetime,
			Piercing: shot.Piercing,
		})
	}
	return specs
}
