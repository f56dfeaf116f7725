package entity

import (
	"math"

	"github.com/younwookim/tileclash/internal/domain/geom"
	"github.com/younwookim/tileclash/internal/domain/weapon"
)

// JumpState tracks coyote time and the double-jump charge.
type JumpState struct {
	// Coyote counts down the frames the player may still jump after
	// leaving the ground.
	Coyote         float64
	DoubleJumpUsed bool
}

// Augments are persistent player modifiers applied by items.
type Augments struct {
	SpeedMultiplier    float64
	GravityScale       float64
	JumpScale          float64
	CooldownMultiplier float64
	DoubleJump         bool
}

// DefaultAugments returns the unmodified augment set.
func DefaultAugments() Augments {
	return Augments{
		SpeedMultiplier:    1,
		GravityScale:       1,
		JumpScale:          1,
		CooldownMultiplier: 1,
	}
}

// ScaleGravity sets gravity to g times normal and jump strength to sqrt(g)
// times normal, which keeps the peak jump height unchanged.
func (a *Augments) ScaleGravity(g float64) {
	a.GravityScale = g
	a.JumpScale = math.Sqrt(g)
}

// LethalHitAbsorber gets a chance to cancel a killing blow.
// Returning true keeps the player alive at 1 health.
type LethalHitAbsorber interface {
	AbsorbLethalHit(player *Entity) bool
}

// Player is the player-only state.
type Player struct {
	Jump      JumpState
	Augments  Augments
	Absorbers []LethalHitAbsorber
	Weapon    *weapon.Weapon

	// Aim is the last world-space aim point, kept for renderers.
	Aim geom.Vec
}

// NewPlayer creates the player entity at pos.
func NewPlayer(pos, size geom.Vec, health int) Entity {
	return Entity{
		Kind:      KindPlayer,
		Body:      NewBody(pos, size),
		Health:    health,
		MaxHealth: health,
		Player: &Player{
			Augments: DefaultAugments(),
			Weapon:   weapon.New(weapon.Pistol),
		},
	}
}

// PeakJumpHeight returns the apex height v²/2g of a jump launched at
// speed v under gravity g.
func PeakJumpHeight(v, g float64) float64 {
	return v * v / (2 * g)
}
