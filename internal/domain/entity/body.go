package entity

import (
	"github.com/younwookim/tileclash/internal/domain/geom"
	"github.com/younwookim/tileclash/internal/domain/tile"
)

// Body is the physics state every entity carries.
// Position keeps full float precision; rounding happens only when drawing.
type Body struct {
	Pos  geom.Vec
	Size geom.Vec
	Vel  geom.Vec

	// VisualSize and HitboxOffset are read by renderers only.
	VisualSize   geom.Vec
	HitboxOffset geom.Vec

	OnGround    bool
	WasOnGround bool
	OnCeiling   bool
	OnWallLeft  bool
	OnWallRight bool
	FacingRight bool

	// Surface is the collision type of the tile the body last landed on.
	Surface tile.CollisionType

	// Invincibility is a countdown in frames.
	Invincibility float64
	// Stun suspends AI and player steering so knockback plays out.
	Stun float64

	// DropRequested is set by control for the current tick.
	// DropCooldown keeps semi-solid platforms ignored after a drop.
	DropRequested bool
	DropCooldown  float64

	// Spawn is where the body was created.
	Spawn geom.Vec
}

// NewBody creates a body at pos with the given size, facing right.
func NewBody(pos, size geom.Vec) Body {
	return Body{
		Pos:         pos,
		Size:        size,
		VisualSize:  size,
		FacingRight: true,
		Spawn:       pos,
	}
}

// Rect returns the body's AABB.
func (b *Body) Rect() geom.Rect {
	return geom.RectAt(b.Pos, b.Size)
}

// ClearContacts resets the per-tick contact flags. WasOnGround keeps the
// previous tick's ground state.
func (b *Body) ClearContacts() {
	b.WasOnGround = b.OnGround
	b.OnGround = false
	b.OnCeiling = false
	b.OnWallLeft = false
	b.OnWallRight = false
}

// Dropping reports whether semi-solid platforms are ignored this tick.
func (b *Body) Dropping() bool {
	return b.DropRequested || b.DropCooldown > 0
}

// TickTimers decrements the frame countdowns by dt, flooring at 0.
// Stunned reports whether knockback still owns the horizontal velocity.
func (b *Body) Stunned() bool {
	return b.Stun > 0
}

func (b *Body) TickTimers(dt float64) {
	b.Invincibility = countdown(b.Invincibility, dt)
	b.Stun = countdown(b.Stun, dt)
	b.DropCooldown = countdown(b.DropCooldown, dt)
}

func countdown(v, dt float64) float64 {
	v -= dt
	if v < 0 {
		return 0
	}
	return v
}
