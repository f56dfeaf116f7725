package entity

import (
	"errors"
	"fmt"

	"github.com/younwookim/tileclash/internal/domain/geom"
	"github.com/younwookim/tileclash/internal/ecs"
)

// ErrInvalidOwner is returned when a projectile is built with an unknown owner tag.
var ErrInvalidOwner = errors.New("invalid projectile owner")

// Owner tags who fired a projectile. The zero value is invalid.
type Owner uint8

const (
	OwnerPlayer Owner = iota + 1
	OwnerEnemy
)

// Valid reports whether o is a known owner
func (o Owner) Valid() bool {
	return o == OwnerPlayer || o == OwnerEnemy
}

// String returns the owner name
func (o Owner) String() string {
	switch o {
	case OwnerPlayer:
		return "player"
	case OwnerEnemy:
		return "enemy"
	default:
		return fmt.Sprintf("Owner(%d)", uint8(o))
	}
}

// CanDamage reports whether a projectile of owner o may damage kind k.
// Player projectiles hit only enemies, enemy projectiles only the player.
func (o Owner) CanDamage(k Kind) bool {
	switch o {
	case OwnerPlayer:
		return k.IsEnemy()
	case OwnerEnemy:
		return k == KindPlayer
	}
	return false
}

// Projectile is the projectile-only state. Velocity lives in the body and
// stays fixed after spawn.
type Projectile struct {
	Owner    Owner
	Damage   int
	Lifetime float64
	Piercing bool

	// Shooter is the entity that fired, zero if unknown.
	Shooter ecs.Handle
}

// Expired reports whether the projectile's lifetime has run out.
func (p *Projectile) Expired() bool {
	return p.Lifetime <= 0
}

// Expire ends the projectile's lifetime.
func (p *Projectile) Expire() {
	p.Lifetime = 0
}

// ProjectileSpec holds everything needed to spawn a projectile.
type ProjectileSpec struct {
	Owner    Owner
	Shooter  ecs.Handle
	Pos      geom.Vec
	Vel      geom.Vec
	Size     geom.Vec
	Damage   int
	Lifetime float64
	Piercing bool
}

// NewProjectile validates spec and builds the projectile entity.
func NewProjectile(spec ProjectileSpec) (Entity, error) {
	if !spec.Owner.Valid() {
		return Entity{}, fmt.Errorf("new projectile: %w: %s", ErrInvalidOwner, spec.Owner)
	}
	body := NewBody(spec.Pos, spec.Size)
	body.Vel = spec.Vel
	body.FacingRight = spec.Vel.X >= 0
	return Entity{
		Kind:   KindProjectile,
		Body:   body,
		Health: 1,
		Projectile: &Projectile{
			Owner:    spec.Owner,
			Damage:   spec.Damage,
			Lifetime: spec.Lifetime,
			Piercing: spec.Piercing,
			Shooter:  spec.Shooter,
		},
	}, nil
}
