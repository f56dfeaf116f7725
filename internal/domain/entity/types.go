package entity

import (
	"github.com/younwookim/tileclash/internal/domain/geom"
)

// Kind tags the entity variant. The set is closed.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindPatrolEnemy
	KindTurretEnemy
	KindProjectile

	// KindCount is the number of kinds, used to size dispatch tables.
	KindCount
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindPatrolEnemy:
		return "patrol"
	case KindTurretEnemy:
		return "turret"
	case KindProjectile:
		return "projectile"
	default:
		return "unknown"
	}
}

// IsEnemy reports whether the kind is one of the enemy variants.
func (k Kind) IsEnemy() bool {
	return k == KindPatrolEnemy || k == KindTurretEnemy
}

// Capability is a behavior an entity kind opts into.
type Capability uint8

const (
	TakesDamage Capability = 1 << iota
	CollidesWithTiles
	CollidesWithEntities
)

var kindCapabilities = [KindCount]Capability{
	KindPlayer:      TakesDamage | CollidesWithTiles | CollidesWithEntities,
	KindPatrolEnemy: TakesDamage | CollidesWithTiles | CollidesWithEntities,
	KindTurretEnemy: TakesDamage | CollidesWithTiles | CollidesWithEntities,
	// Projectiles check tiles themselves instead of going through the resolver.
	KindProjectile: CollidesWithEntities,
}

// Has reports whether entities of kind k have capability c.
func (k Kind) Has(c Capability) bool {
	if k >= KindCount {
		return false
	}
	return kindCapabilities[k]&c != 0
}

// Entity is one simulated object. Exactly one of Player, Enemy and
// Projectile is set, matching Kind.
type Entity struct {
	Kind      Kind
	Body      Body
	Health    int
	MaxHealth int

	// Dead is set by death handling; the world prunes dead entities at tick end.
	Dead bool

	Player     *Player
	Enemy      *Enemy
	Projectile *Projectile
}

// Rect returns the entity's current AABB.
func (e *Entity) Rect() geom.Rect {
	return e.Body.Rect()
}

// Center returns the centre of the entity's AABB.
func (e *Entity) Center() geom.Vec {
	return e.Body.Rect().Center()
}

// IsInvincible returns true while the invincibility countdown runs
func (e *Entity) IsInvincible() bool {
	return e.Body.Invincibility > 0
}

// Live reports whether the entity still takes part in the tick.
// Expired projectiles and entities at 0 health are not live even before
// death handling and pruning run.
func (e *Entity) Live() bool {
	if e.Dead {
		return false
	}
	if e.Kind == KindProjectile {
		return e.Projectile != nil && !e.Projectile.Expired()
	}
	return e.Health > 0
}
