package entity

import (
	"github.com/younwookim/tileclash/internal/domain/geom"
	"github.com/younwookim/tileclash/internal/ecs"
)

// DamageWindow merges projectile hits landing within a few frames into one
// health deduction and one knockback.
type DamageWindow struct {
	Remaining float64
	Pending   int

	hits      []ecs.Handle
	knockback bool
}

// Active reports whether the window is open.
func (w *DamageWindow) Active() bool {
	return w.Remaining > 0
}

// Open starts a new window of the given length and forgets earlier hits.
func (w *DamageWindow) Open(frames float64) {
	w.Remaining = frames
	w.Pending = 0
	w.hits = w.hits[:0]
	w.knockback = false
}

// Seen reports whether projectile h already counted in this window.
func (w *DamageWindow) Seen(h ecs.Handle) bool {
	for _, hit := range w.hits {
		if hit == h {
			return true
		}
	}
	return false
}

// Add records a hit from projectile h. It returns false when h was already
// counted. first is true only for the hit that should apply knockback.
func (w *DamageWindow) Add(h ecs.Handle, damage int) (added, first bool) {
	if w.Seen(h) {
		return false, false
	}
	w.hits = append(w.hits, h)
	w.Pending += damage
	first = !w.knockback
	w.knockback = true
	return true, first
}

// Hits returns the number of distinct projectiles counted.
func (w *DamageWindow) Hits() int {
	return len(w.hits)
}

// Advance counts the window down by dt. When it closes, the accumulated
// damage is returned with closed set and the accumulator is cleared.
func (w *DamageWindow) Advance(dt float64) (damage int, closed bool) {
	if !w.Active() {
		return 0, false
	}
	w.Remaining -= dt
	if w.Remaining > 0 {
		return 0, false
	}
	w.Remaining = 0
	damage = w.Pending
	w.Pending = 0
	return damage, true
}

// Enemy is the enemy-only state shared by the patrol and turret variants.
type Enemy struct {
	Window DamageWindow

	// Patrol
	PatrolStartX   float64
	PatrolDir      float64
	PatrolDistance float64
	Speed          float64

	// Turret
	Range        float64
	FireInterval float64
	FireTimer    float64

	// KillReported guards the EnemyKilled event.
	KillReported bool
}

// NewPatrolEnemy creates a patrolling enemy walking left first.
func NewPatrolEnemy(pos, size geom.Vec, health int, speed, distance float64) Entity {
	body := NewBody(pos, size)
	body.FacingRight = false
	return Entity{
		Kind:      KindPatrolEnemy,
		Body:      body,
		Health:    health,
		MaxHealth: health,
		Enemy: &Enemy{
			PatrolStartX:   pos.X,
			PatrolDir:      -1,
			PatrolDistance: distance,
			Speed:          speed,
		},
	}
}

// NewTurretEnemy creates a stationary turret.
func NewTurretEnemy(pos, size geom.Vec, health int, rng, interval float64) Entity {
	return Entity{
		Kind:      KindTurretEnemy,
		Body:      NewBody(pos, size),
		Health:    health,
		MaxHealth: health,
		Enemy: &Enemy{
			Range:        rng,
			FireInterval: interval,
			FireTimer:    interval,
		},
	}
}

// NewEnemy creates an enemy of kind k with the given stats; non-enemy kinds
// return false.
func NewEnemy(k Kind, pos, size geom.Vec, health int, stats EnemyStats) (Entity, bool) {
	switch k {
	case KindPatrolEnemy:
		return NewPatrolEnemy(pos, size, health, stats.Speed, stats.PatrolDistance), true
	case KindTurretEnemy:
		return NewTurretEnemy(pos, size, health, stats.Range, stats.FireInterval), true
	}
	return Entity{}, false
}

// EnemyStats are the tuning values NewEnemy needs.
type EnemyStats struct {
	Speed          float64
	PatrolDistance float64
	Range          float64
	FireInterval   float64
}
