package system

import (
	"go.uber.org/zap"

	"github.com/younwookim/tileclash/internal/domain/entity"
	"github.com/younwookim/tileclash/internal/domain/geom"
	"github.com/younwookim/tileclash/internal/ecs"
	"github.com/younwookim/tileclash/internal/infrastructure/config"
)

// Ref pairs an entity with its arena handle for the duration of a scan.
type Ref struct {
	Handle ecs.Handle
	E      *entity.Entity
}

// CombatSystem applies damage, knockback and invincibility
type CombatSystem struct {
	tuning *config.Tuning
	events *eventLog
	log    *zap.Logger
}

// NewCombatSystem creates a new combat system
func NewCombatSystem(tuning *config.Tuning, events *eventLog, log *zap.Logger) *CombatSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &CombatSystem{
		tuning: tuning,
		events: events,
		log:    log,
	}
}

// HitEnemy lets a projectile hit an enemy. Hits merge into the enemy's
// damage window; the accumulated damage lands when the window closes.
// It returns true when the hit counted.
func (s *CombatSystem) HitEnemy(enemy *entity.Entity, proj Ref) bool {
	p := proj.E.Projectile
	if p == nil || p.Expired() || !p.Owner.CanDamage(enemy.Kind) || enemy.Enemy == nil {
		return false
	}
	// Invincible enemies ignore projectiles entirely
	if enemy.IsInvincible() {
		return false
	}

	w := &enemy.Enemy.Window
	if !w.Active() {
		w.Open(s.tuning.Combat.DamageWindowFrames)
	}
	added, first := w.Add(proj.Handle, p.Damage)
	if !added {
		return false
	}
	if first {
		enemy.Body.Vel = knockback(proj.E.Body.Vel, s.tuning.Combat.EnemyKnockback)
		enemy.Body.Stun = s.tuning.Combat.EnemyHitStunFrames
	}
	if !p.Piercing {
		p.Expire()
	}
	return true
}

// HitPlayerMelee applies enemy contact damage to the player.
func (s *CombatSystem) HitPlayerMelee(player Ref, enemy *entity.Entity) bool {
	pe := player.E
	if pe.IsInvincible() {
		return false
	}

	c := s.tuning.Combat
	dir := 1.0
	if pe.Center().X < enemy.Center().X {
		dir = -1.0
	}
	pe.Body.Vel = geom.Vec{X: dir * c.MeleeKnockbackX, Y: -c.MeleeKnockbackY}
	s.damagePlayer(player, c.MeleeDamage)
	return true
}

// HitPlayerProjectile applies an enemy projectile to the player. While the
// player is invincible the projectile keeps flying.
func (s *CombatSystem) HitPlayerProjectile(player Ref, proj *entity.Entity) bool {
	p := proj.Projectile
	if p == nil || p.Expired() || !p.Owner.CanDamage(player.E.Kind) {
		return false
	}
	if player.E.IsInvincible() {
		return false
	}

	player.E.Body.Vel = knockback(proj.Body.Vel, s.tuning.Combat.ProjectileKnockback)
	if !p.Piercing {
		p.Expire()
	}
	s.damagePlayer(player, p.Damage)
	return true
}

func (s *CombatSystem) damagePlayer(player Ref, damage int) {
	pe := player.E
	pe.Health -= damage
	pe.Body.Invincibility = s.tuning.Combat.PlayerInvincibilityFrames
	pe.Body.Stun = s.tuning.Combat.PlayerHitStunFrames
	s.events.emit(EventPlayerHurt, player.Handle, damage)

	if pe.Health <= 0 && absorbLethalHit(pe) {
		s.log.Debug("lethal hit absorbed", zap.Int("damage", damage))
		s.events.emit(EventHitAbsorbed, player.Handle, damage)
	}
}

// absorbLethalHit offers the killing blow to the player's absorbers in
// order. The first to accept leaves the player at 1 health.
func absorbLethalHit(pe *entity.Entity) bool {
	if pe.Player == nil {
		return false
	}
	for _, a := range pe.Player.Absorbers {
		if a.AbsorbLethalHit(pe) {
			pe.Health = 1
			return true
		}
	}
	return false
}

// knockback returns the normalized direction of vel scaled by strength.
// A zero velocity knocks straight up.
func knockback(vel geom.Vec, strength float64) geom.Vec {
	dir, ok := vel.Normalize()
	if !ok {
		return geom.Vec{Y: -strength}
	}
	return dir.Scale(strength)
}
