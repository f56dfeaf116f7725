package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTuning is wrapped by every Validate failure.
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning is the root config for tuning.yaml.
// Time-like values are in frames at 60 fps, distances in world units.
type Tuning struct {
	Physics   PhysicsTuning   `yaml:"physics"`
	Collision CollisionTuning `yaml:"collision"`
	Control   ControlTuning   `yaml:"control"`
	Combat    CombatTuning    `yaml:"combat"`
	Player    PlayerTuning    `yaml:"player"`
	Patrol    PatrolTuning    `yaml:"patrol"`
	Turret    TurretTuning    `yaml:"turret"`
}

type PhysicsTuning struct {
	Gravity           float64 `yaml:"gravity"`
	TerminalVelocity  float64 `yaml:"terminal_velocity"`
	FrictionThreshold float64 `yaml:"friction_threshold"`
	GroundFriction    float64 `yaml:"ground_friction"`
	SlipperyFriction  float64 `yaml:"slippery_friction"`
	RoughFriction     float64 `yaml:"rough_friction"`
	AirFriction       float64 `yaml:"air_friction"`
}

type CollisionTuning struct {
	SemiSolidTolerance       float64 `yaml:"semi_solid_tolerance"`
	DropThroughFrames        float64 `yaml:"drop_through_frames"`
	GapNudge                 float64 `yaml:"gap_nudge"`
	PlayerGapNudgeVertical   float64 `yaml:"player_gap_nudge_vertical"`
	PlayerGapNudgeHorizontal float64 `yaml:"player_gap_nudge_horizontal"`
}

type ControlTuning struct {
	Acceleration float64 `yaml:"acceleration"`
	MaxRunSpeed  float64 `yaml:"max_run_speed"`
	JumpStrength float64 `yaml:"jump_strength"`
	CoyoteFrames float64 `yaml:"coyote_frames"`
}

type CombatTuning struct {
	DamageWindowFrames        float64 `yaml:"damage_window_frames"`
	EnemyInvincibilityFrames  float64 `yaml:"enemy_invincibility_frames"`
	PlayerInvincibilityFrames float64 `yaml:"player_invincibility_frames"`
	MeleeDamage               int     `yaml:"melee_damage"`
	MeleeKnockbackX           float64 `yaml:"melee_knockback_x"`
	MeleeKnockbackY           float64 `yaml:"melee_knockback_y"`
	ProjectileKnockback       float64 `yaml:"projectile_knockback"`
	EnemyKnockback            float64 `yaml:"enemy_knockback"`
	EnemyHitStunFrames        float64 `yaml:"enemy_hit_stun_frames"`
	PlayerHitStunFrames       float64 `yaml:"player_hit_stun_frames"`
}

type PlayerTuning struct {
	Width  float64  `yaml:"width"`
	Height float64  `yaml:"height"`
	Health int      `yaml:"health"`
	Weapon string   `yaml:"weapon"`
	Items  []string `yaml:"items"`
}

type PatrolTuning struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Health         int     `yaml:"health"`
	Speed          float64 `yaml:"speed"`
	PatrolDistance float64 `yaml:"patrol_distance"`
}

type TurretTuning struct {
	Width              float64 `yaml:"width"`
	Height             float64 `yaml:"height"`
	Health             int     `yaml:"health"`
	Range              float64 `yaml:"range"`
	FireInterval       float64 `yaml:"fire_interval"`
	ProjectileSpeed    float64 `yaml:"projectile_speed"`
	ProjectileDamage   int     `yaml:"projectile_damage"`
	ProjectileLifetime float64 `yaml:"projectile_lifetime"`
	ProjectileSize     float64 `yaml:"projectile_size"`
}

// DefaultTuning returns the built-in tuning values.
func DefaultTuning() *Tuning {
	return &Tuning{
		Physics: PhysicsTuning{
			Gravity:           0.7,
			TerminalVelocity:  14,
			FrictionThreshold: 0.5,
			GroundFriction:    0.8,
			SlipperyFriction:  0.97,
			RoughFriction:     0.6,
			AirFriction:       0.9,
		},
		Collision: CollisionTuning{
			SemiSolidTolerance:       10,
			DropThroughFrames:        12,
			GapNudge:                 1,
			PlayerGapNudgeVertical:   3,
			PlayerGapNudgeHorizontal: 2,
		},
		Control: ControlTuning{
			Acceleration: 1,
			MaxRunSpeed:  5,
			JumpStrength: 15,
			CoyoteFrames: 6,
		},
		Combat: CombatTuning{
			DamageWindowFrames:        2,
			EnemyInvincibilityFrames:  30,
			PlayerInvincibilityFrames: 60,
			MeleeDamage:               40,
			MeleeKnockbackX:           10,
			MeleeKnockbackY:           10,
			ProjectileKnockback:       8,
			EnemyKnockback:            6,
			EnemyHitStunFrames:        12,
			PlayerHitStunFrames:       12,
		},
		Player: PlayerTuning{
			Width:  48,
			Height: 60,
			Health: 100,
			Weapon: "pistol",
		},
		Patrol: PatrolTuning{
			Width:          48,
			Height:         48,
			Health:         50,
			Speed:          2,
			PatrolDistance: 192,
		},
		Turret: TurretTuning{
			Width:              48,
			Height:             48,
			Health:             40,
			Range:              480,
			FireInterval:       90,
			ProjectileSpeed:    6,
			ProjectileDamage:   20,
			ProjectileLifetime: 120,
			ProjectileSize:     10,
		},
	}
}

// ParseTuning overlays YAML data on the defaults and validates the result.
// On error nothing is returned, so a bad file never partially applies.
func ParseTuning(data []byte) (*Tuning, error) {
	t := DefaultTuning()
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate rejects values the simulation cannot run with.
func (t *Tuning) Validate() error {
	frictions := []struct {
		name string
		v    float64
	}{
		{"ground_friction", t.Physics.GroundFriction},
		{"slippery_friction", t.Physics.SlipperyFriction},
		{"rough_friction", t.Physics.RoughFriction},
		{"air_friction", t.Physics.AirFriction},
	}
	for _, f := range frictions {
		if f.v < 0 || f.v > 1 {
			return fmt.Errorf("%w: %s %v outside [0,1]", ErrInvalidTuning, f.name, f.v)
		}
	}

	positive := []struct {
		name string
		v    float64
	}{
		{"gravity", t.Physics.Gravity},
		{"terminal_velocity", t.Physics.TerminalVelocity},
		{"max_run_speed", t.Control.MaxRunSpeed},
		{"jump_strength", t.Control.JumpStrength},
		{"damage_window_frames", t.Combat.DamageWindowFrames},
		{"player.width", t.Player.Width},
		{"player.height", t.Player.Height},
		{"patrol.width", t.Patrol.Width},
		{"patrol.height", t.Patrol.Height},
		{"turret.width", t.Turret.Width},
		{"turret.height", t.Turret.Height},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidTuning, p.name, p.v)
		}
	}

	if t.Player.Health <= 0 {
		return fmt.Errorf("%w: player.health must be positive", ErrInvalidTuning)
	}
	if t.Collision.SemiSolidTolerance < 0 || t.Collision.DropThroughFrames < 0 {
		return fmt.Errorf("%w: collision values must not be negative", ErrInvalidTuning)
	}
	if t.Combat.EnemyHitStunFrames < 0 || t.Combat.PlayerHitStunFrames < 0 {
		return fmt.Errorf("%w: hit stun must not be negative", ErrInvalidTuning)
	}
	return nil
}
