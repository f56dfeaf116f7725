// Package item implements the player items. Each item applies a persistent
// modifier to the player's augments or hooks into lethal-hit handling.
package item

import (
	"errors"
	"fmt"

	"github.com/younwookim/tileclash/internal/domain/entity"
)

// ErrNotPlayer is returned when an item is applied to a non-player entity.
var ErrNotPlayer = errors.New("items apply to players only")

// Item is a pickup that modifies the player once applied.
type Item interface {
	Name() string
	Apply(p *entity.Player)
}

// Apply equips it on e.
func Apply(e *entity.Entity, it Item) error {
	if e.Kind != entity.KindPlayer || e.Player == nil {
		return fmt.Errorf("apply %s: %w", it.Name(), ErrNotPlayer)
	}
	it.Apply(e.Player)
	return nil
}

// SpeedBoots multiply run acceleration and top speed.
type SpeedBoots struct {
	Multiplier float64
}

func (SpeedBoots) Name() string { return "speed_boots" }

func (b SpeedBoots) Apply(p *entity.Player) {
	m := b.Multiplier
	if m <= 0 {
		m = 1.5
	}
	p.Augments.SpeedMultiplier = m
}

// FeatherCharm lowers gravity while keeping the jump apex.
type FeatherCharm struct {
	Gravity float64
}

func (FeatherCharm) Name() string { return "feather_charm" }

func (c FeatherCharm) Apply(p *entity.Player) {
	g := c.Gravity
	if g <= 0 {
		g = 0.4
	}
	p.Augments.ScaleGravity(g)
}

// DoubleJumpBoots grant one extra jump per airborne phase.
type DoubleJumpBoots struct{}

func (DoubleJumpBoots) Name() string { return "double_jump_boots" }

func (DoubleJumpBoots) Apply(p *entity.Player) {
	p.Augments.DoubleJump = true
}

// QuickTrigger shortens weapon cooldowns.
type QuickTrigger struct {
	Multiplier float64
}

func (QuickTrigger) Name() string { return "quick_trigger" }

func (q QuickTrigger) Apply(p *entity.Player) {
	if q.Multiplier > 0 {
		p.Augments.CooldownMultiplier = q.Multiplier
	}
}

// PhoenixFeather absorbs lethal hits while it has charges.
type PhoenixFeather struct {
	Charges int
}

// NewPhoenixFeather returns a feather with one charge.
func NewPhoenixFeather() *PhoenixFeather {
	return &PhoenixFeather{Charges: 1}
}

func (*PhoenixFeather) Name() string { return "phoenix_feather" }

func (f *PhoenixFeather) Apply(p *entity.Player) {
	p.Absorbers = append(p.Absorbers, f)
}

// AbsorbLethalHit spends a charge.
func (f *PhoenixFeather) AbsorbLethalHit(*entity.Entity) bool {
	if f.Charges <= 0 {
		return false
	}
	f.Charges--
	return true
}

// ByName builds an item from its name, as used in level and config files.
func ByName(name string) (Item, bool) {
	switch name {
	case "speed_boots":
		return SpeedBoots{Multiplier: 1.5}, true
	case "feather_charm":
		return FeatherCharm{Gravity: 0.4}, true
	case "double_jump_boots":
		return DoubleJumpBoots{}, true
	case "quick_trigger":
		return QuickTrigger{Multiplier: 0.5}, true
	case "phoenix_feather":
		return NewPhoenixFeather(), true
	}
	return nil, false
}
