// Package weapon holds the weapon definitions and the per-shot
// parameters they hand to the world when they fire.
package weapon

import (
	"math"

	"github.com/younwookim/tileclash/internal/domain/geom"
)

// Definition describes a weapon. Cooldown and Lifetime are in frames.
type Definition struct {
	Name     string
	Damage   int
	Speed    float64
	Size     geom.Vec
	Lifetime float64
	Piercing bool

	// Pellets is the number of projectiles per shot, spread evenly
	// over SpreadDeg around the aim direction.
	Pellets   int
	SpreadDeg float64

	Cooldown float64
}

// Built-in weapons.
var (
	Pistol = Definition{
		Name:     "pistol",
		Damage:   10,
		Speed:    12,
		Size:     geom.Vec{X: 8, Y: 8},
		Lifetime: 90,
		Pellets:  1,
		Cooldown: 15,
	}
	Shotgun = Definition{
		Name:      "shotgun",
		Damage:    15,
		Speed:     10,
		Size:      geom.Vec{X: 6, Y: 6},
		Lifetime:  30,
		Pellets:   5,
		SpreadDeg: 20,
		Cooldown:  45,
	}
	Rifle = Definition{
		Name:     "rifle",
		Damage:   25,
		Speed:    18,
		Size:     geom.Vec{X: 12, Y: 4},
		Lifetime: 120,
		Piercing: true,
		Pellets:  1,
		Cooldown: 60,
	}
)

// ByName returns a built-in definition.
func ByName(name string) (Definition, bool) {
	switch name {
	case Pistol.Name:
		return Pistol, true
	case Shotgun.Name:
		return Shotgun, true
	case Rifle.Name:
		return Rifle, true
	}
	return Definition{}, false
}

// Shot is the parameter set for one projectile to spawn.
// Pos is the projectile's top-left corner.
type Shot struct {
	Pos      geom.Vec
	Vel      geom.Vec
	Size     geom.Vec
	Damage   int
	Lifetime float64
	Piercing bool
}

// Weapon is an equipped definition plus its cooldown state.
type Weapon struct {
	Def      Definition
	cooldown float64
}

// New equips def.
func New(def Definition) *Weapon {
	return &Weapon{Def: def}
}

// Cooldown returns the frames left until the weapon can fire again.
func (w *Weapon) Cooldown() float64 {
	return w.cooldown
}

// Ready reports whether the weapon can fire.
func (w *Weapon) Ready() bool {
	return w.cooldown <= 0
}

// Tick advances the cooldown by dt frames.
func (w *Weapon) Tick(dt float64) {
	w.cooldown -= dt
	if w.cooldown < 0 {
		w.cooldown = 0
	}
}

// Fire returns the shots for one trigger pull from origin (the shooter's
// centre) toward dir, or nil while cooling down. A zero dir fires along
// fallback. cooldownMult scales the definition's cooldown.
func (w *Weapon) Fire(origin, dir, fallback geom.Vec, cooldownMult float64) []Shot {
	if !w.Ready() {
		return nil
	}
	aim, ok := dir.Normalize()
	if !ok {
		aim, ok = fallback.Normalize()
		if !ok {
			aim = geom.Vec{X: 1}
		}
	}
	if cooldownMult <= 0 {
		cooldownMult = 1
	}
	w.cooldown = w.Def.Cooldown * cooldownMult

	pellets := max(w.Def.Pellets, 1)
	base := math.Atan2(aim.Y, aim.X)
	spread := w.Def.SpreadDeg * math.Pi / 180

	shots := make([]Shot, 0, pellets)
	for i := 0; i < pellets; i++ {
		angle := base
		if pellets > 1 {
			angle += spread * (float64(i)/float64(pellets-1) - 0.5)
		}
		vel := geom.Vec{X: math.Cos(angle), Y: math.Sin(angle)}.Scale(w.Def.Speed)
		shots = append(shots, Shot{
			Pos:      origin.Sub(w.Def.Size.Scale(0.5)),
			Vel:      vel,
			Size:     w.Def.Size,
			Damage:   w.Def.Damage,
			Lifetime: w.Def.Lifetime,
			Piercing: w.Def.Piercing,
		})
	}
	return shots
}
