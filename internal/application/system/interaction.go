package system

import (
	"github.com/younwookim/tileclash/internal/domain/entity"
	"github.com/younwookim/tileclash/internal/ecs"
)

// Handler reacts to self overlapping other. Each direction of a pair is a
// separate call.
type Handler func(s *InteractionSystem, self, other Ref)

// InteractionSystem finds overlapping entities and dispatches pair handlers
type InteractionSystem struct {
	combat   *CombatSystem
	dispatch [entity.KindCount][entity.KindCount]Handler

	// scratch buffers reused between ticks
	live     []Ref
	overlaps []Ref
}

// NewInteractionSystem creates a new interaction system
func NewInteractionSystem(combat *CombatSystem) *InteractionSystem {
	return &InteractionSystem{
		combat:   combat,
		dispatch: dispatchTable(),
	}
}

func dispatchTable() [entity.KindCount][entity.KindCount]Handler {
	const (
		player     = entity.KindPlayer
		patrol     = entity.KindPatrolEnemy
		turret     = entity.KindTurretEnemy
		projectile = entity.KindProjectile
	)
	return [entity.KindCount][entity.KindCount]Handler{
		player: {
			player:     ignore,
			patrol:     playerTouchesEnemy,
			turret:     playerTouchesEnemy,
			projectile: playerTouchesProjectile,
		},
		patrol: {
			player:     ignore,
			patrol:     ignore,
			turret:     ignore,
			projectile: enemyTouchesProjectile,
		},
		turret: {
			player:     ignore,
			patrol:     ignore,
			turret:     ignore,
			projectile: enemyTouchesProjectile,
		},
		// Damage is applied from the target's side of the pair
		projectile: {
			player:     ignore,
			patrol:     ignore,
			turret:     ignore,
			projectile: ignore,
		},
	}
}

// Handler returns the registered handler for the (self, other) kind pair.
func (s *InteractionSystem) Handler(self, other entity.Kind) Handler {
	if self >= entity.KindCount || other >= entity.KindCount {
		return ignore
	}
	return s.dispatch[self][other]
}

func ignore(*InteractionSystem, Ref, Ref) {}

func playerTouchesEnemy(s *InteractionSystem, self, other Ref) {
	s.combat.HitPlayerMelee(self, other.E)
}

func playerTouchesProjectile(s *InteractionSystem, self, other Ref) {
	s.combat.HitPlayerProjectile(self, other.E)
}

func enemyTouchesProjectile(s *InteractionSystem, self, other Ref) {
	s.combat.HitEnemy(self.E, other)
}

// FindOverlaps returns every live candidate other than self whose AABB
// overlaps self's. It is a linear scan; there is no spatial index.
func FindOverlaps(self Ref, candidates []Ref, dst []Ref) []Ref {
	rect := self.E.Rect()
	for _, c := range candidates {
		if c.Handle == self.Handle || !c.E.Live() {
			continue
		}
		if rect.Intersects(c.E.Rect()) {
			dst = append(dst, c)
		}
	}
	return dst
}

// Run scans every live entity against every other in slot order and
// calls the pair handler for each overlap.
func (s *InteractionSystem) Run(entities *ecs.Arena[entity.Entity]) {
	s.live = s.live[:0]
	entities.Each(func(h ecs.Handle, e *entity.Entity) {
		if e.Live() {
			s.live = append(s.live, Ref{Handle: h, E: e})
		}
	})

	for _, self := range s.live {
		if !self.E.Live() {
			continue
		}
		s.overlaps = FindOverlaps(self, s.live, s.overlaps[:0])
		for _, other := range s.overlaps {
			// Earlier handlers may have expired either side
			if !self.E.Live() {
				break
			}
			if !other.E.Live() {
				continue
			}
			s.dispatch[self.E.Kind][other.E.Kind](s, self, other)
		}
	}
}
