package system

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/younwookim/tileclash/internal/domain/entity"
	"github.com/younwookim/tileclash/internal/domain/tile"
	"github.com/younwookim/tileclash/internal/ecs"
	"github.com/younwookim/tileclash/internal/infrastructure/config"
)

// World owns every live entity and runs the simulation tick.
type World struct {
	entities *ecs.Arena[entity.Entity]
	index    *tile.Index
	tuning   *config.Tuning
	log      *zap.Logger
	events   *eventLog

	physics     *PhysicsSystem
	control     *ControlSystem
	ai          *AISystem
	combat      *CombatSystem
	interaction *InteractionSystem

	player ecs.Handle
	frame  uint64
	over   bool
}

// WorldOption configures a World.
type WorldOption func(*World)

// WithLogger sets the logger used for simulation debug output.
func WithLogger(log *zap.Logger) WorldOption {
	return func(w *World) {
		if log != nil {
			w.log = log
		}
	}
}

// NewWorld creates an empty world over idx. The tuning is copied; use
// SetTuning to change it later.
func NewWorld(idx *tile.Index, tuning *config.Tuning, opts ...WorldOption) *World {
	t := *tuning
	w := &World{
		entities: ecs.NewArena[entity.Entity](64),
		index:    idx,
		tuning:   &t,
		log:      zap.NewNop(),
		events:   &eventLog{},
	}
	for _, opt := range opts {
		opt(w)
	}

	w.physics = NewPhysicsSystem(w.tuning, idx)
	w.control = NewControlSystem(w.tuning)
	w.ai = NewAISystem(w.tuning, idx)
	w.combat = NewCombatSystem(w.tuning, w.events, w.log)
	w.interaction = NewInteractionSystem(w.combat)
	return w
}

// Index returns the level's tile index.
func (w *World) Index() *tile.Index { return w.index }

// Tuning returns the active tuning. Callers must not modify it.
func (w *World) Tuning() *config.Tuning { return w.tuning }

// SetTuning replaces the tuning values. Call it between ticks only.
func (w *World) SetTuning(t *config.Tuning) {
	*w.tuning = *t
}

// Frame returns the number of completed ticks.
func (w *World) Frame() uint64 { return w.frame }

// Over reports whether the player has died.
func (w *World) Over() bool { return w.over }

// Len returns the number of live entities.
func (w *World) Len() int { return w.entities.Len() }

// Spawn inserts e immediately. Use it at level load, never during a tick.
func (w *World) Spawn(e entity.Entity) ecs.Handle {
	h := w.entities.Insert(e)
	if e.Kind == entity.KindPlayer {
		w.player = h
	}
	return h
}

// SpawnProjectile validates spec and queues the projectile for the end of
// the current tick.
func (w *World) SpawnProjectile(spec entity.ProjectileSpec) error {
	e, err := entity.NewProjectile(spec)
	if err != nil {
		return err
	}
	w.entities.Queue(e)
	return nil
}

// Get resolves a handle.
func (w *World) Get(h ecs.Handle) (*entity.Entity, bool) {
	return w.entities.Get(h)
}

// Player returns the player entity.
func (w *World) Player() (*entity.Entity, bool) {
	return w.entities.Get(w.player)
}

// PlayerHandle returns the player's handle.
func (w *World) PlayerHandle() ecs.Handle { return w.player }

// Each visits every entity in slot order.
func (w *World) Each(fn func(h ecs.Handle, e *entity.Entity)) {
	w.entities.Each(fn)
}

// Tick advances the simulation by dt frames and returns the tick's events.
// Order: control and AI, physics, interactions, deaths, pruning. Entities
// spawned during the tick become live at its end. After game over Tick is a
// no-op.
func (w *World) Tick(in Intent, dt float64) []Event {
	if w.over {
		return nil
	}
	w.events.frame = w.frame

	w.runControl(in, dt)
	w.runPhysics(dt)
	w.interaction.Run(w.entities)
	w.runDeaths()

	w.entities.RemoveIf(func(e *entity.Entity) bool {
		if e.Kind == entity.KindPlayer {
			return false
		}
		return e.Dead || (e.Projectile != nil && e.Projectile.Expired())
	})
	w.entities.Flush()

	w.frame++
	return w.events.drain()
}

func (w *World) runControl(in Intent, dt float64) {
	player, _ := w.Player()

	w.entities.Each(func(h ecs.Handle, e *entity.Entity) {
		if !e.Live() {
			return
		}
		self := Ref{Handle: h, E: e}
		switch e.Kind {
		case entity.KindPlayer:
			for _, spec := range w.control.Apply(self, in, dt) {
				w.queueProjectile(spec)
			}
		case entity.KindPatrolEnemy:
			w.ai.Patrol(e)
		case entity.KindTurretEnemy:
			if spec, ok := w.ai.Turret(self, player, dt); ok {
				w.queueProjectile(spec)
			}
		}
	})
}

func (w *World) queueProjectile(spec entity.ProjectileSpec) {
	if err := w.SpawnProjectile(spec); err != nil {
		// Specs come from our own systems, so this is a bug worth surfacing
		w.log.Error("spawn projectile", zap.Error(err))
		return
	}
	w.events.emit(EventProjectileFired, spec.Shooter, spec.Damage)
}

func (w *World) runPhysics(dt float64) {
	w.entities.Each(func(_ ecs.Handle, e *entity.Entity) {
		if !e.Live() {
			return
		}
		if e.Kind == entity.KindProjectile {
			w.physics.StepProjectile(e, dt)
			return
		}
		w.physics.Step(e, dt)
	})
}

func (w *World) runDeaths() {
	w.entities.Each(func(h ecs.Handle, e *entity.Entity) {
		if e.Dead || e.Kind == entity.KindProjectile || e.Health > 0 {
			return
		}
		e.Dead = true

		switch {
		case e.Kind == entity.KindPlayer:
			w.over = true
			w.log.Debug("game over", zap.Uint64("frame", w.frame))
			w.events.emit(EventGameOver, h, 0)
		case e.Enemy != nil && !e.Enemy.KillReported:
			e.Enemy.KillReported = true
			w.log.Debug("enemy killed",
				zap.Stringer("kind", e.Kind),
				zap.Int("health", e.Health),
				zap.Uint64("frame", w.frame))
			w.events.emit(EventEnemyKilled, h, 0)
		}
	})
}

// String summarises the world for debug output.
func (w *World) String() string {
	return fmt.Sprintf("world{frame=%d entities=%d over=%t}", w.frame, w.entities.Len(), w.over)
}
