package system

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/younwookim/tileclash/internal/domain/entity"
	"github.com/younwookim/tileclash/internal/domain/geom"
	"github.com/younwookim/tileclash/internal/domain/item"
	"github.com/younwookim/tileclash/internal/domain/tile"
	"github.com/younwookim/tileclash/internal/domain/weapon"
	"github.com/younwookim/tileclash/internal/infrastructure/config"
)

// Level is the immutable geometry and spawn list of a loaded stage.
type Level struct {
	ID          string
	Map         tile.CollisionMap
	Bounds      tile.Bounds
	PlayerSpawn geom.Vec
	Enemies     []config.EnemySpawnConfig
}

// LoadLevel converts a StageConfig into a Level. Grid cells come first,
// sparse tiles override them. Empty cells (-1) are not stored.
func LoadLevel(cfg *config.StageConfig) (*Level, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := make(tile.CollisionMap)
	for y, row := range cfg.Grid {
		for x, id := range row {
			if id < 0 {
				continue
			}
			m[tile.Coord{X: x, Y: y}] = id
		}
	}
	for _, t := range cfg.Tiles {
		if t.X < 0 || t.Y < 0 || t.X >= cfg.Size.Width || t.Y >= cfg.Size.Height {
			return nil, fmt.Errorf("stage %s: tile (%d,%d) outside %dx%d", cfg.ID, t.X, t.Y, cfg.Size.Width, cfg.Size.Height)
		}
		if t.ID < 0 {
			delete(m, tile.Coord{X: t.X, Y: t.Y})
			continue
		}
		m[tile.Coord{X: t.X, Y: t.Y}] = t.ID
	}

	return &Level{
		ID:          cfg.ID,
		Map:         m,
		Bounds:      tile.Bounds{MaxX: cfg.Size.Width, MaxY: cfg.Size.Height},
		PlayerSpawn: geom.Vec{X: cfg.PlayerSpawn.X, Y: cfg.PlayerSpawn.Y},
		Enemies:     cfg.Enemies,
	}, nil
}

// NewWorldFromLevel builds a world for lvl and spawns the player and enemies
// described by the level and the tuning.
func NewWorldFromLevel(lvl *Level, tuning *config.Tuning, opts ...WorldOption) (*World, error) {
	w := NewWorld(tile.NewIndex(lvl.Map, lvl.Bounds), tuning, opts...)
	t := w.Tuning()

	player := entity.NewPlayer(lvl.PlayerSpawn, geom.Vec{X: t.Player.Width, Y: t.Player.Height}, t.Player.Health)
	if t.Player.Weapon != "" {
		def, ok := weapon.ByName(t.Player.Weapon)
		if !ok {
			return nil, fmt.Errorf("unknown weapon %q", t.Player.Weapon)
		}
		player.Player.Weapon = weapon.New(def)
	}
	for _, name := range t.Player.Items {
		it, ok := item.ByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown item %q", name)
		}
		if err := item.Apply(&player, it); err != nil {
			return nil, err
		}
	}
	w.Spawn(player)

	for _, sp := range lvl.Enemies {
		e, err := newEnemyFromSpawn(sp, t)
		if err != nil {
			return nil, fmt.Errorf("level %s: %w", lvl.ID, err)
		}
		w.Spawn(e)
	}

	w.log.Debug("level loaded",
		zap.String("level", lvl.ID),
		zap.Int("tiles", w.index.Len()),
		zap.Int("entities", w.Len()))
	return w, nil
}

func newEnemyFromSpawn(sp config.EnemySpawnConfig, t *config.Tuning) (entity.Entity, error) {
	var (
		kind   entity.Kind
		size   geom.Vec
		health int
	)
	switch sp.Type {
	case "patrol":
		kind, size, health = entity.KindPatrolEnemy, geom.Vec{X: t.Patrol.Width, Y: t.Patrol.Height}, t.Patrol.Health
	case "turret":
		kind, size, health = entity.KindTurretEnemy, geom.Vec{X: t.Turret.Width, Y: t.Turret.Height}, t.Turret.Health
	default:
		return entity.Entity{}, fmt.Errorf("unknown enemy type %q", sp.Type)
	}

	e, _ := entity.NewEnemy(kind, geom.Vec{X: sp.X, Y: sp.Y}, size, health, entity.EnemyStats{
		Speed:          t.Patrol.Speed,
		PatrolDistance: t.Patrol.PatrolDistance,
		Range:          t.Turret.Range,
		FireInterval:   t.Turret.FireInterval,
	})
	e.Body.FacingRight = sp.FacingRight
	if sp.FacingRight && kind == entity.KindPatrolEnemy {
		e.Enemy.PatrolDir = 1
	}
	return e, nil
}
