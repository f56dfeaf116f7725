package system

import (
	"math"

	"github.com/younwookim/tileclash/internal/domain/entity"
	"github.com/younwookim/tileclash/internal/domain/geom"
	"github.com/younwookim/tileclash/internal/domain/tile"
	"github.com/younwookim/tileclash/internal/infrastructure/config"
)

// AISystem drives the enemy variants
type AISystem struct {
	tuning *config.Tuning
	index  *tile.Index
}

// NewAISystem creates a new enemy AI system
func NewAISystem(tuning *config.Tuning, index *tile.Index) *AISystem {
	return &AISystem{
		tuning: tuning,
		index:  index,
	}
}

// Patrol walks the enemy back and forth. It turns at walls, at ledges and
// once it is PatrolDistance away from where it started.
func (s *AISystem) Patrol(e *entity.Entity) {
	en := e.Enemy
	b := &e.Body
	if en == nil || b.Stunned() {
		return
	}
	if en.PatrolDir == 0 {
		en.PatrolDir = -1
	}

	if s.shouldTurn(e) {
		en.PatrolDir = -en.PatrolDir
	}

	b.Vel.X = en.PatrolDir * en.Speed
	b.FacingRight = en.PatrolDir > 0
}

func (s *AISystem) shouldTurn(e *entity.Entity) bool {
	en := e.Enemy
	b := &e.Body

	if (en.PatrolDir < 0 && b.OnWallLeft) || (en.PatrolDir > 0 && b.OnWallRight) {
		return true
	}

	if en.PatrolDistance > 0 {
		offset := b.Pos.X - en.PatrolStartX
		if math.Abs(offset) >= en.PatrolDistance && offset*en.PatrolDir > 0 {
			return true
		}
	}

	// Ledge: no floor under the leading foot
	if b.OnGround {
		r := b.Rect()
		footX := r.Left() - 1
		if en.PatrolDir > 0 {
			footX = r.Right() + 1
		}
		if s.index.TypeAt(tile.CoordAt(footX, r.Bottom()+1)) == tile.None {
			return true
		}
	}
	return false
}

// Turret counts the fire timer down and, when it has run out and the
// player is within range, returns a projectile aimed at the player centre.
func (s *AISystem) Turret(self Ref, player *entity.Entity, dt float64) (entity.ProjectileSpec, bool) {
	e := self.E
	en := e.Enemy
	if en == nil {
		return entity.ProjectileSpec{}, false
	}

	en.FireTimer = math.Max(0, en.FireTimer-dt)
	if player == nil || !player.Live() {
		return entity.ProjectileSpec{}, false
	}

	origin := e.Center()
	toPlayer := player.Center().Sub(origin)
	e.Body.FacingRight = toPlayer.X >= 0
	if en.FireTimer > 0 || toPlayer.Len() > en.Range {
		return entity.ProjectileSpec{}, false
	}

	dir, ok := toPlayer.Normalize()
	if !ok {
		dir = geom.Vec{X: 1}
		if !e.Body.FacingRight {
			dir.X = -1
		}
	}
	en.FireTimer = en.FireInterval

	t := s.tuning.Turret
	size := geom.Vec{X: t.ProjectileSize, Y: t.ProjectileSize}
	return entity.ProjectileSpec{
		Owner:    entity.OwnerEnemy,
		Shooter:  self.Handle,
		Pos:      origin.Sub(size.Scale(0.5)),
		Vel:      dir.Scale(t.ProjectileSpeed),
		Size:     size,
		Damage:   t.ProjectileDamage,
		Lifetime: t.ProjectileLifetime,
	}, true
}
