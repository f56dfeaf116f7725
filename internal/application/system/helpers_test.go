package system

import (
	"github.com/younwookim/tileclash/internal/domain/entity"
	"github.com/younwookim/tileclash/internal/domain/geom"
	"github.com/younwookim/tileclash/internal/domain/tile"
	"github.com/younwookim/tileclash/internal/ecs"
	"github.com/younwookim/tileclash/internal/infrastructure/config"
)

// Grid legend for test maps, one character per 64px tile.
var testTileIDs = map[rune]int{
	'#': 0, // Solid
	'-': 1, // SemiSolid
	'~': 2, // Slippery
	'%': 3, // Rough
	'^': 4, // OneWay
}

func createTestIndex(rows ...string) *tile.Index {
	m := make(tile.CollisionMap)
	width := 0
	for y, row := range rows {
		width = max(width, len(row))
		for x, ch := range row {
			if id, ok := testTileIDs[ch]; ok {
				m[tile.Coord{X: x, Y: y}] = id
			}
		}
	}
	return tile.NewIndex(m, tile.Bounds{MaxX: width, MaxY: len(rows)})
}

func createTestWorld(rows ...string) *World {
	return NewWorld(createTestIndex(rows...), config.DefaultTuning())
}

func createTestBody(x, y, w, h float64) *entity.Body {
	b := entity.NewBody(geom.Vec{X: x, Y: y}, geom.Vec{X: w, Y: h})
	return &b
}

func createTestPlayer(x, y float64) entity.Entity {
	return entity.NewPlayer(geom.Vec{X: x, Y: y}, geom.Vec{X: 48, Y: 60}, 100)
}

func createTestEnemy(x, y float64, health int) entity.Entity {
	return entity.NewTurretEnemy(geom.Vec{X: x, Y: y}, geom.Vec{X: 48, Y: 48}, health, 0, 90)
}

func createTestProjectile(owner entity.Owner, x, y float64, vel geom.Vec, damage int) entity.Entity {
	e, err := entity.NewProjectile(entity.ProjectileSpec{
		Owner:    owner,
		Pos:      geom.Vec{X: x, Y: y},
		Vel:      vel,
		Size:     geom.Vec{X: 8, Y: 8},
		Damage:   damage,
		Lifetime: 60,
	})
	if err != nil {
		panic(err)
	}
	return e
}

// refOf wraps e with a synthetic handle for unit tests outside an arena.
func refOf(index uint32, e *entity.Entity) Ref {
	return Ref{Handle: ecs.Handle{Index: index, Gen: 1}, E: e}
}
