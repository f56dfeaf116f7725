// Package tile implements the sparse tile collision map and the
// rectangle queries the physics step runs against it.
package tile

import (
	"math"
	"sort"

	"github.com/younwookim/tileclash/internal/domain/geom"
)

// Size is the edge length of a tile in world units.
const Size = 64

// CollisionType classifies how a tile reacts to bodies.
type CollisionType uint8

const (
	None CollisionType = iota
	Solid
	SemiSolid
	Slippery
	Rough
	OneWay
)

// String returns the name of the collision type
func (t CollisionType) String() string {
	switch t {
	case Solid:
		return "Solid"
	case SemiSolid:
		return "SemiSolid"
	case Slippery:
		return "Slippery"
	case Rough:
		return "Rough"
	case OneWay:
		return "OneWay"
	default:
		return "None"
	}
}

// Classify maps a raw tile id to its collision type.
// Unknown ids, including the empty marker -1, classify as None.
func Classify(id int) CollisionType {
	switch id {
	case 0:
		return Solid
	case 1:
		return SemiSolid
	case 2:
		return Slippery
	case 3:
		return Rough
	case 4:
		return OneWay
	default:
		return None
	}
}

// Blocks reports whether the type stops movement like a wall
// (Solid, Rough, Slippery).
func (t CollisionType) Blocks() bool {
	return t == Solid || t == Rough || t == Slippery
}

// Coord is an integer tile coordinate.
type Coord struct {
	X, Y int
}

// Rect returns the world-space rectangle covered by the tile.
func (c Coord) Rect() geom.Rect {
	return geom.Rect{X: float64(c.X * Size), Y: float64(c.Y * Size), W: Size, H: Size}
}

// CollisionMap maps tile coordinates to raw tile ids.
// It is owned by the level and shared read-only by every entity.
type CollisionMap map[Coord]int

// Bounds are the world extents in tiles.
type Bounds struct {
	MaxX, MaxY int
}

// Rect returns the bounds in world units.
func (b Bounds) Rect() geom.Rect {
	return geom.Rect{W: float64(b.MaxX * Size), H: float64(b.MaxY * Size)}
}

// Hit is one tile intersecting a query rectangle.
type Hit struct {
	Coord Coord
	Rect  geom.Rect
	Type  CollisionType
}

// Index answers collision queries over a CollisionMap.
// The map is classified once at construction and never mutated.
type Index struct {
	types  map[Coord]CollisionType
	bounds Bounds
}

// NewIndex classifies every entry of m. Entries classifying as None are dropped.
func NewIndex(m CollisionMap, bounds Bounds) *Index {
	types := make(map[Coord]CollisionType, len(m))
	for c, id := range m {
		if t := Classify(id); t != None {
			types[c] = t
		}
	}
	return &Index{types: types, bounds: bounds}
}

// Bounds returns the world extents.
func (idx *Index) Bounds() Bounds {
	return idx.bounds
}

// Len returns the number of colliding tiles.
func (idx *Index) Len() int {
	return len(idx.types)
}

// TypeAt returns the collision type at c. Absent keys are None.
func (idx *Index) TypeAt(c Coord) CollisionType {
	return idx.types[c]
}

// IsSolidWall reports whether c holds a Solid, Rough or Slippery tile.
// SemiSolid and OneWay tiles are not walls.
func (idx *Index) IsSolidWall(c Coord) bool {
	return idx.types[c].Blocks()
}

// CoordAt returns the tile containing the world point (x, y).
func CoordAt(x, y float64) Coord {
	return Coord{X: int(math.Floor(x / Size)), Y: int(math.Floor(y / Size))}
}

// Intersecting returns every colliding tile strictly overlapping r,
// in row-major order. Callers impose their own ordering.
func (idx *Index) Intersecting(r geom.Rect) []Hit {
	if r.W <= 0 || r.H <= 0 {
		return nil
	}

	startX := int(math.Floor(r.Left() / Size))
	endX := int(math.Ceil(r.Right()/Size)) - 1
	startY := int(math.Floor(r.Top() / Size))
	endY := int(math.Ceil(r.Bottom()/Size)) - 1

	var hits []Hit
	for ty := startY; ty <= endY; ty++ {
		for tx := startX; tx <= endX; tx++ {
			c := Coord{X: tx, Y: ty}
			t, ok := idx.types[c]
			if !ok {
				continue
			}
			tr := c.Rect()
			if !tr.Intersects(r) {
				continue
			}
			hits = append(hits, Hit{Coord: c, Rect: tr, Type: t})
		}
	}
	return hits
}

// Coords returns all colliding coordinates in row-major order.
func (idx *Index) Coords() []Coord {
	coords := make([]Coord, 0, len(idx.types))
	for c := range idx.types {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})
	return coords
}
