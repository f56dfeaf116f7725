package system

import (
	"math"
	"sort"

	"github.com/younwookim/tileclash/internal/domain/entity"
	"github.com/younwookim/tileclash/internal/domain/tile"
)

// ResolveOptions tune the vertical resolver.
type ResolveOptions struct {
	// SemiSolidTolerance is how far below a platform's top the body's
	// bottom edge may start the tick and still land on it.
	SemiSolidTolerance float64
}

// AxisResult reports what governed one axis of movement.
type AxisResult struct {
	// Governing is the single tile that decided the move, nil if none intersected.
	Governing *tile.Hit
	// Blocked is true when the governing tile stopped the body.
	Blocked bool
}

// ResolveVertical moves b by dy on the Y axis against idx.
// The closest candidate tile governs; equally close candidates prefer Solid.
func ResolveVertical(b *entity.Body, dy float64, idx *tile.Index, opts ResolveOptions) AxisResult {
	if dy == 0 {
		return AxisResult{}
	}

	start := b.Rect()
	hits := idx.Intersecting(start.Offset(0, dy))
	if len(hits) == 0 {
		b.Pos.Y += dy
		return AxisResult{}
	}

	down := dy > 0
	dist := func(h tile.Hit) float64 {
		if down {
			return math.Abs(start.Bottom() - h.Rect.Top())
		}
		return math.Abs(start.Top() - h.Rect.Bottom())
	}
	sort.SliceStable(hits, func(i, j int) bool {
		di, dj := dist(hits[i]), dist(hits[j])
		if di != dj {
			return di < dj
		}
		return hits[i].Type == tile.Solid && hits[j].Type != tile.Solid
	})

	gov := hits[0]
	res := AxisResult{Governing: &gov}

	switch {
	case gov.Type.Blocks():
		if down {
			land(b, gov)
		} else {
			b.Pos.Y = gov.Rect.Bottom()
			b.Vel.Y = 0
			b.OnCeiling = true
		}
		res.Blocked = true
	case gov.Type == tile.SemiSolid:
		if down && !b.Dropping() && start.Bottom()-gov.Rect.Top() <= opts.SemiSolidTolerance {
			land(b, gov)
			res.Blocked = true
		} else {
			b.Pos.Y += dy
		}
	case gov.Type == tile.OneWay:
		if down && start.Bottom()-gov.Rect.Top() <= opts.SemiSolidTolerance {
			land(b, gov)
			res.Blocked = true
		} else {
			b.Pos.Y += dy
		}
	default:
		b.Pos.Y += dy
	}
	return res
}

func land(b *entity.Body, h tile.Hit) {
	b.Pos.Y = h.Rect.Top() - b.Size.Y
	b.Vel.Y = 0
	b.OnGround = true
	b.Surface = h.Type
}

// ResolveHorizontal moves b by dx on the X axis against idx.
// Only wall tiles (Solid, Rough, Slippery) block.
func ResolveHorizontal(b *entity.Body, dx float64, idx *tile.Index) AxisResult {
	if dx == 0 {
		return AxisResult{}
	}

	start := b.Rect()
	hits := idx.Intersecting(start.Offset(dx, 0))
	if len(hits) == 0 {
		b.Pos.X += dx
		return AxisResult{}
	}

	right := dx > 0
	dist := func(h tile.Hit) float64 {
		if right {
			return math.Abs(start.Right() - h.Rect.Left())
		}
		return math.Abs(start.Left() - h.Rect.Right())
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return dist(hits[i]) < dist(hits[j])
	})

	gov := hits[0]
	res := AxisResult{Governing: &gov}
	if !gov.Type.Blocks() {
		b.Pos.X += dx
		return res
	}

	if right {
		b.Pos.X = gov.Rect.Left() - b.Size.X
		b.OnWallRight = true
	} else {
		b.Pos.X = gov.Rect.Right()
		b.OnWallLeft = true
	}
	b.Vel.X = 0
	res.Blocked = true
	return res
}

// GapCaps are the per-tick nudge limits used by CenterInGap.
// A zero cap disables that case.
type GapCaps struct {
	// Vertical applies in one-tile-wide shafts and nudges X.
	Vertical float64
	// Horizontal applies in one-tile-tall funnels and nudges Y.
	Horizontal float64
}

// CenterInGap nudges b toward the centre of a one-tile passage around its
// centre tile. It returns the applied nudge.
func CenterInGap(b *entity.Body, idx *tile.Index, caps GapCaps) (dx, dy float64) {
	center := b.Rect().Center()
	c := tile.CoordAt(center.X, center.Y)
	if idx.IsSolidWall(c) {
		return 0, 0
	}
	mid := c.Rect().Center()

	if caps.Vertical > 0 && b.Size.X <= tile.Size &&
		idx.IsSolidWall(tile.Coord{X: c.X - 1, Y: c.Y}) &&
		idx.IsSolidWall(tile.Coord{X: c.X + 1, Y: c.Y}) {
		dx = clamp(mid.X-center.X, caps.Vertical)
		b.Pos.X += dx
	}

	// Standing bodies rest on the funnel floor; only airborne ones are centred
	if caps.Horizontal > 0 && !b.OnGround && b.Size.Y <= tile.Size &&
		idx.IsSolidWall(tile.Coord{X: c.X, Y: c.Y - 1}) &&
		idx.IsSolidWall(tile.Coord{X: c.X, Y: c.Y + 1}) {
		dy = clamp(mid.Y-center.Y, caps.Horizontal)
		b.Pos.Y += dy
	}
	return dx, dy
}

func clamp(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
