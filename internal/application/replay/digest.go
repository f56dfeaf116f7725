package replay

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"strconv"

	"github.com/younwookim/tileclash/internal/application/system"
	"github.com/younwookim/tileclash/internal/domain/entity"
	"github.com/younwookim/tileclash/internal/ecs"
)

// Digest hashes the exact float bits of every entity's kinematic state and
// health in slot order. Two worlds digest equal only if their trajectories
// were bit-identical.
func Digest(w *system.World) uint64 {
	h := fnv.New64a()
	var buf [8]byte

	putU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	putF := func(v float64) {
		putU64(math.Float64bits(v))
	}

	putU64(w.Frame())
	w.Each(func(handle ecs.Handle, e *entity.Entity) {
		putU64(uint64(handle.Index)<<32 | uint64(handle.Gen))
		putU64(uint64(e.Kind))
		putF(e.Body.Pos.X)
		putF(e.Body.Pos.Y)
		putF(e.Body.Vel.X)
		putF(e.Body.Vel.Y)
		putF(e.Body.Invincibility)
		putF(e.Body.Stun)
		putU64(uint64(int64(e.Health)))
		if e.Dead {
			putU64(1)
		} else {
			putU64(0)
		}
	})
	return h.Sum64()
}

// Trail folds the digest taken after every tick into a running sum. Two
// sessions share a sum only if every intermediate state matched, not just
// the last one.
type Trail struct {
	sum   uint64
	ticks int
}

// Add folds the current state of w into the sum.
func (t *Trail) Add(w *system.World) {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], t.sum)
	binary.LittleEndian.PutUint64(buf[8:], Digest(w))

	h := fnv.New64a()
	_, _ = h.Write(buf[:])
	t.sum = h.Sum64()
	t.ticks++
}

// Sum returns the running sum.
func (t *Trail) Sum() uint64 {
	return t.sum
}

// Ticks returns how many states have been folded in.
func (t *Trail) Ticks() int {
	return t.ticks
}

// FormatDigest renders a digest the way replays store it.
func FormatDigest(d uint64) string {
	return strconv.FormatUint(d, 16)
}
