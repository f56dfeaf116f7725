// Package ecs provides the handle arena that owns every live entity.
//
// Other code never keeps a pointer to an entity across ticks; it keeps a
// Handle and asks the arena. Slots are recycled with a bumped generation,
// so stale handles from a pruned entity resolve to nothing.
package ecs

// Handle is a stable reference to an arena slot.
// The zero Handle never resolves.
type Handle struct {
	Index uint32
	Gen   uint32
}

// IsZero reports whether h is the nil handle.
func (h Handle) IsZero() bool {
	return h.Gen == 0
}

type slot[T any] struct {
	gen   uint32
	alive bool
	value T
}

// Arena holds values of T addressed by Handle.
// Iteration is always in slot order, which keeps ticks deterministic.
type Arena[T any] struct {
	slots   []slot[T]
	free    []uint32
	pending []T
	live    int
}

// NewArena creates an empty arena with room for capacity values.
func NewArena[T any](capacity int) *Arena[T] {
	return &Arena[T]{
		slots: make([]slot[T], 0, capacity),
	}
}

// Insert stores v immediately and returns its handle.
// Use Queue while iterating.
func (a *Arena[T]) Insert(v T) Handle {
	a.live++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.gen++
		s.alive = true
		s.value = v
		return Handle{Index: idx, Gen: s.gen}
	}
	a.slots = append(a.slots, slot[T]{gen: 1, alive: true, value: v})
	return Handle{Index: uint32(len(a.slots) - 1), Gen: 1}
}

// Queue defers an insertion until the next Flush.
func (a *Arena[T]) Queue(v T) {
	a.pending = append(a.pending, v)
}

// Pending returns the number of queued insertions.
func (a *Arena[T]) Pending() int {
	return len(a.pending)
}

// Flush inserts every queued value in queue order and returns their handles.
func (a *Arena[T]) Flush() []Handle {
	if len(a.pending) == 0 {
		return nil
	}
	handles := make([]Handle, 0, len(a.pending))
	for _, v := range a.pending {
		handles = append(handles, a.Insert(v))
	}
	a.pending = a.pending[:0]
	return handles
}

// Get returns a pointer to the value behind h.
// The pointer is valid until the slot is removed.
func (a *Arena[T]) Get(h Handle) (*T, bool) {
	if h.Gen == 0 || int(h.Index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[h.Index]
	if !s.alive || s.gen != h.Gen {
		return nil, false
	}
	return &s.value, true
}

// Exists reports whether h still resolves.
func (a *Arena[T]) Exists(h Handle) bool {
	_, ok := a.Get(h)
	return ok
}

// Remove frees the slot behind h. Removing a stale handle is a no-op.
func (a *Arena[T]) Remove(h Handle) bool {
	if _, ok := a.Get(h); !ok {
		return false
	}
	s := &a.slots[h.Index]
	var zero T
	s.alive = false
	s.value = zero
	a.free = append(a.free, h.Index)
	a.live--
	return true
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	return a.live
}

// Each calls fn for every live value in slot order.
// fn must not insert or remove; use Queue and RemoveIf instead.
func (a *Arena[T]) Each(fn func(h Handle, v *T)) {
	for i := range a.slots {
		s := &a.slots[i]
		if !s.alive {
			continue
		}
		fn(Handle{Index: uint32(i), Gen: s.gen}, &s.value)
	}
}

// RemoveIf removes every live value for which pred returns true
// and returns the removed handles in slot order.
func (a *Arena[T]) RemoveIf(pred func(v *T) bool) []Handle {
	var removed []Handle
	for i := range a.slots {
		s := &a.slots[i]
		if !s.alive || !pred(&s.value) {
			continue
		}
		h := Handle{Index: uint32(i), Gen: s.gen}
		a.Remove(h)
		removed = append(removed, h)
	}
	return removed
}
