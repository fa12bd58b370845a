package scene

import (
	"fmt"
	"iter"
)

// Allocator issues and retires entity handles. Each slot carries a generation
// counter that is incremented when the slot is freed, so every handle issued
// for a slot before the free is permanently invalidated, including copies
// taken immediately before the slot is reused.
//
// The Allocator is the source of truth for liveness; the Map and the Arena
// validate handles against it (or carry their own generation copy) but never
// mutate it.
type Allocator struct {
	generations []uint32
	alive       []bool
	free        []uint32
	count       int
}

// NewAllocator creates an empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Allocate returns a fresh entity handle. Retired indices are reused in LIFO
// order; a new slot starts at generation 0.
func (a *Allocator) Allocate() Entity {
	if n := len(a.free); n > 0 {
		index := a.free[n-1]
		a.free = a.free[:n-1]
		a.alive[index] = true
		a.count++
		return NewEntity(index, a.generations[index])
	}

	index := uint32(len(a.generations))
	a.generations = append(a.generations, 0)
	a.alive = append(a.alive, true)
	a.count++
	return NewEntity(index, 0)
}

// Free retires the entity's slot. The generation is incremented here, at free
// time rather than at reuse time, so outstanding copies of the handle become
// invalid immediately. Returns ErrStale if the handle's generation no longer
// matches the slot, ErrNotFound if the index was never allocated; in either
// case nothing is mutated.
func (a *Allocator) Free(e Entity) error {
	index := e.Index()
	if int(index) >= len(a.generations) {
		return fmt.Errorf("%w: index %d out of range", ErrNotFound, index)
	}
	if !a.alive[index] || a.generations[index] != e.Generation() {
		return fmt.Errorf("%w: %v", ErrStale, e)
	}

	a.alive[index] = false
	a.generations[index]++
	a.free = append(a.free, index)
	a.count--
	return nil
}

// IsValid reports whether the entity's slot is alive and its generation
// matches the slot's live generation.
func (a *Allocator) IsValid(e Entity) bool {
	index := e.Index()
	return int(index) < len(a.generations) &&
		a.alive[index] &&
		a.generations[index] == e.Generation()
}

// Len returns the number of live entities.
func (a *Allocator) Len() int {
	return a.count
}

// Live iterates all live entities in ascending index order.
func (a *Allocator) Live() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for i := range a.generations {
			if !a.alive[i] {
				continue
			}
			if !yield(NewEntity(uint32(i), a.generations[i])) {
				return
			}
		}
	}
}

// Reset retires every slot and forgets all generations. Handles issued before
// the reset must not be used afterwards; their indices restart at generation 0.
func (a *Allocator) Reset() {
	a.generations = a.generations[:0]
	a.alive = a.alive[:0]
	a.free = a.free[:0]
	a.count = 0
}
