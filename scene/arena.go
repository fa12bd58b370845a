package scene

import (
	"fmt"
	"iter"
)

type arenaSlot struct {
	generation uint32
	payload    Component
}

// Arena is an index-addressed store of tagged component payloads, one per
// entity. Each slot keeps the generation the payload was inserted under, so
// a lookup detects stale handles on its own even if the Allocator's
// bookkeeping were bypassed. The generation is a cross-check copy only; the
// Allocator remains the source of truth and the Arena never advances it.
type Arena struct {
	slots []arenaSlot
	count int
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Insert writes the payload at the entity's index together with the handle's
// generation, growing the backing array as needed. A previous payload at the
// index is overwritten unconditionally; changing a slot's kind goes through
// this overwrite, never mutation-in-place across kinds.
func (a *Arena) Insert(e Entity, c Component) {
	index := int(e.Index())
	for index >= len(a.slots) {
		a.slots = append(a.slots, arenaSlot{})
	}

	if a.slots[index].payload == nil {
		a.count++
	}
	a.slots[index] = arenaSlot{generation: e.Generation(), payload: c}
}

// Lookup returns the stored payload regardless of its kind. It fails with
// ErrNotFound for empty or out-of-range slots and ErrStale when the stored
// generation does not match the handle.
func (a *Arena) Lookup(e Entity) (Component, error) {
	index := int(e.Index())
	if index >= len(a.slots) || a.slots[index].payload == nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, e)
	}
	if a.slots[index].generation != e.Generation() {
		return nil, fmt.Errorf("%w: %v", ErrStale, e)
	}
	return a.slots[index].payload, nil
}

// Remove clears the slot's payload and returns it. The slot's generation is
// left untouched; generation bookkeeping belongs to the Allocator, and a
// later insert under a fresh handle overwrites it anyway. Removal with a
// stale handle fails so an outdated caller cannot clear a reused slot.
func (a *Arena) Remove(e Entity) (Component, bool) {
	index := int(e.Index())
	if index >= len(a.slots) || a.slots[index].payload == nil {
		return nil, false
	}
	if a.slots[index].generation != e.Generation() {
		return nil, false
	}

	prev := a.slots[index].payload
	a.slots[index].payload = nil
	a.count--
	return prev, true
}

// Len returns the number of occupied slots.
func (a *Arena) Len() int {
	return a.count
}

// All iterates every occupied slot in ascending index order, yielding the
// handle the payload was inserted under.
func (a *Arena) All() iter.Seq2[Entity, Component] {
	return func(yield func(Entity, Component) bool) {
		for i := range a.slots {
			if a.slots[i].payload == nil {
				continue
			}
			e := NewEntity(uint32(i), a.slots[i].generation)
			if !yield(e, a.slots[i].payload) {
				return
			}
		}
	}
}

// Get returns the payload at the entity's index as the requested kind. The
// slot is double-checked: the stored generation must match the handle
// (ErrStale) and the stored tag must match the requested kind
// (ErrTypeMismatch). Empty or out-of-range slots report ErrNotFound.
func Get[T kinds](a *Arena, e Entity) (*T, error) {
	index := int(e.Index())
	if index >= len(a.slots) || a.slots[index].payload == nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, e)
	}
	if a.slots[index].generation != e.Generation() {
		return nil, fmt.Errorf("%w: %v", ErrStale, e)
	}

	p, ok := any(a.slots[index].payload).(*T)
	if !ok {
		return nil, fmt.Errorf("%w: %v holds %v", ErrTypeMismatch, e, KindOf(a.slots[index].payload))
	}
	return p, nil
}

// IterKind iterates all slots holding the requested kind in ascending index
// order. The sequence is lazy and restartable; the index ordering is the
// contract renderer batching and deterministic tests rely on.
func IterKind[T kinds](a *Arena) iter.Seq2[Entity, *T] {
	return func(yield func(Entity, *T) bool) {
		for i := range a.slots {
			p, ok := any(a.slots[i].payload).(*T)
			if !ok {
				continue
			}
			e := NewEntity(uint32(i), a.slots[i].generation)
			if !yield(e, p) {
				return
			}
		}
	}
}
