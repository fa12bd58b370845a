package scene

import "iter"

const mapBlockSize = 64

// Map is a direct-indexed store of one value per entity, intended for simple
// per-entity data such as flags or scalar attributes. Values live in
// fixed-size blocks so growth never moves existing entries.
//
// The Map stores no generation of its own. Get validates handles against the
// Allocator the Map was created with, so a freed entity reads as absent even
// when its block slot was never cleared. Insert deliberately does not
// validate: the caller is expected to hold a handle it has already checked,
// and an unchecked stale handle will silently write under the recycled index.
type Map[V any] struct {
	alloc  *Allocator
	blocks [][mapBlockSize]V
	filled [][mapBlockSize]bool
	count  int
}

// NewMap creates a Map validated against the given allocator.
func NewMap[V any](alloc *Allocator) *Map[V] {
	return &Map[V]{alloc: alloc}
}

// Insert writes the value at the entity's index, growing the backing blocks
// as needed. Any previous value at that index is overwritten unconditionally.
func (m *Map[V]) Insert(e Entity, value V) {
	index := int(e.Index())
	blockIdx := index / mapBlockSize
	slotIdx := index % mapBlockSize

	for blockIdx >= len(m.blocks) {
		m.blocks = append(m.blocks, [mapBlockSize]V{})
		m.filled = append(m.filled, [mapBlockSize]bool{})
	}

	if !m.filled[blockIdx][slotIdx] {
		m.count++
	}
	m.blocks[blockIdx][slotIdx] = value
	m.filled[blockIdx][slotIdx] = true
}

// Get returns a pointer to the stored value. It reports false when the index
// is out of range, when no value is stored there, or when the Allocator no
// longer considers the handle valid.
func (m *Map[V]) Get(e Entity) (*V, bool) {
	if !m.alloc.IsValid(e) {
		return nil, false
	}

	index := int(e.Index())
	blockIdx := index / mapBlockSize
	slotIdx := index % mapBlockSize

	if blockIdx >= len(m.blocks) || !m.filled[blockIdx][slotIdx] {
		return nil, false
	}
	return &m.blocks[blockIdx][slotIdx], true
}

// Remove clears the slot at the entity's index and returns the previous
// value, if any. Allocator state is not touched, and no generation check is
// performed: removal is an index-level operation so that a cascading delete
// can clear slots for entities that are being freed in the same pass.
func (m *Map[V]) Remove(e Entity) (V, bool) {
	var zero V

	index := int(e.Index())
	blockIdx := index / mapBlockSize
	slotIdx := index % mapBlockSize

	if blockIdx >= len(m.blocks) || !m.filled[blockIdx][slotIdx] {
		return zero, false
	}

	prev := m.blocks[blockIdx][slotIdx]
	m.blocks[blockIdx][slotIdx] = zero
	m.filled[blockIdx][slotIdx] = false
	m.count--
	return prev, true
}

// Len returns the number of stored values, including values whose entities
// have been freed but not yet removed.
func (m *Map[V]) Len() int {
	return m.count
}

// All iterates stored values for live entities in ascending index order.
// Slots whose entity has been freed are skipped.
func (m *Map[V]) All() iter.Seq2[Entity, *V] {
	return func(yield func(Entity, *V) bool) {
		for blockIdx := range m.blocks {
			for slotIdx := 0; slotIdx < mapBlockSize; slotIdx++ {
				if !m.filled[blockIdx][slotIdx] {
					continue
				}
				index := blockIdx*mapBlockSize + slotIdx
				if index >= len(m.alloc.generations) || !m.alloc.alive[index] {
					continue
				}
				e := NewEntity(uint32(index), m.alloc.generations[index])
				if !yield(e, &m.blocks[blockIdx][slotIdx]) {
					return
				}
			}
		}
	}
}
