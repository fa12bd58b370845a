package scene

import "fmt"

// Entity encodes both the generation counter (upper 32 bits) and the slot
// index (lower 32 bits). Two entities are equal only when both halves match,
// so a handle left over from a freed slot never compares equal to the handle
// issued after the slot is reused.
type Entity uint64

// NewEntity creates an Entity from a slot index and a generation counter.
func NewEntity(index uint32, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index extracts the slot index from the entity.
func (e Entity) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the generation counter from the entity.
func (e Entity) Generation() uint32 {
	return uint32(e >> 32)
}

func (e Entity) String() string {
	return fmt.Sprintf("Entity(%d v%d)", e.Index(), e.Generation())
}
