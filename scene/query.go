package scene

import "iter"

// Query snapshots IterKind results once per frame so passes can iterate the
// same set repeatedly without re-scanning the arena. Execute rebuilds the
// cache; Iter and Values panic when read before Execute has run.
type Query[T kinds] struct {
	arena      *Arena
	entities   []Entity
	values     []*T
	cacheValid bool
}

// NewQuery creates a query over the given arena.
func NewQuery[T kinds](arena *Arena) *Query[T] {
	return &Query[T]{arena: arena}
}

// Execute rebuilds the entity and value caches from the arena.
func (q *Query[T]) Execute() {
	q.entities = q.entities[:0]
	q.values = q.values[:0]

	for e, v := range IterKind[T](q.arena) {
		q.entities = append(q.entities, e)
		q.values = append(q.values, v)
	}
	q.cacheValid = true
}

// Invalidate drops the cache, forcing the next read to fail until Execute
// runs again. Useful after structural edits outside the usual frame cycle.
func (q *Query[T]) Invalidate() {
	q.cacheValid = false
}

// Len returns the number of cached matches.
func (q *Query[T]) Len() int {
	return len(q.entities)
}

// Iter iterates the cached entity/value pairs in ascending index order.
// Panics if Execute has not been called this frame.
func (q *Query[T]) Iter() iter.Seq2[Entity, *T] {
	if !q.cacheValid {
		panic("scene: Query.Iter called before Query.Execute")
	}

	return func(yield func(Entity, *T) bool) {
		for i := range q.entities {
			if !yield(q.entities[i], q.values[i]) {
				return
			}
		}
	}
}

// Values iterates the cached values only.
// Panics if Execute has not been called this frame.
func (q *Query[T]) Values() iter.Seq[*T] {
	if !q.cacheValid {
		panic("scene: Query.Values called before Query.Execute")
	}

	return func(yield func(*T) bool) {
		for i := range q.values {
			if !yield(q.values[i]) {
				return
			}
		}
	}
}
