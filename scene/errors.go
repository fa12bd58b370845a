package scene

import "errors"

// Sentinel errors returned by the storage and tree operations. Callers are
// expected to treat any of them as "entity no longer exists" and drop the
// handle; none of them is fatal. Use errors.Is to classify wrapped values.
var (
	// ErrNotFound reports an index outside the current slot range, or a
	// tree operation against a node that was never attached.
	ErrNotFound = errors.New("scene: not found")

	// ErrStale reports a generation mismatch: the handle refers to a slot
	// that has been freed, and possibly reused, since the handle was issued.
	ErrStale = errors.New("scene: stale entity")

	// ErrTypeMismatch reports an arena lookup whose requested kind does not
	// match the tag of the stored variant.
	ErrTypeMismatch = errors.New("scene: component kind mismatch")

	// ErrCycle reports a reparent that would make a node its own ancestor.
	ErrCycle = errors.New("scene: reparent would create a cycle")

	// ErrAlreadyAttached reports an insert of a node already in the tree.
	ErrAlreadyAttached = errors.New("scene: node already attached")
)
