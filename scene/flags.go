package scene

// NodeFlags is a bitset of simple per-node attributes, stored in the Graph's
// direct map rather than the arena because it is scalar-sized and queried on
// every traversal.
type NodeFlags uint8

const (
	// FlagHidden removes the node and its subtree from hit-testing and
	// rendering without detaching it.
	FlagHidden NodeFlags = 1 << iota

	// FlagDisabled keeps the node visible but inert to input.
	FlagDisabled

	// FlagHoverable marks the node as a hover-callback target.
	FlagHoverable

	// FlagFocusable marks the node as eligible for keyboard focus.
	FlagFocusable
)

// Has reports whether every bit in mask is set.
func (f NodeFlags) Has(mask NodeFlags) bool {
	return f&mask == mask
}

// With returns the flags with the mask bits set.
func (f NodeFlags) With(mask NodeFlags) NodeFlags {
	return f | mask
}

// Without returns the flags with the mask bits cleared.
func (f NodeFlags) Without(mask NodeFlags) NodeFlags {
	return f &^ mask
}
