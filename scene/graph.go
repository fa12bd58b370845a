package scene

import "fmt"

// Graph bundles the four stores behind one façade: the Allocator that issues
// handles, the visual and transform arenas, the hierarchy tree, and a direct
// map of node flags. The stores stay independent — they are unified only
// through the shared handle space — and the Graph is the single place where
// a structural edit touches more than one of them.
type Graph struct {
	alloc      *Allocator
	visuals    *Arena
	transforms *Arena
	tree       *Tree
	flags      *Map[NodeFlags]
}

// NewGraph creates an empty scene graph.
func NewGraph() *Graph {
	alloc := NewAllocator()
	return &Graph{
		alloc:      alloc,
		visuals:    NewArena(),
		transforms: NewArena(),
		tree:       NewTree(),
		flags:      NewMap[NodeFlags](alloc),
	}
}

// Allocator exposes the handle allocator.
func (g *Graph) Allocator() *Allocator { return g.alloc }

// Visuals exposes the arena holding Shape, Style and Text payloads.
func (g *Graph) Visuals() *Arena { return g.visuals }

// Transforms exposes the arena holding Transform payloads. Layout writes
// computed placement here; the renderer and hit-testing read it.
func (g *Graph) Transforms() *Arena { return g.transforms }

// Tree exposes the hierarchy.
func (g *Graph) Tree() *Tree { return g.tree }

// Flags exposes the direct map of node flags.
func (g *Graph) Flags() *Map[NodeFlags] { return g.flags }

// place routes a component to its arena: transforms for Transform, visuals
// for everything else.
func (g *Graph) place(e Entity, c Component) {
	if KindOf(c) == KindTransform {
		g.transforms.Insert(e, c)
		return
	}
	g.visuals.Insert(e, c)
}

// Spawn allocates a new entity, attaches it as a root, and stores the given
// components under the fresh handle. Each arena holds one payload per
// entity, so of several non-Transform components the last one wins; a node
// carries at most one visual payload plus one Transform.
func (g *Graph) Spawn(components ...Component) Entity {
	e := g.alloc.Allocate()
	if err := g.tree.InsertRoot(e); err != nil {
		// A fresh handle cannot already be attached unless a removal
		// skipped its tree cleanup.
		panic("scene: allocator and tree out of sync: " + err.Error())
	}
	for _, c := range components {
		g.place(e, c)
	}
	return e
}

// SpawnChild is Spawn with the new entity appended to the parent's children.
// Returns ErrStale when the parent handle is no longer valid.
func (g *Graph) SpawnChild(parent Entity, components ...Component) (Entity, error) {
	if !g.alloc.IsValid(parent) {
		return 0, fmt.Errorf("%w: parent %v", ErrStale, parent)
	}

	e := g.alloc.Allocate()
	if err := g.tree.InsertChild(parent, e); err != nil {
		g.mustFree(e)
		return 0, err
	}
	for _, c := range components {
		g.place(e, c)
	}
	return e, nil
}

// Reparent moves the entity's subtree under a new parent, preserving
// insertion order at the destination.
func (g *Graph) Reparent(e, newParent Entity) error {
	if !g.alloc.IsValid(e) {
		return fmt.Errorf("%w: %v", ErrStale, e)
	}
	if !g.alloc.IsValid(newParent) {
		return fmt.Errorf("%w: parent %v", ErrStale, newParent)
	}
	return g.tree.Reparent(e, newParent)
}

// RemoveSubtree destroys the entity and every descendant: each is unlinked
// from the tree, cleared from both arenas and the flag map, and freed in the
// allocator. The set of affected entities is collected before anything is
// mutated, so no partial state is observable.
func (g *Graph) RemoveSubtree(e Entity) error {
	if !g.alloc.IsValid(e) {
		return fmt.Errorf("%w: %v", ErrStale, e)
	}

	removed := []Entity{e}
	for d := range g.tree.Descendants(e) {
		removed = append(removed, d)
	}

	if err := g.tree.RemoveSubtree(e); err != nil {
		return err
	}
	for _, r := range removed {
		g.visuals.Remove(r)
		g.transforms.Remove(r)
		g.flags.Remove(r)
		g.mustFree(r)
	}
	return nil
}

func (g *Graph) mustFree(e Entity) {
	if err := g.alloc.Free(e); err != nil {
		// Entities reached through the tree are always live; a failed
		// free means the tree held a handle the allocator had retired.
		panic("scene: allocator and tree out of sync: " + err.Error())
	}
}

// IsValid reports whether the handle refers to a live entity.
func (g *Graph) IsValid(e Entity) bool {
	return g.alloc.IsValid(e)
}

// Len returns the number of live entities.
func (g *Graph) Len() int {
	return g.alloc.Len()
}

// SetFlags replaces the entity's flag bits.
func (g *Graph) SetFlags(e Entity, f NodeFlags) error {
	if !g.alloc.IsValid(e) {
		return fmt.Errorf("%w: %v", ErrStale, e)
	}
	g.flags.Insert(e, f)
	return nil
}

// FlagsOf returns the entity's flag bits, zero when none were set or the
// handle is invalid.
func (g *Graph) FlagsOf(e Entity) NodeFlags {
	if f, ok := g.flags.Get(e); ok {
		return *f
	}
	return 0
}

// GraphStats is a point-in-time summary of graph contents.
type GraphStats struct {
	EntityCount int
	RootCount   int
	MaxDepth    int
	KindCounts  map[ComponentKind]int
}

// CollectStats walks the graph and summarizes it. Intended for debug
// overlays and tests, not for per-frame hot paths.
func (g *Graph) CollectStats() GraphStats {
	stats := GraphStats{
		EntityCount: g.alloc.Len(),
		KindCounts:  make(map[ComponentKind]int, kindCount),
	}

	for _, c := range g.visuals.All() {
		stats.KindCounts[KindOf(c)]++
	}
	for _, c := range g.transforms.All() {
		stats.KindCounts[KindOf(c)]++
	}

	for root := range g.tree.Roots() {
		stats.RootCount++
		for d := range g.tree.Descendants(root) {
			if depth := g.tree.Depth(d); depth > stats.MaxDepth {
				stats.MaxDepth = depth
			}
		}
	}
	return stats
}
