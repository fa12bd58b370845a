package scene

import (
	"fmt"
	"iter"
)

type link struct {
	entity Entity
	ok     bool
}

func someLink(e Entity) link {
	return link{entity: e, ok: true}
}

// treeNode records a node's place in the hierarchy. The zero value is an
// unattached node with no links. self holds the handle the node was attached
// under, so iteration can yield full handles for linkless roots.
type treeNode struct {
	self        Entity
	parent      link
	firstChild  link
	nextSibling link
	prevSibling link
	attached    bool
}

// Tree records parent/first-child/next-sibling relations keyed by entity
// index. Nodes reachable from the roots form a forest: every attached
// non-root node has exactly one parent and appears in exactly one sibling
// chain, in insertion order. The prev-sibling link is a cache that makes
// unlinking O(1); it carries no ordering information of its own.
//
// The Tree is keyed by the shared handle space only. It does not consult the
// Allocator; handle validity is the caller's concern, as it is for the Map.
type Tree struct {
	nodes []treeNode
	count int
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

func (t *Tree) grow(index int) {
	for index >= len(t.nodes) {
		t.nodes = append(t.nodes, treeNode{})
	}
}

func (t *Tree) node(index int) treeNode {
	if index >= len(t.nodes) {
		return treeNode{}
	}
	return t.nodes[index]
}

func (t *Tree) isAttached(e Entity) bool {
	return t.node(int(e.Index())).attached
}

// Contains reports whether the entity is attached to the tree.
func (t *Tree) Contains(e Entity) bool {
	return t.isAttached(e)
}

// Len returns the number of attached nodes.
func (t *Tree) Len() int {
	return t.count
}

// InsertRoot registers the entity as a top-level node with no parent.
// Returns ErrAlreadyAttached if it is already in the tree.
func (t *Tree) InsertRoot(e Entity) error {
	index := int(e.Index())
	if t.node(index).attached {
		return fmt.Errorf("%w: %v", ErrAlreadyAttached, e)
	}

	t.grow(index)
	t.nodes[index] = treeNode{self: e, attached: true}
	t.count++
	return nil
}

// InsertChild appends the child to the end of the parent's sibling chain,
// preserving insertion order. Returns ErrNotFound if the parent is not
// attached, ErrAlreadyAttached if the child already is.
func (t *Tree) InsertChild(parent, child Entity) error {
	if !t.isAttached(parent) {
		return fmt.Errorf("%w: parent %v", ErrNotFound, parent)
	}
	index := int(child.Index())
	if t.node(index).attached {
		return fmt.Errorf("%w: %v", ErrAlreadyAttached, child)
	}

	t.grow(index)
	t.nodes[index] = treeNode{self: child, attached: true}
	t.count++
	t.linkTail(parent, child)
	return nil
}

// linkTail attaches child under parent at the end of the sibling chain. The
// child must already be attached and link-free.
func (t *Tree) linkTail(parent, child Entity) {
	childIdx := int(child.Index())
	t.nodes[childIdx].parent = someLink(parent)

	parentIdx := int(parent.Index())
	first := t.nodes[parentIdx].firstChild
	if !first.ok {
		t.nodes[parentIdx].firstChild = someLink(child)
		return
	}

	last := first.entity
	for steps := 0; ; steps++ {
		if steps > len(t.nodes) {
			panic("scene: sibling chain cycle detected")
		}
		next := t.nodes[int(last.Index())].nextSibling
		if !next.ok {
			break
		}
		last = next.entity
	}

	t.nodes[int(last.Index())].nextSibling = someLink(child)
	t.nodes[childIdx].prevSibling = someLink(last)
}

// unlink removes the entity from its parent's sibling chain, keeping its own
// children in place.
func (t *Tree) unlink(e Entity) {
	index := int(e.Index())
	n := t.nodes[index]

	if n.prevSibling.ok {
		t.nodes[int(n.prevSibling.entity.Index())].nextSibling = n.nextSibling
	} else if n.parent.ok {
		t.nodes[int(n.parent.entity.Index())].firstChild = n.nextSibling
	}
	if n.nextSibling.ok {
		t.nodes[int(n.nextSibling.entity.Index())].prevSibling = n.prevSibling
	}

	t.nodes[index].parent = link{}
	t.nodes[index].prevSibling = link{}
	t.nodes[index].nextSibling = link{}
}

// Reparent unlinks the entity from its current sibling chain and appends it
// at the tail of the new parent's children. Returns ErrCycle, with all links
// untouched, when the new parent is the entity itself or one of its
// descendants; the check walks up from the new parent to the root.
func (t *Tree) Reparent(e, newParent Entity) error {
	if !t.isAttached(e) {
		return fmt.Errorf("%w: %v", ErrNotFound, e)
	}
	if !t.isAttached(newParent) {
		return fmt.Errorf("%w: parent %v", ErrNotFound, newParent)
	}
	if newParent == e || t.IsDescendantOf(newParent, e) {
		return fmt.Errorf("%w: %v under %v", ErrCycle, e, newParent)
	}

	t.unlink(e)
	t.linkTail(newParent, e)
	return nil
}

// RemoveSubtree detaches the entity from its parent's sibling chain and
// clears the links of the entity and every descendant. It touches tree state
// only; freeing the entities and clearing their store entries belongs to the
// caller (see Graph.RemoveSubtree).
func (t *Tree) RemoveSubtree(e Entity) error {
	if !t.isAttached(e) {
		return fmt.Errorf("%w: %v", ErrNotFound, e)
	}

	removed := []Entity{e}
	for d := range t.Descendants(e) {
		removed = append(removed, d)
	}

	t.unlink(e)
	for _, r := range removed {
		t.nodes[int(r.Index())] = treeNode{}
		t.count--
	}
	return nil
}

// Parent returns the entity's parent, reporting false for roots and
// unattached entities.
func (t *Tree) Parent(e Entity) (Entity, bool) {
	l := t.node(int(e.Index())).parent
	return l.entity, l.ok
}

// FirstChild returns the first child in insertion order.
func (t *Tree) FirstChild(e Entity) (Entity, bool) {
	l := t.node(int(e.Index())).firstChild
	return l.entity, l.ok
}

// NextSibling returns the sibling inserted after the entity.
func (t *Tree) NextSibling(e Entity) (Entity, bool) {
	l := t.node(int(e.Index())).nextSibling
	return l.entity, l.ok
}

// PrevSibling returns the sibling inserted before the entity.
func (t *Tree) PrevSibling(e Entity) (Entity, bool) {
	l := t.node(int(e.Index())).prevSibling
	return l.entity, l.ok
}

// LastChild walks the sibling chain to the last child in insertion order.
func (t *Tree) LastChild(e Entity) (Entity, bool) {
	var last Entity
	found := false
	for c := range t.Children(e) {
		last = c
		found = true
	}
	return last, found
}

// Root returns the topmost ancestor of the entity, which is the entity
// itself when it is a root. Reports false for unattached entities.
func (t *Tree) Root(e Entity) (Entity, bool) {
	if !t.isAttached(e) {
		return 0, false
	}
	current := e
	for {
		parent, ok := t.Parent(current)
		if !ok {
			return current, true
		}
		current = parent
	}
}

// Depth returns the number of ancestors between the entity and its root.
func (t *Tree) Depth(e Entity) int {
	depth := 0
	current := e
	for {
		parent, ok := t.Parent(current)
		if !ok {
			return depth
		}
		current = parent
		depth++
	}
}

// IsDescendantOf reports whether ancestor lies on the entity's parent chain.
func (t *Tree) IsDescendantOf(e, ancestor Entity) bool {
	current := e
	for {
		parent, ok := t.Parent(current)
		if !ok {
			return false
		}
		if parent == ancestor {
			return true
		}
		current = parent
	}
}

// Roots iterates all attached parentless nodes in ascending index order.
func (t *Tree) Roots() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for i := range t.nodes {
			if !t.nodes[i].attached || t.nodes[i].parent.ok {
				continue
			}
			if !yield(t.nodes[i].self) {
				return
			}
		}
	}
}

// Children iterates the entity's children in insertion order. The sequence
// is lazy and restartable. A malformed chain that revisits a slot is an
// internal invariant violation and panics.
func (t *Tree) Children(e Entity) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		current := t.node(int(e.Index())).firstChild
		steps := 0
		for current.ok {
			if steps > len(t.nodes) {
				panic("scene: sibling chain cycle detected")
			}
			if !yield(current.entity) {
				return
			}
			current = t.node(int(current.entity.Index())).nextSibling
			steps++
		}
	}
}

// ChildrenReversed iterates the entity's children from last to first
// inserted. Hit-testing uses this order so the topmost-drawn sibling wins.
func (t *Tree) ChildrenReversed(e Entity) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		var children []Entity
		for c := range t.Children(e) {
			children = append(children, c)
		}
		for i := len(children) - 1; i >= 0; i-- {
			if !yield(children[i]) {
				return
			}
		}
	}
}

// Descendants iterates every node below the entity depth-first, pre-order,
// children in sibling order — the traversal order layout depends on. The
// entity itself is not yielded.
func (t *Tree) Descendants(e Entity) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		var stack []Entity
		pushChildren := func(parent Entity) {
			mark := len(stack)
			for c := range t.Children(parent) {
				stack = append(stack, c)
			}
			for i, j := mark, len(stack)-1; i < j; i, j = i+1, j-1 {
				stack[i], stack[j] = stack[j], stack[i]
			}
		}

		pushChildren(e)
		for len(stack) > 0 {
			next := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(next) {
				return
			}
			pushChildren(next)
		}
	}
}

// Ancestors iterates the entity's parent chain upward to the root.
func (t *Tree) Ancestors(e Entity) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		current := e
		for {
			parent, ok := t.Parent(current)
			if !ok {
				return
			}
			if !yield(parent) {
				return
			}
			current = parent
		}
	}
}
