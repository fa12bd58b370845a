package scene_test

import (
	"iter"
	"testing"

	"github.com/plus3/retained/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(seq iter.Seq[scene.Entity]) []scene.Entity {
	var out []scene.Entity
	for e := range seq {
		out = append(out, e)
	}
	return out
}

func TestTreeInsertRoot(t *testing.T) {
	alloc := scene.NewAllocator()
	tree := scene.NewTree()

	a := alloc.Allocate()
	require.NoError(t, tree.InsertRoot(a))

	assert.True(t, tree.Contains(a))
	assert.Equal(t, 1, tree.Len())

	_, ok := tree.Parent(a)
	assert.False(t, ok, "roots have no parent")

	err := tree.InsertRoot(a)
	assert.ErrorIs(t, err, scene.ErrAlreadyAttached)
}

func TestTreeChildrenInsertionOrder(t *testing.T) {
	alloc := scene.NewAllocator()
	tree := scene.NewTree()

	parent := alloc.Allocate()
	require.NoError(t, tree.InsertRoot(parent))

	c1 := alloc.Allocate()
	c2 := alloc.Allocate()
	c3 := alloc.Allocate()
	require.NoError(t, tree.InsertChild(parent, c1))
	require.NoError(t, tree.InsertChild(parent, c2))
	require.NoError(t, tree.InsertChild(parent, c3))

	assert.Equal(t, []scene.Entity{c1, c2, c3}, collect(tree.Children(parent)))
	assert.Equal(t, []scene.Entity{c3, c2, c1}, collect(tree.ChildrenReversed(parent)))

	first, ok := tree.FirstChild(parent)
	require.True(t, ok)
	assert.Equal(t, c1, first)

	last, ok := tree.LastChild(parent)
	require.True(t, ok)
	assert.Equal(t, c3, last)

	next, ok := tree.NextSibling(c1)
	require.True(t, ok)
	assert.Equal(t, c2, next)

	prev, ok := tree.PrevSibling(c2)
	require.True(t, ok)
	assert.Equal(t, c1, prev)
}

func TestTreeInsertChildErrors(t *testing.T) {
	alloc := scene.NewAllocator()
	tree := scene.NewTree()

	parent := alloc.Allocate()
	child := alloc.Allocate()

	err := tree.InsertChild(parent, child)
	assert.ErrorIs(t, err, scene.ErrNotFound, "parent not attached")

	require.NoError(t, tree.InsertRoot(parent))
	require.NoError(t, tree.InsertChild(parent, child))

	err = tree.InsertChild(parent, child)
	assert.ErrorIs(t, err, scene.ErrAlreadyAttached)
}

func TestTreeDescendantsPreOrder(t *testing.T) {
	alloc := scene.NewAllocator()
	tree := scene.NewTree()

	// root
	// ├── a
	// │   ├── a1
	// │   └── a2
	// └── b
	//     └── b1
	root := alloc.Allocate()
	a := alloc.Allocate()
	a1 := alloc.Allocate()
	a2 := alloc.Allocate()
	b := alloc.Allocate()
	b1 := alloc.Allocate()

	require.NoError(t, tree.InsertRoot(root))
	require.NoError(t, tree.InsertChild(root, a))
	require.NoError(t, tree.InsertChild(root, b))
	require.NoError(t, tree.InsertChild(a, a1))
	require.NoError(t, tree.InsertChild(a, a2))
	require.NoError(t, tree.InsertChild(b, b1))

	assert.Equal(t, []scene.Entity{a, a1, a2, b, b1}, collect(tree.Descendants(root)))
	assert.Equal(t, []scene.Entity{a1, a2}, collect(tree.Descendants(a)))
	assert.Empty(t, collect(tree.Descendants(b1)))
}

func TestTreeAncestorsAndDepth(t *testing.T) {
	alloc := scene.NewAllocator()
	tree := scene.NewTree()

	root := alloc.Allocate()
	mid := alloc.Allocate()
	leaf := alloc.Allocate()

	require.NoError(t, tree.InsertRoot(root))
	require.NoError(t, tree.InsertChild(root, mid))
	require.NoError(t, tree.InsertChild(mid, leaf))

	assert.Equal(t, []scene.Entity{mid, root}, collect(tree.Ancestors(leaf)))
	assert.Equal(t, 2, tree.Depth(leaf))
	assert.Equal(t, 0, tree.Depth(root))

	top, ok := tree.Root(leaf)
	require.True(t, ok)
	assert.Equal(t, root, top)

	assert.True(t, tree.IsDescendantOf(leaf, root))
	assert.True(t, tree.IsDescendantOf(leaf, mid))
	assert.False(t, tree.IsDescendantOf(root, leaf))
	assert.False(t, tree.IsDescendantOf(root, root))
}

func TestTreeRoots(t *testing.T) {
	alloc := scene.NewAllocator()
	tree := scene.NewTree()

	r1 := alloc.Allocate()
	r2 := alloc.Allocate()
	child := alloc.Allocate()

	require.NoError(t, tree.InsertRoot(r1))
	require.NoError(t, tree.InsertRoot(r2))
	require.NoError(t, tree.InsertChild(r1, child))

	assert.Equal(t, []scene.Entity{r1, r2}, collect(tree.Roots()))
}

func TestTreeReparent(t *testing.T) {
	alloc := scene.NewAllocator()
	tree := scene.NewTree()

	root := alloc.Allocate()
	a := alloc.Allocate()
	b := alloc.Allocate()
	c := alloc.Allocate()

	require.NoError(t, tree.InsertRoot(root))
	require.NoError(t, tree.InsertChild(root, a))
	require.NoError(t, tree.InsertChild(root, b))
	require.NoError(t, tree.InsertChild(a, c))

	// Move c from a to b; it lands at b's tail.
	require.NoError(t, tree.Reparent(c, b))

	assert.Equal(t, []scene.Entity{c}, collect(tree.Children(b)))
	assert.Empty(t, collect(tree.Children(a)))

	p, ok := tree.Parent(c)
	require.True(t, ok)
	assert.Equal(t, b, p)

	// Middle-of-chain unlink keeps the sibling chain intact.
	require.NoError(t, tree.Reparent(b, a))
	assert.Equal(t, []scene.Entity{a}, collect(tree.Children(root)))
}

func TestTreeReparentCycleRejected(t *testing.T) {
	alloc := scene.NewAllocator()
	tree := scene.NewTree()

	root := alloc.Allocate()
	mid := alloc.Allocate()
	leaf := alloc.Allocate()

	require.NoError(t, tree.InsertRoot(root))
	require.NoError(t, tree.InsertChild(root, mid))
	require.NoError(t, tree.InsertChild(mid, leaf))

	err := tree.Reparent(root, leaf)
	assert.ErrorIs(t, err, scene.ErrCycle)

	err = tree.Reparent(mid, mid)
	assert.ErrorIs(t, err, scene.ErrCycle, "self-parenting is the smallest cycle")

	// A failed reparent leaves every link untouched.
	assert.Equal(t, []scene.Entity{mid}, collect(tree.Children(root)))
	assert.Equal(t, []scene.Entity{leaf}, collect(tree.Children(mid)))
	p, ok := tree.Parent(mid)
	require.True(t, ok)
	assert.Equal(t, root, p)
}

func TestTreeRemoveSubtree(t *testing.T) {
	alloc := scene.NewAllocator()
	tree := scene.NewTree()

	root := alloc.Allocate()
	a := alloc.Allocate()
	a1 := alloc.Allocate()
	b := alloc.Allocate()

	require.NoError(t, tree.InsertRoot(root))
	require.NoError(t, tree.InsertChild(root, a))
	require.NoError(t, tree.InsertChild(root, b))
	require.NoError(t, tree.InsertChild(a, a1))

	require.NoError(t, tree.RemoveSubtree(a))

	assert.False(t, tree.Contains(a))
	assert.False(t, tree.Contains(a1))
	assert.True(t, tree.Contains(b))
	assert.Equal(t, []scene.Entity{b}, collect(tree.Children(root)))
	assert.Equal(t, 2, tree.Len())

	err := tree.RemoveSubtree(a)
	assert.ErrorIs(t, err, scene.ErrNotFound)
}

func TestTreeSiblingOrderSurvivesRemoval(t *testing.T) {
	alloc := scene.NewAllocator()
	tree := scene.NewTree()

	parent := alloc.Allocate()
	require.NoError(t, tree.InsertRoot(parent))

	c1 := alloc.Allocate()
	c2 := alloc.Allocate()
	c3 := alloc.Allocate()
	require.NoError(t, tree.InsertChild(parent, c1))
	require.NoError(t, tree.InsertChild(parent, c2))
	require.NoError(t, tree.InsertChild(parent, c3))

	require.NoError(t, tree.RemoveSubtree(c2))
	assert.Equal(t, []scene.Entity{c1, c3}, collect(tree.Children(parent)))

	c4 := alloc.Allocate()
	require.NoError(t, tree.InsertChild(parent, c4))
	assert.Equal(t, []scene.Entity{c1, c3, c4}, collect(tree.Children(parent)))
}
