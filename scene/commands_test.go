package scene_test

import (
	"testing"

	"github.com/plus3/retained/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordPass struct {
	fn func(frame *scene.Frame)
}

func (p *recordPass) Execute(frame *scene.Frame) {
	p.fn(frame)
}

func flushWith(t *testing.T, g *scene.Graph, fn func(frame *scene.Frame)) {
	t.Helper()
	pipeline := scene.NewPipeline(g)
	pipeline.Register(&recordPass{fn: fn})
	pipeline.Once(1.0 / 60.0)
}

func TestCommandsSpawnDeferred(t *testing.T) {
	g := scene.NewGraph()

	flushWith(t, g, func(frame *scene.Frame) {
		frame.Commands.Spawn(&scene.Shape{Kind: scene.ShapeCircle})
		frame.Commands.Spawn(&scene.Shape{Kind: scene.ShapeRect})

		// Nothing lands until the flush after the last pass.
		assert.Equal(t, 0, g.Len())
	})

	assert.Equal(t, 2, g.Len())

	var kinds []scene.ShapeKind
	for _, s := range scene.IterKind[scene.Shape](g.Visuals()) {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []scene.ShapeKind{scene.ShapeCircle, scene.ShapeRect}, kinds)
}

func TestCommandsSpawnChildUnderDeadParentSkipped(t *testing.T) {
	g := scene.NewGraph()
	parent := g.Spawn()

	flushWith(t, g, func(frame *scene.Frame) {
		frame.Commands.RemoveSubtree(parent)
		frame.Commands.SpawnChild(parent, &scene.Text{Content: "orphan"})
	})

	// Removals run first; the child spawn quietly evaporates with its parent.
	assert.Equal(t, 0, g.Len())
}

func TestCommandsRemoveStaleSkipped(t *testing.T) {
	g := scene.NewGraph()
	e := g.Spawn()
	require.NoError(t, g.RemoveSubtree(e))
	survivor := g.Spawn()

	flushWith(t, g, func(frame *scene.Frame) {
		// e's index was recycled for survivor; the stale handle must not
		// take the new tenant down with it.
		frame.Commands.RemoveSubtree(e)
	})

	assert.True(t, g.IsValid(survivor))
	assert.Equal(t, 1, g.Len())
}

func TestCommandsReparentDeferred(t *testing.T) {
	g := scene.NewGraph()
	root := g.Spawn()
	a, err := g.SpawnChild(root)
	require.NoError(t, err)
	b, err := g.SpawnChild(root)
	require.NoError(t, err)

	flushWith(t, g, func(frame *scene.Frame) {
		frame.Commands.Reparent(b, a)

		p, _ := frame.Graph.Tree().Parent(b)
		assert.Equal(t, root, p, "still in place while passes run")
	})

	p, ok := g.Tree().Parent(b)
	require.True(t, ok)
	assert.Equal(t, a, p)
}

func TestCommandsReparentOntoRemovedTargetSkipped(t *testing.T) {
	g := scene.NewGraph()
	root := g.Spawn()
	a, err := g.SpawnChild(root)
	require.NoError(t, err)
	b, err := g.SpawnChild(root)
	require.NoError(t, err)

	flushWith(t, g, func(frame *scene.Frame) {
		frame.Commands.RemoveSubtree(a)
		frame.Commands.Reparent(b, a)
	})

	// The reparent target died in the same flush; b stays where it was.
	p, ok := g.Tree().Parent(b)
	require.True(t, ok)
	assert.Equal(t, root, p)
}

func TestCommandsDeferRunsLast(t *testing.T) {
	g := scene.NewGraph()

	var lenAtDefer int
	flushWith(t, g, func(frame *scene.Frame) {
		frame.Commands.Spawn(&scene.Shape{})
		frame.Commands.Defer(func() {
			lenAtDefer = g.Len()
		})
	})

	assert.Equal(t, 1, lenAtDefer, "deferred functions see structural edits applied")
}

func TestCommandsBufferResetsBetweenFrames(t *testing.T) {
	g := scene.NewGraph()
	pipeline := scene.NewPipeline(g)

	spawned := false
	pipeline.Register(&recordPass{fn: func(frame *scene.Frame) {
		if !spawned {
			frame.Commands.Spawn(&scene.Shape{})
			spawned = true
		}
	}})

	pipeline.Once(0.016)
	pipeline.Once(0.016)

	assert.Equal(t, 1, g.Len(), "a command applies exactly once")
}
