package scene_test

import (
	"errors"
	"testing"

	"github.com/plus3/retained/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateSequentialIndices(t *testing.T) {
	alloc := scene.NewAllocator()

	a := alloc.Allocate()
	b := alloc.Allocate()
	c := alloc.Allocate()

	assert.Equal(t, uint32(0), a.Index())
	assert.Equal(t, uint32(1), b.Index())
	assert.Equal(t, uint32(2), c.Index())

	assert.Equal(t, uint32(0), a.Generation())
	assert.Equal(t, uint32(0), b.Generation())
	assert.Equal(t, uint32(0), c.Generation())

	assert.Equal(t, 3, alloc.Len())
}

func TestHandleValidLifetime(t *testing.T) {
	alloc := scene.NewAllocator()

	e := alloc.Allocate()
	assert.True(t, alloc.IsValid(e))

	require.NoError(t, alloc.Free(e))
	assert.False(t, alloc.IsValid(e))

	// Reusing the index must not revive the old handle.
	reused := alloc.Allocate()
	assert.Equal(t, e.Index(), reused.Index())
	assert.True(t, alloc.IsValid(reused))
	assert.False(t, alloc.IsValid(e))
}

func TestIndexReuseBumpsGeneration(t *testing.T) {
	alloc := scene.NewAllocator()

	alloc.Allocate()
	b := alloc.Allocate()
	alloc.Allocate()

	require.NoError(t, alloc.Free(b))

	reused := alloc.Allocate()
	assert.Equal(t, b.Index(), reused.Index())
	assert.Greater(t, reused.Generation(), b.Generation())
	assert.False(t, alloc.IsValid(b))
	assert.True(t, alloc.IsValid(reused))
}

func TestFreeStaleHandle(t *testing.T) {
	alloc := scene.NewAllocator()

	e := alloc.Allocate()
	require.NoError(t, alloc.Free(e))

	err := alloc.Free(e)
	assert.ErrorIs(t, err, scene.ErrStale)

	// The failed free must not mutate anything: the slot stays reusable
	// exactly once.
	reused := alloc.Allocate()
	assert.Equal(t, e.Index(), reused.Index())
	assert.Equal(t, e.Generation()+1, reused.Generation())
}

func TestFreeUnknownIndex(t *testing.T) {
	alloc := scene.NewAllocator()
	alloc.Allocate()

	err := alloc.Free(scene.NewEntity(99, 0))
	assert.True(t, errors.Is(err, scene.ErrNotFound))
}

func TestFreeListIsLIFO(t *testing.T) {
	alloc := scene.NewAllocator()

	a := alloc.Allocate()
	b := alloc.Allocate()

	require.NoError(t, alloc.Free(a))
	require.NoError(t, alloc.Free(b))

	first := alloc.Allocate()
	second := alloc.Allocate()
	assert.Equal(t, b.Index(), first.Index())
	assert.Equal(t, a.Index(), second.Index())
}

func TestLiveIteration(t *testing.T) {
	alloc := scene.NewAllocator()

	a := alloc.Allocate()
	b := alloc.Allocate()
	c := alloc.Allocate()
	require.NoError(t, alloc.Free(b))

	var live []scene.Entity
	for e := range alloc.Live() {
		live = append(live, e)
	}
	assert.Equal(t, []scene.Entity{a, c}, live)
}

func TestAllocatorReset(t *testing.T) {
	alloc := scene.NewAllocator()

	e := alloc.Allocate()
	require.NoError(t, alloc.Free(e))
	alloc.Allocate()

	alloc.Reset()
	assert.Equal(t, 0, alloc.Len())

	fresh := alloc.Allocate()
	assert.Equal(t, uint32(0), fresh.Index())
	assert.Equal(t, uint32(0), fresh.Generation())
}
