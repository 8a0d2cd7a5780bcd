package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skelitheprogrammer/Arch/internal/testutils"
)

func TestCommandBuffer_SetPlaybackAddsComponent(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	posID := RegisterComponent[testutils.Position](w)
	e := w.Create()

	cb := NewCommandBuffer(w)
	cb.SetComponent(e, posID, testutils.Position{X: 1, Y: 2})
	require.Equal(t, 1, cb.Len())
	require.NoError(t, cb.Playback())
	assert.Equal(t, 0, cb.Len())

	got, err := Get[testutils.Position](w, e)
	require.NoError(t, err)
	assert.Equal(t, testutils.Position{X: 1, Y: 2}, got)
}

func TestCommandBuffer_SetPlaybackUpdatesExisting(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	posID := RegisterComponent[testutils.Position](w)
	e := w.Create()
	require.NoError(t, Add(w, e, testutils.Position{X: 1}))

	cb := NewCommandBuffer(w)
	cb.SetComponent(e, posID, testutils.Position{X: 99})
	require.NoError(t, cb.Playback())

	got, err := Get[testutils.Position](w, e)
	require.NoError(t, err)
	assert.Equal(t, float64(99), got.X)
}

func TestCommandBuffer_RemoveAndDestroy(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	posID := RegisterComponent[testutils.Position](w)
	e1 := w.Create()
	e2 := w.Create()
	require.NoError(t, Add(w, e1, testutils.Position{}))
	require.NoError(t, Add(w, e2, testutils.Position{}))

	cb := NewCommandBuffer(w)
	cb.RemoveComponent(e1, posID)
	cb.DestroyEntity(e2)
	require.NoError(t, cb.Playback())

	assert.False(t, Has[testutils.Position](w, e1))
	assert.True(t, w.Alive(e1))
	assert.False(t, w.Alive(e2))
}

func TestCommandBuffer_CollectsErrorsWithoutAbortingBatch(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	posID := RegisterComponent[testutils.Position](w)
	e1 := w.Create()
	e2 := w.Create()
	require.NoError(t, w.Destroy(e1)) // now dead

	cb := NewCommandBuffer(w)
	cb.SetComponent(e1, posID, testutils.Position{}) // will fail: e1 is dead
	cb.SetComponent(e2, posID, testutils.Position{X: 5})
	err := cb.Playback()

	require.Error(t, err)
	got, getErr := Get[testutils.Position](w, e2)
	require.NoError(t, getErr)
	assert.Equal(t, float64(5), got.X)
}

func TestCommandBuffer_DeferredOpsDuringQueryIteration(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	posID := RegisterComponent[testutils.Position](w)
	velID := RegisterComponent[testutils.Velocity](w)

	entities := make([]Entity, 5)
	for i := range entities {
		e := w.Create()
		require.NoError(t, Add(w, e, testutils.Position{}))
		entities[i] = e
	}

	cb := NewCommandBuffer(w)
	q := w.Query(NewQuery().All(posID))
	q.EachEntity(func(e Entity) {
		cb.SetComponent(e, velID, testutils.Velocity{X: 1})
	})
	require.NoError(t, cb.Playback())

	for _, e := range entities {
		assert.True(t, Has[testutils.Velocity](w, e))
	}
}
