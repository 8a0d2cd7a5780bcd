package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skelitheprogrammer/Arch/internal/testutils"
)

func TestComponentRegistry_RegisterIsIdempotent(t *testing.T) {
	t.Parallel()

	r := newComponentRegistry()
	id1, err := register[testutils.Position](r)
	require.NoError(t, err)
	id2, err := register[testutils.Position](r)
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
	assert.Equal(t, 1, r.count())
}

func TestComponentRegistry_DistinctTypesGetDistinctIDs(t *testing.T) {
	t.Parallel()

	r := newComponentRegistry()
	posID, err := register[testutils.Position](r)
	require.NoError(t, err)
	velID, err := register[testutils.Velocity](r)
	require.NoError(t, err)

	assert.NotEqual(t, posID, velID)

	info := r.infoOf(posID)
	assert.Equal(t, "Position", info.Name)
}

func TestComponentRegistry_IdOfUnknownNameMisses(t *testing.T) {
	t.Parallel()

	r := newComponentRegistry()
	_, ok := r.idOf("DoesNotExist")
	assert.False(t, ok)
}

func TestComponentRegistry_SnapshotOrderedByID(t *testing.T) {
	t.Parallel()

	r := newComponentRegistry()
	_, _ = register[testutils.Position](r)
	_, _ = register[testutils.Velocity](r)
	_, _ = register[testutils.Health](r)

	snap := r.snapshot()
	require.Len(t, snap, 3)
	for i, info := range snap {
		assert.Equal(t, ComponentID(i), info.ID)
	}
}

func TestComponentRegistry_ConcurrentRegisterSameType(t *testing.T) {
	t.Parallel()

	r := newComponentRegistry()
	const goroutines = 16
	ids := make(chan ComponentID, goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			id, err := register[testutils.Position](r)
			require.NoError(t, err)
			ids <- id
		}()
	}

	first := <-ids
	for i := 1; i < goroutines; i++ {
		assert.Equal(t, first, <-ids)
	}
	assert.Equal(t, 1, r.count())
}
