package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skelitheprogrammer/Arch/internal/testutils"
)

func TestEntitiesPerChunk(t *testing.T) {
	t.Parallel()

	assert.Equal(t, defaultChunkBytes, entitiesPerChunk(0))
	assert.Equal(t, minEntitiesPerChunk, entitiesPerChunk(defaultChunkBytes*10))
	assert.Equal(t, defaultChunkBytes/16, entitiesPerChunk(16))
}

func makeEntity(id EntityID) Entity { return Entity{id: id} }

func TestChunk_PushUntilFull(t *testing.T) {
	t.Parallel()

	factories := []columnFactory{newColumnFactory[testutils.Position]()}
	c := newChunk(2, factories)

	assert.False(t, c.full())
	c.push(makeEntity(1))
	assert.False(t, c.full())
	c.push(makeEntity(2))
	assert.True(t, c.full())
}

func TestChunk_SwapRemoveFixesUpEntitiesAndColumns(t *testing.T) {
	t.Parallel()

	factories := []columnFactory{newColumnFactory[testutils.Position]()}
	c := newChunk(4, factories)

	row0 := c.push(makeEntity(10))
	row1 := c.push(makeEntity(11))
	row2 := c.push(makeEntity(12))
	c.column(0).setAbstract(row0, testutils.Position{X: 0})
	c.column(0).setAbstract(row1, testutils.Position{X: 1})
	c.column(0).setAbstract(row2, testutils.Position{X: 2})

	moved := c.swapRemove(0)
	require.Equal(t, Entity{id: 12}, moved)
	assert.Equal(t, 2, c.count)
	assert.Equal(t, Entity{id: 12}, c.entities[0])
	assert.Equal(t, testutils.Position{X: 2}, c.column(0).getAbstract(0))
}

func TestChunk_ClearKeepsCapacity(t *testing.T) {
	t.Parallel()

	factories := []columnFactory{newColumnFactory[testutils.Position]()}
	c := newChunk(4, factories)
	c.push(makeEntity(1))
	c.push(makeEntity(2))

	c.clear()
	assert.Equal(t, 0, c.count)
	assert.True(t, c.empty())
	assert.Equal(t, 4, c.capacity)
}
