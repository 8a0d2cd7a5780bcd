package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skelitheprogrammer/Arch/internal/testutils"
)

func TestColumn_PushGetSet(t *testing.T) {
	t.Parallel()

	c := newColumn[testutils.Position](4)
	assert.Equal(t, "Position", c.name())

	row := c.push(testutils.Position{X: 1, Y: 2})
	assert.Equal(t, 0, row)
	assert.Equal(t, 1, c.len())
	assert.Equal(t, testutils.Position{X: 1, Y: 2}, c.get(row))

	c.set(row, testutils.Position{X: 9, Y: 9})
	assert.Equal(t, testutils.Position{X: 9, Y: 9}, c.get(row))
}

func TestColumn_SwapRemoveMiddleRow(t *testing.T) {
	t.Parallel()

	c := newColumn[testutils.Position](4)
	c.push(testutils.Position{X: 0})
	c.push(testutils.Position{X: 1})
	c.push(testutils.Position{X: 2})

	moved := c.swapRemove(0)
	assert.Equal(t, 2, moved) // row 2 (last) got moved into row 0's slot
	assert.Equal(t, 2, c.len())
	assert.Equal(t, testutils.Position{X: 2}, c.get(0))
	assert.Equal(t, testutils.Position{X: 1}, c.get(1))
}

func TestColumn_SwapRemoveLastRow(t *testing.T) {
	t.Parallel()

	c := newColumn[testutils.Position](4)
	c.push(testutils.Position{X: 0})
	c.push(testutils.Position{X: 1})

	moved := c.swapRemove(1)
	assert.Equal(t, -1, moved)
	assert.Equal(t, 1, c.len())
	assert.Equal(t, testutils.Position{X: 0}, c.get(0))
}

func TestColumn_AbstractPath(t *testing.T) {
	t.Parallel()

	var col abstractColumn = newColumn[testutils.Health](4)
	typed := col.(*column[testutils.Health])
	typed.push(testutils.Health{Value: 1})

	col.setAbstract(0, testutils.Health{Value: 5})
	assert.Equal(t, testutils.Health{Value: 5}, col.getAbstract(0))
	assert.Equal(t, 1, col.len())
}

func TestColumn_ClearResetsCountKeepsCapacity(t *testing.T) {
	t.Parallel()

	c := newColumn[testutils.Position](4)
	c.push(testutils.Position{X: 1})
	c.push(testutils.Position{X: 2})
	c.clear()

	assert.Equal(t, 0, c.len())
	assert.Equal(t, 4, len(c.data))
}

func TestColumn_CopyFromMatchingKind(t *testing.T) {
	t.Parallel()

	src := newColumn[testutils.Position](4)
	src.push(testutils.Position{X: 42, Y: 7})

	dst := newColumn[testutils.Position](4)
	dst.push(testutils.Position{})

	dst.copyFrom(src, 0, 0)
	assert.Equal(t, testutils.Position{X: 42, Y: 7}, dst.get(0))
}

func TestColumnFactory_BuildsFreshEmptyColumn(t *testing.T) {
	t.Parallel()

	factory := newColumnFactory[testutils.Velocity]()
	col := factory(8)

	require.Equal(t, "Velocity", col.name())
	assert.Equal(t, 0, col.len())
}
