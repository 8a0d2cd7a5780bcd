package ecs

import "github.com/skelitheprogrammer/Arch/internal/assert"

// defaultChunkBytes is the target size of a chunk's column data, used to size
// entitiesPerChunk for an archetype when the caller doesn't override it (§4.3).
const defaultChunkBytes = 16 * 1024

// minEntitiesPerChunk is the floor applied to entitiesPerChunk regardless of how wide an
// archetype's row is, so a handful of huge components can't collapse a chunk to size 1.
const minEntitiesPerChunk = 8

// entitiesPerChunk picks how many rows a chunk for an archetype with the given per-entity byte
// width should hold: roughly defaultChunkBytes worth, never below minEntitiesPerChunk.
func entitiesPerChunk(bytesPerEntity int) int {
	return entitiesPerChunkWithBudget(bytesPerEntity, defaultChunkBytes)
}

// entitiesPerChunkWithBudget is entitiesPerChunk against a caller-chosen byte budget, used by a
// World constructed with WithChunkByteBudget (§10.3) instead of the package default.
func entitiesPerChunkWithBudget(bytesPerEntity, budget int) int {
	if bytesPerEntity <= 0 {
		return budget
	}
	n := budget / bytesPerEntity
	if n < minEntitiesPerChunk {
		return minEntitiesPerChunk
	}
	return n
}

// chunk is a fixed-capacity, column-major block of entity rows (§4.3). Every chunk belonging to
// the same archetype shares the same capacity and the same ordered set of component kinds; a
// row's position in chunk.entities always matches its position in every column.
type chunk struct {
	entities []Entity
	columns  []abstractColumn // parallel to the owning archetype's componentIDs slice
	count    int
	capacity int
}

func newChunk(capacity int, factories []columnFactory) *chunk {
	columns := make([]abstractColumn, len(factories))
	for i, f := range factories {
		columns[i] = f(capacity)
	}
	return &chunk{
		entities: make([]Entity, capacity),
		columns:  columns,
		capacity: capacity,
	}
}

func (c *chunk) full() bool  { return c.count >= c.capacity }
func (c *chunk) empty() bool { return c.count == 0 }

// push reserves the next row for e. Callers must check full() first; push asserts rather than
// silently refusing, since the archetype is responsible for chunk selection (§5). Every column
// reserves the same row with a zero value in lockstep with the entity slice, so the row is
// already "occupied" from each column's own point of view before copyRow/setTyped overwrite it —
// without this, a column's occupied count would stay at zero forever and swapRemove below would
// operate on rows the column never counted as live.
func (c *chunk) push(e Entity) int {
	assert.That(!c.full(), "chunk: push past capacity %d", c.capacity)
	row := c.count
	c.entities[row] = e
	for _, col := range c.columns {
		col.pushZero()
	}
	c.count++
	return row
}

// swapRemove removes row by moving the chunk's last occupied row into its place across the
// entity slice and every column (§5, §6). It returns the Entity that now occupies row (the one
// that was moved), or Nil if row was already the last occupied row.
func (c *chunk) swapRemove(row int) Entity {
	last := c.count - 1
	assert.That(row >= 0 && row <= last, "chunk: swapRemove row %d out of range [0,%d]", row, last)

	moved := Nil
	if row != last {
		c.entities[row] = c.entities[last]
		moved = c.entities[row]
	}
	for _, col := range c.columns {
		col.swapRemove(row)
	}
	c.count--
	return moved
}

// column returns the abstractColumn at componentIndex, the position assigned to that component
// kind by the owning archetype.
func (c *chunk) column(componentIndex int) abstractColumn {
	return c.columns[componentIndex]
}

func (c *chunk) clear() {
	for _, col := range c.columns {
		col.clear()
	}
	c.count = 0
}
