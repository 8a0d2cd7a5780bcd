package ecs

import "github.com/skelitheprogrammer/Arch/internal/assert"

// abstractColumn is the type-erased view of a column[T] that a chunk can hold alongside columns
// of other component kinds (§4.3). The dynamic path (command buffer playback, introspection)
// goes through this interface; the generic path (Get[T]/Set[T]) casts straight to column[T].
type abstractColumn interface {
	// len returns the number of live slots currently occupied.
	len() int
	// name returns the component kind's display name.
	name() string
	// pushZero reserves the next row with a zero value and returns its row index, keeping the
	// column's occupied count in lockstep with the owning chunk's entity count (§4.3). The
	// chunk calls this once per column every time it accepts a new entity, so that a freshly
	// inserted row is already "counted" before copyFrom/setAbstract overwrite its value.
	pushZero() int
	// swapRemove drops the component at row, moving the last occupied row into its place, and
	// returns the new occupant's original row index (or -1 if row was already the last one).
	swapRemove(row int) int
	// copyFrom copies the component at srcRow of src into row of this column. src must be the
	// same component kind.
	copyFrom(src abstractColumn, srcRow, row int)
	// getAbstract returns the component at row as an any, for the dynamic/reflection-lite path.
	getAbstract(row int) any
	// setAbstract overwrites the component at row with v, which must be the concrete T.
	setAbstract(row int, v any)
	// clear resets the column to zero occupied rows without releasing its backing array.
	clear()
}

// column is the fixed-capacity, column-major store for one component kind within one chunk
// (§4.3). Unlike a growable slice, capacity is fixed at construction to the chunk's
// entities-per-chunk count: rows are never appended past it, and the chunk itself refuses a push
// once every column (and the chunk's entity list) is full.
type column[T Component] struct {
	compName string
	data     []T
	count    int
}

func newColumn[T Component](capacity int) *column[T] {
	var zero T
	return &column[T]{
		compName: zero.Name(),
		data:     make([]T, capacity),
	}
}

func (c *column[T]) len() int    { return c.count }
func (c *column[T]) name() string { return c.compName }

// push appends v as a new occupied row and returns its row index. Callers (the chunk) must
// ensure capacity was checked first; push itself asserts rather than growing.
func (c *column[T]) push(v T) int {
	assert.That(c.count < len(c.data), "column %s: push past capacity %d", c.compName, len(c.data))
	row := c.count
	c.data[row] = v
	c.count++
	return row
}

// pushZero is the abstractColumn-facing counterpart to push, used by chunk.push to keep this
// column's occupied count synced with the chunk's even before a typed value is written into the
// row (§4.3).
func (c *column[T]) pushZero() int {
	var zero T
	return c.push(zero)
}

func (c *column[T]) get(row int) T {
	return c.data[row]
}

func (c *column[T]) getPtr(row int) *T {
	return &c.data[row]
}

func (c *column[T]) set(row int, v T) {
	c.data[row] = v
}

// swapRemove implements the canonical swap-remove (§5, §6): the last occupied row is moved into
// row's slot and the occupied count shrinks by one. Returns the row the last element used to
// occupy, so the caller (the chunk) can fix up its own entity-id slice the same way; -1 when row
// was already last (nothing moved).
func (c *column[T]) swapRemove(row int) int {
	last := c.count - 1
	assert.That(row >= 0 && row <= last, "column %s: swapRemove row %d out of range [0,%d]", c.compName, row, last)

	var moved int
	if row == last {
		moved = -1
	} else {
		c.data[row] = c.data[last]
		moved = last
	}

	var zero T
	c.data[last] = zero // avoid keeping a stale reference alive for pointer-containing T
	c.count--
	return moved
}

func (c *column[T]) copyFrom(src abstractColumn, srcRow, row int) {
	typed, ok := src.(*column[T])
	assert.That(ok, "column %s: copyFrom type mismatch", c.compName)
	c.data[row] = typed.data[srcRow]
}

func (c *column[T]) getAbstract(row int) any {
	return c.data[row]
}

func (c *column[T]) setAbstract(row int, v any) {
	typed, ok := v.(T)
	assert.That(ok, "column %s: setAbstract type mismatch", c.compName)
	c.data[row] = typed
}

func (c *column[T]) clear() {
	var zero T
	for i := 0; i < c.count; i++ {
		c.data[i] = zero
	}
	c.count = 0
}

// columnFactory builds a fresh, empty abstractColumn of fixed capacity for one component kind.
// Stored on ComponentInfo so the dynamic path can create columns without knowing T (§4.3).
type columnFactory func(capacity int) abstractColumn

func newColumnFactory[T Component]() columnFactory {
	return func(capacity int) abstractColumn {
		return newColumn[T](capacity)
	}
}
