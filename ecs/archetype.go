package ecs

import "github.com/skelitheprogrammer/Arch/internal/assert"

// archetype groups every entity that carries exactly the same set of component kinds (§5). Its
// signature is the authoritative identity; componentIDs/componentIndex let callers translate a
// ComponentID into the column slot used by every chunk this archetype owns.
type archetype struct {
	signature      BitSet
	componentIDs   []ComponentID
	componentIndex map[ComponentID]int
	factories      []columnFactory
	chunkCapacity  int
	chunks         []*chunk

	// addEdge/removeEdge cache the destination archetype for a one-component structural
	// transition already taken from this archetype, so repeated Add[T]/Remove[T] on the same
	// kind skip the graph's hash lookup entirely (§5, hot-path requirement).
	addEdge    map[ComponentID]*archetype
	removeEdge map[ComponentID]*archetype
}

func newArchetype(signature BitSet, componentIDs []ComponentID, infos []ComponentInfo, chunkBytes int) *archetype {
	assert.That(len(componentIDs) == len(infos), "archetype: componentIDs/infos length mismatch")

	factories := make([]columnFactory, len(infos))
	index := make(map[ComponentID]int, len(infos))
	bytesPerEntity := 0
	for i, info := range infos {
		factories[i] = info.factory
		index[info.ID] = i
		bytesPerEntity += int(info.elemSize)
	}

	return &archetype{
		signature:      signature,
		componentIDs:   componentIDs,
		componentIndex: index,
		factories:      factories,
		chunkCapacity:  entitiesPerChunkWithBudget(bytesPerEntity, chunkBytes),
		addEdge:        make(map[ComponentID]*archetype),
		removeEdge:     make(map[ComponentID]*archetype),
	}
}

// has reports whether this archetype carries component id.
func (a *archetype) has(id ComponentID) bool {
	_, ok := a.componentIndex[id]
	return ok
}

// count returns the total number of entities across every chunk.
func (a *archetype) count() int {
	n := 0
	for _, c := range a.chunks {
		n += c.count
	}
	return n
}

// lastChunkWithRoom returns the last chunk if it has a free row, and otherwise allocates and
// returns a new one (§5). Earlier chunks are not searched for room.
func (a *archetype) lastChunkWithRoom() *chunk {
	if len(a.chunks) > 0 {
		last := a.chunks[len(a.chunks)-1]
		if !last.full() {
			return last
		}
	}
	c := newChunk(a.chunkCapacity, a.factories)
	a.chunks = append(a.chunks, c)
	return c
}

// insert places e into this archetype and returns its location. The caller is responsible for
// populating component data afterward (via the returned location) or copying it in during a
// move (§5).
func (a *archetype) insert(e Entity) entityLocation {
	c := a.lastChunkWithRoom()
	chunkIdx := len(a.chunks) - 1
	row := c.push(e)
	return entityLocation{arch: a, chunk: chunkIdx, row: row}
}

// setEntity overwrites the Entity recorded at loc. Used once, right after insert, to patch in
// the real Entity value once the directory has assigned it (insert itself is called before the
// directory slot exists, since the slot's location is the insert's own result).
func (a *archetype) setEntity(loc entityLocation, e Entity) {
	a.chunks[loc.chunk].entities[loc.row] = e
}

// removeResult describes the directory fixup a caller must apply after archetype.remove.
type removeResult struct {
	// movedEntity is the Entity that now occupies loc.row within loc.chunk, because it used to
	// be the archetype's last valid row and got backfilled into the vacated slot. Nil if the
	// removed row already was the archetype's last valid row.
	movedEntity Entity
}

// remove evicts the row at loc (§4.4, §5, §6): the vacated slot is filled by the archetype's
// actual last valid row — the last row of the archetype's last chunk, not merely the last row of
// loc's own chunk — so a removal from a non-tail chunk never leaves a hole behind. This keeps
// every chunk but possibly the last full, the packing invariant trimExcess relies on (I2). The
// caller (world) must apply the returned fixup to the entity directory.
func (a *archetype) remove(loc entityLocation) removeResult {
	lastIdx := len(a.chunks) - 1
	last := a.chunks[lastIdx]

	if loc.chunk == lastIdx {
		moved := last.swapRemove(loc.row)
		if last.empty() {
			a.chunks = a.chunks[:lastIdx]
		}
		return removeResult{movedEntity: moved}
	}

	target := a.chunks[loc.chunk]
	lastRow := last.count - 1
	backfill := last.entities[lastRow]

	for i, col := range target.columns {
		col.copyFrom(last.columns[i], lastRow, loc.row)
	}
	target.entities[loc.row] = backfill

	last.swapRemove(lastRow) // lastRow is last's own last row: this just pops it
	if last.empty() {
		a.chunks = a.chunks[:lastIdx]
	}

	return removeResult{movedEntity: backfill}
}

// columnFor returns the abstractColumn for component id within chunkIdx. Panics (via assert) if
// this archetype doesn't carry id.
func (a *archetype) columnFor(chunkIdx int, id ComponentID) abstractColumn {
	idx, ok := a.componentIndex[id]
	assert.That(ok, "archetype: component %d not present", id)
	return a.chunks[chunkIdx].column(idx)
}

// copyRow copies every shared component from (src, srcLoc) into (a, dstLoc); components present
// in src but not in a are dropped, components present in a but not src are left zero-valued
// (§5, moveEntity semantics for Add/Remove[T]).
func copyRow(src *archetype, srcLoc entityLocation, dst *archetype, dstLoc entityLocation) {
	srcChunk := src.chunks[srcLoc.chunk]
	dstChunk := dst.chunks[dstLoc.chunk]

	for i, id := range src.componentIDs {
		dstIdx, ok := dst.componentIndex[id]
		if !ok {
			continue
		}
		dstChunk.columns[dstIdx].copyFrom(srcChunk.columns[i], srcLoc.row, dstLoc.row)
	}
}

// clearAll resets every chunk's occupied count to zero without releasing their backing arrays
// (§4.8 bulk add/remove: "clear A" after its entities have been bulk-copied elsewhere). trimExcess
// reclaims the now-empty chunks on its next pass.
func (a *archetype) clearAll() {
	for _, c := range a.chunks {
		c.clear()
	}
}

// trimExcess drops all of the archetype's chunks once it has zero live entities. Otherwise it
// is a no-op, which also keeps any empty chunk clearAll left ahead of occupied ones.
func (a *archetype) trimExcess() {
	if a.count() == 0 {
		a.chunks = nil
	}
}
