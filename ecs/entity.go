package ecs

// EntityID is the dense slot index a directory entry occupies. It is recycled once an entity is
// destroyed; Entity pairs it with a WorldID (§3, §6) and a generation to detect stale handles
// (§4.4).
type EntityID uint32

// EntityIDInvalid is never a valid slot index; used as a sentinel return value (e.g. from
// chunk.swapRemove when nothing moved).
const EntityIDInvalid EntityID = ^EntityID(0)

// MaxEntityID bounds how many directory slots a single World can track at once.
const MaxEntityID = 1<<32 - 2

// WorldID identifies the World an Entity belongs to (§3, §6). The core does not maintain a
// process-wide registry of worlds (§9 "Global state"); a caller that runs more than one World at
// once picks these values itself, e.g. via an external world registry, and passes one to
// WithWorldID. A World left unconfigured defaults to WorldID 0.
type WorldID uint16

// Entity is the public, stable handle to a live entity: the (id, world) pair the spec's external
// interface exposes (§3, §6). It stays valid across structural operations (adding/removing
// components moves the entity between archetypes but never changes its Entity value); id alone
// is only unique within a single World, which is why world rides along. generation is this
// module's version tag (§4.4): unlike the spec's separate EntityReference, it travels with
// Entity itself rather than a second wrapper type, so a stale handle fails Alive() on its own
// without a caller having to thread an extra version value through every call site (see
// DESIGN.md's Open Question on this).
type Entity struct {
	id         EntityID
	world      WorldID
	generation uint32
}

// Nil is the sentinel Entity whose id is EntityIDInvalid; never a handle to a live entity. It is
// not the zero Entity value: Entity{} has id 0, a valid slot index.
var Nil = Entity{id: EntityIDInvalid}

// IsNil reports whether e is Nil.
func (e Entity) IsNil() bool { return e == Nil }

// ID returns e's EntityID, unique within e's World (§6).
func (e Entity) ID() EntityID { return e.id }

// World returns the WorldID of the World e was created in (§3, §6).
func (e Entity) World() WorldID { return e.world }

// entityLocation is where an entity's component data currently lives: which archetype, which
// chunk within it, and which row within that chunk. Updated in place whenever the entity moves
// (§4.4); this is the only per-entity bookkeeping outside the archetype's own column storage.
type entityLocation struct {
	arch  *archetype
	chunk int
	row   int
}

// directorySlot is one entry in the entity directory (§4.4). A slot is either free (on the free
// list, generation already bumped for the next occupant) or occupied (live is true, loc valid).
type directorySlot struct {
	generation uint32
	live       bool
	loc        entityLocation
}

// entityDirectory maps EntityID to its current location, recycling freed slots and bumping their
// generation so stale Entity handles fail Alive checks instead of aliasing a new entity (§4.4).
type entityDirectory struct {
	slots []directorySlot
	free  []EntityID // FIFO so recently-freed slots aren't recycled before staler ones, bounding aliasing risk
}

func newEntityDirectory() *entityDirectory {
	return &entityDirectory{}
}

// newEntityDirectoryWithCapacity pre-sizes the backing slot slice to hint, avoiding repeated
// growth when a caller already knows roughly how many entities a World will hold (§10.3
// WithInitialEntityCapacity). hint <= 0 behaves exactly like newEntityDirectory.
func newEntityDirectoryWithCapacity(hint int) *entityDirectory {
	d := &entityDirectory{}
	if hint > 0 {
		d.slots = make([]directorySlot, 0, hint)
	}
	return d
}

// create allocates a new Entity in world, reusing a free slot if one exists. Generations start
// at 1, not 0, so the very first entity created in a slot reports version 1 (§8 S1: "e1 =
// create({Position}) → id=0, v=1").
func (d *entityDirectory) create(world WorldID, loc entityLocation) Entity {
	if len(d.free) > 0 {
		id := d.free[0]
		d.free = d.free[1:]
		slot := &d.slots[id]
		slot.live = true
		slot.loc = loc
		return Entity{id: id, world: world, generation: slot.generation}
	}

	id := EntityID(len(d.slots))
	d.slots = append(d.slots, directorySlot{generation: 1, live: true, loc: loc})
	return Entity{id: id, world: world, generation: 1}
}

// alive reports whether e refers to a currently live entity: its slot exists, is occupied, and
// its generation matches (§4.4, invariant P4).
func (d *entityDirectory) alive(e Entity) bool {
	if int(e.id) >= len(d.slots) {
		return false
	}
	slot := &d.slots[e.id]
	return slot.live && slot.generation == e.generation
}

// locationOf returns e's current location. Callers must check alive(e) first.
func (d *entityDirectory) locationOf(e Entity) entityLocation {
	return d.slots[e.id].loc
}

// setLocation updates e's recorded location after a structural move, without changing liveness
// or generation.
func (d *entityDirectory) setLocation(e Entity, loc entityLocation) {
	d.slots[e.id].loc = loc
}

// destroy frees e's slot, bumping its generation so any outstanding stale Entity handle with the
// old generation now fails alive().
func (d *entityDirectory) destroy(e Entity) {
	slot := &d.slots[e.id]
	slot.live = false
	slot.loc = entityLocation{}
	slot.generation++
	d.free = append(d.free, e.id)
}

// count returns the number of currently live entities.
func (d *entityDirectory) count() int {
	return len(d.slots) - len(d.free)
}

// clear resets the directory to empty, releasing all slots.
func (d *entityDirectory) clear() {
	d.slots = nil
	d.free = nil
}
