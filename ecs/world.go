package ecs

import (
	"sync"

	"github.com/skelitheprogrammer/Arch/internal/assert"
)

// World owns every entity, archetype, and component column in one logical scene (§9). A World
// is single-writer: structural operations (Create/Destroy/Add/Remove/Set) must not be called
// concurrently with each other or with Query iteration. Query resolution itself is safe to call
// from multiple goroutines concurrently with other Query calls — the only shared mutable state
// on that path is the query cache, guarded by its own latch.
type World struct {
	mu sync.Mutex // serializes structural operations; not held during Query resolution or iteration

	registry *componentRegistry
	graph    *archetypeGraph
	dir      *entityDirectory
	qcache   *queryCache

	log    *Logger
	events EventSink

	// id is this World's WorldID, stamped onto every Entity it creates (§3, §6). The core never
	// assigns this itself (§9 "Global state" — the registry of worlds is external); it defaults
	// to 0 and is only ever non-zero when a caller sets it via WithWorldID.
	id WorldID

	// chunkByteBudget and initialEntityCapacity are read once, at construction, by the Option
	// functions that can override them (§10.3); nothing after NewWorld returns mutates them.
	chunkByteBudget       int
	initialEntityCapacity int
}

// NewWorld constructs an empty World, ready to register components and create entities. Options
// that affect initial sizing (WithChunkByteBudget, WithInitialEntityCapacity) are applied before
// the registry/graph/directory are built, since those structures are sized once at construction;
// WithLogger/WithEventSink take effect immediately regardless of order.
func NewWorld(opts ...Option) *World {
	w := &World{
		log:                   NewNopLogger(),
		events:                noopEventSink{},
		chunkByteBudget:       defaultChunkBytes,
		initialEntityCapacity: 0,
	}
	for _, opt := range opts {
		opt(w)
	}

	w.registry = newComponentRegistry()
	w.graph = newArchetypeGraphWithBudget(w.registry, w.chunkByteBudget)
	w.dir = newEntityDirectoryWithCapacity(w.initialEntityCapacity)
	w.qcache = newQueryCache()
	return w
}

// componentIDFor returns T's ComponentID, registering it on first use. Registration is
// idempotent and safe under the World's structural lock.
func componentIDFor[T Component](w *World) ComponentID {
	id, err := register[T](w.registry)
	assert.That(err == nil, "world: failed to register component: %v", err)
	return id
}

// RegisterComponent explicitly registers T, returning its stable ComponentID. Calling this
// ahead of time is optional — Add/Set/Get/Remove/Has all register lazily — but doing so lets a
// caller size a span BitSet with RequiredWords before the first entity exists.
func RegisterComponent[T Component](w *World) ComponentID {
	w.mu.Lock()
	defer w.mu.Unlock()
	return componentIDFor[T](w)
}

// RegisteredComponents returns every component kind registered so far, ordered by ComponentID.
func (w *World) RegisteredComponents() []ComponentInfo {
	return w.registry.snapshot()
}

// ID returns this World's WorldID, the value stamped onto every Entity it creates (§3, §6).
func (w *World) ID() WorldID {
	return w.id
}

// Create adds a new entity with no components, placing it in the empty archetype (§5).
func (w *World) Create() Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	loc := w.graph.empty.insert(Nil)
	e := w.dir.create(w.id, loc)
	w.graph.empty.setEntity(loc, e)
	w.log.LogCreate(e)
	w.events.OnEntityCreated(e)
	return e
}

// Alive reports whether e refers to a currently live entity (§4.4, invariant P4).
func (w *World) Alive(e Entity) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir.alive(e)
}

// Destroy removes e and every component it carries. Returns a PreconditionViolation wrapping
// ErrEntityNotAlive if e is not alive.
func (w *World) Destroy(e Entity) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.dir.alive(e) {
		return newPreconditionViolation("Destroy", ErrEntityNotAlive)
	}

	w.events.OnEntityDestroyed(e)

	loc := w.dir.locationOf(e)
	w.applyRemove(loc.arch, loc)
	w.dir.destroy(e)

	w.log.LogDestroy(e)
	return nil
}

// applyRemove evicts loc from its archetype and fixes up the directory for the entity that
// backfilled the vacated slot, if any (§5, §6).
func (w *World) applyRemove(a *archetype, loc entityLocation) {
	res := a.remove(loc)

	if res.movedEntity != Nil {
		w.dir.setLocation(res.movedEntity, entityLocation{arch: a, chunk: loc.chunk, row: loc.row})
	}
}

// moveEntity transitions e from its current archetype to dst, copying every shared component
// and fixing up the directory (§5). Returns e's new location.
func (w *World) moveEntity(e Entity, dst *archetype) entityLocation {
	src := w.dir.locationOf(e)
	assert.That(src.arch != dst, "world: moveEntity into current archetype")

	newLoc := dst.insert(e)
	copyRow(src.arch, src, dst, newLoc)
	w.applyRemove(src.arch, src)
	w.dir.setLocation(e, newLoc)

	w.events.OnArchetypeChange(src.arch.signature, dst.signature, 1)
	return newLoc
}

// bulkTransition moves every entity currently in src into dst in one pass — copying columns row
// by row but never touching src's chunks individually via swap-remove, then clearing src outright
// (§4.7, §4.8: "copy entire columns in bulk from A to B ... then clear A"). apply, when non-nil,
// runs once per moved row after the shared columns are copied, letting a bulk Add/Set populate
// the newly-attached component. Fires a single OnArchetypeChange covering the whole batch rather
// than one per entity (§9 Open Question).
func (w *World) bulkTransition(src, dst *archetype, apply func(loc entityLocation)) int {
	n := src.count()
	if n == 0 {
		return 0
	}

	for chunkIdx, c := range src.chunks {
		for row := 0; row < c.count; row++ {
			e := c.entities[row]
			srcLoc := entityLocation{arch: src, chunk: chunkIdx, row: row}
			dstLoc := dst.insert(e)
			copyRow(src, srcLoc, dst, dstLoc)
			if apply != nil {
				apply(dstLoc)
			}
			w.dir.setLocation(e, dstLoc)
		}
	}
	src.clearAll()

	w.events.OnArchetypeChange(src.signature, dst.signature, n)
	return n
}

func setTyped[T Component](a *archetype, loc entityLocation, id ComponentID, v T) {
	idx := a.componentIndex[id]
	col := a.chunks[loc.chunk].column(idx).(*column[T])
	col.set(loc.row, v)
}

func getTyped[T Component](a *archetype, loc entityLocation, id ComponentID) T {
	idx := a.componentIndex[id]
	col := a.chunks[loc.chunk].column(idx).(*column[T])
	return col.get(loc.row)
}

func getTypedPtr[T Component](a *archetype, loc entityLocation, id ComponentID) *T {
	idx := a.componentIndex[id]
	col := a.chunks[loc.chunk].column(idx).(*column[T])
	return col.getPtr(loc.row)
}

// Add attaches v to e. Returns a PreconditionViolation wrapping ErrComponentAlreadyPresent if e
// already carries T, or ErrEntityNotAlive if e is not alive (§5, invariant P2).
func Add[T Component](w *World, e Entity, v T) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.dir.alive(e) {
		return newPreconditionViolation("Add", ErrEntityNotAlive)
	}

	id := componentIDFor[T](w)
	loc := w.dir.locationOf(e)
	if loc.arch.has(id) {
		return newPreconditionViolation("Add", ErrComponentAlreadyPresent)
	}

	dst := w.graph.transitionAdd(loc.arch, id)
	newLoc := w.moveEntity(e, dst)
	setTyped[T](dst, newLoc, id, v)
	w.log.LogTransition(e, componentName[T](), true)
	return nil
}

// Set upserts v onto e: if e already carries T its value is overwritten in place with no
// structural change; otherwise Set behaves like Add.
func Set[T Component](w *World, e Entity, v T) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.dir.alive(e) {
		return newPreconditionViolation("Set", ErrEntityNotAlive)
	}

	id := componentIDFor[T](w)
	loc := w.dir.locationOf(e)
	if loc.arch.has(id) {
		setTyped[T](loc.arch, loc, id, v)
		w.events.OnComponentSet(e, id)
		return nil
	}

	dst := w.graph.transitionAdd(loc.arch, id)
	newLoc := w.moveEntity(e, dst)
	setTyped[T](dst, newLoc, id, v)
	w.log.LogTransition(e, componentName[T](), true)
	return nil
}

// Get returns a copy of e's T component. Returns a PreconditionViolation wrapping
// ErrComponentNotPresent if e doesn't carry T, or ErrEntityNotAlive if e is not alive.
func Get[T Component](w *World, e Entity) (T, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var zero T
	if !w.dir.alive(e) {
		return zero, newPreconditionViolation("Get", ErrEntityNotAlive)
	}

	id := componentIDFor[T](w)
	loc := w.dir.locationOf(e)
	if !loc.arch.has(id) {
		return zero, newPreconditionViolation("Get", ErrComponentNotPresent)
	}
	return getTyped[T](loc.arch, loc, id), nil
}

// GetPtr returns a pointer directly into the backing column for e's T component, letting a
// caller mutate it in place without a Get/Set round trip. The pointer is invalidated by any
// structural change to e's archetype (including swap-remove of another entity in the same
// chunk); do not retain it past the current operation.
func GetPtr[T Component](w *World, e Entity) (*T, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.dir.alive(e) {
		return nil, newPreconditionViolation("GetPtr", ErrEntityNotAlive)
	}

	id := componentIDFor[T](w)
	loc := w.dir.locationOf(e)
	if !loc.arch.has(id) {
		return nil, newPreconditionViolation("GetPtr", ErrComponentNotPresent)
	}
	return getTypedPtr[T](loc.arch, loc, id), nil
}

// Has reports whether e currently carries a T component. Returns false (never an error) for a
// dead entity.
func Has[T Component](w *World, e Entity) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.dir.alive(e) {
		return false
	}
	id := componentIDFor[T](w)
	return w.dir.locationOf(e).arch.has(id)
}

// Remove detaches e's T component. Returns a PreconditionViolation wrapping
// ErrComponentNotPresent if e doesn't carry T, or ErrEntityNotAlive if e is not alive
// (§5, invariant P3).
func Remove[T Component](w *World, e Entity) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.dir.alive(e) {
		return newPreconditionViolation("Remove", ErrEntityNotAlive)
	}

	id := componentIDFor[T](w)
	loc := w.dir.locationOf(e)
	if !loc.arch.has(id) {
		return newPreconditionViolation("Remove", ErrComponentNotPresent)
	}

	dst := w.graph.transitionRemove(loc.arch, id)
	w.moveEntity(e, dst)
	w.log.LogTransition(e, componentName[T](), false)
	return nil
}

func componentName[T Component]() string {
	var zero T
	return zero.Name()
}

// Query resolves desc against the current archetype graph (§6). The returned Query is a
// snapshot: archetypes created after Query returns are not included.
func (w *World) Query(desc QueryDescription) Query {
	return Query{archetypes: w.qcache.resolve(w.graph, desc)}
}

// DestroyQuery destroys every entity matching q, archetype at a time (§4.7, §4.8). Equivalent to
// calling Destroy on every matching entity. Each entity's directory slot is still freed one by
// one, but no archetype row is swap-removed: each matching archetype's chunks are cleared
// outright once every entity in them has been recycled.
func (w *World) DestroyQuery(q Query) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, a := range q.archetypes {
		if a.count() == 0 {
			continue
		}
		for _, c := range a.chunks {
			for row := 0; row < c.count; row++ {
				e := c.entities[row]
				w.events.OnEntityDestroyed(e)
				w.dir.destroy(e)
				w.log.LogDestroy(e)
			}
		}
		a.clearAll()
	}
}

// AddQuery attaches v to every entity matching q that doesn't already carry T, moving each
// matching archetype's entities to its +T sibling in one bulk column copy rather than one
// Add[T] call per entity (§4.7, §4.8). Archetypes already carrying T, or with no live entities,
// are skipped.
func AddQuery[T Component](w *World, q Query, v T) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := componentIDFor[T](w)
	for _, a := range q.archetypes {
		if a.count() == 0 || a.has(id) {
			continue
		}
		dst := w.graph.transitionAdd(a, id)
		w.bulkTransition(a, dst, func(loc entityLocation) {
			setTyped[T](dst, loc, id, v)
		})
	}
}

// RemoveQuery detaches T from every entity matching q that carries it, moving each matching
// archetype's entities to its -T sibling in one bulk column copy (§4.7, §4.8). Archetypes not
// carrying T, or with no live entities, are skipped.
func RemoveQuery[T Component](w *World, q Query) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := componentIDFor[T](w)
	for _, a := range q.archetypes {
		if a.count() == 0 || !a.has(id) {
			continue
		}
		dst := w.graph.transitionRemove(a, id)
		w.bulkTransition(a, dst, nil)
	}
}

// SetQuery upserts v onto every entity matching q: archetypes already carrying T are overwritten
// in place with no structural change; archetypes that don't are bulk-transitioned to their +T
// sibling first, the same split Set[T] makes for a single entity (§4.7, §4.8).
func SetQuery[T Component](w *World, q Query, v T) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := componentIDFor[T](w)
	for _, a := range q.archetypes {
		if a.count() == 0 {
			continue
		}
		if a.has(id) {
			idx := a.componentIndex[id]
			for _, c := range a.chunks {
				col := c.column(idx).(*column[T])
				for row := 0; row < c.count; row++ {
					col.set(row, v)
					w.events.OnComponentSet(c.entities[row], id)
				}
			}
			continue
		}
		dst := w.graph.transitionAdd(a, id)
		w.bulkTransition(a, dst, func(loc entityLocation) {
			setTyped[T](dst, loc, id, v)
		})
	}
}

// Count returns the number of currently live entities.
func (w *World) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir.count()
}

// ArchetypeCount returns the number of distinct archetypes currently materialized.
func (w *World) ArchetypeCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.graph.all())
}

// TrimExcess releases chunk storage for archetypes that currently have zero live entities, then
// destroys those archetypes outright, dropping ArchetypeCount and reclaiming their transition
// edges (§3, §4.8, §6). Safe to call at any point between structural operations; does not change
// query results, since a destroyed archetype held no entities to begin with.
func (w *World) TrimExcess() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.graph.trimExcess()
}

// Clear destroys every entity and archetype, resetting the World to the state NewWorld would
// produce, except that already-registered component kinds stay registered (their ComponentIDs
// remain valid and stable, matching the promise that ComponentIDs never change once assigned).
func (w *World) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.dir.clear()
	w.graph = newArchetypeGraphWithBudget(w.registry, w.chunkByteBudget)
	w.qcache.clear()
}

// Stats summarizes the World's current size, for introspection and tests (§10.6).
type Stats struct {
	Entities        int
	Archetypes      int
	RegisteredKinds int
}

// Stats returns a point-in-time snapshot of the World's size.
func (w *World) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Stats{
		Entities:        w.dir.count(),
		Archetypes:      len(w.graph.all()),
		RegisteredKinds: w.registry.count(),
	}
}
