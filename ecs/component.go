package ecs

import (
	"sync"
	"unsafe"

	"github.com/rotisserie/eris"
)

// Component is the interface every component type must implement. Components are pure data;
// Name identifies the kind across the process and must be stable and non-empty.
type Component interface {
	Name() string
}

// ComponentID is the dense, process-stable identifier assigned to a component kind at first
// registration (§4.1). It never changes and is never reused.
type ComponentID uint32

// MaxComponentID bounds the number of distinct component kinds a single registry can track.
const MaxComponentID = 1<<20 - 1

// ComponentInfo is the type descriptor the registry records per ComponentID: its display name
// and the factory used to build a fresh column for that kind (§4.1, §4.3).
type ComponentInfo struct {
	ID       ComponentID
	Name     string
	elemSize uintptr
	factory  columnFactory
}

// componentRegistry assigns and resolves ComponentIDs. Registration is monotonic and safe to
// call concurrently with itself (§4.1). Lookups by id are not lock-free: each takes the
// registry's read lock.
type componentRegistry struct {
	mu     sync.RWMutex
	byName map[string]ComponentID
	infos  []ComponentInfo // index == ComponentID
}

func newComponentRegistry() *componentRegistry {
	return &componentRegistry{
		byName: make(map[string]ComponentID),
		infos:  make([]ComponentInfo, 0, 64),
	}
}

// register returns the stable ComponentID for T, assigning a new one on first call.
func register[T Component](r *componentRegistry) (ComponentID, error) {
	var zero T
	name := zero.Name()
	if name == "" {
		return 0, eris.New("component name cannot be empty")
	}

	r.mu.RLock()
	if id, ok := r.byName[name]; ok {
		r.mu.RUnlock()
		return id, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another goroutine may have registered it while we waited for the write lock.
	if id, ok := r.byName[name]; ok {
		return id, nil
	}

	if len(r.infos) > MaxComponentID {
		return 0, eris.New("max number of component kinds exceeded")
	}

	id := ComponentID(len(r.infos))
	r.infos = append(r.infos, ComponentInfo{
		ID:       id,
		Name:     name,
		elemSize: unsafe.Sizeof(zero),
		factory:  newColumnFactory[T](),
	})
	r.byName[name] = id
	return id, nil
}

func (r *componentRegistry) idOf(name string) (ComponentID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[name]
	return id, ok
}

// infoOf returns the descriptor for id. Panics (index out of range) if id was never registered; callers
// must only pass ids obtained from this registry.
func (r *componentRegistry) infoOf(id ComponentID) ComponentInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.infos[id]
}

func (r *componentRegistry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.infos)
}

// snapshot returns a copy of all registered component descriptors, ordered by ComponentID.
// Used by World.RegisteredComponents for introspection (§10.6).
func (r *componentRegistry) snapshot() []ComponentInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ComponentInfo, len(r.infos))
	copy(out, r.infos)
	return out
}
