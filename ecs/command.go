package ecs

import "github.com/rotisserie/eris"

// setDynamic is the runtime-polymorphic counterpart to Set[T]: it takes a ComponentID and an any
// instead of a type parameter, for callers (the command buffer, introspection) that only know
// the component kind at runtime.
func (w *World) setDynamic(e Entity, id ComponentID, v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.dir.alive(e) {
		return newPreconditionViolation("Set", ErrEntityNotAlive)
	}

	loc := w.dir.locationOf(e)
	if loc.arch.has(id) {
		idx := loc.arch.componentIndex[id]
		loc.arch.chunks[loc.chunk].column(idx).setAbstract(loc.row, v)
		w.events.OnComponentSet(e, id)
		return nil
	}

	dst := w.graph.transitionAdd(loc.arch, id)
	newLoc := w.moveEntity(e, dst)
	idx := dst.componentIndex[id]
	dst.chunks[newLoc.chunk].column(idx).setAbstract(newLoc.row, v)
	return nil
}

// removeDynamic is the runtime-polymorphic counterpart to Remove[T].
func (w *World) removeDynamic(e Entity, id ComponentID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.dir.alive(e) {
		return newPreconditionViolation("Remove", ErrEntityNotAlive)
	}

	loc := w.dir.locationOf(e)
	if !loc.arch.has(id) {
		return newPreconditionViolation("Remove", ErrComponentNotPresent)
	}

	dst := w.graph.transitionRemove(loc.arch, id)
	w.moveEntity(e, dst)
	return nil
}

type commandKind uint8

const (
	commandSet commandKind = iota
	commandRemove
	commandDestroy
)

type command struct {
	kind      commandKind
	entity    Entity
	component ComponentID
	value     any
}

// CommandBuffer records structural operations for deferred, single-pass application (§6): code
// iterating a Query must not mutate the World directly, since that can move rows out from under
// the iteration. Recording into a CommandBuffer and calling Playback after iteration finishes
// avoids that without requiring the caller to collect entities into a slice by hand.
type CommandBuffer struct {
	w   *World
	ops []command
}

// NewCommandBuffer returns a CommandBuffer that will apply its recorded operations to w.
func NewCommandBuffer(w *World) *CommandBuffer {
	return &CommandBuffer{w: w}
}

// SetComponent records an upsert of v (by ComponentID, dynamically) onto e, applied at Playback.
func (cb *CommandBuffer) SetComponent(e Entity, id ComponentID, v any) {
	cb.ops = append(cb.ops, command{kind: commandSet, entity: e, component: id, value: v})
}

// RemoveComponent records detaching component id from e, applied at Playback.
func (cb *CommandBuffer) RemoveComponent(e Entity, id ComponentID) {
	cb.ops = append(cb.ops, command{kind: commandRemove, entity: e, component: id})
}

// DestroyEntity records destroying e, applied at Playback.
func (cb *CommandBuffer) DestroyEntity(e Entity) {
	cb.ops = append(cb.ops, command{kind: commandDestroy, entity: e})
}

// Len returns the number of recorded, not-yet-applied operations.
func (cb *CommandBuffer) Len() int { return len(cb.ops) }

// Playback applies every recorded operation to the World in the order recorded, then clears the
// buffer so it can be reused. Operations on an entity that was destroyed earlier in the same
// playback return ErrEntityNotAlive, collected and returned together rather than aborting the
// rest of the batch.
func (cb *CommandBuffer) Playback() error {
	var errs []error
	for _, op := range cb.ops {
		var err error
		switch op.kind {
		case commandSet:
			err = cb.w.setDynamic(op.entity, op.component, op.value)
		case commandRemove:
			err = cb.w.removeDynamic(op.entity, op.component)
		case commandDestroy:
			err = cb.w.Destroy(op.entity)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	cb.ops = cb.ops[:0]

	if len(errs) == 0 {
		return nil
	}
	combined := errs[0]
	for _, e := range errs[1:] {
		combined = eris.Wrap(combined, e.Error())
	}
	return combined
}
