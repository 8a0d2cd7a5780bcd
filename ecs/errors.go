package ecs

import "github.com/rotisserie/eris"

// Sentinel errors for the core's narrow error taxonomy (see §7 of the design spec: precondition
// violations and out-of-capacity failures). Callers should compare with eris.Is, never by string.
var (
	// ErrEntityNotAlive is returned when a structural operation targets an entity id that is
	// either never created, already destroyed, or stale (the Entity's generation is old).
	ErrEntityNotAlive = eris.New("entity is not alive")

	// ErrComponentNotFound names a component kind that is not registered. No function in this
	// package returns it: Get/Remove register T on demand and report a component the entity's
	// archetype doesn't carry with ErrComponentNotPresent.
	ErrComponentNotFound = eris.New("component not found")

	// ErrComponentAlreadyPresent is returned by Add when the entity's archetype already
	// contains the component being added.
	ErrComponentAlreadyPresent = eris.New("component already present on entity")

	// ErrComponentNotPresent is returned by Remove when the entity's archetype does not
	// contain the component being removed.
	ErrComponentNotPresent = eris.New("component not present on entity")

	// ErrSameArchetype names a move of an entity into the archetype it is already in. No
	// function returns it: moveEntity guards this case with an internal assertion instead.
	ErrSameArchetype = eris.New("cannot move entity into its current archetype")

	// ErrChunkFull names a push onto a chunk at capacity. No function returns it: chunk.push
	// guards this case with an internal assertion, and the archetype allocates a new chunk first.
	ErrChunkFull = eris.New("chunk is at capacity")

	// ErrWorldClosed names an operation on a cleared World. No function returns it: a World
	// stays usable after Clear.
	ErrWorldClosed = eris.New("world has been cleared")
)

// PreconditionViolation reports a caller contract violation (§7): operating on a dead entity,
// double-adding or double-removing a component, or moving an entity into its current archetype.
// The wrapped error is one of the sentinels above. Operations return it in every build, release
// or not; none of these caller errors panics, since internal/assert guards only internal
// invariants.
type PreconditionViolation struct {
	Op  string
	Err error
}

func (p *PreconditionViolation) Error() string {
	return eris.Wrap(p.Err, p.Op).Error()
}

func (p *PreconditionViolation) Unwrap() error { return p.Err }

func newPreconditionViolation(op string, err error) *PreconditionViolation {
	return &PreconditionViolation{Op: op, Err: err}
}
