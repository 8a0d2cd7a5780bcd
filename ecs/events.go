package ecs

// EventSink observes structural changes as they happen (§6 Open Questions: per-archetype
// notification was chosen over per-entity fan-out for bulk operations — see OnArchetypeChange).
// Implementations must not call back into the World; hooks run while the World's structural
// section is already active.
type EventSink interface {
	// OnEntityCreated fires once per Create.
	OnEntityCreated(e Entity)
	// OnEntityDestroyed fires once per destroyed entity, before its row is removed from its
	// archetype and before its slot is recycled.
	OnEntityDestroyed(e Entity)
	// OnArchetypeChange fires once per structural transition (Add[T]/Remove[T]/bulk move),
	// naming the archetypes the affected entities moved between rather than firing once per
	// entity — bulk operations report one call covering the whole batch.
	OnArchetypeChange(from, to BitSet, count int)
	// OnComponentSet fires once per entity immediately after an in-place write of an existing
	// component's value (Set[T]/SetQuery[T] when the entity already carries the component, and
	// the command buffer's dynamic set path). A Set that instead attaches a new component fires
	// OnArchetypeChange, not this hook — the two are mutually exclusive for a given write.
	OnComponentSet(e Entity, id ComponentID)
}

// noopEventSink discards every event; the World's default.
type noopEventSink struct{}

func (noopEventSink) OnEntityCreated(Entity)                {}
func (noopEventSink) OnEntityDestroyed(Entity)              {}
func (noopEventSink) OnArchetypeChange(BitSet, BitSet, int) {}
func (noopEventSink) OnComponentSet(Entity, ComponentID)    {}
