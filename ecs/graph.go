package ecs

// archetypeGraph owns every archetype that currently exists and resolves a signature to its
// archetype, creating one on first use (§5). Lookup is by content hash with an explicit
// signature comparison on collision, since BitSet.Hash is not an identity (§9).
type archetypeGraph struct {
	registry   *componentRegistry
	chunkBytes int // target chunk byte budget new archetypes size their chunks against (§10.3)
	byHash     map[uint64][]*archetype
	empty      *archetype // the zero-component archetype every entity starts life in
	generation int        // bumped every time a brand-new archetype is created; invalidates the query cache
}

// newArchetypeGraph builds a graph whose archetypes size chunks against the package-default byte
// budget. Use newArchetypeGraphWithBudget for a World constructed with WithChunkByteBudget.
func newArchetypeGraph(registry *componentRegistry) *archetypeGraph {
	return newArchetypeGraphWithBudget(registry, defaultChunkBytes)
}

func newArchetypeGraphWithBudget(registry *componentRegistry, chunkBytes int) *archetypeGraph {
	g := &archetypeGraph{
		registry:   registry,
		chunkBytes: chunkBytes,
		byHash:     make(map[uint64][]*archetype),
	}
	g.empty = g.getOrCreate(NewBitSet())
	return g
}

// getOrCreate returns the archetype exactly matching signature, creating it if this is the
// first time the graph has seen this component set.
func (g *archetypeGraph) getOrCreate(signature BitSet) *archetype {
	h := signature.Hash()
	for _, a := range g.byHash[h] {
		if a.signature.Equals(signature) {
			return a
		}
	}

	ids := signature.ToSlice()
	infos := make([]ComponentInfo, len(ids))
	for i, id := range ids {
		infos[i] = g.registry.infoOf(id)
	}

	a := newArchetype(signature.Clone(), ids, infos, g.chunkBytes)
	g.byHash[h] = append(g.byHash[h], a)
	g.generation++
	return a
}

// transitionAdd returns the archetype reached from a by adding component id, using and
// populating a's addEdge cache (§5 hot path).
func (g *archetypeGraph) transitionAdd(a *archetype, id ComponentID) *archetype {
	if dst, ok := a.addEdge[id]; ok {
		return dst
	}

	sig := a.signature.Clone()
	sig.Set(id)
	dst := g.getOrCreate(sig)
	a.addEdge[id] = dst
	dst.removeEdge[id] = a
	return dst
}

// transitionRemove returns the archetype reached from a by removing component id, using and
// populating a's removeEdge cache (§5 hot path).
func (g *archetypeGraph) transitionRemove(a *archetype, id ComponentID) *archetype {
	if dst, ok := a.removeEdge[id]; ok {
		return dst
	}

	sig := a.signature.Clone()
	sig.Clear(id)
	dst := g.getOrCreate(sig)
	a.removeEdge[id] = dst
	dst.addEdge[id] = a
	return dst
}

// all returns every archetype currently in the graph, in no particular order. Used by the query
// engine to find matches and by introspection/debug dumps.
func (g *archetypeGraph) all() []*archetype {
	out := make([]*archetype, 0, len(g.byHash))
	for _, bucket := range g.byHash {
		out = append(out, bucket...)
	}
	return out
}

// trimExcess drops empty chunks across every archetype, then destroys any archetype left with
// zero entities, reclaiming its edges and its slot in byHash (§3, §4.8, §6). The zero-component
// archetype every entity starts life in is never destroyed, even when momentarily empty.
func (g *archetypeGraph) trimExcess() {
	all := g.all()
	for _, a := range all {
		a.trimExcess()
	}

	dead := make(map[*archetype]bool)
	for _, a := range all {
		if a != g.empty && a.count() == 0 {
			dead[a] = true
		}
	}
	if len(dead) == 0 {
		return
	}

	for _, a := range all {
		if dead[a] {
			continue
		}
		for id, dst := range a.addEdge {
			if dead[dst] {
				delete(a.addEdge, id)
			}
		}
		for id, dst := range a.removeEdge {
			if dead[dst] {
				delete(a.removeEdge, id)
			}
		}
	}

	for h, bucket := range g.byHash {
		kept := bucket[:0]
		for _, a := range bucket {
			if !dead[a] {
				kept = append(kept, a)
			}
		}
		if len(kept) == 0 {
			delete(g.byHash, h)
		} else {
			g.byHash[h] = kept
		}
	}
	g.generation++
}
