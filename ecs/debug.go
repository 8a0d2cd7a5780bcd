package ecs

import (
	json "github.com/goccy/go-json"
)

// DebugArchetype is the introspection view of one archetype, used only for debugging/tooling —
// never for persistence (structural round-tripping is explicitly out of scope).
type DebugArchetype struct {
	Components []string `json:"components"`
	Chunks     int      `json:"chunks"`
	Entities   int      `json:"entities"`
	Capacity   int      `json:"chunk_capacity"`
}

// DebugSnapshot is a point-in-time, human-readable dump of a World's archetype graph.
type DebugSnapshot struct {
	Entities   int              `json:"entities"`
	Archetypes []DebugArchetype `json:"archetypes"`
}

// Debug returns a snapshot of w's current archetypes, for logging or an admin endpoint. This is
// diagnostic only: its shape is not a stable wire format and nothing in this package reads it
// back.
func (w *World) Debug() DebugSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	archs := w.graph.all()
	snap := DebugSnapshot{
		Entities:   w.dir.count(),
		Archetypes: make([]DebugArchetype, 0, len(archs)),
	}

	for _, a := range archs {
		names := make([]string, len(a.componentIDs))
		for i, id := range a.componentIDs {
			names[i] = w.registry.infoOf(id).Name
		}
		snap.Archetypes = append(snap.Archetypes, DebugArchetype{
			Components: names,
			Chunks:     len(a.chunks),
			Entities:   a.count(),
			Capacity:   a.chunkCapacity,
		})
	}
	return snap
}

// DebugJSON renders Debug's snapshot as indented JSON via goccy/go-json.
func (w *World) DebugJSON() ([]byte, error) {
	return json.MarshalIndent(w.Debug(), "", "  ")
}
