// Package testutils provides sample component types and deterministic randomness helpers
// shared by the ecs package's tests.
package testutils

type Position struct{ X, Y float64 }

func (Position) Name() string { return "Position" }

type Velocity struct{ X, Y float64 }

func (Velocity) Name() string { return "Velocity" }

type Health struct{ Value int }

func (Health) Name() string { return "Health" }

type PlayerTag struct{ Tag string }

func (PlayerTag) Name() string { return "PlayerTag" }

type Experience struct{ Value int }

func (Experience) Name() string { return "Experience" }

// SimpleComponent is a minimal component used by model-based fuzz tests, where the field
// content (not its type) is what's being exercised.
type SimpleComponent struct{ Value int }

func (SimpleComponent) Name() string { return "SimpleComponent" }
