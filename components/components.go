// Package components defines ECS components for the simulation.
package components

import "time"

// FishState is the behavior state of a single fish.
// Direction and speed are folded into the state so no velocity field is needed.
type FishState uint8

const (
	StateIdle FishState = iota
	StateSlowLeft
	StateFastLeft
	StateSlowRight
	StateFastRight
	StateEatingLeft
	StateEatingRight
)

// Eating reports whether the fish is in one of the eating states.
func (s FishState) Eating() bool {
	return s == StateEatingLeft || s == StateEatingRight
}

// FacingLeft reports whether the fish faces left. Idle fish face left,
// since their next move is always to the left.
func (s FishState) FacingLeft() bool {
	switch s {
	case StateSlowRight, StateFastRight, StateEatingRight:
		return false
	}
	return true
}

// Fast reports whether the state moves at the fast speed.
func (s FishState) Fast() bool {
	return s == StateFastLeft || s == StateFastRight
}

// Valid reports whether s is one of the enumerated states.
func (s FishState) Valid() bool {
	return s <= StateEatingRight
}

// Variant classifies a fish for external collaborators (rendering, telemetry).
// It has no effect on behavior.
type Variant uint8

const (
	VariantCommon Variant = iota // grey
	VariantRare                  // golden
)

// Fish holds per-fish behavior state.
type Fish struct {
	ID      uint32 // Stable, ascending spawn order; used as the evaluation order
	State   FishState
	Eating  Timer
	Variant Variant
}

// Pellet is a falling food pellet.
type Pellet struct {
	Seq       uint64  // Spawn order, lower is older
	SpawnTick int32   // Tick the pellet was created on
	Fallen    float64 // Distance fallen since spawn
}

// Player is the singleton dispenser controlled by pointer input.
type Player struct {
	Cooldown Timer
}

// Prop is a decorative prop cycling through visual frames.
type Prop struct {
	Family     string
	Frame      int
	FrameCount int
	Period     time.Duration // nominal time per frame
	Cycle      Timer         // repeating, Period aligned to the tick length
}
