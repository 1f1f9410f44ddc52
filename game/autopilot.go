package game

import (
	"math/rand/v2"

	"github.com/pthm-cable/fishfeed/config"
	"github.com/pthm-cable/fishfeed/systems"
)

// Autopilot defaults.
const (
	autopilotRetarget  = 45   // ticks between new target positions
	autopilotStep      = 2.5  // units moved toward the target per tick
	autopilotPressProb = 0.08 // chance of a press on any tick
)

// Autopilot is a seeded input source for headless runs. It emits events in
// playfield coordinates, so it expects the identity screen transform.
type Autopilot struct {
	rng     *rand.Rand
	placed  bool
	x       float64
	targetX float64
	pressed bool
}

// NewAutopilot creates an autopilot. Equal seeds produce equal event streams.
func NewAutopilot(seed int64) *Autopilot {
	return &Autopilot{rng: rand.New(rand.NewPCG(uint64(seed), 0x5eed))}
}

// Events appends this tick's events to dst.
func (a *Autopilot) Events(tick int32, field config.PlayfieldConfig, dst []InputEvent) []InputEvent {
	if !a.placed || a.x < field.Left || a.x > field.Right {
		a.x = field.Left + field.Width()/2
		a.targetX = a.x
		a.placed = true
	}
	if tick%autopilotRetarget == 0 || a.targetX < field.Left || a.targetX > field.Right {
		a.targetX = field.Left + a.rng.Float64()*field.Width()
	}

	switch d := a.targetX - a.x; {
	case d > autopilotStep:
		a.x += autopilotStep
	case d < -autopilotStep:
		a.x -= autopilotStep
	default:
		a.x = a.targetX
	}
	dst = append(dst, systems.MoveEvent(a.x, 0))

	if a.pressed {
		dst = append(dst, systems.PressEvent(false))
		a.pressed = false
	} else if a.rng.Float64() < autopilotPressProb {
		dst = append(dst, systems.PressEvent(true))
		a.pressed = true
	}
	return dst
}
