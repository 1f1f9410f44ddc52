package game

import "github.com/pthm-cable/fishfeed/systems"

// InputEvent is a pointer event queued between ticks.
type InputEvent = systems.InputEvent

// PushInput queues an event for the next tick. Events pushed outside a
// session are dropped. While paused, presses are dropped and consecutive
// moves collapse into the latest one, so the queue stays bounded.
func (g *Game) PushInput(ev InputEvent) {
	if !g.inSession {
		return
	}
	if g.paused {
		if ev.Kind != systems.InputMove {
			return
		}
		if n := len(g.inputs); n > 0 && g.inputs[n-1].Kind == systems.InputMove {
			g.inputs[n-1] = ev
			return
		}
	}
	g.inputs = append(g.inputs, ev)
}

// PendingInputs returns the number of queued events.
func (g *Game) PendingInputs() int {
	return len(g.inputs)
}

// drainInputs hands the queued events to the tick and swaps in an empty
// buffer. The returned slice is valid until the next drain.
func (g *Game) drainInputs() []InputEvent {
	events := g.inputs
	g.inputs = g.spare[:0]
	g.spare = events
	return events
}
