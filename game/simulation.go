package game

import (
	"time"

	"github.com/pthm-cable/fishfeed/systems"
)

// Update advances the simulation by frameDt of wall time, running as many
// fixed ticks as fit. At most simulation.max_steps_per_frame ticks run per
// call; any remaining backlog is dropped. Returns the ticks run.
func (g *Game) Update(frameDt time.Duration) int {
	if !g.inSession || g.paused || frameDt <= 0 {
		return 0
	}

	dt := g.config().Derived.DT
	maxSteps := g.config().Simulation.MaxStepsPerFrame
	if maxSteps < 1 {
		maxSteps = 1
	}

	g.accum += frameDt
	steps := 0
	for g.accum >= dt && steps < maxSteps {
		g.Step()
		g.accum -= dt
		steps++
	}
	if g.accum >= dt {
		g.accum %= dt
	}
	g.perfCollector.RecordFrame()
	return steps
}

// Step runs exactly one simulation tick:
// pellets advance, prune, fish, props, player.
func (g *Game) Step() {
	if !g.inSession {
		return
	}

	g.perfCollector.StartTick()

	if g.autopilot != nil {
		g.inputs = g.autopilot.Events(g.tick, g.level.Playfield, g.inputs)
	}
	events := g.drainInputs()

	ctx := &g.ctx
	ctx.Tick = g.tick
	ctx.DT = g.config().Derived.DT

	g.perfCollector.StartPhase(systems.PhasePellets)
	g.pellets.AdvanceAll(ctx.DT)

	g.perfCollector.StartPhase(systems.PhasePrune)
	pruned := g.pellets.PruneOutOfBounds()
	g.pellets.Refresh()

	g.perfCollector.StartPhase(systems.PhaseFish)
	hits := g.fish.Update(ctx, g.pellets)
	g.pellets.RemoveConsumed()

	g.perfCollector.StartPhase(systems.PhaseProps)
	g.props.Update(ctx.DT)

	g.perfCollector.StartPhase(systems.PhasePlayer)
	spawned := g.player.Update(ctx, events, g.pellets)

	g.perfCollector.StartPhase(systems.PhaseTelemetry)
	g.recordTick(pruned, hits, spawned)

	g.tick++
	g.flushTelemetry()

	g.perfCollector.EndTick()
}
