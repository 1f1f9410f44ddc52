package game

import (
	"log/slog"

	"github.com/pthm-cable/fishfeed/systems"
	"github.com/pthm-cable/fishfeed/telemetry"
)

// recordTick feeds one tick of events into the collector and meal tracker.
func (g *Game) recordTick(pruned int, hits []systems.Hit, spawned bool) {
	g.collector.RecordPrune(pruned)
	if spawned {
		g.collector.RecordSpawn()
	}

	g.hitEvents = g.hitEvents[:0]
	for _, h := range hits {
		e := telemetry.NewHitEvent(g.tick, h)
		g.collector.RecordHit(e)
		g.meals.RecordMeal(h.FishID, g.tick)
		g.hitEvents = append(g.hitEvents, e)
	}
	if err := g.outputManager.WriteHits(g.hitEvents); err != nil {
		slog.Error("failed to write hits", "error", err)
	}

	g.collector.RecordStates(g.fish.StateCounts())
}

// flushTelemetry flushes the stats window when it completes.
func (g *Game) flushTelemetry() {
	if !g.collector.Advance() {
		return
	}

	stats := g.collector.Flush(g.tick, g.fish.Count(), g.pellets.Count())
	perfStats := g.perfCollector.Stats()
	g.lastStats = stats

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
