package telemetry

import (
	"testing"
	"time"

	"github.com/pthm-cable/fishfeed/systems"
)

func TestPerfCollectorPhases(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(systems.PhasePellets)
		time.Sleep(50 * time.Microsecond)
		pc.StartPhase(systems.PhaseFish)
		time.Sleep(500 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.Ticks != 5 {
		t.Errorf("Ticks = %d, want 5", stats.Ticks)
	}
	if stats.AvgTick <= 0 {
		t.Errorf("AvgTick = %v, want > 0", stats.AvgTick)
	}
	if stats.P50Tick > stats.P99Tick || stats.P99Tick > stats.MaxTick {
		t.Errorf("quantiles out of order: p50 %v p99 %v max %v", stats.P50Tick, stats.P99Tick, stats.MaxTick)
	}
	if fish, pellets := stats.Pct(systems.PhaseFish), stats.Pct(systems.PhasePellets); fish <= pellets {
		t.Errorf("fish pct %v <= pellets pct %v", fish, pellets)
	}
	if got := stats.Phases[systems.PhaseProps].Avg; got != 0 {
		t.Errorf("untimed phase avg = %v, want 0", got)
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)
	for i := 0; i < 12; i++ {
		pc.StartTick()
		pc.StartPhase(systems.PhasePlayer)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.Ticks != 5 {
		t.Errorf("Ticks = %d, want 5", stats.Ticks)
	}
	if stats.TicksPerSecond <= 0 {
		t.Errorf("TicksPerSecond = %v, want > 0", stats.TicksPerSecond)
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	stats := NewPerfCollector(0).Stats()
	if stats.Ticks != 0 || stats.AvgTick != 0 {
		t.Errorf("empty stats = %+v", stats)
	}
	for i, ph := range stats.Phases {
		if ph.Phase != systems.Phase(i) {
			t.Errorf("Phases[%d].Phase = %v, want %v", i, ph.Phase, systems.Phase(i))
		}
	}
}

func TestPerfCollectorFrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)
	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("FrameDuration = %v, want >= 15ms", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("FPS = %v, want in (0, 70]", stats.FPS)
	}
}

func TestPerfStatsRow(t *testing.T) {
	var stats PerfStats
	stats.AvgTick = 250 * time.Microsecond
	stats.Phases[systems.PhaseFish].Pct = 60
	stats.Phases[systems.PhasePlayer].Pct = 5
	stats.Phases[systems.PhaseTelemetry].Pct = 1

	row := stats.Row(600)
	if row.WindowEnd != 600 || row.AvgTickUS != 250 {
		t.Errorf("row = %+v", row)
	}
	if row.FishPct != 60 || row.PlayerPct != 5 || row.TelemetryPct != 1 {
		t.Errorf("phase pcts = fish %v player %v telemetry %v, want 60 5 1", row.FishPct, row.PlayerPct, row.TelemetryPct)
	}
	if got := stats.Pct(systems.Phase(99)); got != 0 {
		t.Errorf("Pct(unknown) = %v, want 0", got)
	}
}
