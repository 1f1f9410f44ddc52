package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/fishfeed/systems"
)

// tickSample is the timing of one tick, split by phase.
type tickSample struct {
	total  time.Duration
	phases [systems.NumPhases]time.Duration
}

// PerfCollector times tick phases over a rolling window of ticks.
type PerfCollector struct {
	ring  []tickSample
	next  int
	count int

	cur        tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      systems.Phase
	inPhase    bool

	// Render loop timing, independent of ticks
	lastFrame time.Time
	frame     time.Duration

	scratch []float64
}

// NewPerfCollector creates a collector averaging over window ticks.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{
		ring:    make([]tickSample, window),
		scratch: make([]float64, 0, window),
	}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.cur = tickSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and opens the next one.
func (p *PerfCollector) StartPhase(phase systems.Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && int(p.phase) < systems.NumPhases {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// EndTick closes the last phase and stores the tick in the window.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.cur.total = now.Sub(p.tickStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	p.count = min(p.count+1, len(p.ring))
}

// RecordFrame marks the end of a rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PhaseTiming is one phase's average cost.
type PhaseTiming struct {
	Phase systems.Phase
	Avg   time.Duration
	Pct   float64 // share of the average tick, 0-100
}

// PerfStats aggregates the window.
type PerfStats struct {
	Ticks          int
	AvgTick        time.Duration
	P50Tick        time.Duration
	P99Tick        time.Duration
	MaxTick        time.Duration
	TicksPerSecond float64

	Phases [systems.NumPhases]PhaseTiming

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window. Tick quantiles use gonum's
// empirical quantile over the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{Ticks: p.count, FrameDuration: p.frame}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	for i := range s.Phases {
		s.Phases[i].Phase = systems.Phase(i)
	}
	if p.count == 0 {
		return s
	}

	var total time.Duration
	var phaseSum [systems.NumPhases]time.Duration
	p.scratch = p.scratch[:0]
	for _, sample := range p.ring[:p.count] {
		total += sample.total
		s.MaxTick = max(s.MaxTick, sample.total)
		for i, d := range sample.phases {
			phaseSum[i] += d
		}
		p.scratch = append(p.scratch, float64(sample.total))
	}
	slices.Sort(p.scratch)
	s.P50Tick = time.Duration(stat.Quantile(0.5, stat.Empirical, p.scratch, nil))
	s.P99Tick = time.Duration(stat.Quantile(0.99, stat.Empirical, p.scratch, nil))

	n := time.Duration(p.count)
	s.AvgTick = total / n
	if s.AvgTick > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTick)
	}
	for i, sum := range phaseSum {
		s.Phases[i].Avg = sum / n
		if s.AvgTick > 0 {
			s.Phases[i].Pct = float64(s.Phases[i].Avg) / float64(s.AvgTick) * 100
		}
	}
	return s
}

// Pct returns the share of the average tick spent in phase.
func (s PerfStats) Pct(phase systems.Phase) float64 {
	if int(phase) >= systems.NumPhases {
		return 0
	}
	return s.Phases[phase].Pct
}

// LogStats logs the window at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "window", s)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("ticks", s.Ticks),
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("p99_tick_us", s.P99Tick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, ph := range s.Phases {
		if ph.Pct >= 0.1 {
			attrs = append(attrs, slog.Float64(ph.Phase.String()+"_pct", float64(int(ph.Pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfRow is one perf.csv record.
type PerfRow struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	P50TickUS    int64   `csv:"p50_tick_us"`
	P99TickUS    int64   `csv:"p99_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	PelletsPct   float64 `csv:"pellets_pct"`
	PrunePct     float64 `csv:"prune_pct"`
	FishPct      float64 `csv:"fish_pct"`
	PropsPct     float64 `csv:"props_pct"`
	PlayerPct    float64 `csv:"player_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// Row flattens the stats for CSV output.
func (s PerfStats) Row(windowEnd int32) PerfRow {
	return PerfRow{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTick.Microseconds(),
		P50TickUS:    s.P50Tick.Microseconds(),
		P99TickUS:    s.P99Tick.Microseconds(),
		MaxTickUS:    s.MaxTick.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		PelletsPct:   s.Pct(systems.PhasePellets),
		PrunePct:     s.Pct(systems.PhasePrune),
		FishPct:      s.Pct(systems.PhaseFish),
		PropsPct:     s.Pct(systems.PhaseProps),
		PlayerPct:    s.Pct(systems.PhasePlayer),
		TelemetryPct: s.Pct(systems.PhaseTelemetry),
	}
}
