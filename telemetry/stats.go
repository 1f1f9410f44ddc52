package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Counts at window end
	FishCount   int `csv:"fish"`
	PelletCount int `csv:"pellets"`

	// Events during window
	PelletsSpawned  int     `csv:"pellets_spawned"`
	PelletsConsumed int     `csv:"pellets_consumed"`
	PelletsPruned   int     `csv:"pellets_pruned"`
	HitsCommon      int     `csv:"hits_common"`
	HitsRare        int     `csv:"hits_rare"`
	CatchRate       float64 `csv:"catch_rate"` // consumed / (consumed + pruned)

	// Seconds from spawn to catch, over pellets consumed this window
	LifetimeMean float64 `csv:"lifetime_mean"`
	LifetimeStd  float64 `csv:"lifetime_std"`
	LifetimeP10  float64 `csv:"lifetime_p10"`
	LifetimeP50  float64 `csv:"lifetime_p50"`
	LifetimeP90  float64 `csv:"lifetime_p90"`

	// Fraction of fish-ticks spent in each state group
	IdleFrac   float64 `csv:"idle_frac"`
	SlowFrac   float64 `csv:"slow_frac"`
	FastFrac   float64 `csv:"fast_frac"`
	EatingFrac float64 `csv:"eating_frac"`
}

// ComputeLifetimeStats returns mean, standard deviation and empirical
// 10/50/90 percentiles. Values are not modified.
func ComputeLifetimeStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	if n == 1 {
		mean = sorted[0]
	} else {
		mean, std = stat.MeanStdDev(sorted, nil)
	}

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("fish", s.FishCount),
		slog.Int("pellets", s.PelletCount),
		slog.Int("pellets_spawned", s.PelletsSpawned),
		slog.Int("pellets_consumed", s.PelletsConsumed),
		slog.Int("pellets_pruned", s.PelletsPruned),
		slog.Int("hits_common", s.HitsCommon),
		slog.Int("hits_rare", s.HitsRare),
		slog.Float64("catch_rate", s.CatchRate),
		slog.Float64("lifetime_mean", s.LifetimeMean),
		slog.Float64("lifetime_std", s.LifetimeStd),
		slog.Float64("lifetime_p50", s.LifetimeP50),
		slog.Float64("idle_frac", s.IdleFrac),
		slog.Float64("slow_frac", s.SlowFrac),
		slog.Float64("fast_frac", s.FastFrac),
		slog.Float64("eating_frac", s.EatingFrac),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"fish", s.FishCount,
		"pellets", s.PelletCount,
		"pellets_spawned", s.PelletsSpawned,
		"pellets_consumed", s.PelletsConsumed,
		"pellets_pruned", s.PelletsPruned,
		"hits_common", s.HitsCommon,
		"hits_rare", s.HitsRare,
		"catch_rate", s.CatchRate,
		"lifetime_mean", s.LifetimeMean,
		"lifetime_p10", s.LifetimeP10,
		"lifetime_p50", s.LifetimeP50,
		"lifetime_p90", s.LifetimeP90,
		"eating_frac", s.EatingFrac,
	)
}
