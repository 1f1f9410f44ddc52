package telemetry

import (
	"time"

	"github.com/pthm-cable/fishfeed/components"
)

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	window components.Timer // repeating; fires once per window
	dt     time.Duration

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	pelletsSpawned  int
	pelletsConsumed int
	pelletsPruned   int
	hitsCommon      int
	hitsRare        int
	lifetimes       []float64 // seconds

	// Fish-ticks per state
	occupancy []int
}

// NewCollector creates a new stats collector.
// window: simulation time per stats window
// dt: duration of one tick (used for tick-to-time conversion)
func NewCollector(window, dt time.Duration) *Collector {
	window = components.TickAligned(max(window, dt), dt)
	return &Collector{
		window:    components.NewTimer(window, components.TimerRepeating),
		dt:        dt,
		occupancy: make([]int, components.FishStateCount()),
	}
}

// RecordSpawn records a pellet dropped by the player.
func (c *Collector) RecordSpawn() {
	c.pelletsSpawned++
}

// RecordHit records a pellet consumed by a fish.
func (c *Collector) RecordHit(e HitEvent) {
	c.pelletsConsumed++
	if e.Rare() {
		c.hitsRare++
	} else {
		c.hitsCommon++
	}
	c.lifetimes = append(c.lifetimes, float64(e.LifetimeTicks)/components.TickRate(c.dt))
}

// RecordPrune records pellets that fell out of the playfield.
func (c *Collector) RecordPrune(n int) {
	c.pelletsPruned += n
}

// RecordStates adds one tick of state occupancy, indexed by FishState.
func (c *Collector) RecordStates(counts []int) {
	for i, n := range counts {
		if i < len(c.occupancy) {
			c.occupancy[i] += n
		}
	}
}

// Advance moves the window clock by one tick and reports whether the
// window is complete and should be flushed.
func (c *Collector) Advance() bool {
	c.window.Tick(c.dt)
	return c.window.Finished()
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, fishCount, pelletCount int) WindowStats {
	var catchRate float64
	if settled := c.pelletsConsumed + c.pelletsPruned; settled > 0 {
		catchRate = float64(c.pelletsConsumed) / float64(settled)
	}

	mean, std, p10, p50, p90 := ComputeLifetimeStats(c.lifetimes)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) / components.TickRate(c.dt),

		FishCount:   fishCount,
		PelletCount: pelletCount,

		PelletsSpawned:  c.pelletsSpawned,
		PelletsConsumed: c.pelletsConsumed,
		PelletsPruned:   c.pelletsPruned,
		HitsCommon:      c.hitsCommon,
		HitsRare:        c.hitsRare,
		CatchRate:       catchRate,

		LifetimeMean: mean,
		LifetimeStd:  std,
		LifetimeP10:  p10,
		LifetimeP50:  p50,
		LifetimeP90:  p90,
	}
	c.fillOccupancy(&stats)

	// Reset for next window
	c.windowStartTick = currentTick
	c.pelletsSpawned = 0
	c.pelletsConsumed = 0
	c.pelletsPruned = 0
	c.hitsCommon = 0
	c.hitsRare = 0
	c.lifetimes = c.lifetimes[:0]
	clear(c.occupancy)

	return stats
}

func (c *Collector) fillOccupancy(s *WindowStats) {
	total := 0
	for _, n := range c.occupancy {
		total += n
	}
	if total == 0 {
		return
	}
	frac := func(states ...components.FishState) float64 {
		n := 0
		for _, st := range states {
			n += c.occupancy[st]
		}
		return float64(n) / float64(total)
	}
	s.IdleFrac = frac(components.StateIdle)
	s.SlowFrac = frac(components.StateSlowLeft, components.StateSlowRight)
	s.FastFrac = frac(components.StateFastLeft, components.StateFastRight)
	s.EatingFrac = frac(components.StateEatingLeft, components.StateEatingRight)
}

// WindowDuration returns the simulation time per window.
func (c *Collector) WindowDuration() time.Duration {
	return c.window.Duration
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	if c.dt <= 0 {
		return 1
	}
	return int32((c.window.Duration + c.dt - 1) / c.dt)
}
