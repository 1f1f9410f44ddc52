package components

import (
	"math"
	"time"
)

// TimerMode selects whether a Timer fires once or repeats.
type TimerMode uint8

const (
	TimerOnce      TimerMode = iota // Saturates at zero remaining until Reset
	TimerRepeating                  // Wraps around and counts completions
)

// Timer is a monotonic countdown advanced by simulation time.
// A one-shot timer never reschedules itself; the owner calls Reset.
type Timer struct {
	Duration time.Duration
	Elapsed  time.Duration
	Mode     TimerMode

	completions int // total wraps (repeating only)
	lastFired   int // wraps during the most recent Tick
}

// NewTimer creates a timer with zero elapsed time.
func NewTimer(d time.Duration, mode TimerMode) Timer {
	if d < 0 {
		d = 0
	}
	return Timer{Duration: d, Mode: mode}
}

// NewFinishedTimer creates a one-shot timer that has already run out.
func NewFinishedTimer(d time.Duration) Timer {
	t := NewTimer(d, TimerOnce)
	t.Elapsed = t.Duration
	return t
}

// Tick advances the timer. Negative durations are ignored.
func (t *Timer) Tick(d time.Duration) {
	t.lastFired = 0
	if d <= 0 {
		return
	}

	if t.Mode == TimerRepeating && t.Duration > 0 {
		t.Elapsed += d
		for t.Elapsed >= t.Duration {
			t.Elapsed -= t.Duration
			t.completions++
			t.lastFired++
		}
		return
	}

	// One-shot: saturate so Remaining never goes negative
	t.Elapsed += d
	if t.Elapsed > t.Duration {
		t.Elapsed = t.Duration
	}
}

// Fired returns how many cycles a repeating timer completed during the
// most recent Tick.
func (t *Timer) Fired() int {
	return t.lastFired
}

// Remaining returns max(0, Duration-Elapsed).
func (t *Timer) Remaining() time.Duration {
	r := t.Duration - t.Elapsed
	if r < 0 {
		return 0
	}
	return r
}

// Finished reports whether a one-shot timer has run out, or whether a
// repeating timer completed a cycle during the last Tick.
func (t *Timer) Finished() bool {
	if t.Mode == TimerRepeating && t.Duration > 0 {
		return t.lastFired > 0
	}
	return t.Remaining() == 0
}

// Completions returns how many cycles a repeating timer has completed.
func (t *Timer) Completions() int {
	return t.completions
}

// Reset sets elapsed time back to zero.
func (t *Timer) Reset() {
	t.Elapsed = 0
	t.lastFired = 0
}

// Fraction returns elapsed/duration in [0, 1].
func (t *Timer) Fraction() float64 {
	if t.Duration <= 0 {
		return 1
	}
	return float64(t.Elapsed) / float64(t.Duration)
}

// TickAligned rounds d to the nearest whole number of dt ticks. A positive
// d is never shorter than one tick. A tick length truncated to nanoseconds
// (1s/60) would otherwise leave a timer one tick short of finishing.
func TickAligned(d, dt time.Duration) time.Duration {
	if d <= 0 || dt <= 0 {
		return d
	}
	n := math.Round(float64(d) / float64(dt))
	return time.Duration(max(n, 1)) * dt
}

// TickRate returns ticks per second for a tick of length dt. A dt that is
// 1s/N truncated to nanoseconds yields exactly N.
func TickRate(dt time.Duration) float64 {
	if dt <= 0 {
		return 0
	}
	r := float64(time.Second) / float64(dt)
	if n := math.Round(r); n > 0 && math.Abs(r-n) < 1e-6*n {
		return n
	}
	return r
}
