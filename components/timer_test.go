package components

import (
	"testing"
	"time"
)

func TestTimerOneShotSaturates(t *testing.T) {
	timer := NewTimer(time.Second, TimerOnce)

	timer.Tick(400 * time.Millisecond)
	if got := timer.Remaining(); got != 600*time.Millisecond {
		t.Errorf("Remaining = %v, want 600ms", got)
	}
	if timer.Finished() {
		t.Error("timer finished early")
	}

	timer.Tick(2 * time.Second)
	if got := timer.Remaining(); got != 0 {
		t.Errorf("Remaining = %v, want 0", got)
	}
	if !timer.Finished() {
		t.Error("timer should be finished")
	}

	// Stays finished without rescheduling
	timer.Tick(time.Second)
	if !timer.Finished() || timer.Remaining() != 0 {
		t.Error("one-shot timer should saturate at zero")
	}
	if timer.Elapsed > timer.Duration {
		t.Errorf("Elapsed %v exceeds Duration %v", timer.Elapsed, timer.Duration)
	}

	timer.Reset()
	if timer.Finished() {
		t.Error("timer finished after Reset")
	}
	if timer.Remaining() != time.Second {
		t.Errorf("Remaining after Reset = %v, want 1s", timer.Remaining())
	}
}

func TestTimerElapsedMonotonic(t *testing.T) {
	timer := NewTimer(5*time.Second, TimerOnce)
	prev := timer.Elapsed
	steps := []time.Duration{10 * time.Millisecond, 0, -time.Second, time.Second, 3 * time.Second, time.Second}
	for _, d := range steps {
		timer.Tick(d)
		if timer.Elapsed < prev {
			t.Fatalf("Elapsed decreased from %v to %v after Tick(%v)", prev, timer.Elapsed, d)
		}
		prev = timer.Elapsed
	}
}

func TestTimerExactBoundary(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  time.Duration
		finished bool
	}{
		{"exactly five seconds", 5 * time.Second, true},
		{"just under", 4999 * time.Millisecond, false},
		{"over", 6 * time.Second, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			timer := NewTimer(5*time.Second, TimerOnce)
			timer.Tick(tc.elapsed)
			if timer.Finished() != tc.finished {
				t.Errorf("Finished() = %v, want %v", timer.Finished(), tc.finished)
			}
		})
	}
}

func TestTimerRepeating(t *testing.T) {
	timer := NewTimer(time.Second, TimerRepeating)

	timer.Tick(700 * time.Millisecond)
	if timer.Finished() {
		t.Error("repeating timer fired early")
	}

	timer.Tick(700 * time.Millisecond)
	if !timer.Finished() {
		t.Error("repeating timer should fire on wrap")
	}
	if timer.Completions() != 1 {
		t.Errorf("Completions = %d, want 1", timer.Completions())
	}
	if timer.Elapsed != 400*time.Millisecond {
		t.Errorf("Elapsed = %v, want 400ms", timer.Elapsed)
	}

	timer.Tick(100 * time.Millisecond)
	if timer.Finished() {
		t.Error("Finished should only report the tick that wrapped")
	}

	timer.Tick(3 * time.Second)
	if timer.Completions() != 4 {
		t.Errorf("Completions = %d, want 4", timer.Completions())
	}
}

func TestNewFinishedTimer(t *testing.T) {
	timer := NewFinishedTimer(time.Second)
	if !timer.Finished() {
		t.Error("expected finished timer")
	}
	if timer.Fraction() != 1 {
		t.Errorf("Fraction = %v, want 1", timer.Fraction())
	}
}

func TestTimerFired(t *testing.T) {
	timer := NewTimer(100*time.Millisecond, TimerRepeating)

	timer.Tick(50 * time.Millisecond)
	if got := timer.Fired(); got != 0 {
		t.Errorf("Fired = %d, want 0", got)
	}
	timer.Tick(260 * time.Millisecond)
	if got := timer.Fired(); got != 3 {
		t.Errorf("Fired = %d, want 3", got)
	}
	if timer.Elapsed != 10*time.Millisecond {
		t.Errorf("Elapsed = %v, want 10ms carried over", timer.Elapsed)
	}
}

func TestTickAligned(t *testing.T) {
	sixty := time.Second / 60
	tests := []struct {
		name string
		d    time.Duration
		dt   time.Duration
		want time.Duration
	}{
		{"five seconds at 60Hz", 5 * time.Second, sixty, 300 * sixty},
		{"one second at 60Hz", time.Second, sixty, 60 * sixty},
		{"even division", time.Second, 250 * time.Millisecond, time.Second},
		{"rounds down", 1100 * time.Millisecond, 250 * time.Millisecond, time.Second},
		{"rounds up", 1200 * time.Millisecond, 250 * time.Millisecond, 1250 * time.Millisecond},
		{"at least one tick", time.Millisecond, sixty, sixty},
		{"zero stays zero", 0, sixty, 0},
		{"no tick length", time.Second, 0, time.Second},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TickAligned(tc.d, tc.dt); got != tc.want {
				t.Errorf("TickAligned(%v, %v) = %v, want %v", tc.d, tc.dt, got, tc.want)
			}
		})
	}
}

func TestTickAlignedTimerFinishesOnTime(t *testing.T) {
	dt := time.Second / 60
	timer := NewTimer(TickAligned(5*time.Second, dt), TimerOnce)
	for i := 1; i < 300; i++ {
		timer.Tick(dt)
		if timer.Finished() {
			t.Fatalf("finished after %d ticks, want 300", i)
		}
	}
	timer.Tick(dt)
	if !timer.Finished() {
		t.Error("not finished after 300 ticks")
	}
}

func TestTickRate(t *testing.T) {
	tests := []struct {
		dt   time.Duration
		want float64
	}{
		{time.Second / 60, 60},
		{time.Second / 144, 144},
		{20 * time.Millisecond, 50},
		{250 * time.Millisecond, 4},
		{0, 0},
	}

	for _, tc := range tests {
		if got := TickRate(tc.dt); got != tc.want {
			t.Errorf("TickRate(%v) = %v, want %v", tc.dt, got, tc.want)
		}
	}
}
