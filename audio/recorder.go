package audio

import (
	"sync"

	"github.com/pthm-cable/fishfeed/systems"
)

// Recorder is an in-memory sound sink. It keeps every cue in arrival order
// and is used for headless runs and tests.
type Recorder struct {
	mu      sync.Mutex
	effects []systems.SoundEffect
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Play records a cue.
func (r *Recorder) Play(effect systems.SoundEffect) {
	r.mu.Lock()
	r.effects = append(r.effects, effect)
	r.mu.Unlock()
}

// Effects returns a copy of the recorded cues.
func (r *Recorder) Effects() []systems.SoundEffect {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]systems.SoundEffect, len(r.effects))
	copy(out, r.effects)
	return out
}

// Count returns how many times effect was played.
func (r *Recorder) Count(effect systems.SoundEffect) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.effects {
		if e == effect {
			n++
		}
	}
	return n
}

// Reset forgets every recorded cue.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.effects = r.effects[:0]
	r.mu.Unlock()
}
