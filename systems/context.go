// Package systems provides ECS systems for the simulation.
package systems

import "time"

// SoundEffect identifies a fire-and-forget sound cue.
type SoundEffect uint8

const (
	SoundSpawn SoundEffect = iota // pellet dropped by the player
	SoundHit                      // fish caught a pellet
)

// String returns the effect name.
func (e SoundEffect) String() string {
	switch e {
	case SoundSpawn:
		return "spawn"
	case SoundHit:
		return "hit"
	}
	return "unknown"
}

// SoundSink receives sound cues. Implementations must not block the tick.
type SoundSink interface {
	Play(effect SoundEffect)
}

// Context carries the per-tick parameters threaded into every system.
type Context struct {
	Tick  int32
	DT    time.Duration
	Sound SoundSink
}

// play forwards a sound cue if a sink is attached.
func (c *Context) play(effect SoundEffect) {
	if c.Sound != nil {
		c.Sound.Play(effect)
	}
}
