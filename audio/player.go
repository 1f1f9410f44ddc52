package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/fishfeed/systems"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// Player mixes fire-and-forget sound cues under a master volume.
// It implements systems.SoundSink.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      *effects.Volume
	volume      float64
	muted       bool
	initialized bool // speaker is pulling from master
	played      [2]int
}

// NewPlayer creates a player with the given linear master volume.
// Cues are mixed but not audible until Init.
func NewPlayer(volume float64) *Player {
	mixer := &beep.Mixer{}
	p := &Player{
		mixer:  mixer,
		master: newVolume(mixer, 1),
	}
	p.SetVolume(volume)
	return p
}

// Init opens the output device and starts playback.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.master)
	p.initialized = true
	return nil
}

// Play queues a cue. Unknown cues and muted playback are dropped.
func (p *Player) Play(effect systems.SoundEffect) {
	s := EffectStreamer(effect, sampleRate)
	if s == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.muted {
		return
	}
	if int(effect) < len(p.played) {
		p.played[effect]++
	}
	p.withSpeaker(func() { p.mixer.Add(s) })
}

// SetVolume sets the linear master volume, clamped to [0, 1].
func (p *Player) SetVolume(v float64) {
	v = math.Max(0, math.Min(1, v))

	p.mu.Lock()
	defer p.mu.Unlock()

	p.volume = v
	p.withSpeaker(p.applyVolume)
}

// Volume returns the linear master volume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// SetMuted silences output and drops new cues while muted.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = muted
	p.withSpeaker(func() {
		if muted {
			p.mixer.Clear()
		}
		p.applyVolume()
	})
}

// Muted reports whether output is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Played returns how many cues of a kind have been queued.
func (p *Player) Played(effect systems.SoundEffect) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if int(effect) >= len(p.played) {
		return 0
	}
	return p.played[effect]
}

// Active returns the number of cues still sounding.
func (p *Player) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	p.withSpeaker(func() { n = p.mixer.Len() })
	return n
}

// Close stops all cues. The device stays open for the process lifetime.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.withSpeaker(p.mixer.Clear)
}

// applyVolume maps the linear volume onto the base-2 volume effect.
func (p *Player) applyVolume() {
	if p.muted || p.volume <= 0 {
		p.master.Silent = true
		p.master.Volume = 0
		return
	}
	p.master.Silent = false
	p.master.Volume = math.Log2(p.volume)
}

// withSpeaker runs fn while holding the speaker lock, if playback started.
// Caller holds p.mu.
func (p *Player) withSpeaker(fn func()) {
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}
