// Package audio synthesizes the simulation's sound cues with beep.
package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/pthm-cable/fishfeed/systems"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

// Cue timings
const (
	spawnDuration = 90 * time.Millisecond
	spawnAttack   = 5 * time.Millisecond
	spawnRelease  = 60 * time.Millisecond

	hitNoteDuration = 70 * time.Millisecond
	hitAttack       = 3 * time.Millisecond
	hitRelease      = 40 * time.Millisecond
)

// oscillator generates a fixed-length wave, optionally gliding in pitch.
type oscillator struct {
	freq     float64
	glide    float64 // Hz added per second
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a constant-pitch oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewGlide(freq, 0, duration, wave, rate)
}

// NewGlide creates an oscillator whose pitch changes linearly by glide Hz/s.
func NewGlide(freq, glide float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		glide:    glide,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewPCG(uint64(freq), uint64(duration))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq + o.glide*float64(o.position)/float64(o.rate)
		o.phase += math.Max(freq, 0) / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with an attack/release envelope over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if remaining := e.totalSamples - e.position; remaining < e.releaseSamples {
			vol = math.Min(vol, float64(remaining)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain. Zero or less is silent, since
// the log of zero is -Inf.
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// SpawnSound is a short falling "plop" for a dropped pellet.
func SpawnSound(rate beep.SampleRate) beep.Streamer {
	osc := NewGlide(620, -3200, spawnDuration, WaveSine, rate)
	return newVolume(NewEnvelope(osc, spawnDuration, spawnAttack, spawnRelease, rate), 0.8)
}

// HitSound is a two-note rising chirp for a fish catching a pellet.
func HitSound(rate beep.SampleRate) beep.Streamer {
	n1 := NewOscillator(523.25, hitNoteDuration, WaveTriangle, rate)
	n2 := NewOscillator(783.99, hitNoteDuration, WaveTriangle, rate)
	seq := beep.Seq(
		NewEnvelope(n1, hitNoteDuration, hitAttack, hitRelease, rate),
		NewEnvelope(n2, hitNoteDuration, hitAttack, hitRelease, rate),
	)
	return newVolume(seq, 0.7)
}

// EffectStreamer returns a fresh streamer for a sound cue, or nil if unknown.
func EffectStreamer(effect systems.SoundEffect, rate beep.SampleRate) beep.Streamer {
	switch effect {
	case systems.SoundSpawn:
		return SpawnSound(rate)
	case systems.SoundHit:
		return HitSound(rate)
	}
	return nil
}
