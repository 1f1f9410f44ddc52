// Package telemetry provides feeding statistics, per-fish meal tracking and
// performance timing, with CSV output.
package telemetry

import (
	"github.com/pthm-cable/fishfeed/components"
	"github.com/pthm-cable/fishfeed/systems"
)

// HitEvent is one pellet caught by one fish, written to hits.csv.
type HitEvent struct {
	Tick          int32   `csv:"tick"`
	FishID        uint32  `csv:"fish_id"`
	Variant       string  `csv:"variant"`
	PelletSeq     uint64  `csv:"pellet_seq"`
	LifetimeTicks int32   `csv:"lifetime_ticks"` // ticks between spawn and catch
	X             float64 `csv:"x"`
	Y             float64 `csv:"y"`
}

// NewHitEvent creates a hit event from a fish system hit.
func NewHitEvent(tick int32, hit systems.Hit) HitEvent {
	return HitEvent{
		Tick:          tick,
		FishID:        hit.FishID,
		Variant:       hit.Variant.String(),
		PelletSeq:     hit.Pellet.Seq,
		LifetimeTicks: tick - hit.Pellet.SpawnTick,
		X:             hit.Pellet.Pos.X,
		Y:             hit.Pellet.Pos.Y,
	}
}

// Rare reports whether the catching fish was the rare variant.
func (e HitEvent) Rare() bool {
	return e.Variant == components.VariantRare.String()
}
