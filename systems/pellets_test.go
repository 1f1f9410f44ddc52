package systems

import (
	"testing"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/fishfeed/components"
)

func TestPelletPrunedAfterCeilTicks(t *testing.T) {
	// 8 units/s at 250ms per tick is exactly 2 units per tick
	tests := []struct {
		name  string
		y0    float64
		ticks int
	}{
		{"uneven", 101, 51},
		{"exact multiple", 100, 50},
		{"one step", 1.5, 1},
		{"on floor", 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			ps := NewPelletSystem(w, testField, 8, 48)
			ps.Spawn(components.Position{X: 10, Y: tc.y0}, 0)

			ticks := 0
			for ps.PruneOutOfBounds() == 0 {
				ps.AdvanceAll(250 * time.Millisecond)
				ticks++
				if ticks > 1000 {
					t.Fatal("pellet never pruned")
				}
			}
			if ticks != tc.ticks {
				t.Errorf("pruned after %d ticks, want %d", ticks, tc.ticks)
			}
			if ps.Count() != 0 {
				t.Errorf("Count = %d after prune, want 0", ps.Count())
			}
		})
	}
}

func TestPelletPruneAtTickRate(t *testing.T) {
	tests := []struct {
		name  string
		y0    float64
		fall  float64
		dt    time.Duration
		ticks int
	}{
		{"60Hz exact", 200, 30, time.Second / 60, 400},
		{"60Hz uneven", 100, 45, time.Second / 60, 134},
		{"144Hz", 72, 36, time.Second / 144, 288},
		{"50Hz", 100, 50, 20 * time.Millisecond, 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			ps := NewPelletSystem(w, testField, tc.fall, 48)
			ps.Spawn(components.Position{X: 10, Y: tc.y0}, 0)

			ticks := 0
			for ps.PruneOutOfBounds() == 0 {
				ps.AdvanceAll(tc.dt)
				ticks++
				if ticks > 10*tc.ticks {
					t.Fatal("pellet never pruned")
				}
			}
			if ticks != tc.ticks {
				t.Errorf("pruned after %d ticks, want %d", ticks, tc.ticks)
			}
		})
	}
}

func TestPelletAdvanceTracksFallen(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPelletSystem(w, testField, 8, 48)
	e := ps.Spawn(components.Position{X: 10, Y: 100}, 3)

	for i := 0; i < 4; i++ {
		ps.AdvanceAll(250 * time.Millisecond)
	}

	pos, pellet := ps.mapper.Get(e)
	if pos.Y != 92 {
		t.Errorf("Y = %v, want 92", pos.Y)
	}
	if pellet.Fallen != 8 {
		t.Errorf("Fallen = %v, want 8", pellet.Fallen)
	}
	if pellet.SpawnTick != 3 {
		t.Errorf("SpawnTick = %d, want 3", pellet.SpawnTick)
	}
}

func TestPelletRefreshOrdersBySeq(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPelletSystem(w, testField, 0, 48)

	var spawned []ecs.Entity
	for i := 0; i < 6; i++ {
		spawned = append(spawned, ps.Spawn(components.Position{X: float64(i * 50), Y: 100}, 0))
	}
	// Removal shuffles archetype storage
	ps.Despawn(spawned[1])
	ps.Despawn(spawned[3])

	ps.Refresh()
	live := ps.Live()
	if len(live) != 4 {
		t.Fatalf("live = %d, want 4", len(live))
	}
	for i := 1; i < len(live); i++ {
		if live[i-1].Seq >= live[i].Seq {
			t.Errorf("snapshot not ordered: seq %d before %d", live[i-1].Seq, live[i].Seq)
		}
	}
}

func TestPelletConsumeFirstClaim(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPelletSystem(w, testField, 0, 48)
	a := ps.Spawn(components.Position{X: 10, Y: 100}, 0)
	b := ps.Spawn(components.Position{X: 20, Y: 100}, 0)
	ps.Refresh()

	if !ps.Consume(0) {
		t.Fatal("first claim failed")
	}
	if ps.Consume(0) {
		t.Error("second claim on the same pellet succeeded")
	}
	if ps.Consume(5) || ps.Consume(-1) {
		t.Error("out-of-range claim succeeded")
	}

	removed := ps.RemoveConsumed()
	if len(removed) != 1 || removed[0].Entity != a {
		t.Fatalf("removed = %+v, want only the first pellet", removed)
	}
	if w.Alive(a) || !w.Alive(b) {
		t.Error("wrong pellet despawned")
	}
	if got := len(ps.Live()); got != 1 {
		t.Errorf("live after removal = %d, want 1", got)
	}
}

func TestPelletDespawn(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPelletSystem(w, testField, 0, 48)
	fish := NewFishSystem(w, testParams(), testField)
	e := ps.Spawn(components.Position{X: 10, Y: 100}, 0)
	f := fish.Spawn(components.Position{X: 10, Y: 100}, components.VariantCommon)

	if !ps.Despawn(e) {
		t.Error("Despawn of live pellet returned false")
	}
	if ps.Despawn(e) {
		t.Error("Despawn of dead pellet returned true")
	}
	if ps.Despawn(f) {
		t.Error("Despawn removed a non-pellet entity")
	}
	if !w.Alive(f) {
		t.Error("fish entity removed")
	}
}

func TestPelletClear(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPelletSystem(w, testField, 0, 48)
	for i := 0; i < 10; i++ {
		ps.Spawn(components.Position{X: float64(i), Y: 50}, 0)
	}
	ps.Refresh()
	ps.Clear()

	if ps.Count() != 0 || len(ps.Live()) != 0 {
		t.Errorf("after Clear: count %d live %d", ps.Count(), len(ps.Live()))
	}
}
