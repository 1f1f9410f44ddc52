package systems

import (
	"slices"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/fishfeed/components"
	"github.com/pthm-cable/fishfeed/config"
)

// PelletView is a per-tick snapshot of one live pellet.
type PelletView struct {
	Entity    ecs.Entity
	Pos       components.Position
	Seq       uint64
	SpawnTick int32
	Consumed  bool // claimed by a fish this tick
}

// PelletSystem spawns, advances and removes falling pellets.
type PelletSystem struct {
	world     *ecs.World
	mapper    *ecs.Map2[components.Position, components.Pellet]
	filter    *ecs.Filter2[components.Position, components.Pellet]
	pelletMap *ecs.Map[components.Pellet]

	field     config.PlayfieldConfig
	fallSpeed float64 // units per second
	nextSeq   uint64

	// Snapshot rebuilt by Refresh, ordered by Seq
	live []PelletView
	grid *PelletGrid

	toRemove []ecs.Entity
	removed  []PelletView
}

// NewPelletSystem creates a pellet system.
func NewPelletSystem(w *ecs.World, field config.PlayfieldConfig, fallSpeed, cellSize float64) *PelletSystem {
	return &PelletSystem{
		world:     w,
		mapper:    ecs.NewMap2[components.Position, components.Pellet](w),
		filter:    ecs.NewFilter2[components.Position, components.Pellet](w),
		pelletMap: ecs.NewMap[components.Pellet](w),
		field:     field,
		fallSpeed: fallSpeed,
		grid:      NewPelletGrid(field, cellSize),
	}
}

// Spawn creates a pellet at pos with zero fall distance.
func (s *PelletSystem) Spawn(pos components.Position, tick int32) ecs.Entity {
	pellet := components.Pellet{Seq: s.nextSeq, SpawnTick: tick}
	s.nextSeq++
	return s.mapper.NewEntity(&pos, &pellet)
}

// AdvanceAll moves every live pellet down by fallSpeed*dt. The step is
// derived from the tick rate so 1s/N ticks fall exactly fallSpeed/N.
func (s *PelletSystem) AdvanceAll(dt time.Duration) {
	if dt <= 0 {
		return
	}
	dy := s.fallSpeed / components.TickRate(dt)
	if dy <= 0 {
		return
	}

	query := s.filter.Query()
	for query.Next() {
		pos, pellet := query.Get()
		pos.Y -= dy
		pellet.Fallen += dy
	}
}

// PruneOutOfBounds removes pellets that reached the floor and returns how many.
// A pellet exactly at the floor counts as having left the playfield.
func (s *PelletSystem) PruneOutOfBounds() int {
	s.toRemove = s.toRemove[:0]

	query := s.filter.Query()
	for query.Next() {
		pos, _ := query.Get()
		if pos.Y <= s.field.Floor {
			s.toRemove = append(s.toRemove, query.Entity())
		}
	}

	// Remove after iteration; the world is locked while a query is open
	for _, e := range s.toRemove {
		s.world.RemoveEntity(e)
	}
	return len(s.toRemove)
}

// Despawn removes a specific pellet. Returns false if e is not a live pellet.
func (s *PelletSystem) Despawn(e ecs.Entity) bool {
	if !s.world.Alive(e) || !s.pelletMap.Has(e) {
		return false
	}
	s.world.RemoveEntity(e)
	return true
}

// Refresh rebuilds the ordered snapshot and proximity grid from the world.
// Call after AdvanceAll and PruneOutOfBounds so fish see post-fall positions.
func (s *PelletSystem) Refresh() {
	s.live = s.live[:0]

	query := s.filter.Query()
	for query.Next() {
		pos, pellet := query.Get()
		s.live = append(s.live, PelletView{
			Entity:    query.Entity(),
			Pos:       *pos,
			Seq:       pellet.Seq,
			SpawnTick: pellet.SpawnTick,
		})
	}

	// Archetype storage order shifts on removal; Seq gives a stable order
	slices.SortFunc(s.live, func(a, b PelletView) int {
		switch {
		case a.Seq < b.Seq:
			return -1
		case a.Seq > b.Seq:
			return 1
		}
		return 0
	})

	s.grid.Clear()
	for i := range s.live {
		s.grid.Insert(i, s.live[i].Pos)
	}
}

// Live returns the current snapshot, ordered by spawn sequence.
func (s *PelletSystem) Live() []PelletView {
	return s.live
}

// Grid returns the proximity grid built by the last Refresh.
func (s *PelletSystem) Grid() *PelletGrid {
	return s.grid
}

// Consume claims the snapshot pellet at idx. Exactly one caller per tick
// succeeds; later claims on the same pellet return false.
func (s *PelletSystem) Consume(idx int) bool {
	if idx < 0 || idx >= len(s.live) || s.live[idx].Consumed {
		return false
	}
	s.live[idx].Consumed = true
	return true
}

// RemoveConsumed despawns every pellet claimed this tick and returns them.
// The returned slice is reused by the next call.
func (s *PelletSystem) RemoveConsumed() []PelletView {
	s.removed = s.removed[:0]
	kept := s.live[:0]
	for _, p := range s.live {
		if p.Consumed {
			if s.Despawn(p.Entity) {
				s.removed = append(s.removed, p)
			}
			continue
		}
		kept = append(kept, p)
	}
	s.live = kept

	if len(s.removed) > 0 {
		s.grid.Clear()
		for i := range s.live {
			s.grid.Insert(i, s.live[i].Pos)
		}
	}
	return s.removed
}

// Count returns the number of live pellets in the world.
func (s *PelletSystem) Count() int {
	n := 0
	query := s.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Clear removes all pellets and resets the snapshot.
func (s *PelletSystem) Clear() {
	s.toRemove = s.toRemove[:0]
	query := s.filter.Query()
	for query.Next() {
		s.toRemove = append(s.toRemove, query.Entity())
	}
	for _, e := range s.toRemove {
		s.world.RemoveEntity(e)
	}
	s.live = s.live[:0]
	s.grid.Clear()
}
