package systems

import (
	"slices"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/fishfeed/components"
	"github.com/pthm-cable/fishfeed/config"
)

// FishParams holds the tunables of the fish state machine.
type FishParams struct {
	SlowSpeed      float64 // units per tick
	FastSpeed      float64 // units per tick
	HitRadius      float64
	AlertRadius    float64
	EatingDuration time.Duration
}

// FishParamsFromConfig extracts fish parameters from the loaded config.
func FishParamsFromConfig(cfg *config.Config) FishParams {
	return FishParams{
		SlowSpeed:      cfg.Fish.SlowSpeed,
		FastSpeed:      cfg.Fish.FastSpeed,
		HitRadius:      cfg.Fish.HitRadius,
		AlertRadius:    cfg.Fish.AlertRadius,
		EatingDuration: cfg.Derived.EatingDuration,
	}
}

// scanRadius is the widest radius a fish needs to look at.
func (p FishParams) scanRadius() float64 {
	return max(p.HitRadius, p.AlertRadius)
}

// Sense is everything a fish perceived during one tick.
type Sense struct {
	Hit        bool // a pellet was within hit radius and consumed
	Alert      bool // a pellet was within alert radius
	EatingDone bool // the eating timer has run out
	Crossed    bool // the post-move position is at or past the bound ahead
}

// Transition returns the next state. Every (state, sense) pair maps to
// exactly one state; a hit outranks a boundary crossing.
func Transition(s components.FishState, in Sense) components.FishState {
	switch s {
	case components.StateIdle:
		if in.Hit {
			return components.StateEatingLeft
		}
		return components.StateSlowLeft

	case components.StateSlowLeft, components.StateFastLeft:
		switch {
		case in.Hit:
			return components.StateEatingLeft
		case in.Crossed:
			return components.StateSlowRight
		case in.Alert:
			return components.StateFastLeft
		}
		return components.StateSlowLeft

	case components.StateSlowRight, components.StateFastRight:
		switch {
		case in.Hit:
			return components.StateEatingRight
		case in.Crossed:
			return components.StateSlowLeft
		case in.Alert:
			return components.StateFastRight
		}
		return components.StateSlowRight

	case components.StateEatingLeft:
		if in.EatingDone {
			return components.StateSlowLeft
		}
		return components.StateEatingLeft

	case components.StateEatingRight:
		if in.EatingDone {
			return components.StateSlowRight
		}
		return components.StateEatingRight
	}
	return components.StateIdle
}

// Displacement returns the signed horizontal move for one tick in state s.
func Displacement(s components.FishState, p FishParams) float64 {
	switch s {
	case components.StateSlowLeft:
		return -p.SlowSpeed
	case components.StateFastLeft:
		return -p.FastSpeed
	case components.StateSlowRight:
		return p.SlowSpeed
	case components.StateFastRight:
		return p.FastSpeed
	}
	return 0
}

// Hit records a pellet consumed by a fish.
type Hit struct {
	FishID  uint32
	Variant components.Variant
	Pellet  PelletView
}

// fishRef pairs an entity with its stable fish ID for ordering.
type fishRef struct {
	e  ecs.Entity
	id uint32
}

// FishSystem runs one state machine per fish.
// Fish are evaluated in ascending ID order, so when two fish reach the same
// pellet in one tick the lower ID consumes it.
type FishSystem struct {
	world  *ecs.World
	mapper *ecs.Map2[components.Position, components.Fish]
	filter *ecs.Filter2[components.Position, components.Fish]

	params FishParams
	field  config.PlayfieldConfig
	nextID uint32

	order     []fishRef
	neighbors []Neighbor
	hits      []Hit

	pool *fishPool // nil when parallel evaluation is disabled
}

// NewFishSystem creates a fish system.
func NewFishSystem(w *ecs.World, params FishParams, field config.PlayfieldConfig) *FishSystem {
	return &FishSystem{
		world:     w,
		mapper:    ecs.NewMap2[components.Position, components.Fish](w),
		filter:    ecs.NewFilter2[components.Position, components.Fish](w),
		params:    params,
		field:     field,
		neighbors: make([]Neighbor, 0, 16),
	}
}

// EnableParallel evaluates pellet proximity on a worker pool once the fish
// count reaches threshold. Consumption is still arbitrated in ID order.
func (s *FishSystem) EnableParallel(threshold int) {
	if s.pool == nil {
		s.pool = newFishPool(threshold)
	}
}

// Close stops any worker goroutines.
func (s *FishSystem) Close() {
	if s.pool != nil {
		s.pool.stopWorkers()
	}
}

// Spawn creates an idle fish at pos.
func (s *FishSystem) Spawn(pos components.Position, variant components.Variant) ecs.Entity {
	fish := components.Fish{
		ID:      s.nextID,
		State:   components.StateIdle,
		Eating:  components.NewTimer(s.params.EatingDuration, components.TimerOnce),
		Variant: variant,
	}
	s.nextID++
	return s.mapper.NewEntity(&pos, &fish)
}

// Update advances every fish by one tick against the pellet snapshot.
// Consumed pellets are only marked; the caller removes them afterwards.
// The returned slice is reused by the next call.
func (s *FishSystem) Update(ctx *Context, pellets *PelletSystem) []Hit {
	s.hits = s.hits[:0]
	s.collect()

	if s.pool != nil && len(s.order) >= s.pool.threshold {
		s.updateParallel(ctx, pellets)
		return s.hits
	}

	for _, ref := range s.order {
		pos, fish := s.mapper.Get(ref.e)
		hitIdx, alert := -1, false
		if !fish.State.Eating() {
			hitIdx, alert = s.sense(*pos, pellets)
		}
		s.apply(ctx, pos, fish, hitIdx, alert, pellets)
	}
	return s.hits
}

// collect gathers fish handles sorted by ID.
func (s *FishSystem) collect() {
	s.order = s.order[:0]
	query := s.filter.Query()
	for query.Next() {
		_, fish := query.Get()
		s.order = append(s.order, fishRef{e: query.Entity(), id: fish.ID})
	}
	slices.SortFunc(s.order, func(a, b fishRef) int {
		switch {
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		}
		return 0
	})
}

// sense scans unconsumed pellets near pos. It returns the oldest pellet in
// hit range (or -1) and whether any pellet is in alert range.
func (s *FishSystem) sense(pos components.Position, pellets *PelletSystem) (hitIdx int, alert bool) {
	live := pellets.Live()
	s.neighbors = pellets.Grid().QueryRadiusInto(s.neighbors[:0], pos, s.params.scanRadius(), live)

	hitIdx = -1
	for _, n := range s.neighbors {
		p := &live[n.Index]
		if p.Consumed {
			continue
		}
		if Within(pos, p.Pos, s.params.HitRadius) {
			if hitIdx < 0 || n.Index < hitIdx {
				hitIdx = n.Index
			}
			continue
		}
		if Within(pos, p.Pos, s.params.AlertRadius) {
			alert = true
		}
	}
	return hitIdx, alert
}

// apply runs one tick of the state machine for a single fish. State, timer
// and position are computed on copies and written back together.
func (s *FishSystem) apply(ctx *Context, pos *components.Position, fish *components.Fish, hitIdx int, alert bool, pellets *PelletSystem) {
	f := *fish
	p := *pos

	f.Eating.Tick(ctx.DT)

	switch {
	case f.State.Eating():
		f.State = Transition(f.State, Sense{EatingDone: f.Eating.Finished()})

	case hitIdx >= 0 && pellets.Consume(hitIdx):
		f.Eating = components.NewTimer(components.TickAligned(s.params.EatingDuration, ctx.DT), components.TimerOnce)
		f.State = Transition(f.State, Sense{Hit: true})
		s.hits = append(s.hits, Hit{FishID: f.ID, Variant: f.Variant, Pellet: pellets.Live()[hitIdx]})
		ctx.play(SoundHit)

	default:
		p.X += Displacement(f.State, s.params)
		crossed := false
		switch f.State {
		case components.StateSlowLeft, components.StateFastLeft:
			crossed = p.X <= s.field.Left
		case components.StateSlowRight, components.StateFastRight:
			crossed = p.X >= s.field.Right
		}
		f.State = Transition(f.State, Sense{Alert: alert, Crossed: crossed})
	}

	*pos = p
	*fish = f
}

// Count returns the number of fish in the world.
func (s *FishSystem) Count() int {
	n := 0
	query := s.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// StateCounts tallies fish per state, indexed by FishState.
func (s *FishSystem) StateCounts() []int {
	counts := make([]int, components.FishStateCount())
	query := s.filter.Query()
	for query.Next() {
		_, fish := query.Get()
		if fish.State.Valid() {
			counts[fish.State]++
		}
	}
	return counts
}

// Clear removes all fish and restarts ID assignment.
func (s *FishSystem) Clear() {
	s.order = s.order[:0]
	query := s.filter.Query()
	for query.Next() {
		s.order = append(s.order, fishRef{e: query.Entity()})
	}
	for _, ref := range s.order {
		s.world.RemoveEntity(ref.e)
	}
	s.order = s.order[:0]
	s.nextID = 0
}
