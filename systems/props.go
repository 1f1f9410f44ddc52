package systems

import (
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/fishfeed/components"
)

// PropSystem cycles the visual frame of decorative props.
type PropSystem struct {
	world  *ecs.World
	mapper *ecs.Map2[components.Position, components.Prop]
	filter *ecs.Filter2[components.Position, components.Prop]

	toRemove []ecs.Entity
}

// NewPropSystem creates a prop system.
func NewPropSystem(w *ecs.World) *PropSystem {
	return &PropSystem{
		world:  w,
		mapper: ecs.NewMap2[components.Position, components.Prop](w),
		filter: ecs.NewFilter2[components.Position, components.Prop](w),
	}
}

// Spawn places a prop at pos showing frame 0.
func (s *PropSystem) Spawn(pos components.Position, family string, frameCount int, cycle time.Duration) ecs.Entity {
	prop := components.Prop{
		Family:     family,
		FrameCount: max(frameCount, 1),
		Period:     cycle,
		Cycle:      components.NewTimer(cycle, components.TimerRepeating),
	}
	return s.mapper.NewEntity(&pos, &prop)
}

// Update advances every prop's cycle timer, stepping the frame once per
// completed cycle. Overshoot carries into the next cycle.
func (s *PropSystem) Update(dt time.Duration) {
	query := s.filter.Query()
	for query.Next() {
		_, prop := query.Get()
		prop.Cycle.Duration = components.TickAligned(prop.Period, dt)
		prop.Cycle.Tick(dt)
		if n := prop.Cycle.Fired(); n > 0 {
			prop.Frame = (prop.Frame + n) % prop.FrameCount
		}
	}
}

// Count returns the number of props.
func (s *PropSystem) Count() int {
	n := 0
	query := s.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Clear removes all props.
func (s *PropSystem) Clear() {
	s.toRemove = s.toRemove[:0]
	query := s.filter.Query()
	for query.Next() {
		s.toRemove = append(s.toRemove, query.Entity())
	}
	for _, e := range s.toRemove {
		s.world.RemoveEntity(e)
	}
}
