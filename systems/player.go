package systems

import (
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/fishfeed/components"
	"github.com/pthm-cable/fishfeed/config"
)

// InputKind distinguishes pointer events.
type InputKind uint8

const (
	InputPress InputKind = iota
	InputMove
)

// InputEvent is a decoded pointer event. Events are drained once per tick
// in arrival order.
type InputEvent struct {
	Kind    InputKind
	Pressed bool // press events only; false for a release
	ScreenX float64
	ScreenY float64
}

// PressEvent returns a press (or release) event.
func PressEvent(pressed bool) InputEvent {
	return InputEvent{Kind: InputPress, Pressed: pressed}
}

// MoveEvent returns a pointer-move event at a screen coordinate.
func MoveEvent(sx, sy float64) InputEvent {
	return InputEvent{Kind: InputMove, ScreenX: sx, ScreenY: sy}
}

// ScreenToPlayfield maps screen coordinates into playfield space.
// ok is false when the point cannot be mapped.
type ScreenToPlayfield interface {
	ScreenToPlayfield(sx, sy float64) (x, y float64, ok bool)
}

// IdentityTransform treats screen coordinates as playfield coordinates.
type IdentityTransform struct{}

// ScreenToPlayfield implements ScreenToPlayfield.
func (IdentityTransform) ScreenToPlayfield(sx, sy float64) (float64, float64, bool) {
	return sx, sy, true
}

// PlayerSystem turns pointer input into dispenser movement and pellet spawns.
type PlayerSystem struct {
	world  *ecs.World
	mapper *ecs.Map2[components.Position, components.Player]

	field     config.PlayfieldConfig
	cooldown  time.Duration
	transform ScreenToPlayfield

	player ecs.Entity
	alive  bool
}

// NewPlayerSystem creates a player system. A nil transform means identity.
func NewPlayerSystem(w *ecs.World, field config.PlayfieldConfig, cooldown time.Duration, transform ScreenToPlayfield) *PlayerSystem {
	if transform == nil {
		transform = IdentityTransform{}
	}
	return &PlayerSystem{
		world:     w,
		mapper:    ecs.NewMap2[components.Position, components.Player](w),
		field:     field,
		cooldown:  cooldown,
		transform: transform,
	}
}

// SetTransform replaces the screen-to-playfield mapping.
func (s *PlayerSystem) SetTransform(t ScreenToPlayfield) {
	if t == nil {
		t = IdentityTransform{}
	}
	s.transform = t
}

// Spawn creates the player at pos, replacing any existing one.
// The cooldown starts finished so the first press spawns immediately.
func (s *PlayerSystem) Spawn(pos components.Position) ecs.Entity {
	s.Clear()
	player := components.Player{Cooldown: components.NewFinishedTimer(s.cooldown)}
	s.player = s.mapper.NewEntity(&pos, &player)
	s.alive = true
	return s.player
}

// Position returns the player's position, if a player exists.
func (s *PlayerSystem) Position() (components.Position, bool) {
	if !s.alive || !s.world.Alive(s.player) {
		return components.Position{}, false
	}
	pos, _ := s.mapper.Get(s.player)
	return *pos, true
}

// Cooldown returns the player's spawn cooldown timer, if a player exists.
func (s *PlayerSystem) Cooldown() (components.Timer, bool) {
	if !s.alive || !s.world.Alive(s.player) {
		return components.Timer{}, false
	}
	_, player := s.mapper.Get(s.player)
	return player.Cooldown, true
}

// Update ticks the cooldown and processes events in order. At most one
// pellet is spawned per tick. It returns whether a pellet was spawned.
func (s *PlayerSystem) Update(ctx *Context, events []InputEvent, pellets *PelletSystem) bool {
	if !s.alive || !s.world.Alive(s.player) {
		return false
	}
	pos, player := s.mapper.Get(s.player)
	player.Cooldown.Tick(ctx.DT)

	spawned := false
	var spawnAt components.Position

	for _, ev := range events {
		switch ev.Kind {
		case InputPress:
			if spawned || !ev.Pressed || !player.Cooldown.Finished() {
				continue
			}
			spawned = true
			spawnAt = *pos
			player.Cooldown = components.NewTimer(components.TickAligned(s.cooldown, ctx.DT), components.TimerOnce)

		case InputMove:
			x, _, ok := s.transform.ScreenToPlayfield(ev.ScreenX, ev.ScreenY)
			if !ok || x < s.field.Left || x > s.field.Right {
				continue
			}
			pos.X = x
		}
	}

	if spawned {
		pellets.Spawn(spawnAt, ctx.Tick)
		ctx.play(SoundSpawn)
	}
	return spawned
}

// Clear removes the player.
func (s *PlayerSystem) Clear() {
	if s.alive && s.world.Alive(s.player) {
		s.world.RemoveEntity(s.player)
	}
	s.alive = false
}
