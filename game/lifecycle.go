package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/fishfeed/components"
	"github.com/pthm-cable/fishfeed/config"
	"github.com/pthm-cable/fishfeed/systems"
	"github.com/pthm-cable/fishfeed/telemetry"
)

// StartSession spawns every entity the level places and starts ticking.
// A running session is ended first. On error no entities remain.
func (g *Game) StartSession(level config.LevelConfig) error {
	if err := level.Validate(); err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	if g.inSession {
		g.EndSession()
	}

	g.buildSystems(level.Playfield)
	g.level = level
	g.tick = 0
	g.accum = 0

	for i, s := range level.Spawns {
		if err := g.spawn(s); err != nil {
			g.teardown()
			return fmt.Errorf("level %q spawn %d: %w", level.Name, i, err)
		}
	}

	g.inSession = true
	g.logSessionStart()
	return nil
}

// EndSession removes every entity and stops ticking. Meal totals are
// written to the output directory first.
func (g *Game) EndSession() {
	if !g.inSession {
		return
	}
	g.logSessionEnd()

	if err := g.outputManager.WriteMeals(g.meals.Top(g.meals.Count())); err != nil {
		slog.Error("failed to write meals", "error", err)
	}

	g.teardown()
}

// buildSystems creates the systems for a playfield.
func (g *Game) buildSystems(field config.PlayfieldConfig) {
	cfg := g.config()

	g.pellets = systems.NewPelletSystem(g.world, field, cfg.Pellet.FallSpeed, cfg.Pellet.GridCellSize)
	g.fish = systems.NewFishSystem(g.world, systems.FishParamsFromConfig(cfg), field)
	if cfg.Simulation.ParallelFish {
		g.fish.EnableParallel(cfg.Simulation.ParallelThreshold)
	}
	g.player = systems.NewPlayerSystem(g.world, field, cfg.Derived.PlayerCooldown, g.transform)
	g.props = systems.NewPropSystem(g.world)

	g.collector = telemetry.NewCollector(cfg.Derived.StatsWindow, cfg.Derived.DT)
	g.meals.Reset()
}

// spawn places one level entry.
func (g *Game) spawn(s config.SpawnConfig) error {
	pos := components.Position{X: s.X, Y: s.Y}

	switch s.Kind {
	case config.KindFish:
		variant, err := components.ParseVariant(s.Variant)
		if err != nil {
			return err
		}
		e := g.fish.Spawn(pos, variant)
		_, fish := g.fishMap.Get(e)
		g.meals.Register(fish.ID, variant, g.tick)

	case config.KindProp:
		pc, ok := g.config().Prop(s.Variant)
		if !ok {
			return fmt.Errorf("unknown prop family %q", s.Variant)
		}
		g.props.Spawn(pos, pc.Family, pc.FrameCount, pc.CycleDuration())

	case config.KindPlayer:
		g.player.Spawn(pos)

	default:
		return fmt.Errorf("unknown spawn kind %q", s.Kind)
	}
	return nil
}

// teardown clears every system and the input queue.
func (g *Game) teardown() {
	if g.pellets != nil {
		g.pellets.Clear()
	}
	if g.fish != nil {
		g.fish.Clear()
		g.fish.Close()
	}
	if g.player != nil {
		g.player.Clear()
	}
	if g.props != nil {
		g.props.Clear()
	}
	g.meals.Reset()

	g.inputs = g.inputs[:0]
	g.hitEvents = g.hitEvents[:0]
	g.accum = 0
	g.inSession = false
}
