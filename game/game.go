// Package game drives the fish-feeding simulation at a fixed tick rate.
package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/fishfeed/components"
	"github.com/pthm-cable/fishfeed/config"
	"github.com/pthm-cable/fishfeed/systems"
	"github.com/pthm-cable/fishfeed/telemetry"
)

// Options configures a Game.
type Options struct {
	Config    *config.Config // nil uses config.Cfg()
	Seed      int64
	LogStats  bool
	OutputDir string
	Headless  bool // drive the player with a seeded Autopilot

	Sound         systems.SoundSink
	Transform     systems.ScreenToPlayfield
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete simulation state.
type Game struct {
	cfg     *config.Config
	world   *ecs.World
	rngSeed int64

	// Systems, rebuilt for each session's playfield
	pellets *systems.PelletSystem
	fish    *systems.FishSystem
	player  *systems.PlayerSystem
	props   *systems.PropSystem

	// Read-only views for sprites and meal registration
	fishMap      *ecs.Map2[components.Position, components.Fish]
	fishFilter   *ecs.Filter2[components.Position, components.Fish]
	pelletFilter *ecs.Filter2[components.Position, components.Pellet]
	playerFilter *ecs.Filter2[components.Position, components.Player]
	propFilter   *ecs.Filter2[components.Position, components.Prop]

	ctx       systems.Context
	transform systems.ScreenToPlayfield

	// Input queue, drained once per tick
	inputs    []InputEvent
	spare     []InputEvent
	autopilot *Autopilot

	// State
	tick      int32
	accum     time.Duration
	paused    bool
	inSession bool
	level     config.LevelConfig

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	meals         *telemetry.MealTracker
	outputManager *telemetry.OutputManager
	hitEvents     []telemetry.HitEvent
	statsCallback func(telemetry.WindowStats)
	logStats      bool
	lastStats     telemetry.WindowStats
}

// NewGameWithOptions creates a game with no session running.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	if cfg.Derived.DT <= 0 {
		return nil, fmt.Errorf("tick duration must be positive, got %v", cfg.Derived.DT)
	}

	world := ecs.NewWorld()

	g := &Game{
		cfg:     cfg,
		world:   world,
		rngSeed: opts.Seed,

		fishMap:      ecs.NewMap2[components.Position, components.Fish](world),
		fishFilter:   ecs.NewFilter2[components.Position, components.Fish](world),
		pelletFilter: ecs.NewFilter2[components.Position, components.Pellet](world),
		playerFilter: ecs.NewFilter2[components.Position, components.Player](world),
		propFilter:   ecs.NewFilter2[components.Position, components.Prop](world),

		ctx:       systems.Context{DT: cfg.Derived.DT, Sound: opts.Sound},
		transform: opts.Transform,

		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		meals:         telemetry.NewMealTracker(),
		statsCallback: opts.StatsCallback,
		logStats:      opts.LogStats,
	}

	if opts.Headless {
		g.autopilot = NewAutopilot(opts.Seed)
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("creating output manager: %w", err)
		}
		if err := om.WriteConfig(cfg); err != nil {
			om.Close()
			return nil, fmt.Errorf("writing config snapshot: %w", err)
		}
		g.outputManager = om
		slog.Info("output directory initialized", "path", opts.OutputDir)
	}

	g.logConfig()
	return g, nil
}

// config returns the game's configuration.
func (g *Game) config() *config.Config {
	return g.cfg
}

// SetSoundSink replaces the sink that receives sound cues. nil silences.
func (g *Game) SetSoundSink(s systems.SoundSink) {
	g.ctx.Sound = s
}

// SetTransform replaces the screen-to-playfield mapping used for moves.
func (g *Game) SetTransform(t systems.ScreenToPlayfield) {
	g.transform = t
	if g.player != nil {
		g.player.SetTransform(t)
	}
}

// SetPaused pauses or resumes the tick driver.
func (g *Game) SetPaused(paused bool) {
	g.paused = paused
}

// TogglePause flips the paused flag.
func (g *Game) TogglePause() {
	g.paused = !g.paused
}

// Paused reports whether the tick driver is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// Tick returns the number of ticks run in the current session.
func (g *Game) Tick() int32 {
	return g.tick
}

// InSession reports whether a session is running.
func (g *Game) InSession() bool {
	return g.inSession
}

// Level returns the level of the current or most recent session.
func (g *Game) Level() config.LevelConfig {
	return g.level
}

// FishCount returns the number of live fish.
func (g *Game) FishCount() int {
	if g.fish == nil {
		return 0
	}
	return g.fish.Count()
}

// PelletCount returns the number of live pellets.
func (g *Game) PelletCount() int {
	if g.pellets == nil {
		return 0
	}
	return g.pellets.Count()
}

// PlayerPosition returns the dispenser position, if a player exists.
func (g *Game) PlayerPosition() (components.Position, bool) {
	if g.player == nil {
		return components.Position{}, false
	}
	return g.player.Position()
}

// Meals returns the per-fish meal tracker for the current session.
func (g *Game) Meals() *telemetry.MealTracker {
	return g.meals
}

// LastStats returns the most recently flushed stats window.
func (g *Game) LastStats() telemetry.WindowStats {
	return g.lastStats
}

// Perf returns the tick phase timing collector.
func (g *Game) Perf() *telemetry.PerfCollector {
	return g.perfCollector
}

// Unload ends any running session and closes output files.
func (g *Game) Unload() {
	if g.inSession {
		g.EndSession()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.outputManager = nil
}
