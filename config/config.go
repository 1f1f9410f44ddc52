// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Simulation SimulationConfig `yaml:"simulation"`
	Fish       FishConfig       `yaml:"fish"`
	Pellet     PelletConfig     `yaml:"pellet"`
	Player     PlayerConfig     `yaml:"player"`
	Props      []PropConfig     `yaml:"props"`
	Audio      AudioConfig      `yaml:"audio"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Level      LevelConfig      `yaml:"level"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	TargetFPS int     `yaml:"target_fps"`
	Zoom      float64 `yaml:"zoom"` // Initial camera zoom (playfield units to pixels)
}

// SimulationConfig holds tick driver parameters.
type SimulationConfig struct {
	TickRate          int  `yaml:"tick_rate"`           // Fixed simulation ticks per second
	MaxStepsPerFrame  int  `yaml:"max_steps_per_frame"` // Cap on catch-up ticks per Update call
	ParallelFish      bool `yaml:"parallel_fish"`       // Evaluate fish proximity on a worker pool
	ParallelThreshold int  `yaml:"parallel_threshold"`  // Minimum fish count before the pool is used
}

// FishConfig holds fish behavior parameters.
type FishConfig struct {
	SlowSpeed      float64 `yaml:"slow_speed"`      // Units per tick
	FastSpeed      float64 `yaml:"fast_speed"`      // Units per tick
	HitRadius      float64 `yaml:"hit_radius"`      // Pellet consumed below this distance
	AlertRadius    float64 `yaml:"alert_radius"`    // Fish accelerates below this distance
	EatingDuration float64 `yaml:"eating_duration"` // Seconds spent eating after a hit
}

// PelletConfig holds falling pellet parameters.
type PelletConfig struct {
	FallSpeed    float64 `yaml:"fall_speed"`     // Units per second
	GridCellSize float64 `yaml:"grid_cell_size"` // Proximity grid bucket size
}

// PlayerConfig holds dispenser parameters.
type PlayerConfig struct {
	Cooldown float64 `yaml:"cooldown"` // Seconds between pellet spawns
}

// PropConfig describes one decorative prop family.
type PropConfig struct {
	Family     string  `yaml:"family"`
	FrameCount int     `yaml:"frame_count"`
	Cycle      float64 `yaml:"cycle"` // Seconds per frame
}

// CycleDuration returns the time each frame is shown.
func (p PropConfig) CycleDuration() time.Duration {
	return seconds(p.Cycle)
}

// AudioConfig holds sound effect settings.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // Linear master volume, 0..1
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT             time.Duration // Duration of one tick
	EatingDuration time.Duration
	PlayerCooldown time.Duration
	StatsWindow    time.Duration
	PropIndex      map[string]int // family -> index into Props
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ComputeDerived()

	return cfg, nil
}

// Defaults returns a fresh copy of the embedded default configuration.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.ComputeDerived()
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Simulation.TickRate <= 0 {
		return fmt.Errorf("simulation.tick_rate must be positive, got %d", c.Simulation.TickRate)
	}
	if c.Fish.HitRadius < 0 || c.Fish.AlertRadius < 0 {
		return fmt.Errorf("fish radii must be non-negative")
	}
	if c.Pellet.FallSpeed < 0 {
		return fmt.Errorf("pellet.fall_speed must be non-negative, got %v", c.Pellet.FallSpeed)
	}
	for _, p := range c.Props {
		if p.FrameCount < 1 {
			return fmt.Errorf("prop family %q: frame_count must be at least 1", p.Family)
		}
	}
	return c.Level.Validate()
}

// ComputeDerived recalculates values derived from the loaded config.
// Call it after changing fields programmatically.
func (c *Config) ComputeDerived() {
	if c.Simulation.TickRate > 0 {
		c.Derived.DT = time.Second / time.Duration(c.Simulation.TickRate)
	}
	c.Derived.EatingDuration = seconds(c.Fish.EatingDuration)
	c.Derived.PlayerCooldown = seconds(c.Player.Cooldown)
	c.Derived.StatsWindow = seconds(c.Telemetry.StatsWindow)

	c.Derived.PropIndex = make(map[string]int, len(c.Props))
	for i, p := range c.Props {
		c.Derived.PropIndex[p.Family] = i
	}
}

// Prop returns the prop family config, if known.
func (c *Config) Prop(family string) (PropConfig, bool) {
	idx, ok := c.Derived.PropIndex[family]
	if !ok {
		return PropConfig{}, false
	}
	return c.Props[idx], true
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
