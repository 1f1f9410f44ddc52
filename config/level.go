package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Spawn kinds accepted in a level description.
const (
	KindFish   = "fish"
	KindProp   = "prop"
	KindPlayer = "player"
)

// LevelConfig is the one-time placement list consumed at session start.
type LevelConfig struct {
	Name      string          `yaml:"name"`
	Playfield PlayfieldConfig `yaml:"playfield"`
	Spawns    []SpawnConfig   `yaml:"spawns"`
}

// PlayfieldConfig bounds the region fish, pellets and the player move in.
// The vertical axis points up: pellets fall toward Floor.
type PlayfieldConfig struct {
	Left  float64 `yaml:"left"`
	Right float64 `yaml:"right"`
	Floor float64 `yaml:"floor"`
	Top   float64 `yaml:"top"`
}

// SpawnConfig is a single (kind, position, variant) placement.
// Variant names a fish variant ("common", "rare") or a prop family.
type SpawnConfig struct {
	Kind    string  `yaml:"kind"`
	Variant string  `yaml:"variant,omitempty"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
}

// Width returns the horizontal extent of the playfield.
func (p PlayfieldConfig) Width() float64 {
	return p.Right - p.Left
}

// Height returns the vertical extent of the playfield.
func (p PlayfieldConfig) Height() float64 {
	return p.Top - p.Floor
}

// Validate checks the level for inconsistent bounds and unknown kinds.
func (l LevelConfig) Validate() error {
	if l.Playfield.Right <= l.Playfield.Left {
		return fmt.Errorf("level %q: playfield right (%v) must exceed left (%v)", l.Name, l.Playfield.Right, l.Playfield.Left)
	}
	if l.Playfield.Top <= l.Playfield.Floor {
		return fmt.Errorf("level %q: playfield top (%v) must exceed floor (%v)", l.Name, l.Playfield.Top, l.Playfield.Floor)
	}
	players := 0
	for i, s := range l.Spawns {
		switch s.Kind {
		case KindFish, KindProp:
		case KindPlayer:
			players++
		default:
			return fmt.Errorf("level %q: spawn %d has unknown kind %q", l.Name, i, s.Kind)
		}
	}
	if players > 1 {
		return fmt.Errorf("level %q: %d player spawns, want at most one", l.Name, players)
	}
	return nil
}

// LoadLevel reads a level description from a YAML file.
func LoadLevel(path string) (LevelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LevelConfig{}, fmt.Errorf("reading level file: %w", err)
	}
	var level LevelConfig
	if err := yaml.Unmarshal(data, &level); err != nil {
		return LevelConfig{}, fmt.Errorf("parsing level file: %w", err)
	}
	if err := level.Validate(); err != nil {
		return LevelConfig{}, err
	}
	return level, nil
}
