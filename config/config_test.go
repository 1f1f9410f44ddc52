package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultsLoad(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Derived.DT != time.Second/60 {
		t.Errorf("DT = %v, want %v", cfg.Derived.DT, time.Second/60)
	}
	if cfg.Derived.EatingDuration != 5*time.Second {
		t.Errorf("EatingDuration = %v, want 5s", cfg.Derived.EatingDuration)
	}
	if cfg.Derived.PlayerCooldown != time.Second {
		t.Errorf("PlayerCooldown = %v, want 1s", cfg.Derived.PlayerCooldown)
	}
	if cfg.Level.Playfield.Left != 0 || cfg.Level.Playfield.Right != 384 {
		t.Errorf("playfield = [%v, %v], want [0, 384]", cfg.Level.Playfield.Left, cfg.Level.Playfield.Right)
	}
	if cfg.Fish.AlertRadius <= cfg.Fish.HitRadius {
		t.Errorf("alert radius %v should exceed hit radius %v", cfg.Fish.AlertRadius, cfg.Fish.HitRadius)
	}
	if _, ok := cfg.Prop("alga_1x2"); !ok {
		t.Error("expected alga_1x2 prop family in defaults")
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("fish:\n  fast_speed: 5\nplayer:\n  cooldown: 0.25\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Fish.FastSpeed != 5 {
		t.Errorf("FastSpeed = %v, want 5", cfg.Fish.FastSpeed)
	}
	// Untouched fields keep defaults
	if cfg.Fish.SlowSpeed != 1 {
		t.Errorf("SlowSpeed = %v, want 1", cfg.Fish.SlowSpeed)
	}
	if cfg.Derived.PlayerCooldown != 250*time.Millisecond {
		t.Errorf("PlayerCooldown = %v, want 250ms", cfg.Derived.PlayerCooldown)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("simulation:\n  tick_rate: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for zero tick rate")
	}
}

func TestLevelValidate(t *testing.T) {
	base := PlayfieldConfig{Left: 0, Right: 384, Floor: 0, Top: 200}

	tests := []struct {
		name    string
		level   LevelConfig
		wantErr bool
	}{
		{"valid", LevelConfig{Playfield: base, Spawns: []SpawnConfig{{Kind: KindPlayer}, {Kind: KindFish}}}, false},
		{"inverted bounds", LevelConfig{Playfield: PlayfieldConfig{Left: 10, Right: 0, Top: 1}}, true},
		{"unknown kind", LevelConfig{Playfield: base, Spawns: []SpawnConfig{{Kind: "shark"}}}, true},
		{"two players", LevelConfig{Playfield: base, Spawns: []SpawnConfig{{Kind: KindPlayer}, {Kind: KindPlayer}}}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.level.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}
	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if len(reloaded.Level.Spawns) != len(cfg.Level.Spawns) {
		t.Errorf("spawns = %d, want %d", len(reloaded.Level.Spawns), len(cfg.Level.Spawns))
	}
}
