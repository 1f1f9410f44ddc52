package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnv(t *testing.T) {
	if err := LoadEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadEnv(missing) = %v, want nil", err)
	}

	path := filepath.Join(t.TempDir(), "test.env")
	data := "FISHFEED_LEVEL=levels/reef.yaml\nFISHFEED_SEED=42\nFISHFEED_OUTPUT_DIR=from-file\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvLevel, "")
	t.Setenv(EnvSeed, "")
	t.Setenv(EnvOutputDir, "from-env")
	// t.Setenv restores on cleanup; unset the empty ones so the file can fill them
	os.Unsetenv(EnvLevel)
	os.Unsetenv(EnvSeed)

	if err := LoadEnv(path); err != nil {
		t.Fatalf("LoadEnv = %v", err)
	}

	if got := EnvString(EnvLevel, ""); got != "levels/reef.yaml" {
		t.Errorf("EnvString(level) = %q, want %q", got, "levels/reef.yaml")
	}
	if got := EnvString(EnvOutputDir, ""); got != "from-env" {
		t.Errorf("EnvString(output) = %q, want %q", got, "from-env")
	}
	seed, err := EnvInt64(EnvSeed, 0)
	if err != nil || seed != 42 {
		t.Errorf("EnvInt64(seed) = %d, %v, want 42, nil", seed, err)
	}
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv(EnvConfig, "")
	if got := EnvString(EnvConfig, "default.yaml"); got != "default.yaml" {
		t.Errorf("EnvString(empty) = %q, want %q", got, "default.yaml")
	}

	t.Setenv(EnvSeed, "not-a-number")
	if _, err := EnvInt64(EnvSeed, 7); err == nil {
		t.Error("expected error for malformed seed")
	}

	t.Setenv(EnvSeed, "")
	if got, err := EnvInt64(EnvSeed, 7); err != nil || got != 7 {
		t.Errorf("EnvInt64(empty) = %d, %v, want 7, nil", got, err)
	}
}
