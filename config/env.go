package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that provide defaults for command line flags.
const (
	EnvConfig    = "FISHFEED_CONFIG"
	EnvLevel     = "FISHFEED_LEVEL"
	EnvOutputDir = "FISHFEED_OUTPUT_DIR"
	EnvSeed      = "FISHFEED_SEED"
)

// LoadEnv loads variables from a dotenv file into the process environment.
// Variables already set are left alone. A missing file is not an error.
func LoadEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// EnvString returns the variable's value, or def when unset or empty.
func EnvString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// EnvInt64 returns the variable parsed as an integer, or def when unset.
func EnvInt64(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
