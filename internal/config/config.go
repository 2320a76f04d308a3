package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Exhausted-level policies.
const (
	ExhaustEnd     = "end"
	ExhaustRecycle = "recycle"
)

// Config holds runtime settings for the test engine and its shells.
type Config struct {
	DataDir         string
	Store           string
	DBPath          string // empty means the default XDG location
	StateDir        string // empty means the default XDG location
	RedisURL        string
	PassThreshold   int
	FailThreshold   int
	ExhaustedPolicy string
	LogMode         string
	LogLevel        string
}

// Load reads configuration from a .env file (if present) and KNOWTEST_*
// environment variables, applying defaults for anything unset.
func Load() (Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	pass, err := envIntOr("KNOWTEST_PASS_THRESHOLD", 3)
	if err != nil {
		return Config{}, err
	}
	fail, err := envIntOr("KNOWTEST_FAIL_THRESHOLD", 3)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DataDir:         envOr("KNOWTEST_DATA_DIR", "data"),
		Store:           strings.ToLower(envOr("KNOWTEST_STORE", StoreSQLite)),
		DBPath:          os.Getenv("KNOWTEST_DB"),
		StateDir:        os.Getenv("KNOWTEST_STATE_DIR"),
		RedisURL:        envOr("KNOWTEST_REDIS_URL", "redis://localhost:6379/0"),
		PassThreshold:   pass,
		FailThreshold:   fail,
		ExhaustedPolicy: strings.ToLower(envOr("KNOWTEST_EXHAUSTED_POLICY", ExhaustEnd)),
		LogMode:         envOr("KNOWTEST_LOG_MODE", "dev"),
		LogLevel:        envOr("KNOWTEST_LOG_LEVEL", "warn"),
	}
	return cfg, cfg.Validate()
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	var problems []string
	if c.PassThreshold < 1 {
		problems = append(problems, fmt.Sprintf("pass threshold must be >= 1, got %d", c.PassThreshold))
	}
	if c.FailThreshold < 1 {
		problems = append(problems, fmt.Sprintf("fail threshold must be >= 1, got %d", c.FailThreshold))
	}
	switch c.Store {
	case StoreSQLite, StoreFile, StoreRedis:
	default:
		problems = append(problems, fmt.Sprintf("unknown store %q (want sqlite, file or redis)", c.Store))
	}
	switch c.ExhaustedPolicy {
	case ExhaustEnd, ExhaustRecycle:
	default:
		problems = append(problems, fmt.Sprintf("unknown exhausted policy %q (want end or recycle)", c.ExhaustedPolicy))
	}
	if c.DataDir == "" {
		problems = append(problems, "data dir is empty")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s=%q: %w", key, v, err)
	}
	return i, nil
}
