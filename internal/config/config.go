// Package config loads CLI configuration from HWSEED_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends accepted in Config.Store.
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreS3       = "s3"
)

// Config controls where the seed record lives and how the CLI logs.
type Config struct {
	Store        string        `env:"HWSEED_STORE"         envDefault:"file"`
	StorePath    string        `env:"HWSEED_STORE_PATH"`
	StoreTimeout time.Duration `env:"HWSEED_STORE_TIMEOUT" envDefault:"5s"`
	PostgresDSN  string        `env:"HWSEED_POSTGRES_DSN"`
	S3Bucket     string        `env:"HWSEED_S3_BUCKET"`
	S3Region     string        `env:"HWSEED_S3_REGION"     envDefault:"us-east-1"`
	S3Endpoint   string        `env:"HWSEED_S3_ENDPOINT"`
	S3Key        string        `env:"HWSEED_S3_KEY"`
	S3PathStyle  bool          `env:"HWSEED_S3_PATH_STYLE"`
	LogLevel     string        `env:"HWSEED_LOG_LEVEL"     envDefault:"warn"`
}

// Parse reads the environment without validating it. Callers that apply
// further overrides, such as command-line flags, call Validate afterwards.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	cfg, err := Parse()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks backend-specific requirements.
func (c Config) Validate() error {
	switch strings.ToLower(c.Store) {
	case StoreMemory, StoreFile, StoreSQLite, StorePostgres:
	case StoreS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("HWSEED_S3_BUCKET required for s3 store")
		}
	default:
		return fmt.Errorf("unsupported store %q; valid values are memory, file, sqlite, postgres, s3", c.Store)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// Level returns the configured slog level, defaulting to warn.
func (c Config) Level() slog.Level {
	lvl, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}

	return lvl
}

// ParseLevel converts debug, info, warn or error into a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}

	return lvl, nil
}
