// Package config provides service configuration loaded from an optional TOML
// file, with defaults and validation. Command-line flags are layered on top
// by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/carloabimanyu/bookshelf-api/internal/logging"
	"github.com/carloabimanyu/bookshelf-api/internal/validator"
	"github.com/pelletier/go-toml/v2"
)

// Environments lists the accepted values for Config.Env.
var Environments = []string{"development", "staging", "production"}

// Config represents the root service configuration.
type Config struct {
	Port            int           `toml:"port"`
	Env             string        `toml:"env"`
	ShutdownTimeout string        `toml:"shutdown_timeout"`
	Logging         LoggingConfig `toml:"logging"`
	Limiter         LimiterConfig `toml:"limiter"`
	Books           BooksConfig   `toml:"books"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  logging.Level  `toml:"level"`
	Format logging.Format `toml:"format"`
}

// LimiterConfig holds the per-IP rate limiter settings.
type LimiterConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

// BooksConfig holds book store behaviour switches.
type BooksConfig struct {
	RecomputeFinished bool `toml:"recompute_finished"`
}

// Default returns the configuration used when neither a file nor flags
// override a value.
func Default() Config {
	return Config{
		Port:            9000,
		Env:             "development",
		ShutdownTimeout: "20s",
		Logging: LoggingConfig{
			Level:  logging.LevelInfo,
			Format: logging.FormatText,
		},
		Limiter: LimiterConfig{
			Enabled: false,
			RPS:     2,
			Burst:   4,
		},
	}
}

// Load reads the TOML file at path over the defaults. Keys absent from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ShutdownTimeoutDuration parses and returns the shutdown timeout.
func (c Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Validate reports every invalid setting joined into one error.
func (c Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", c.Port))
	}
	if !validator.In(c.Env, Environments...) {
		errs = append(errs, fmt.Errorf("invalid env: %s (must be development, staging, or production)", c.Env))
	}
	if d, err := time.ParseDuration(c.ShutdownTimeout); err != nil || d <= 0 {
		errs = append(errs, fmt.Errorf("invalid shutdown_timeout: %q", c.ShutdownTimeout))
	}
	if err := c.Logging.Level.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Logging.Format.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Limiter.Enabled {
		if c.Limiter.RPS <= 0 {
			errs = append(errs, fmt.Errorf("invalid limiter rps: %v", c.Limiter.RPS))
		}
		if c.Limiter.Burst < 1 {
			errs = append(errs, fmt.Errorf("invalid limiter burst: %d", c.Limiter.Burst))
		}
	}

	return errors.Join(errs...)
}
