// Package main is the entry point for the bookshelf API server.
// It wires together configuration, the logger, the in-memory book store and
// the HTTP router.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/carloabimanyu/bookshelf-api/internal/config"
	"github.com/carloabimanyu/bookshelf-api/internal/data"
	"github.com/carloabimanyu/bookshelf-api/internal/logging"
)

// appVersion is the current version of the API, shown in logs and the healthcheck.
const appVersion = "1.0.0"

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
type applicationDependencies struct {
	config config.Config // Settings from defaults, the TOML file and flags
	logger *slog.Logger  // Structured logger
	models data.Models   // In-memory book store
}

func main() {
	settings, err := loadConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.New(os.Stdout, settings.Logging.Level, settings.Logging.Format)

	appInstance := newApplication(settings, logger)

	err = appInstance.serve()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// newApplication builds the dependency bundle with an empty book store.
func newApplication(settings config.Config, logger *slog.Logger) *applicationDependencies {
	return &applicationDependencies{
		config: settings,
		logger: logger,
		models: data.NewModels(data.Options{
			RecomputeFinished: settings.Books.RecomputeFinished,
		}),
	}
}

// loadConfig resolves the settings in three layers: built-in defaults, the
// optional TOML file named by -config, then any flag given explicitly.
func loadConfig(args []string) (config.Config, error) {
	fs := flag.NewFlagSet("api", flag.ContinueOnError)

	defaults := config.Default()
	flagged := defaults
	var path string

	fs.StringVar(&path, "config", "", "Path to a TOML configuration file")
	fs.IntVar(&flagged.Port, "port", defaults.Port, "Server port")
	fs.StringVar(&flagged.Env, "env", defaults.Env, "Environment (development|staging|production)")
	fs.StringVar(&flagged.ShutdownTimeout, "shutdown-timeout", defaults.ShutdownTimeout, "Graceful shutdown timeout")
	fs.StringVar((*string)(&flagged.Logging.Level), "log-level", string(defaults.Logging.Level), "Log level (debug|info|warn|error)")
	fs.StringVar((*string)(&flagged.Logging.Format), "log-format", string(defaults.Logging.Format), "Log format (text|json)")
	fs.BoolVar(&flagged.Limiter.Enabled, "limiter-enabled", defaults.Limiter.Enabled, "Enable per-IP rate limiting")
	fs.Float64Var(&flagged.Limiter.RPS, "limiter-rps", defaults.Limiter.RPS, "Rate limiter maximum requests per second")
	fs.IntVar(&flagged.Limiter.Burst, "limiter-burst", defaults.Limiter.Burst, "Rate limiter maximum burst")
	fs.BoolVar(&flagged.Books.RecomputeFinished, "recompute-finished", defaults.Books.RecomputeFinished, "Recompute finished when a book is updated")

	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	settings := defaults
	if path != "" {
		var err error
		settings, err = config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
	}

	// Explicit flags win over the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			settings.Port = flagged.Port
		case "env":
			settings.Env = flagged.Env
		case "shutdown-timeout":
			settings.ShutdownTimeout = flagged.ShutdownTimeout
		case "log-level":
			settings.Logging.Level = flagged.Logging.Level
		case "log-format":
			settings.Logging.Format = flagged.Logging.Format
		case "limiter-enabled":
			settings.Limiter.Enabled = flagged.Limiter.Enabled
		case "limiter-rps":
			settings.Limiter.RPS = flagged.Limiter.RPS
		case "limiter-burst":
			settings.Limiter.Burst = flagged.Limiter.Burst
		case "recompute-finished":
			settings.Books.RecomputeFinished = flagged.Books.RecomputeFinished
		}
	})

	if err := settings.Validate(); err != nil {
		return config.Config{}, err
	}
	return settings, nil
}
