package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jpalmerr/elevserve/config"
	"github.com/spf13/cobra"
)

// settings is the configuration after the file and flags were merged.
type settings struct {
	cfg   *config.Config
	roots config.Roots
	level slog.Level
}

// loadSettings reads the optional config file, applies flag overrides and
// resolves the roots against the executable's directory.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Flags()

	cfg := config.Default()
	if configFile, _ := flags.GetString("config"); configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("root") {
		cfg.Root, _ = flags.GetString("root")
	}
	if flags.Changed("elevation-dir") {
		cfg.ElevationDir, _ = flags.GetString("elevation-dir")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	baseDir, err := config.ExecutableDir()
	if err != nil {
		return nil, err
	}
	if flags.Changed("root") {
		// a root given on the command line is relative to where the user is
		if baseDir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	roots, err := cfg.Resolve(baseDir)
	if err != nil {
		return nil, err
	}

	return &settings{cfg: cfg, roots: roots, level: level}, nil
}

// newLogger creates a JSON logger for CLI use.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
