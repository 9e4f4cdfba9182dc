package elevserve

import (
	"errors"
	"log/slog"
	"time"
)

// esConfig holds mutable state during ElevServe construction.
type esConfig struct {
	root            string
	elevationDir    string
	port            int
	shutdownTimeout time.Duration
	logger          *slog.Logger
	onListening     []func(url string)
}

// Option is a function that configures an [ElevServe] instance during construction.
//
// Options return an error if validation fails.
//
// Built-in options: [WithRoot], [WithElevationDir], [WithPort],
// [WithShutdownTimeout], [WithLogger], [WithListeningCallback].
type Option func(*esConfig) error

// WithRoot sets the primary root holding the application bundle.
//
// Relative paths are resolved against the current working directory.
// Defaults to the directory of the running executable.
//
// Returns an error if dir is empty.
func WithRoot(dir string) Option {
	return func(cfg *esConfig) error {
		if dir == "" {
			return errors.New("root cannot be empty")
		}
		cfg.root = dir
		return nil
	}
}

// WithElevationDir sets the directory served under "/elevation-data/".
//
// Relative paths are resolved against the primary root.
// Defaults to "elevation-data".
//
// Returns an error if dir is empty.
func WithElevationDir(dir string) Option {
	return func(cfg *esConfig) error {
		if dir == "" {
			return errors.New("elevation dir cannot be empty")
		}
		cfg.elevationDir = dir
		return nil
	}
}

// WithPort sets the HTTP port. Defaults to 3000.
//
// Returns an error if the port is outside the valid range (1-65535).
func WithPort(port int) Option {
	return func(cfg *esConfig) error {
		if port < 1 || port > 65535 {
			return errors.New("port must be between 1 and 65535")
		}
		cfg.port = port
		return nil
	}
}

// WithShutdownTimeout sets how long in-flight requests may run after the
// context passed to [ElevServe.Start] is cancelled. Defaults to 5 seconds.
//
// Returns an error if the duration is zero or negative.
func WithShutdownTimeout(d time.Duration) Option {
	return func(cfg *esConfig) error {
		if d <= 0 {
			return errors.New("shutdown timeout must be positive")
		}
		cfg.shutdownTimeout = d
		return nil
	}
}

// WithLogger sets a custom [slog.Logger]. If not specified, [slog.Default]
// is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *esConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithListeningCallback registers a function called once the listener is
// bound, with the URL the server answers on. It is not called when binding
// fails.
//
// Panics within callbacks are recovered and logged. Nil callbacks are
// silently ignored.
func WithListeningCallback(cb func(url string)) Option {
	return func(cfg *esConfig) error {
		if cb != nil {
			cfg.onListening = append(cfg.onListening, cb)
		}
		return nil
	}
}
