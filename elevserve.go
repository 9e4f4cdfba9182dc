package elevserve

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/jpalmerr/elevserve/config"
	"github.com/jpalmerr/elevserve/internal/server"
)

// ElevServe serves a primary root and an elevation root over HTTP.
//
// It is created using [New] with functional options and started with
// [ElevServe.Start]. The caller controls the lifecycle via the context.
type ElevServe struct {
	roots           config.Roots
	port            int
	shutdownTimeout time.Duration
	logger          *slog.Logger
	onListening     []func(url string)
}

// New creates a new [ElevServe] instance with the given options.
//
// Defaults:
//   - Root: directory of the running executable
//   - Elevation dir: "elevation-data" under the root
//   - Port: 3000
//   - Shutdown timeout: 5 seconds
//
// Neither directory has to exist; a missing elevation root is logged at
// start and every request under its prefix answers 404.
func New(opts ...Option) (*ElevServe, error) {
	cfg := &esConfig{
		elevationDir:    config.DefaultElevationDir,
		port:            config.DefaultPort,
		shutdownTimeout: config.DefaultShutdownTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	root := cfg.root
	if root == "" {
		dir, err := config.ExecutableDir()
		if err != nil {
			return nil, err
		}
		root = dir
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}

	resolver := config.Config{Root: root, ElevationDir: cfg.elevationDir}
	roots, err := resolver.Resolve(root)
	if err != nil {
		return nil, err
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ElevServe{
		roots:           roots,
		port:            cfg.port,
		shutdownTimeout: cfg.shutdownTimeout,
		logger:          logger,
		onListening:     cfg.onListening,
	}, nil
}

// Start serves until the provided context is cancelled.
//
// The listener is bound before anything else happens, so a port already in
// use is reported immediately as an error. On cancellation in-flight
// requests get the shutdown timeout to complete.
//
// Returns nil on graceful shutdown.
func (es *ElevServe) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return nil
	}

	srv := server.New(es.serverConfig(), es.logger)
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	url := fmt.Sprintf("http://localhost:%d/", es.port)
	es.logger.Info("elevserve available", "url", url)
	for _, cb := range es.onListening {
		invokeCallbackSafe(cb, url, es.logger)
	}

	<-ctx.Done()
	<-srv.Done()
	es.logger.Info("elevserve stopped")
	return nil
}

// Handler returns the request pipeline without binding a listener, for
// mounting inside another server.
func (es *ElevServe) Handler() http.Handler {
	return server.New(es.serverConfig(), es.logger).Handler()
}

// Roots returns the resolved primary and elevation roots.
func (es *ElevServe) Roots() config.Roots {
	return es.roots
}

// Port returns the configured HTTP port.
func (es *ElevServe) Port() int {
	return es.port
}

func (es *ElevServe) serverConfig() server.Config {
	return server.Config{
		PrimaryRoot:     es.roots.Primary,
		ElevationRoot:   es.roots.Elevation,
		Port:            es.port,
		ShutdownTimeout: es.shutdownTimeout,
	}
}

// invokeCallbackSafe calls a listening callback with panic recovery.
// Panics are logged but do not propagate.
func invokeCallbackSafe(cb func(string), url string, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("listening callback panicked", "panic", r, "url", url)
		}
	}()
	cb(url)
}
