package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync"
	"time"
)

// defaultShutdownTimeout bounds how long in-flight requests may run after the
// server context is cancelled.
const defaultShutdownTimeout = 5 * time.Second

// Config is the immutable configuration of a [Server].
type Config struct {
	// PrimaryRoot is the directory holding the application bundle.
	PrimaryRoot string

	// ElevationRoot is the directory holding elevation rasters, addressed
	// through the "/elevation-data/" prefix.
	ElevationRoot string

	// Port is the TCP port to listen on. Zero picks a free port.
	Port int

	// ShutdownTimeout is the grace period for in-flight requests.
	// Defaults to 5s when zero.
	ShutdownTimeout time.Duration
}

// Server serves the primary and elevation roots over HTTP.
//
// The server is designed for graceful shutdown via context cancellation.
type Server struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server

	mu   sync.Mutex
	addr net.Addr
	done chan struct{}
}

// New creates a new [Server] for cfg.
//
// The server is not started until [Server.Start] is called.
func New(cfg Config, logger *slog.Logger) *Server {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:    cfg,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Handler returns the complete request pipeline: request ids, access
// logging, then routing to one of the two roots.
func (s *Server) Handler() http.Handler {
	return withRequestID(withLogging(s.logger, http.HandlerFunc(s.route)))
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start is non-blocking and returns immediately after confirming the server
// is listening. When ctx is cancelled the server shuts down gracefully and
// the channel returned by [Server.Done] is closed.
//
// Returns an error if the server fails to bind to the configured port.
func (s *Server) Start(ctx context.Context) error {
	s.checkElevationRoot()

	// create listener first to verify port availability synchronously
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", s.cfg.Port, err)
	}

	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		defer close(s.done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
		}
	}()

	s.logger.Info("server listening",
		"addr", ln.Addr().String(),
		"primary_root", s.cfg.PrimaryRoot,
		"elevation_root", s.cfg.ElevationRoot,
	)
	return nil
}

// Addr returns the bound listener address, or nil before [Server.Start].
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Done is closed once a started server has finished shutting down.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// checkElevationRoot logs whether the elevation root is usable. A missing
// directory is not fatal: requests under the prefix will simply 404.
func (s *Server) checkElevationRoot() {
	info, err := os.Stat(s.cfg.ElevationRoot)
	switch {
	case err != nil:
		s.logger.Warn("elevation root unavailable", "path", s.cfg.ElevationRoot, "error", err)
	case !info.IsDir():
		s.logger.Warn("elevation root is not a directory", "path", s.cfg.ElevationRoot)
	}
}
