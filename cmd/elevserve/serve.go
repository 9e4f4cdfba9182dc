package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/elevserve"
	"github.com/jpalmerr/elevserve/internal/catalog"
	"github.com/spf13/cobra"
)

const (
	// shutdownGrace is added on top of the server's own shutdown timeout
	// before the CLI gives up waiting.
	shutdownGrace = 5 * time.Second
)

func init() {
	rootCmd.RunE = runServe
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(s.level)
	out := cmd.OutOrStdout()

	report, err := catalog.Scan(s.roots.Elevation)
	if err != nil {
		logger.Warn("failed to scan elevation root", "path", s.roots.Elevation, "error", err)
	}
	printDiagnostics(out, s.roots, report)

	es, err := elevserve.New(
		elevserve.WithRoot(s.roots.Primary),
		elevserve.WithElevationDir(s.roots.Elevation),
		elevserve.WithPort(s.cfg.Port),
		elevserve.WithShutdownTimeout(s.cfg.ShutdownTimeout.Duration()),
		elevserve.WithLogger(logger),
		elevserve.WithListeningCallback(func(url string) {
			printListening(out, url)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		errChan <- es.Start(ctx)
	}()

	select {
	case err := <-errChan:
		// bind failure, or a context cancelled before Start ran
		return err

	case <-ctx.Done():
		timeout := s.cfg.ShutdownTimeout.Duration() + shutdownGrace
		select {
		case err := <-errChan:
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "\nServer stopped.")
			return nil
		case <-time.After(timeout):
			logger.Warn("shutdown timed out",
				"timeout", timeout.String(),
				"action", "forcing exit",
			)
			return nil
		}
	}
}
