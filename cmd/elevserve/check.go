package main

import (
	"fmt"
	"os"

	"github.com/jpalmerr/elevserve/internal/catalog"
	"github.com/spf13/cobra"
)

// checkCmd resolves the configuration without starting the server.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Show what would be served",
	Long: `Resolve the configuration and inspect both directories without starting
the server.

A missing elevation directory is reported but does not fail the check,
the server can run without it. A missing root directory fails.

Exit codes:
  0 - Root directory exists
  1 - Config is invalid or the root directory is missing

Example:
  elevserve check
  elevserve check -c elevserve.yaml
  elevserve check --root ./frontend`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	info, err := os.Stat(s.roots.Primary)
	if err != nil {
		return fmt.Errorf("root directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root %s is not a directory", s.roots.Primary)
	}

	report, err := catalog.Scan(s.roots.Elevation)
	if err != nil {
		return fmt.Errorf("failed to scan elevation directory: %w", err)
	}

	out := cmd.OutOrStdout()
	printDiagnostics(out, s.roots, report)
	fmt.Fprintf(out, "Port:                        %d\n", s.cfg.Port)
	fmt.Fprintf(out, "Log level:                   %s\n", s.cfg.LogLevel)
	return nil
}
