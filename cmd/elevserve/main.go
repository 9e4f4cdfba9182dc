// Package main is the entry point for the elevserve CLI.
//
// Running the binary without arguments serves the directory it lives in on
// port 3000, with elevation rasters under "elevation-data".
//
// Usage:
//
//	elevserve                        # Serve with built-in defaults
//	elevserve -c elevserve.yaml      # Serve with a config file
//	elevserve check                  # Print the resolved roots and exit
//	elevserve version                # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd serves when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "elevserve",
	Short: "Serve a map front-end and its elevation rasters",
	Long: `elevserve is a static file server for a map front-end bundle and the
elevation rasters it loads.

Everything outside /elevation-data/ is served from the root directory.
/elevation-data/<name> is served from the elevation directory with CORS
and cache headers, and .tif/.tiff files are always sent as image/tiff.

Quick start:
  1. Put the front-end next to the binary
  2. Put rasters in ./elevation-data
  3. Run: elevserve
  4. Open http://localhost:3000 in your browser

Example config:
  port: 3000
  root: ./frontend
  elevation_dir: /data/srtm`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this elevserve binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "elevserve %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "path to an optional config file")
	flags.Int("port", 0, "port to listen on (default 3000)")
	flags.String("root", "", "directory to serve (default: the executable's directory)")
	flags.String("elevation-dir", "", "elevation raster directory, relative to root (default \"elevation-data\")")
}
