package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Roots are the absolute directories the server reads from.
type Roots struct {
	Primary   string
	Elevation string
}

// ExecutableDir returns the directory containing the running binary, with
// symlinks resolved.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// Resolve turns the configured roots into absolute paths.
//
// An empty Root means baseDir itself; a relative Root is joined to baseDir.
// A relative ElevationDir is joined to the resolved primary root.
func (c *Config) Resolve(baseDir string) (Roots, error) {
	primary := c.Root
	switch {
	case primary == "":
		primary = baseDir
	case !filepath.IsAbs(primary):
		primary = filepath.Join(baseDir, primary)
	}

	primary, err := filepath.Abs(primary)
	if err != nil {
		return Roots{}, fmt.Errorf("failed to resolve root %q: %w", c.Root, err)
	}

	elevation := c.ElevationDir
	if elevation == "" {
		elevation = DefaultElevationDir
	}
	if !filepath.IsAbs(elevation) {
		elevation = filepath.Join(primary, elevation)
	}

	return Roots{Primary: primary, Elevation: filepath.Clean(elevation)}, nil
}
