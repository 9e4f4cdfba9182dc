package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if cfg.Root != "" {
		t.Errorf("Root = %q, want empty", cfg.Root)
	}
	if cfg.ElevationDir != "elevation-data" {
		t.Errorf("ElevationDir = %q, want %q", cfg.ElevationDir, "elevation-data")
	}
	if cfg.ShutdownTimeout.Duration() != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 5s", cfg.ShutdownTimeout.Duration())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestParse_EmptyAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.ElevationDir != DefaultElevationDir {
		t.Errorf("ElevationDir = %q, want %q", cfg.ElevationDir, DefaultElevationDir)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
}

func TestParse_FullConfig(t *testing.T) {
	yaml := `
port: 9090
root: ./frontend
elevation_dir: /data/srtm
shutdown_timeout: 10s
log_level: debug
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.Root != "./frontend" {
		t.Errorf("Root = %q, want %q", cfg.Root, "./frontend")
	}
	if cfg.ElevationDir != "/data/srtm" {
		t.Errorf("ElevationDir = %q, want %q", cfg.ElevationDir, "/data/srtm")
	}
	if cfg.ShutdownTimeout.Duration() != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout.Duration())
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"port too high", "port: 70000", "port must be between 1 and 65535"},
		{"negative port", "port: -1", "port must be between 1 and 65535"},
		{"bad duration", "shutdown_timeout: soon", "invalid duration"},
		{"negative timeout", "shutdown_timeout: -1s", "cannot be negative"},
		{"bad level", "log_level: loud", "unknown log_level"},
		{"bad yaml", "port: [", "failed to parse YAML"},
		{"unset env", "root: ${ELEVSERVE_TEST_UNSET_ROOT}", "is not set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("Parse() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("ELEVSERVE_TEST_DATA", "/mnt/dem")

	yaml := `
root: ${ELEVSERVE_TEST_MISSING:-/srv/app}
elevation_dir: ${ELEVSERVE_TEST_DATA}/tiles
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Root != "/srv/app" {
		t.Errorf("Root = %q, want %q", cfg.Root, "/srv/app")
	}
	if cfg.ElevationDir != "/mnt/dem/tiles" {
		t.Errorf("ElevationDir = %q, want %q", cfg.ElevationDir, "/mnt/dem/tiles")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elevserve.yaml")
	if err := os.WriteFile(path, []byte("port: 8081\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 8081 {
		t.Errorf("Port = %d, want 8081", cfg.Port)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() expected error for missing file, got nil")
	}
	if !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("Load() error = %v, want 'failed to read'", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Errorf("ParseLevel(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	base := t.TempDir()
	abs := t.TempDir()

	tests := []struct {
		name          string
		cfg           Config
		wantPrimary   string
		wantElevation string
	}{
		{
			name:          "defaults",
			cfg:           Config{ElevationDir: DefaultElevationDir},
			wantPrimary:   base,
			wantElevation: filepath.Join(base, "elevation-data"),
		},
		{
			name:          "empty elevation dir falls back",
			cfg:           Config{},
			wantPrimary:   base,
			wantElevation: filepath.Join(base, "elevation-data"),
		},
		{
			name:          "relative root",
			cfg:           Config{Root: "frontend", ElevationDir: "dem"},
			wantPrimary:   filepath.Join(base, "frontend"),
			wantElevation: filepath.Join(base, "frontend", "dem"),
		},
		{
			name:          "absolute elevation dir",
			cfg:           Config{Root: "frontend", ElevationDir: abs},
			wantPrimary:   filepath.Join(base, "frontend"),
			wantElevation: abs,
		},
		{
			name:          "absolute root",
			cfg:           Config{Root: abs, ElevationDir: "../shared"},
			wantPrimary:   abs,
			wantElevation: filepath.Join(filepath.Dir(abs), "shared"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots, err := tt.cfg.Resolve(base)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if roots.Primary != tt.wantPrimary {
				t.Errorf("Primary = %q, want %q", roots.Primary, tt.wantPrimary)
			}
			if roots.Elevation != tt.wantElevation {
				t.Errorf("Elevation = %q, want %q", roots.Elevation, tt.wantElevation)
			}
		})
	}
}

func TestExecutableDir(t *testing.T) {
	dir, err := ExecutableDir()
	if err != nil {
		t.Fatalf("ExecutableDir() error = %v", err)
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ExecutableDir() = %q, want absolute path", dir)
	}
}
