package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// File describes one direct entry of a scanned directory.
type File struct {
	Name    string
	Size    int64
	IsDir   bool
	ModTime time.Time
}

// Raster reports whether the entry looks like a TIFF raster by suffix.
func (f File) Raster() bool {
	return !f.IsDir && (strings.HasSuffix(f.Name, ".tif") || strings.HasSuffix(f.Name, ".tiff"))
}

// Report is the outcome of [Scan].
type Report struct {
	// Dir is the absolute path that was scanned.
	Dir string

	// Exists is false when Dir is absent.
	Exists bool

	// Files holds the direct entries of Dir sorted by name.
	Files []File
}

// Names returns the entry names in order.
func (r Report) Names() []string {
	names := make([]string, len(r.Files))
	for i, f := range r.Files {
		names[i] = f.Name
	}
	return names
}

// TotalSize sums the sizes of regular files.
func (r Report) TotalSize() int64 {
	var total int64
	for _, f := range r.Files {
		if !f.IsDir {
			total += f.Size
		}
	}
	return total
}

// Rasters counts entries for which [File.Raster] is true.
func (r Report) Rasters() int {
	n := 0
	for _, f := range r.Files {
		if f.Raster() {
			n++
		}
	}
	return n
}

// Scan lists the direct entries of dir.
//
// Returns an error if dir exists but is not a directory or cannot be read.
func Scan(dir string) (Report, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Report{}, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	report := Report{Dir: abs}

	info, err := os.Stat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return report, nil
	}
	if err != nil {
		return report, fmt.Errorf("failed to stat %s: %w", abs, err)
	}
	if !info.IsDir() {
		return report, fmt.Errorf("%s is not a directory", abs)
	}
	report.Exists = true

	entries, err := os.ReadDir(abs)
	if err != nil {
		return report, fmt.Errorf("failed to read %s: %w", abs, err)
	}

	report.Files = make([]File, 0, len(entries))
	for _, e := range entries {
		fi, err := e.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		report.Files = append(report.Files, File{
			Name:    e.Name(),
			Size:    fi.Size(),
			IsDir:   e.IsDir(),
			ModTime: fi.ModTime(),
		})
	}

	sort.Slice(report.Files, func(i, j int) bool {
		return report.Files[i].Name < report.Files[j].Name
	})
	return report, nil
}
