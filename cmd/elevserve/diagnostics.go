package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jpalmerr/elevserve/config"
	"github.com/jpalmerr/elevserve/internal/catalog"
)

// printDiagnostics describes what is about to be served.
func printDiagnostics(w io.Writer, roots config.Roots, report catalog.Report) {
	fmt.Fprintf(w, "Serving frontend from:       %s\n", roots.Primary)
	fmt.Fprintf(w, "Serving elevation data from: %s\n", roots.Elevation)

	if !report.Exists {
		fmt.Fprintf(w, "Elevation dir exists:        %s\n", color.RedString("no"))
		return
	}
	fmt.Fprintf(w, "Elevation dir exists:        %s\n", color.GreenString("yes"))

	fmt.Fprintf(w, "Elevation files:             %d entries, %d rasters, %s\n",
		len(report.Files), report.Rasters(), humanize.Bytes(uint64(report.TotalSize())))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, f := range report.Files {
		size := humanize.Bytes(uint64(f.Size))
		if f.IsDir {
			size = "<dir>"
		}
		fmt.Fprintf(tw, "  %s\t%s\t\n", f.Name, size)
	}
	_ = tw.Flush()
}

// printListening tells the user where to point the browser.
func printListening(w io.Writer, url string) {
	fmt.Fprintf(w, "Server running at %s\n", color.CyanString(url))
	fmt.Fprintln(w, "Press Ctrl+C to stop")
}
