// Package elevserve provides a static file server for a map front-end and
// the elevation rasters it loads.
//
// Two directories are served. The primary root holds the application bundle
// (HTML, CSS, JavaScript, assets). The elevation root holds raster files and
// is addressed through the "/elevation-data/" URL prefix; responses from it
// carry CORS and cache headers so that tiles can be fetched cross-origin.
// Files ending in ".tif" or ".tiff" are always served as "image/tiff".
//
// # Quick Start
//
//	es, err := elevserve.New(
//	    elevserve.WithRoot("/srv/frontend"),
//	    elevserve.WithPort(3000),
//	)
//	if err != nil {
//	    slog.Error("failed to create server", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	es.Start(ctx) // blocks until context is cancelled
//
// Without [WithRoot] the directory containing the running executable is
// served, and without [WithElevationDir] the elevation root is its
// "elevation-data" subdirectory.
//
// # Architecture
//
//   - internal/server: routing, path resolution, header decoration, listener lifecycle
//   - internal/catalog: elevation root inspection for diagnostics
//   - config: optional YAML configuration and root resolution
//
// The internal packages are not part of the public API and may change
// without notice.
package elevserve
