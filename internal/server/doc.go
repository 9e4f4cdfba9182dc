// Package server provides the static file server for elevserve.
//
// This package is internal to elevserve and handles all HTTP concerns:
//
//   - Application bundle: any path outside "/elevation-data/" is served from the primary root
//   - Elevation rasters: "/elevation-data/<name>" is served from the elevation root with
//     CORS and cache headers
//   - Preflight: OPTIONS on any path answers with CORS headers and an empty body
//
// Each request goes through the same composition: route on method, resolve the
// path against exactly one root, decorate the response headers, then delegate
// to [net/http.ServeFile].
//
// The server supports graceful shutdown via context cancellation.
//
// Users of the elevserve library should not need to interact with this
// package directly. The server is started by [elevserve.ElevServe.Start].
package server
