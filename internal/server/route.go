package server

import (
	"net/http"
	"path"
	"path/filepath"
	"strings"
)

const (
	// ElevationPrefix is the URL prefix reserved for the elevation root.
	ElevationPrefix = "/elevation-data/"

	tiffContentType       = "image/tiff"
	elevationCacheControl = "public, max-age=3600"
	corsAllowMethods      = "GET, OPTIONS"
	corsAllowHeaders      = "Content-Type"
)

// route dispatches a request on method first, then on path prefix.
func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		writePreflight(w)
		return
	case http.MethodGet, http.MethodHead:
	default:
		http.Error(w, "Unsupported method", http.StatusNotImplemented)
		return
	}

	target := s.resolve(r.URL.Path)
	decorate(w.Header(), r.URL.Path, target)

	// ServeFile maps fs.ErrNotExist to 404, fs.ErrPermission to 403 and
	// anything else to 500.
	http.ServeFile(w, r, target)
}

// resolve maps a request path onto a filesystem path in exactly one root.
func (s *Server) resolve(urlPath string) string {
	if IsElevationPath(urlPath) {
		return ResolveElevation(s.cfg.ElevationRoot, urlPath)
	}
	return ResolvePrimary(s.cfg.PrimaryRoot, urlPath)
}

// IsElevationPath reports whether urlPath addresses the elevation root.
func IsElevationPath(urlPath string) bool {
	return strings.HasPrefix(urlPath, ElevationPrefix)
}

// ResolvePrimary joins urlPath to the primary root.
//
// The path is cleaned as a rooted path before joining, so ".." elements can
// never climb above root.
func ResolvePrimary(root, urlPath string) string {
	return joinRooted(root, urlPath)
}

// ResolveElevation strips [ElevationPrefix] from urlPath and joins the
// remainder to the elevation root, with the same containment as
// [ResolvePrimary].
func ResolveElevation(root, urlPath string) string {
	return joinRooted(root, strings.TrimPrefix(urlPath, ElevationPrefix))
}

func joinRooted(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(path.Clean("/"+rel)))
}

// decorate sets the headers that depend on the request: the TIFF content
// type override and, for the elevation prefix, CORS and caching.
//
// urlPath must be the unmodified request path, target the resolved file.
func decorate(h http.Header, urlPath, target string) {
	if strings.HasSuffix(target, ".tif") || strings.HasSuffix(target, ".tiff") {
		h.Set("Content-Type", tiffContentType)
	}

	if IsElevationPath(urlPath) {
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", corsAllowMethods)
		h.Set("Cache-Control", elevationCacheControl)
	}
}

// writePreflight answers a CORS preflight without touching the filesystem.
func writePreflight(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", corsAllowMethods)
	h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	h.Set("Content-Length", "0")
	w.WriteHeader(http.StatusOK)
}
