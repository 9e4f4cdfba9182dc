// Package catalog inspects the elevation root for diagnostics.
//
// The main components are:
//
//   - [Scan]: reads a directory once and describes its direct entries
//   - [Report]: the result, including whether the directory exists at all
//   - [File]: one entry with its size and modification time
//
// A missing directory is reported, not treated as an error: the server runs
// without elevation data and answers 404 for it.
package catalog
