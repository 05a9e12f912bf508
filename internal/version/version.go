// Package version carries the build metadata stamped into the foodsearch
// binary at build time via -ldflags.
package version

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
