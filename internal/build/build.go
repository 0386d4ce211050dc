// Package build holds version information injected at link time.
package build

// Set with -ldflags "-X go.trai.ch/fpdgen/internal/build.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
