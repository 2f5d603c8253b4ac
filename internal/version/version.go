// Package version exposes the application version string.
// The value is overridden at build time via -ldflags.
package version

// Version is the application version, set at build time.
var Version = "dev"
