// Package wpdb holds application-wide metadata for the wpdb CLI.
package wpdb

var (
	// Version is set by the build via ldflags.
	Version = "v0.1.0"

	// Build is the build timestamp, set via ldflags.
	Build = "n/a"
)
