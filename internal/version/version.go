// ABOUTME: Version constants for the runtime
// ABOUTME: Reported by example programs and diagnostics
package version

const (
	// Version is the runtime release version.
	Version = "0.1.0"

	// Product is the human-readable project name.
	Product = "bevy-openal"
)
