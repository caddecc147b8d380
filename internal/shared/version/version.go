// Package version holds build metadata stamped in at link time.
package version

import "fmt"

// Set via -ldflags "-X servit/internal/shared/version.Version=..." at build.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String returns the full version line shown by the CLI.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate)
}
