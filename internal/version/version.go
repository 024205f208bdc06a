// Package version holds build information injected at build time via ldflags.
package version

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info returns formatted version information.
func Info() string {
	return fmt.Sprintf("gitprompt %s (commit: %s, built: %s)", Version, Commit, Date)
}
