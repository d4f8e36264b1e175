package contracts

import (
	"fmt"
	"runtime"
)

const (
	// Version is the current version of the application
	Version = "0.1.0"

	// DataFormatVersion is the version of the daily and summary table layout
	DataFormatVersion = "v1"
)

// GitCommit is set during build using ldflags
var GitCommit = "unknown"

// GetVersionString returns a formatted version string
func GetVersionString() string {
	return fmt.Sprintf("openrange v%s", Version)
}

// GetFullVersionString adds the commit, table layout and Go release.
func GetFullVersionString() string {
	return fmt.Sprintf("%s (commit: %s, tables: %s, %s)",
		GetVersionString(), GitCommit, DataFormatVersion, runtime.Version())
}
