// Package settings provides build metadata, runtime configuration, and
// context helpers used across the searchbar CLI and library packages.
package settings

import "time"

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "searchbar"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds configuration settings for a single execution of the application.
// CLI flags are folded into it after the config file has been merged, so
// commands read one resolved view instead of juggling both.
type Run struct {
	MinLogLevel   int8
	LogFile       string
	ConfigPath    string
	Endpoint      string
	NoColor       bool
	Interactive   bool
	SequenceGuard bool
	Debounce      time.Duration
	PrintQuery    bool
	ExitOnError   bool
}

// NewCliParams initializes and returns a pointer to a Run struct with default CLI parameters.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Interactive: true,
		ExitOnError: true,
	}
}
