package version

import (
	"runtime/debug"
)

// Version information for idlocator
const (
	// Version is the current semantic version of idlocator
	Version = "0.1.0"
)

// BuildDate and GitCommit are set during build time (use -ldflags)
var (
	BuildDate = "development"
	GitCommit = "unknown"
)

// Info returns version information as a string
func Info() string {
	return Version
}

// FullInfo returns detailed version information
func FullInfo() string {
	return "idlocator " + Version + " (commit: " + commit() + ", built: " + BuildDate + ", " + goVersion() + ")"
}

func commit() string {
	if GitCommit != "unknown" {
		return GitCommit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return GitCommit
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return GitCommit
}

func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "go unknown"
}
