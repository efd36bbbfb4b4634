// Package version reports the forecast-desk build version.
package version

import "runtime/debug"

// Version is the release version, set at build time using ldflags.
var Version = "development"

// Commit is the git commit hash, set at build time using ldflags.
var Commit = "unknown"

// String returns the version, with the commit appended when known.
func String() string {
	if Commit != "unknown" && Commit != "" {
		return Version + "+" + Commit
	}
	return Version
}

// GoVersion returns the toolchain the binary was built with.
func GoVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}
