// Package version provides the build version.
package version

import "runtime/debug"

// Version is set at build time via ldflags. When built from source with
// `go install`, the module version from build info is used instead.
var Version = "unknown"

func init() {
	if Version != "unknown" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		Version = info.Main.Version
	}
}
