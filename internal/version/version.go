// Package version resolves the version string the CLI reports.
package version

import (
	"runtime/debug"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Fallback is reported when no build metadata carries a usable version.
const Fallback = "0.0.0-dev"

// Resolve prefers the ldflags-injected version, then the main module version
// recorded by `go install`, then Fallback. Values that are not semantic
// versions (such as "dev" or "(devel)") are skipped.
func Resolve(injected string) string {
	var module string
	if info, ok := debug.ReadBuildInfo(); ok {
		module = info.Main.Version
	}
	return resolve(injected, module)
}

func resolve(candidates ...string) string {
	for _, c := range candidates {
		if v, err := parseSemver(c); err == nil {
			return v.String()
		}
	}
	return Fallback
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	return semver.StrictNewVersion(version)
}
