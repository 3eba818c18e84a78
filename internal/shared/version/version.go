// Package version holds the build version, set with
// -ldflags "-X github.com/caseguard/caseguard/internal/shared/version.Current=v1.2.3".
package version

import "strings"

var Current = "dev"

// Normalize ensures version string has "v" prefix.
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" || version == "dev" {
		return version
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// String returns the normalized build version.
func String() string {
	return Normalize(Current)
}
