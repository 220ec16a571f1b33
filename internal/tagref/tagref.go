// Package tagref normalizes tag input before it reaches release resolution.
package tagref

import (
	"strings"

	"golang.org/x/mod/semver"
)

// RefPrefix is the ref namespace a pipeline passes for tag pushes.
const RefPrefix = "refs/tags/"

// Normalize trims surrounding whitespace and a leading RefPrefix.
func Normalize(raw string) string {
	return strings.TrimPrefix(strings.TrimSpace(raw), RefPrefix)
}

// IsSemver reports whether tag is a semantic version such as "v1.2.3".
func IsSemver(tag string) bool {
	return semver.IsValid(tag)
}

// IsPrerelease reports whether tag is a semantic version with a
// pre-release suffix, e.g. "v1.2.3-rc.1".
func IsPrerelease(tag string) bool {
	return semver.IsValid(tag) && semver.Prerelease(tag) != ""
}
