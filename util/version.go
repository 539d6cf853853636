package util

import (
	"regexp"
	"strconv"
	"strings"
)

// versionPattern matches major[.minor][.patch] with an optional prerelease
// tag introduced by "-" or ".".
var versionPattern = regexp.MustCompile(`^(\d+)(?:\.(\d+))?(?:\.(\d+))?(?:[-.]([0-9A-Za-z][0-9A-Za-z.\-]*))?$`)

// ParsedVersion holds the components of a loosely-structured version string.
// Derived transiently; never persisted.
type ParsedVersion struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
	Original   string
}

// ParseVersion parses a version string into numeric components. A single
// leading "v" is stripped, absent components default to 0 and Original keeps
// the input verbatim. Returns nil when the string does not match the
// pattern at all.
//
// This is intentionally a best-effort parser for lockfile version strings,
// not a full semantic-versioning implementation.
func ParseVersion(version string) *ParsedVersion {
	core := strings.TrimPrefix(strings.TrimSpace(version), "v")
	matches := versionPattern.FindStringSubmatch(core)
	if matches == nil {
		return nil
	}

	parsed := &ParsedVersion{Original: version, Prerelease: matches[4]}
	parsed.Major, _ = strconv.Atoi(matches[1])
	if matches[2] != "" {
		parsed.Minor, _ = strconv.Atoi(matches[2])
	}
	if matches[3] != "" {
		parsed.Patch, _ = strconv.Atoi(matches[3])
	}
	return parsed
}

// CompareVersions orders two version strings. Numeric components compare
// major, then minor, then patch; a prerelease sorts below the corresponding
// release; two prereleases compare lexicographically on the tag. When
// either side fails to parse, both fall back to raw string comparison so
// the ordering stays total and deterministic.
func CompareVersions(a, b string) int {
	pa := ParseVersion(a)
	pb := ParseVersion(b)
	if pa == nil || pb == nil {
		return strings.Compare(a, b)
	}

	if pa.Major != pb.Major {
		return intCompare(pa.Major, pb.Major)
	}
	if pa.Minor != pb.Minor {
		return intCompare(pa.Minor, pb.Minor)
	}
	if pa.Patch != pb.Patch {
		return intCompare(pa.Patch, pb.Patch)
	}

	// Pre-release sorts below the corresponding release.
	switch {
	case pa.Prerelease == "" && pb.Prerelease == "":
		return 0
	case pa.Prerelease == "":
		return 1
	case pb.Prerelease == "":
		return -1
	}
	return strings.Compare(pa.Prerelease, pb.Prerelease)
}

// IsGreaterOrEqual reports whether version a orders at or above version b.
func IsGreaterOrEqual(a, b string) bool {
	return CompareVersions(a, b) >= 0
}

func intCompare(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
