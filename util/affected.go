package util

import (
	"github.com/Masterminds/semver/v3"
	npm "github.com/aquasecurity/go-npm-version/pkg"
	pep440 "github.com/aquasecurity/go-pep440-version"
	"github.com/google/osv-scanner/pkg/models"
)

// IsVersionAffectedAny checks if a version is affected by any of the provided affected ranges
// This is a convenience wrapper around IsVersionAffected for multiple affected entries
func IsVersionAffectedAny(version string, allAffected []models.Affected) bool {
	for _, affected := range allAffected {
		if IsVersionAffected(version, affected) {
			return true
		}
	}
	return false
}

// IsVersionAffected checks if a version is affected by OSV ranges
// Uses ecosystem-specific version parsers for accurate comparison
func IsVersionAffected(version string, affected models.Affected) bool {
	for _, v := range affected.Versions {
		if version == v {
			return true
		}
	}

	for _, vrange := range affected.Ranges {
		// Only SEMVER and ECOSYSTEM ranges carry comparable versions
		if vrange.Type != models.RangeEcosystem && vrange.Type != models.RangeSemVer {
			continue
		}
		if isVersionInRange(version, vrange, string(affected.Package.Ecosystem)) {
			return true
		}
	}

	return false
}

// HasCheckableRange reports whether the affected entry carries version data
// the comparators can evaluate. Entries without any (e.g. GIT commit
// ranges) cannot be re-checked client-side.
func HasCheckableRange(affected models.Affected) bool {
	if len(affected.Versions) > 0 {
		return true
	}
	for _, vrange := range affected.Ranges {
		if vrange.Type == models.RangeEcosystem || vrange.Type == models.RangeSemVer {
			return true
		}
	}
	return false
}

// rangeBounds collects the last introduced/fixed/last_affected events of a range.
func rangeBounds(vrange models.Range) (introduced, fixed, lastAffected string) {
	for _, event := range vrange.Events {
		if event.Introduced != "" {
			introduced = event.Introduced
		}
		if event.Fixed != "" {
			fixed = event.Fixed
		}
		if event.LastAffected != "" {
			lastAffected = event.LastAffected
		}
	}
	return introduced, fixed, lastAffected
}

// isVersionInRange checks if a version falls within an OSV range using the
// ecosystem-specific parser for npm and PyPI packages. A range must carry
// both a lower bound (introduced) and an upper bound (fixed or
// last_affected) to count, which avoids false positives on incomplete
// advisory data.
func isVersionInRange(version string, vrange models.Range, ecosystem string) bool {
	introduced, fixed, lastAffected := rangeBounds(vrange)
	if introduced == "" || (fixed == "" && lastAffected == "") {
		return false
	}

	switch ecosystem {
	case "npm":
		return isVersionInRangeNPM(version, introduced, fixed, lastAffected)
	case "PyPI":
		return isVersionInRangePython(version, introduced, fixed, lastAffected)
	}
	return isVersionInRangeSemver(version, introduced, fixed, lastAffected)
}

func isVersionInRangeSemver(version, introduced, fixed, lastAffected string) bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return isVersionInRangeString(version, introduced, fixed, lastAffected)
	}

	// "0" means "from the beginning of time" in the OSV spec
	if introduced != "0" {
		if iv, err := semver.NewVersion(introduced); err == nil && v.LessThan(iv) {
			return false
		}
	}
	if fixed != "" {
		if fv, err := semver.NewVersion(fixed); err == nil && !v.LessThan(fv) {
			return false
		}
	}
	if lastAffected != "" {
		if lv, err := semver.NewVersion(lastAffected); err == nil && v.GreaterThan(lv) {
			return false
		}
	}
	return true
}

func isVersionInRangeNPM(version, introduced, fixed, lastAffected string) bool {
	v, err := npm.NewVersion(version)
	if err != nil {
		return isVersionInRangeString(version, introduced, fixed, lastAffected)
	}

	if introduced != "0" {
		if iv, err := npm.NewVersion(introduced); err == nil && v.LessThan(iv) {
			return false
		}
	}
	if fixed != "" {
		if fv, err := npm.NewVersion(fixed); err == nil && !v.LessThan(fv) {
			return false
		}
	}
	if lastAffected != "" {
		if lv, err := npm.NewVersion(lastAffected); err == nil && v.GreaterThan(lv) {
			return false
		}
	}
	return true
}

func isVersionInRangePython(version, introduced, fixed, lastAffected string) bool {
	v, err := pep440.Parse(version)
	if err != nil {
		return isVersionInRangeString(version, introduced, fixed, lastAffected)
	}

	if introduced != "0" {
		if iv, err := pep440.Parse(introduced); err == nil && v.LessThan(iv) {
			return false
		}
	}
	if fixed != "" {
		if fv, err := pep440.Parse(fixed); err == nil && !v.LessThan(fv) {
			return false
		}
	}
	if lastAffected != "" {
		if lv, err := pep440.Parse(lastAffected); err == nil && v.GreaterThan(lv) {
			return false
		}
	}
	return true
}

// isVersionInRangeString performs string-based comparison as fallback
func isVersionInRangeString(version, introduced, fixed, lastAffected string) bool {
	if introduced != "" && introduced != "0" && version < introduced {
		return false
	}
	if fixed != "" && version >= fixed {
		return false
	}
	if lastAffected != "" && version > lastAffected {
		return false
	}
	return true
}

// ExtractFixedVersions returns the deduplicated union of fixed-version
// events across the affected entries, preserving first-seen order.
func ExtractFixedVersions(allAffected []models.Affected) []string {
	var fixedVersions []string
	seen := make(map[string]bool)
	for _, affected := range allAffected {
		for _, vrange := range affected.Ranges {
			for _, event := range vrange.Events {
				if event.Fixed != "" && !seen[event.Fixed] {
					fixedVersions = append(fixedVersions, event.Fixed)
					seen[event.Fixed] = true
				}
			}
		}
	}
	return fixedVersions
}
