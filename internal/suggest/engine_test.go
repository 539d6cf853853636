package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depscout/depscout-backend/model"
)

func vulnResult(name, version string, vulns ...model.VulnerabilityRecord) model.VulnResult {
	return model.VulnResult{
		Dependency:      model.NewDependency(model.EcosystemNPM, name, version),
		Vulnerabilities: vulns,
	}
}

func scorePtr(score float64) *float64 {
	return &score
}

func TestSuggestSingleVulnerability(t *testing.T) {
	result := Suggest([]model.VulnResult{
		vulnResult("lodash", "4.17.20", model.VulnerabilityRecord{
			ID:            "GHSA-35jh-r3h4-6jhm",
			Severity:      "HIGH",
			FixedVersions: []string{"4.17.21"},
		}),
	})

	require.Len(t, result.Suggestions, 1)
	s := result.Suggestions[0]
	assert.Equal(t, "lodash", s.Package)
	assert.Equal(t, "4.17.20", s.CurrentVersion)
	assert.Equal(t, "4.17.21", s.SuggestedVersion)
	assert.Equal(t, model.ActionUpgrade, s.Action)
	assert.Equal(t, model.PriorityHigh, s.Priority)
	assert.Equal(t, []string{"GHSA-35jh-r3h4-6jhm"}, s.VulnerabilitiesFixed)

	assert.Equal(t, 1, result.Summary.Total)
	assert.Equal(t, map[string]int{
		model.PriorityCritical: 0,
		model.PriorityHigh:     1,
		model.PriorityMedium:   0,
		model.PriorityLow:      0,
	}, result.Summary.ByPriority)
}

func TestSuggestSkipsCleanDependencies(t *testing.T) {
	result := Suggest([]model.VulnResult{
		vulnResult("clean", "1.0.0"),
	})
	assert.Empty(t, result.Suggestions)
	assert.Equal(t, 0, result.Summary.Total)
	assert.Equal(t, map[string]int{
		model.PriorityCritical: 0,
		model.PriorityHigh:     0,
		model.PriorityMedium:   0,
		model.PriorityLow:      0,
	}, result.Summary.ByPriority)
}

func TestSuggestOrdersByPriorityStable(t *testing.T) {
	result := Suggest([]model.VulnResult{
		vulnResult("low-pkg", "1.0.0", model.VulnerabilityRecord{ID: "V-1", Severity: "LOW", FixedVersions: []string{"1.0.1"}}),
		vulnResult("crit-pkg", "1.0.0", model.VulnerabilityRecord{ID: "V-2", Severity: "CRITICAL", FixedVersions: []string{"1.0.1"}}),
		vulnResult("med-pkg", "1.0.0", model.VulnerabilityRecord{ID: "V-3", Severity: "MEDIUM", FixedVersions: []string{"1.0.1"}}),
		vulnResult("crit-pkg-2", "1.0.0", model.VulnerabilityRecord{ID: "V-4", Severity: "CRITICAL", FixedVersions: []string{"1.0.1"}}),
	})

	require.Len(t, result.Suggestions, 4)
	assert.Equal(t, "crit-pkg", result.Suggestions[0].Package)
	assert.Equal(t, "crit-pkg-2", result.Suggestions[1].Package)
	assert.Equal(t, "med-pkg", result.Suggestions[2].Package)
	assert.Equal(t, "low-pkg", result.Suggestions[3].Package)
}

func TestSuggestIdempotent(t *testing.T) {
	input := []model.VulnResult{
		vulnResult("a", "1.0.0", model.VulnerabilityRecord{ID: "V-1", Severity: "HIGH", FixedVersions: []string{"1.1.0"}}),
		vulnResult("b", "2.0.0", model.VulnerabilityRecord{ID: "V-2", Severity: "LOW", FixedVersions: []string{"2.0.1"}}),
	}
	first := Suggest(input)
	second := Suggest(input)
	assert.Equal(t, first, second)
}

func TestSuggestPicksMinimumFixAboveCurrent(t *testing.T) {
	result := Suggest([]model.VulnResult{
		vulnResult("pkg", "2.0.0",
			model.VulnerabilityRecord{ID: "V-1", Severity: "HIGH", FixedVersions: []string{"1.5.0", "3.0.0", "2.1.0"}},
		),
	})
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "2.1.0", result.Suggestions[0].SuggestedVersion)
}

func TestSuggestStaleAdvisoryFallsBackToHighestFix(t *testing.T) {
	result := Suggest([]model.VulnResult{
		vulnResult("pkg", "5.0.0",
			model.VulnerabilityRecord{ID: "V-1", Severity: "HIGH", FixedVersions: []string{"1.0.0", "2.0.0"}},
		),
	})
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "2.0.0", result.Suggestions[0].SuggestedVersion)
}

func TestSuggestUnparsableCurrentUsesMinimumFix(t *testing.T) {
	result := Suggest([]model.VulnResult{
		vulnResult("pkg", "not-a-version",
			model.VulnerabilityRecord{ID: "V-1", Severity: "HIGH", FixedVersions: []string{"2.0.0", "1.0.0"}},
		),
	})
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "1.0.0", result.Suggestions[0].SuggestedVersion)
}

func TestSuggestNoFixedVersionsIsReview(t *testing.T) {
	result := Suggest([]model.VulnResult{
		vulnResult("pkg", "1.0.0",
			model.VulnerabilityRecord{ID: "V-1", Severity: "HIGH", FixedVersions: []string{}},
		),
	})
	require.Len(t, result.Suggestions, 1)
	s := result.Suggestions[0]
	assert.Equal(t, model.ActionReview, s.Action)
	assert.Empty(t, s.SuggestedVersion)
	assert.Contains(t, s.Notes, "No fixed version available yet - review the advisory for mitigations")
}

func TestSuggestWorstSeverityWins(t *testing.T) {
	result := Suggest([]model.VulnResult{
		vulnResult("pkg", "1.0.0",
			model.VulnerabilityRecord{ID: "V-1", Severity: "LOW", FixedVersions: []string{"1.0.1"}},
			model.VulnerabilityRecord{ID: "V-2", SeverityScore: scorePtr(9.8), FixedVersions: []string{"1.1.0"}},
			model.VulnerabilityRecord{ID: "V-3", Severity: "MEDIUM", FixedVersions: []string{"1.0.5"}},
		),
	})
	require.Len(t, result.Suggestions, 1)
	s := result.Suggestions[0]
	assert.Equal(t, "CRITICAL", s.Severity)
	assert.Equal(t, model.PriorityCritical, s.Priority)
	assert.Equal(t, []string{"V-1", "V-2", "V-3"}, s.VulnerabilitiesFixed)
	// Union across all vulnerabilities, minimum above current.
	assert.Equal(t, "1.0.1", s.SuggestedVersion)
}

func TestSuggestUnknownSeverityIsLowPriority(t *testing.T) {
	result := Suggest([]model.VulnResult{
		vulnResult("pkg", "1.0.0",
			model.VulnerabilityRecord{ID: "V-1", FixedVersions: []string{"1.0.1"}},
		),
	})
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "UNKNOWN", result.Suggestions[0].Severity)
	assert.Equal(t, model.PriorityLow, result.Suggestions[0].Priority)
}

func TestSuggestMajorUpgradeNote(t *testing.T) {
	result := Suggest([]model.VulnResult{
		vulnResult("pkg", "1.2.0",
			model.VulnerabilityRecord{ID: "V-1", Severity: "HIGH", FixedVersions: []string{"2.0.0"}},
		),
	})
	require.Len(t, result.Suggestions, 1)
	notes := result.Suggestions[0].Notes
	assert.Contains(t, notes, "Upgrade from 1.2.0 to 2.0.0")
	assert.Contains(t, notes, "Major version upgrade - may include breaking changes")
}

func TestSuggestCollectsCVEAliases(t *testing.T) {
	result := Suggest([]model.VulnResult{
		vulnResult("pkg", "1.0.0",
			model.VulnerabilityRecord{ID: "GHSA-1", Severity: "HIGH", FixedVersions: []string{"1.0.1"}, Aliases: []string{"CVE-2024-1234", "OSV-2024-1"}},
			model.VulnerabilityRecord{ID: "GHSA-2", Severity: "HIGH", FixedVersions: []string{"1.0.1"}, Aliases: []string{"CVE-2024-1234", "CVE-2024-5678"}},
		),
	})
	require.Len(t, result.Suggestions, 1)
	assert.Contains(t, result.Suggestions[0].Notes, "Related CVEs: CVE-2024-1234, CVE-2024-5678")
}

// Only upgrade and review are produced today; investigate is declared for
// callers but has no producing path yet.
func TestActionValues(t *testing.T) {
	withFix := Suggest([]model.VulnResult{
		vulnResult("pkg", "1.0.0", model.VulnerabilityRecord{ID: "V-1", Severity: "HIGH", FixedVersions: []string{"1.0.1"}}),
	})
	require.Len(t, withFix.Suggestions, 1)
	assert.Equal(t, model.ActionUpgrade, withFix.Suggestions[0].Action)

	withoutFix := Suggest([]model.VulnResult{
		vulnResult("pkg", "1.0.0", model.VulnerabilityRecord{ID: "V-2", Severity: "HIGH"}),
	})
	require.Len(t, withoutFix.Suggestions, 1)
	assert.Equal(t, model.ActionReview, withoutFix.Suggestions[0].Action)
}

func TestSuggestEmptyInput(t *testing.T) {
	result := Suggest(nil)
	assert.NotNil(t, result.Suggestions)
	assert.Empty(t, result.Suggestions)
	assert.Equal(t, 0, result.Summary.Total)
	assert.Len(t, result.Summary.ByPriority, 4)
}
