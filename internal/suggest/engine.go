// Package suggest implements the fix-suggestion engine: it turns
// vulnerability-annotated dependencies into ranked upgrade suggestions
// using the pragmatic version comparator and the severity normalizer.
package suggest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/depscout/depscout-backend/model"
	"github.com/depscout/depscout-backend/util"
)

// Result is the engine output: suggestions ordered by descending priority
// tier plus per-tier counts over the emitted suggestions.
type Result struct {
	Suggestions []model.FixSuggestion   `json:"suggestions"`
	Summary     model.SuggestionSummary `json:"summary"`
}

// Suggest computes one fix suggestion per vulnerable dependency.
// Dependencies with no vulnerabilities produce no suggestion. The output
// order is a stable sort by priority tier only; entries with equal
// priority keep their relative input order.
func Suggest(results []model.VulnResult) Result {
	suggestions := make([]model.FixSuggestion, 0, len(results))
	for _, entry := range results {
		if len(entry.Vulnerabilities) == 0 {
			continue
		}
		suggestions = append(suggestions, buildSuggestion(entry))
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return priorityRank(suggestions[i].Priority) > priorityRank(suggestions[j].Priority)
	})

	summary := model.SuggestionSummary{
		Total: len(suggestions),
		ByPriority: map[string]int{
			model.PriorityCritical: 0,
			model.PriorityHigh:     0,
			model.PriorityMedium:   0,
			model.PriorityLow:      0,
		},
	}
	for _, s := range suggestions {
		summary.ByPriority[s.Priority]++
	}

	return Result{Suggestions: suggestions, Summary: summary}
}

func buildSuggestion(entry model.VulnResult) model.FixSuggestion {
	dep := entry.Dependency

	fixed := unionFixedVersions(entry.Vulnerabilities)
	severity := worstSeverity(entry.Vulnerabilities)
	target := suggestedUpgrade(dep.Version, fixed)

	action := model.ActionReview
	if target != "" {
		action = model.ActionUpgrade
	}

	suggestion := model.FixSuggestion{
		Package:              dep.Name,
		Ecosystem:            dep.Ecosystem,
		CurrentVersion:       dep.Version,
		SuggestedVersion:     target,
		VulnerabilitiesFixed: vulnerabilityIDs(entry.Vulnerabilities),
		Severity:             severity,
		Priority:             priorityForSeverity(severity),
		Action:               action,
		Notes:                buildNotes(dep.Version, target, entry.Vulnerabilities),
	}
	return suggestion
}

// unionFixedVersions merges the fixed-version sets of all vulnerabilities,
// deduplicated, preserving first-seen order.
func unionFixedVersions(vulns []model.VulnerabilityRecord) []string {
	var fixed []string
	seen := make(map[string]bool)
	for _, vuln := range vulns {
		for _, version := range vuln.FixedVersions {
			if version == "" || seen[version] {
				continue
			}
			seen[version] = true
			fixed = append(fixed, version)
		}
	}
	return fixed
}

// worstSeverity resolves the most severe label across the vulnerability
// list. A record with a numeric score is rated through the normalizer; one
// with only a label keeps it. UNKNOWN when nothing resolves.
func worstSeverity(vulns []model.VulnerabilityRecord) string {
	worst := util.SeverityUnknown
	for _, vuln := range vulns {
		label := util.SeverityUnknown
		switch {
		case vuln.SeverityScore != nil:
			label = util.GetSeverityRating(*vuln.SeverityScore)
		case vuln.Severity != "":
			label = strings.ToUpper(vuln.Severity)
		}
		if util.SeverityRank(label) > util.SeverityRank(worst) {
			worst = label
		}
	}
	return worst
}

// suggestedUpgrade picks the minimum fixed version strictly greater than
// the current one. An unparsable current version short-circuits to the
// minimum fixed version; when every fixed version is at or below current
// (stale advisory data), the highest fixed version is returned rather than
// no fix at all.
func suggestedUpgrade(current string, fixed []string) string {
	if len(fixed) == 0 {
		return ""
	}
	sorted := make([]string, len(fixed))
	copy(sorted, fixed)
	sort.SliceStable(sorted, func(i, j int) bool {
		return util.CompareVersions(sorted[i], sorted[j]) < 0
	})

	if util.ParseVersion(current) == nil {
		return sorted[0]
	}
	for _, candidate := range sorted {
		if util.CompareVersions(candidate, current) > 0 {
			return candidate
		}
	}
	return sorted[len(sorted)-1]
}

func buildNotes(current, target string, vulns []model.VulnerabilityRecord) []string {
	notes := make([]string, 0, 3)
	if target != "" {
		notes = append(notes, fmt.Sprintf("Upgrade from %s to %s", current, target))
		pc := util.ParseVersion(current)
		pt := util.ParseVersion(target)
		if pc != nil && pt != nil && pt.Major > pc.Major {
			notes = append(notes, "Major version upgrade - may include breaking changes")
		}
	} else {
		notes = append(notes, "No fixed version available yet - review the advisory for mitigations")
	}

	if cves := collectCVEAliases(vulns); len(cves) > 0 {
		notes = append(notes, "Related CVEs: "+strings.Join(cves, ", "))
	}
	return notes
}

// collectCVEAliases gathers the deduplicated CVE-prefixed aliases across
// all vulnerabilities, preserving first-seen order.
func collectCVEAliases(vulns []model.VulnerabilityRecord) []string {
	var cves []string
	seen := make(map[string]bool)
	for _, vuln := range vulns {
		for _, alias := range vuln.Aliases {
			if !strings.HasPrefix(alias, "CVE-") || seen[alias] {
				continue
			}
			seen[alias] = true
			cves = append(cves, alias)
		}
	}
	return cves
}

func vulnerabilityIDs(vulns []model.VulnerabilityRecord) []string {
	ids := make([]string, 0, len(vulns))
	for _, vuln := range vulns {
		ids = append(ids, vuln.ID)
	}
	return ids
}

// priorityForSeverity maps a severity label to a remediation priority
// tier. Everything below MEDIUM, including unknown severities, lands in
// the low tier.
func priorityForSeverity(severity string) string {
	switch severity {
	case util.SeverityCritical:
		return model.PriorityCritical
	case util.SeverityHigh:
		return model.PriorityHigh
	case util.SeverityMedium, "MODERATE":
		return model.PriorityMedium
	}
	return model.PriorityLow
}

func priorityRank(priority string) int {
	switch priority {
	case model.PriorityCritical:
		return 3
	case model.PriorityHigh:
		return 2
	case model.PriorityMedium:
		return 1
	}
	return 0
}
