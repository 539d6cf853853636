package osv

import (
	"strings"

	"github.com/google/osv-scanner/pkg/models"

	"github.com/depscout/depscout-backend/model"
	"github.com/depscout/depscout-backend/util"
)

// Normalize converts raw OSV documents into the records the core consumes.
// When the dependency version is pinned, records whose comparable ranges
// provably exclude that version are dropped; records without comparable
// range data are kept as-is rather than guessed at.
func Normalize(vulns []models.Vulnerability, dep model.Dependency) []model.VulnerabilityRecord {
	records := make([]model.VulnerabilityRecord, 0, len(vulns))
	for _, vuln := range vulns {
		affected := relevantAffected(vuln, dep)
		if pinned(dep.Version) && checkable(affected) && !util.IsVersionAffectedAny(dep.Version, affected) {
			continue
		}
		records = append(records, fromOSV(vuln, affected))
	}
	return records
}

func pinned(version string) bool {
	return version != "" && version != model.WildcardVersion
}

func checkable(affected []models.Affected) bool {
	for _, entry := range affected {
		if util.HasCheckableRange(entry) {
			return true
		}
	}
	return false
}

// relevantAffected filters a vulnerability's affected entries down to the
// queried package. An OSV document can span several packages; fixed
// versions of unrelated ones must not leak into the record.
func relevantAffected(vuln models.Vulnerability, dep model.Dependency) []models.Affected {
	var relevant []models.Affected
	for _, affected := range vuln.Affected {
		if affected.Package.Name == "" || strings.EqualFold(affected.Package.Name, dep.Name) {
			relevant = append(relevant, affected)
		}
	}
	return relevant
}

// fromOSV builds a normalized record from one OSV document.
func fromOSV(vuln models.Vulnerability, affected []models.Affected) model.VulnerabilityRecord {
	record := model.VulnerabilityRecord{
		ID:            vuln.ID,
		Summary:       vuln.Summary,
		FixedVersions: util.ExtractFixedVersions(affected),
		Aliases:       append([]string(nil), vuln.Aliases...),
	}
	if record.FixedVersions == nil {
		record.FixedVersions = []string{}
	}
	for _, ref := range vuln.References {
		record.References = append(record.References, model.Reference{
			Type: string(ref.Type),
			URL:  ref.URL,
		})
	}

	if score, ok := resolveSeverityScore(vuln, affected); ok {
		record.SeverityScore = &score
		record.Severity = util.GetSeverityRating(score)
	}
	return record
}

// resolveSeverityScore picks the highest score across the
// vulnerability-level severity entries and any per-affected-package
// severity labels the database attached.
func resolveSeverityScore(vuln models.Vulnerability, affected []models.Affected) (float64, bool) {
	var best float64
	found := false

	for _, severity := range vuln.Severity {
		if score, ok := util.CVSSScoreFromString(severity.Score); ok {
			if !found || score > best {
				best = score
			}
			found = true
		}
	}

	labels := []interface{}{vuln.DatabaseSpecific["severity"]}
	for _, entry := range affected {
		labels = append(labels, entry.DatabaseSpecific["severity"])
	}
	for _, raw := range labels {
		label, ok := raw.(string)
		if !ok || util.SeverityRank(label) == 0 {
			continue
		}
		score := util.GetSeverityScore(label)
		if !found || score > best {
			best = score
		}
		found = true
	}

	return best, found
}
