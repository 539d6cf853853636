// Package model - normalized vulnerability records supplied by the advisory source.
package model

// Reference is a single advisory reference link.
type Reference struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// VulnerabilityRecord is a normalized advisory entry for one package. The
// core only reads these; they are produced by the advisory collaborator.
type VulnerabilityRecord struct {
	ID            string      `json:"id"`
	Summary       string      `json:"summary,omitempty"`
	Severity      string      `json:"severity,omitempty"`
	SeverityScore *float64    `json:"severity_score,omitempty"`
	FixedVersions []string    `json:"fixed_versions"`
	Aliases       []string    `json:"aliases,omitempty"`
	References    []Reference `json:"references,omitempty"`
}

// VulnResult pairs a dependency with the vulnerability records that apply
// to it. It is the input unit of the fix-suggestion engine.
type VulnResult struct {
	Dependency      Dependency            `json:"dependency"`
	Vulnerabilities []VulnerabilityRecord `json:"vulnerabilities"`
}
