// Package model - fix suggestion output types.
package model

// Priority tiers for fix suggestions, worst severity first.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

// Suggested remediation actions. ActionInvestigate is a valid enum value
// reserved for forward compatibility; the current engine only emits
// upgrade and review.
const (
	ActionUpgrade     = "upgrade"
	ActionReview      = "review"
	ActionInvestigate = "investigate"
)

// FixSuggestion is one ranked remediation recommendation for a dependency.
// Computed fresh per invocation; never mutated after construction.
type FixSuggestion struct {
	Package              string   `json:"package"`
	Ecosystem            string   `json:"ecosystem"`
	CurrentVersion       string   `json:"current_version"`
	SuggestedVersion     string   `json:"suggested_version,omitempty"`
	VulnerabilitiesFixed []string `json:"vulnerabilities_fixed"`
	Severity             string   `json:"severity"`
	Priority             string   `json:"priority"`
	Action               string   `json:"action"`
	Notes                []string `json:"notes"`
}

// SuggestionSummary aggregates emitted suggestions per priority tier.
// ByPriority always carries all four tiers, zero-filled.
type SuggestionSummary struct {
	Total      int            `json:"total"`
	ByPriority map[string]int `json:"by_priority"`
}
