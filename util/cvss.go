package util

import (
	"regexp"
	"strconv"
	"strings"
)

// Canonical severity labels, ordered CRITICAL > HIGH > MEDIUM > LOW > NONE
// > UNKNOWN.
const (
	SeverityCritical = "CRITICAL"
	SeverityHigh     = "HIGH"
	SeverityMedium   = "MEDIUM"
	SeverityLow      = "LOW"
	SeverityNone     = "NONE"
	SeverityUnknown  = "UNKNOWN"
)

var decimalPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// CVSSScoreFromString resolves a raw severity value to a numeric score.
// Bare decimal numbers are taken as-is. CVSS vector strings are mapped by a
// coarse ordered check of the confidentiality/integrity/availability impact
// markers - this is a heuristic approximation, not a CVSS calculator, and
// is expected to be replaced wholesale if exact vector math is ever needed.
// Any other form resolves to no score.
func CVSSScoreFromString(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if decimalPattern.MatchString(raw) {
		score, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, false
		}
		return score, true
	}
	if strings.HasPrefix(raw, "CVSS:") {
		return vectorScore(raw), true
	}
	return 0, false
}

// vectorScore maps a CVSS vector to a representative base score from its
// impact markers only. Markers are matched against whole "/"-separated
// segments so the C/I/A keys cannot collide with other fields carrying the
// same suffix (AC:H, AC:L).
func vectorScore(vector string) float64 {
	var cHigh, iHigh, aHigh, anyLow bool
	for _, segment := range strings.Split(vector, "/") {
		switch segment {
		case "C:H":
			cHigh = true
		case "I:H":
			iHigh = true
		case "A:H":
			aHigh = true
		case "C:L", "I:L", "A:L":
			anyLow = true
		}
	}

	switch {
	case cHigh && iHigh && aHigh:
		return 9.8
	case cHigh || iHigh || aHigh:
		return 7.5
	case anyLow:
		return 5.3
	}
	return 0.0
}

// GetSeverityRating returns the severity rating for a given CVSS score
func GetSeverityRating(score float64) string {
	switch {
	case score == 0:
		return SeverityNone
	case score < 4.0:
		return SeverityLow
	case score < 7.0:
		return SeverityMedium
	case score < 9.0:
		return SeverityHigh
	default:
		return SeverityCritical
	}
}

// GetSeverityScore returns the lowest CVSS base score threshold for a given severity rating.
func GetSeverityScore(severity string) float64 {
	switch strings.ToUpper(strings.TrimSpace(severity)) {
	case SeverityNone:
		return 0.0
	case SeverityLow:
		return 0.1
	case "MODERATE", SeverityMedium:
		return 4.0
	case SeverityHigh:
		return 7.0
	case SeverityCritical:
		return 9.0
	default:
		return 0.0 // unknown severity defaults to 0.0
	}
}

// SeverityRank returns an integer rank for label comparison (UNKNOWN=0,
// CRITICAL=5).
func SeverityRank(severity string) int {
	switch strings.ToUpper(strings.TrimSpace(severity)) {
	case SeverityCritical:
		return 5
	case SeverityHigh:
		return 4
	case "MODERATE", SeverityMedium:
		return 3
	case SeverityLow:
		return 2
	case SeverityNone:
		return 1
	default:
		return 0
	}
}
