// Package scan defines the GraphQL types for manifest parsing and
// vulnerability scanning.
package scan

import (
	"github.com/graphql-go/graphql"

	"github.com/depscout/depscout-backend/model"
)

// DependencyType represents one dependency extracted from a manifest.
var DependencyType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Dependency",
	Fields: graphql.Fields{
		"ecosystem": &graphql.Field{Type: graphql.String},
		"name":      &graphql.Field{Type: graphql.String},
		"version":   &graphql.Field{Type: graphql.String},
		"purl":      &graphql.Field{Type: graphql.String},
	},
})

// ReferenceType represents an advisory reference link.
var ReferenceType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Reference",
	Fields: graphql.Fields{
		"type": &graphql.Field{Type: graphql.String},
		"url":  &graphql.Field{Type: graphql.String},
	},
})

// VulnerabilityType represents a normalized advisory record.
var VulnerabilityType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Vulnerability",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.String},
		"summary":  &graphql.Field{Type: graphql.String},
		"severity": &graphql.Field{Type: graphql.String},
		"severity_score": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if vuln, ok := p.Source.(model.VulnerabilityRecord); ok && vuln.SeverityScore != nil {
					return *vuln.SeverityScore, nil
				}
				return nil, nil
			},
		},
		"fixed_versions": &graphql.Field{Type: graphql.NewList(graphql.String)},
		"aliases":        &graphql.Field{Type: graphql.NewList(graphql.String)},
		"references":     &graphql.Field{Type: graphql.NewList(ReferenceType)},
	},
})

// VulnResultType pairs a dependency with its advisory records.
var VulnResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "VulnResult",
	Fields: graphql.Fields{
		"dependency":      &graphql.Field{Type: DependencyType},
		"vulnerabilities": &graphql.Field{Type: graphql.NewList(VulnerabilityType)},
	},
})

// FixSuggestionType represents one ranked remediation suggestion.
var FixSuggestionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "FixSuggestion",
	Fields: graphql.Fields{
		"package":               &graphql.Field{Type: graphql.String},
		"ecosystem":             &graphql.Field{Type: graphql.String},
		"current_version":       &graphql.Field{Type: graphql.String},
		"suggested_version":     &graphql.Field{Type: graphql.String},
		"vulnerabilities_fixed": &graphql.Field{Type: graphql.NewList(graphql.String)},
		"severity":              &graphql.Field{Type: graphql.String},
		"priority":              &graphql.Field{Type: graphql.String},
		"action":                &graphql.Field{Type: graphql.String},
		"notes":                 &graphql.Field{Type: graphql.NewList(graphql.String)},
	},
})

// SummaryType aggregates suggestion counts by priority tier.
var SummaryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SuggestionSummary",
	Fields: graphql.Fields{
		"total": &graphql.Field{Type: graphql.Int},
		"critical": &graphql.Field{
			Type:    graphql.Int,
			Resolve: priorityCountResolver(model.PriorityCritical),
		},
		"high": &graphql.Field{
			Type:    graphql.Int,
			Resolve: priorityCountResolver(model.PriorityHigh),
		},
		"medium": &graphql.Field{
			Type:    graphql.Int,
			Resolve: priorityCountResolver(model.PriorityMedium),
		},
		"low": &graphql.Field{
			Type:    graphql.Int,
			Resolve: priorityCountResolver(model.PriorityLow),
		},
	},
})

func priorityCountResolver(priority string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if summary, ok := p.Source.(model.SuggestionSummary); ok {
			return summary.ByPriority[priority], nil
		}
		return 0, nil
	}
}

// ParseResultType is the payload of the parseManifest query.
var ParseResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ParseResult",
	Fields: graphql.Fields{
		"dependencies": &graphql.Field{Type: graphql.NewList(DependencyType)},
		"count":        &graphql.Field{Type: graphql.Int},
	},
})

// ScanResultType is the payload of the scan query.
var ScanResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ScanResult",
	Fields: graphql.Fields{
		"dependencies": &graphql.Field{Type: graphql.NewList(DependencyType)},
		"count":        &graphql.Field{Type: graphql.Int},
		"vuln_results": &graphql.Field{Type: graphql.NewList(VulnResultType)},
		"suggestions":  &graphql.Field{Type: graphql.NewList(FixSuggestionType)},
		"summary":      &graphql.Field{Type: SummaryType},
	},
})
