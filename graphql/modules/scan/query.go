// Package scan defines the GraphQL queries for manifest parsing and
// vulnerability scanning.
package scan

import (
	"github.com/graphql-go/graphql"

	"github.com/depscout/depscout-backend/internal/manifest"
	"github.com/depscout/depscout-backend/internal/osv"
	"github.com/depscout/depscout-backend/internal/suggest"
	"github.com/depscout/depscout-backend/model"
)

type parseResult struct {
	Dependencies []model.Dependency `json:"dependencies"`
	Count        int                `json:"count"`
}

type scanResult struct {
	Dependencies []model.Dependency      `json:"dependencies"`
	Count        int                     `json:"count"`
	VulnResults  []model.VulnResult      `json:"vuln_results"`
	Suggestions  []model.FixSuggestion   `json:"suggestions"`
	Summary      model.SuggestionSummary `json:"summary"`
}

// GetQueryFields returns the scan queries to be mounted in the root schema.
func GetQueryFields(client *osv.Client) graphql.Fields {
	return graphql.Fields{
		"supportedManifestTypes": &graphql.Field{
			Type: graphql.NewList(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return model.SupportedManifestTypes(), nil
			},
		},
		"parseManifest": &graphql.Field{
			Type: ParseResultType,
			Args: graphql.FieldConfigArgument{
				"text":         &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"manifestType": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				text := p.Args["text"].(string)
				manifestType := p.Args["manifestType"].(string)

				deps, err := manifest.Parse(manifestType, text)
				if err != nil {
					return nil, err
				}
				return parseResult{Dependencies: deps, Count: len(deps)}, nil
			},
		},
		"scan": &graphql.Field{
			Type: ScanResultType,
			Args: graphql.FieldConfigArgument{
				"text":         &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"manifestType": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				text := p.Args["text"].(string)
				manifestType := p.Args["manifestType"].(string)

				deps, err := manifest.Parse(manifestType, text)
				if err != nil {
					return nil, err
				}

				results, err := client.Lookup(p.Context, deps)
				if err != nil {
					return nil, err
				}

				ranked := suggest.Suggest(results)
				return scanResult{
					Dependencies: deps,
					Count:        len(deps),
					VulnResults:  results,
					Suggestions:  ranked.Suggestions,
					Summary:      ranked.Summary,
				}, nil
			},
		},
	}
}
