package graphql

import (
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depscout/depscout-backend/internal/osv"
)

func TestCreateSchema(t *testing.T) {
	schema, err := CreateSchema(osv.NewClient())
	require.NoError(t, err)

	fields := schema.QueryType().Fields()
	assert.Contains(t, fields, "parseManifest")
	assert.Contains(t, fields, "scan")
	assert.Contains(t, fields, "supportedManifestTypes")
}

func TestParseManifestQuery(t *testing.T) {
	schema, err := CreateSchema(osv.NewClient())
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{
		Schema: schema,
		RequestString: `{
			parseManifest(text: "requests==2.31.0\nflask>=2.0.0\n", manifestType: "requirements") {
				count
				dependencies { ecosystem name version }
			}
		}`,
	})
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})
	parsed := data["parseManifest"].(map[string]interface{})
	assert.Equal(t, 2, parsed["count"])
	deps := parsed["dependencies"].([]interface{})
	first := deps[0].(map[string]interface{})
	assert.Equal(t, "PyPI", first["ecosystem"])
	assert.Equal(t, "requests", first["name"])
}

func TestParseManifestQuerySurfacesErrors(t *testing.T) {
	schema, err := CreateSchema(osv.NewClient())
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ parseManifest(text: "x", manifestType: "gemfile-lock") { count } }`,
	})
	assert.NotEmpty(t, result.Errors)
}

func TestSupportedManifestTypesQuery(t *testing.T) {
	schema, err := CreateSchema(osv.NewClient())
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ supportedManifestTypes }`,
	})
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})
	types := data["supportedManifestTypes"].([]interface{})
	assert.Len(t, types, 7)
}
