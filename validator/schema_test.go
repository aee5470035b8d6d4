package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaFromJSON(t *testing.T) {
	s, err := SchemaFromJSON([]byte(`{
		"type": "object",
		"title": "Pet",
		"required": ["name"],
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"age": {"type": "integer", "minimum": 0}
		},
		"additionalProperties": false
	}`))
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.Equal(t, "object", s.Type)
	assert.Equal(t, "Pet", s.Title)
	assert.Equal(t, []string{"name"}, s.Required)
	require.Contains(t, s.Properties, "name")
	require.NotNil(t, s.Properties["name"].MinLength)
	assert.Equal(t, 1, *s.Properties["name"].MinLength)
	require.NotNil(t, s.Properties["age"].Minimum)
	assert.Equal(t, float64(0), *s.Properties["age"].Minimum)
	assert.Equal(t, false, s.AdditionalProperties)
}

func TestSchemaFromJSONInvalid(t *testing.T) {
	s, err := SchemaFromJSON([]byte(`{"type": `))
	require.Error(t, err)
	assert.Nil(t, s)
}

func TestSchemaFromYAML(t *testing.T) {
	s, err := SchemaFromYAML([]byte(`
type: array
items:
  type: string
maxItems: 3
uniqueItems: true
`))
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.Equal(t, "array", s.Type)
	require.NotNil(t, s.ItemsSchema())
	assert.Equal(t, "string", s.ItemsSchema().Type)
	require.NotNil(t, s.MaxItems)
	assert.Equal(t, 3, *s.MaxItems)
	assert.True(t, s.UniqueItems)
}

func TestSchemaFromMapMalformedKeywords(t *testing.T) {
	// Keyword values with the wrong shape are dropped, never rejected.
	s := SchemaFromMap(map[string]any{
		"type":             42,
		"required":         "name",
		"enum":             "not-a-list",
		"properties":       []any{"nope"},
		"minLength":        "three",
		"pattern":          7,
		"allOf":            map[string]any{},
		"items":            true,
		"dependencies":     []any{},
		"uniqueItems":      "yes",
		"exclusiveMaximum": "true",
	})
	require.NotNil(t, s)

	assert.Nil(t, s.Type)
	assert.Nil(t, s.Required)
	assert.Nil(t, s.Enum)
	assert.Nil(t, s.Properties)
	assert.Nil(t, s.MinLength)
	assert.Empty(t, s.Pattern)
	assert.Nil(t, s.AllOf)
	assert.Nil(t, s.Items)
	assert.Nil(t, s.Dependencies)
	assert.False(t, s.UniqueItems)
	assert.False(t, s.ExclusiveMaximum)
}

func TestSchemaFromMapTypeSet(t *testing.T) {
	s := SchemaFromMap(map[string]any{"type": []any{"string", "null"}})
	assert.Equal(t, []string{"string", "null"}, s.Type)
	assert.Equal(t, []string{"string", "null"}, s.TypeNames())

	// A mixed-type list is malformed and drops the keyword entirely.
	s = SchemaFromMap(map[string]any{"type": []any{"string", 4}})
	assert.Nil(t, s.Type)
	assert.Nil(t, s.TypeNames())
}

func TestSchemaFromMapItemsList(t *testing.T) {
	s := SchemaFromMap(map[string]any{
		"items": []any{
			map[string]any{"type": "string"},
			map[string]any{"type": "number"},
		},
		"additionalItems": false,
	})
	require.Nil(t, s.ItemsSchema())
	list := s.ItemsList()
	require.Len(t, list, 2)
	assert.Equal(t, "string", list[0].Type)
	assert.Equal(t, "number", list[1].Type)
	assert.Equal(t, false, s.AdditionalItems)
}

func TestSchemaFromMapDependencies(t *testing.T) {
	s := SchemaFromMap(map[string]any{
		"dependencies": map[string]any{
			"credit_card": []any{"billing_address"},
			"shipping":    map[string]any{"required": []any{"address"}},
		},
	})
	require.NotNil(t, s.Dependencies)
	assert.Equal(t, []string{"billing_address"}, s.Dependencies["credit_card"])
	dep, ok := s.Dependencies["shipping"].(*Schema)
	require.True(t, ok)
	assert.Equal(t, []string{"address"}, dep.Required)
}

func TestSchemaFromMapNil(t *testing.T) {
	assert.Nil(t, SchemaFromMap(nil))
}

func TestSchemaNumericCoercion(t *testing.T) {
	// YAML decodes integers as int, JSON as float64; both shapes work.
	s := SchemaFromMap(map[string]any{
		"minimum":   5,
		"maximum":   10.5,
		"minItems":  int64(2),
		"maxLength": float64(8),
	})
	require.NotNil(t, s.Minimum)
	assert.Equal(t, float64(5), *s.Minimum)
	require.NotNil(t, s.Maximum)
	assert.Equal(t, 10.5, *s.Maximum)
	require.NotNil(t, s.MinItems)
	assert.Equal(t, 2, *s.MinItems)
	require.NotNil(t, s.MaxLength)
	assert.Equal(t, 8, *s.MaxLength)
}
