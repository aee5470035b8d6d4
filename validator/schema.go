package validator

import (
	"fmt"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"
)

// Schema is a JSON-Schema-shaped constraint specification with all $ref
// references already resolved. It is read-only during validation and may be
// shared across concurrent validation calls.
//
// Keyword fields that JSON Schema allows in more than one shape keep the
// loose `any` type: Type is a string or []string, Items is a *Schema or
// []*Schema, AdditionalProperties and AdditionalItems are a *Schema or
// bool, and each Dependencies value is a []string or *Schema. Optional
// numeric constraints are pointers so that zero values remain expressible.
type Schema struct {
	// Title and Description are annotations surfaced by tooling consumers.
	Title       string
	Description string
	// Default is the annotated default value, if any.
	Default any

	// Type constrains the node's kind: a string or a []string set.
	Type any
	// Enum restricts the value to one of the listed literals.
	Enum []any

	// Schema combinators.
	AllOf []*Schema
	AnyOf []*Schema
	OneOf []*Schema
	Not   *Schema

	// Object keywords.
	Properties           map[string]*Schema
	PatternProperties    map[string]*Schema
	AdditionalProperties any
	Required             []string
	MinProperties        *int
	MaxProperties        *int
	Dependencies         map[string]any

	// Array keywords.
	Items           any
	AdditionalItems any
	MinItems        *int
	MaxItems        *int
	UniqueItems     bool

	// String keywords.
	MinLength *int
	MaxLength *int
	Pattern   string

	// Numeric keywords.
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum bool
	ExclusiveMaximum bool
	MultipleOf       *float64

	// ErrorMessage overrides the generated violation text where set.
	ErrorMessage string
}

// SchemaFromJSON decodes a schema from JSON text. The schema must already
// have its $ref references inlined.
func SchemaFromJSON(data []byte) (*Schema, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("validator: failed to decode schema JSON: %w", err)
	}
	return SchemaFromMap(raw), nil
}

// SchemaFromYAML decodes a schema from YAML text.
func SchemaFromYAML(data []byte) (*Schema, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("validator: failed to decode schema YAML: %w", err)
	}
	return SchemaFromMap(raw), nil
}

// SchemaFromMap builds a Schema from a decoded map. Keyword values of the
// wrong shape are silently dropped, per the malformed-schema policy: the
// keyword simply constrains nothing.
func SchemaFromMap(m map[string]any) *Schema {
	if m == nil {
		return nil
	}
	s := &Schema{}

	s.Title, _ = m["title"].(string)
	s.Description, _ = m["description"].(string)
	s.Default = m["default"]

	switch t := m["type"].(type) {
	case string:
		s.Type = t
	case []any:
		if names := asStringSlice(t); names != nil {
			s.Type = names
		}
	}

	if e, ok := m["enum"].([]any); ok {
		s.Enum = e
	}

	s.AllOf = asSchemaSlice(m["allOf"])
	s.AnyOf = asSchemaSlice(m["anyOf"])
	s.OneOf = asSchemaSlice(m["oneOf"])
	s.Not = asSchema(m["not"])

	s.Properties = asSchemaMap(m["properties"])
	s.PatternProperties = asSchemaMap(m["patternProperties"])
	switch ap := m["additionalProperties"].(type) {
	case bool:
		s.AdditionalProperties = ap
	case map[string]any:
		s.AdditionalProperties = SchemaFromMap(ap)
	}
	if req, ok := m["required"].([]any); ok {
		s.Required = asStringSlice(req)
	}
	s.MinProperties = asIntPtr(m["minProperties"])
	s.MaxProperties = asIntPtr(m["maxProperties"])
	if deps, ok := m["dependencies"].(map[string]any); ok {
		s.Dependencies = make(map[string]any, len(deps))
		for name, dep := range deps {
			switch d := dep.(type) {
			case []any:
				if names := asStringSlice(d); names != nil {
					s.Dependencies[name] = names
				}
			case map[string]any:
				s.Dependencies[name] = SchemaFromMap(d)
			}
		}
	}

	switch items := m["items"].(type) {
	case map[string]any:
		s.Items = SchemaFromMap(items)
	case []any:
		if list := asSchemaSlice(items); list != nil {
			s.Items = list
		}
	}
	switch ai := m["additionalItems"].(type) {
	case bool:
		s.AdditionalItems = ai
	case map[string]any:
		s.AdditionalItems = SchemaFromMap(ai)
	}
	s.MinItems = asIntPtr(m["minItems"])
	s.MaxItems = asIntPtr(m["maxItems"])
	s.UniqueItems, _ = m["uniqueItems"].(bool)

	s.MinLength = asIntPtr(m["minLength"])
	s.MaxLength = asIntPtr(m["maxLength"])
	s.Pattern, _ = m["pattern"].(string)

	s.Minimum = asFloatPtr(m["minimum"])
	s.Maximum = asFloatPtr(m["maximum"])
	s.ExclusiveMinimum, _ = m["exclusiveMinimum"].(bool)
	s.ExclusiveMaximum, _ = m["exclusiveMaximum"].(bool)
	s.MultipleOf = asFloatPtr(m["multipleOf"])

	s.ErrorMessage, _ = m["errorMessage"].(string)

	return s
}

// TypeNames returns the schema's type constraint as a slice, empty when the
// keyword is absent or malformed.
func (s *Schema) TypeNames() []string {
	switch t := s.Type.(type) {
	case string:
		return []string{t}
	case []string:
		return t
	default:
		return nil
	}
}

// ItemsSchema returns the single-schema form of items, or nil.
func (s *Schema) ItemsSchema() *Schema {
	sub, _ := s.Items.(*Schema)
	return sub
}

// ItemsList returns the positional-list form of items, or nil.
func (s *Schema) ItemsList() []*Schema {
	list, _ := s.Items.([]*Schema)
	return list
}

// AdditionalPropertiesSchema returns the schema form of
// additionalProperties, or nil.
func (s *Schema) AdditionalPropertiesSchema() *Schema {
	sub, _ := s.AdditionalProperties.(*Schema)
	return sub
}

// asSchema converts a decoded value to a sub-schema, nil for any other shape.
func asSchema(v any) *Schema {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return SchemaFromMap(m)
}

func asSchemaSlice(v any) []*Schema {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]*Schema, 0, len(raw))
	for _, item := range raw {
		if sub := asSchema(item); sub != nil {
			out = append(out, sub)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func asSchemaMap(v any) map[string]*Schema {
	raw, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]*Schema, len(raw))
	for name, item := range raw {
		if sub := asSchema(item); sub != nil {
			out[name] = sub
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func asStringSlice(raw []any) []string {
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil
		}
		out = append(out, s)
	}
	return out
}

func asIntPtr(v any) *int {
	switch n := v.(type) {
	case int:
		return &n
	case int64:
		i := int(n)
		return &i
	case uint64:
		i := int(n)
		return &i
	case float64:
		i := int(n)
		return &i
	default:
		return nil
	}
}

func asFloatPtr(v any) *float64 {
	switch n := v.(type) {
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	case uint64:
		f := float64(n)
		return &f
	case float64:
		return &n
	default:
		return nil
	}
}
