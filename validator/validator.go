package validator

import (
	"fmt"

	"github.com/djabraham/yamlschema/ast"
	"github.com/djabraham/yamlschema/parser"
)

// Validator applies a resolved schema to a document node tree. The zero
// value is not ready for use; call New.
type Validator struct {
	// Offset restricts validation to nodes whose range contains the byte
	// offset. Negative means validate everything.
	Offset int

	// LineMap, when set, populates line and column on every diagnostic.
	LineMap *parser.LineMap

	// Logger receives debug output. Defaults to a no-op logger.
	Logger parser.Logger
}

// New returns a Validator with offset scoping disabled.
func New() *Validator {
	return &Validator{
		Offset: -1,
		Logger: parser.NopLogger{},
	}
}

func (v *Validator) log() parser.Logger {
	if v.Logger == nil {
		return parser.NopLogger{}
	}
	return v.Logger
}

// Validate walks the node tree against the schema and returns the
// accumulated diagnostics. A nil node or nil schema validates vacuously.
func (v *Validator) Validate(node *ast.Node, schema *Schema) *ValidationResult {
	result := NewValidationResult()
	v.run(node, schema, result, nil)
	return result
}

// ValidateWithTrace validates and additionally records which schema was
// applied to which node.
func (v *Validator) ValidateWithTrace(node *ast.Node, schema *Schema) (*ValidationResult, *MatchTrace) {
	result := NewValidationResult()
	trace := NewMatchTrace()
	v.run(node, schema, result, trace)
	return result, trace
}

// ValidateParsed validates a parse result, carrying its syntax issues into
// the returned diagnostics ahead of any schema violations. A parse with no
// root node yields only the parse issues.
func (v *Validator) ValidateParsed(parsed *parser.ParseResult, schema *Schema) *ValidationResult {
	result := NewValidationResult()
	if parsed == nil {
		return result
	}
	result.mergeParseIssues(parsed.Errors)
	if parsed.Root != nil {
		v.run(parsed.Root, schema, result, nil)
	}
	return result
}

func (v *Validator) run(node *ast.Node, schema *Schema, result *ValidationResult, trace *MatchTrace) {
	if node == nil || schema == nil {
		return
	}
	v.log().Debug("validating node", "kind", node.Kind.String(), "start", node.Start, "end", node.End)
	w := &walker{
		offset:  v.Offset,
		lineMap: v.LineMap,
	}
	w.validate(node, schema, result, trace)
}

// ValidateSource is a convenience that parses and validates in one call.
// The format is detected from the path and content.
func ValidateSource(path string, data []byte, schema *Schema) (*ValidationResult, error) {
	if schema == nil {
		return nil, fmt.Errorf("validator: schema must not be nil")
	}
	parsed, err := parser.New().ParseBytes(data, path)
	if err != nil {
		return nil, err
	}
	return New().ValidateParsed(parsed, schema), nil
}
