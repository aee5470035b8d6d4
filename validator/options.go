package validator

import (
	"fmt"

	"github.com/djabraham/yamlschema/ast"
	"github.com/djabraham/yamlschema/internal/options"
	"github.com/djabraham/yamlschema/parser"
)

// Option is a function that configures a validation operation.
type Option func(*validateConfig) error

// validateConfig holds configuration for a validation operation.
type validateConfig struct {
	// Input source (exactly one must be set)
	node   *ast.Node
	parsed *parser.ParseResult

	schema *Schema

	offset    int
	lineMap   *parser.LineMap
	logger    parser.Logger
	wantTrace bool
}

// applyValidateOptions applies option functions and validates configuration.
func applyValidateOptions(opts ...Option) (*validateConfig, error) {
	cfg := &validateConfig{
		offset: -1,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"must specify an input source (use WithNode or WithParseResult)",
		"must specify exactly one input source",
		cfg.node != nil, cfg.parsed != nil,
	); err != nil {
		return nil, err
	}
	if cfg.schema == nil {
		return nil, fmt.Errorf("must specify a schema (use WithSchema)")
	}

	return cfg, nil
}

// ValidateWithOptions validates a document using functional options and
// returns the diagnostics plus the match trace when WithMatchTrace was
// given.
//
// Example:
//
//	result, _, err := validator.ValidateWithOptions(
//	    validator.WithParseResult(parsed),
//	    validator.WithSchema(schema),
//	)
func ValidateWithOptions(opts ...Option) (*ValidationResult, *MatchTrace, error) {
	cfg, err := applyValidateOptions(opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("validator: invalid options: %w", err)
	}

	v := &Validator{
		Offset:  cfg.offset,
		LineMap: cfg.lineMap,
		Logger:  cfg.logger,
	}

	node := cfg.node
	result := NewValidationResult()
	if cfg.parsed != nil {
		result.mergeParseIssues(cfg.parsed.Errors)
		node = cfg.parsed.Root
		if v.LineMap == nil {
			v.LineMap = cfg.parsed.LineMap
		}
	}

	var trace *MatchTrace
	if cfg.wantTrace {
		trace = NewMatchTrace()
	}
	v.run(node, cfg.schema, result, trace)
	return result, trace, nil
}

// WithNode specifies a node tree as the input source.
func WithNode(node *ast.Node) Option {
	return func(cfg *validateConfig) error {
		if node == nil {
			return fmt.Errorf("node must not be nil")
		}
		cfg.node = node
		return nil
	}
}

// WithParseResult specifies a parse result as the input source. Its syntax
// issues carry into the returned diagnostics and its line map is used for
// positions unless WithLineMap overrides it.
func WithParseResult(parsed *parser.ParseResult) Option {
	return func(cfg *validateConfig) error {
		if parsed == nil {
			return fmt.Errorf("parse result must not be nil")
		}
		cfg.parsed = parsed
		return nil
	}
}

// WithSchema sets the resolved schema to validate against. Required.
func WithSchema(schema *Schema) Option {
	return func(cfg *validateConfig) error {
		if schema == nil {
			return fmt.Errorf("schema must not be nil")
		}
		cfg.schema = schema
		return nil
	}
}

// WithOffset restricts validation to nodes whose range contains the byte
// offset. Default: validate the whole document.
func WithOffset(offset int) Option {
	return func(cfg *validateConfig) error {
		cfg.offset = offset
		return nil
	}
}

// WithLineMap sets the line map used to populate diagnostic positions.
func WithLineMap(lm *parser.LineMap) Option {
	return func(cfg *validateConfig) error {
		cfg.lineMap = lm
		return nil
	}
}

// WithValidatorLogger sets the structured logger for debug output.
// Default: no logging.
func WithValidatorLogger(logger parser.Logger) Option {
	return func(cfg *validateConfig) error {
		cfg.logger = logger
		return nil
	}
}

// WithMatchTrace enables recording of (node, schema) pairings.
func WithMatchTrace() Option {
	return func(cfg *validateConfig) error {
		cfg.wantTrace = true
		return nil
	}
}
