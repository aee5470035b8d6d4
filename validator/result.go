package validator

import (
	"fmt"

	"github.com/djabraham/yamlschema/ast"
	"github.com/djabraham/yamlschema/internal/issues"
	"github.com/djabraham/yamlschema/internal/severity"
	"github.com/djabraham/yamlschema/parser"
)

// ValidationResult accumulates diagnostics and match-quality counters for
// one (node, schema) validation. Sub-results are created for speculative
// branches (not, anyOf, oneOf) and folded back with Merge or
// MergePropertyMatch.
type ValidationResult struct {
	// Errors holds hard failures, typically syntax issues merged in from a
	// parse. Schema violations land in Warnings.
	Errors   []issues.Issue
	Warnings []issues.Issue

	// PropertiesMatches counts properties and items that were validated at
	// all. PropertiesValueMatches counts those whose value validated
	// cleanly. Both feed alternative scoring.
	PropertiesMatches      int
	PropertiesValueMatches int

	// EnumValueMatch records that the value matched an enum literal, the
	// strongest match signal when comparing alternatives.
	EnumValueMatch bool
}

// NewValidationResult returns an empty accumulator.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{}
}

// HasProblems reports whether any diagnostics were recorded.
func (r *ValidationResult) HasProblems() bool {
	return len(r.Errors) > 0 || len(r.Warnings) > 0
}

// Issues returns all diagnostics, errors first.
func (r *ValidationResult) Issues() []issues.Issue {
	out := make([]issues.Issue, 0, len(r.Errors)+len(r.Warnings))
	out = append(out, r.Errors...)
	out = append(out, r.Warnings...)
	return out
}

// Merge appends the other result's diagnostics. Counters are not merged;
// callers that want a child's match quality reflected use
// MergePropertyMatch or add counters explicitly.
func (r *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// MergePropertyMatch folds in a child value validation: diagnostics are
// merged, the property counter increments unconditionally, and the value
// counter increments only when the child matched cleanly or hit an enum
// literal.
func (r *ValidationResult) MergePropertyMatch(child *ValidationResult) {
	if child == nil {
		return
	}
	r.Merge(child)
	r.PropertiesMatches++
	if child.EnumValueMatch || (!child.HasProblems() && child.PropertiesMatches > 0) {
		r.PropertiesValueMatches++
	}
}

// Compare ranks two results as alternative-match candidates. Positive means
// r is the better match. Freedom from errors dominates, then an enum hit,
// then the value-match count, then the property-match count.
func (r *ValidationResult) Compare(other *ValidationResult) int {
	hasErrors := r.HasProblems()
	if hasErrors != other.HasProblems() {
		if hasErrors {
			return -1
		}
		return 1
	}
	if r.EnumValueMatch != other.EnumValueMatch {
		if other.EnumValueMatch {
			return -1
		}
		return 1
	}
	if r.PropertiesValueMatches != other.PropertiesValueMatches {
		return r.PropertiesValueMatches - other.PropertiesValueMatches
	}
	return r.PropertiesMatches - other.PropertiesMatches
}

// mergeParseIssues copies parse diagnostics verbatim into Errors or
// Warnings according to their recorded severity.
func (r *ValidationResult) mergeParseIssues(parsed []issues.Issue) {
	for _, issue := range parsed {
		if issue.Severity == severity.SeverityWarning || issue.Severity == severity.SeverityInfo {
			r.Warnings = append(r.Warnings, issue)
		} else {
			r.Errors = append(r.Errors, issue)
		}
	}
}

// addWarning records a schema violation anchored at the given byte range.
func (r *ValidationResult) addWarning(node *ast.Node, start, end int, lm *parser.LineMap, format string, args ...any) {
	issue := issues.Issue{
		Range:    issues.Range{Start: start, End: end},
		Message:  fmt.Sprintf(format, args...),
		Severity: severity.SeverityWarning,
	}
	if node != nil {
		issue.Path = node.Path()
	}
	if lm != nil {
		issue.Line, issue.Column = lm.Position(start)
	}
	r.Warnings = append(r.Warnings, issue)
}

// addNodeWarning anchors the violation at the node's own range.
func (r *ValidationResult) addNodeWarning(node *ast.Node, lm *parser.LineMap, format string, args ...any) {
	r.addWarning(node, node.Start, node.End, lm, format, args...)
}
