// Package issues provides the issue type shared by the parser and validator
// packages for problems anchored at byte ranges in source text.
package issues

import (
	"fmt"

	"github.com/djabraham/yamlschema/internal/severity"
)

// Range is a half-open byte range [Start, End) into the source text.
type Range struct {
	// Start is the byte offset of the first byte of the range
	Start int
	// End is the byte offset one past the last byte of the range
	End int
}

// Contains returns true if the offset falls within the range.
func (r Range) Contains(offset int) bool {
	return r.Start <= offset && offset < r.End
}

// Issue represents a single problem found during parsing or validation.
type Issue struct {
	// Range is the byte range in the source text the issue is anchored at
	Range Range
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Path is the document path of the offending node (e.g., "$.pets[0].name")
	Path string
	// Line is the 1-based line number in the source file (0 if unknown)
	Line int
	// Column is the 1-based column number in the source file (0 if unknown)
	Column int
	// File is the source file path (empty for in-memory documents)
	File string
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	if i.Line > 0 {
		return fmt.Sprintf("%s %s (line %d, col %d): %s", symbol, i.Path, i.Line, i.Column, i.Message)
	}
	if i.Path != "" {
		return fmt.Sprintf("%s %s: %s", symbol, i.Path, i.Message)
	}
	return fmt.Sprintf("%s [%d:%d): %s", symbol, i.Range.Start, i.Range.End, i.Message)
}

// Location returns the source location in IDE-friendly format.
// Returns "file:line:column" if file is set, "line:column" if only line is
// set, or the byte range if no line information has been populated.
func (i Issue) Location() string {
	if i.Line == 0 {
		return fmt.Sprintf("[%d:%d)", i.Range.Start, i.Range.End)
	}
	if i.File != "" {
		return fmt.Sprintf("%s:%d:%d", i.File, i.Line, i.Column)
	}
	return fmt.Sprintf("%d:%d", i.Line, i.Column)
}

// HasLocation returns true if this issue has line/column information.
func (i Issue) HasLocation() bool {
	return i.Line > 0
}

// Key returns the (start, end, message) signature used by display layers to
// de-duplicate issues before capping.
func (i Issue) Key() string {
	return fmt.Sprintf("%d:%d:%s", i.Range.Start, i.Range.End, i.Message)
}
