// Package severity provides severity level constants and utilities
// for issues reported by the parser and validator packages.
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

// Severity indicates the severity level of an issue found while parsing
// or validating a document.
type Severity int

const (
	// SeverityError indicates a violation that makes the document invalid
	// against its schema, or a syntax error found while parsing.
	SeverityError Severity = iota

	// SeverityWarning indicates a schema constraint violation that is
	// reported without failing the document outright, or a recommendation.
	SeverityWarning

	// SeverityInfo indicates informational messages about processing choices.
	// These are non-actionable notices that may be useful for debugging.
	SeverityInfo

	// SeverityCritical indicates input that cannot be processed at all.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}
