// Package commands provides CLI command handlers for yamlschema.
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"

	"github.com/djabraham/yamlschema/internal/issues"
	"github.com/djabraham/yamlschema/internal/severity"
	"github.com/djabraham/yamlschema/validator"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

var (
	errorColor   = color.New(color.FgRed)
	warningColor = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", format, FormatText, FormatJSON)
	}
	return nil
}

// OutputStructured outputs data as indented JSON to the writer.
func OutputStructured(w io.Writer, data any) error {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling to json: %w", err)
	}
	Writef(w, "%s\n", string(bytes))
	return nil
}

// Writef writes formatted output, ignoring write errors. Used for CLI
// output where a failed write to stdout/stderr cannot be meaningfully
// handled.
func Writef(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

// LoadSchema reads and decodes a schema file, choosing the decoder from the
// file extension. '-' reads the schema from stdin.
func LoadSchema(path string) (*validator.Schema, error) {
	var data []byte
	var err error
	if path == StdinFilePath {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // user-supplied CLI path
	}
	if err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return validator.SchemaFromYAML(data)
	case ".json":
		return validator.SchemaFromJSON(data)
	default:
		// Sniff: YAML is a superset of JSON, so YAML decode covers both.
		s, yerr := validator.SchemaFromYAML(data)
		if yerr != nil {
			return nil, yerr
		}
		return s, nil
	}
}

// DedupeIssues drops issues that repeat an earlier issue's range and
// message, which happens when overlapping schema branches report the same
// violation. Order is preserved.
func DedupeIssues(list []issues.Issue) []issues.Issue {
	seen := make(map[string]bool, len(list))
	out := make([]issues.Issue, 0, len(list))
	for _, issue := range list {
		key := issue.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, issue)
	}
	return out
}

// CapIssues truncates the list to at most max entries. A non-positive max
// means no cap.
func CapIssues(list []issues.Issue, max int) ([]issues.Issue, int) {
	if max <= 0 || len(list) <= max {
		return list, 0
	}
	return list[:max], len(list) - max
}

// ApplyIssueBudget enforces an error-first display budget across both issue
// lists. Errors consume the budget before warnings get any of it, and when
// errors use it up entirely the warnings are dropped rather than uncapped.
// A non-positive max disables the budget.
func ApplyIssueBudget(errs, warnings []issues.Issue, max int) ([]issues.Issue, []issues.Issue, int) {
	if max <= 0 {
		return errs, warnings, 0
	}
	errs, dropped := CapIssues(errs, max)
	remaining := max - len(errs)
	if remaining <= 0 {
		return errs, nil, dropped + len(warnings)
	}
	warnings, n := CapIssues(warnings, remaining)
	return errs, warnings, dropped + n
}

// RenderIssue formats one diagnostic for text output, coloring the severity
// marker when the writer is a terminal.
func RenderIssue(w io.Writer, issue issues.Issue) {
	marker := warningColor.Sprint("⚠")
	if issue.Severity == severity.SeverityError || issue.Severity == severity.SeverityCritical {
		marker = errorColor.Sprint("✗")
	}
	if issue.Path != "" {
		Writef(w, "  %s %s %s %s\n", marker, issue.Location(), issue.Path, issue.Message)
		return
	}
	Writef(w, "  %s %s %s\n", marker, issue.Location(), issue.Message)
}
