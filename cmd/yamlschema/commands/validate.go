package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	yamlschema "github.com/djabraham/yamlschema"
	"github.com/djabraham/yamlschema/internal/issues"
	"github.com/djabraham/yamlschema/parser"
	"github.com/djabraham/yamlschema/validator"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	SchemaPath string
	NoWarnings bool
	Quiet      bool
	Format     string
	MaxIssues  int
	Offset     int
	Matches    bool
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.StringVar(&flags.SchemaPath, "schema", "", "schema file to validate against (required)")
	fs.StringVar(&flags.SchemaPath, "s", "", "schema file to validate against (required)")
	fs.BoolVar(&flags.NoWarnings, "no-warnings", false, "suppress warning messages (only show errors)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output validation result, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output validation result, no diagnostic messages")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text or json")
	fs.IntVar(&flags.MaxIssues, "max-issues", 100, "maximum number of issues to report (0 for no limit)")
	fs.IntVar(&flags.Offset, "offset", -1, "validate only the nodes covering this byte offset")
	fs.BoolVar(&flags.Matches, "matches", false, "report which schema applied to which document node")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: yamlschema validate -schema <schema> [flags] <file|->\n\n")
		Writef(fs.Output(), "Validate a YAML or JSON document against a JSON schema.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nOutput Formats:\n")
		Writef(fs.Output(), "  text (default)  Human-readable text output\n")
		Writef(fs.Output(), "  json            JSON format for programmatic processing\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  yamlschema validate -schema pet.schema.json pets.yaml\n")
		Writef(fs.Output(), "  yamlschema validate -schema pet.schema.yaml -no-warnings pets.json\n")
		Writef(fs.Output(), "  cat pets.yaml | yamlschema validate -schema pet.schema.json -q -\n")
		Writef(fs.Output(), "  yamlschema validate -schema pet.schema.json -format json pets.yaml | jq '.valid'\n")
		Writef(fs.Output(), "  yamlschema validate -schema pet.schema.json -offset 120 -matches pets.yaml\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Document is valid\n")
		Writef(fs.Output(), "  1    Document has violations or could not be processed\n")
	}

	return fs, flags
}

// validateReport is the structured output of the validate command.
type validateReport struct {
	Valid     bool           `json:"valid"`
	Document  string         `json:"document"`
	Schema    string         `json:"schema"`
	Errors    []issueReport  `json:"errors"`
	Warnings  []issueReport  `json:"warnings"`
	Truncated int            `json:"truncated,omitempty"`
	Matches   []matchReport  `json:"matches,omitempty"`
}

type issueReport struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

type matchReport struct {
	Path     string `json:"path"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Schema   string `json:"schema"`
	Inverted bool   `json:"inverted,omitempty"`
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires exactly one file path or '-' for stdin")
	}
	if flags.SchemaPath == "" {
		fs.Usage()
		return fmt.Errorf("validate command requires -schema")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	docPath := fs.Arg(0)

	schema, err := LoadSchema(flags.SchemaPath)
	if err != nil {
		return err
	}

	startTime := time.Now()
	var parsed *parser.ParseResult
	if docPath == StdinFilePath {
		parsed, err = parser.ParseWithOptions(parser.WithReader(os.Stdin))
	} else {
		parsed, err = parser.ParseWithOptions(parser.WithFilePath(docPath))
	}
	if err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}

	opts := []validator.Option{
		validator.WithParseResult(parsed),
		validator.WithSchema(schema),
		validator.WithOffset(flags.Offset),
	}
	if flags.Matches {
		opts = append(opts, validator.WithMatchTrace())
	}
	result, trace, err := validator.ValidateWithOptions(opts...)
	if err != nil {
		return fmt.Errorf("validating document: %w", err)
	}
	totalTime := time.Since(startTime)

	errs := DedupeIssues(result.Errors)
	warnings := DedupeIssues(result.Warnings)
	if flags.NoWarnings {
		warnings = nil
	}
	errs, warnings, truncated := ApplyIssueBudget(errs, warnings, flags.MaxIssues)

	if flags.Format == FormatJSON {
		report := buildValidateReport(docPath, flags.SchemaPath, errs, warnings, truncated, trace)
		if err := OutputStructured(os.Stdout, report); err != nil {
			return err
		}
		if !report.Valid {
			os.Exit(1)
		}
		return nil
	}

	if !flags.Quiet {
		Writef(os.Stdout, "yamlschema v%s\n", yamlschema.Version())
		Writef(os.Stdout, "Document: %s (%s)\n", docPath, parsed.SourceFormat)
		Writef(os.Stdout, "Schema: %s\n", flags.SchemaPath)
		Writef(os.Stdout, "Source Size: %d bytes\n", parsed.SourceSize)
		Writef(os.Stdout, "Total Time: %v\n\n", totalTime)
	}

	if len(errs) > 0 {
		Writef(os.Stdout, "Errors (%d):\n", len(errs))
		for _, issue := range errs {
			RenderIssue(os.Stdout, issue)
		}
		Writef(os.Stdout, "\n")
	}
	if len(warnings) > 0 {
		Writef(os.Stdout, "Warnings (%d):\n", len(warnings))
		for _, issue := range warnings {
			RenderIssue(os.Stdout, issue)
		}
		Writef(os.Stdout, "\n")
	}
	if truncated > 0 {
		Writef(os.Stdout, "(%d further issues not shown)\n\n", truncated)
	}

	if flags.Matches && trace != nil {
		Writef(os.Stdout, "Schema Matches (%d):\n", len(trace.Matches))
		for _, m := range trace.Matches {
			RenderMatch(os.Stdout, m)
		}
		Writef(os.Stdout, "\n")
	}

	if len(errs) == 0 && len(warnings) == 0 {
		Writef(os.Stdout, "%s Document is valid\n", successColor.Sprint("✓"))
		return nil
	}
	Writef(os.Stdout, "%s Validation failed: %d error(s), %d warning(s)\n",
		errorColor.Sprint("✗"), len(errs), len(warnings))
	os.Exit(1)
	return nil
}

func buildValidateReport(docPath, schemaPath string, errs, warnings []issues.Issue, truncated int, trace *validator.MatchTrace) validateReport {
	report := validateReport{
		Valid:     len(errs) == 0 && len(warnings) == 0,
		Document:  docPath,
		Schema:    schemaPath,
		Errors:    make([]issueReport, 0, len(errs)),
		Warnings:  make([]issueReport, 0, len(warnings)),
		Truncated: truncated,
	}
	for _, issue := range errs {
		report.Errors = append(report.Errors, toIssueReport(issue))
	}
	for _, issue := range warnings {
		report.Warnings = append(report.Warnings, toIssueReport(issue))
	}
	if trace != nil {
		for _, m := range trace.Matches {
			report.Matches = append(report.Matches, toMatchReport(m))
		}
	}
	return report
}

func toIssueReport(issue issues.Issue) issueReport {
	return issueReport{
		Start:   issue.Range.Start,
		End:     issue.Range.End,
		Line:    issue.Line,
		Column:  issue.Column,
		Path:    issue.Path,
		Message: issue.Message,
	}
}

func toMatchReport(m validator.SchemaMatch) matchReport {
	return matchReport{
		Path:     m.Node.Path(),
		Start:    m.Node.Start,
		End:      m.Node.End,
		Schema:   SchemaLabel(m.Schema),
		Inverted: m.Inverted,
	}
}

// RenderMatch formats one schema match for text output.
func RenderMatch(w io.Writer, m validator.SchemaMatch) {
	label := SchemaLabel(m.Schema)
	if m.Inverted {
		Writef(w, "  %s [%d:%d) ~%s\n", m.Node.Path(), m.Node.Start, m.Node.End, label)
		return
	}
	Writef(w, "  %s [%d:%d) %s\n", m.Node.Path(), m.Node.Start, m.Node.End, label)
}

// SchemaLabel produces a short human-readable identifier for a schema:
// its title when present, else its type constraint, else "schema".
func SchemaLabel(s *validator.Schema) string {
	if s == nil {
		return "schema"
	}
	if s.Title != "" {
		return s.Title
	}
	switch t := s.Type.(type) {
	case string:
		return t
	case []string:
		return fmt.Sprintf("%v", t)
	}
	return "schema"
}
