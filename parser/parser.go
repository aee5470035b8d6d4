package parser

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/djabraham/yamlschema/ast"
	"github.com/djabraham/yamlschema/internal/issues"
	"github.com/djabraham/yamlschema/internal/severity"
)

// Issue is a positioned parse diagnostic.
type Issue = issues.Issue

// Range is a half-open byte range into the source text.
type Range = issues.Range

const (
	// defaultMaxFileSize is the maximum document size accepted by default (10MB)
	defaultMaxFileSize = 10 * 1024 * 1024
)

// Parser builds document node trees from YAML or JSON source text.
type Parser struct {
	// Format forces the source format. When SourceFormatUnknown (default),
	// the format is detected from the file extension and content.
	Format SourceFormat
	// MaxFileSize is the maximum document size in bytes (0 means 10MB).
	MaxFileSize int64
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger Logger
}

// New creates a new Parser instance with default settings.
func New() *Parser {
	return &Parser{}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

// ParseResult contains the document node tree and parse metadata.
//
// Callers should treat the result as read-only: the tree may be shared with
// a validator running concurrently from another call site.
type ParseResult struct {
	// SourcePath is the document's input source path that it was read from
	SourcePath string
	// SourceFormat is the detected (or forced) source format
	SourceFormat SourceFormat
	// Root is the document root node; nil when the source was empty or
	// nothing could be composed from it
	Root *ast.Node
	// Source is the raw source text the offsets index into
	Source []byte
	// LineMap converts the tree's byte offsets to editor positions
	LineMap *LineMap
	// Errors holds positioned syntax diagnostics; the tree may be partial
	// when any are present
	Errors []Issue
	// LoadTime is the time taken to read and compose the source
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
}

// Parse reads and parses the document at the given file path.
func (p *Parser) Parse(path string) (*ParseResult, error) {
	start := time.Now()
	data, err := os.ReadFile(path) //nolint:gosec // G304 - path is user-provided input
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read %s: %w", path, err)
	}
	result, err := p.parseBytes(data, path, detectFormat(p.Format, path, data))
	if err != nil {
		return nil, err
	}
	result.LoadTime = time.Since(start)
	return result, nil
}

// ParseBytes parses in-memory source text. The path is used only for
// labeling diagnostics and format detection and may be empty.
func (p *Parser) ParseBytes(data []byte, path string) (*ParseResult, error) {
	start := time.Now()
	result, err := p.parseBytes(data, path, detectFormat(p.Format, path, data))
	if err != nil {
		return nil, err
	}
	result.LoadTime = time.Since(start)
	return result, nil
}

// ParseReader parses source text read from r until EOF.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	start := time.Now()
	data, err := io.ReadAll(io.LimitReader(r, p.maxFileSize()+1))
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read input: %w", err)
	}
	result, err := p.parseBytes(data, "", detectFormat(p.Format, "", data))
	if err != nil {
		return nil, err
	}
	result.LoadTime = time.Since(start)
	return result, nil
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return defaultMaxFileSize
}

func (p *Parser) parseBytes(data []byte, path string, format SourceFormat) (*ParseResult, error) {
	if int64(len(data)) > p.maxFileSize() {
		return nil, fmt.Errorf("parser: document size %d exceeds maximum %d bytes", len(data), p.maxFileSize())
	}

	result := &ParseResult{
		SourcePath:   path,
		SourceFormat: format,
		Source:       data,
		LineMap:      NewLineMap(data),
		SourceSize:   int64(len(data)),
	}

	switch format {
	case SourceFormatJSON:
		result.Root, result.Errors = p.parseJSON(data)
	default:
		// YAML is the fallback for unknown formats; it accepts JSON input
		// as well, so misdetection still yields a tree.
		result.SourceFormat = SourceFormatYAML
		result.Root, result.Errors = p.parseYAML(data, result.LineMap)
	}

	p.log().Debug("parsed document",
		"path", path,
		"format", string(result.SourceFormat),
		"bytes", len(data),
		"errors", len(result.Errors))

	return result, nil
}

// syntaxIssue builds a positioned syntax diagnostic.
func syntaxIssue(r Range, msg string) Issue {
	return Issue{
		Range:    r,
		Message:  msg,
		Severity: severity.SeverityError,
	}
}
