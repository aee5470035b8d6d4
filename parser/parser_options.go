package parser

import (
	"fmt"
	"io"

	"github.com/djabraham/yamlschema/internal/options"
)

// Option is a function that configures a parse operation.
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation.
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	data     []byte
	dataPath string
	reader   io.Reader

	// Configuration options
	format      SourceFormat
	maxFileSize int64
	logger      Logger
}

// applyOptions applies option functions and validates configuration.
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{
		format: SourceFormatUnknown,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"must specify an input source (use WithFilePath, WithBytes or WithReader)",
		"must specify exactly one input source",
		cfg.filePath != nil, cfg.data != nil, cfg.reader != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ParseWithOptions parses a document using functional options.
//
// Example:
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("config.yaml"),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	p := &Parser{
		Format:      cfg.format,
		MaxFileSize: cfg.maxFileSize,
		Logger:      cfg.logger,
	}

	switch {
	case cfg.filePath != nil:
		return p.Parse(*cfg.filePath)
	case cfg.data != nil:
		return p.ParseBytes(cfg.data, cfg.dataPath)
	default:
		return p.ParseReader(cfg.reader)
	}
}

// WithFilePath specifies a file path as the input source.
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithBytes specifies in-memory source text as the input source. The path
// is used only for labeling diagnostics and may be empty.
func WithBytes(data []byte, path string) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			data = []byte{}
		}
		cfg.data = data
		cfg.dataPath = path
		return nil
	}
}

// WithReader specifies a reader as the input source.
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		cfg.reader = r
		return nil
	}
}

// WithSourceFormat forces the source format instead of detecting it.
// Default: SourceFormatUnknown (detect).
func WithSourceFormat(format SourceFormat) Option {
	return func(cfg *parseConfig) error {
		switch format {
		case SourceFormatYAML, SourceFormatJSON, SourceFormatUnknown:
			cfg.format = format
			return nil
		default:
			return fmt.Errorf("unsupported source format: %s", format)
		}
	}
}

// WithMaxFileSize sets the maximum document size in bytes.
// Default: 10MB.
func WithMaxFileSize(size int64) Option {
	return func(cfg *parseConfig) error {
		if size < 0 {
			return fmt.Errorf("max file size must be non-negative, got %d", size)
		}
		cfg.maxFileSize = size
		return nil
	}
}

// WithLogger sets the structured logger for debug output.
// Default: no logging.
func WithLogger(logger Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = logger
		return nil
	}
}
