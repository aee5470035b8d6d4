package parser

import (
	"bytes"
	"path/filepath"
)

// SourceFormat represents the syntax of the source document.
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// detectFormat resolves the effective source format: a forced format wins,
// then the file extension, then content sniffing.
func detectFormat(forced SourceFormat, path string, data []byte) SourceFormat {
	if forced == SourceFormatYAML || forced == SourceFormatJSON {
		return forced
	}
	if f := detectFormatFromPath(path); f != SourceFormatUnknown {
		return f
	}
	return detectFormatFromContent(data)
}

// detectFormatFromPath detects the source format from a file path.
func detectFormatFromPath(path string) SourceFormat {
	switch filepath.Ext(path) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent attempts to detect the format from the content
// bytes. JSON typically starts with '{' or '[', while YAML does not.
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")

	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}

	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}

	return SourceFormatYAML
}
