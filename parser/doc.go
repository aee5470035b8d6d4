// Package parser builds the uniform document node tree from YAML or JSON
// source text, preserving byte offsets for diagnostics.
//
// Both source syntaxes converge on the same ast.Node model: the YAML adapter
// converts the composer output of go.yaml.in/yaml/v4, recovering byte
// offsets from line/column positions, while the JSON adapter walks a
// token-level decode with exact input offsets. Parse-level syntax errors are
// reported as positioned issues on the ParseResult rather than Go errors, so
// a partially valid document still yields a usable (partial) tree.
//
// Known gaps of the YAML adapter: anchors/aliases and custom tags (such as
// file-include directives) produce no node. Collector sites in the ast
// tolerate the missing child, so the rest of the document is still
// represented.
package parser
