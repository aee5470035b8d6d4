// Package yamlschema provides JSON Schema validation for YAML and JSON documents.
//
// yamlschema parses a YAML or JSON document into a uniform, offset-preserving
// node tree and validates it against a JSON-Schema-shaped constraint
// specification, producing diagnostics anchored at byte ranges in the source
// text. The diagnostics are suitable for editor tooling: each issue carries
// the exact source range of the offending node, and an optional schema match
// trace records which schema fragment governed each location.
//
// # Overview
//
// The library consists of three primary packages:
//
//   - ast: the uniform document node model shared by both source syntaxes
//   - parser: adapters that build the node tree from YAML or JSON source
//   - validator: the schema validation engine and its result model
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/djabraham/yamlschema
//
// # Quick Start
//
// Parse a document and validate it against a schema:
//
//	import (
//	    "github.com/djabraham/yamlschema/parser"
//	    "github.com/djabraham/yamlschema/validator"
//	)
//
//	doc, err := parser.ParseWithOptions(parser.WithFilePath("config.yaml"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	schema, err := validator.SchemaFromJSON(schemaBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result := validator.New().Validate(doc.Root, schema)
//	for _, issue := range result.Warnings {
//	    line, col := doc.LineMap.Position(issue.Range.Start)
//	    fmt.Printf("%d:%d %s\n", line, col, issue.Message)
//	}
//
// Schema loading, caching and $ref resolution are out of scope: the validator
// consumes a schema whose references have already been inlined by the caller.
//
// # Command Line
//
// The yamlschema command validates files from the shell:
//
//	yamlschema validate -schema schema.json config.yaml
package yamlschema
