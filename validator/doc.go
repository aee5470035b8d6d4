// Package validator implements JSON Schema validation over the uniform
// document node model.
//
// The validator walks a document node tree and a schema in lock-step,
// applying every applicable schema keyword, recursing into children and
// scoring ambiguous alternatives (anyOf/oneOf) with a best-match fold rather
// than short-circuit boolean logic. Violations are reported as issues
// anchored at the byte range of the offending node; one invalid node never
// aborts validation of its siblings or the rest of the document.
//
// # Inputs
//
// The engine consumes a Schema whose $ref references have already been
// resolved and inlined by the caller; schema retrieval and caching are out
// of scope. A schema is immutable during validation and may be shared by
// concurrent validations of different documents: the engine keeps no state
// outside each call's own ValidationResult.
//
// A structurally malformed schema never faults the engine: a keyword whose
// value has the wrong shape is treated as absent, because the document
// being validated should not blow up over its schema's internal
// inconsistencies. SchemaFromMap applies the same policy while decoding.
//
// # Severity
//
// Schema violations accumulate as warnings; the Errors list carries
// syntax-level diagnostics merged from the parser. Display layers decide
// final severity, capping and de-duplication.
//
// # Match traces
//
// When requested, the engine records every (node, schema) pairing it
// visits, including pairs under a "not" (flagged inverted), and including
// nodes that failed their type check. The trace answers "which schema
// governs this location" queries for completion and hover tooling even on
// invalid documents.
package validator
