package validator

import "github.com/djabraham/yamlschema/ast"

// SchemaMatch records that a schema was applied to a node. Inverted marks
// matches gathered under a "not" combinator, where applying cleanly is a
// violation rather than a success.
type SchemaMatch struct {
	Node     *ast.Node
	Schema   *Schema
	Inverted bool
}

// MatchTrace collects (node, schema) pairings in validation order. A nil
// trace is valid and records nothing, so the engine can thread one pointer
// through without guarding every call site.
type MatchTrace struct {
	Matches []SchemaMatch
}

// NewMatchTrace returns an empty trace.
func NewMatchTrace() *MatchTrace {
	return &MatchTrace{}
}

func (t *MatchTrace) add(node *ast.Node, schema *Schema) {
	if t == nil {
		return
	}
	t.Matches = append(t.Matches, SchemaMatch{Node: node, Schema: schema})
}

// sub returns a fresh trace for a speculative branch, or nil when the
// receiver itself records nothing.
func (t *MatchTrace) sub() *MatchTrace {
	if t == nil {
		return nil
	}
	return NewMatchTrace()
}

// append copies the branch trace's entries into the receiver.
func (t *MatchTrace) append(branch *MatchTrace) {
	if t == nil || branch == nil {
		return
	}
	t.Matches = append(t.Matches, branch.Matches...)
}

// appendInverted copies the branch trace's entries with Inverted flipped,
// used when folding a "not" sub-trace into the parent.
func (t *MatchTrace) appendInverted(branch *MatchTrace) {
	if t == nil || branch == nil {
		return
	}
	for _, m := range branch.Matches {
		m.Inverted = !m.Inverted
		t.Matches = append(t.Matches, m)
	}
}

// SchemaAt returns the schemas recorded against nodes whose range contains
// the offset, innermost last.
func (t *MatchTrace) SchemaAt(offset int) []SchemaMatch {
	if t == nil {
		return nil
	}
	var out []SchemaMatch
	for _, m := range t.Matches {
		if m.Node != nil && m.Node.Contains(offset, false) {
			out = append(out, m)
		}
	}
	return out
}
