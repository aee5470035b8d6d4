package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/djabraham/yamlschema/ast"
)

// parseYAML composes the source with the yaml library and converts the
// resulting node graph into the uniform document model.
func (p *Parser) parseYAML(data []byte, lm *LineMap) (*ast.Node, []Issue) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, []Issue{yamlSyntaxIssue(err, lm)}
	}
	conv := &yamlConverter{src: data, lm: lm}
	return conv.convert(&root, nil, ""), nil
}

// yamlSyntaxIssue converts a yaml composer error into a positioned issue.
// The library reports positions as "line N:" text only, so the range is a
// best-effort anchor at the start of the named line.
func yamlSyntaxIssue(err error, lm *LineMap) Issue {
	msg := err.Error()
	msg = strings.TrimPrefix(msg, "yaml: ")
	start := 0
	if m := yamlLineRE.FindStringSubmatch(msg); m != nil {
		if line, convErr := strconv.Atoi(m[1]); convErr == nil {
			start = lm.Offset(line, 1)
		}
	}
	end := start + 1
	if end > lm.Len() {
		end = lm.Len()
	}
	return syntaxIssue(Range{Start: start, End: end}, msg)
}

var yamlLineRE = regexp.MustCompile(`line (\d+):`)

// yamlConverter converts yaml.Node graphs to ast.Node trees. Byte offsets
// are recovered from the composer's line/column positions; scalar end
// offsets are rescanned from the source so that plain and quoted scalars
// get exact ranges.
type yamlConverter struct {
	src []byte
	lm  *LineMap
}

// FromYAMLNode converts a composed yaml node into a document node, wiring
// parent back references and recursing into children. Aliases and custom
// tags have no representation in the document model and yield nil; callers
// must tolerate the missing child.
func FromYAMLNode(node *yaml.Node, src []byte, lm *LineMap) *ast.Node {
	conv := &yamlConverter{src: src, lm: lm}
	return conv.convert(node, nil, "")
}

func (c *yamlConverter) convert(node *yaml.Node, parent *ast.Node, name string) *ast.Node {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil
		}
		return c.convert(node.Content[0], parent, name)
	case yaml.MappingNode:
		return c.convertMapping(node, parent, name)
	case yaml.SequenceNode:
		return c.convertSequence(node, parent, name)
	case yaml.ScalarNode:
		return c.convertScalar(node, parent, name)
	default:
		// Aliases (and anything the composer produced that we do not
		// recognize) are an unhandled gap, surfaced as an absent node.
		return nil
	}
}

func (c *yamlConverter) convertMapping(node *yaml.Node, parent *ast.Node, name string) *ast.Node {
	start := c.offset(node)
	obj := ast.NewObject(parent, name, start, start+1)

	// Content alternates: key, value, key, value...
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valNode := node.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			// Complex mapping keys have no document-model rendering.
			continue
		}

		keyStart := c.offset(keyNode)
		prop := ast.NewProperty(obj, keyStart, keyStart)
		prop.SetKey(ast.NewString(nil, "", keyNode.Value, keyStart, c.scalarEnd(keyNode, keyStart)))
		// The value may convert to nothing (alias, custom tag); a
		// valueless property is tolerated downstream.
		prop.SetValue(c.convert(valNode, nil, keyNode.Value))
		obj.AddProperty(prop)
	}

	obj.End = c.containerEnd(node, obj, '}')
	return obj
}

func (c *yamlConverter) convertSequence(node *yaml.Node, parent *ast.Node, name string) *ast.Node {
	start := c.offset(node)
	arr := ast.NewArray(parent, name, start, start+1)

	for _, itemNode := range node.Content {
		arr.AddItem(c.convert(itemNode, nil, ""))
	}

	arr.End = c.containerEnd(node, arr, ']')
	return arr
}

func (c *yamlConverter) convertScalar(node *yaml.Node, parent *ast.Node, name string) *ast.Node {
	start := c.offset(node)
	end := c.scalarEnd(node, start)

	switch node.Tag {
	case "!!null":
		return ast.NewNull(parent, name, start, end)
	case "!!bool":
		if b, ok := parseYAMLBool(node.Value); ok {
			return ast.NewBoolean(parent, name, b, start, end)
		}
		return ast.NewString(parent, name, node.Value, start, end)
	case "!!int":
		if i, err := strconv.ParseInt(node.Value, 0, 64); err == nil {
			return ast.NewNumber(parent, name, float64(i), true, start, end)
		}
		return ast.NewString(parent, name, node.Value, start, end)
	case "!!float":
		if f, ok := parseYAMLFloat(node.Value); ok {
			return ast.NewNumber(parent, name, f, false, start, end)
		}
		return ast.NewString(parent, name, node.Value, start, end)
	case "!!str", "!!timestamp", "!!binary":
		return ast.NewString(parent, name, node.Value, start, end)
	default:
		// Custom tags (e.g. include directives) are an unhandled gap.
		return nil
	}
}

// offset recovers the byte offset of a node's first byte.
func (c *yamlConverter) offset(node *yaml.Node) int {
	return c.lm.Offset(node.Line, node.Column)
}

// scalarEnd computes the end offset for a scalar. Plain scalars cover
// exactly their value text; quoted scalars are rescanned from the source
// for the closing quote so escapes do not skew the range; block scalars
// anchor at their indicator line.
func (c *yamlConverter) scalarEnd(node *yaml.Node, start int) int {
	var end int
	switch node.Style {
	case yaml.SingleQuotedStyle:
		end = c.scanQuoted(start, '\'')
	case yaml.DoubleQuotedStyle:
		end = c.scanQuoted(start, '"')
	case yaml.LiteralStyle, yaml.FoldedStyle:
		end = c.scanLineEnd(start)
	default:
		end = start + len(node.Value)
	}
	if end > c.lm.Len() {
		end = c.lm.Len()
	}
	if end <= start {
		end = start + 1
	}
	return end
}

// scanQuoted returns the offset one past the closing quote of a quoted
// scalar starting at the opening quote.
func (c *yamlConverter) scanQuoted(start int, quote byte) int {
	if start >= len(c.src) || c.src[start] != quote {
		return start + 1
	}
	for i := start + 1; i < len(c.src); i++ {
		switch c.src[i] {
		case '\\':
			if quote == '"' {
				i++
			}
		case quote:
			if quote == '\'' && i+1 < len(c.src) && c.src[i+1] == '\'' {
				i++ // escaped single quote
				continue
			}
			return i + 1
		}
	}
	return len(c.src)
}

// scanLineEnd returns the offset of the end of the line containing start.
func (c *yamlConverter) scanLineEnd(start int) int {
	for i := start; i < len(c.src); i++ {
		if c.src[i] == '\n' {
			return i
		}
	}
	return len(c.src)
}

// containerEnd computes the end offset of a mapping or sequence node: the
// closing bracket for flow style, otherwise the end of the last child.
func (c *yamlConverter) containerEnd(node *yaml.Node, built *ast.Node, closing byte) int {
	end := built.Start + 1
	for _, child := range built.Children() {
		if child.End > end {
			end = child.End
		}
	}
	if node.Style == yaml.FlowStyle {
		for i := end - 1; i < len(c.src); i++ {
			if c.src[i] == closing {
				return i + 1
			}
		}
	}
	return end
}

// parseYAMLBool resolves the boolean literals the yaml core schema tags
// as !!bool.
func parseYAMLBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "y":
		return true, true
	case "false", "no", "off", "n":
		return false, true
	default:
		return false, false
	}
}

// parseYAMLFloat parses a yaml float literal including the .inf/.nan forms.
func parseYAMLFloat(s string) (float64, bool) {
	switch strings.ToLower(s) {
	case ".inf", "+.inf":
		return math.Inf(1), true
	case "-.inf":
		return math.Inf(-1), true
	case ".nan":
		return math.NaN(), true
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
