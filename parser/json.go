package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/djabraham/yamlschema/ast"
)

// parseJSON builds the document tree from a token-level JSON decode. The
// decoder reports exact byte offsets, so every node range is precise.
func (p *Parser) parseJSON(data []byte) (*ast.Node, []Issue) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	conv := &jsonConverter{src: data, dec: dec}
	root, err := conv.parseValue(nil, "")
	if err != nil {
		if errors.Is(err, io.EOF) && root == nil {
			// Empty input composes to nothing, which is not a syntax error.
			// EOF with a partial root means the input was cut off mid-value
			// and falls through to the issue below.
			return nil, nil
		}
		return root, []Issue{jsonSyntaxIssue(err, data)}
	}
	return root, nil
}

// jsonSyntaxIssue converts a decoder error into a positioned issue.
// Truncated input anchors at the last byte of the source.
func jsonSyntaxIssue(err error, src []byte) Issue {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		start := len(src) - 1
		if start < 0 {
			start = 0
		}
		return syntaxIssue(Range{Start: start, End: len(src)}, "unexpected end of input")
	}

	start := 0
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		start = int(syntaxErr.Offset)
		if start > 0 {
			start--
		}
	}
	end := start + 1
	if end > len(src) {
		end = len(src)
		if start > 0 {
			start = end - 1
		}
	}
	msg := strings.TrimPrefix(err.Error(), "json: ")
	return syntaxIssue(Range{Start: start, End: end}, msg)
}

// jsonConverter builds ast nodes from the decoder's token stream.
type jsonConverter struct {
	src []byte
	dec *json.Decoder
}

// parseValue consumes one JSON value from the token stream.
func (c *jsonConverter) parseValue(parent *ast.Node, name string) (*ast.Node, error) {
	before := c.dec.InputOffset()
	tok, err := c.dec.Token()
	if err != nil {
		return nil, err
	}
	return c.buildValue(parent, name, tok, before)
}

// buildValue converts a freshly read token, recursing for containers.
// before is the decoder offset prior to reading the token; the token's own
// start is found by skipping the separators in between.
func (c *jsonConverter) buildValue(parent *ast.Node, name string, tok json.Token, before int64) (*ast.Node, error) {
	start := c.tokenStart(int(before))
	end := int(c.dec.InputOffset())

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return c.parseObject(parent, name, start)
		case '[':
			return c.parseArray(parent, name, start)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", v.String())
		}
	case string:
		return ast.NewString(parent, name, v, start, end), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		isInteger := !strings.ContainsAny(v.String(), ".eE")
		return ast.NewNumber(parent, name, f, isInteger, start, end), nil
	case bool:
		return ast.NewBoolean(parent, name, v, start, end), nil
	case nil:
		return ast.NewNull(parent, name, start, end), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func (c *jsonConverter) parseObject(parent *ast.Node, name string, start int) (*ast.Node, error) {
	obj := ast.NewObject(parent, name, start, start+1)

	for c.dec.More() {
		keyBefore := c.dec.InputOffset()
		keyTok, err := c.dec.Token()
		if err != nil {
			return obj, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return obj, fmt.Errorf("unexpected object key token %v", keyTok)
		}
		keyStart := c.tokenStart(int(keyBefore))
		keyEnd := int(c.dec.InputOffset())

		prop := ast.NewProperty(obj, keyStart, keyStart)
		prop.SetKey(ast.NewString(nil, "", key, keyStart, keyEnd))

		val, err := c.parseValue(nil, key)
		if err != nil {
			obj.AddProperty(prop)
			return obj, err
		}
		prop.SetValue(val)
		obj.AddProperty(prop)
	}

	// Consume the closing '}'.
	if _, err := c.dec.Token(); err != nil {
		return obj, err
	}
	obj.End = int(c.dec.InputOffset())
	return obj, nil
}

func (c *jsonConverter) parseArray(parent *ast.Node, name string, start int) (*ast.Node, error) {
	arr := ast.NewArray(parent, name, start, start+1)

	for c.dec.More() {
		item, err := c.parseValue(nil, "")
		if err != nil {
			return arr, err
		}
		arr.AddItem(item)
	}

	// Consume the closing ']'.
	if _, err := c.dec.Token(); err != nil {
		return arr, err
	}
	arr.End = int(c.dec.InputOffset())
	return arr, nil
}

// tokenStart scans forward from the decoder's pre-token offset past the
// whitespace and punctuation separating tokens, landing on the token's
// first byte.
func (c *jsonConverter) tokenStart(from int) int {
	for i := from; i < len(c.src); i++ {
		switch c.src[i] {
		case ' ', '\t', '\n', '\r', ',', ':':
			continue
		default:
			return i
		}
	}
	return len(c.src)
}
