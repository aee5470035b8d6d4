// Package ast defines the uniform document node model shared by the YAML and
// JSON adapters and consumed by the validator.
//
// A document is represented as a tree of Node values. Every node records the
// half-open byte range [Start, End) it occupies in the source text; child
// ranges nest within their parent's range and are ordered by Start, which is
// what makes offset-based lookup possible. Parent links are non-owning back
// references used only for path reconstruction.
package ast

import "fmt"

// Kind identifies the variant of a Node.
type Kind int

const (
	// KindNull is a null scalar.
	KindNull Kind = iota
	// KindBoolean is a true/false scalar.
	KindBoolean
	// KindNumber is a numeric scalar.
	KindNumber
	// KindString is a text scalar.
	KindString
	// KindProperty is a key/value pair inside an object.
	KindProperty
	// KindObject is a mapping of properties.
	KindObject
	// KindArray is an ordered sequence of items.
	KindArray
)

// String returns the lower-case kind name, which doubles as the node's type
// name for schema type comparisons.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindProperty:
		return "property"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("<unknown kind %d>", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Node is one element of the parsed document tree. A single flat struct
// carries all variants; the fields beyond the common set are meaningful only
// for the Kind they belong to.
type Node struct {
	// Kind is the variant tag.
	Kind Kind
	// Name is the property name this node is bound under, empty for array
	// items and the document root.
	Name string
	// Start is the byte offset of the node's first byte in the source.
	Start int
	// End is the byte offset one past the node's last byte.
	End int
	// Parent is a non-owning back reference used for path reconstruction
	// and for locating the enclosing property when anchoring diagnostics.
	Parent *Node

	// Properties holds an object's Property children in source order.
	// Duplicate keys are allowed and not deduplicated by the model.
	Properties []*Node
	// Items holds an array's children in source order.
	Items []*Node
	// Key is a property's key node (a String with IsKey set).
	Key *Node
	// Val is a property's value node, nil when the value is missing.
	Val *Node

	// Str is the value of a String node.
	Str string
	// IsKey marks a String node that serves as a property key.
	IsKey bool
	// Num is the value of a Number node.
	Num float64
	// IsInteger is true when a Number's source lexeme had no fractional
	// or exponent part.
	IsInteger bool
	// Bool is the value of a Boolean node.
	Bool bool
}

// NewNull creates a null node spanning [start, end).
func NewNull(parent *Node, name string, start, end int) *Node {
	return &Node{Kind: KindNull, Parent: parent, Name: name, Start: start, End: end}
}

// NewBoolean creates a boolean node spanning [start, end).
func NewBoolean(parent *Node, name string, value bool, start, end int) *Node {
	return &Node{Kind: KindBoolean, Parent: parent, Name: name, Bool: value, Start: start, End: end}
}

// NewNumber creates a number node spanning [start, end). isInteger reports
// whether the source lexeme was an integer literal.
func NewNumber(parent *Node, name string, value float64, isInteger bool, start, end int) *Node {
	return &Node{Kind: KindNumber, Parent: parent, Name: name, Num: value, IsInteger: isInteger, Start: start, End: end}
}

// NewString creates a string node spanning [start, end).
func NewString(parent *Node, name string, value string, start, end int) *Node {
	return &Node{Kind: KindString, Parent: parent, Name: name, Str: value, Start: start, End: end}
}

// NewProperty creates an empty property node. Its range is established by
// SetKey and SetValue.
func NewProperty(parent *Node, start, end int) *Node {
	return &Node{Kind: KindProperty, Parent: parent, Start: start, End: end}
}

// NewObject creates an object node spanning [start, end).
func NewObject(parent *Node, name string, start, end int) *Node {
	return &Node{Kind: KindObject, Parent: parent, Name: name, Start: start, End: end}
}

// NewArray creates an array node spanning [start, end).
func NewArray(parent *Node, name string, start, end int) *Node {
	return &Node{Kind: KindArray, Parent: parent, Name: name, Start: start, End: end}
}

// AddItem appends an item to an array node. A nil item is rejected and the
// return value reports whether the item was accepted; rejecting nil is not
// an error, it lets adapters tolerate children they could not convert.
func (n *Node) AddItem(item *Node) bool {
	if item == nil {
		return false
	}
	item.Parent = n
	n.Items = append(n.Items, item)
	return true
}

// AddProperty appends a property to an object node. A nil property is
// rejected; the return value reports acceptance.
func (n *Node) AddProperty(prop *Node) bool {
	if prop == nil {
		return false
	}
	prop.Parent = n
	n.Properties = append(n.Properties, prop)
	return true
}

// SetKey installs the key node of a property. The property's range is
// anchored at the key: it starts at the key's start and, until a value is
// set, ends one past the key's end.
func (n *Node) SetKey(key *Node) bool {
	if key == nil {
		return false
	}
	key.Parent = n
	key.IsKey = true
	n.Key = key
	n.Start = key.Start
	if n.Val == nil {
		n.End = key.End + 1
	}
	return true
}

// SetValue installs the value node of a property and extends the property's
// range to the value's end.
func (n *Node) SetValue(value *Node) bool {
	if value == nil {
		return false
	}
	value.Parent = n
	value.Name = n.keyName()
	n.Val = value
	n.End = value.End
	return true
}

// keyName returns the property's key text, or empty when no key is set.
func (n *Node) keyName() string {
	if n.Key == nil {
		return ""
	}
	return n.Key.Str
}

// Children returns the node's direct children in ascending Start order:
// properties for an object, items for an array, and key then value for a
// property. Scalars have no children.
func (n *Node) Children() []*Node {
	switch n.Kind {
	case KindObject:
		return n.Properties
	case KindArray:
		return n.Items
	case KindProperty:
		if n.Val != nil {
			return []*Node{n.Key, n.Val}
		}
		if n.Key != nil {
			return []*Node{n.Key}
		}
		return nil
	default:
		return nil
	}
}

// Path returns a JSON-path-like location string for the node, built by
// walking Parent links (e.g. "$.pets[0].name"). The document root is "$".
func (n *Node) Path() string {
	if n.Parent == nil {
		return "$"
	}
	switch n.Parent.Kind {
	case KindArray:
		idx := 0
		for i, item := range n.Parent.Items {
			if item == n {
				idx = i
				break
			}
		}
		return fmt.Sprintf("%s[%d]", n.Parent.Path(), idx)
	case KindProperty:
		// Key and value share the property's path.
		return n.Parent.Path()
	default:
		if n.Kind == KindProperty && n.Key != nil {
			return fmt.Sprintf("%s.%s", n.Parent.Path(), n.Key.Str)
		}
		if n.Name != "" {
			return fmt.Sprintf("%s.%s", n.Parent.Path(), n.Name)
		}
		return n.Parent.Path()
	}
}
