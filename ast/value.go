package ast

// Value produces the plain Go representation of the subtree: nil, bool,
// float64, string, []any or map[string]any. It is the representation used
// for enum membership and uniqueItems comparisons.
//
// An object elides properties whose value renders as nil, false, zero or
// the empty string, mirroring JSON's own notion of "no value"; enum
// matching depends on this exact behavior. Empty objects and arrays are
// kept.
func (n *Node) Value() any {
	switch n.Kind {
	case KindNull:
		return nil
	case KindBoolean:
		return n.Bool
	case KindNumber:
		return n.Num
	case KindString:
		return n.Str
	case KindProperty:
		if n.Val == nil {
			return nil
		}
		return n.Val.Value()
	case KindArray:
		items := make([]any, 0, len(n.Items))
		for _, item := range n.Items {
			items = append(items, item.Value())
		}
		return items
	case KindObject:
		obj := make(map[string]any, len(n.Properties))
		for _, prop := range n.Properties {
			if prop.Key == nil || prop.Val == nil {
				continue
			}
			v := prop.Val.Value()
			if isElided(v) {
				continue
			}
			obj[prop.Key.Str] = v
		}
		return obj
	default:
		return nil
	}
}

// isElided reports whether a plain value counts as "no value" for object
// rendering.
func isElided(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return !val
	case float64:
		return val == 0
	case string:
		return val == ""
	default:
		return false
	}
}
