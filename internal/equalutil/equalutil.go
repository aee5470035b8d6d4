// Package equalutil provides equality helpers shared across packages.
package equalutil

// EqualPtr compares two pointers of any comparable type for equality.
// Both nil returns true, both non-nil with equal values returns true.
func EqualPtr[T comparable](a, b *T) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// PlainEqual reports deep structural equality of two plain values as produced
// by ast.Node.Value: nil, bool, float64, string, []any and map[string]any.
// It is used for enum membership and uniqueItems duplicate detection, where
// JSON Schema semantics call for structural rather than identity comparison.
func PlainEqual(a, b any) bool {
	// Numeric values are compared after widening to float64 so that schema
	// enums decoded from JSON (float64) compare equal to values decoded
	// from YAML (int).
	if an, ok := normalizeNumber(a); ok {
		bn, bok := normalizeNumber(b)
		return bok && an == bn
	}
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !PlainEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bvv, ok := bv[k]
			if !ok || !PlainEqual(v, bvv) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// normalizeNumber widens integer representations to float64.
func normalizeNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
