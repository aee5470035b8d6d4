package validator

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"

	"github.com/djabraham/yamlschema/ast"
	"github.com/djabraham/yamlschema/internal/equalutil"
	"github.com/djabraham/yamlschema/parser"
)

// walker carries the per-call validation state: offset scoping, position
// mapping, and the compiled-pattern cache.
type walker struct {
	offset  int
	lineMap *parser.LineMap

	// regexps caches compiled patterns for the duration of one walk. A nil
	// entry marks a pattern that failed to compile.
	regexps map[string]*regexp.Regexp
}

func (w *walker) validate(node *ast.Node, schema *Schema, result *ValidationResult, trace *MatchTrace) {
	if node == nil || schema == nil {
		return
	}
	if w.offset >= 0 && !node.Contains(w.offset, false) {
		return
	}
	if node.Kind == ast.KindProperty {
		w.validate(node.Val, schema, result, trace)
		return
	}

	w.checkType(node, schema, result)
	for _, sub := range schema.AllOf {
		w.validate(node, sub, result, trace)
	}
	w.checkNot(node, schema, result, trace)
	if len(schema.AnyOf) > 0 {
		w.testAlternatives(node, schema.AnyOf, false, result, trace)
	}
	if len(schema.OneOf) > 0 {
		w.testAlternatives(node, schema.OneOf, true, result, trace)
	}
	w.checkEnum(node, schema, result)
	trace.add(node, schema)

	switch node.Kind {
	case ast.KindNumber:
		w.validateNumber(node, schema, result)
	case ast.KindString:
		w.validateString(node, schema, result)
	case ast.KindArray:
		w.validateArray(node, schema, result, trace)
	case ast.KindObject:
		w.validateObject(node, schema, result, trace)
	}
}

func (w *walker) checkType(node *ast.Node, schema *Schema, result *ValidationResult) {
	switch t := schema.Type.(type) {
	case string:
		if !nodeMatchesType(node, t) {
			result.addNodeWarning(node, w.lineMap, "incorrect type, expected %q", t)
		}
	case []string:
		matched := false
		for _, name := range t {
			if nodeMatchesType(node, name) {
				matched = true
				break
			}
		}
		if !matched {
			result.addNodeWarning(node, w.lineMap, "incorrect type, expected one of %s", strings.Join(t, ", "))
		}
	}
}

// nodeMatchesType reports whether the node satisfies one type name,
// where "integer" additionally accepts whole numbers. Both the single
// string and the set form of the keyword use it.
func nodeMatchesType(node *ast.Node, name string) bool {
	if node.Kind.String() == name {
		return true
	}
	return name == "integer" && node.Kind == ast.KindNumber && node.IsInteger
}

func (w *walker) checkNot(node *ast.Node, schema *Schema, result *ValidationResult, trace *MatchTrace) {
	if schema.Not == nil {
		return
	}
	subResult := NewValidationResult()
	subTrace := trace.sub()
	w.validate(node, schema.Not, subResult, subTrace)
	if !subResult.HasProblems() {
		result.addNodeWarning(node, w.lineMap, "matches a disallowed schema")
	}
	trace.appendInverted(subTrace)
}

func (w *walker) checkEnum(node *ast.Node, schema *Schema, result *ValidationResult) {
	if len(schema.Enum) == 0 {
		return
	}
	value := node.Value()
	for _, literal := range schema.Enum {
		if equalutil.PlainEqual(value, literal) {
			result.EnumValueMatch = true
			return
		}
	}
	result.addNodeWarning(node, w.lineMap, "value is not accepted, valid values: %s", enumList(schema.Enum))
}

func enumList(values []any) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if text, err := json.Marshal(v); err == nil {
			parts = append(parts, string(text))
		} else {
			parts = append(parts, fmt.Sprintf("%v", v))
		}
	}
	return strings.Join(parts, ", ")
}

// testAlternatives validates the node against every alternative in
// isolation, keeps the best-scoring one, and folds its diagnostics and
// counters into the parent. With maxOneMatch set, more than one clean match
// is itself a violation.
func (w *walker) testAlternatives(node *ast.Node, alternatives []*Schema, maxOneMatch bool, result *ValidationResult, trace *MatchTrace) {
	var bestResult *ValidationResult
	var bestTrace *MatchTrace
	matches := 0

	for _, alt := range alternatives {
		subResult := NewValidationResult()
		subTrace := trace.sub()
		w.validate(node, alt, subResult, subTrace)
		if !subResult.HasProblems() {
			matches++
		}
		if bestResult == nil {
			bestResult = subResult
			bestTrace = subTrace
			continue
		}
		if !maxOneMatch && !subResult.HasProblems() && !bestResult.HasProblems() {
			// Any number of anyOf branches may apply at once, so the
			// matched pairings and counters of every clean branch count.
			bestTrace.append(subTrace)
			bestResult.PropertiesMatches += subResult.PropertiesMatches
			bestResult.PropertiesValueMatches += subResult.PropertiesValueMatches
			continue
		}
		cmp := subResult.Compare(bestResult)
		if cmp > 0 {
			bestResult = subResult
			bestTrace = subTrace
		} else if cmp == 0 {
			bestTrace.append(subTrace)
		}
	}

	if maxOneMatch && matches > 1 {
		result.addWarning(node, node.Start, node.Start+1, w.lineMap, "matches multiple schemas, only one allowed")
	}
	if bestResult != nil {
		result.Merge(bestResult)
		result.PropertiesMatches += bestResult.PropertiesMatches
		result.PropertiesValueMatches += bestResult.PropertiesValueMatches
		trace.append(bestTrace)
	}
}

func (w *walker) validateNumber(node *ast.Node, schema *Schema, result *ValidationResult) {
	value := node.Num
	if schema.MultipleOf != nil && *schema.MultipleOf != 0 {
		if math.Mod(value, *schema.MultipleOf) != 0 {
			result.addNodeWarning(node, w.lineMap, "value is not divisible by %v", *schema.MultipleOf)
		}
	}
	if schema.Minimum != nil {
		if schema.ExclusiveMinimum && value <= *schema.Minimum {
			result.addNodeWarning(node, w.lineMap, "value is below the exclusive minimum of %v", *schema.Minimum)
		}
		if !schema.ExclusiveMinimum && value < *schema.Minimum {
			result.addNodeWarning(node, w.lineMap, "value is below the minimum of %v", *schema.Minimum)
		}
	}
	if schema.Maximum != nil {
		if schema.ExclusiveMaximum && value >= *schema.Maximum {
			result.addNodeWarning(node, w.lineMap, "value is above the exclusive maximum of %v", *schema.Maximum)
		}
		if !schema.ExclusiveMaximum && value > *schema.Maximum {
			result.addNodeWarning(node, w.lineMap, "value is above the maximum of %v", *schema.Maximum)
		}
	}
}

func (w *walker) validateString(node *ast.Node, schema *Schema, result *ValidationResult) {
	length := utf8.RuneCountInString(node.Str)
	if schema.MinLength != nil && length < *schema.MinLength {
		result.addNodeWarning(node, w.lineMap, "string is shorter than the minimum length of %d", *schema.MinLength)
	}
	if schema.MaxLength != nil && length > *schema.MaxLength {
		result.addNodeWarning(node, w.lineMap, "string is longer than the maximum length of %d", *schema.MaxLength)
	}
	if schema.Pattern != "" {
		re := w.compile(schema.Pattern)
		if re == nil || !re.MatchString(node.Str) {
			if schema.ErrorMessage != "" {
				result.addNodeWarning(node, w.lineMap, "%s", schema.ErrorMessage)
			} else {
				result.addNodeWarning(node, w.lineMap, "string does not match the pattern of %q", schema.Pattern)
			}
		}
	}
}

// compile returns the cached compiled pattern, nil when it does not
// compile. An uncompilable pattern can never match, so its violations still
// surface rather than being silently skipped.
func (w *walker) compile(pattern string) *regexp.Regexp {
	if re, ok := w.regexps[pattern]; ok {
		return re
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		re = nil
	}
	if w.regexps == nil {
		w.regexps = make(map[string]*regexp.Regexp)
	}
	w.regexps[pattern] = re
	return re
}

func (w *walker) validateArray(node *ast.Node, schema *Schema, result *ValidationResult, trace *MatchTrace) {
	if sub := schema.ItemsSchema(); sub != nil {
		for _, item := range node.Items {
			itemResult := NewValidationResult()
			w.validate(item, sub, itemResult, trace)
			result.MergePropertyMatch(itemResult)
		}
	}
	if list := schema.ItemsList(); list != nil {
		for i, sub := range list {
			if i >= len(node.Items) {
				break
			}
			itemResult := NewValidationResult()
			w.validate(node.Items[i], sub, itemResult, trace)
			result.MergePropertyMatch(itemResult)
		}
		if surplus := len(node.Items) - len(list); surplus > 0 {
			if allowed, ok := schema.AdditionalItems.(bool); ok && !allowed {
				result.addNodeWarning(node, w.lineMap, "array has too many items according to schema, expected %d or fewer", len(list))
			} else {
				result.PropertiesValueMatches += surplus
			}
		}
	}

	if schema.MinItems != nil && len(node.Items) < *schema.MinItems {
		result.addNodeWarning(node, w.lineMap, "array has too few items, expected %d or more", *schema.MinItems)
	}
	if schema.MaxItems != nil && len(node.Items) > *schema.MaxItems {
		result.addNodeWarning(node, w.lineMap, "array has too many items, expected %d or fewer", *schema.MaxItems)
	}
	if schema.UniqueItems {
		values := make([]any, len(node.Items))
		for i, item := range node.Items {
			values[i] = item.Value()
		}
	duplicates:
		for i := range values {
			for j := i + 1; j < len(values); j++ {
				if equalutil.PlainEqual(values[i], values[j]) {
					result.addNodeWarning(node, w.lineMap, "array has duplicate items")
					break duplicates
				}
			}
		}
	}
}

func (w *walker) validateObject(node *ast.Node, schema *Schema, result *ValidationResult, trace *MatchTrace) {
	// A property with a key but no value counts as absent: required checks
	// and value validation both need something to point at.
	seen := make(map[string]*ast.Node, len(node.Properties))
	unprocessed := make([]string, 0, len(node.Properties))
	for _, prop := range node.Properties {
		if prop.Key == nil {
			continue
		}
		name := prop.Key.Str
		unprocessed = append(unprocessed, name)
		if prop.Val != nil {
			seen[name] = prop.Val
		}
	}

	for _, name := range schema.Required {
		if _, ok := seen[name]; !ok {
			start, end := missingPropertyAnchor(node)
			result.addWarning(node, start, end, w.lineMap, "missing property %q", name)
		}
	}

	for _, name := range sortedKeys(schema.Properties) {
		unprocessed = removeAll(unprocessed, name)
		sub := schema.Properties[name]
		if value, ok := seen[name]; ok {
			propResult := NewValidationResult()
			w.validate(value, sub, propResult, trace)
			result.MergePropertyMatch(propResult)
		}
	}

	for _, pattern := range sortedKeys(schema.PatternProperties) {
		re := w.compile(pattern)
		if re == nil {
			continue
		}
		sub := schema.PatternProperties[pattern]
		remaining := unprocessed
		unprocessed = unprocessed[:0:0]
		for _, name := range remaining {
			if !re.MatchString(name) {
				unprocessed = append(unprocessed, name)
				continue
			}
			if value, ok := seen[name]; ok {
				propResult := NewValidationResult()
				w.validate(value, sub, propResult, trace)
				result.MergePropertyMatch(propResult)
			}
		}
	}

	if sub := schema.AdditionalPropertiesSchema(); sub != nil {
		for _, name := range unprocessed {
			if value, ok := seen[name]; ok {
				propResult := NewValidationResult()
				w.validate(value, sub, propResult, trace)
				result.MergePropertyMatch(propResult)
			}
		}
	} else if allowed, ok := schema.AdditionalProperties.(bool); ok && !allowed {
		for _, name := range unprocessed {
			value, ok := seen[name]
			if !ok {
				continue
			}
			start, end := value.Start, value.End
			if prop := value.Parent; prop != nil && prop.Kind == ast.KindProperty && prop.Key != nil {
				start, end = prop.Key.Start, prop.Key.End
			}
			result.addWarning(value, start, end, w.lineMap, "property %q is not allowed", name)
		}
	}

	propertyCount := len(node.Properties)
	if schema.MinProperties != nil && propertyCount < *schema.MinProperties {
		result.addNodeWarning(node, w.lineMap, "object has fewer properties than the required number of %d", *schema.MinProperties)
	}
	if schema.MaxProperties != nil && propertyCount > *schema.MaxProperties {
		result.addNodeWarning(node, w.lineMap, "object has more properties than limit of %d", *schema.MaxProperties)
	}

	for _, name := range sortedAnyKeys(schema.Dependencies) {
		if _, present := seen[name]; !present {
			continue
		}
		switch dep := schema.Dependencies[name].(type) {
		case []string:
			for _, required := range dep {
				if _, ok := seen[required]; !ok {
					start, end := missingPropertyAnchor(node)
					result.addWarning(node, start, end, w.lineMap, "object is missing property %q required by property %q", required, name)
				} else {
					result.PropertiesValueMatches++
				}
			}
		case *Schema:
			depResult := NewValidationResult()
			w.validate(node, dep, depResult, trace)
			result.MergePropertyMatch(depResult)
		}
	}
}

// missingPropertyAnchor picks the range for a violation about something
// that is not in the document: the enclosing property's key when the object
// is itself a property value, else the first byte of the object.
func missingPropertyAnchor(node *ast.Node) (int, int) {
	if parent := node.Parent; parent != nil && parent.Kind == ast.KindProperty && parent.Key != nil {
		return parent.Key.Start, parent.Key.End
	}
	return node.Start, node.Start + 1
}

func sortedKeys(m map[string]*Schema) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedAnyKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func removeAll(names []string, name string) []string {
	out := names[:0]
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}
