package arr

import "reflect"

// Wrap returns v as a sequence: nil becomes an empty sequence, sequences are
// returned element-wise and anything else is wrapped in a one element sequence.
func Wrap(v any) []any {
	if v == nil {
		return []any{}
	}
	if list, ok := v.([]any); ok {
		return list
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]any, rv.Len())
		for i := range rv.Len() {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return []any{v}
}

// Pluck extracts the value at path from every item. Missing values are nil.
func Pluck(items any, path string) []any {
	list := Wrap(items)
	out := make([]any, 0, len(list))
	for _, item := range list {
		out = append(out, Get(item, path))
	}
	return out
}

// PluckKeyed extracts the value at valuePath from every item keyed by the
// string form of the value at keyPath. Later items win on key collisions.
func PluckKeyed(items any, valuePath, keyPath string) map[string]any {
	list := Wrap(items)
	out := make(map[string]any, len(list))
	for _, item := range list {
		out[String(Get(item, keyPath))] = Get(item, valuePath)
	}
	return out
}

// Flatten flattens nested sequences into a single sequence. A depth of zero or
// less flattens completely; mappings are flattened by their sorted values.
func Flatten(items any, depth int) []any {
	var out []any
	for _, item := range Wrap(items) {
		if !Accessible(item) {
			out = append(out, item)
			continue
		}
		values := Values(item)
		if depth == 1 {
			out = append(out, values...)
			continue
		}
		out = append(out, Flatten(values, depth-1)...)
	}
	if out == nil {
		return []any{}
	}
	return out
}

// Collapse merges a sequence of sequences into one sequence. Non-sequence
// items are dropped.
func Collapse(items any) []any {
	out := []any{}
	for _, item := range Wrap(items) {
		if IsList(item) {
			out = append(out, Wrap(item)...)
		}
	}
	return out
}

// Values returns the children of a mapping (in sorted key order) or sequence.
func Values(node any) []any {
	keys := Keys(node)
	out := make([]any, 0, len(keys))
	for _, k := range keys {
		v, _ := Child(node, k)
		out = append(out, v)
	}
	return out
}

// First returns the first item matching pred, or the first item when pred is
// nil.
func First(items any, pred func(v any, i int) bool) (any, bool) {
	for i, item := range Wrap(items) {
		if pred == nil || pred(item, i) {
			return item, true
		}
	}
	return nil, false
}

// Last returns the last item matching pred, or the last item when pred is nil.
func Last(items any, pred func(v any, i int) bool) (any, bool) {
	list := Wrap(items)
	for i := len(list) - 1; i >= 0; i-- {
		if pred == nil || pred(list[i], i) {
			return list[i], true
		}
	}
	return nil, false
}

// Where keeps the items matching pred.
func Where(items any, pred func(v any, i int) bool) []any {
	out := []any{}
	for i, item := range Wrap(items) {
		if pred(item, i) {
			out = append(out, item)
		}
	}
	return out
}

// WhereEquals keeps the items whose value at path has the same string form as
// value.
func WhereEquals(items any, path string, value any) []any {
	want := String(value)
	return Where(items, func(v any, _ int) bool {
		got, ok := Lookup(v, path)
		return ok && String(got) == want
	})
}
