package arr

import (
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Separator joins path segments.
const Separator = "."

// Segments splits a dot path into its segments. An empty path has no segments.
func Segments(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, Separator)
}

// Accessible reports whether v can be indexed by a path segment.
func Accessible(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	case nil:
		return false
	}
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Map || k == reflect.Slice || k == reflect.Array
}

// Child returns the direct child of node addressed by key.
// Sequence children are addressed by decimal index.
func Child(node any, key string) (any, bool) {
	switch n := node.(type) {
	case map[string]any:
		v, ok := n[key]
		return v, ok
	case []any:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(n) {
			return nil, false
		}
		return n[i], true
	case nil:
		return nil, false
	}

	rv := reflect.ValueOf(node)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		v := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	}
	return nil, false
}

// Lookup resolves path against data and reports whether every segment existed.
func Lookup(data any, path string) (any, bool) {
	if path == "" {
		return data, true
	}
	node := data
	for _, seg := range Segments(path) {
		next, ok := Child(node, seg)
		if !ok {
			return nil, false
		}
		node = next
	}
	return node, true
}

// Get returns the value at path, or the first default (nil when none) if any
// segment is missing.
func Get(data any, path string, def ...any) any {
	if v, ok := Lookup(data, path); ok {
		return v
	}
	if len(def) > 0 {
		return def[0]
	}
	return nil
}

// Has reports whether every path exists in data.
func Has(data any, paths ...string) bool {
	if len(paths) == 0 {
		return false
	}
	for _, p := range paths {
		if _, ok := Lookup(data, p); !ok {
			return false
		}
	}
	return true
}

// Keys returns the keys of a mapping in sorted order, or the indices of a
// sequence in ascending order. Scalars have no keys.
func Keys(node any) []string {
	switch n := node.(type) {
	case map[string]any:
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		return keys
	case []any:
		return indexKeys(len(n))
	case nil:
		return nil
	}

	rv := reflect.ValueOf(node)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		slices.Sort(keys)
		return keys
	case reflect.Slice, reflect.Array:
		return indexKeys(rv.Len())
	}
	return nil
}

func indexKeys(n int) []string {
	keys := make([]string, n)
	for i := range n {
		keys[i] = strconv.Itoa(i)
	}
	return keys
}

// Set writes value at path, creating intermediate map[string]any nodes as
// needed. Existing sequence nodes are indexed in place; a scalar in the way is
// replaced by a new map.
func Set(data map[string]any, path string, value any) {
	if data == nil || path == "" {
		return
	}
	segs := Segments(path)
	node := data
	for i, seg := range segs[:len(segs)-1] {
		switch next := node[seg].(type) {
		case map[string]any:
			node = next
			continue
		case []any:
			// remaining path addresses an element of the sequence
			setInSlice(next, strings.Join(segs[i+1:], Separator), value)
			return
		}
		child := map[string]any{}
		node[seg] = child
		node = child
	}
	node[segs[len(segs)-1]] = value
}

func setInSlice(list []any, path string, value any) {
	segs := Segments(path)
	i, err := strconv.Atoi(segs[0])
	if err != nil || i < 0 || i >= len(list) {
		return
	}
	if len(segs) == 1 {
		list[i] = value
		return
	}
	child, ok := list[i].(map[string]any)
	if !ok {
		child = map[string]any{}
		list[i] = child
	}
	Set(child, strings.Join(segs[1:], Separator), value)
}

// Forget removes the values at the given paths. Missing paths are ignored.
// Sequence elements are never removed, only map keys.
func Forget(data map[string]any, paths ...string) {
	for _, p := range paths {
		segs := Segments(p)
		if len(segs) == 0 {
			continue
		}
		parent, ok := Lookup(data, strings.Join(segs[:len(segs)-1], Separator))
		if !ok {
			continue
		}
		if m, ok := parent.(map[string]any); ok {
			delete(m, segs[len(segs)-1])
		}
	}
}

// Dot flattens a nested tree into a single level map keyed by dot paths.
// Empty maps and sequences are kept as leaves.
func Dot(data map[string]any) map[string]any {
	out := make(map[string]any)
	dot(out, "", data)
	return out
}

func dot(out map[string]any, prefix string, node any) {
	keys := Keys(node)
	if !Accessible(node) || len(keys) == 0 {
		if prefix != "" {
			out[prefix] = node
		}
		return
	}
	for _, k := range keys {
		child, _ := Child(node, k)
		key := k
		if prefix != "" {
			key = prefix + Separator + k
		}
		dot(out, key, child)
	}
}

// Undot expands a dot-keyed map into a nested tree of map[string]any.
func Undot(flat map[string]any) map[string]any {
	out := make(map[string]any, len(flat))
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		Set(out, k, flat[k])
	}
	return out
}

// Only returns a new map holding only the given top-level keys that exist.
func Only(data map[string]any, keys ...string) map[string]any {
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := data[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Except returns a shallow copy of data without the given paths.
func Except(data map[string]any, paths ...string) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	for _, p := range paths {
		segs := Segments(p)
		if len(segs) <= 1 {
			delete(out, p)
			continue
		}
		// copy the branch before mutating so the input stays intact
		if branch, ok := out[segs[0]].(map[string]any); ok {
			cp := Except(branch, strings.Join(segs[1:], Separator))
			out[segs[0]] = cp
		}
	}
	return out
}

// IsList reports whether v is a sequence.
func IsList(v any) bool {
	if _, ok := v.([]any); ok {
		return true
	}
	if v == nil {
		return false
	}
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// IsAssoc reports whether v is a mapping.
func IsAssoc(v any) bool {
	if _, ok := v.(map[string]any); ok {
		return true
	}
	if v == nil {
		return false
	}
	return reflect.ValueOf(v).Kind() == reflect.Map
}
