package validator

import (
	"slices"
	"strings"

	"github.com/dmitrymomot/utilkit/pkg/arr"
)

// Wildcard is the path segment matching every element of a collection.
const Wildcard = "*"

// ConcreteField is a field path with every wildcard resolved.
type ConcreteField struct {
	Path     string
	Value    any
	Bindings []string
}

// ResolveFields expands path against data. A path without wildcards always
// yields one field, with a nil value when missing. Each wildcard fans out over
// the keys of the collection at that position; a position that is not a
// collection contributes no fields.
func ResolveFields(data map[string]any, path string) []ConcreteField {
	segs := arr.Segments(path)
	if !slices.Contains(segs, Wildcard) {
		return []ConcreteField{{Path: path, Value: arr.Get(data, path)}}
	}

	var out []ConcreteField
	walk(&out, any(data), nil, nil, segs)
	return out
}

func walk(out *[]ConcreteField, node any, prefix, bindings, rest []string) {
	if len(rest) == 0 {
		*out = append(*out, ConcreteField{
			Path:     strings.Join(prefix, arr.Separator),
			Value:    node,
			Bindings: bindings,
		})
		return
	}

	seg := rest[0]
	if seg == Wildcard {
		if !arr.Accessible(node) {
			return
		}
		for _, key := range arr.Keys(node) {
			child, _ := arr.Child(node, key)
			walk(out, child, extend(prefix, key), extend(bindings, key), rest[1:])
		}
		return
	}

	child, ok := arr.Child(node, seg)
	if !ok && slices.Contains(rest[1:], Wildcard) {
		// nothing to fan out over below a missing segment
		return
	}
	walk(out, child, extend(prefix, seg), bindings, rest[1:])
}

// extend appends without sharing the backing array between sibling branches.
func extend(s []string, v string) []string {
	out := make([]string, len(s), len(s)+1)
	copy(out, s)
	return append(out, v)
}
