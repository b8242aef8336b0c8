// Package arr provides dot-notation access and small helpers for the loosely
// typed trees produced by decoding JSON or YAML: map[string]any nodes and []any
// sequences.
//
// Paths address nested values with dots. Sequence elements are addressed by
// their decimal index:
//
//	data := map[string]any{
//		"user": map[string]any{
//			"name": "Ann",
//			"tags": []any{"admin", "ops"},
//		},
//	}
//
//	arr.Get(data, "user.name")          // "Ann"
//	arr.Get(data, "user.tags.1")        // "ops"
//	arr.Get(data, "user.email", "n/a")  // "n/a"
//
//	arr.Set(data, "user.address.city", "Oslo")
//	arr.Dot(data) // {"user.name": "Ann", "user.tags.0": "admin", ...}
//
// Read helpers fall back to reflection for other map and slice types
// (map[string]string, []map[string]any, typed slices) so callers do not have to
// normalise their input first. Write helpers (Set, Forget, Undot) only build
// map[string]any nodes.
//
// None of the helpers are safe for concurrent mutation of the same tree.
package arr
