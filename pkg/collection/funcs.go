package collection

import (
	"cmp"
	"slices"

	"github.com/dmitrymomot/utilkit/pkg/arr"
)

// Number is satisfied by the built-in numeric types.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Map transforms every item into a new type.
func Map[T, R any](c Collection[T], fn func(T) R) Collection[R] {
	out := make([]R, len(c.items))
	for i, item := range c.items {
		out[i] = fn(item)
	}
	return Collection[R]{items: out}
}

// FlatMap maps every item to a slice and concatenates the results.
func FlatMap[T, R any](c Collection[T], fn func(T) []R) Collection[R] {
	var out []R
	for _, item := range c.items {
		out = append(out, fn(item)...)
	}
	return Collection[R]{items: out}
}

func Reduce[T, R any](c Collection[T], initial R, fn func(acc R, item T) R) R {
	acc := initial
	for _, item := range c.items {
		acc = fn(acc, item)
	}
	return acc
}

// Pluck reads a dot path from every item. Missing paths produce nil.
func Pluck[T any](c Collection[T], path string) Collection[any] {
	return Map(c, func(item T) any { return arr.Get(item, path) })
}

// GroupBy buckets items by key, preserving order within each bucket.
func GroupBy[T any, K comparable](c Collection[T], key func(T) K) map[K]Collection[T] {
	groups := make(map[K][]T)
	for _, item := range c.items {
		k := key(item)
		groups[k] = append(groups[k], item)
	}
	out := make(map[K]Collection[T], len(groups))
	for k, items := range groups {
		out[k] = Collection[T]{items: items}
	}
	return out
}

// KeyBy indexes items by key; later items win.
func KeyBy[T any, K comparable](c Collection[T], key func(T) K) map[K]T {
	out := make(map[K]T, len(c.items))
	for _, item := range c.items {
		out[key(item)] = item
	}
	return out
}

// Unique keeps the first occurrence of every value.
func Unique[T comparable](c Collection[T]) Collection[T] {
	seen := make(map[T]struct{}, len(c.items))
	var out []T
	for _, item := range c.items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return Collection[T]{items: out}
}

func Contains[T comparable](c Collection[T], value T) bool {
	return slices.Contains(c.items, value)
}

func Sum[T Number](c Collection[T]) T {
	var total T
	for _, item := range c.items {
		total += item
	}
	return total
}

// Avg returns the arithmetic mean, or 0 for an empty collection.
func Avg[T Number](c Collection[T]) float64 {
	if len(c.items) == 0 {
		return 0
	}
	var total float64
	for _, item := range c.items {
		total += float64(item)
	}
	return total / float64(len(c.items))
}

func Min[T cmp.Ordered](c Collection[T]) (T, bool) {
	if len(c.items) == 0 {
		var zero T
		return zero, false
	}
	return slices.Min(c.items), true
}

func Max[T cmp.Ordered](c Collection[T]) (T, bool) {
	if len(c.items) == 0 {
		var zero T
		return zero, false
	}
	return slices.Max(c.items), true
}

// Sort returns the items in ascending order.
func Sort[T cmp.Ordered](c Collection[T]) Collection[T] {
	out := slices.Clone(c.items)
	slices.Sort(out)
	return Collection[T]{items: out}
}
