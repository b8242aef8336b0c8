package collection

import (
	"slices"
	"strings"

	"github.com/goccy/go-json"
)

// Collection is an ordered, immutable list of items.
type Collection[T any] struct {
	items []T
}

// New collects the given items.
func New[T any](items ...T) Collection[T] {
	return Collection[T]{items: slices.Clone(items)}
}

// Collect wraps a copy of items.
func Collect[T any](items []T) Collection[T] {
	return Collection[T]{items: slices.Clone(items)}
}

// Times builds a collection of n items from fn(0) to fn(n-1).
func Times[T any](n int, fn func(i int) T) Collection[T] {
	if n <= 0 {
		return Collection[T]{}
	}
	items := make([]T, n)
	for i := range n {
		items[i] = fn(i)
	}
	return Collection[T]{items: items}
}

// All returns a copy of the items.
func (c Collection[T]) All() []T { return slices.Clone(c.items) }

func (c Collection[T]) Count() int       { return len(c.items) }
func (c Collection[T]) IsEmpty() bool    { return len(c.items) == 0 }
func (c Collection[T]) IsNotEmpty() bool { return len(c.items) > 0 }

// Get returns the item at index i. Negative indices count from the end.
func (c Collection[T]) Get(i int) (T, bool) {
	if i < 0 {
		i += len(c.items)
	}
	if i < 0 || i >= len(c.items) {
		var zero T
		return zero, false
	}
	return c.items[i], true
}

// First returns the first item matching pred, or the first item when pred is
// nil.
func (c Collection[T]) First(pred func(T) bool) (T, bool) {
	for _, item := range c.items {
		if pred == nil || pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Last returns the last item matching pred, or the last item when pred is nil.
func (c Collection[T]) Last(pred func(T) bool) (T, bool) {
	for i := len(c.items) - 1; i >= 0; i-- {
		if pred == nil || pred(c.items[i]) {
			return c.items[i], true
		}
	}
	var zero T
	return zero, false
}

func (c Collection[T]) Push(items ...T) Collection[T] {
	return Collection[T]{items: slices.Concat(c.items, items)}
}

func (c Collection[T]) Prepend(items ...T) Collection[T] {
	return Collection[T]{items: slices.Concat(items, c.items)}
}

// Merge appends the items of other.
func (c Collection[T]) Merge(other Collection[T]) Collection[T] {
	return c.Push(other.items...)
}

func (c Collection[T]) Filter(pred func(T) bool) Collection[T] {
	var out []T
	for _, item := range c.items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return Collection[T]{items: out}
}

func (c Collection[T]) Reject(pred func(T) bool) Collection[T] {
	return c.Filter(func(item T) bool { return !pred(item) })
}

// Map transforms every item keeping the type. Use the Map function to change
// it.
func (c Collection[T]) Map(fn func(T) T) Collection[T] {
	out := make([]T, len(c.items))
	for i, item := range c.items {
		out[i] = fn(item)
	}
	return Collection[T]{items: out}
}

// Each calls fn for every item until fn returns false.
func (c Collection[T]) Each(fn func(item T, i int) bool) {
	for i, item := range c.items {
		if !fn(item, i) {
			return
		}
	}
}

// Every reports whether all items match. It is true for an empty collection.
func (c Collection[T]) Every(pred func(T) bool) bool {
	return !slices.ContainsFunc(c.items, func(item T) bool { return !pred(item) })
}

func (c Collection[T]) Some(pred func(T) bool) bool {
	return slices.ContainsFunc(c.items, pred)
}

func (c Collection[T]) Reverse() Collection[T] {
	out := slices.Clone(c.items)
	slices.Reverse(out)
	return Collection[T]{items: out}
}

// SortBy sorts stably with a three-way comparison.
func (c Collection[T]) SortBy(cmp func(a, b T) int) Collection[T] {
	out := slices.Clone(c.items)
	slices.SortStableFunc(out, cmp)
	return Collection[T]{items: out}
}

// Take returns the first n items, or the last -n items when n is negative.
func (c Collection[T]) Take(n int) Collection[T] {
	if n < 0 {
		return c.Slice(max(len(c.items)+n, 0), -n)
	}
	return c.Slice(0, n)
}

func (c Collection[T]) Skip(n int) Collection[T] {
	return c.Slice(n, len(c.items))
}

// Slice returns up to length items starting at offset. A negative offset
// counts from the end.
func (c Collection[T]) Slice(offset, length int) Collection[T] {
	n := len(c.items)
	if offset < 0 {
		offset = max(n+offset, 0)
	}
	if offset >= n || length <= 0 {
		return Collection[T]{}
	}
	end := min(offset+length, n)
	return Collection[T]{items: slices.Clone(c.items[offset:end])}
}

// Chunk splits the items into collections of size items; the last one may be
// shorter. A size below one yields nothing.
func (c Collection[T]) Chunk(size int) []Collection[T] {
	if size < 1 {
		return nil
	}
	var out []Collection[T]
	for chunk := range slices.Chunk(c.items, size) {
		out = append(out, Collect(chunk))
	}
	return out
}

// UniqueBy keeps the first item for every key.
func (c Collection[T]) UniqueBy(key func(T) string) Collection[T] {
	seen := make(map[string]struct{}, len(c.items))
	var out []T
	for _, item := range c.items {
		k := key(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return Collection[T]{items: out}
}

// Partition splits into the items matching pred and the rest.
func (c Collection[T]) Partition(pred func(T) bool) (Collection[T], Collection[T]) {
	var in, out []T
	for _, item := range c.items {
		if pred(item) {
			in = append(in, item)
		} else {
			out = append(out, item)
		}
	}
	return Collection[T]{items: in}, Collection[T]{items: out}
}

// Implode joins the string form of every item.
func (c Collection[T]) Implode(sep string, str func(T) string) string {
	parts := make([]string, len(c.items))
	for i, item := range c.items {
		parts[i] = str(item)
	}
	return strings.Join(parts, sep)
}

// ToJSON encodes the items as a JSON array; an empty collection is "[]".
func (c Collection[T]) ToJSON() ([]byte, error) {
	if c.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.items)
}

func (c Collection[T]) MarshalJSON() ([]byte, error) {
	return c.ToJSON()
}

func (c *Collection[T]) UnmarshalJSON(b []byte) error {
	var items []T
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	c.items = items
	return nil
}
