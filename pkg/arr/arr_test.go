package arr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/utilkit/pkg/arr"
)

func sampleTree() map[string]any {
	return map[string]any{
		"user": map[string]any{
			"name": "Ann",
			"tags": []any{"admin", "ops"},
			"address": map[string]any{
				"city": "Oslo",
			},
		},
		"count": 3,
	}
}

func TestGet(t *testing.T) {
	t.Parallel()
	data := sampleTree()

	t.Run("nested map value", func(t *testing.T) {
		assert.Equal(t, "Ann", arr.Get(data, "user.name"))
		assert.Equal(t, "Oslo", arr.Get(data, "user.address.city"))
	})

	t.Run("sequence index", func(t *testing.T) {
		assert.Equal(t, "ops", arr.Get(data, "user.tags.1"))
	})

	t.Run("missing path returns default", func(t *testing.T) {
		assert.Nil(t, arr.Get(data, "user.email"))
		assert.Equal(t, "n/a", arr.Get(data, "user.email", "n/a"))
		assert.Nil(t, arr.Get(data, "user.tags.9"))
		assert.Nil(t, arr.Get(data, "count.value"))
	})

	t.Run("typed containers through reflection", func(t *testing.T) {
		typed := map[string]any{
			"labels": map[string]string{"env": "prod"},
			"items":  []map[string]any{{"id": 1}, {"id": 2}},
		}
		assert.Equal(t, "prod", arr.Get(typed, "labels.env"))
		assert.Equal(t, 2, arr.Get(typed, "items.1.id"))
	})

	t.Run("empty path returns the tree", func(t *testing.T) {
		v, ok := arr.Lookup(data, "")
		assert.True(t, ok)
		assert.Equal(t, data, v)
	})
}

func TestHas(t *testing.T) {
	t.Parallel()
	data := sampleTree()

	assert.True(t, arr.Has(data, "user.name", "count"))
	assert.False(t, arr.Has(data, "user.name", "user.email"))
	assert.False(t, arr.Has(data))

	withNil := map[string]any{"a": nil}
	assert.True(t, arr.Has(withNil, "a"))
}

func TestSet(t *testing.T) {
	t.Parallel()

	t.Run("creates intermediate maps", func(t *testing.T) {
		data := map[string]any{}
		arr.Set(data, "a.b.c", 1)
		assert.Equal(t, map[string]any{"a": map[string]any{"b": map[string]any{"c": 1}}}, data)
	})

	t.Run("replaces scalar in the way", func(t *testing.T) {
		data := map[string]any{"a": "x"}
		arr.Set(data, "a.b", 2)
		assert.Equal(t, 2, arr.Get(data, "a.b"))
	})

	t.Run("writes into sequence element", func(t *testing.T) {
		data := map[string]any{"users": []any{map[string]any{"name": "a"}, map[string]any{"name": "b"}}}
		arr.Set(data, "users.1.name", "z")
		assert.Equal(t, "z", arr.Get(data, "users.1.name"))
		assert.Equal(t, "a", arr.Get(data, "users.0.name"))
	})
}

func TestForget(t *testing.T) {
	t.Parallel()
	data := sampleTree()

	arr.Forget(data, "user.address.city", "count", "missing.path")
	assert.False(t, arr.Has(data, "user.address.city"))
	assert.False(t, arr.Has(data, "count"))
	assert.True(t, arr.Has(data, "user.name"))
}

func TestDotUndot(t *testing.T) {
	t.Parallel()
	data := sampleTree()

	flat := arr.Dot(data)
	assert.Equal(t, "Ann", flat["user.name"])
	assert.Equal(t, "admin", flat["user.tags.0"])
	assert.Equal(t, "Oslo", flat["user.address.city"])
	assert.Equal(t, 3, flat["count"])

	nested := arr.Undot(map[string]any{"a.b": 1, "a.c": 2, "d": 3})
	assert.Equal(t, map[string]any{"a": map[string]any{"b": 1, "c": 2}, "d": 3}, nested)
}

func TestOnlyExcept(t *testing.T) {
	t.Parallel()
	data := sampleTree()

	only := arr.Only(data, "count", "missing")
	assert.Equal(t, map[string]any{"count": 3}, only)

	except := arr.Except(data, "count", "user.address")
	assert.False(t, arr.Has(except, "count"))
	assert.False(t, arr.Has(except, "user.address"))
	assert.True(t, arr.Has(except, "user.name"))

	// input is untouched
	assert.True(t, arr.Has(data, "user.address.city"))
}

func TestKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b", "c"}, arr.Keys(map[string]any{"c": 1, "a": 2, "b": 3}))
	assert.Equal(t, []string{"0", "1"}, arr.Keys([]any{"x", "y"}))
	assert.Nil(t, arr.Keys("scalar"))
}

func TestListHelpers(t *testing.T) {
	t.Parallel()
	users := []any{
		map[string]any{"id": 1, "name": "ann", "role": "admin"},
		map[string]any{"id": 2, "name": "bob", "role": "user"},
		map[string]any{"id": 3, "name": "cid", "role": "admin"},
	}

	t.Run("pluck", func(t *testing.T) {
		assert.Equal(t, []any{"ann", "bob", "cid"}, arr.Pluck(users, "name"))
		assert.Equal(t, map[string]any{"1": "ann", "2": "bob", "3": "cid"}, arr.PluckKeyed(users, "name", "id"))
	})

	t.Run("where equals", func(t *testing.T) {
		admins := arr.WhereEquals(users, "role", "admin")
		require.Len(t, admins, 2)
		assert.Equal(t, "cid", arr.Get(admins[1], "name"))
	})

	t.Run("first and last", func(t *testing.T) {
		first, ok := arr.First(users, func(v any, _ int) bool { return arr.Get(v, "role") == "user" })
		require.True(t, ok)
		assert.Equal(t, "bob", arr.Get(first, "name"))

		last, ok := arr.Last(users, nil)
		require.True(t, ok)
		assert.Equal(t, "cid", arr.Get(last, "name"))

		_, ok = arr.First([]any{}, nil)
		assert.False(t, ok)
	})

	t.Run("flatten and collapse", func(t *testing.T) {
		nested := []any{1, []any{2, []any{3, 4}}, 5}
		assert.Equal(t, []any{1, 2, 3, 4, 5}, arr.Flatten(nested, 0))
		assert.Equal(t, []any{1, 2, []any{3, 4}, 5}, arr.Flatten(nested, 1))
		assert.Equal(t, []any{1, 2, 3}, arr.Collapse([]any{[]any{1}, []any{2, 3}, "x"}))
	})

	t.Run("wrap", func(t *testing.T) {
		assert.Equal(t, []any{}, arr.Wrap(nil))
		assert.Equal(t, []any{"a"}, arr.Wrap("a"))
		assert.Equal(t, []any{"a", "b"}, arr.Wrap([]string{"a", "b"}))
	})
}

func TestKinds(t *testing.T) {
	t.Parallel()

	assert.True(t, arr.IsList([]any{}))
	assert.True(t, arr.IsList([]string{"a"}))
	assert.False(t, arr.IsList(map[string]any{}))
	assert.True(t, arr.IsAssoc(map[string]int{}))
	assert.False(t, arr.IsAssoc(nil))
	assert.True(t, arr.Accessible([]int{1}))
	assert.False(t, arr.Accessible(42))
}

func TestString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", arr.String(nil))
	assert.Equal(t, "1", arr.String(true))
	assert.Equal(t, "", arr.String(false))
	assert.Equal(t, "42", arr.String(42))
	assert.Equal(t, "42", arr.String(float64(42)))
	assert.Equal(t, "1.5", arr.String(1.5))
	assert.Equal(t, "7", arr.String(uint8(7)))
}
