package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/utilkit/pkg/validator"
)

func TestParseRules(t *testing.T) {
	t.Parallel()

	t.Run("pipe string", func(t *testing.T) {
		calls, err := validator.ParseRules("required| string |between:3,5|")
		require.NoError(t, err)
		assert.Equal(t, []validator.RuleCall{
			{Name: "required"},
			{Name: "string"},
			{Name: "between", Params: []string{"3", "5"}},
		}, calls)
		assert.Equal(t, "between:3,5", calls[2].String())
	})

	t.Run("token list keeps pipes", func(t *testing.T) {
		calls, err := validator.ParseRules([]string{"required", "regex:^a|b$"})
		require.NoError(t, err)
		require.Len(t, calls, 2)
		assert.Equal(t, []string{"^a|b$"}, calls[1].Params)
	})

	t.Run("decoded yaml list", func(t *testing.T) {
		calls, err := validator.ParseRules([]any{"required", "min:2"})
		require.NoError(t, err)
		assert.Len(t, calls, 2)
	})

	t.Run("nil", func(t *testing.T) {
		calls, err := validator.ParseRules(nil)
		require.NoError(t, err)
		assert.Empty(t, calls)
	})

	t.Run("wrong types", func(t *testing.T) {
		_, err := validator.ParseRules(3)
		assert.ErrorIs(t, err, validator.ErrInvalidRuleDefinition)
		_, err = validator.ParseRules([]any{"required", 3})
		assert.ErrorIs(t, err, validator.ErrInvalidRuleDefinition)
	})
}

func TestLoadRules(t *testing.T) {
	t.Parallel()

	t.Run("mapping", func(t *testing.T) {
		rules, err := validator.LoadRules(strings.NewReader(`
name: required|string|min:3
users.*.email:
  - required
  - email
`))
		require.NoError(t, err)
		assert.Equal(t, "required|string|min:3", rules["name"])
		assert.Equal(t, []any{"required", "email"}, rules["users.*.email"])

		v := validator.New(map[string]any{
			"name":  "Ann",
			"users": []any{map[string]any{"email": "bad"}},
		}, rules)
		assert.Equal(t, []string{"users.0.email"}, v.Errors().Fields())
	})

	t.Run("empty document", func(t *testing.T) {
		rules, err := validator.LoadRules(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, rules)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := validator.LoadRules(strings.NewReader("name: [unclosed"))
		assert.ErrorIs(t, err, validator.ErrInvalidRuleDefinition)
	})

	t.Run("invalid rule list", func(t *testing.T) {
		_, err := validator.LoadRules(strings.NewReader("name: {min: 3}"))
		assert.ErrorIs(t, err, validator.ErrInvalidRuleDefinition)
	})
}

func TestResolveFields(t *testing.T) {
	t.Parallel()

	data := map[string]any{
		"name": "Ann",
		"users": []any{
			map[string]any{"name": "a", "roles": []any{"x", "y"}},
			map[string]any{"name": "b"},
		},
		"meta": map[string]any{"b": 2, "a": 1},
	}

	paths := func(fields []validator.ConcreteField) []string {
		out := make([]string, 0, len(fields))
		for _, f := range fields {
			out = append(out, f.Path)
		}
		return out
	}

	t.Run("plain path", func(t *testing.T) {
		got := validator.ResolveFields(data, "name")
		require.Len(t, got, 1)
		assert.Equal(t, "Ann", got[0].Value)
	})

	t.Run("missing plain path still yields a field", func(t *testing.T) {
		got := validator.ResolveFields(data, "nope.deeper")
		require.Len(t, got, 1)
		assert.Nil(t, got[0].Value)
	})

	t.Run("list wildcard", func(t *testing.T) {
		got := validator.ResolveFields(data, "users.*.name")
		assert.Equal(t, []string{"users.0.name", "users.1.name"}, paths(got))
		assert.Equal(t, []string{"1"}, got[1].Bindings)
	})

	t.Run("map wildcard sorted", func(t *testing.T) {
		got := validator.ResolveFields(data, "meta.*")
		assert.Equal(t, []string{"meta.a", "meta.b"}, paths(got))
	})

	t.Run("chained wildcards", func(t *testing.T) {
		got := validator.ResolveFields(data, "users.*.roles.*")
		assert.Equal(t, []string{"users.0.roles.0", "users.0.roles.1"}, paths(got))
		assert.Equal(t, []string{"0", "1"}, got[1].Bindings)
	})

	t.Run("wildcard over scalar", func(t *testing.T) {
		assert.Empty(t, validator.ResolveFields(data, "name.*"))
	})

	t.Run("missing base", func(t *testing.T) {
		assert.Empty(t, validator.ResolveFields(data, "missing.*.x"))
	})
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := validator.NewRegistry()
	assert.True(t, r.Has("required"))
	assert.Contains(t, r.Names(), "between")
	assert.Equal(t, "The :attribute must be a number.", r.Messages()["numeric"])

	clone := r.Clone()
	clone.Register("only_in_clone", validator.Predicate(func(any) bool { return true }), "nope")
	assert.True(t, clone.Has("only_in_clone"))
	assert.False(t, r.Has("only_in_clone"))
	_, ok := r.Messages()["only_in_clone"]
	assert.False(t, ok)

	fn, ok := clone.Lookup("only_in_clone")
	require.True(t, ok)
	assert.True(t, fn(validator.Input{}).Passed())

	msgs := validator.DefaultMessages()
	msgs["required"] = "changed"
	assert.Equal(t, "The :attribute field is required.", validator.DefaultMessages()["required"])
}
