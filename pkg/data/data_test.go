package data_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/utilkit/pkg/data"
	"github.com/dmitrymomot/utilkit/pkg/validator"
)

func TestSchemaBuild(t *testing.T) {
	t.Parallel()

	schema := data.NewSchema(
		data.Field{Name: "email", Kind: data.KindString, Required: true},
		data.Field{Name: "age", Kind: data.KindInt, Default: 18},
		data.Field{Name: "score", Kind: data.KindFloat},
		data.Field{Name: "admin", Kind: data.KindBool},
		data.Field{Name: "joined", Kind: data.KindTime},
		data.Field{Name: "city", Kind: data.KindString, From: "address.city"},
		data.Field{Name: "tags", Kind: data.KindSlice},
	)

	t.Run("casts values", func(t *testing.T) {
		t.Parallel()
		rec, err := schema.Build(map[string]any{
			"email":   "ann@example.com",
			"age":     "42",
			"score":   float64(7),
			"admin":   "true",
			"joined":  "2024-05-01",
			"address": map[string]any{"city": "Oslo"},
			"tags":    []string{"a", "b"},
			"extra":   "dropped",
		})
		require.NoError(t, err)

		assert.Equal(t, "ann@example.com", rec.String("email"))
		assert.Equal(t, int64(42), rec.Int("age"))
		assert.Equal(t, 7.0, rec.Float("score"))
		assert.True(t, rec.Bool("admin"))
		assert.Equal(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), rec.Time("joined"))
		assert.Equal(t, "Oslo", rec.String("city"))

		tags, ok := rec.Get("tags")
		require.True(t, ok)
		assert.Equal(t, []any{"a", "b"}, tags)
		assert.False(t, rec.Has("extra"))
	})

	t.Run("defaults and optional fields", func(t *testing.T) {
		t.Parallel()
		rec, err := schema.Build(map[string]any{"email": "a@b.co", "score": nil})
		require.NoError(t, err)
		assert.Equal(t, int64(18), rec.Int("age"))
		assert.False(t, rec.Has("score"))
		assert.Equal(t, map[string]any{"email": "a@b.co", "age": int64(18)}, rec.ToMap())
	})

	t.Run("collects every issue", func(t *testing.T) {
		t.Parallel()
		_, err := schema.Build(map[string]any{"age": "old", "admin": "maybe"})
		require.Error(t, err)
		assert.ErrorIs(t, err, data.ErrInvalidData)

		issues := data.ExtractIssues(err)
		require.Len(t, issues, 3)
		assert.Equal(t, data.Issue{Field: "email", Code: data.MissingField, Expected: data.KindString}, issues[0])
		assert.Equal(t, data.Issue{Field: "age", Code: data.TypeMismatch, Expected: data.KindInt, Got: "string"}, issues[1])
		assert.Equal(t, "admin", issues[2].Field)
		assert.Contains(t, err.Error(), "age: expected int, got string")
	})

	t.Run("with extends", func(t *testing.T) {
		t.Parallel()
		extended := schema.With(data.Field{Name: "nick", Kind: data.KindString, Required: true})
		assert.Len(t, extended.Fields(), len(schema.Fields())+1)
	})
}

func TestRecordSubsets(t *testing.T) {
	t.Parallel()

	rec, err := data.NewSchema(
		data.Field{Name: "a", Kind: data.KindInt},
		data.Field{Name: "b", Kind: data.KindInt},
	).Build(map[string]any{"a": 1, "b": 2})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"a": int64(1)}, rec.Only("a").ToMap())
	assert.Equal(t, map[string]any{"b": int64(2)}, rec.Except("a").ToMap())
}

func TestKindCast(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind data.Kind
		in   any
		want any
		ok   bool
	}{
		{data.KindString, 12, "12", true},
		{data.KindString, []any{1}, nil, false},
		{data.KindInt, 3.0, int64(3), true},
		{data.KindInt, 3.5, nil, false},
		{data.KindInt, uint8(9), int64(9), true},
		{data.KindFloat, "2.5", 2.5, true},
		{data.KindFloat, true, nil, false},
		{data.KindBool, 0, false, true},
		{data.KindBool, "1", true, true},
		{data.KindBool, 5, nil, false},
		{data.KindTime, int64(0), time.Unix(0, 0).UTC(), true},
		{data.KindMap, map[string]int{"x": 1}, map[string]any{"x": 1}, true},
		{data.KindMap, "x", nil, false},
		{data.KindSlice, "x", nil, false},
		{data.KindAny, "x", "x", true},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got, ok := tt.kind.Cast(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

type signup struct {
	Email    string        `data:"email"`
	Age      int           `data:"age"`
	Timeout  time.Duration `data:"timeout"`
	Birthday time.Time     `data:"birthday"`
	Tags     []string      `data:"tags"`
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("weakly typed", func(t *testing.T) {
		t.Parallel()
		var s signup
		err := data.Decode(map[string]any{
			"email":    "ann@example.com",
			"age":      "33",
			"timeout":  "1m30s",
			"birthday": "1990-02-03",
			"tags":     []any{"a", "b"},
		}, &s)
		require.NoError(t, err)
		assert.Equal(t, signup{
			Email:    "ann@example.com",
			Age:      33,
			Timeout:  90 * time.Second,
			Birthday: time.Date(1990, time.February, 3, 0, 0, 0, 0, time.UTC),
			Tags:     []string{"a", "b"},
		}, s)
	})

	t.Run("bad value", func(t *testing.T) {
		t.Parallel()
		var s signup
		err := data.Decode(map[string]any{"age": "old"}, &s)
		assert.ErrorIs(t, err, data.ErrDecode)
	})

	t.Run("strict", func(t *testing.T) {
		t.Parallel()
		var s signup
		err := data.Decode(map[string]any{"unknown": 1}, &s, data.Strict())
		assert.ErrorIs(t, err, data.ErrDecode)
		assert.NoError(t, data.Decode(map[string]any{"unknown": 1}, &s))
	})
}

func TestToMap(t *testing.T) {
	t.Parallel()

	type profile struct {
		Name  string `data:"name"`
		Score int    `data:"score"`
	}

	m, err := data.ToMap(&profile{Name: "ann", Score: 3})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "ann", "score": 3}, m)
}

func TestDecodeValidated(t *testing.T) {
	t.Parallel()

	rules := validator.Rules{
		"email": "required|email",
		"age":   "required|integer|min:18",
	}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		var s signup
		err := data.DecodeValidated(map[string]any{"email": "a@b.co", "age": 20, "tags": []any{"x"}}, rules, &s)
		require.NoError(t, err)
		assert.Equal(t, "a@b.co", s.Email)
		assert.Equal(t, 20, s.Age)
		assert.Nil(t, s.Tags, "attributes without rules are not decoded")
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()
		var s signup
		err := data.DecodeValidated(map[string]any{"email": "nope", "age": 12}, rules, &s)
		require.Error(t, err)
		assert.True(t, errors.Is(err, validator.ErrValidationFailed))
		assert.Equal(t, []string{"age", "email"}, validator.ExtractValidationErrors(err).Fields())
	})
}
