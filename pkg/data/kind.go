package data

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/utilkit/pkg/arr"
	"github.com/dmitrymomot/utilkit/pkg/plastic"
)

// Kind is the type a field value is cast to.
type Kind uint8

const (
	KindAny Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindTime
	KindMap
	KindSlice
)

var kindNames = [...]string{"any", "string", "int", "float", "bool", "time", "map", "slice"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Cast converts v to the Go type of k: string, int64, float64, bool,
// time.Time, map[string]any or []any. KindAny returns v unchanged.
func (k Kind) Cast(v any) (any, bool) {
	switch k {
	case KindAny:
		return v, true
	case KindString:
		return castString(v)
	case KindInt:
		return castInt(v)
	case KindFloat:
		return castFloat(v)
	case KindBool:
		return castBool(v)
	case KindTime:
		return castTime(v)
	case KindMap:
		return castMap(v)
	case KindSlice:
		return castSlice(v)
	}
	return nil, false
}

func castString(v any) (any, bool) {
	if v == nil || arr.Accessible(v) {
		return nil, false
	}
	return arr.String(v), true
}

func castFloat(v any) (any, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case bool, nil:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return nil, false
}

func castInt(v any) (any, bool) {
	switch n := v.(type) {
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		return int64(u), u <= math.MaxInt64
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
			return nil, false
		}
		return int64(f), true
	}
	return nil, false
}

func castBool(v any) (any, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return parsed, err == nil
	}
	if f, ok := castFloat(v); ok {
		switch f.(float64) {
		case 0:
			return false, true
		case 1:
			return true, true
		}
	}
	return nil, false
}

func castTime(v any) (any, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case plastic.Plastic:
		return t.Time(), true
	case string:
		p, err := plastic.Parse(t)
		if err != nil {
			return nil, false
		}
		return p.Time(), true
	}
	if i, ok := castInt(v); ok {
		return time.Unix(i.(int64), 0).UTC(), true
	}
	return nil, false
}

func castMap(v any) (any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	if !arr.IsAssoc(v) {
		return nil, false
	}
	out := make(map[string]any)
	for _, key := range arr.Keys(v) {
		out[key], _ = arr.Child(v, key)
	}
	return out, true
}

func castSlice(v any) (any, bool) {
	if !arr.IsList(v) {
		return nil, false
	}
	return arr.Wrap(v), true
}
