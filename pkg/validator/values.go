package validator

import (
	"encoding/json"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	numericStringRegex = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	integerStringRegex = regexp.MustCompile(`^[+-]?\d+$`)
)

// IsEmpty reports whether v counts as missing input: nil, the empty string, or
// an empty sequence or mapping. Zero, false and whitespace are not empty.
func IsEmpty(v any) bool {
	switch s := v.(type) {
	case nil:
		return true
	case string:
		return s == ""
	case []any:
		return len(s) == 0
	case map[string]any:
		return len(s) == 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// IsNumeric reports whether v is a number or a string holding one.
// Leading and trailing whitespace is tolerated in strings; booleans are not
// numbers.
func IsNumeric(v any) bool {
	_, ok := toFloat(v)
	return ok
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case nil, bool:
		return 0, false
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(n)
		if !numericStringRegex.MatchString(s) {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f, !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	return 0, false
}

func isInteger(v any) bool {
	switch n := v.(type) {
	case string:
		return integerStringRegex.MatchString(strings.TrimSpace(n))
	case json.Number:
		return integerStringRegex.MatchString(n.String())
	case float64:
		// decoded JSON numbers arrive as float64
		return n == math.Trunc(n) && !math.IsInf(n, 0)
	case float32:
		return float64(n) == math.Trunc(float64(n))
	case bool, nil:
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func isArray(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}

func isBoolean(v any) bool {
	switch b := v.(type) {
	case bool:
		return true
	case string:
		return b == "0" || b == "1"
	case float64:
		return b == 0 || b == 1
	case float32:
		return b == 0 || b == 1
	}
	if isInteger(v) {
		f, _ := toFloat(v)
		return f == 0 || f == 1
	}
	return false
}

// charLength counts user-perceived characters of the NFC form of s so that
// composed and decomposed spellings measure the same.
func charLength(s string) int {
	return utf8.RuneCountInString(norm.NFC.String(s))
}

func itemCount(v any) int {
	if v == nil {
		return 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len()
	}
	return 0
}
