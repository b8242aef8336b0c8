package validator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrymomot/utilkit/pkg/arr"
)

// Size kinds select the comparison branch of min, max, between and size.
const (
	kindNumeric = "numeric"
	kindString  = "string"
	kindArray   = "array"
)

var builtinRules = map[string]RuleFunc{
	"required":        ruleRequired,
	"required_if":     ruleRequiredIf,
	"required_unless": ruleRequiredUnless,
	"present":         rulePresent,
	"nullable":        func(Input) Outcome { return Pass() },
	"string":          typeRule(isString),
	"numeric":         typeRule(IsNumeric),
	"integer":         typeRule(isInteger),
	"array":           typeRule(isArray),
	"boolean":         typeRule(isBoolean),
	"accepted":        typeRule(isAccepted),
	"min":             ruleMin,
	"max":             ruleMax,
	"between":         ruleBetween,
	"size":            ruleSize,
	"in":              ruleIn,
	"not_in":          ruleNotIn,
	"email":           stringRule(isEmail),
	"url":             stringRule(isURL),
	"uuid":            stringRule(isUUID),
	"alpha":           stringRule(alphaRegex.MatchString),
	"alpha_num":       scalarRule(alphaNumRegex.MatchString),
	"alpha_dash":      scalarRule(alphaDashRegex.MatchString),
	"regex":           ruleRegex,
	"date":            ruleDate,
	"same":            ruleSame,
	"different":       ruleDifferent,
	"confirmed":       ruleConfirmed,
}

func typeRule(check func(any) bool) RuleFunc {
	return func(in Input) Outcome {
		if check(in.Value) {
			return Pass()
		}
		return Fail("")
	}
}

func ruleRequired(in Input) Outcome {
	if IsEmpty(in.Value) {
		return Fail("")
	}
	return Pass()
}

// otherMatches reports whether the field named by params[0] loosely equals one
// of params[1:].
func otherMatches(in Input) (bool, error) {
	if len(in.Params) < 2 {
		return false, fmt.Errorf("%w: rule on %q needs a field and at least one value", ErrInvalidRuleDefinition, in.Field)
	}
	other, _ := in.Other(in.Params[0])
	for _, want := range in.Params[1:] {
		if matchesParam(other, want) {
			return true, nil
		}
	}
	return false, nil
}

// matchesParam compares a value with a rule parameter the way loosely typed
// input compares: booleans against 1/0 forms, numbers and numeric strings by
// value, everything else by string form.
func matchesParam(v any, param string) bool {
	if b, ok := v.(bool); ok {
		switch strings.ToLower(strings.TrimSpace(param)) {
		case "1", "true":
			return b
		case "0", "", "false":
			return !b
		}
		return false
	}
	if f, ok := toFloat(v); ok {
		if p, ok := toFloat(param); ok {
			return f == p
		}
	}
	return arr.String(v) == param
}

func ruleRequiredIf(in Input) Outcome {
	match, err := otherMatches(in)
	if err != nil {
		return Abort(err)
	}
	if match && IsEmpty(in.Value) {
		return Fail("").
			With(PlaceholderAnotherField, in.Params[0]).
			With(PlaceholderAnotherValue, strings.Join(in.Params[1:], ", "))
	}
	return Pass()
}

func ruleRequiredUnless(in Input) Outcome {
	match, err := otherMatches(in)
	if err != nil {
		return Abort(err)
	}
	if !match && IsEmpty(in.Value) {
		return Fail("").
			With(PlaceholderAnotherField, in.Params[0]).
			With(PlaceholderAnotherValue, strings.Join(in.Params[1:], ", "))
	}
	return Pass()
}

func rulePresent(in Input) Outcome {
	if arr.Has(in.Data, in.Field) {
		return Pass()
	}
	return Fail("")
}

func isAccepted(v any) bool {
	switch s := v.(type) {
	case bool:
		return s
	case string:
		switch strings.ToLower(s) {
		case "yes", "on", "1", "true":
			return true
		}
		return false
	}
	f, ok := toFloat(v)
	return ok && f == 1
}

// sizeKind picks the comparison branch from the rules declared next to the
// size rule first, and only then from the runtime type of the value.
func sizeKind(in Input) string {
	switch {
	case in.HasRule("numeric"), in.HasRule("integer"):
		return kindNumeric
	case in.HasRule("string"):
		return kindString
	case in.HasRule("array"):
		return kindArray
	case IsNumeric(in.Value):
		return kindNumeric
	case isArray(in.Value):
		return kindArray
	}
	return kindString
}

// measure returns the quantity the size rules compare. ok is false when the
// numeric branch was chosen for a value that is not a number.
func measure(in Input, kind string) (float64, bool) {
	switch kind {
	case kindNumeric:
		return toFloat(in.Value)
	case kindArray:
		return float64(itemCount(in.Value)), true
	}
	return float64(charLength(arr.String(in.Value))), true
}

func numericParams(in Input, want int) ([]float64, error) {
	if len(in.Params) < want {
		return nil, fmt.Errorf("%w: rule on %q needs %d parameter(s)", ErrInvalidRuleDefinition, in.Field, want)
	}
	out := make([]float64, want)
	for i := range want {
		f, err := strconv.ParseFloat(strings.TrimSpace(in.Params[i]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: rule on %q has non-numeric parameter %q", ErrInvalidRuleDefinition, in.Field, in.Params[i])
		}
		out[i] = f
	}
	return out, nil
}

func sizeRule(name string, want int, ok func(got float64, bounds []float64) bool, placeholders ...string) RuleFunc {
	return func(in Input) Outcome {
		bounds, err := numericParams(in, want)
		if err != nil {
			return Abort(err)
		}
		kind := sizeKind(in)
		got, measurable := measure(in, kind)
		if measurable && ok(got, bounds) {
			return Pass()
		}
		out := FailKey(name + "." + kind)
		for i, p := range placeholders {
			out = out.With(p, strings.TrimSpace(in.Params[i]))
		}
		return out
	}
}

var (
	ruleMin = sizeRule("min", 1, func(got float64, b []float64) bool {
		return got >= b[0]
	}, PlaceholderMin)

	ruleMax = sizeRule("max", 1, func(got float64, b []float64) bool {
		return got <= b[0]
	}, PlaceholderMax)

	ruleBetween = sizeRule("between", 2, func(got float64, b []float64) bool {
		return got >= b[0] && got <= b[1]
	}, PlaceholderMin, PlaceholderMax)

	ruleSize = sizeRule("size", 1, func(got float64, b []float64) bool {
		return got == b[0]
	}, PlaceholderSize)
)

// inList reports whether every value (or each element of a sequence value)
// loosely equals one of the params.
func inList(v any, params []string) bool {
	if arr.IsList(v) {
		for _, item := range arr.Wrap(v) {
			if !inList(item, params) {
				return false
			}
		}
		return true
	}
	for _, p := range params {
		if matchesParam(v, p) {
			return true
		}
	}
	return false
}

func ruleIn(in Input) Outcome {
	if inList(in.Value, in.Params) {
		return Pass()
	}
	return Fail("").With(PlaceholderValues, strings.Join(in.Params, ", "))
}

func ruleNotIn(in Input) Outcome {
	if arr.IsList(in.Value) {
		for _, item := range arr.Wrap(in.Value) {
			if inList(item, in.Params) {
				return Fail("").With(PlaceholderValues, strings.Join(in.Params, ", "))
			}
		}
		return Pass()
	}
	if inList(in.Value, in.Params) {
		return Fail("").With(PlaceholderValues, strings.Join(in.Params, ", "))
	}
	return Pass()
}
