package validator

import (
	"fmt"
	"net/mail"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/utilkit/pkg/arr"
	"github.com/dmitrymomot/utilkit/pkg/plastic"
)

var (
	alphaRegex     = regexp.MustCompile(`^[\pL\pM]+$`)
	alphaNumRegex  = regexp.MustCompile(`^[\pL\pM\pN]+$`)
	alphaDashRegex = regexp.MustCompile(`^[\pL\pM\pN_-]+$`)
)

// stringRule fails for anything but a string satisfying check.
func stringRule(check func(string) bool) RuleFunc {
	return func(in Input) Outcome {
		s, ok := in.Value.(string)
		if ok && check(s) {
			return Pass()
		}
		return Fail("")
	}
}

// scalarRule checks the string form of strings and numbers.
func scalarRule(check func(string) bool) RuleFunc {
	return func(in Input) Outcome {
		if isString(in.Value) || IsNumeric(in.Value) {
			if check(arr.String(in.Value)) {
				return Pass()
			}
		}
		return Fail("")
	}
}

func isEmail(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return false
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

func isURL(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	u, err := url.ParseRequestURI(value)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

func isUUID(value string) bool {
	// cheap shape check before parsing; uuid.Parse also accepts urn and brace forms
	if len(value) != 36 || value[8] != '-' || value[13] != '-' || value[18] != '-' || value[23] != '-' {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}

// ruleRegex joins the params back together so patterns may contain commas.
// Patterns wrapped in slashes ("/^a+$/i") are unwrapped and the trailing
// flags applied.
func ruleRegex(in Input) Outcome {
	if len(in.Params) == 0 {
		return Abort(fmt.Errorf("%w: regex rule on %q needs a pattern", ErrInvalidRuleDefinition, in.Field))
	}
	re, err := compilePattern(strings.Join(in.Params, ","))
	if err != nil {
		return Abort(fmt.Errorf("%w: regex rule on %q: %v", ErrInvalidRuleDefinition, in.Field, err))
	}
	if !isString(in.Value) && !IsNumeric(in.Value) {
		return Fail("")
	}
	if re.MatchString(arr.String(in.Value)) {
		return Pass()
	}
	return Fail("")
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if len(pattern) >= 2 && pattern[0] == '/' {
		if end := strings.LastIndex(pattern, "/"); end > 0 {
			flags := pattern[end+1:]
			pattern = pattern[1:end]
			if flags != "" {
				pattern = "(?" + strings.ReplaceAll(flags, "u", "") + ")" + pattern
				pattern = strings.Replace(pattern, "(?)", "", 1)
			}
		}
	}
	return regexp.Compile(pattern)
}

func ruleDate(in Input) Outcome {
	s, ok := in.Value.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return Fail("")
	}
	if _, err := plastic.Parse(s); err != nil {
		return Fail("")
	}
	return Pass()
}

func looseEqual(a, b any) bool {
	if arr.Accessible(a) || arr.Accessible(b) {
		return reflect.DeepEqual(a, b)
	}
	return arr.String(a) == arr.String(b)
}

func ruleSame(in Input) Outcome {
	if len(in.Params) == 0 {
		return Abort(fmt.Errorf("%w: same rule on %q needs a field", ErrInvalidRuleDefinition, in.Field))
	}
	other, _ := in.Other(in.Params[0])
	if looseEqual(in.Value, other) {
		return Pass()
	}
	return Fail("").With(PlaceholderAnotherField, in.Params[0])
}

func ruleDifferent(in Input) Outcome {
	if len(in.Params) == 0 {
		return Abort(fmt.Errorf("%w: different rule on %q needs a field", ErrInvalidRuleDefinition, in.Field))
	}
	other, _ := in.Other(in.Params[0])
	if !looseEqual(in.Value, other) {
		return Pass()
	}
	return Fail("").With(PlaceholderAnotherField, in.Params[0])
}

func ruleConfirmed(in Input) Outcome {
	other, ok := arr.Lookup(in.Data, in.Field+"_confirmation")
	if ok && looseEqual(in.Value, other) {
		return Pass()
	}
	return Fail("")
}
