// Package validator validates loosely typed input trees (decoded JSON, YAML or
// form data) against rule strings in the familiar pipe syntax.
//
//	v := validator.New(data, validator.Rules{
//	    "name":          "required|string|min:3",
//	    "age":           "nullable|numeric|between:18,99",
//	    "users.*.email": []string{"required", "email"},
//	})
//	if v.Fails() {
//	    for field, messages := range v.Errors().Map() {
//	        // ...
//	    }
//	}
//
// # Rules
//
// A rule list is a pipe separated string or a []string of tokens. A token is
// a rule name optionally followed by a colon and comma separated parameters:
// "in:draft,published". Field paths use dots for nesting and "*" for every
// element of a collection; "users.*.email" expands to "users.0.email",
// "users.1.email" and so on. A wildcard over something that is not a
// collection expands to nothing.
//
// Rules of a field run in declaration order and every violation is recorded,
// not just the first. When the list contains "nullable" and the value is
// empty (nil, "" or an empty collection) no rule of that field runs, the
// required family included.
//
// The min, max, between and size rules compare numbers when the field also
// declares numeric or integer, lengths when it declares string, item counts
// when it declares array, and only otherwise fall back to the runtime type of
// the value. "18" under "string|min:3" therefore measures two characters.
//
// # Registry
//
// Built-in rules live in a Registry. Each Validator copies the process-wide
// registry on construction, so RegisterRule affects only validators created
// afterwards and AddRule affects only its own validator:
//
//	validator.RegisterRule("phone", validator.Predicate(func(v any) bool {
//	    s, ok := v.(string)
//	    return ok && phoneRegex.MatchString(s)
//	}), "The :attribute must be a 10 digit phone number.")
//
// # Lifecycle
//
// Rules run lazily and exactly once, on the first call to Passes, Fails,
// Errors, Failed, Validate, Validated or Err. A rule list that references an
// unknown rule, or a rule given unusable parameters, aborts the run with a
// configuration error: Validate, Validated and Err return it, the boolean and
// bag accessors panic with it.
//
// # Errors
//
// The error bag is a ValidationErrors value. It implements error, matches
// ErrValidationFailed through errors.Is, and carries a translation key and
// placeholder values for every message so callers can localise output.
package validator
