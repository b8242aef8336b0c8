package validator

import (
	"errors"
	"iter"
	"slices"
	"strings"
)

// ValidationError is one failed rule on one concrete field. TranslationKey
// ("validation.<rule>[.<type>]") and TranslationValues let callers render
// the message in another language.
type ValidationError struct {
	Field             string
	Rule              string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// ValidationErrors is the error bag of one validation run. Entries keep the
// order in which they were produced.
type ValidationErrors []ValidationError

// Error lists every entry as "field: message".
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, e := range ve {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(e.Field)
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is makes errors.Is(err, ErrValidationFailed) hold for any bag.
func (ve ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

// Add appends e to the bag.
func (ve *ValidationErrors) Add(e ValidationError) {
	*ve = append(*ve, e)
}

// For yields the entries of field in insertion order.
func (ve ValidationErrors) For(field string) iter.Seq[ValidationError] {
	return func(yield func(ValidationError) bool) {
		for _, e := range ve {
			if e.Field == field && !yield(e) {
				return
			}
		}
	}
}

// Has reports whether field failed any rule.
func (ve ValidationErrors) Has(field string) bool {
	return slices.ContainsFunc(ve, func(e ValidationError) bool { return e.Field == field })
}

// Get returns the messages of field, nil when it has none.
func (ve ValidationErrors) Get(field string) []string {
	var out []string
	for e := range ve.For(field) {
		out = append(out, e.Message)
	}
	return out
}

// First returns the first message of field, or "".
func (ve ValidationErrors) First(field string) string {
	for e := range ve.For(field) {
		return e.Message
	}
	return ""
}

// GetErrors returns the entries of field in insertion order.
func (ve ValidationErrors) GetErrors(field string) []ValidationError {
	return slices.Collect(ve.For(field))
}

// Fields returns the failing fields in first-failure order.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	for _, e := range ve {
		if !slices.Contains(fields, e.Field) {
			fields = append(fields, e.Field)
		}
	}
	return fields
}

// IsEmpty reports whether no rule failed.
func (ve ValidationErrors) IsEmpty() bool { return len(ve) == 0 }

// Map groups the messages by field.
func (ve ValidationErrors) Map() map[string][]string {
	return ve.group(func(e ValidationError) string { return e.Message })
}

// Rules groups the names of the failed rules by field.
func (ve ValidationErrors) Rules() map[string][]string {
	return ve.group(func(e ValidationError) string { return e.Rule })
}

func (ve ValidationErrors) group(pick func(ValidationError) string) map[string][]string {
	out := make(map[string][]string, len(ve))
	for _, e := range ve {
		out[e.Field] = append(out[e.Field], pick(e))
	}
	return out
}

// ExtractValidationErrors returns the bag wrapped in err, or nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var bag ValidationErrors
	if errors.As(err, &bag) {
		return bag
	}
	return nil
}

// IsValidationError reports whether err wraps an error bag.
func IsValidationError(err error) bool {
	var bag ValidationErrors
	return errors.As(err, &bag)
}
