package validator

import (
	"cmp"
	"maps"
	"slices"
	"strings"
)

// Placeholders understood by the default templates. Rules may add their own
// through Outcome.With.
const (
	PlaceholderAttribute    = "attribute"
	PlaceholderMin          = "min"
	PlaceholderMax          = "max"
	PlaceholderSize         = "size"
	PlaceholderValues       = "values"
	PlaceholderAnotherField = "anotherField"
	PlaceholderAnotherValue = "anotherValue"
	PlaceholderFormat       = "format"
)

const fallbackMessage = "The :attribute field is invalid."

var defaultMessages = map[string]string{
	"required":        "The :attribute field is required.",
	"required_if":     "The :attribute field is required when :anotherField is :anotherValue.",
	"required_unless": "The :attribute field is required unless :anotherField is :anotherValue.",
	"present":         "The :attribute field must be present.",
	"string":          "The :attribute must be a string.",
	"numeric":         "The :attribute must be a number.",
	"integer":         "The :attribute must be an integer.",
	"array":           "The :attribute must be an array.",
	"boolean":         "The :attribute field must be true or false.",
	"accepted":        "The :attribute must be accepted.",

	"min.numeric":     "The :attribute must be at least :min.",
	"min.string":      "The :attribute must be at least :min characters.",
	"min.array":       "The :attribute must have at least :min items.",
	"max.numeric":     "The :attribute may not be greater than :max.",
	"max.string":      "The :attribute may not be greater than :max characters.",
	"max.array":       "The :attribute may not have more than :max items.",
	"between.numeric": "The :attribute must be between :min and :max.",
	"between.string":  "The :attribute must be between :min and :max characters.",
	"between.array":   "The :attribute must have between :min and :max items.",
	"size.numeric":    "The :attribute must be :size.",
	"size.string":     "The :attribute must be :size characters.",
	"size.array":      "The :attribute must contain :size items.",

	"in":         "The selected :attribute is invalid. Allowed values: :values.",
	"not_in":     "The selected :attribute is invalid.",
	"email":      "The :attribute must be a valid email address.",
	"url":        "The :attribute must be a valid URL.",
	"uuid":       "The :attribute must be a valid UUID.",
	"alpha":      "The :attribute may only contain letters.",
	"alpha_num":  "The :attribute may only contain letters and numbers.",
	"alpha_dash": "The :attribute may only contain letters, numbers, dashes and underscores.",
	"regex":      "The :attribute format is invalid.",
	"date":       "The :attribute is not a valid date.",
	"same":       "The :attribute and :anotherField must match.",
	"different":  "The :attribute and :anotherField must be different.",
	"confirmed":  "The :attribute confirmation does not match.",
}

// DefaultMessages returns a copy of the built-in templates.
func DefaultMessages() map[string]string {
	return maps.Clone(defaultMessages)
}

// templates resolves message keys for one validator: caller overrides win over
// registry defaults, and a typed key ("min.numeric") falls back to its rule
// name ("min") at each level.
type templates struct {
	overrides map[string]string
	defaults  map[string]string
}

func (t templates) lookup(key string) string {
	base, _, typed := strings.Cut(key, ".")
	for _, set := range []map[string]string{t.overrides, t.defaults} {
		if msg, ok := set[key]; ok {
			return msg
		}
		if typed {
			if msg, ok := set[base]; ok {
				return msg
			}
		}
	}
	return fallbackMessage
}

// format substitutes ":name" placeholders. Longer names are replaced first so
// a placeholder never clobbers another that shares its prefix.
func format(template string, values map[string]string) string {
	names := slices.Collect(maps.Keys(values))
	slices.SortFunc(names, func(a, b string) int {
		return cmp.Or(cmp.Compare(len(b), len(a)), cmp.Compare(a, b))
	})

	pairs := make([]string, 0, len(names)*2)
	for _, name := range names {
		pairs = append(pairs, ":"+name, values[name])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
