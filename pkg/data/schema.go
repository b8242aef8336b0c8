package data

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/utilkit/pkg/arr"
)

// Field describes one attribute of a record.
type Field struct {
	// Name is the key in the built record.
	Name string
	Kind Kind
	// Required fields that are missing or nil produce a MissingField issue,
	// unless Default is set.
	Required bool
	// Default is used, after casting, when the attribute is missing or nil.
	Default any
	// From is the dot path read from the attributes. Defaults to Name.
	From string
}

func (f Field) source() string {
	if f.From != "" {
		return f.From
	}
	return f.Name
}

// IssueCode classifies a Build failure.
type IssueCode string

const (
	MissingField IssueCode = "missing_field"
	TypeMismatch IssueCode = "type_mismatch"
)

// Issue is one field that could not be built.
type Issue struct {
	Field    string
	Code     IssueCode
	Expected Kind
	// Got is the Go type of the offending value, empty for missing fields.
	Got string
}

func (i Issue) String() string {
	if i.Code == MissingField {
		return i.Field + ": missing"
	}
	return fmt.Sprintf("%s: expected %s, got %s", i.Field, i.Expected, i.Got)
}

// Issues is the error returned by Schema.Build.
type Issues []Issue

func (is Issues) Error() string {
	parts := make([]string, len(is))
	for i, issue := range is {
		parts[i] = issue.String()
	}
	return ErrInvalidData.Error() + ": " + strings.Join(parts, "; ")
}

func (is Issues) Is(target error) bool { return target == ErrInvalidData }

// ExtractIssues returns the issues carried by err, or nil.
func ExtractIssues(err error) Issues {
	var issues Issues
	if errors.As(err, &issues) {
		return issues
	}
	return nil
}

// Schema is an ordered list of fields.
type Schema struct {
	fields []Field
}

func NewSchema(fields ...Field) Schema {
	return Schema{fields: fields}
}

// With returns a schema extended by fields.
func (s Schema) With(fields ...Field) Schema {
	out := make([]Field, 0, len(s.fields)+len(fields))
	out = append(out, s.fields...)
	return Schema{fields: append(out, fields...)}
}

func (s Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Build casts attrs into a Record. Attributes not named by the schema are
// dropped. Every failing field is reported in the returned Issues.
func (s Schema) Build(attrs map[string]any) (Record, error) {
	values := make(map[string]any, len(s.fields))
	var issues Issues

	for _, f := range s.fields {
		raw, ok := arr.Lookup(attrs, f.source())
		if !ok || raw == nil {
			switch {
			case f.Default != nil:
				raw = f.Default
			case f.Required:
				issues = append(issues, Issue{Field: f.Name, Code: MissingField, Expected: f.Kind})
				continue
			default:
				continue
			}
		}

		v, ok := f.Kind.Cast(raw)
		if !ok {
			issues = append(issues, Issue{
				Field:    f.Name,
				Code:     TypeMismatch,
				Expected: f.Kind,
				Got:      fmt.Sprintf("%T", raw),
			})
			continue
		}
		values[f.Name] = v
	}

	if len(issues) > 0 {
		return Record{}, issues
	}
	return Record{values: values}, nil
}
