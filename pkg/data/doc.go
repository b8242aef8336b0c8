// Package data turns loosely typed attribute maps into typed values.
//
// A Schema lists the fields a record expects and the kind each one is cast
// to. Build collects every problem instead of stopping at the first one:
//
//	schema := data.NewSchema(
//		data.Field{Name: "email", Kind: data.KindString, Required: true},
//		data.Field{Name: "age", Kind: data.KindInt, Default: 18},
//		data.Field{Name: "city", Kind: data.KindString, From: "address.city"},
//	)
//	rec, err := schema.Build(attrs)
//	if errors.Is(err, data.ErrInvalidData) {
//		for _, issue := range data.ExtractIssues(err) { ... }
//	}
//
// For struct targets, Decode maps attributes onto a struct with
// github.com/mitchellh/mapstructure using the "data" struct tag, weak typing
// and hooks for time.Duration and time.Time strings. DecodeValidated runs a
// validator rule set before decoding.
package data
