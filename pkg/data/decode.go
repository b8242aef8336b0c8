package data

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/dmitrymomot/utilkit/pkg/plastic"
	"github.com/dmitrymomot/utilkit/pkg/validator"
)

// TagName is the struct tag read by Decode and ToMap.
const TagName = "data"

// DecodeOption tweaks the mapstructure configuration.
type DecodeOption func(*mapstructure.DecoderConfig)

// Strict rejects attributes that have no matching struct field.
func Strict() DecodeOption {
	return func(c *mapstructure.DecoderConfig) { c.ErrorUnused = true }
}

// WithHook appends a decode hook after the built-in ones.
func WithHook(hook mapstructure.DecodeHookFunc) DecodeOption {
	return func(c *mapstructure.DecoderConfig) {
		c.DecodeHook = mapstructure.ComposeDecodeHookFunc(c.DecodeHook, hook)
	}
}

var timeType = reflect.TypeOf(time.Time{})

func stringToTimeHook(from, to reflect.Type, v any) (any, error) {
	if from.Kind() != reflect.String || to != timeType {
		return v, nil
	}
	p, err := plastic.Parse(reflect.ValueOf(v).String())
	if err != nil {
		return nil, err
	}
	return p.Time(), nil
}

func newDecoder(out any, opts []DecodeOption) (*mapstructure.Decoder, error) {
	cfg := &mapstructure.DecoderConfig{
		TagName:          TagName,
		WeaklyTypedInput: true,
		Result:           out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			stringToTimeHook,
		),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return mapstructure.NewDecoder(cfg)
}

// Decode maps input, usually a map[string]any, onto out. Numbers, numeric
// strings and booleans convert into each other, strings parse into
// time.Duration and time.Time.
func Decode[T any](input any, out *T, opts ...DecodeOption) error {
	dec, err := newDecoder(out, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}

// ToMap converts a struct, or a pointer to one, into a map keyed by the
// "data" tag. Nested structs become nested maps.
func ToMap(v any) (map[string]any, error) {
	out := map[string]any{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: TagName, Result: &out})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := dec.Decode(v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return out, nil
}

// DecodeValidated validates attrs against rules and decodes the validated
// subset into out. Validation failures are returned as
// validator.ValidationErrors.
func DecodeValidated[T any](attrs map[string]any, rules validator.Rules, out *T, opts ...DecodeOption) error {
	validated, err := validator.New(attrs, rules).Validate()
	if err != nil {
		return err
	}
	return Decode(validated, out, opts...)
}
