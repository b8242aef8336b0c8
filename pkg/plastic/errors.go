package plastic

import "errors"

var (
	ErrEmptyInput    = errors.New("plastic: empty time string")
	ErrInvalidFormat = errors.New("plastic: unrecognised time format")
)
