package data

import "errors"

var (
	ErrInvalidData = errors.New("data: invalid attributes")
	ErrDecode      = errors.New("data: decode failed")
)
