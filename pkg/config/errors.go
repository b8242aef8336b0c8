package config

import "errors"

var (
	// ErrParsingConfig wraps failures reported by the env parser, such as a
	// missing required variable or a malformed duration.
	ErrParsingConfig  = errors.New("failed to parse config from environment")
	ErrNilPointer     = errors.New("config destination is nil")
	ErrLoadingEnvFile = errors.New("failed to read env file")
)
