package validator

import "errors"

var (
	// ErrValidationFailed is matched by ValidationErrors via errors.Is.
	ErrValidationFailed = errors.New("validation failed")

	// ErrUnknownRule is returned when a rule list references a rule name that
	// is not registered. The run is aborted.
	ErrUnknownRule = errors.New("unknown validation rule")

	// ErrInvalidRuleDefinition is returned for rule lists that cannot be
	// parsed or rules given unusable parameters. The run is aborted.
	ErrInvalidRuleDefinition = errors.New("invalid rule definition")

	// ErrNotValidated is returned by Validated when the run did not pass.
	ErrNotValidated = errors.New("data has not been validated successfully")
)
