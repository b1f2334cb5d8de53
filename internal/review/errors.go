package review

import "errors"

// Validation and lookup failures surfaced to the API layer. They are always
// detected before any write; store errors are wrapped and propagated as-is
// with no retry.
var (
	ErrInvalidDifficulty = errors.New("difficulty must be between 1 and 5")
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrProblemNotFound   = errors.New("problem does not exist in catalog")
)
