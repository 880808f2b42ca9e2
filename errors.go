package hll

import "errors"

var (
	// ErrInvalidPrecision is returned when a precision outside [MinPrecision,
	// MaxPrecision] is requested.
	ErrInvalidPrecision = errors.New("precision must be between 4 and 16")

	// ErrRandomnessUnavailable is returned when the randomness source used to
	// draw hash seeds cannot be read.
	ErrRandomnessUnavailable = errors.New("randomness source unavailable")
)
