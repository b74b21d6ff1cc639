package health

import "errors"

var (
	// ErrCheckFailed is returned when one or more checks fail.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout marks a check that exceeded the run timeout.
	ErrCheckTimeout = errors.New("health: check timeout")
)
