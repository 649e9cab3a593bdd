package domain

import "errors"

var (
	// ErrValidation marks invalid input or configuration.
	ErrValidation = errors.New("validation error")
	// ErrInvalidTransition is returned when a status change is requested on a
	// notification that is no longer pending.
	ErrInvalidTransition = errors.New("invalid status transition")
)
