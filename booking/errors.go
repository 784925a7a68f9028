package booking

import "errors"

var (
	// ErrNotFound is returned when an event or registration does not exist.
	ErrNotFound = errors.New("not found")
	// ErrCapacityExceeded is returned when an event has no seats left.
	ErrCapacityExceeded = errors.New("no seats available")
	// ErrAlreadyRegistered is returned when the user already holds a
	// registration for the event.
	ErrAlreadyRegistered = errors.New("already registered")
	// ErrInvalidInput is returned when form input fails to parse or
	// violates a constraint, e.g. a non-positive capacity.
	ErrInvalidInput = errors.New("invalid input")
)
