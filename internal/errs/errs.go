// Package errs defines the failure kinds reported by the terrain and
// profile packages.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is returned for a non-power-of-two size, a bad
	// roughness or a non-positive step count.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrOutOfBounds is returned when a coordinate lies outside a grid.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrEmptyInput is returned when sampling an empty point cloud.
	ErrEmptyInput = errors.New("empty input")
)

// Error is a structured failure. Kind is one of the sentinel errors above,
// so callers match with errors.Is.
type Error struct {
	Op     string
	Kind   error
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Op + ": " + e.Kind.Error()
	}
	return e.Op + ": " + e.Kind.Error() + ": " + e.Detail
}

func (e *Error) Unwrap() error { return e.Kind }

func newError(op string, kind error, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Invalid builds an ErrInvalidParameter failure.
func Invalid(op, format string, args ...any) error {
	return newError(op, ErrInvalidParameter, format, args...)
}

// Bounds builds an ErrOutOfBounds failure.
func Bounds(op, format string, args ...any) error {
	return newError(op, ErrOutOfBounds, format, args...)
}

// Empty builds an ErrEmptyInput failure.
func Empty(op, format string, args ...any) error {
	return newError(op, ErrEmptyInput, format, args...)
}
