// SPDX-License-Identifier: MIT
// Package array: sentinel error set.
// Every public operation returns one of these sentinels, possibly wrapped
// with call-site context; match them with errors.Is.

package array

import (
	"errors"
	"fmt"

	"github.com/acolinisi/hypre/lifetime"
)

var (
	// ErrInvalidBounds is returned when a shape is malformed at creation or
	// reallocation: rank <= 0, mismatched bound lengths, or lower > upper.
	ErrInvalidBounds = errors.New("array: invalid bounds")

	// ErrDimensionOutOfRange indicates an axis index outside [0, rank), or an
	// operation that requires a different rank.
	ErrDimensionOutOfRange = errors.New("array: dimension out of range")

	// ErrIndexOutOfBounds indicates a checked access outside the view bounds
	// or with an index tuple of the wrong length.
	ErrIndexOutOfBounds = errors.New("array: index out of bounds")

	// ErrInvalidSlice indicates slice parameters that exceed the source
	// bounds or are otherwise malformed.
	ErrInvalidSlice = errors.New("array: invalid slice")

	// ErrShapeMismatch indicates a copy between views of different shapes.
	ErrShapeMismatch = errors.New("array: shape mismatch")

	// ErrRaggedArray indicates nested input that is not rectangular, is
	// empty at some level, or holds leaves of the wrong type.
	ErrRaggedArray = errors.New("array: ragged nested array")
)

// ErrLifetimeViolation is lifetime.ErrLifetimeViolation, re-exported so
// callers of this package can match it without importing lifetime.
var ErrLifetimeViolation = lifetime.ErrLifetimeViolation

// viewErrorf wraps a sentinel with the View method and its arguments.
func viewErrorf(method string, args any, err error) error {
	return fmt.Errorf("View.%s(%v): %w", method, args, err)
}
