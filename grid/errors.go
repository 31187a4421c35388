// SPDX-License-Identifier: MIT
// Package grid: sentinel error set.
// Match with errors.Is; call sites wrap them with the method and part.

package grid

import (
	"errors"
	"fmt"

	"github.com/acolinisi/hypre/lifetime"
)

var (
	// ErrAlreadyAssembled indicates a topology mutation (or a second
	// Assemble) after the grid was assembled.
	ErrAlreadyAssembled = errors.New("grid: already assembled")

	// ErrDestroyed indicates a call on a grid whose last reference was
	// released.
	ErrDestroyed = errors.New("grid: destroyed")

	// ErrNilCommunicator indicates a nil communicator.
	ErrNilCommunicator = errors.New("grid: communicator is nil")

	// ErrInvalidDimensions indicates ndim outside [1, MaxDim] or nparts < 1.
	ErrInvalidDimensions = errors.New("grid: invalid number of dimensions or parts")

	// ErrTopologyStarted indicates SetNumDimParts after topology calls.
	ErrTopologyStarted = errors.New("grid: topology already started")

	// ErrPartOutOfRange indicates a part number outside [0, nparts).
	ErrPartOutOfRange = errors.New("grid: part out of range")

	// ErrInvalidIndexView indicates an index argument that is nil, released,
	// not rank 1, of the wrong length, or holds negative counts.
	ErrInvalidIndexView = errors.New("grid: invalid index view")

	// ErrInvalidBox indicates a box (or unstructured range) whose lower
	// corner exceeds its upper corner.
	ErrInvalidBox = errors.New("grid: invalid box")

	// ErrBoxMismatch indicates a neighbor box whose extents do not match the
	// local box through the index map.
	ErrBoxMismatch = errors.New("grid: neighbor box extents mismatch")

	// ErrInvalidIndexMap indicates an index map that is not a permutation
	// of 0..ndim-1.
	ErrInvalidIndexMap = errors.New("grid: index map is not a permutation")

	// ErrVariableOutOfRange indicates a variable number outside [0, nvars)
	// or an nvars that disagrees with an earlier SetVariable.
	ErrVariableOutOfRange = errors.New("grid: variable out of range")

	// ErrInvalidVarType indicates an unknown variable type.
	ErrInvalidVarType = errors.New("grid: invalid variable type")

	// ErrUndefinedVariable indicates that Assemble found a declared variable
	// slot that was never set.
	ErrUndefinedVariable = errors.New("grid: variable declared but not set")

	// ErrVariableMismatch indicates that parts related through neighbor
	// boxes declare different (variable, type) lists.
	ErrVariableMismatch = errors.New("grid: related parts declare different variables")

	// ErrRemoteUnsupported is returned by NoRemote.
	ErrRemoteUnsupported = errors.New("grid: remote objects are not supported")
)

// ErrLifetimeViolation is lifetime.ErrLifetimeViolation (Destroy without a
// matching reference).
var ErrLifetimeViolation = lifetime.ErrLifetimeViolation

// gridErrorf wraps a sentinel with the Grid method and part.
func gridErrorf(method string, part int, err error) error {
	return fmt.Errorf("Grid.%s(part=%d): %w", method, part, err)
}
