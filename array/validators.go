// SPDX-License-Identifier: MIT
// Package: array
//
// Purpose:
//  - Single source of truth for shape checks shared by New, Reallocate and
//    the nested conversion.
//  - Return plain sentinels; public methods wrap them with call-site context.
//
// Determinism & Performance:
//  - All checks are pure and O(rank).

package array

import "math"

// validateBounds checks rank > 0, equal bound lengths, lower <= upper and
// that every length and the element count fit in an int.
// Returns ErrInvalidBounds on any violation.
// Complexity: O(rank).
func validateBounds(lower, upper []int) error {
	if len(lower) == 0 || len(lower) != len(upper) {
		return ErrInvalidBounds
	}
	total := 1
	for d := range lower {
		if lower[d] > upper[d] {
			return ErrInvalidBounds
		}
		// upper-lower wraps negative when the span exceeds MaxInt
		span := upper[d] - lower[d]
		if span < 0 || span == math.MaxInt {
			return ErrInvalidBounds
		}
		n := span + 1
		if total > math.MaxInt/n {
			return ErrInvalidBounds
		}
		total *= n
	}

	return nil
}

// lengthsOf returns upper[d]-lower[d]+1 per dimension and their product.
// Assumes validateBounds passed.
func lengthsOf(lower, upper []int) ([]int, int) {
	lengths := make([]int, len(lower))
	total := 1
	for d := range lower {
		lengths[d] = upper[d] - lower[d] + 1
		total *= lengths[d]
	}

	return lengths, total
}

// contiguousStrides computes element strides for a dense buffer.
//   - RowMajor: last dimension varies fastest (C order).
//   - ColumnMajor: first dimension varies fastest (Fortran order).
//
// Complexity: O(rank).
func contiguousStrides(lengths []int, order Order) []int {
	rank := len(lengths)
	strides := make([]int, rank)
	if rank == 0 {
		return strides
	}
	if order == ColumnMajor {
		strides[0] = 1
		for d := 1; d < rank; d++ {
			strides[d] = strides[d-1] * lengths[d-1]
		}

		return strides
	}
	strides[rank-1] = 1
	for d := rank - 2; d >= 0; d-- {
		strides[d] = strides[d+1] * lengths[d+1]
	}

	return strides
}

// sameShape reports whether a and b have equal rank and per-dimension
// lengths (bounds may differ).
func sameShape[T any](a, b *View[T]) bool {
	if len(a.lower) != len(b.lower) {
		return false
	}
	for d := range a.lower {
		if a.upper[d]-a.lower[d] != b.upper[d]-b.lower[d] {
			return false
		}
	}

	return true
}
