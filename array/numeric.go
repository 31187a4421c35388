// SPDX-License-Identifier: MIT

package array

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Number is the element constraint of the numeric helpers.
type Number interface {
	constraints.Integer | constraints.Float
}

// Sum returns the sum of every element of v. The null view sums to zero.
// Errors: ErrLifetimeViolation when v was released.
func Sum[T Number](v *View[T]) (T, error) {
	var total T
	if v.IsNull() {
		return total, nil
	}
	if !v.Valid() {
		return total, fmt.Errorf("array.Sum: %w", ErrLifetimeViolation)
	}
	v.Do(func(_ []int, x T) bool {
		total += x

		return true
	})

	return total, nil
}

// Scale multiplies every element of v by alpha in place.
// Errors: ErrLifetimeViolation when v is null or released.
func Scale[T Number](v *View[T], alpha T) error {
	return v.Apply(func(_ []int, x T) T { return x * alpha })
}

// MinMax returns the smallest and largest element of v.
// Errors: ErrLifetimeViolation when v is null or released.
func MinMax[T Number](v *View[T]) (lo, hi T, err error) {
	if !v.Valid() {
		return lo, hi, fmt.Errorf("array.MinMax: %w", ErrLifetimeViolation)
	}
	first := true
	v.Do(func(_ []int, x T) bool {
		if first || x < lo {
			lo = x
		}
		if first || x > hi {
			hi = x
		}
		first = false

		return true
	})

	return lo, hi, nil
}
