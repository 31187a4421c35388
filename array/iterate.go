// SPDX-License-Identifier: MIT

package array

const (
	ctxApply  = "Apply"
	ctxFill   = "Fill"
	ctxValues = "Values"
)

// walk visits every index tuple of v in logical row-major order (last
// dimension fastest), independent of v.order and the strides.
// The idx slice is reused between calls; f must copy it to keep it.
// Stops when f returns false.
//
// Complexity:
//   - Time O(n*rank) worst case, O(n) amortised; Space O(rank).
func (v *View[T]) walk(f func(idx []int, off int) bool) {
	rank := len(v.lower)
	idx := append([]int(nil), v.lower...)
	off := v.base
	for {
		if !f(idx, off) {
			return
		}
		// odometer increment from the last dimension
		d := rank - 1
		for ; d >= 0; d-- {
			if idx[d] < v.upper[d] {
				idx[d]++
				off += v.stride[d]

				break
			}
			off -= (idx[d] - v.lower[d]) * v.stride[d]
			idx[d] = v.lower[d]
		}
		if d < 0 {
			return
		}
	}
}

// Do visits each element in logical row-major order and calls f(idx, x).
// MAIN DESCRIPTION:
//   - Read-only visitor; stops early when f returns false.
//   - Does nothing on a null or released view.
//
// Determinism:
//   - Fixed order: last dimension varies fastest, whatever the layout.
//
// Complexity:
//   - Time O(n), Space O(rank).
func (v *View[T]) Do(f func(idx []int, x T) bool) {
	if !v.Valid() {
		return
	}
	data := v.store.data
	v.walk(func(idx []int, off int) bool {
		return f(idx, data[off])
	})
}

// Apply replaces each element with f(idx, x) in place, in the same order
// as Do.
// Errors: ErrLifetimeViolation when the view is null or released.
func (v *View[T]) Apply(f func(idx []int, x T) T) error {
	if !v.Valid() {
		return viewErrorf(ctxApply, v.Dimension(), ErrLifetimeViolation)
	}
	data := v.store.data
	v.walk(func(idx []int, off int) bool {
		data[off] = f(idx, data[off])

		return true
	})

	return nil
}

// Fill sets every element of the view to x.
// Errors: ErrLifetimeViolation when the view is null or released.
func (v *View[T]) Fill(x T) error {
	if !v.Valid() {
		return viewErrorf(ctxFill, x, ErrLifetimeViolation)
	}
	data := v.store.data
	v.walk(func(_ []int, off int) bool {
		data[off] = x

		return true
	})

	return nil
}

// Values returns a flat copy of the elements in logical row-major order.
// Errors: ErrLifetimeViolation when the view is null or released.
func (v *View[T]) Values() ([]T, error) {
	if !v.Valid() {
		return nil, viewErrorf(ctxValues, v.Dimension(), ErrLifetimeViolation)
	}
	out := make([]T, 0, v.Len())
	data := v.store.data
	v.walk(func(_ []int, off int) bool {
		out = append(out, data[off])

		return true
	})

	return out, nil
}
