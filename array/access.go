// SPDX-License-Identifier: MIT

// Package array - element access.
//
// Two paths:
//   - Get/Set: unchecked fast path. An index outside the bounds, a tuple of
//     the wrong length or a released view is undefined behaviour (it may
//     read a neighbouring element or panic). Built with -tags arraydebug
//     the fast path validates and panics with the checked error.
//   - GetChecked/SetChecked: validate rank, bounds and lifetime and return
//     a wrapped sentinel instead.

package array

const (
	ctxGet = "GetChecked"
	ctxSet = "SetChecked"
)

// offset maps a full-rank index tuple to a position in store.data.
// No validation.
// Complexity: O(rank).
func (v *View[T]) offset(idx []int) int {
	off := v.base
	for d, i := range idx {
		off += (i - v.lower[d]) * v.stride[d]
	}

	return off
}

// checkIndex validates lifetime, tuple length and bounds.
func (v *View[T]) checkIndex(method string, idx []int) error {
	if !v.Valid() {
		return viewErrorf(method, idx, ErrLifetimeViolation)
	}
	if len(idx) != len(v.lower) {
		return viewErrorf(method, idx, ErrIndexOutOfBounds)
	}
	for d, i := range idx {
		if i < v.lower[d] || i > v.upper[d] {
			return viewErrorf(method, idx, ErrIndexOutOfBounds)
		}
	}

	return nil
}

// Get returns the element at idx without any validation.
func (v *View[T]) Get(idx ...int) T {
	if debugChecks {
		if err := v.checkIndex("Get", idx); err != nil {
			panic(err)
		}
	}

	return v.store.data[v.offset(idx)]
}

// Set stores x at idx without any validation.
func (v *View[T]) Set(x T, idx ...int) {
	if debugChecks {
		if err := v.checkIndex("Set", idx); err != nil {
			panic(err)
		}
	}
	v.store.data[v.offset(idx)] = x
}

// GetChecked returns the element at idx.
// Errors: ErrIndexOutOfBounds, ErrLifetimeViolation.
func (v *View[T]) GetChecked(idx ...int) (T, error) {
	if err := v.checkIndex(ctxGet, idx); err != nil {
		var zero T

		return zero, err
	}

	return v.store.data[v.offset(idx)], nil
}

// SetChecked stores x at idx.
// Errors: ErrIndexOutOfBounds, ErrLifetimeViolation.
func (v *View[T]) SetChecked(x T, idx ...int) error {
	if err := v.checkIndex(ctxSet, idx); err != nil {
		return err
	}
	v.store.data[v.offset(idx)] = x

	return nil
}
