// SPDX-License-Identifier: MIT

// Package array - slicing and copying.
//
// Purpose:
//   - Slice derives a borrowed view over the same storage (no copy).
//   - SmartCopy copies only when the storage is shared.
//   - Clone always copies; Copy moves values between existing views by
//     logical position.

package array

import (
	"fmt"
	"math"
)

const (
	ctxSlice     = "Slice"
	ctxSmartCopy = "SmartCopy"
	ctxClone     = "Clone"
)

// Slice returns a view over a rectangular, strided sub-region of v that
// shares v's storage.
//
// Inputs (numElem, srcStart and srcStride have v's rank):
//   - numElem[d]: element count along d; 0 drops the dimension, fixing it
//     at srcStart[d], so the result rank is the number of non-zero counts.
//   - srcStart[d]: first source index along d.
//   - srcStride[d]: source step between consecutive result elements.
//   - newStart: lower bounds of the result (result rank); nil means zeros.
//
// Local index newStart[k]+i along result dimension k maps to source
// index srcStart[d] + i*srcStride[d] of the matching source dimension d.
//
// Errors:
//   - ErrInvalidSlice: wrong vector lengths, negative count, zero stride
//     with a count above one, a derived index outside v's bounds, or every
//     dimension dropped.
//   - ErrLifetimeViolation: v is null or released.
//
// The result is borrowed: releasing it never frees storage, and it stops
// being Valid once the owner frees the storage.
// Complexity: O(rank).
func (v *View[T]) Slice(numElem, srcStart, srcStride, newStart []int) (*View[T], error) {
	if !v.Valid() {
		return nil, viewErrorf(ctxSlice, numElem, ErrLifetimeViolation)
	}
	rank := len(v.lower)
	if len(numElem) != rank || len(srcStart) != rank || len(srcStride) != rank {
		return nil, viewErrorf(ctxSlice, numElem, ErrInvalidSlice)
	}

	base := v.base
	var lengths, strides []int
	for d := 0; d < rank; d++ {
		n, s0, st := numElem[d], srcStart[d], srcStride[d]
		if n < 0 || s0 < v.lower[d] || s0 > v.upper[d] {
			return nil, viewErrorf(ctxSlice, numElem, ErrInvalidSlice)
		}
		base += (s0 - v.lower[d]) * v.stride[d]
		if n == 0 {
			continue
		}
		if n > 1 && !fitsSlice(n, s0, st, v.lower[d], v.upper[d]) {
			return nil, viewErrorf(ctxSlice, numElem, ErrInvalidSlice)
		}
		if n == 1 {
			st = 1
		}
		lengths = append(lengths, n)
		strides = append(strides, v.stride[d]*st)
	}
	if len(lengths) == 0 {
		return nil, viewErrorf(ctxSlice, numElem, ErrInvalidSlice)
	}
	if newStart == nil {
		newStart = make([]int, len(lengths))
	}
	if len(newStart) != len(lengths) {
		return nil, viewErrorf(ctxSlice, newStart, ErrInvalidSlice)
	}

	lower := append([]int(nil), newStart...)
	upper := make([]int, len(lengths))
	for k, n := range lengths {
		if lower[k] > math.MaxInt-(n-1) {
			return nil, viewErrorf(ctxSlice, newStart, ErrInvalidSlice)
		}
		upper[k] = lower[k] + n - 1
	}

	return v.derive(lower, upper, strides, base), nil
}

// fitsSlice reports whether n > 1 elements starting at s0 with step st
// stay inside [lo, hi]. The step count is compared before multiplying so
// huge counts cannot wrap back into range.
func fitsSlice(n, s0, st, lo, hi int) bool {
	switch {
	case st > 0:
		return n-1 <= (hi-s0)/st
	case st < 0 && st != math.MinInt:
		return n-1 <= (s0-lo)/(-st)
	}

	return false
}

// SmartCopy returns v itself, with one more reference, when v is the only
// view of storage it owns; otherwise it returns a deep copy with fresh
// owning storage, the same bounds and the same order.
// Errors: ErrLifetimeViolation when v is null or released.
func (v *View[T]) SmartCopy() (*View[T], error) {
	if !v.Valid() {
		return nil, viewErrorf(ctxSmartCopy, v.Dimension(), ErrLifetimeViolation)
	}
	if v.Owner() && v.Refs() == 1 && v.StorageRefs() == 1 {
		if err := v.AddRef(); err != nil {
			return nil, err
		}

		return v, nil
	}

	return v.Clone()
}

// Clone always returns a deep copy with fresh owning storage.
// Errors: ErrLifetimeViolation when v is null or released.
// Complexity: O(n).
func (v *View[T]) Clone() (*View[T], error) {
	if !v.Valid() {
		return nil, viewErrorf(ctxClone, v.Dimension(), ErrLifetimeViolation)
	}
	out := &View[T]{}
	out.attachFresh(v.lower, v.upper, v.order, v.store.cfg)
	copyValues(v, out)

	return out, nil
}

// Copy writes every element of src into dst at the same logical position
// (k-th element along each dimension, bounds may differ).
//
// Errors:
//   - ErrShapeMismatch: ranks or per-dimension lengths differ; dst is
//     left untouched.
//   - ErrLifetimeViolation: either view is null or released.
//
// Overlapping views over the same storage are handled by buffering src.
// Complexity: O(n*rank).
func Copy[T any](src, dst *View[T]) error {
	if !src.Valid() || !dst.Valid() {
		return fmt.Errorf("array.Copy: %w", ErrLifetimeViolation)
	}
	if !sameShape(src, dst) {
		return fmt.Errorf("array.Copy(%v -> %v): %w", src.Shape(), dst.Shape(), ErrShapeMismatch)
	}
	copyValues(src, dst)

	return nil
}

// copyValues assumes both views are valid and of the same shape.
func copyValues[T any](src, dst *View[T]) {
	cfg := dst.store.cfg
	cfg.sink.IncrCounterWithLabels(MetricCopyCount, 1, cfg.labels)
	cfg.sink.IncrCounterWithLabels(MetricCopyElements, float32(dst.Len()), cfg.labels)

	if SharesStorage(src, dst) {
		vals, _ := src.Values()
		k := 0
		ddata := dst.store.data
		dst.walk(func(_ []int, off int) bool {
			ddata[off] = vals[k]
			k++

			return true
		})

		return
	}

	sdata, ddata := src.store.data, dst.store.data
	dst.walk(func(idx []int, off int) bool {
		soff := src.base
		for d, i := range idx {
			soff += (i - dst.lower[d]) * src.stride[d]
		}
		ddata[off] = sdata[soff]

		return true
	})
}
