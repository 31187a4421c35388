// SPDX-License-Identifier: MIT
// Package: grid
//
// Purpose:
//   - Decode and validate the index views every topology call receives.
//   - Return plain sentinels; Grid methods add method and part context.

package grid

import (
	"math"

	"github.com/acolinisi/hypre/array"
)

// indexVector decodes a rank-1 view of exactly n entries.
// Errors: ErrInvalidIndexView.
func indexVector(v *array.View[int32], n int) ([]int, error) {
	if !v.Valid() || v.Dimension() != 1 || v.Len() != n {
		return nil, ErrInvalidIndexView
	}
	vals, err := v.Values()
	if err != nil {
		return nil, ErrInvalidIndexView
	}
	out := make([]int, n)
	for i, x := range vals {
		out[i] = int(x)
	}

	return out, nil
}

// nonNegative decodes like indexVector and rejects negative entries.
func nonNegative(v *array.View[int32], n int) ([]int, error) {
	xs, err := indexVector(v, n)
	if err != nil {
		return nil, err
	}
	for _, x := range xs {
		if x < 0 {
			return nil, ErrInvalidIndexView
		}
	}

	return xs, nil
}

// box decodes two corner views and checks lower <= upper.
// Errors: ErrInvalidIndexView, ErrInvalidBox.
func box(lower, upper *array.View[int32], ndim int) (Box, error) {
	lo, err := indexVector(lower, ndim)
	if err != nil {
		return Box{}, err
	}
	hi, err := indexVector(upper, ndim)
	if err != nil {
		return Box{}, err
	}
	for d := range lo {
		if lo[d] > hi[d] {
			return Box{}, ErrInvalidBox
		}
	}

	return Box{Lower: lo, Upper: hi}, nil
}

// permutation decodes an index map and checks it permutes 0..ndim-1.
// Errors: ErrInvalidIndexView, ErrInvalidIndexMap.
func permutation(v *array.View[int32], ndim int) ([]int, error) {
	m, err := indexVector(v, ndim)
	if err != nil {
		return nil, err
	}
	seen := make([]bool, ndim)
	for _, x := range m {
		if x < 0 || x >= ndim || seen[x] {
			return nil, ErrInvalidIndexMap
		}
		seen[x] = true
	}

	return m, nil
}

// matchesThrough reports whether b and nbor have the same extent along
// every dimension d and indexMap[d]. Neighbor corners may run in either
// direction.
func matchesThrough(b, nbor Box, indexMap []int) bool {
	for d, nd := range indexMap {
		n := nbor.Upper[nd] - nbor.Lower[nd]
		if n < 0 {
			n = -n
		}
		if b.Upper[d]-b.Lower[d] != n {
			return false
		}
	}

	return true
}

func sameVars(a, b []VarType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// Index returns a rank-1 index view holding xs, the form every topology
// call takes. No arguments, or any value outside the int32 range, yield
// the null view, which topology calls reject with ErrInvalidIndexView.
func Index(xs ...int) *array.View[int32] {
	vals := make([]int32, len(xs))
	for i, x := range xs {
		if x < math.MinInt32 || x > math.MaxInt32 {
			return array.Null[int32]()
		}
		vals[i] = int32(x)
	}
	v, err := array.FromSlice(vals)
	if err != nil {
		return array.Null[int32]()
	}

	return v
}
