// SPDX-License-Identifier: MIT

// Package array - conversion between nested Go slices and views.
//
// Purpose:
//   - FromNested/ToNested handle any depth through reflection.
//   - FromSlice/ToSlice and FromSlice2/ToSlice2 cover rank 1 and 2
//     without reflection.
//
// Contract:
//   - nil input produces the null view; the null view converts back to nil.
//   - Every level must be non-empty and rectangular (ErrRaggedArray).
//   - Converted views have zero lower bounds; values are copied in
//     traversal order (last dimension fastest).

package array

import (
	"fmt"
	"reflect"
)

// FromNested copies a rectangular nested structure into a new owning view.
// Accepted inputs are slices or arrays nested to the view rank whose leaves
// hold T ([]T, [][]T, [2][3]T, []any holding []T, ...). A slice or array
// whose type is exactly T is treated as a leaf.
//
// Errors:
//   - ErrRaggedArray: empty level, sibling length mismatch, nil or
//     wrongly typed leaf, or no nesting at all.
//
// Complexity: O(n*rank) reflection steps.
func FromNested[T any](nested any, order Order, opts ...Option) (*View[T], error) {
	rv := reflect.ValueOf(nested)
	if isNilValue(rv) {
		return Null[T](), nil
	}
	leaf := reflect.TypeOf((*T)(nil)).Elem()

	shape, err := nestedShape(rv, leaf)
	if err != nil {
		return nil, err
	}
	upper := make([]int, len(shape))
	for d, n := range shape {
		upper[d] = n - 1
	}
	v, err := New[T](make([]int, len(shape)), upper, order, opts...)
	if err != nil {
		return nil, err
	}

	idx := make([]int, len(shape))
	if err = fillNested(v, rv, shape, 0, idx); err != nil {
		_ = v.Release()

		return nil, err
	}

	return v, nil
}

// nestedShape follows the first element of every level down to a leaf.
func nestedShape(rv reflect.Value, leaf reflect.Type) ([]int, error) {
	var shape []int
	for {
		rv = unwrapInterface(rv)
		if !rv.IsValid() {
			return nil, fmt.Errorf("array.FromNested: nil element at depth %d: %w", len(shape), ErrRaggedArray)
		}
		if isContainer(rv) && rv.Type() != leaf {
			if rv.Len() == 0 {
				return nil, fmt.Errorf("array.FromNested: empty level at depth %d: %w", len(shape), ErrRaggedArray)
			}
			shape = append(shape, rv.Len())
			rv = rv.Index(0)

			continue
		}
		if len(shape) == 0 {
			return nil, fmt.Errorf("array.FromNested: %s is not a nested array: %w", rv.Type(), ErrRaggedArray)
		}

		return shape, nil
	}
}

// fillNested copies rv into v, verifying every level against shape.
func fillNested[T any](v *View[T], rv reflect.Value, shape []int, depth int, idx []int) error {
	rv = unwrapInterface(rv)
	if depth == len(shape) {
		if !rv.IsValid() || !rv.CanInterface() {
			return fmt.Errorf("array.FromNested: missing leaf at %v: %w", idx, ErrRaggedArray)
		}
		x, ok := rv.Interface().(T)
		if !ok {
			return fmt.Errorf("array.FromNested: leaf %s at %v: %w", rv.Type(), idx, ErrRaggedArray)
		}
		v.Set(x, idx...)

		return nil
	}
	if !rv.IsValid() || !isContainer(rv) || rv.Len() != shape[depth] {
		return fmt.Errorf("array.FromNested: level %d at %v has the wrong length: %w", depth, idx[:depth], ErrRaggedArray)
	}
	for i := 0; i < shape[depth]; i++ {
		idx[depth] = i
		if err := fillNested(v, rv.Index(i), shape, depth+1, idx); err != nil {
			return err
		}
	}

	return nil
}

// ToNested materialises v as nested typed slices ([]T for rank 1, [][]T
// for rank 2, and so on) indexed from zero. The null view yields nil.
// Errors: ErrLifetimeViolation when v was released.
func ToNested[T any](v *View[T]) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.Valid() {
		return nil, fmt.Errorf("array.ToNested: %w", ErrLifetimeViolation)
	}
	leaf := reflect.TypeOf((*T)(nil)).Elem()
	idx := append([]int(nil), v.lower...)

	return buildNested(v, leaf, 0, idx).Interface(), nil
}

// buildNested returns the nested slice for dimensions depth.. of v.
func buildNested[T any](v *View[T], leaf reflect.Type, depth int, idx []int) reflect.Value {
	rank := len(v.lower)
	typ := leaf
	for d := depth; d < rank; d++ {
		typ = reflect.SliceOf(typ)
	}
	n := v.upper[depth] - v.lower[depth] + 1
	out := reflect.MakeSlice(typ, n, n)
	for i := 0; i < n; i++ {
		idx[depth] = v.lower[depth] + i
		if depth == rank-1 {
			x := v.Get(idx...)
			out.Index(i).Set(reflect.ValueOf(&x).Elem())

			continue
		}
		out.Index(i).Set(buildNested(v, leaf, depth+1, idx))
	}
	idx[depth] = v.lower[depth]

	return out
}

// FromSlice copies s into a new owning rank-1 view with lower bound 0.
// nil yields the null view; an empty non-nil slice is ErrRaggedArray.
func FromSlice[T any](s []T, opts ...Option) (*View[T], error) {
	if s == nil {
		return Null[T](), nil
	}
	if len(s) == 0 {
		return nil, fmt.Errorf("array.FromSlice: empty slice: %w", ErrRaggedArray)
	}
	v, err := New[T]([]int{0}, []int{len(s) - 1}, RowMajor, opts...)
	if err != nil {
		return nil, err
	}
	copy(v.store.data, s)

	return v, nil
}

// ToSlice returns the elements of a rank-1 view. The null view yields nil.
// Errors: ErrDimensionOutOfRange for other ranks, ErrLifetimeViolation
// when released.
func ToSlice[T any](v *View[T]) ([]T, error) {
	if v.IsNull() {
		return nil, nil
	}
	if v.Dimension() != 1 {
		return nil, fmt.Errorf("array.ToSlice: rank %d: %w", v.Dimension(), ErrDimensionOutOfRange)
	}

	return v.Values()
}

// FromSlice2 copies a rectangular s into a new owning rank-2 view with
// zero lower bounds. nil yields the null view.
// Errors: ErrRaggedArray.
func FromSlice2[T any](s [][]T, order Order, opts ...Option) (*View[T], error) {
	if s == nil {
		return Null[T](), nil
	}
	if len(s) == 0 || len(s[0]) == 0 {
		return nil, fmt.Errorf("array.FromSlice2: empty level: %w", ErrRaggedArray)
	}
	cols := len(s[0])
	for i, row := range s {
		if len(row) != cols {
			return nil, fmt.Errorf("array.FromSlice2: row %d has %d elements, want %d: %w", i, len(row), cols, ErrRaggedArray)
		}
	}
	v, err := New[T]([]int{0, 0}, []int{len(s) - 1, cols - 1}, order, opts...)
	if err != nil {
		return nil, err
	}
	for i, row := range s {
		for j, x := range row {
			v.Set(x, i, j)
		}
	}

	return v, nil
}

// ToSlice2 returns the rows of a rank-2 view. The null view yields nil.
// Errors: ErrDimensionOutOfRange for other ranks, ErrLifetimeViolation
// when released.
func ToSlice2[T any](v *View[T]) ([][]T, error) {
	if v.IsNull() {
		return nil, nil
	}
	if v.Dimension() != 2 {
		return nil, fmt.Errorf("array.ToSlice2: rank %d: %w", v.Dimension(), ErrDimensionOutOfRange)
	}
	if !v.Valid() {
		return nil, fmt.Errorf("array.ToSlice2: %w", ErrLifetimeViolation)
	}
	rows, cols := v.upper[0]-v.lower[0]+1, v.upper[1]-v.lower[1]+1
	out := make([][]T, rows)
	for i := range out {
		out[i] = make([]T, cols)
		for j := range out[i] {
			out[i][j] = v.Get(v.lower[0]+i, v.lower[1]+j)
		}
	}

	return out, nil
}

func unwrapInterface(rv reflect.Value) reflect.Value {
	for rv.IsValid() && rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}

	return rv
}

func isContainer(rv reflect.Value) bool {
	k := rv.Kind()

	return k == reflect.Slice || k == reflect.Array
}

func isNilValue(rv reflect.Value) bool {
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Interface, reflect.Pointer:
		return rv.IsNil()
	}

	return false
}
