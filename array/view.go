// SPDX-License-Identifier: MIT

// Package array - View storage, construction & shape queries.
//
// Purpose:
//   - One generic view type for every rank, replacing per-rank wrappers.
//   - Explicit offset formula: base + Σ (idx[d]-lower[d]) * stride[d].
//   - Owning views are created by New/NewSized/Reallocate/SmartCopy/Clone;
//     borrowed views by Slice. Both hold one lifetime.Handle.
//
// Complexity quicksheet:
//   - New: O(n) zero-init; shape queries: O(1); Reallocate: O(n).

package array

import (
	"fmt"
	"strings"

	"github.com/acolinisi/hypre/lifetime"
)

// Order selects how a freshly allocated view lays out its elements.
type Order uint8

const (
	// RowMajor stores the last dimension contiguously (C order).
	RowMajor Order = iota
	// ColumnMajor stores the first dimension contiguously (Fortran order).
	ColumnMajor
)

// String returns "row-major" or "column-major".
func (o Order) String() string {
	if o == ColumnMajor {
		return "column-major"
	}

	return "row-major"
}

// ---------- error context tags ----------

const (
	ctxNew        = "New"
	ctxLower      = "Lower"
	ctxUpper      = "Upper"
	ctxStride     = "Stride"
	ctxLength     = "Length"
	ctxReallocate = "Reallocate"
	ctxAddRef     = "AddRef"
	ctxRelease    = "Release"
)

// View is a bounded, strided view over shared storage.
//   - lower/upper hold inclusive bounds, stride the element step per
//     dimension in the backing buffer, base the offset of the lower corner.
//   - store and handle are nil for the null view (rank 0).
type View[T any] struct {
	store  *storage[T]
	handle *lifetime.Handle
	lower  []int
	upper  []int
	stride []int
	base   int
	order  Order
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*View[float64])(nil)

// Null returns the null view: rank 0, no storage. It is what ToNested maps
// back to nil and what FromNested produces for nil input.
func Null[T any]() *View[T] {
	return &View[T]{}
}

// New allocates an owning view with inclusive bounds [lower[d], upper[d]].
//
// Implementation:
//   - Stage 1: validate rank > 0, equal lengths and lower <= upper.
//   - Stage 2: allocate Π length[d] zeroed elements.
//   - Stage 3: compute contiguous strides for order.
//
// Errors:
//   - ErrInvalidBounds.
//
// Complexity:
//   - Time O(n), Space O(n).
func New[T any](lower, upper []int, order Order, opts ...Option) (*View[T], error) {
	if err := validateBounds(lower, upper); err != nil {
		return nil, fmt.Errorf("array.%s(%v, %v): %w", ctxNew, lower, upper, err)
	}
	v := &View[T]{}
	v.attachFresh(lower, upper, order, gatherOptions(opts))

	return v, nil
}

// NewSized allocates an owning view with zero lower bounds and the given
// per-dimension lengths (each must be > 0).
// Errors: ErrInvalidBounds.
func NewSized[T any](lengths []int, order Order, opts ...Option) (*View[T], error) {
	lower := make([]int, len(lengths))
	upper := make([]int, len(lengths))
	for d, n := range lengths {
		upper[d] = n - 1
	}

	return New[T](lower, upper, order, opts...)
}

// attachFresh allocates storage for the validated bounds and makes v its
// owner.
func (v *View[T]) attachFresh(lower, upper []int, order Order, cfg *config) {
	lengths, total := lengthsOf(lower, upper)
	v.store = newStorage[T](total, cfg)
	v.handle = v.store.attachOwned()
	v.lower = append([]int(nil), lower...)
	v.upper = append([]int(nil), upper...)
	v.stride = contiguousStrides(lengths, order)
	v.base = 0
	v.order = order
}

// IsNull reports whether v is the null view (rank 0, no storage).
func (v *View[T]) IsNull() bool {
	return v == nil || v.store == nil
}

// Valid reports whether v can be used for element access: not null, its
// handle still holds a reference and the storage has not been freed.
func (v *View[T]) Valid() bool {
	return !v.IsNull() && v.handle.Live() && v.store.data != nil
}

// Dimension returns the rank (0 for the null view).
// Complexity: O(1).
func (v *View[T]) Dimension() int {
	if v == nil {
		return 0
	}

	return len(v.lower)
}

// checkDim validates an axis index.
func (v *View[T]) checkDim(method string, d int) error {
	if d < 0 || d >= v.Dimension() {
		return viewErrorf(method, d, ErrDimensionOutOfRange)
	}

	return nil
}

// Lower returns the inclusive lower bound of dimension d.
// Errors: ErrDimensionOutOfRange.
func (v *View[T]) Lower(d int) (int, error) {
	if err := v.checkDim(ctxLower, d); err != nil {
		return 0, err
	}

	return v.lower[d], nil
}

// Upper returns the inclusive upper bound of dimension d.
// Errors: ErrDimensionOutOfRange.
func (v *View[T]) Upper(d int) (int, error) {
	if err := v.checkDim(ctxUpper, d); err != nil {
		return 0, err
	}

	return v.upper[d], nil
}

// Stride returns the element step of dimension d in the backing storage.
// Errors: ErrDimensionOutOfRange.
func (v *View[T]) Stride(d int) (int, error) {
	if err := v.checkDim(ctxStride, d); err != nil {
		return 0, err
	}

	return v.stride[d], nil
}

// Length returns upper(d) - lower(d) + 1.
// Errors: ErrDimensionOutOfRange.
func (v *View[T]) Length(d int) (int, error) {
	if err := v.checkDim(ctxLength, d); err != nil {
		return 0, err
	}

	return v.upper[d] - v.lower[d] + 1, nil
}

// Shape returns every per-dimension length (nil for the null view).
func (v *View[T]) Shape() []int {
	if v.IsNull() {
		return nil
	}
	lengths, _ := lengthsOf(v.lower, v.upper)

	return lengths
}

// Len returns the number of elements addressed by the view (0 when null).
func (v *View[T]) Len() int {
	if v.IsNull() {
		return 0
	}
	_, total := lengthsOf(v.lower, v.upper)

	return total
}

// Bounds returns copies of the lower and upper bound vectors.
func (v *View[T]) Bounds() (lower, upper []int) {
	if v.IsNull() {
		return nil, nil
	}

	return append([]int(nil), v.lower...), append([]int(nil), v.upper...)
}

// Order returns the ordering flag the view was created with.
func (v *View[T]) Order() Order {
	if v == nil {
		return RowMajor
	}

	return v.order
}

// IsRowOrder reports whether the view is row-major.
func (v *View[T]) IsRowOrder() bool { return v.Order() == RowMajor }

// IsColumnOrder reports whether the view is column-major.
func (v *View[T]) IsColumnOrder() bool { return v.Order() == ColumnMajor }

// Owner reports whether releasing the view's last reference frees storage.
func (v *View[T]) Owner() bool {
	return !v.IsNull() && v.handle.Owner()
}

// Refs returns the reference count of the view's own handle.
func (v *View[T]) Refs() int64 {
	if v.IsNull() {
		return 0
	}

	return v.handle.Refs()
}

// StorageRefs returns how many live views are attached to v's storage
// (v itself included).
func (v *View[T]) StorageRefs() int64 {
	if v.IsNull() {
		return 0
	}

	return v.store.views.Load()
}

// SharesStorage reports whether a and b address the same backing buffer.
func SharesStorage[T any](a, b *View[T]) bool {
	return !a.IsNull() && !b.IsNull() && a.store == b.store
}

// AddRef adds one reference to the view. No-op on the null view.
// Errors: ErrLifetimeViolation when the view was already fully released.
func (v *View[T]) AddRef() error {
	if v.IsNull() {
		return nil
	}
	if err := v.handle.AddRef(); err != nil {
		return viewErrorf(ctxAddRef, v.handle.Refs(), err)
	}

	return nil
}

// Release drops one reference. When an owning view drops its last
// reference the storage is freed; a borrowed view only becomes unusable.
// No-op on the null view.
// Errors: ErrLifetimeViolation when called more times than references exist.
func (v *View[T]) Release() error {
	if v.IsNull() {
		return nil
	}
	drained, err := v.handle.Release()
	if err != nil {
		return viewErrorf(ctxRelease, v.handle.Refs(), err)
	}
	if drained {
		v.store.detach()
	}

	return nil
}

// Reallocate replaces the view's storage with a fresh zeroed buffer of the
// new shape; the view becomes owning with one reference. Every reference
// the view held on its old storage is dropped (freeing it when the view
// was its owner). Element values are not preserved.
//
// Errors:
//   - ErrInvalidBounds (view untouched).
//
// Complexity:
//   - Time O(n), Space O(n).
func (v *View[T]) Reallocate(lower, upper []int, order Order) error {
	if err := validateBounds(lower, upper); err != nil {
		return fmt.Errorf("View.%s(%v, %v): %w", ctxReallocate, lower, upper, err)
	}
	cfg := gatherOptions(nil)
	if !v.IsNull() {
		cfg = v.store.cfg
		if v.handle.Drain() {
			v.store.detach()
		}
	}
	v.attachFresh(lower, upper, order, cfg)
	cfg.logger.Debug("array view reallocated", "lower", lower, "upper", upper, "order", order.String())

	return nil
}

// derive builds a view over the same storage with a borrowed handle.
func (v *View[T]) derive(lower, upper, stride []int, base int) *View[T] {
	return &View[T]{
		store:  v.store,
		handle: v.store.attachBorrowed(),
		lower:  lower,
		upper:  upper,
		stride: stride,
		base:   base,
		order:  v.order,
	}
}

// String renders the bounds and the values in logical row-major order,
// for diagnostics only.
func (v *View[T]) String() string {
	if v.IsNull() {
		return "View<null>"
	}
	var b strings.Builder
	b.WriteString("View")
	for d := range v.lower {
		fmt.Fprintf(&b, "[%d:%d]", v.lower[d], v.upper[d])
	}
	if !v.Valid() {
		b.WriteString("<released>")

		return b.String()
	}
	b.WriteString("{")
	first := true
	v.Do(func(_ []int, x T) bool {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v", x)

		return true
	})
	b.WriteString("}")

	return b.String()
}
