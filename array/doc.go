// Package array provides bounded, strided N-dimensional views over shared
// element storage, the shape in which array arguments cross the boundary
// to a numerical engine.
//
// The array package provides:
//
//   - View[T]: a rectangular view with per-dimension inclusive lower/upper
//     bounds, strides and a row-major or column-major flag. Any positive
//     rank is supported.
//   - Checked (GetChecked/SetChecked) and unchecked (Get/Set) element
//     access. Unchecked access skips bounds checks; build with the
//     arraydebug tag to turn misuse into a panic.
//   - Slice: a sub-view sharing storage with its source, with arbitrary
//     per-dimension start, stride and count (counts of 0 drop a dimension).
//   - SmartCopy (copy only when shared), Clone, Copy by logical index.
//   - Reference-counted lifetime through lifetime.Handle: owning views free
//     storage on their last Release, borrowed views never do and go stale
//     once the storage is gone.
//   - FromNested/ToNested: conversion to and from nested Go slices.
//
// Views perform no locking on element access: writers sharing storage must
// be serialized by the caller. Reference counts are atomic.
//
// See the examples in this package for usage patterns.
package array
