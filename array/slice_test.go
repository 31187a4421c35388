package array_test

import (
	"math"
	"testing"

	"github.com/acolinisi/hypre/array"
	"github.com/stretchr/testify/require"
)

// TestSliceStrided takes every second element starting at 2.
func TestSliceStrided(t *testing.T) {
	v := iota1(t, 0, 9)
	s, err := v.Slice([]int{3}, []int{2}, []int{2}, []int{0})
	require.NoError(t, err)
	require.Equal(t, 1, s.Dimension())
	require.Equal(t, 3, s.Len())
	require.False(t, s.Owner())

	for i, want := range []int{2, 4, 6} {
		x, err := s.GetChecked(i)
		require.NoError(t, err)
		require.Equal(t, want, x)
	}

	// writes go through to the source
	require.NoError(t, s.SetChecked(-1, 1))
	require.Equal(t, -1, v.Get(4))
	require.True(t, array.SharesStorage(v, s))
}

// TestSliceNewStartAndNegativeStride shifts bounds and walks backwards.
func TestSliceNewStartAndNegativeStride(t *testing.T) {
	v := iota1(t, 0, 9)
	s, err := v.Slice([]int{4}, []int{9}, []int{-3}, []int{5})
	require.NoError(t, err)
	lo, _ := s.Lower(0)
	hi, _ := s.Upper(0)
	require.Equal(t, 5, lo)
	require.Equal(t, 8, hi)

	vals, err := s.Values()
	require.NoError(t, err)
	require.Equal(t, []int{9, 6, 3, 0}, vals)
}

// TestSliceRankReduction drops dimensions whose count is zero.
func TestSliceRankReduction(t *testing.T) {
	for _, order := range []array.Order{array.RowMajor, array.ColumnMajor} {
		v := grid2(t, 4, 5, order)

		col, err := v.Slice([]int{4, 0}, []int{0, 3}, []int{1, 1}, nil)
		require.NoError(t, err)
		vals, err := col.Values()
		require.NoError(t, err)
		require.Equal(t, []int{3, 13, 23, 33}, vals)

		row, err := v.Slice([]int{0, 3}, []int{2, 1}, []int{1, 1}, []int{1})
		require.NoError(t, err)
		require.Equal(t, 1, row.Dimension())
		vals, err = row.Values()
		require.NoError(t, err)
		require.Equal(t, []int{21, 22, 23}, vals)
		x, err := row.GetChecked(3)
		require.NoError(t, err)
		require.Equal(t, 23, x)
	}
}

// TestSliceOfSlice composes strides and offsets.
func TestSliceOfSlice(t *testing.T) {
	v := grid2(t, 6, 6, array.RowMajor)
	inner, err := v.Slice([]int{3, 3}, []int{1, 0}, []int{2, 2}, []int{10, 20})
	require.NoError(t, err)
	x, err := inner.GetChecked(11, 21)
	require.NoError(t, err)
	require.Equal(t, 32, x)

	sub, err := inner.Slice([]int{2, 0}, []int{11, 22}, []int{1, 1}, nil)
	require.NoError(t, err)
	vals, err := sub.Values()
	require.NoError(t, err)
	require.Equal(t, []int{34, 54}, vals)
}

// TestSliceInvalid covers every rejection path.
func TestSliceInvalid(t *testing.T) {
	v := iota1(t, 0, 9)
	cases := []struct {
		name                        string
		numElem, start, stride, dst []int
	}{
		{"rank mismatch", []int{2, 2}, []int{0}, []int{1}, nil},
		{"negative count", []int{-1}, []int{0}, []int{1}, nil},
		{"start below", []int{1}, []int{-1}, []int{1}, nil},
		{"start above", []int{1}, []int{10}, []int{1}, nil},
		{"end past upper", []int{4}, []int{4}, []int{2}, nil},
		{"end below lower", []int{3}, []int{1}, []int{-1}, nil},
		{"zero stride", []int{2}, []int{0}, []int{0}, nil},
		{"all dropped", []int{0}, []int{3}, []int{1}, nil},
		{"newStart rank", []int{2}, []int{0}, []int{1}, []int{0, 0}},
		{"count wraps forward", []int{math.MaxInt/2 + 2}, []int{0}, []int{4}, nil},
		{"count wraps backward", []int{math.MaxInt/2 + 2}, []int{9}, []int{-4}, nil},
		{"huge count", []int{math.MaxInt}, []int{0}, []int{1}, nil},
		{"min stride", []int{2}, []int{5}, []int{math.MinInt}, nil},
		{"upper bound wraps", []int{2}, []int{0}, []int{1}, []int{math.MaxInt}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := v.Slice(tc.numElem, tc.start, tc.stride, tc.dst)
			require.ErrorIs(t, err, array.ErrInvalidSlice)
		})
	}
}

// TestSmartCopyExclusive returns the same view when nothing shares it.
func TestSmartCopyExclusive(t *testing.T) {
	v := iota1(t, 0, 2)
	c, err := v.SmartCopy()
	require.NoError(t, err)
	require.Same(t, v, c)
	require.EqualValues(t, 2, v.Refs())
}

// TestSmartCopyShared mutates a smart copy of a slice and checks that the
// source and the slice are unchanged.
func TestSmartCopyShared(t *testing.T) {
	a := iota1(t, 0, 2)
	require.NoError(t, a.SetChecked(42, 0))
	b, err := a.Slice([]int{3}, []int{0}, []int{1}, nil)
	require.NoError(t, err)

	c, err := b.SmartCopy()
	require.NoError(t, err)
	require.NotSame(t, b, c)
	require.False(t, array.SharesStorage(b, c))
	require.True(t, c.Owner())

	require.NoError(t, c.SetChecked(-7, 0))
	x, _ := a.GetChecked(0)
	require.Equal(t, 42, x)
	x, _ = b.GetChecked(0)
	require.Equal(t, 42, x)

	// an owner with live slices is shared too
	d, err := a.SmartCopy()
	require.NoError(t, err)
	require.False(t, array.SharesStorage(a, d))
}

// TestBorrowedLifetime verifies slices never free and go stale with the owner.
func TestBorrowedLifetime(t *testing.T) {
	sink := newSink()
	v, err := array.NewSized[int]([]int{5}, array.RowMajor, array.WithMetricSink(sink))
	require.NoError(t, err)
	s, err := v.Slice([]int{2}, []int{0}, []int{1}, nil)
	require.NoError(t, err)
	require.EqualValues(t, 2, v.StorageRefs())

	require.NoError(t, s.Release())
	require.False(t, s.Valid())
	require.True(t, v.Valid())
	require.Zero(t, counterTotal(sink, array.MetricFreeCount))
	require.EqualValues(t, 1, v.StorageRefs())

	s2, err := v.Slice([]int{2}, []int{0}, []int{1}, nil)
	require.NoError(t, err)
	require.NoError(t, v.Release())
	require.False(t, s2.Valid())
	_, err = s2.GetChecked(0)
	require.ErrorIs(t, err, array.ErrLifetimeViolation)
	require.Equal(t, 1.0, counterTotal(sink, array.MetricFreeCount))
}

// TestCopyMismatch leaves the destination untouched on shape mismatch.
func TestCopyMismatch(t *testing.T) {
	src := iota1(t, 0, 2)
	dst := iota1(t, 0, 3)
	require.NoError(t, dst.Fill(5))

	require.ErrorIs(t, array.Copy(src, dst), array.ErrShapeMismatch)
	vals, err := dst.Values()
	require.NoError(t, err)
	require.Equal(t, []int{5, 5, 5, 5}, vals)

	m := grid2(t, 2, 3, array.RowMajor)
	n := grid2(t, 3, 2, array.RowMajor)
	require.ErrorIs(t, array.Copy(m, n), array.ErrShapeMismatch)
}

// TestCopyByLogicalIndex copies between different bounds and layouts.
func TestCopyByLogicalIndex(t *testing.T) {
	sink := newSink()
	src := grid2(t, 2, 3, array.RowMajor)
	dst, err := array.New[int]([]int{-1, 4}, []int{0, 6}, array.ColumnMajor, array.WithMetricSink(sink))
	require.NoError(t, err)

	require.NoError(t, array.Copy(src, dst))
	x, err := dst.GetChecked(0, 5)
	require.NoError(t, err)
	require.Equal(t, 11, x)
	require.Equal(t, 1.0, counterTotal(sink, array.MetricCopyCount))
	require.Equal(t, 6.0, counterTotal(sink, array.MetricCopyElements))
}

// TestCopyOverlapping shifts a window onto itself.
func TestCopyOverlapping(t *testing.T) {
	v := iota1(t, 0, 5)
	head, err := v.Slice([]int{5}, []int{0}, []int{1}, nil)
	require.NoError(t, err)
	tail, err := v.Slice([]int{5}, []int{1}, []int{1}, nil)
	require.NoError(t, err)

	require.NoError(t, array.Copy(head, tail))
	vals, err := v.Values()
	require.NoError(t, err)
	require.Equal(t, []int{0, 0, 1, 2, 3, 4}, vals)
}

// TestClone always copies.
func TestClone(t *testing.T) {
	v := grid2(t, 2, 2, array.ColumnMajor)
	c, err := v.Clone()
	require.NoError(t, err)
	require.False(t, array.SharesStorage(v, c))
	require.True(t, c.IsColumnOrder())
	require.NoError(t, c.SetChecked(99, 1, 1))
	require.Equal(t, 11, v.Get(1, 1))
}
