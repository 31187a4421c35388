package array_test

import (
	"math"
	"testing"

	"github.com/acolinisi/hypre/array"
	"github.com/stretchr/testify/require"
)

// TestNewInvalidBounds ensures malformed shapes are rejected.
func TestNewInvalidBounds(t *testing.T) {
	cases := []struct {
		name         string
		lower, upper []int
	}{
		{"rank zero", nil, nil},
		{"length mismatch", []int{0, 0}, []int{3}},
		{"lower above upper", []int{0, 5}, []int{3, 4}},
		{"element count overflows", []int{0, 0}, []int{math.MaxInt / 4, 3}},
		{"length overflows", []int{0}, []int{math.MaxInt}},
		{"span wraps", []int{math.MinInt}, []int{math.MaxInt}},
		{"span wraps negative lower", []int{-2}, []int{math.MaxInt - 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := array.New[float64](tc.lower, tc.upper, array.RowMajor)
			require.ErrorIs(t, err, array.ErrInvalidBounds)
		})
	}

	_, err := array.NewSized[float64]([]int{3, 0}, array.RowMajor)
	require.ErrorIs(t, err, array.ErrInvalidBounds)
	_, err = array.NewSized[float64]([]int{math.MinInt}, array.RowMajor)
	require.ErrorIs(t, err, array.ErrInvalidBounds)
}

// TestLengthLaw checks Length(d) == upper-lower+1 for several shapes.
func TestLengthLaw(t *testing.T) {
	shapes := [][2][]int{
		{{0}, {0}},
		{{-3, 2}, {4, 2}},
		{{1, 1, 1}, {2, 3, 4}},
		{{-1, 0, 5, 7, 0, 0, 0, 0}, {1, 1, 5, 9, 0, 1, 0, 2}},
	}
	for _, s := range shapes {
		lower, upper := s[0], s[1]
		for _, order := range []array.Order{array.RowMajor, array.ColumnMajor} {
			v, err := array.New[int32](lower, upper, order)
			require.NoError(t, err)
			require.Equal(t, len(lower), v.Dimension())
			total := 1
			for d := range lower {
				n, err := v.Length(d)
				require.NoError(t, err)
				require.Equal(t, upper[d]-lower[d]+1, n)
				lo, _ := v.Lower(d)
				hi, _ := v.Upper(d)
				require.Equal(t, lower[d], lo)
				require.Equal(t, upper[d], hi)
				total *= n
			}
			require.Equal(t, total, v.Len())
		}
	}
}

// TestDimensionOutOfRange covers every shape query.
func TestDimensionOutOfRange(t *testing.T) {
	v, err := array.NewSized[float64]([]int{2, 3}, array.RowMajor)
	require.NoError(t, err)

	for _, d := range []int{-1, 2} {
		_, err = v.Lower(d)
		require.ErrorIs(t, err, array.ErrDimensionOutOfRange)
		_, err = v.Upper(d)
		require.ErrorIs(t, err, array.ErrDimensionOutOfRange)
		_, err = v.Stride(d)
		require.ErrorIs(t, err, array.ErrDimensionOutOfRange)
		_, err = v.Length(d)
		require.ErrorIs(t, err, array.ErrDimensionOutOfRange)
	}
}

// TestStridesByOrder verifies C and Fortran layouts.
func TestStridesByOrder(t *testing.T) {
	row, err := array.NewSized[float64]([]int{2, 3, 4}, array.RowMajor)
	require.NoError(t, err)
	col, err := array.NewSized[float64]([]int{2, 3, 4}, array.ColumnMajor)
	require.NoError(t, err)

	for d, want := range []int{12, 4, 1} {
		s, _ := row.Stride(d)
		require.Equal(t, want, s)
	}
	for d, want := range []int{1, 2, 6} {
		s, _ := col.Stride(d)
		require.Equal(t, want, s)
	}

	require.True(t, row.IsRowOrder())
	require.False(t, row.IsColumnOrder())
	require.True(t, col.IsColumnOrder())
	require.False(t, col.IsRowOrder())
}

// TestCheckedRoundTrip writes then reads every in-bounds index.
func TestCheckedRoundTrip(t *testing.T) {
	for _, order := range []array.Order{array.RowMajor, array.ColumnMajor} {
		v, err := array.New[float64]([]int{-1, 2}, []int{1, 5}, order)
		require.NoError(t, err)
		for i := -1; i <= 1; i++ {
			for j := 2; j <= 5; j++ {
				require.NoError(t, v.SetChecked(float64(100*i+j), i, j))
			}
		}
		for i := -1; i <= 1; i++ {
			for j := 2; j <= 5; j++ {
				x, err := v.GetChecked(i, j)
				require.NoError(t, err)
				require.Equal(t, float64(100*i+j), x)
				require.Equal(t, x, v.Get(i, j))
			}
		}
	}
}

// TestCheckedOutOfBounds ensures checked access reports bad indices.
func TestCheckedOutOfBounds(t *testing.T) {
	v, err := array.New[int]([]int{1, 1}, []int{3, 2}, array.RowMajor)
	require.NoError(t, err)

	bad := [][]int{{0, 1}, {4, 1}, {1, 0}, {1, 3}, {1}, {1, 1, 1}}
	for _, idx := range bad {
		_, err = v.GetChecked(idx...)
		require.ErrorIs(t, err, array.ErrIndexOutOfBounds, "index %v", idx)
		require.ErrorIs(t, v.SetChecked(7, idx...), array.ErrIndexOutOfBounds, "index %v", idx)
	}
}

// TestNullView checks the rank-0 view behaves as an inert value.
func TestNullView(t *testing.T) {
	v := array.Null[float64]()
	require.True(t, v.IsNull())
	require.False(t, v.Valid())
	require.Zero(t, v.Dimension())
	require.Zero(t, v.Len())
	require.Nil(t, v.Shape())
	require.NoError(t, v.AddRef())
	require.NoError(t, v.Release())
	require.Equal(t, "View<null>", v.String())

	_, err := v.Length(0)
	require.ErrorIs(t, err, array.ErrDimensionOutOfRange)
	_, err = v.GetChecked()
	require.ErrorIs(t, err, array.ErrLifetimeViolation)
}

// TestReferenceCounting follows addRef twice, release three times.
func TestReferenceCounting(t *testing.T) {
	sink := newSink()
	v, err := array.New[float64]([]int{0}, []int{4}, array.RowMajor, array.WithMetricSink(sink))
	require.NoError(t, err)
	require.EqualValues(t, 1, v.Refs())
	require.True(t, v.Owner())

	require.NoError(t, v.AddRef())
	require.NoError(t, v.AddRef())
	require.EqualValues(t, 3, v.Refs())

	require.NoError(t, v.Release())
	require.True(t, v.Valid())
	require.NoError(t, v.SetChecked(1.5, 2))
	require.NoError(t, v.Release())
	require.True(t, v.Valid())
	x, err := v.GetChecked(2)
	require.NoError(t, err)
	require.Equal(t, 1.5, x)
	require.Zero(t, counterTotal(sink, array.MetricFreeCount))

	require.NoError(t, v.Release())
	require.False(t, v.Valid())
	require.Equal(t, 1.0, counterTotal(sink, array.MetricFreeCount))

	require.ErrorIs(t, v.Release(), array.ErrLifetimeViolation)
	require.ErrorIs(t, v.AddRef(), array.ErrLifetimeViolation)
	_, err = v.GetChecked(2)
	require.ErrorIs(t, err, array.ErrLifetimeViolation)
	require.Equal(t, 1.0, counterTotal(sink, array.MetricFreeCount))
}

// TestReallocate replaces the shape and frees the previous buffer.
func TestReallocate(t *testing.T) {
	sink := newSink()
	v, err := array.NewSized[int]([]int{4}, array.RowMajor, array.WithMetricSink(sink))
	require.NoError(t, err)
	s, err := v.Slice([]int{2}, []int{1}, []int{1}, nil)
	require.NoError(t, err)
	require.True(t, s.Valid())

	require.ErrorIs(t, v.Reallocate([]int{2}, []int{1}, array.RowMajor), array.ErrInvalidBounds)
	require.ErrorIs(t, v.Reallocate([]int{0, 0}, []int{math.MaxInt / 4, 3}, array.RowMajor), array.ErrInvalidBounds)
	require.Equal(t, 1, v.Dimension())
	require.True(t, s.Valid(), "a rejected reallocation keeps the old storage")

	require.NoError(t, v.Reallocate([]int{0, -1}, []int{1, 1}, array.ColumnMajor))
	require.Equal(t, []int{2, 3}, v.Shape())
	require.True(t, v.IsColumnOrder())
	require.True(t, v.Owner())
	require.EqualValues(t, 1, v.Refs())
	require.False(t, s.Valid(), "slice of the old storage must go stale")
	require.False(t, array.SharesStorage(v, s))

	require.Equal(t, 2.0, counterTotal(sink, array.MetricAllocCount))
	require.Equal(t, 1.0, counterTotal(sink, array.MetricFreeCount))
	require.NoError(t, v.SetChecked(9, 1, 1))
}

// TestReallocateNull gives storage to a null view.
func TestReallocateNull(t *testing.T) {
	v := array.Null[int]()
	require.NoError(t, v.Reallocate([]int{0}, []int{2}, array.RowMajor))
	require.False(t, v.IsNull())
	require.Equal(t, 3, v.Len())
}

// TestString renders bounds and values in logical order.
func TestString(t *testing.T) {
	v := grid2(t, 2, 2, array.ColumnMajor)
	require.Equal(t, "View[0:1][0:1]{0, 1, 10, 11}", v.String())
	require.NoError(t, v.Release())
	require.Equal(t, "View[0:1][0:1]<released>", v.String())
}

// TestAllocMetrics verifies allocation counters reach the sink.
func TestAllocMetrics(t *testing.T) {
	sink := newSink()
	_, err := array.NewSized[float32]([]int{3, 5}, array.RowMajor, array.WithMetricSink(sink))
	require.NoError(t, err)
	require.Equal(t, 1.0, counterTotal(sink, array.MetricAllocCount))
	require.Equal(t, 15.0, counterTotal(sink, array.MetricAllocElements))

	require.Panics(t, func() { array.WithMetricSink(nil) })
	require.Panics(t, func() { array.WithLogger(nil) })
}
