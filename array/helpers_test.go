package array_test

import (
	"strings"
	"testing"
	"time"

	"github.com/acolinisi/hypre/array"
	"github.com/hashicorp/go-metrics"
	"github.com/stretchr/testify/require"
)

// newSink returns an in-memory sink wide enough that a test never crosses
// an interval boundary in practice; counterTotal still sums every interval.
func newSink() *metrics.InmemSink {
	return metrics.NewInmemSink(time.Hour, 2*time.Hour)
}

// counterTotal sums the counter named by key over every retained interval.
func counterTotal(sink *metrics.InmemSink, key []string) float64 {
	name := strings.Join(key, ".")
	total := 0.0
	for _, interval := range sink.Data() {
		if c, ok := interval.Counters[name]; ok && c.AggregateSample != nil {
			total += c.Sum
		}
	}

	return total
}

// iota1 returns a rank-1 view over [lo, hi] holding its own indices.
func iota1(t *testing.T, lo, hi int, opts ...array.Option) *array.View[int] {
	t.Helper()
	v, err := array.New[int]([]int{lo}, []int{hi}, array.RowMajor, opts...)
	require.NoError(t, err)
	require.NoError(t, v.Apply(func(idx []int, _ int) int { return idx[0] }))

	return v
}

// grid2 returns a rows x cols view whose element (i,j) is 10*i+j.
func grid2(t *testing.T, rows, cols int, order array.Order) *array.View[int] {
	t.Helper()
	v, err := array.NewSized[int]([]int{rows, cols}, order)
	require.NoError(t, err)
	require.NoError(t, v.Apply(func(idx []int, _ int) int { return 10*idx[0] + idx[1] }))

	return v
}
