// SPDX-License-Identifier: MIT

package array

import (
	"sync/atomic"

	"github.com/acolinisi/hypre/lifetime"
)

// storage is the flat backing buffer shared by every view derived from
// one allocation.
//   - data is nil once the owning handle freed it.
//   - epoch advances on free; borrowed views compare against it.
//   - views counts live view handles attached to the buffer.
type storage[T any] struct {
	data  []T
	epoch lifetime.Epoch
	views atomic.Int64
	cfg   *config
}

// newStorage allocates n zeroed elements and reports the allocation.
// Complexity: O(n).
func newStorage[T any](n int, cfg *config) *storage[T] {
	s := &storage[T]{data: make([]T, n), cfg: cfg}
	cfg.sink.IncrCounterWithLabels(MetricAllocCount, 1, cfg.labels)
	cfg.sink.IncrCounterWithLabels(MetricAllocElements, float32(n), cfg.labels)

	return s
}

// release drops the buffer. Called exactly once by the owning handle.
func (s *storage[T]) release() {
	n := len(s.data)
	s.data = nil
	s.cfg.sink.IncrCounterWithLabels(MetricFreeCount, 1, s.cfg.labels)
	s.cfg.logger.Debug("array storage freed", "elements", n)
}

// attachOwned returns an owning handle that frees s when drained and
// counts as one attached view.
func (s *storage[T]) attachOwned() *lifetime.Handle {
	s.views.Add(1)

	return lifetime.NewOwned(&s.epoch, s.release)
}

// attachBorrowed returns a borrowed handle counted as one attached view.
func (s *storage[T]) attachBorrowed() *lifetime.Handle {
	s.views.Add(1)

	return lifetime.NewBorrowed(&s.epoch)
}

// detach forgets one attached view.
func (s *storage[T]) detach() {
	s.views.Add(-1)
}
