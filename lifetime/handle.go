// SPDX-License-Identifier: MIT

// Package lifetime - Handle & Epoch.
//
// Purpose:
//   - Keep the reference count of a shared resource in one place.
//   - Separate "who frees" (owner) from "who counts" (every handle).
//   - Let borrowed handles notice that the resource was freed or replaced
//     through a generation check instead of a dangling pointer.
//
// Complexity quicksheet:
//   - AddRef/Release/Live: O(1), lock-free.

package lifetime

import "sync/atomic"

// Epoch is the generation counter of one guarded resource.
// The zero value is ready to use.
type Epoch struct {
	n atomic.Uint64
}

// Current returns the generation observed right now.
func (e *Epoch) Current() uint64 {
	if e == nil {
		return 0
	}

	return e.n.Load()
}

// Advance moves the epoch forward, invalidating every handle created
// under an older generation.
func (e *Epoch) Advance() {
	if e == nil {
		return
	}
	e.n.Add(1)
}

// Handle is a reference-counted token for a resource guarded by an Epoch.
//   - refs starts at 1 (the implicit reference of the creator).
//   - owner decides whether draining the handle frees the resource.
//   - seen is the epoch generation at creation; Live() compares against it.
type Handle struct {
	refs  atomic.Int64
	owner bool
	epoch *Epoch
	seen  uint64
	free  func()
}

// NewOwned returns an owning handle with one reference.
// When the count drops to zero the epoch is advanced and free (if any) is
// called exactly once.
// Complexity: O(1).
func NewOwned(epoch *Epoch, free func()) *Handle {
	h := &Handle{owner: true, epoch: epoch, seen: epoch.Current(), free: free}
	h.refs.Store(1)

	return h
}

// NewBorrowed returns a non-owning handle with one reference that stays
// live only while epoch keeps the generation it had at creation.
// Complexity: O(1).
func NewBorrowed(epoch *Epoch) *Handle {
	h := &Handle{owner: false, epoch: epoch, seen: epoch.Current()}
	h.refs.Store(1)

	return h
}

// AddRef adds one reference.
// A nil handle is the null object and is left alone.
// Returns ErrLifetimeViolation when the handle was already drained:
// a released resource cannot be resurrected.
// Complexity: O(1).
func (h *Handle) AddRef() error {
	if h == nil {
		return nil
	}
	for {
		n := h.refs.Load()
		if n <= 0 {
			return ErrLifetimeViolation
		}
		if h.refs.CompareAndSwap(n, n+1) {
			return nil
		}
	}
}

// Release drops one reference.
//
// Behavior highlights:
//   - drained reports that this call took the count to zero.
//   - On an owning handle the drain advances the epoch and runs free.
//   - On a borrowed handle the drain never frees anything.
//   - Releasing at zero returns ErrLifetimeViolation and changes nothing.
//
// Complexity: O(1).
func (h *Handle) Release() (drained bool, err error) {
	if h == nil {
		return false, nil
	}
	for {
		n := h.refs.Load()
		if n <= 0 {
			return false, ErrLifetimeViolation
		}
		if h.refs.CompareAndSwap(n, n-1) {
			if n > 1 {
				return false, nil
			}

			break
		}
	}
	h.finish()

	return true, nil
}

// Drain drops every remaining reference at once, as if Release had been
// called Refs() times. It reports whether the handle had anything left.
// Used when a resource is replaced in place.
// Complexity: O(1).
func (h *Handle) Drain() bool {
	if h == nil {
		return false
	}
	if h.refs.Swap(0) <= 0 {
		return false
	}
	h.finish()

	return true
}

// finish runs the owner-side teardown after the count reached zero.
func (h *Handle) finish() {
	if !h.owner {
		return
	}
	h.epoch.Advance()
	if h.free != nil {
		h.free()
	}
}

// Refs returns the current reference count (0 for a nil handle).
func (h *Handle) Refs() int64 {
	if h == nil {
		return 0
	}

	return h.refs.Load()
}

// Owner reports whether draining this handle frees the resource.
func (h *Handle) Owner() bool {
	return h != nil && h.owner
}

// Live reports whether the handle still holds a reference and the guarded
// resource is still the generation the handle was created for.
func (h *Handle) Live() bool {
	if h == nil {
		return false
	}

	return h.refs.Load() > 0 && h.epoch.Current() == h.seen
}
