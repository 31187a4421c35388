// SPDX-License-Identifier: MIT

package lifetime

import "errors"

var (
	// ErrLifetimeViolation is returned when a handle is released more times
	// than it was referenced, or when a drained handle is referenced again.
	ErrLifetimeViolation = errors.New("lifetime: reference count underflow or use after release")
)
