// Package lifetime provides reference-counted ownership tokens shared by
// everything that can outlive a single call: array storage and grid
// objects handed to a numerical engine.
//
// What:
//
//   - Handle counts references with atomic updates and knows whether it
//     owns the resource it guards (owning) or merely points at it
//     (borrowed).
//   - Epoch is a generation counter attached to one resource. It advances
//     when the resource is freed, so borrowed handles can detect that the
//     thing they point at is gone.
//
// Rules:
//
//   - A resource is freed exactly once, when an owning handle drops its
//     last reference.
//   - A borrowed handle reaching zero never frees anything; it only stops
//     being usable.
//   - Releasing a handle that is already at zero is reported as
//     ErrLifetimeViolation instead of corrupting the count.
//
// A nil *Handle stands for the null object: AddRef and Release are no-ops.
package lifetime
