// Package grid is the semi-structured grid front-end of the numerical
// engine.
//
// A Grid is created for a communicator with a number of dimensions and
// parts, receives its topology through SetExtents, SetVariable,
// AddVariable, SetNeighborBox, AddUnstructuredPart, SetPeriodic and
// SetNumGhost, and is finalised with Assemble. Every call is validated,
// recorded in the grid's Topology and forwarded to an Engine, the native
// collaborator that owns the real data structures. Index arguments travel
// as rank-1 array.View[int32] values of length NDim.
//
// After Assemble the topology is frozen: every mutating call fails with
// ErrAlreadyAssembled. Destroy drops one reference; the engine tears the
// grid down once the last reference is gone.
//
// Objects handed across the boundary belong to a closed capability set
// (Kind); As replaces dynamic casting with a checked type assertion.
// Remote construction is represented only by the Connector interface.
package grid
