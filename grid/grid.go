// SPDX-License-Identifier: MIT

// Package grid - Grid lifecycle and topology calls.
//
// Every mutating method follows the same stages:
//   - Stage 1: lock; reject destroyed (ErrDestroyed) or assembled
//     (ErrAlreadyAssembled) grids and out-of-range parts.
//   - Stage 2: decode and validate the index views.
//   - Stage 3: forward the call to the engine; an engine error aborts.
//   - Stage 4: record the declaration in the topology.
//
// A failed call leaves the topology unchanged.

package grid

import (
	"fmt"
	"sync"

	"github.com/acolinisi/hypre/array"
	"github.com/acolinisi/hypre/lifetime"
	"github.com/google/uuid"
	"github.com/hashicorp/go-metrics"
)

// Grid is a semi-structured grid under construction. Safe for concurrent
// use; calls are serialised.
type Grid struct {
	mu        sync.Mutex
	id        uuid.UUID
	comm      Communicator
	topo      Topology
	handle    *lifetime.Handle
	destroyed bool
	opts      options
}

// Create validates the arguments, registers a new grid with the engine and
// returns it with one reference.
//
// Errors:
//   - ErrNilCommunicator, ErrInvalidDimensions.
//   - Any engine error.
func Create(comm Communicator, ndim, nparts int, opts ...Option) (*Grid, error) {
	if comm == nil {
		return nil, fmt.Errorf("grid.Create: %w", ErrNilCommunicator)
	}
	if err := checkDims(ndim, nparts); err != nil {
		return nil, fmt.Errorf("grid.Create(ndim=%d, nparts=%d): %w", ndim, nparts, err)
	}
	g := &Grid{
		id:     uuid.New(),
		comm:   comm,
		topo:   newTopology(ndim, nparts),
		handle: lifetime.NewOwned(nil, nil),
		opts:   gatherOptions(opts),
	}
	if err := g.exec(&Call{Op: OpCreate, Comm: comm, NDim: ndim, NParts: nparts}); err != nil {
		return nil, fmt.Errorf("grid.Create: %w", err)
	}
	g.opts.logger.Debug("grid created", "grid", g.id.String(), "ndim", ndim, "nparts", nparts, "ranks", comm.Size())

	return g, nil
}

func checkDims(ndim, nparts int) error {
	if ndim < 1 || ndim > MaxDim || nparts < 1 {
		return ErrInvalidDimensions
	}

	return nil
}

// exec stamps call with the grid id, counts it and forwards it.
// Caller holds g.mu (or owns g exclusively).
func (g *Grid) exec(call *Call) error {
	call.Grid = g.id
	labels := append([]metrics.Label{{Name: "op", Value: call.Op.String()}}, g.opts.labels...)
	g.opts.sink.IncrCounterWithLabels(MetricCallCount, 1, labels)

	return g.opts.engine.Exec(call)
}

// ready rejects calls on destroyed grids and mutations after Assemble.
// Caller holds g.mu.
func (g *Grid) ready(method string, part int, mutating bool) error {
	if g.destroyed {
		return gridErrorf(method, part, ErrDestroyed)
	}
	if mutating && g.topo.Assembled {
		return gridErrorf(method, part, ErrAlreadyAssembled)
	}

	return nil
}

// readyPart is ready plus a part range check.
func (g *Grid) readyPart(method string, part int) error {
	if err := g.ready(method, part, true); err != nil {
		return err
	}
	if part < 0 || part >= g.topo.NParts {
		return gridErrorf(method, part, ErrPartOutOfRange)
	}

	return nil
}

// ID returns the identity under which the engine knows the grid.
func (g *Grid) ID() uuid.UUID { return g.id }

// Kind returns KindGrid.
func (g *Grid) Kind() Kind { return KindGrid }

func (g *Grid) object() {}

// NDim returns the number of dimensions.
func (g *Grid) NDim() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.topo.NDim
}

// NParts returns the number of parts.
func (g *Grid) NParts() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.topo.NParts
}

// Communicator returns the current communicator.
func (g *Grid) Communicator() Communicator {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.comm
}

// Assembled reports whether Assemble succeeded.
func (g *Grid) Assembled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.topo.Assembled
}

// Topology returns a deep copy of everything declared so far.
func (g *Grid) Topology() Topology {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.topo.Clone()
}

// SetNumDimParts changes the number of dimensions and parts. Only allowed
// before any topology call.
// Errors: ErrInvalidDimensions, ErrTopologyStarted, ErrAlreadyAssembled,
// ErrDestroyed.
func (g *Grid) SetNumDimParts(ndim, nparts int) error {
	const method = "SetNumDimParts"
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.ready(method, -1, true); err != nil {
		return err
	}
	if err := checkDims(ndim, nparts); err != nil {
		return fmt.Errorf("Grid.%s(ndim=%d, nparts=%d): %w", method, ndim, nparts, err)
	}
	if g.topo.started() {
		return fmt.Errorf("Grid.%s: %w", method, ErrTopologyStarted)
	}
	if err := g.exec(&Call{Op: OpSetNumDimParts, NDim: ndim, NParts: nparts}); err != nil {
		return err
	}
	g.topo = newTopology(ndim, nparts)

	return nil
}

// SetCommunicator replaces the communicator.
// Errors: ErrNilCommunicator, ErrAlreadyAssembled, ErrDestroyed.
func (g *Grid) SetCommunicator(comm Communicator) error {
	const method = "SetCommunicator"
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.ready(method, -1, true); err != nil {
		return err
	}
	if comm == nil {
		return fmt.Errorf("Grid.%s: %w", method, ErrNilCommunicator)
	}
	if err := g.exec(&Call{Op: OpSetCommunicator, Comm: comm}); err != nil {
		return err
	}
	g.comm = comm

	return nil
}

// SetExtents adds the box [lower, upper] to a structured part.
// Errors: ErrPartOutOfRange, ErrInvalidIndexView, ErrInvalidBox,
// ErrAlreadyAssembled, ErrDestroyed.
func (g *Grid) SetExtents(part int, lower, upper *array.View[int32]) error {
	const method = "SetExtents"
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.readyPart(method, part); err != nil {
		return err
	}
	b, err := box(lower, upper, g.topo.NDim)
	if err != nil {
		return gridErrorf(method, part, err)
	}
	if err = g.exec(&Call{Op: OpSetExtents, Part: part, Lower: lower, Upper: upper}); err != nil {
		return err
	}
	p := &g.topo.Parts[part]
	p.Boxes = append(p.Boxes, b)

	return nil
}

// SetVariable declares variable number variable (of nvars on the part) to
// be of type vtype. The first call on a part fixes nvars.
// Errors: ErrPartOutOfRange, ErrVariableOutOfRange, ErrInvalidVarType,
// ErrAlreadyAssembled, ErrDestroyed.
func (g *Grid) SetVariable(part, variable, nvars int, vtype VarType) error {
	const method = "SetVariable"
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.readyPart(method, part); err != nil {
		return err
	}
	p := &g.topo.Parts[part]
	if nvars < 1 || variable < 0 || variable >= nvars || (p.Vars != nil && len(p.Vars) != nvars) {
		return gridErrorf(method, part, ErrVariableOutOfRange)
	}
	if !vtype.Valid() {
		return gridErrorf(method, part, ErrInvalidVarType)
	}
	call := &Call{Op: OpSetVariable, Part: part, Variable: variable, NVars: nvars, VarType: vtype}
	if err := g.exec(call); err != nil {
		return err
	}
	if p.Vars == nil {
		p.Vars = make([]VarType, nvars)
		for i := range p.Vars {
			p.Vars[i] = Undefined
		}
	}
	p.Vars[variable] = vtype

	return nil
}

// AddVariable declares an extra variable living at a single index of a
// part.
// Errors: ErrPartOutOfRange, ErrInvalidIndexView, ErrVariableOutOfRange,
// ErrInvalidVarType, ErrAlreadyAssembled, ErrDestroyed.
func (g *Grid) AddVariable(part int, index *array.View[int32], variable int, vtype VarType) error {
	const method = "AddVariable"
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.readyPart(method, part); err != nil {
		return err
	}
	idx, err := indexVector(index, g.topo.NDim)
	if err != nil {
		return gridErrorf(method, part, err)
	}
	if variable < 0 {
		return gridErrorf(method, part, ErrVariableOutOfRange)
	}
	if !vtype.Valid() {
		return gridErrorf(method, part, ErrInvalidVarType)
	}
	call := &Call{Op: OpAddVariable, Part: part, Index: index, Variable: variable, VarType: vtype}
	if err = g.exec(call); err != nil {
		return err
	}
	p := &g.topo.Parts[part]
	p.Extra = append(p.Extra, IndexedVar{Index: idx, Variable: variable, Type: vtype})

	return nil
}

// SetNeighborBox declares that the box [lower, upper] just outside part
// maps onto [nborLower, nborUpper] of nborPart. indexMap[d] is the
// neighbor axis that local axis d maps to. Local corners must increase;
// neighbor corners may run either way but must span the same extents.
//
// Errors:
//   - ErrPartOutOfRange (either part), ErrInvalidIndexView, ErrInvalidBox.
//   - ErrInvalidIndexMap, ErrBoxMismatch.
//   - ErrAlreadyAssembled, ErrDestroyed.
func (g *Grid) SetNeighborBox(part int, lower, upper *array.View[int32], nborPart int,
	nborLower, nborUpper, indexMap *array.View[int32]) error {
	const method = "SetNeighborBox"
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.readyPart(method, part); err != nil {
		return err
	}
	if nborPart < 0 || nborPart >= g.topo.NParts {
		return gridErrorf(method, part, fmt.Errorf("neighbor %d: %w", nborPart, ErrPartOutOfRange))
	}
	ndim := g.topo.NDim
	local, err := box(lower, upper, ndim)
	if err != nil {
		return gridErrorf(method, part, err)
	}
	nlo, err := indexVector(nborLower, ndim)
	if err != nil {
		return gridErrorf(method, part, err)
	}
	nhi, err := indexVector(nborUpper, ndim)
	if err != nil {
		return gridErrorf(method, part, err)
	}
	m, err := permutation(indexMap, ndim)
	if err != nil {
		return gridErrorf(method, part, err)
	}
	nbox := Box{Lower: nlo, Upper: nhi}
	if !matchesThrough(local, nbox, m) {
		return gridErrorf(method, part, ErrBoxMismatch)
	}

	call := &Call{
		Op: OpSetNeighborBox, Part: part, Lower: lower, Upper: upper,
		NborPart: nborPart, NborLower: nborLower, NborUpper: nborUpper, IndexMap: indexMap,
	}
	if err = g.exec(call); err != nil {
		return err
	}
	g.topo.Neighbors = append(g.topo.Neighbors, Neighbor{
		Part: part, Box: local, NborPart: nborPart, NborBox: nbox, IndexMap: m,
	})

	return nil
}

// AddUnstructuredPart declares that this process owns unstructured
// variable ranks [ilower, iupper].
// Errors: ErrInvalidBox, ErrAlreadyAssembled, ErrDestroyed.
func (g *Grid) AddUnstructuredPart(ilower, iupper int) error {
	const method = "AddUnstructuredPart"
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.ready(method, -1, true); err != nil {
		return err
	}
	if ilower < 0 || ilower > iupper {
		return fmt.Errorf("Grid.%s(%d, %d): %w", method, ilower, iupper, ErrInvalidBox)
	}
	if err := g.exec(&Call{Op: OpAddUnstructuredPart, ILower: ilower, IUpper: iupper}); err != nil {
		return err
	}
	g.topo.Unstructured = append(g.topo.Unstructured, Range{ILower: ilower, IUpper: iupper})

	return nil
}

// SetPeriodic sets the period of each dimension of a part (0 means not
// periodic).
// Errors: ErrPartOutOfRange, ErrInvalidIndexView, ErrAlreadyAssembled,
// ErrDestroyed.
func (g *Grid) SetPeriodic(part int, periodic *array.View[int32]) error {
	const method = "SetPeriodic"
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.readyPart(method, part); err != nil {
		return err
	}
	per, err := nonNegative(periodic, g.topo.NDim)
	if err != nil {
		return gridErrorf(method, part, err)
	}
	if err = g.exec(&Call{Op: OpSetPeriodic, Part: part, Periodic: periodic}); err != nil {
		return err
	}
	g.topo.Parts[part].Periodic = per

	return nil
}

// SetNumGhost sets the ghost layer widths, two entries (low, high) per
// dimension.
// Errors: ErrInvalidIndexView, ErrAlreadyAssembled, ErrDestroyed.
func (g *Grid) SetNumGhost(numGhost *array.View[int32]) error {
	const method = "SetNumGhost"
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.ready(method, -1, true); err != nil {
		return err
	}
	ghost, err := nonNegative(numGhost, 2*g.topo.NDim)
	if err != nil {
		return fmt.Errorf("Grid.%s: %w", method, err)
	}
	if err = g.exec(&Call{Op: OpSetNumGhost, NumGhost: numGhost}); err != nil {
		return err
	}
	g.topo.NumGhost = ghost

	return nil
}

// Assemble finalises the grid. Afterwards every mutating call fails with
// ErrAlreadyAssembled.
//
// Implementation:
//   - Stage 1: every declared variable slot must be set.
//   - Stage 2: parts related through neighbor boxes must declare identical
//     ordered (variable, type) lists.
//   - Stage 3: forward to the engine, then freeze.
//
// Errors: ErrUndefinedVariable, ErrVariableMismatch, ErrAlreadyAssembled,
// ErrDestroyed, engine errors.
func (g *Grid) Assemble() error {
	const method = "Assemble"
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.ready(method, -1, true); err != nil {
		return err
	}
	for p, part := range g.topo.Parts {
		for _, vt := range part.Vars {
			if vt == Undefined {
				return gridErrorf(method, p, ErrUndefinedVariable)
			}
		}
	}
	for _, group := range g.topo.RelatedParts() {
		first := g.topo.Parts[group[0]].Vars
		for _, p := range group[1:] {
			if !sameVars(first, g.topo.Parts[p].Vars) {
				return gridErrorf(method, p, fmt.Errorf("differs from part %d: %w", group[0], ErrVariableMismatch))
			}
		}
	}
	if err := g.exec(&Call{Op: OpAssemble}); err != nil {
		return err
	}
	g.topo.Assembled = true
	g.opts.sink.IncrCounterWithLabels(MetricAssembleCount, 1, g.opts.labels)
	g.opts.logger.Debug("grid assembled", "grid", g.id.String(),
		"parts", g.topo.NParts, "neighbors", len(g.topo.Neighbors))

	return nil
}

// AddRef adds one reference to the grid.
// Errors: ErrDestroyed.
func (g *Grid) AddRef() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.destroyed {
		return fmt.Errorf("Grid.AddRef: %w", ErrDestroyed)
	}

	return g.handle.AddRef()
}

// Refs returns the current reference count.
func (g *Grid) Refs() int64 {
	return g.handle.Refs()
}

// Destroy drops one reference. The engine destroys the grid when the last
// reference is gone; further calls then fail with ErrDestroyed.
// Errors: ErrDestroyed, engine errors (the grid counts as destroyed
// anyway).
func (g *Grid) Destroy() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.destroyed {
		return fmt.Errorf("Grid.Destroy: %w", ErrDestroyed)
	}
	drained, err := g.handle.Release()
	if err != nil {
		return fmt.Errorf("Grid.Destroy: %w", err)
	}
	if !drained {
		return nil
	}
	g.destroyed = true
	g.opts.sink.IncrCounterWithLabels(MetricDestroyCount, 1, g.opts.labels)
	g.opts.logger.Debug("grid destroyed", "grid", g.id.String())

	return g.exec(&Call{Op: OpDestroy})
}
