// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/acolinisi/hypre/array"
	"github.com/google/uuid"
)

// Op identifies a grid operation forwarded to an Engine.
type Op uint8

const (
	OpCreate Op = iota
	OpSetNumDimParts
	OpSetCommunicator
	OpSetExtents
	OpSetVariable
	OpAddVariable
	OpSetNeighborBox
	OpAddUnstructuredPart
	OpSetPeriodic
	OpSetNumGhost
	OpAssemble
	OpDestroy
)

var opNames = [...]string{
	"Create", "SetNumDimParts", "SetCommunicator", "SetExtents", "SetVariable",
	"AddVariable", "SetNeighborBox", "AddUnstructuredPart", "SetPeriodic",
	"SetNumGhost", "Assemble", "Destroy",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}

	return fmt.Sprintf("Op(%d)", int(op))
}

// Call is one validated grid operation. Only the fields of Op are set.
// The views belong to the caller and must not be retained after Exec
// returns.
type Call struct {
	Grid uuid.UUID
	Op   Op

	Comm   Communicator
	NDim   int
	NParts int

	Part     int
	NborPart int
	Variable int
	NVars    int
	VarType  VarType
	ILower   int
	IUpper   int

	Lower     *array.View[int32]
	Upper     *array.View[int32]
	NborLower *array.View[int32]
	NborUpper *array.View[int32]
	IndexMap  *array.View[int32]
	Index     *array.View[int32]
	Periodic  *array.View[int32]
	NumGhost  *array.View[int32]
}

// Engine is the native collaborator that receives validated grid calls.
// A non-nil error is returned to the caller unchanged and the call is not
// recorded in the grid topology.
type Engine interface {
	Exec(call *Call) error
}

// EngineFunc adapts a function to Engine.
type EngineFunc func(call *Call) error

// Exec calls f(call).
func (f EngineFunc) Exec(call *Call) error { return f(call) }

// Entry is one call as seen by a Recorder, with index views decoded.
type Entry struct {
	Grid uuid.UUID
	Op   Op
	Args string
}

// Recorder is an in-memory Engine that keeps a log of every call and
// writes it to a logger at debug level. Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	logger  *slog.Logger
	entries []Entry
}

var _ Engine = (*Recorder)(nil)

// NewRecorder returns an empty recorder logging to logger (nil means
// slog.Default()).
func NewRecorder(logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}

	return &Recorder{logger: logger}
}

// Exec records call.
func (r *Recorder) Exec(call *Call) error {
	args := describe(call)
	r.mu.Lock()
	r.entries = append(r.entries, Entry{Grid: call.Grid, Op: call.Op, Args: args})
	r.mu.Unlock()
	r.logger.Debug("grid call", "grid", call.Grid.String(), "op", call.Op.String(), "args", args)

	return nil
}

// Entries returns a copy of the log.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Entry(nil), r.entries...)
}

// Counts returns the number of recorded calls per operation.
func (r *Recorder) Counts() map[Op]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[Op]int)
	for _, e := range r.entries {
		out[e.Op]++
	}

	return out
}

// describe renders the arguments relevant to call.Op.
func describe(c *Call) string {
	var b strings.Builder
	switch c.Op {
	case OpCreate, OpSetNumDimParts:
		fmt.Fprintf(&b, "ndim=%d nparts=%d", c.NDim, c.NParts)
	case OpSetCommunicator:
		fmt.Fprintf(&b, "rank=%d size=%d", c.Comm.Rank(), c.Comm.Size())
	case OpSetExtents:
		fmt.Fprintf(&b, "part=%d lower=%s upper=%s", c.Part, ints(c.Lower), ints(c.Upper))
	case OpSetVariable:
		fmt.Fprintf(&b, "part=%d var=%d nvars=%d type=%s", c.Part, c.Variable, c.NVars, c.VarType)
	case OpAddVariable:
		fmt.Fprintf(&b, "part=%d index=%s var=%d type=%s", c.Part, ints(c.Index), c.Variable, c.VarType)
	case OpSetNeighborBox:
		fmt.Fprintf(&b, "part=%d box=%s..%s nbor=%d nbox=%s..%s map=%s",
			c.Part, ints(c.Lower), ints(c.Upper), c.NborPart, ints(c.NborLower), ints(c.NborUpper), ints(c.IndexMap))
	case OpAddUnstructuredPart:
		fmt.Fprintf(&b, "ilower=%d iupper=%d", c.ILower, c.IUpper)
	case OpSetPeriodic:
		fmt.Fprintf(&b, "part=%d periodic=%s", c.Part, ints(c.Periodic))
	case OpSetNumGhost:
		fmt.Fprintf(&b, "ghost=%s", ints(c.NumGhost))
	}

	return b.String()
}

func ints(v *array.View[int32]) string {
	vals, err := array.ToSlice(v)
	if err != nil {
		return "<invalid>"
	}

	return fmt.Sprint(vals)
}
