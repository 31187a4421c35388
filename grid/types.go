// SPDX-License-Identifier: MIT

package grid

import "fmt"

// MaxDim is the largest supported number of grid dimensions.
const MaxDim = 3

// VarType is the location of a variable inside a cell.
type VarType int

// Variable types, numbered as the engine numbers them.
const (
	Undefined VarType = iota - 1
	Node
	Cell
	XFace
	YFace
	ZFace
	XEdge
	YEdge
	ZEdge
)

var varTypeNames = [...]string{"node", "cell", "xface", "yface", "zface", "xedge", "yedge", "zedge"}

// String returns the lower-case name ("cell", "xface", ...).
func (t VarType) String() string {
	if t.Valid() {
		return varTypeNames[t]
	}
	if t == Undefined {
		return "undefined"
	}

	return fmt.Sprintf("VarType(%d)", int(t))
}

// Valid reports whether t is one of Node..ZEdge.
func (t VarType) Valid() bool {
	return t >= Node && t <= ZEdge
}

// ParseVarType is the inverse of VarType.String for valid types.
func ParseVarType(s string) (VarType, error) {
	for i, name := range varTypeNames {
		if name == s {
			return VarType(i), nil
		}
	}

	return Undefined, fmt.Errorf("grid.ParseVarType(%q): %w", s, ErrInvalidVarType)
}

// Box is an index-space box with inclusive corners.
type Box struct {
	Lower []int
	Upper []int
}

// Extents returns Upper[d]-Lower[d]+1 per dimension.
func (b Box) Extents() []int {
	ext := make([]int, len(b.Lower))
	for d := range b.Lower {
		ext[d] = b.Upper[d] - b.Lower[d] + 1
	}

	return ext
}

// Volume returns the number of cells in the box.
func (b Box) Volume() int {
	n := 1
	for _, e := range b.Extents() {
		n *= e
	}

	return n
}

func (b Box) clone() Box {
	return Box{Lower: append([]int(nil), b.Lower...), Upper: append([]int(nil), b.Upper...)}
}

// IndexedVar is a variable added at a single index by AddVariable.
type IndexedVar struct {
	Index    []int
	Variable int
	Type     VarType
}

// Part is the recorded topology of one structured part.
//   - Boxes in SetExtents order.
//   - Vars[v] is the type of variable v (Undefined until SetVariable).
//   - Extra lists AddVariable declarations.
//   - Periodic holds the period per dimension (0 = not periodic).
type Part struct {
	Boxes    []Box
	Vars     []VarType
	Extra    []IndexedVar
	Periodic []int
}

// Neighbor is one SetNeighborBox declaration.
type Neighbor struct {
	Part     int
	Box      Box
	NborPart int
	NborBox  Box
	IndexMap []int
}

// Range is an inclusive range of unstructured variable ranks.
type Range struct {
	ILower, IUpper int
}

// Topology is a snapshot of everything declared on a grid.
type Topology struct {
	NDim         int
	NParts       int
	Parts        []Part
	Neighbors    []Neighbor
	Unstructured []Range
	NumGhost     []int
	Assembled    bool
}

// newTopology returns an empty topology with nparts parts.
func newTopology(ndim, nparts int) Topology {
	return Topology{NDim: ndim, NParts: nparts, Parts: make([]Part, nparts)}
}

// started reports whether any topology call was recorded.
func (t *Topology) started() bool {
	if len(t.Neighbors) > 0 || len(t.Unstructured) > 0 || t.NumGhost != nil {
		return true
	}
	for _, p := range t.Parts {
		if len(p.Boxes) > 0 || len(p.Vars) > 0 || len(p.Extra) > 0 || p.Periodic != nil {
			return true
		}
	}

	return false
}

// Clone returns a deep copy.
func (t Topology) Clone() Topology {
	out := t
	out.Parts = make([]Part, len(t.Parts))
	for i, p := range t.Parts {
		cp := Part{
			Vars:     append([]VarType(nil), p.Vars...),
			Periodic: append([]int(nil), p.Periodic...),
		}
		for _, b := range p.Boxes {
			cp.Boxes = append(cp.Boxes, b.clone())
		}
		for _, x := range p.Extra {
			cp.Extra = append(cp.Extra, IndexedVar{Index: append([]int(nil), x.Index...), Variable: x.Variable, Type: x.Type})
		}
		out.Parts[i] = cp
	}
	out.Neighbors = make([]Neighbor, len(t.Neighbors))
	for i, n := range t.Neighbors {
		out.Neighbors[i] = Neighbor{
			Part:     n.Part,
			Box:      n.Box.clone(),
			NborPart: n.NborPart,
			NborBox:  n.NborBox.clone(),
			IndexMap: append([]int(nil), n.IndexMap...),
		}
	}
	out.Unstructured = append([]Range(nil), t.Unstructured...)
	out.NumGhost = append([]int(nil), t.NumGhost...)

	return out
}
