// SPDX-License-Identifier: MIT

package glvis

import (
	"fmt"
	"io"

	"github.com/acolinisi/hypre/array"
	"github.com/acolinisi/hypre/grid"
)

// Transform maps the index-space coordinates of one part to physical
// space: x = T*i + Origin, with T stored row by row (dim*dim entries).
type Transform struct {
	T      []float64
	Origin []float64
}

// corners2/corners3 list the cell corner offsets in MFEM vertex order.
var (
	corners2 = [][3]int{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	corners3 = [][3]int{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
)

// cellShape returns the MFEM geometry and corner offsets for dim.
func cellShape(dim int) (int, [][3]int, error) {
	switch dim {
	case 2:
		return geomSquare, corners2, nil
	case 3:
		return geomCube, corners3, nil
	}

	return 0, nil, ErrUnsupportedDim
}

// forEachCell visits every cell of b with i varying fastest. In 2D k is 0.
func forEachCell(b grid.Box, dim int, fn func(c [3]int)) {
	lo, hi := [3]int{}, [3]int{}
	copy(lo[:], b.Lower)
	copy(hi[:], b.Upper)
	if dim < 3 {
		lo[2], hi[2] = 0, 0
	}
	for k := lo[2]; k <= hi[2]; k++ {
		for j := lo[1]; j <= hi[1]; j++ {
			for i := lo[0]; i <= hi[0]; i++ {
				fn([3]int{i, j, k})
			}
		}
	}
}

// countCells returns the total number of cells over every part and box.
func countCells(topo grid.Topology) int {
	n := 0
	for _, p := range topo.Parts {
		for _, b := range p.Boxes {
			n += b.Volume()
		}
	}

	return n
}

// checkTransforms validates an optional per-part transform list.
func checkTransforms(topo grid.Topology, trans []Transform) error {
	if trans == nil {
		return nil
	}
	if len(trans) != topo.NParts {
		return ErrTransform
	}
	for _, t := range trans {
		if len(t.T) != topo.NDim*topo.NDim || len(t.Origin) != topo.NDim {
			return ErrTransform
		}
	}

	return nil
}

// PrintGridMesh writes one element per cell of every box of every part.
// Each element gets its own corner vertices, so the mesh is not conforming
// across boxes; GLVis does not need it to be. trans is nil or holds one
// Transform per part.
//
// Errors:
//   - ErrUnsupportedDim, ErrTransform, write errors.
func PrintGridMesh(w io.Writer, topo grid.Topology, trans []Transform) error {
	dim := topo.NDim
	geom, corners, err := cellShape(dim)
	if err != nil {
		return fmt.Errorf("glvis.PrintGridMesh(ndim=%d): %w", dim, err)
	}
	if err = checkTransforms(topo, trans); err != nil {
		return fmt.Errorf("glvis.PrintGridMesh(ndim=%d): %w", dim, err)
	}

	p := &printer{w: w}
	ncells := countCells(topo)
	nv := len(corners)
	p.header(dim, ncells)
	verts := make([]int, nv)
	for e := 0; e < ncells; e++ {
		for c := range verts {
			verts[c] = e*nv + c
		}
		p.element(geom, verts...)
	}

	p.vertices(dim, ncells*nv)
	x := make([]float64, dim)
	for part, pt := range topo.Parts {
		for _, b := range pt.Boxes {
			forEachCell(b, dim, func(cell [3]int) {
				for _, off := range corners {
					var ijk [3]float64
					for d := 0; d < dim; d++ {
						ijk[d] = float64(cell[d] + off[d])
					}
					if trans == nil {
						copy(x, ijk[:dim])
					} else {
						t := trans[part]
						for r := 0; r < dim; r++ {
							x[r] = t.Origin[r]
							for c := 0; c < dim; c++ {
								x[r] += t.T[r*dim+c] * ijk[c]
							}
						}
					}
					p.point(x...)
				}
			})
		}
	}

	return p.err
}

// collectionName returns the MFEM finite element collection of t.
func collectionName(t grid.VarType, dim int) (string, error) {
	switch t {
	case grid.Cell:
		return fmt.Sprintf("Local_L2_%dD_P0", dim), nil
	case grid.Node:
		return fmt.Sprintf("Local_H1_%dD_P1", dim), nil
	}

	return "", ErrUnsupportedVarType
}

// PrintGridFunction writes the values of variable variable on the mesh
// produced by PrintGridMesh for the same topology.
//
// values[part][box] holds the box's values indexed by grid index; integer
// element types are written as floats:
//   - cell variables: bounds equal to the box;
//   - node variables: bounds from box.Lower-1 to box.Upper, node (i, j, k)
//     being the upper corner of cell (i, j, k).
//
// The variable type is taken from part 0, as every connected part
// declares the same variables.
//
// Errors:
//   - ErrUnsupportedDim, ErrUnsupportedVarType, ErrValueShape,
//     write errors.
func PrintGridFunction[T array.Number](w io.Writer, topo grid.Topology, variable int, values [][]*array.View[T]) error {
	wrap := func(err error) error {
		return fmt.Errorf("glvis.PrintGridFunction(var=%d): %w", variable, err)
	}
	dim := topo.NDim
	_, corners, err := cellShape(dim)
	if err != nil {
		return wrap(err)
	}
	if topo.NParts == 0 || variable < 0 || variable >= len(topo.Parts[0].Vars) {
		return wrap(ErrUnsupportedVarType)
	}
	vt := topo.Parts[0].Vars[variable]
	name, err := collectionName(vt, dim)
	if err != nil {
		return wrap(err)
	}
	if len(values) != len(topo.Parts) {
		return wrap(ErrValueShape)
	}

	p := &printer{w: w}
	p.printf("FiniteElementSpace\nFiniteElementCollection: %s\nVDim: 1\nOrdering: 0\n\n", name)
	idx := make([]int, dim)
	for part, pt := range topo.Parts {
		if len(values[part]) != len(pt.Boxes) {
			return wrap(ErrValueShape)
		}
		for bi, b := range pt.Boxes {
			v := values[part][bi]
			var verr error
			forEachCell(b, dim, func(cell [3]int) {
				if verr != nil {
					return
				}
				if vt == grid.Cell {
					copy(idx, cell[:dim])
					x, err := v.GetChecked(idx...)
					if err != nil {
						verr = err
						return
					}
					p.printf("%.14e\n", float64(x))

					return
				}
				for _, off := range corners {
					for d := 0; d < dim; d++ {
						idx[d] = cell[d] - 1 + off[d]
					}
					x, err := v.GetChecked(idx...)
					if err != nil {
						verr = err
						return
					}
					p.printf("%.14e\n", float64(x))
				}
			})
			if verr != nil {
				return fmt.Errorf("glvis.PrintGridFunction(var=%d, part=%d, box=%d): %w: %w",
					variable, part, bi, ErrValueShape, verr)
			}
		}
	}

	return p.err
}
