// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/acolinisi/hypre/array"
	"github.com/acolinisi/hypre/grid"
)

// Sample fields the export commands can fill variables with.
const (
	fieldIndex = "index" // sum of the grid index coordinates
	fieldPart  = "part"  // part number
)

// sampleValues allocates one box-bounded view per box of every part for
// variable v and fills it with field. Node variables get one extra layer
// on the low side of each box. The caller releases the views.
func sampleValues(topo grid.Topology, v int, field string) ([][]*array.View[float64], error) {
	out := make([][]*array.View[float64], len(topo.Parts))
	for p, part := range topo.Parts {
		if v >= len(part.Vars) {
			releaseAll(out)

			return nil, fmt.Errorf("part %d: variable %d: %w", p, v, grid.ErrVariableOutOfRange)
		}
		shift := 0
		if part.Vars[v] == grid.Node {
			shift = 1
		}
		for _, b := range part.Boxes {
			lower := append([]int(nil), b.Lower...)
			for d := range lower {
				lower[d] -= shift
			}
			view, err := array.New[float64](lower, b.Upper, array.RowMajor)
			if err != nil {
				releaseAll(out)

				return nil, err
			}
			out[p] = append(out[p], view)
			if err = fill(view, p, field); err != nil {
				releaseAll(out)

				return nil, err
			}
		}
	}

	return out, nil
}

func fill(view *array.View[float64], part int, field string) error {
	switch field {
	case fieldIndex:
		return view.Apply(func(idx []int, _ float64) float64 {
			s := 0
			for _, i := range idx {
				s += i
			}

			return float64(s)
		})
	case fieldPart:
		return view.Fill(float64(part))
	}

	return fmt.Errorf("%w: unknown field %q", errConfig, field)
}

func releaseAll[T any](views [][]*array.View[T]) {
	for _, row := range views {
		for _, v := range row {
			_ = v.Release()
		}
	}
}
