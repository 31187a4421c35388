package glvis_test

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/acolinisi/hypre/array"
	"github.com/acolinisi/hypre/glvis"
	"github.com/acolinisi/hypre/grid"
	"github.com/stretchr/testify/require"
)

// lines splits output into lines, dropping the final empty one.
func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// strip builds a one-part 2D topology with a single box of 2x1 cells.
func strip(vars ...grid.VarType) grid.Topology {
	return grid.Topology{
		NDim:   2,
		NParts: 1,
		Parts: []grid.Part{{
			Boxes: []grid.Box{{Lower: []int{1, 1}, Upper: []int{2, 1}}},
			Vars:  vars,
		}},
	}
}

func TestGlobalSquareMesh(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, glvis.PrintGlobalSquareMesh(&buf, 1))
	want := `MFEM mesh v1.0

dimension
2

elements
1
1 3 0 1 3 2

boundary
0

vertices
4
2
0.00000000000000e+00 0.00000000000000e+00
1.00000000000000e+00 0.00000000000000e+00
0.00000000000000e+00 1.00000000000000e+00
1.00000000000000e+00 1.00000000000000e+00
`
	require.Equal(t, want, buf.String())

	require.ErrorIs(t, glvis.PrintGlobalSquareMesh(&buf, 0), glvis.ErrInvalidMesh)
}

func TestLocalSquareMeshOrigin(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, glvis.PrintLocalSquareMesh(&buf, 2, 1, 0.5, 1, 2))
	ls := lines(buf.String())
	require.Equal(t, "2", ls[6])
	require.Equal(t, "1 3 0 1 4 3", ls[7])
	require.Equal(t, "1 3 1 2 5 4", ls[8])
	require.Equal(t, "6", ls[14])
	require.Equal(t, "1.00000000000000e+00 2.00000000000000e+00", ls[16])
	require.Equal(t, "2.00000000000000e+00 2.50000000000000e+00", ls[len(ls)-1])

	require.ErrorIs(t, glvis.PrintLocalSquareMesh(&buf, 1, 1, 0, 0, 0), glvis.ErrInvalidMesh)
}

func TestRhombusMesh(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, glvis.PrintLocalRhombusMesh(&buf, 1, 0, math.Pi/3))
	ls := lines(buf.String())
	require.Equal(t, "1 3 0 1 3 2", ls[7])
	require.Equal(t, "5.00000000000000e-01 8.66025403784439e-01", ls[18])

	buf.Reset()
	require.NoError(t, glvis.PrintLocalRhombusMesh(&buf, 3, 2, math.Pi/3))
	require.Equal(t, "9", lines(buf.String())[6])
	require.ErrorIs(t, glvis.PrintLocalRhombusMesh(&buf, 0, 0, 1), glvis.ErrInvalidMesh)
}

func TestCubicMesh(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, glvis.PrintLocalCubicMesh(&buf, 1, 1, 1, 1, 0, 0, 0))
	ls := lines(buf.String())
	require.Equal(t, "3", ls[3])
	require.Equal(t, "1 5 0 1 3 2 4 5 7 6", ls[7])
	require.Equal(t, "8", ls[13])
	require.Len(t, ls, 15+8)
	require.Equal(t, "1.00000000000000e+00 1.00000000000000e+00 1.00000000000000e+00", ls[len(ls)-1])
}

func TestGridMesh(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, glvis.PrintGridMesh(&buf, strip(grid.Cell), nil))
	ls := lines(buf.String())
	require.Equal(t, "2", ls[6])
	require.Equal(t, "1 3 0 1 2 3", ls[7])
	require.Equal(t, "1 3 4 5 6 7", ls[8])
	require.Equal(t, "8", ls[14])
	require.Equal(t, []string{
		"1.00000000000000e+00 1.00000000000000e+00",
		"2.00000000000000e+00 1.00000000000000e+00",
		"2.00000000000000e+00 2.00000000000000e+00",
		"1.00000000000000e+00 2.00000000000000e+00",
	}, ls[16:20])
}

func TestGridMeshTransform(t *testing.T) {
	var buf bytes.Buffer
	trans := []glvis.Transform{{T: []float64{2, 0, 0, 2}, Origin: []float64{1, 0}}}
	require.NoError(t, glvis.PrintGridMesh(&buf, strip(grid.Cell), trans))
	ls := lines(buf.String())
	require.Equal(t, "3.00000000000000e+00 2.00000000000000e+00", ls[16])

	err := glvis.PrintGridMesh(&buf, strip(grid.Cell), []glvis.Transform{{T: []float64{1}}})
	require.ErrorIs(t, err, glvis.ErrTransform)

	bad := strip(grid.Cell)
	bad.NDim = 1
	require.ErrorIs(t, glvis.PrintGridMesh(&buf, bad, nil), glvis.ErrUnsupportedDim)
}

func TestGridFunctionCell(t *testing.T) {
	v, err := array.New[float64]([]int{1, 1}, []int{2, 1}, array.RowMajor)
	require.NoError(t, err)
	require.NoError(t, v.SetChecked(10, 1, 1))
	require.NoError(t, v.SetChecked(20, 2, 1))

	var buf bytes.Buffer
	require.NoError(t, glvis.PrintGridFunction(&buf, strip(grid.Cell), 0, [][]*array.View[float64]{{v}}))
	require.Equal(t, []string{
		"FiniteElementSpace",
		"FiniteElementCollection: Local_L2_2D_P0",
		"VDim: 1",
		"Ordering: 0",
		"",
		"1.00000000000000e+01",
		"2.00000000000000e+01",
	}, lines(buf.String()))

	iv, err := array.FromSlice2([][]int32{{3}, {4}}, array.RowMajor)
	require.NoError(t, err)
	iv2, err := iv.Slice([]int{2, 1}, []int{0, 0}, []int{1, 1}, []int{1, 1})
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, glvis.PrintGridFunction(&buf, strip(grid.Cell), 0, [][]*array.View[int32]{{iv2}}))
	require.Equal(t, "4.00000000000000e+00", lines(buf.String())[6])
}

func TestGridFunctionNode(t *testing.T) {
	// Nodes 0..2 x 0..1; value = 10*i + j.
	v, err := array.New[float64]([]int{0, 0}, []int{2, 1}, array.ColumnMajor)
	require.NoError(t, err)
	require.NoError(t, v.Apply(func(idx []int, _ float64) float64 { return float64(10*idx[0] + idx[1]) }))

	var buf bytes.Buffer
	topo := strip(grid.Cell, grid.Node)
	require.NoError(t, glvis.PrintGridFunction(&buf, topo, 1, [][]*array.View[float64]{{v}}))
	ls := lines(buf.String())
	require.Equal(t, "FiniteElementCollection: Local_H1_2D_P1", ls[1])
	require.Len(t, ls, 5+8)
	require.Equal(t, []string{
		"0.00000000000000e+00",
		"1.00000000000000e+01",
		"1.10000000000000e+01",
		"1.00000000000000e+00",
	}, ls[5:9])
}

func TestGridFunctionErrors(t *testing.T) {
	var buf bytes.Buffer
	small, err := array.New[float64]([]int{1, 1}, []int{1, 1}, array.RowMajor)
	require.NoError(t, err)
	vals := [][]*array.View[float64]{{small}}

	err = glvis.PrintGridFunction(&buf, strip(grid.Cell), 0, vals)
	require.ErrorIs(t, err, glvis.ErrValueShape)
	require.ErrorIs(t, err, array.ErrIndexOutOfBounds)

	require.ErrorIs(t, glvis.PrintGridFunction(&buf, strip(grid.XFace), 0, vals), glvis.ErrUnsupportedVarType)
	require.ErrorIs(t, glvis.PrintGridFunction(&buf, strip(grid.Cell), 3, vals), glvis.ErrUnsupportedVarType)
	require.ErrorIs(t, glvis.PrintGridFunction[float64](&buf, strip(grid.Cell), 0, nil), glvis.ErrValueShape)
	require.ErrorIs(t, glvis.PrintGridFunction(&buf, strip(grid.Cell), 0, [][]*array.View[float64]{{}}), glvis.ErrValueShape)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestWriteErrorSurfaces(t *testing.T) {
	require.ErrorIs(t, glvis.PrintGlobalSquareMesh(failWriter{}, 2), io.ErrClosedPipe)
	require.ErrorIs(t, glvis.PrintGridMesh(failWriter{}, strip(grid.Cell), nil), io.ErrClosedPipe)
}

func TestWriteFileAndData(t *testing.T) {
	dir := t.TempDir()
	require.Equal(t, "sol.000007", glvis.FileName("sol", 7))

	path := filepath.Join(dir, glvis.FileName("data", 0))
	require.NoError(t, glvis.WriteFile(path, func(w io.Writer) error { return glvis.PrintData(w, 4) }))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "np 4\n", string(got))

	boom := errors.New("boom")
	require.ErrorIs(t, glvis.WriteFile(path, func(io.Writer) error { return boom }), boom)
	require.ErrorIs(t, glvis.PrintData(io.Discard, 0), glvis.ErrInvalidMesh)

	require.Error(t, glvis.WriteFile(filepath.Join(dir, "missing", "x"), func(io.Writer) error { return nil }))
}
