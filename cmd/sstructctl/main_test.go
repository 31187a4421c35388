package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/acolinisi/hypre/grid"
)

const twoParts = "testdata/two_parts.yaml"

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func TestDecodeConfig(t *testing.T) {
	cfg, err := loadConfig(twoParts)
	require.NoError(t, err)
	require.Equal(t, 2, cfg.NDim)
	require.Len(t, cfg.Parts, 2)
	require.Equal(t, []string{"cell", "node"}, cfg.Parts[1].Variables)
	require.Equal(t, []int{1, 0}, cfg.Neighbors[0].IndexMap)

	_, err = decodeConfig(strings.NewReader("ndim: 2\nparts:\n  - boxs: []\n"))
	require.ErrorIs(t, err, errConfig)
	_, err = decodeConfig(strings.NewReader("ndim: 2\n"))
	require.ErrorIs(t, err, errConfig)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"bad dims", "ndim: 4\nparts: [{}]\n", grid.ErrInvalidDimensions},
		{"bad var", "ndim: 2\nparts:\n  - variables: [volume]\n", grid.ErrInvalidVarType},
		{"bad box", "ndim: 2\nparts:\n  - boxes: [{lower: [2, 2], upper: [1, 1]}]\n", grid.ErrInvalidBox},
		{"bound outside int32", "ndim: 2\nparts:\n  - boxes: [{lower: [1, 1], upper: [1099511627776, 1]}]\n", grid.ErrInvalidIndexView},
		{"missing bounds", "ndim: 2\nparts:\n  - boxes: [{lower: [1, 1]}]\n", grid.ErrInvalidIndexView},
		{"mismatched vars", `ndim: 2
parts:
  - {boxes: [{lower: [1, 1], upper: [1, 1]}], variables: [cell]}
  - {boxes: [{lower: [1, 1], upper: [1, 1]}], variables: [node]}
neighbors:
  - {part: 0, lower: [2, 1], upper: [2, 1], nbor_part: 1, nbor_lower: [1, 1], nbor_upper: [1, 1], index_map: [0, 1]}
`, grid.ErrVariableMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := decodeConfig(strings.NewReader(tc.yaml))
			require.NoError(t, err)
			_, err = cfg.build()
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestTransforms(t *testing.T) {
	cfg, err := loadConfig(twoParts)
	require.NoError(t, err)
	trans, err := cfg.transforms()
	require.NoError(t, err)
	require.Len(t, trans, 2)
	require.Equal(t, []float64{1, 0, 0, 1}, trans[0].T)
	require.Equal(t, []float64{9, 0}, trans[1].Origin)

	cfg.Parts[1].Transform.Origin = nil
	_, err = cfg.transforms()
	require.ErrorIs(t, err, errConfig)

	cfg.Parts[1].Transform = nil
	trans, err = cfg.transforms()
	require.NoError(t, err)
	require.Nil(t, trans)
}

func TestInspect(t *testing.T) {
	out, err := run(t, "inspect", twoParts)
	require.NoError(t, err)
	require.Contains(t, out, "ndim 2, 2 parts, assembled true")
	require.Contains(t, out, "connected parts [0 1]")
	require.Contains(t, out, "cell,node")
	require.Regexp(t, regexp.MustCompile(`SetExtents\s+2`), out)
	require.Regexp(t, regexp.MustCompile(`SetVariable\s+4`), out)
	require.Regexp(t, regexp.MustCompile(`Assemble\s+1`), out)

	_, err = run(t, "inspect", "testdata/missing.yaml")
	require.Error(t, err)
}

func TestGLVisExport(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "glvis", twoParts, "-d", dir, "-p", "tp", "-j", "2")
	require.NoError(t, err)
	base := filepath.Join(dir, "tp")
	require.Equal(t, []string{
		base + ".mesh.000000",
		base + ".sol.00.000000",
		base + ".sol.01.000000",
		base + ".data",
	}, strings.Fields(out))

	read := func(name string) []string {
		b, err := os.ReadFile(name)
		require.NoError(t, err)

		return strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
	}
	mesh := read(base + ".mesh.000000")
	require.Equal(t, "MFEM mesh v1.0", mesh[0])
	require.Equal(t, "32", mesh[6])

	cell := read(base + ".sol.00.000000")
	require.Equal(t, "FiniteElementCollection: Local_L2_2D_P0", cell[1])
	require.Len(t, cell, 5+32)
	require.Equal(t, "2.00000000000000e+00", cell[5])

	node := read(base + ".sol.01.000000")
	require.Equal(t, "FiniteElementCollection: Local_H1_2D_P1", node[1])
	require.Len(t, node, 5+32*4)

	require.Equal(t, []string{"np 1"}, read(base+".data"))
}

func TestEncodeDecode(t *testing.T) {
	for _, codec := range []string{"proto", "cbor"} {
		t.Run(codec, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "values.bin")
			_, err := run(t, "encode", twoParts, "-c", codec, "-o", path, "--field", "part")
			require.NoError(t, err)

			out, err := run(t, "decode", path, "-c", codec)
			require.NoError(t, err)
			lines := strings.Split(strings.TrimSpace(out), "\n")
			require.Len(t, lines, 2)
			require.True(t, strings.HasPrefix(lines[0], "View[1:4][1:4]{0, 0, "), lines[0])
			require.True(t, strings.HasPrefix(lines[1], "View[1:4][1:4]{1, 1, "), lines[1])
		})
	}

	_, err := run(t, "encode", twoParts, "-c", "json")
	require.Error(t, err)
	_, err = run(t, "encode", twoParts, "--var", "5")
	require.ErrorIs(t, err, grid.ErrVariableOutOfRange)
}
