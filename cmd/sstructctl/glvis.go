// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/acolinisi/hypre/glvis"
	"github.com/acolinisi/hypre/grid"
)

type glvisFlags struct {
	dir    string
	prefix string
	field  string
	jobs   int
}

func newGLVisCmd(a *app) *cobra.Command {
	f := glvisFlags{}
	cmd := &cobra.Command{
		Use:   "glvis CONFIG",
		Short: "Write GLVis mesh and grid function files for a grid description",
		Long: `Writes DIR/PREFIX.mesh.000000, one DIR/PREFIX.sol.NN.000000 per cell or
node variable filled with a sample field, and DIR/PREFIX.data.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, g, _, err := a.load(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = g.Destroy() }()
			trans, err := cfg.transforms()
			if err != nil {
				return err
			}
			files, err := exportGLVis(g.Topology(), trans, f, a)
			if err != nil {
				return err
			}
			for _, name := range files {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}

			return nil
		},
	}
	cmd.Flags().StringVarP(&f.dir, "dir", "d", ".", "output directory")
	cmd.Flags().StringVarP(&f.prefix, "prefix", "p", "sstruct", "file name prefix")
	cmd.Flags().StringVar(&f.field, "field", fieldIndex, `sample field: "index" or "part"`)
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 4, "files written concurrently")

	return cmd
}

// exportGLVis writes the mesh, one solution file per cell or node variable
// and the data file, concurrently. It returns the written paths in a
// stable order.
func exportGLVis(topo grid.Topology, trans []glvis.Transform, f glvisFlags, a *app) ([]string, error) {
	base := filepath.Join(f.dir, f.prefix)
	mesh := glvis.FileName(base+".mesh", 0)
	data := base + ".data"
	files := []string{mesh}

	var eg errgroup.Group
	if f.jobs > 0 {
		eg.SetLimit(f.jobs)
	}
	eg.Go(func() error {
		return glvis.WriteFile(mesh, func(w io.Writer) error { return glvis.PrintGridMesh(w, topo, trans) })
	})
	if topo.NParts > 0 {
		for v, vt := range topo.Parts[0].Vars {
			if vt != grid.Cell && vt != grid.Node {
				a.logger.Warn("skipping variable GLVis cannot display", "variable", v, "type", vt.String())

				continue
			}
			name := glvis.FileName(fmt.Sprintf("%s.sol.%02d", base, v), 0)
			files = append(files, name)
			eg.Go(func() error {
				values, err := sampleValues(topo, v, f.field)
				if err != nil {
					return err
				}
				defer releaseAll(values)

				return glvis.WriteFile(name, func(w io.Writer) error {
					return glvis.PrintGridFunction(w, topo, v, values)
				})
			})
		}
	}
	eg.Go(func() error {
		return glvis.WriteFile(data, func(w io.Writer) error { return glvis.PrintData(w, 1) })
	})
	files = append(files, data)

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return files, nil
}
