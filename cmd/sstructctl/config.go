// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/acolinisi/hypre/array"
	"github.com/acolinisi/hypre/glvis"
	"github.com/acolinisi/hypre/grid"
)

var errConfig = errors.New("sstructctl: invalid grid description")

// Config is the YAML description of a semi-structured grid.
type Config struct {
	NDim      int              `yaml:"ndim"`
	Parts     []PartConfig     `yaml:"parts"`
	Neighbors []NeighborConfig `yaml:"neighbors"`
	Ghost     []int            `yaml:"ghost"`
}

// PartConfig describes one structured part.
type PartConfig struct {
	Boxes     []BoxConfig      `yaml:"boxes"`
	Variables []string         `yaml:"variables"`
	Periodic  []int            `yaml:"periodic"`
	Transform *TransformConfig `yaml:"transform"`
}

// BoxConfig is an inclusive index box.
type BoxConfig struct {
	Lower []int `yaml:"lower"`
	Upper []int `yaml:"upper"`
}

// NeighborConfig is one neighbour box declaration.
type NeighborConfig struct {
	Part      int   `yaml:"part"`
	Lower     []int `yaml:"lower"`
	Upper     []int `yaml:"upper"`
	NborPart  int   `yaml:"nbor_part"`
	NborLower []int `yaml:"nbor_lower"`
	NborUpper []int `yaml:"nbor_upper"`
	IndexMap  []int `yaml:"index_map"`
}

// TransformConfig places a part in physical space for GLVis output.
type TransformConfig struct {
	Matrix []float64 `yaml:"matrix"`
	Origin []float64 `yaml:"origin"`
}

// loadConfig reads a grid description from path ("-" is stdin).
func loadConfig(path string) (*Config, error) {
	if path == "-" {
		return decodeConfig(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return decodeConfig(f)
}

// decodeConfig parses a description, rejecting unknown keys.
func decodeConfig(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c Config
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %w", errConfig, err)
	}
	if len(c.Parts) == 0 {
		return nil, fmt.Errorf("%w: no parts", errConfig)
	}

	return &c, nil
}

// build creates, populates and assembles a grid from c. On failure the
// grid is destroyed and the first error names the offending entry.
func (c *Config) build(opts ...grid.Option) (*grid.Grid, error) {
	g, err := grid.Create(grid.SelfCommunicator{}, c.NDim, len(c.Parts), opts...)
	if err != nil {
		return nil, err
	}
	if err = c.populate(g); err != nil {
		_ = g.Destroy()

		return nil, err
	}

	return g, nil
}

func (c *Config) populate(g *grid.Grid) error {
	for p, part := range c.Parts {
		for b, bx := range part.Boxes {
			if err := g.SetExtents(p, index(bx.Lower), index(bx.Upper)); err != nil {
				return fmt.Errorf("parts[%d].boxes[%d]: %w", p, b, err)
			}
		}
		for v, name := range part.Variables {
			vt, err := grid.ParseVarType(name)
			if err != nil {
				return fmt.Errorf("parts[%d].variables[%d]: %w", p, v, err)
			}
			if err = g.SetVariable(p, v, len(part.Variables), vt); err != nil {
				return fmt.Errorf("parts[%d].variables[%d]: %w", p, v, err)
			}
		}
		if part.Periodic != nil {
			if err := g.SetPeriodic(p, index(part.Periodic)); err != nil {
				return fmt.Errorf("parts[%d].periodic: %w", p, err)
			}
		}
	}
	for i, n := range c.Neighbors {
		err := g.SetNeighborBox(n.Part, index(n.Lower), index(n.Upper),
			n.NborPart, index(n.NborLower), index(n.NborUpper), index(n.IndexMap))
		if err != nil {
			return fmt.Errorf("neighbors[%d]: %w", i, err)
		}
	}
	if c.Ghost != nil {
		if err := g.SetNumGhost(index(c.Ghost)); err != nil {
			return fmt.Errorf("ghost: %w", err)
		}
	}

	return g.Assemble()
}

// index converts a YAML integer list to an index view; an absent list
// becomes the null view, which the grid rejects with a typed error.
func index(xs []int) *array.View[int32] {
	if xs == nil {
		return array.Null[int32]()
	}

	return grid.Index(xs...)
}

// transforms returns the per-part GLVis transforms, or nil when no part
// declares one. Parts without a transform get the identity.
func (c *Config) transforms() ([]glvis.Transform, error) {
	declared := false
	for _, p := range c.Parts {
		declared = declared || p.Transform != nil
	}
	if !declared {
		return nil, nil
	}
	out := make([]glvis.Transform, len(c.Parts))
	for i, p := range c.Parts {
		if p.Transform == nil {
			out[i] = identity(c.NDim)

			continue
		}
		if len(p.Transform.Matrix) != c.NDim*c.NDim || len(p.Transform.Origin) != c.NDim {
			return nil, fmt.Errorf("%w: parts[%d].transform needs %d matrix and %d origin entries",
				errConfig, i, c.NDim*c.NDim, c.NDim)
		}
		out[i] = glvis.Transform{T: p.Transform.Matrix, Origin: p.Transform.Origin}
	}

	return out, nil
}

func identity(dim int) glvis.Transform {
	t := glvis.Transform{T: make([]float64, dim*dim), Origin: make([]float64, dim)}
	for d := 0; d < dim; d++ {
		t.T[d*dim+d] = 1
	}

	return t
}
