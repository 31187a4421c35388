// SPDX-License-Identifier: MIT

package glvis

import (
	"fmt"
	"io"
	"math"
)

// PrintGlobalSquareMesh writes an n x n mesh of squares covering the unit
// square.
// Errors: ErrInvalidMesh when n < 1, write errors.
func PrintGlobalSquareMesh(w io.Writer, n int) error {
	if n < 1 {
		return fmt.Errorf("glvis.PrintGlobalSquareMesh(%d): %w", n, ErrInvalidMesh)
	}

	return PrintLocalSquareMesh(w, n, n, 1.0/float64(n), 0, 0)
}

// PrintLocalSquareMesh writes an nx x ny mesh of squares of size h with
// its lower-left corner at (x0, y0).
// Errors: ErrInvalidMesh when nx, ny < 1 or h <= 0, write errors.
func PrintLocalSquareMesh(w io.Writer, nx, ny int, h, x0, y0 float64) error {
	if nx < 1 || ny < 1 || !(h > 0) {
		return fmt.Errorf("glvis.PrintLocalSquareMesh(%d, %d, %g): %w", nx, ny, h, ErrInvalidMesh)
	}

	return printQuadMesh(w, nx, ny, func(i, j int) (float64, float64) {
		return x0 + float64(i)*h, y0 + float64(j)*h
	})
}

// PrintLocalRhombusMesh writes an n x n mesh of rhombuses with angle gamma
// on the unit rhombus, rotated by gamma*id so that the meshes of
// consecutive processes fit together around the origin.
// Errors: ErrInvalidMesh when n < 1, write errors.
func PrintLocalRhombusMesh(w io.Writer, n, id int, gamma float64) error {
	if n < 1 {
		return fmt.Errorf("glvis.PrintLocalRhombusMesh(%d): %w", n, ErrInvalidMesh)
	}
	h := 1.0 / float64(n)
	rho := gamma * float64(id)
	sg, cg := math.Sincos(gamma)
	sr, cr := math.Sincos(rho)

	return printQuadMesh(w, n, n, func(i, j int) (float64, float64) {
		x := float64(i)*h + cg*float64(j)*h
		y := sg * float64(j) * h

		return cr*x - sr*y, sr*x + cr*y
	})
}

// printQuadMesh writes an nx x ny structured quadrilateral mesh whose
// vertex (i, j) sits at at(i, j).
func printQuadMesh(w io.Writer, nx, ny int, at func(i, j int) (float64, float64)) error {
	p := &printer{w: w}
	p.header(2, nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			v := i + j*(nx+1)
			p.element(geomSquare, v, v+1, v+1+(nx+1), v+(nx+1))
		}
	}
	p.vertices(2, (nx+1)*(ny+1))
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			p.point(at(i, j))
		}
	}

	return p.err
}

// PrintLocalCubicMesh writes an nx x ny x nz mesh of cubes of size h with
// its lowest corner at (x0, y0, z0).
// Errors: ErrInvalidMesh when a size is < 1 or h <= 0, write errors.
func PrintLocalCubicMesh(w io.Writer, nx, ny, nz int, h, x0, y0, z0 float64) error {
	if nx < 1 || ny < 1 || nz < 1 || !(h > 0) {
		return fmt.Errorf("glvis.PrintLocalCubicMesh(%d, %d, %d, %g): %w", nx, ny, nz, h, ErrInvalidMesh)
	}
	p := &printer{w: w}
	p.header(3, nx*ny*nz)
	sj, sk := nx+1, (nx+1)*(ny+1)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				v := i + j*sj + k*sk
				p.element(geomCube,
					v, v+1, v+1+sj, v+sj,
					v+sk, v+1+sk, v+1+sj+sk, v+sj+sk)
			}
		}
	}
	p.vertices(3, (nx+1)*(ny+1)*(nz+1))
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				p.point(x0+float64(i)*h, y0+float64(j)*h, z0+float64(k)*h)
			}
		}
	}

	return p.err
}
