package glvis

import (
	"fmt"
	"io"
)

// printer keeps the first write error so writers can print unconditionally
// and check once at the end.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// header writes the mesh preamble up to the element count.
func (p *printer) header(dim, nelem int) {
	p.printf("MFEM mesh v1.0\n\ndimension\n%d\n\nelements\n%d\n", dim, nelem)
}

// vertices writes the (empty) boundary section and the vertex preamble.
func (p *printer) vertices(dim, nvert int) {
	p.printf("\nboundary\n0\n\nvertices\n%d\n%d\n", nvert, dim)
}

// point writes one coordinate line.
func (p *printer) point(xs ...float64) {
	for i, x := range xs {
		if i > 0 {
			p.printf(" ")
		}
		p.printf("%.14e", x)
	}
	p.printf("\n")
}

// element writes one element line: attribute 1, geometry, vertex ids.
func (p *printer) element(geom int, verts ...int) {
	p.printf("1 %d", geom)
	for _, v := range verts {
		p.printf(" %d", v)
	}
	p.printf("\n")
}

// MFEM geometry ids.
const (
	geomSquare = 3
	geomCube   = 5
)
