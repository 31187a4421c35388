// Package glvis writes meshes and grid functions in the MFEM v1.0 text
// format read by the GLVis visualization tool.
//
// Structured meshes (PrintGlobalSquareMesh, PrintLocalSquareMesh,
// PrintLocalRhombusMesh, PrintLocalCubicMesh) are written directly from
// their sizes. PrintGridMesh and PrintGridFunction work from a recorded
// grid.Topology: every cell of every box becomes an element with its own
// vertices, optionally mapped through a per-part affine Transform, and
// cell or node values are read from box-bounded array views.
//
// Writers take an io.Writer; WriteFile and FileName produce the
// "prefix.NNNNNN" per-process files GLVis expects, and PrintData the
// companion "np" file.
package glvis
