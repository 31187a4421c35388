// Package hypre is the Go side of a semi-structured grid interface:
// bounded multi-dimensional array views that cross the boundary to a
// native solver engine, and the grid operations that consume them.
//
// What is in the module?
//
//	• Array views: any rank, arbitrary inclusive bounds, row- or
//	  column-major storage, strided and rank-reducing slices
//	• Explicit lifetimes: reference-counted owning views, borrowed
//	  slices that go stale when their storage is freed or replaced
//	• Conversions: nested Go slices and arrays, flat slices, and two
//	  wire formats (protobuf-style tagged fields, deterministic CBOR)
//	• Semi-structured grids: parts, boxes, variables, neighbor boxes,
//	  periodicity and ghost layers, validated before reaching the engine
//	• GLVis output for structured meshes and grid functions
//
// Packages:
//
//	lifetime/   reference-counted handles with generation checks
//	array/      View[T], slicing, smart copy, nested conversion
//	array/wire/ ProtoCodec, CBORCodec and length-prefixed frames
//	grid/       Grid, Engine, Recorder, capability kinds
//	glvis/      MFEM mesh and grid function writers
//	cmd/sstructctl/ YAML grid descriptions: inspect, export, encode
//
// Quick ASCII example, two parts glued along one edge:
//
//	    ┌───────┐┌───────┐
//	    │ part0 ││ part1 │
//	    └───────┘└───────┘
//
//	go get github.com/acolinisi/hypre/array
package hypre
