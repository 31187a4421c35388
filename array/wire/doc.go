// SPDX-License-Identifier: MIT

// Package wire carries array views across a process or language boundary.
//
// Two codecs are provided:
//
//   - ProtoCodec: a protobuf-compatible tagged encoding built on
//     protowire. Bounds are packed zigzag varints; numeric data is packed
//     (fixed64 for float64, fixed32 for float32, zigzag varints for
//     integers); strings are repeated length-delimited fields.
//   - CBORCodec: a deterministic CBOR map with integer keys.
//
// Both send the element values in logical row-major order (last dimension
// fastest) together with the bounds and the order flag, so the receiver
// rebuilds a view with the same bounds and layout. The null view travels
// as rank 0 and decodes back to the null view.
//
// WriteFrame/ReadFrame add a varint length prefix so several encoded
// views can share one stream.
package wire
