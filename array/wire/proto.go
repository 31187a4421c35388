// SPDX-License-Identifier: MIT

package wire

import (
	"fmt"
	"math"

	"github.com/acolinisi/hypre/array"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the view message.
//
//	message View {
//	  uint64 rank = 1;
//	  uint32 order = 2;
//	  repeated sint64 lower = 3 [packed = true];
//	  repeated sint64 upper = 4 [packed = true];
//	  bytes  data = 5;             // packed numeric elements
//	  repeated string strings = 6; // string elements
//	}
const (
	fieldRank    protowire.Number = 1
	fieldOrder   protowire.Number = 2
	fieldLower   protowire.Number = 3
	fieldUpper   protowire.Number = 4
	fieldData    protowire.Number = 5
	fieldStrings protowire.Number = 6
)

// ProtoCodec encodes views of float64, float32, int, int32, int64, uint8,
// bool or string elements with protowire.
type ProtoCodec[T any] struct{}

// Name returns "proto".
func (ProtoCodec[T]) Name() string { return NameProto }

// Marshal encodes v. The null view encodes as rank 0.
// Errors: ErrUnsupportedElement, array.ErrLifetimeViolation.
func (ProtoCodec[T]) Marshal(v *array.View[T]) ([]byte, error) {
	b := protowire.AppendTag(nil, fieldRank, protowire.VarintType)
	if v.IsNull() {
		return protowire.AppendVarint(b, 0), nil
	}
	vals, err := v.Values()
	if err != nil {
		return nil, fmt.Errorf("wire.ProtoCodec.Marshal: %w", err)
	}
	lower, upper := v.Bounds()

	b = protowire.AppendVarint(b, uint64(len(lower)))
	b = protowire.AppendTag(b, fieldOrder, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(v.Order()))
	b = appendPackedInts(b, fieldLower, lower)
	b = appendPackedInts(b, fieldUpper, upper)
	if b, err = appendElems(b, vals); err != nil {
		return nil, fmt.Errorf("wire.ProtoCodec.Marshal: %w", err)
	}

	return b, nil
}

// Unmarshal decodes buf into a fresh owning view. Unknown fields are
// skipped; repeated data fields are concatenated.
// Errors: ErrMalformed, ErrUnsupportedElement, array.ErrInvalidBounds.
func (ProtoCodec[T]) Unmarshal(buf []byte, opts ...array.Option) (*array.View[T], error) {
	var (
		rank, order  uint64
		lower, upper []int
		data         []byte
		strs         []string
	)
	for len(buf) > 0 {
		num, typ, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return nil, malformed(protowire.ParseError(n))
		}
		buf = buf[n:]

		var err error
		switch {
		case num == fieldRank && typ == protowire.VarintType:
			rank, n = protowire.ConsumeVarint(buf)
		case num == fieldOrder && typ == protowire.VarintType:
			order, n = protowire.ConsumeVarint(buf)
		case (num == fieldLower || num == fieldUpper) && typ == protowire.BytesType:
			var p []byte
			p, n = protowire.ConsumeBytes(buf)
			if n < 0 {
				break
			}
			var xs []int
			xs, err = unpackInts(p)
			if num == fieldLower {
				lower = append(lower, xs...)
			} else {
				upper = append(upper, xs...)
			}
		case num == fieldData && typ == protowire.BytesType:
			var p []byte
			p, n = protowire.ConsumeBytes(buf)
			data = append(data, p...)
		case num == fieldStrings && typ == protowire.BytesType:
			var s string
			s, n = protowire.ConsumeString(buf)
			strs = append(strs, s)
		default:
			n = protowire.ConsumeFieldValue(num, typ, buf)
		}
		if n < 0 {
			return nil, malformed(protowire.ParseError(n))
		}
		if err != nil {
			return nil, malformed(err)
		}
		buf = buf[n:]
	}

	if rank == 0 {
		return array.Null[T](), nil
	}
	if order > uint64(array.ColumnMajor) {
		return nil, malformed(fmt.Errorf("order %d", order))
	}
	if rank != uint64(len(lower)) {
		return nil, malformed(fmt.Errorf("rank %d with %d lower bounds", rank, len(lower)))
	}
	vals, err := decodeElems[T](data, strs)
	if err != nil {
		return nil, fmt.Errorf("wire.ProtoCodec.Unmarshal: %w", err)
	}
	v, err := fromValues(lower, upper, array.Order(order), vals, opts)
	if err != nil {
		return nil, fmt.Errorf("wire.ProtoCodec.Unmarshal: %w", err)
	}

	return v, nil
}

func malformed(cause error) error {
	return fmt.Errorf("wire.ProtoCodec.Unmarshal: %v: %w", cause, ErrMalformed)
}

func appendPackedInts(b []byte, num protowire.Number, xs []int) []byte {
	var packed []byte
	for _, x := range xs {
		packed = protowire.AppendVarint(packed, protowire.EncodeZigZag(int64(x)))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)

	return protowire.AppendBytes(b, packed)
}

func unpackInts(p []byte) ([]int, error) {
	var xs []int
	for len(p) > 0 {
		u, n := protowire.ConsumeVarint(p)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		xs = append(xs, int(protowire.DecodeZigZag(u)))
		p = p[n:]
	}

	return xs, nil
}

// appendElems writes vals as one packed data field, or as repeated string
// fields for string elements.
func appendElems[T any](b []byte, vals []T) ([]byte, error) {
	var packed []byte
	switch xs := any(vals).(type) {
	case []float64:
		packed = make([]byte, 0, 8*len(xs))
		for _, x := range xs {
			packed = protowire.AppendFixed64(packed, math.Float64bits(x))
		}
	case []float32:
		packed = make([]byte, 0, 4*len(xs))
		for _, x := range xs {
			packed = protowire.AppendFixed32(packed, math.Float32bits(x))
		}
	case []int:
		for _, x := range xs {
			packed = protowire.AppendVarint(packed, protowire.EncodeZigZag(int64(x)))
		}
	case []int32:
		for _, x := range xs {
			packed = protowire.AppendVarint(packed, protowire.EncodeZigZag(int64(x)))
		}
	case []int64:
		for _, x := range xs {
			packed = protowire.AppendVarint(packed, protowire.EncodeZigZag(x))
		}
	case []uint8:
		packed = append(packed, xs...)
	case []bool:
		for _, x := range xs {
			packed = protowire.AppendVarint(packed, protowire.EncodeBool(x))
		}
	case []string:
		for _, s := range xs {
			b = protowire.AppendTag(b, fieldStrings, protowire.BytesType)
			b = protowire.AppendString(b, s)
		}

		return b, nil
	default:
		return nil, fmt.Errorf("%T: %w", vals, ErrUnsupportedElement)
	}
	b = protowire.AppendTag(b, fieldData, protowire.BytesType)

	return protowire.AppendBytes(b, packed), nil
}

// decodeElems is the inverse of appendElems.
func decodeElems[T any](data []byte, strs []string) ([]T, error) {
	var out []T
	var bad error
	switch p := any(&out).(type) {
	case *[]float64:
		if len(data)%8 != 0 {
			return nil, fmt.Errorf("%d data bytes for float64: %w", len(data), ErrMalformed)
		}
		for len(data) > 0 {
			u, n := protowire.ConsumeFixed64(data)
			*p = append(*p, math.Float64frombits(u))
			data = data[n:]
		}
	case *[]float32:
		if len(data)%4 != 0 {
			return nil, fmt.Errorf("%d data bytes for float32: %w", len(data), ErrMalformed)
		}
		for len(data) > 0 {
			u, n := protowire.ConsumeFixed32(data)
			*p = append(*p, math.Float32frombits(u))
			data = data[n:]
		}
	case *[]int:
		bad = consumeVarints(data, func(u uint64) { *p = append(*p, int(protowire.DecodeZigZag(u))) })
	case *[]int32:
		bad = consumeVarints(data, func(u uint64) { *p = append(*p, int32(protowire.DecodeZigZag(u))) })
	case *[]int64:
		bad = consumeVarints(data, func(u uint64) { *p = append(*p, protowire.DecodeZigZag(u)) })
	case *[]uint8:
		*p = append(*p, data...)
	case *[]bool:
		bad = consumeVarints(data, func(u uint64) { *p = append(*p, protowire.DecodeBool(u)) })
	case *[]string:
		*p = strs
	default:
		return nil, fmt.Errorf("%T: %w", out, ErrUnsupportedElement)
	}
	if bad != nil {
		return nil, fmt.Errorf("%v: %w", bad, ErrMalformed)
	}

	return out, nil
}

func consumeVarints(data []byte, emit func(uint64)) error {
	for len(data) > 0 {
		u, n := protowire.ConsumeVarint(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		emit(u)
		data = data[n:]
	}

	return nil
}
