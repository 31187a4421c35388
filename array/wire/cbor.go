// SPDX-License-Identifier: MIT

package wire

import (
	"fmt"

	"github.com/acolinisi/hypre/array"
	"github.com/fxamacker/cbor/v2"
)

// cborView is the CBOR shape of a view: a map keyed by small integers.
type cborView[T any] struct {
	Rank  int   `cbor:"1,keyasint"`
	Order uint8 `cbor:"2,keyasint,omitempty"`
	Lower []int `cbor:"3,keyasint,omitempty"`
	Upper []int `cbor:"4,keyasint,omitempty"`
	Data  []T   `cbor:"5,keyasint,omitempty"`
}

// decOptions rejects duplicate map keys so a view has one reading.
var decOptions = cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}

// CBORCodec encodes views with deterministic (core) CBOR. Any element
// type fxamacker/cbor can encode is accepted.
type CBORCodec[T any] struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// NewCBORCodec builds the encoding and decoding modes.
func NewCBORCodec[T any]() (CBORCodec[T], error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return CBORCodec[T]{}, fmt.Errorf("wire.NewCBORCodec: %w", err)
	}
	dec, err := decOptions.DecMode()
	if err != nil {
		return CBORCodec[T]{}, fmt.Errorf("wire.NewCBORCodec: %w", err)
	}

	return CBORCodec[T]{enc: enc, dec: dec}, nil
}

// Name returns "cbor".
func (CBORCodec[T]) Name() string { return NameCBOR }

// Marshal encodes v. The null view encodes as {1: 0}.
// Errors: ErrUnsupportedElement, array.ErrLifetimeViolation.
func (c CBORCodec[T]) Marshal(v *array.View[T]) ([]byte, error) {
	var msg cborView[T]
	if !v.IsNull() {
		vals, err := v.Values()
		if err != nil {
			return nil, fmt.Errorf("wire.CBORCodec.Marshal: %w", err)
		}
		msg.Lower, msg.Upper = v.Bounds()
		msg.Rank = len(msg.Lower)
		msg.Order = uint8(v.Order())
		msg.Data = vals
	}
	buf, err := c.encMode().Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("wire.CBORCodec.Marshal: %v: %w", err, ErrUnsupportedElement)
	}

	return buf, nil
}

// Unmarshal decodes buf into a fresh owning view.
// Errors: ErrMalformed, array.ErrInvalidBounds.
func (c CBORCodec[T]) Unmarshal(buf []byte, opts ...array.Option) (*array.View[T], error) {
	var msg cborView[T]
	if err := c.decMode().Unmarshal(buf, &msg); err != nil {
		return nil, fmt.Errorf("wire.CBORCodec.Unmarshal: %v: %w", err, ErrMalformed)
	}
	if msg.Rank == 0 {
		return array.Null[T](), nil
	}
	if msg.Rank < 0 || msg.Order > uint8(array.ColumnMajor) {
		return nil, fmt.Errorf("wire.CBORCodec.Unmarshal: rank %d order %d: %w", msg.Rank, msg.Order, ErrMalformed)
	}
	if len(msg.Lower) != msg.Rank {
		return nil, fmt.Errorf("wire.CBORCodec.Unmarshal: rank %d with %d lower bounds: %w", msg.Rank, len(msg.Lower), ErrMalformed)
	}
	v, err := fromValues(msg.Lower, msg.Upper, array.Order(msg.Order), msg.Data, opts)
	if err != nil {
		return nil, fmt.Errorf("wire.CBORCodec.Unmarshal: %w", err)
	}

	return v, nil
}

// encMode and decMode let the zero CBORCodec work with the same options
// NewCBORCodec builds.
func (c CBORCodec[T]) encMode() cbor.EncMode {
	if c.enc == nil {
		enc, _ := cbor.CoreDetEncOptions().EncMode()

		return enc
	}

	return c.enc
}

func (c CBORCodec[T]) decMode() cbor.DecMode {
	if c.dec == nil {
		dec, _ := decOptions.DecMode()

		return dec
	}

	return c.dec
}
