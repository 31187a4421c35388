// SPDX-License-Identifier: MIT

package wire

import (
	"bufio"
	"fmt"
	"io"

	"github.com/acolinisi/hypre/array"
)

// Codec converts a view to bytes and back.
// Unmarshal always returns a fresh owning view (or the null view); opts
// configure its storage.
type Codec[T any] interface {
	Name() string
	Marshal(v *array.View[T]) ([]byte, error)
	Unmarshal(buf []byte, opts ...array.Option) (*array.View[T], error)
}

var (
	_ Codec[float64] = ProtoCodec[float64]{}
	_ Codec[float64] = CBORCodec[float64]{}
)

// Codec names accepted by ByName.
const (
	NameProto = "proto"
	NameCBOR  = "cbor"
)

// ByName returns the codec registered under name.
func ByName[T any](name string) (Codec[T], error) {
	switch name {
	case NameProto:
		return ProtoCodec[T]{}, nil
	case NameCBOR:
		return NewCBORCodec[T]()
	default:
		return nil, fmt.Errorf("wire.ByName(%q): %w", name, ErrUnknownCodec)
	}
}

// Encode marshals v with c and writes it as one frame.
func Encode[T any](w io.Writer, c Codec[T], v *array.View[T]) error {
	buf, err := c.Marshal(v)
	if err != nil {
		return err
	}

	return WriteFrame(w, buf)
}

// Decode reads one frame of at most maxSize bytes and unmarshals it with c.
func Decode[T any](r *bufio.Reader, c Codec[T], maxSize int, opts ...array.Option) (*array.View[T], error) {
	buf, err := ReadFrame(r, maxSize)
	if err != nil {
		return nil, err
	}

	return c.Unmarshal(buf, opts...)
}

// shapeTotal validates bounds against rank and returns the element count,
// or -1 when the count would exceed limit. The limit keeps a hostile
// payload from triggering a huge allocation.
func shapeTotal(rank int, lower, upper []int, limit int) (int, error) {
	if len(lower) != rank || len(upper) != rank {
		return 0, fmt.Errorf("rank %d with %d/%d bounds: %w", rank, len(lower), len(upper), ErrMalformed)
	}
	total := 1
	for d := 0; d < rank; d++ {
		n := upper[d] - lower[d] + 1
		if n <= 0 {
			return 0, fmt.Errorf("dimension %d has bounds [%d, %d]: %w", d, lower[d], upper[d], ErrMalformed)
		}
		if total > limit/n {
			return -1, nil
		}
		total *= n
	}

	return total, nil
}

// fromValues builds an owning view and fills it in logical row-major order.
func fromValues[T any](lower, upper []int, order array.Order, vals []T, opts []array.Option) (*array.View[T], error) {
	total, err := shapeTotal(len(lower), lower, upper, len(vals))
	if err != nil {
		return nil, err
	}
	if total != len(vals) {
		return nil, fmt.Errorf("%d values for bounds %v..%v: %w", len(vals), lower, upper, ErrMalformed)
	}
	v, err := array.New[T](lower, upper, order, opts...)
	if err != nil {
		return nil, err
	}
	k := 0
	if err = v.Apply(func(_ []int, _ T) T {
		x := vals[k]
		k++

		return x
	}); err != nil {
		return nil, err
	}

	return v, nil
}
