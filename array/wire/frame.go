// SPDX-License-Identifier: MIT

package wire

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protowire"
)

// DefaultMaxFrameSize bounds ReadFrame when the caller passes maxSize <= 0.
const DefaultMaxFrameSize = 64 << 20

// WriteFrame writes payload prefixed with its varint-encoded length.
func WriteFrame(w io.Writer, payload []byte) error {
	prefix := protowire.AppendVarint(nil, uint64(len(payload)))
	buf := make([]byte, len(prefix)+len(payload))
	copy(buf, prefix)
	copy(buf[len(prefix):], payload)
	_, err := w.Write(buf)

	return err
}

// ReadFrame reads one length-prefixed frame.
// Returns io.EOF when r is exhausted before the first prefix byte and
// io.ErrUnexpectedEOF when a frame is cut short.
func ReadFrame(r *bufio.Reader, maxSize int) ([]byte, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxFrameSize
	}
	prefix := make([]byte, 0, binary.MaxVarintLen64)
	for {
		c, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && len(prefix) > 0 {
				return nil, io.ErrUnexpectedEOF
			}

			return nil, err
		}
		prefix = append(prefix, c)
		if c < 0x80 {
			break
		}
		if len(prefix) == binary.MaxVarintLen64 {
			return nil, fmt.Errorf("wire.ReadFrame: length prefix: %w", ErrMalformed)
		}
	}
	size, n := protowire.ConsumeVarint(prefix)
	if err := protowire.ParseError(n); err != nil {
		return nil, fmt.Errorf("wire.ReadFrame: %v: %w", err, ErrMalformed)
	}
	if size > uint64(maxSize) {
		return nil, fmt.Errorf("wire.ReadFrame(%d > %d): %w", size, maxSize, ErrFrameTooLarge)
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}

		return nil, err
	}

	return buf, nil
}
