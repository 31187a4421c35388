// SPDX-License-Identifier: MIT

package wire

import "errors"

var (
	// ErrUnsupportedElement is returned when a codec has no encoding for
	// the element type of the view.
	ErrUnsupportedElement = errors.New("wire: unsupported element type")

	// ErrMalformed indicates a payload that cannot describe a view:
	// truncated fields, bound vectors that disagree with the rank, or a
	// data length that disagrees with the bounds.
	ErrMalformed = errors.New("wire: malformed payload")

	// ErrFrameTooLarge indicates a length prefix above the reader limit.
	ErrFrameTooLarge = errors.New("wire: frame too large")

	// ErrUnknownCodec is returned by ByName for an unregistered name.
	ErrUnknownCodec = errors.New("wire: unknown codec")
)
