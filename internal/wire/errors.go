package wire

import "errors"

// Codec-layer error kinds, per the wire format's error taxonomy. These are
// sentinel values so callers can compare with errors.Is even after a higher
// layer wraps them with field/offset context.
var (
	// ErrOutOfBounds is returned when fewer bytes remain in the buffer than
	// a scalar or length-prefixed value requires.
	ErrOutOfBounds = errors.New("wire: out of bounds")

	// ErrInvalidUtf8 is returned when a string payload is not valid UTF-8.
	ErrInvalidUtf8 = errors.New("wire: invalid utf-8")

	// ErrInvalidBool is returned in strict mode when a bool byte is neither
	// 0x00 nor 0x01.
	ErrInvalidBool = errors.New("wire: invalid bool byte")
)
