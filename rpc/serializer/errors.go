package serializer

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Protocol Error Kinds
// --------------------------------------------------------------------------

// The sentinel errors below identify the kind of a ProtocolError.
// Use errors.Is to check for them.
var (
	// ErrTruncated is returned when the stream ended before the length header
	// or the declared payload length was satisfied
	ErrTruncated = errors.New("truncated")
	// ErrUnknownVariant is returned when the tag byte is outside the defined set
	ErrUnknownVariant = errors.New("unknown variant")
	// ErrEncoding is returned when text is not valid UTF-8
	ErrEncoding = errors.New("invalid encoding")
	// ErrMalformed is returned when a payload has the wrong shape for its tag
	// (missing tag byte, fixed width field of the wrong length, ...)
	ErrMalformed = errors.New("malformed")
	// ErrFrameTooLarge is returned when a frame exceeds the allowed payload size
	ErrFrameTooLarge = errors.New("frame too large")
)

// ProtocolError describes why a frame could not be encoded or decoded
type ProtocolError struct {
	Kind error  // one of the sentinel errors of this package
	Msg  string // details
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error (%s): %s", e.Kind, e.Msg)
}

// Unwrap returns the kind, so errors.Is(err, ErrTruncated) works
func (e *ProtocolError) Unwrap() error {
	return e.Kind
}

// newProtocolError creates a ProtocolError of the given kind
func newProtocolError(kind error, format string, args ...interface{}) error {
	return &ProtocolError{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
	}
}
