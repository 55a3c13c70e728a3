package serializer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"github.com/benjmnxu/ngram/rpc/common"
	"io"
	"math"
	"net"
)

// --------------------------------------------------------------------------
// Frames
// --------------------------------------------------------------------------

// WriteFrame writes a frame to w with the format:
// - 4 bytes: payload length (uint32, big endian)
// - N bytes: payload (tag byte + body)
func WriteFrame(w io.Writer, payload []byte) error {
	if uint64(len(payload)) > math.MaxUint32 {
		return newProtocolError(ErrFrameTooLarge, "payload of %d bytes exceeds the length field", len(payload))
	}

	header := make([]byte, lengthSize)
	binary.BigEndian.PutUint32(header, uint32(len(payload)))

	b := net.Buffers{header, payload}
	_, err := b.WriteTo(w)
	return err
}

// ReadFrame reads exactly one frame from r and returns its payload.
// A payload larger than maxSize is rejected before it is read (0 = common.DefaultMaxFrameSize).
// If the stream ends early an ErrTruncated error is returned; other I/O errors
// (e.g. deadlines) are returned wrapped.
func ReadFrame(r io.Reader, maxSize uint32) ([]byte, error) {
	if maxSize == 0 {
		maxSize = common.DefaultMaxFrameSize
	}

	// Read header
	header := make([]byte, lengthSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, wrapReadError(err, "length header")
	}

	contentLength := binary.BigEndian.Uint32(header)
	if contentLength > maxSize {
		return nil, newProtocolError(ErrFrameTooLarge, "declared length %d exceeds limit of %d bytes", contentLength, maxSize)
	}

	// Read data
	payload := make([]byte, contentLength)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, wrapReadError(err, fmt.Sprintf("payload of %d bytes", contentLength))
	}

	return payload, nil
}

// wrapReadError converts early end of stream into ErrTruncated
func wrapReadError(err error, what string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return newProtocolError(ErrTruncated, "stream ended before the %s was read", what)
	}
	return fmt.Errorf("failed to read %s: %w", what, err)
}

// --------------------------------------------------------------------------
// Request / Response Frames
// --------------------------------------------------------------------------

// EncodeRequest returns the complete frame (length header included) of a request
func EncodeRequest(req *common.Request) ([]byte, error) {
	payload, err := encodeRequestPayload(req)
	if err != nil {
		return nil, err
	}
	return frame(payload)
}

// EncodeResponse returns the complete frame (length header included) of a response
func EncodeResponse(resp *common.Response) ([]byte, error) {
	payload, err := encodeResponsePayload(resp)
	if err != nil {
		return nil, err
	}
	return frame(payload)
}

// WriteRequest encodes a request and writes the complete frame to w
func WriteRequest(w io.Writer, req *common.Request) error {
	payload, err := encodeRequestPayload(req)
	if err != nil {
		return err
	}
	return WriteFrame(w, payload)
}

// WriteResponse encodes a response and writes the complete frame to w
func WriteResponse(w io.Writer, resp *common.Response) error {
	payload, err := encodeResponsePayload(resp)
	if err != nil {
		return err
	}
	return WriteFrame(w, payload)
}

// ReadRequest reads one frame from r and decodes it as a request
func ReadRequest(r io.Reader, maxSize uint32) (*common.Request, error) {
	payload, err := ReadFrame(r, maxSize)
	if err != nil {
		return nil, err
	}
	return DecodeRequest(payload)
}

// ReadResponse reads one frame from r and decodes it as a response
func ReadResponse(r io.Reader, maxSize uint32) (*common.Response, error) {
	payload, err := ReadFrame(r, maxSize)
	if err != nil {
		return nil, err
	}
	return DecodeResponse(payload)
}

// frame prefixes a payload with its length
func frame(payload []byte) ([]byte, error) {
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, newProtocolError(ErrFrameTooLarge, "payload of %d bytes exceeds the length field", len(payload))
	}
	result := make([]byte, lengthSize+len(payload))
	binary.BigEndian.PutUint32(result[:lengthSize], uint32(len(payload)))
	copy(result[lengthSize:], payload)
	return result, nil
}
