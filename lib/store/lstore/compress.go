package lstore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the codec a document blob is stored with.
// The value is written as the first byte of every blob.
type Compression uint8

const (
	CompressionNone Compression = 0
	CompressionLZ4  Compression = 1
	CompressionZstd Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses the name of a codec ("none", "lz4" or "zstd").
// The empty string selects CompressionNone.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q", name)
	}
}

// errIncompressible signals that the codec output is not smaller than the input
var errIncompressible = errors.New("data is incompressible")

// zstd encoders and decoders are safe for concurrent use
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("lstore: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("lstore: zstd decoder initialization failed: " + err.Error())
	}
}

// encodeBlob packs a document into the stored representation:
//
//	[codec:1][raw length:uvarint][data]
//
// If the codec cannot shrink the document it is stored uncompressed.
func encodeBlob(doc string, codec Compression) ([]byte, error) {
	raw := []byte(doc)

	data, used, err := compress(raw, codec)
	if errors.Is(err, errIncompressible) {
		data, used = raw, CompressionNone
	} else if err != nil {
		return nil, err
	}

	blob := make([]byte, 1, 1+binary.MaxVarintLen64+len(data))
	blob[0] = byte(used)
	blob = binary.AppendUvarint(blob, uint64(len(raw)))
	return append(blob, data...), nil
}

// decodeBlob reverses encodeBlob
func decodeBlob(blob []byte) (string, error) {
	if len(blob) < 1 {
		return "", errors.New("empty blob")
	}
	codec := Compression(blob[0])
	rawLen, n := binary.Uvarint(blob[1:])
	if n <= 0 {
		return "", errors.New("invalid blob length prefix")
	}
	data := blob[1+n:]

	switch codec {
	case CompressionNone:
		if uint64(len(data)) != rawLen {
			return "", fmt.Errorf("uncompressed blob: size %d does not match expected %d", len(data), rawLen)
		}
		return string(data), nil

	case CompressionLZ4:
		dst := make([]byte, rawLen)
		read, err := lz4.UncompressBlock(data, dst)
		if err != nil {
			return "", fmt.Errorf("lz4 decompress: %w", err)
		}
		if uint64(read) != rawLen {
			return "", fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, rawLen)
		}
		return string(dst), nil

	case CompressionZstd:
		dst, err := zstdDecoder.DecodeAll(data, make([]byte, 0, rawLen))
		if err != nil {
			return "", fmt.Errorf("zstd decompress: %w", err)
		}
		if uint64(len(dst)) != rawLen {
			return "", fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(dst), rawLen)
		}
		return string(dst), nil

	default:
		return "", fmt.Errorf("unsupported compression: %s", codec)
	}
}

// compress returns the compressed data and the codec that was actually applied
func compress(raw []byte, codec Compression) ([]byte, Compression, error) {
	switch codec {
	case CompressionNone:
		return raw, CompressionNone, nil

	case CompressionLZ4:
		if len(raw) == 0 {
			return nil, codec, errIncompressible
		}
		dst := make([]byte, lz4.CompressBlockBound(len(raw)))
		written, err := lz4.CompressBlock(raw, dst, nil)
		if err != nil {
			return nil, codec, fmt.Errorf("lz4 compress: %w", err)
		}
		// 0 means lz4 gave up on the input
		if written == 0 || written >= len(raw) {
			return nil, codec, errIncompressible
		}
		return dst[:written], codec, nil

	case CompressionZstd:
		out := zstdEncoder.EncodeAll(raw, nil)
		if len(out) >= len(raw) {
			return nil, codec, errIncompressible
		}
		return out, codec, nil

	default:
		return nil, codec, fmt.Errorf("unsupported compression: %s", codec)
	}
}
