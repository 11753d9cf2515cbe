package persistence

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the payload codec.
type Compression uint8

const (
	CompressionNone Compression = 0
	// CompressionLZ4 is fast block compression.
	CompressionLZ4 Compression = 1
	// CompressionZstd trades speed for ratio.
	CompressionZstd Compression = 2
)

// ErrUnknownCompression is returned for an unsupported codec.
var ErrUnknownCompression = errors.New("persistence: unknown compression")

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// Valid reports whether c is a known codec.
func (c Compression) Valid() bool {
	return c <= CompressionZstd
}

// ParseCompression parses the String form of a codec. The empty string
// selects CompressionNone.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd", "zstandard":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCompression, s)
	}
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
}

// compress returns the encoded payload and the codec actually used. Data
// that does not shrink is stored uncompressed.
func compress(data []byte, c Compression) ([]byte, Compression, error) {
	if c == CompressionNone || len(data) == 0 {
		return data, CompressionNone, nil
	}

	var out []byte
	switch c {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, 0, err
		}
		out = buf[:n]
	case CompressionZstd:
		enc, err := getZstdEncoder()
		if err != nil {
			return nil, 0, err
		}
		out = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, 0, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(c))
	}

	if len(out) == 0 || len(out) >= len(data) {
		return data, CompressionNone, nil
	}
	return out, c, nil
}

// decompress decodes data into exactly size bytes.
func decompress(data []byte, c Compression, size int) ([]byte, error) {
	switch c {
	case CompressionNone:
		if len(data) != size {
			return nil, fmt.Errorf("%w: payload %d bytes, want %d", ErrCorrupt, len(data), size)
		}
		return data, nil
	case CompressionLZ4:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %w", ErrCorrupt, err)
		}
		if n != size {
			return nil, fmt.Errorf("%w: lz4 decoded %d bytes, want %d", ErrCorrupt, n, size)
		}
		return out, nil
	case CompressionZstd:
		dec, err := getZstdDecoder()
		if err != nil {
			return nil, err
		}
		defer zstdDecoderPool.Put(dec)

		var fh zstd.Header
		if err := fh.Decode(data); err != nil {
			return nil, fmt.Errorf("%w: zstd: %w", ErrCorrupt, err)
		}
		var dst []byte
		if fh.HasFCS {
			if fh.FrameContentSize != uint64(size) {
				return nil, fmt.Errorf("%w: zstd frame holds %d bytes, want %d", ErrCorrupt, fh.FrameContentSize, size)
			}
			dst = make([]byte, 0, size)
		}

		out, err := dec.DecodeAll(data, dst)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %w", ErrCorrupt, err)
		}
		if len(out) != size {
			return nil, fmt.Errorf("%w: zstd decoded %d bytes, want %d", ErrCorrupt, len(out), size)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(c))
	}
}
