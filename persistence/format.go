package persistence

import (
	"errors"
	"fmt"
	"math"
)

// Magic identifies result files.
var Magic = [4]byte{'C', 'G', 'M', 'X'}

// Version is the current file format version.
const Version uint16 = 1

// HeaderSize is the encoded size of FileHeader.
const HeaderSize = 104

// Upper bounds on decoded/stored bytes for each codec. An lz4 block expands
// at most 255x; a zstd RLE block of 4 bytes can expand to 128 KiB.
const (
	lz4MaxRatio  = 255
	zstdMaxRatio = 32 << 10
)

var (
	ErrInvalidMagic   = errors.New("persistence: invalid magic number")
	ErrInvalidVersion = errors.New("persistence: unsupported version")
	ErrTruncated      = errors.New("persistence: truncated file")
	ErrCorrupt        = errors.New("persistence: corrupt file")
)

// FileHeader is the fixed-size header at the start of every result file.
type FileHeader struct {
	Magic       [4]byte
	Version     uint16
	Compression Compression
	Flags       uint8 // reserved, zero
	Count       uint64
	Checksum    uint32
	Reserved    uint32
	PayloadSize uint64 // stored payload bytes
	BitmapSize  uint64
	Stats       StatsBlock
}

// StatsBlock mirrors pipeline.Stats with fixed-width fields.
type StatsBlock struct {
	Workers          uint64
	Lenses           uint64
	Sources          uint64
	Pairs            uint64
	EmptyLenses      uint64
	DegenerateLenses uint64
	Masked           uint64
	NonFinite        uint64
}

func (h *FileHeader) validate() error {
	if h.Magic != Magic {
		return fmt.Errorf("%w: %q", ErrInvalidMagic, h.Magic[:])
	}
	if h.Version != Version {
		return fmt.Errorf("%w: %d", ErrInvalidVersion, h.Version)
	}
	if !h.Compression.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(h.Compression))
	}
	if h.Count > 1<<40 {
		return fmt.Errorf("%w: implausible count %d", ErrCorrupt, h.Count)
	}
	if h.Compression == CompressionNone && h.PayloadSize != h.Count*8 {
		return fmt.Errorf("%w: payload %d bytes for %d values", ErrCorrupt, h.PayloadSize, h.Count)
	}
	if limit := maxDecodedSize(h.Compression, h.PayloadSize); h.Count*8 > limit {
		return fmt.Errorf("%w: %d values cannot decode from %d %s bytes",
			ErrCorrupt, h.Count, h.PayloadSize, h.Compression)
	}
	return nil
}

func maxDecodedSize(c Compression, payload uint64) uint64 {
	ratio := uint64(1)
	switch c {
	case CompressionLZ4:
		ratio = lz4MaxRatio
	case CompressionZstd:
		ratio = zstdMaxRatio
	}
	if payload > math.MaxUint64/ratio {
		return math.MaxUint64
	}
	return payload * ratio
}
