package persistence

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/cgmdust/internal/conv"
	"github.com/hupe1980/cgmdust/pipeline"
)

// Encode writes res to w using compression c.
func Encode(w io.Writer, res *pipeline.Result, c Compression) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(c))
	}

	raw := make([]byte, 8*len(res.Extinction))
	for i, v := range res.Extinction {
		binary.LittleEndian.PutUint64(raw[8*i:], math.Float64bits(v))
	}

	affected := res.Affected
	if affected == nil {
		affected = roaring.New()
	}
	affected.RunOptimize()
	bm, err := affected.ToBytes()
	if err != nil {
		return fmt.Errorf("encode affected bitmap: %w", err)
	}

	payload, used, err := compress(raw, c)
	if err != nil {
		return fmt.Errorf("compress payload: %w", err)
	}

	h := FileHeader{
		Magic:       Magic,
		Version:     Version,
		Compression: used,
		Count:       uint64(len(res.Extinction)),
		Checksum:    Checksum(raw, bm),
		PayloadSize: uint64(len(payload)),
		BitmapSize:  uint64(len(bm)),
		Stats:       statsBlock(res.Stats),
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}
	_, err = w.Write(bm)
	return err
}

// Marshal is Encode into a byte slice.
func Marshal(res *pipeline.Result, c Compression) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(HeaderSize + 8*len(res.Extinction))
	if err := Encode(&buf, res, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadHeader decodes and validates the header at the start of data.
func ReadHeader(data []byte) (FileHeader, error) {
	var h FileHeader
	if len(data) < HeaderSize {
		return h, fmt.Errorf("%w: %d bytes, header needs %d", ErrTruncated, len(data), HeaderSize)
	}
	if err := binary.Read(bytes.NewReader(data[:HeaderSize]), binary.LittleEndian, &h); err != nil {
		return h, err
	}
	return h, h.validate()
}

// Decode parses a result file. data is not retained.
func Decode(data []byte) (*pipeline.Result, error) {
	h, err := ReadHeader(data)
	if err != nil {
		return nil, err
	}

	body := data[HeaderSize:]
	if uint64(len(body)) < h.PayloadSize || uint64(len(body))-h.PayloadSize < h.BitmapSize {
		return nil, fmt.Errorf("%w: body %d bytes, header declares %d+%d",
			ErrTruncated, len(body), h.PayloadSize, h.BitmapSize)
	}
	payload := body[:h.PayloadSize]
	bm := body[h.PayloadSize : h.PayloadSize+h.BitmapSize]

	count, err := conv.Uint64ToInt(h.Count)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	raw, err := decompress(payload, h.Compression, count*8)
	if err != nil {
		return nil, err
	}
	if sum := Checksum(raw, bm); sum != h.Checksum {
		return nil, &ChecksumMismatchError{Expected: h.Checksum, Actual: sum}
	}

	ext := make([]float64, count)
	for i := range ext {
		ext[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[8*i:]))
	}

	affected := roaring.New()
	if _, err := affected.FromBuffer(bytes.Clone(bm)); err != nil {
		return nil, fmt.Errorf("%w: affected bitmap: %w", ErrCorrupt, err)
	}
	if affected.GetCardinality() > 0 && uint64(affected.Maximum()) >= h.Count {
		return nil, fmt.Errorf("%w: affected index %d out of range", ErrCorrupt, affected.Maximum())
	}

	return &pipeline.Result{
		Extinction: ext,
		Affected:   affected,
		Stats:      h.Stats.stats(int(affected.GetCardinality())),
	}, nil
}

func statsBlock(s pipeline.Stats) StatsBlock {
	return StatsBlock{
		Workers:          uint64(s.Workers),
		Lenses:           uint64(s.Lenses),
		Sources:          uint64(s.Sources),
		Pairs:            uint64(s.Pairs),
		EmptyLenses:      uint64(s.EmptyLenses),
		DegenerateLenses: uint64(s.DegenerateLenses),
		Masked:           uint64(s.Masked),
		NonFinite:        uint64(s.NonFinite),
	}
}

func (b StatsBlock) stats(affected int) pipeline.Stats {
	return pipeline.Stats{
		Workers:          int(b.Workers),
		Lenses:           int(b.Lenses),
		Sources:          int(b.Sources),
		Pairs:            int(b.Pairs),
		EmptyLenses:      int(b.EmptyLenses),
		DegenerateLenses: int(b.DegenerateLenses),
		Masked:           int(b.Masked),
		NonFinite:        int(b.NonFinite),
		AffectedSources:  affected,
	}
}
