package persistence

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cgmdust/pipeline"
	"github.com/hupe1980/cgmdust/testutil"
)

func sampleResult(n int) *pipeline.Result {
	rng := testutil.NewRNG(1)
	ext := make([]float64, n)
	affected := roaring.New()
	for i := range ext {
		// Sparse, like real runs: most sources see no lens.
		if rng.Intn(4) == 0 {
			ext[i] = rng.Float64() * 1e-3
			affected.Add(uint32(i))
		}
	}
	return &pipeline.Result{
		Extinction: ext,
		Affected:   affected,
		Stats: pipeline.Stats{
			Workers:         4,
			Lenses:          12,
			Sources:         n,
			Pairs:           99,
			EmptyLenses:     2,
			Masked:          17,
			AffectedSources: int(affected.GetCardinality()),
		},
	}
}

func TestHeaderSize(t *testing.T) {
	assert.Equal(t, HeaderSize, binary.Size(FileHeader{}))
}

func TestEncodeDecode(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(c.String(), func(t *testing.T) {
			want := sampleResult(5000)

			data, err := Marshal(want, c)
			require.NoError(t, err)

			h, err := ReadHeader(data)
			require.NoError(t, err)
			assert.Equal(t, c, h.Compression)
			assert.Equal(t, uint64(5000), h.Count)
			if c != CompressionNone {
				assert.Less(t, h.PayloadSize, uint64(5000*8))
			}

			got, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, want.Extinction, got.Extinction)
			assert.True(t, want.Affected.Equals(got.Affected))
			assert.Equal(t, want.Stats, got.Stats)
		})
	}
}

func TestEncode_SpecialValues(t *testing.T) {
	res := &pipeline.Result{Extinction: []float64{0, math.SmallestNonzeroFloat64, math.MaxFloat64, 1.8e-3}}

	data, err := Marshal(res, CompressionZstd)
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, res.Extinction, got.Extinction)
	assert.True(t, got.Affected.IsEmpty())
}

func TestEncode_Incompressible(t *testing.T) {
	rng := testutil.NewRNG(2)
	res := &pipeline.Result{Extinction: rng.Uniform(16, 0, 1), Affected: roaring.New()}

	data, err := Marshal(res, CompressionLZ4)
	require.NoError(t, err)
	h, err := ReadHeader(data)
	require.NoError(t, err)
	assert.Equal(t, CompressionNone, h.Compression)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, res.Extinction, got.Extinction)
}

func TestEncode_Empty(t *testing.T) {
	data, err := Marshal(&pipeline.Result{Extinction: []float64{}}, CompressionZstd)
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, got.Extinction)
}

func TestDecode_Errors(t *testing.T) {
	data, err := Marshal(sampleResult(100), CompressionNone)
	require.NoError(t, err)

	t.Run("truncated header", func(t *testing.T) {
		_, err := Decode(data[:10])
		assert.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("truncated body", func(t *testing.T) {
		_, err := Decode(data[:len(data)-1])
		assert.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("magic", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[0] = 'X'
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrInvalidMagic)
	})

	t.Run("version", func(t *testing.T) {
		bad := bytes.Clone(data)
		binary.LittleEndian.PutUint16(bad[4:], 99)
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrInvalidVersion)
	})

	t.Run("compression", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[6] = 9
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrUnknownCompression)
	})

	t.Run("flipped payload bit", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[HeaderSize+3] ^= 0x10
		_, err := Decode(bad)
		assert.True(t, IsChecksumMismatch(err))
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("oversized lz4 count", func(t *testing.T) {
		bad := bytes.Clone(data[:HeaderSize+16])
		bad[6] = byte(CompressionLZ4)
		binary.LittleEndian.PutUint64(bad[8:], 1<<34)
		binary.LittleEndian.PutUint64(bad[24:], 16)
		binary.LittleEndian.PutUint64(bad[32:], 0)
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrCorrupt)

		_, err = ReadHeader(bad)
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("oversized zstd count", func(t *testing.T) {
		bad := bytes.Clone(data[:HeaderSize+16])
		bad[6] = byte(CompressionZstd)
		binary.LittleEndian.PutUint64(bad[8:], 1<<30)
		binary.LittleEndian.PutUint64(bad[24:], 16)
		binary.LittleEndian.PutUint64(bad[32:], 0)
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("zstd frame size mismatch", func(t *testing.T) {
		zd, err := Marshal(sampleResult(1000), CompressionZstd)
		require.NoError(t, err)
		h, err := ReadHeader(zd)
		require.NoError(t, err)
		require.Equal(t, CompressionZstd, h.Compression)

		binary.LittleEndian.PutUint64(zd[8:], 1001)
		_, err = Decode(zd)
		assert.ErrorIs(t, err, ErrCorrupt)
		assert.False(t, IsChecksumMismatch(err))
	})

	t.Run("corrupt zstd", func(t *testing.T) {
		zd, err := Marshal(sampleResult(1000), CompressionZstd)
		require.NoError(t, err)
		zd[HeaderSize+5] ^= 0xff
		_, err = Decode(zd)
		assert.ErrorIs(t, err, ErrCorrupt)
	})
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	c, err := ParseCompression("")
	require.NoError(t, err)
	assert.Equal(t, CompressionNone, c)

	_, err = ParseCompression("brotli")
	assert.ErrorIs(t, err, ErrUnknownCompression)
	assert.False(t, Compression(7).Valid())
	assert.Equal(t, "Compression(7)", Compression(7).String())
}

func TestChecksum(t *testing.T) {
	assert.Equal(t, Checksum([]byte("hello world")), Checksum([]byte("hello "), []byte("world")))
	assert.Equal(t, uint32(0), Checksum())
}
