package catalog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	const input = `# sources
ra, dec, redshift, mag_r
150.1, 2.2, 0.8, 22.5
150.2, 2.3, 1.1, 23.0
`
	t.Run("all columns", func(t *testing.T) {
		tbl, err := ReadCSV(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, []string{"ra", "dec", "redshift", "mag_r"}, tbl.Names())
		assert.Equal(t, 2, tbl.Len())

		mag, ok := tbl.Column("mag_r")
		require.True(t, ok)
		assert.Equal(t, []float64{22.5, 23.0}, mag)
	})

	t.Run("selected columns", func(t *testing.T) {
		tbl, err := ReadCSV(strings.NewReader(input), ColRedshift, ColRA)
		require.NoError(t, err)
		assert.Equal(t, []string{ColRedshift, ColRA}, tbl.Names())
		z, _ := tbl.Column(ColRedshift)
		assert.Equal(t, []float64{0.8, 1.1}, z)
	})

	t.Run("header only", func(t *testing.T) {
		tbl, err := ReadCSV(strings.NewReader("ra,dec\n"))
		require.NoError(t, err)
		assert.Equal(t, 0, tbl.Len())
		ra, ok := tbl.Column(ColRA)
		require.True(t, ok)
		assert.NotNil(t, ra)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrInvalidCatalog)

		_, err = ReadCSV(strings.NewReader(input), "mag_g")
		var mc *MissingColumnError
		assert.ErrorAs(t, err, &mc)

		_, err = ReadCSV(strings.NewReader("ra,ra\n1,2\n"))
		assert.ErrorIs(t, err, ErrInvalidCatalog)

		_, err = ReadCSV(strings.NewReader("ra,dec\n1,abc\n"))
		assert.ErrorIs(t, err, ErrInvalidCatalog)

		_, err = ReadCSV(strings.NewReader("ra,dec\n1\n"))
		assert.Error(t, err)
	})
}

func TestWriteCSV(t *testing.T) {
	tbl := NewTable()
	tbl.Set(ColRA, []float64{150.125, 1e-7})
	tbl.Set(ColExtinction, []float64{0, 0.0018})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl))
	assert.Equal(t, "ra,extinction\n150.125,0\n1e-07,0.0018\n", buf.String())

	back, err := ReadCSV(&buf)
	require.NoError(t, err)
	ext, _ := back.Column(ColExtinction)
	assert.Equal(t, []float64{0, 0.0018}, ext)

	tbl.Set(ColDec, []float64{1})
	assert.ErrorIs(t, WriteCSV(&buf, tbl), ErrInvalidCatalog)
}
