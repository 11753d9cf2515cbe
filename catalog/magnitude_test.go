package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyExtinction(t *testing.T) {
	tbl := NewTable()
	tbl.Set("mag_g", []float64{22, 23})
	tbl.Set("mag_r", []float64{21, 22})

	require.NoError(t, ApplyExtinction(tbl, []float64{0.5, 0}, "mag_g", "mag_r"))
	g, _ := tbl.Column("mag_g")
	r, _ := tbl.Column("mag_r")
	assert.Equal(t, []float64{22.5, 23}, g)
	assert.Equal(t, []float64{21.5, 22}, r)

	var mc *MissingColumnError
	assert.ErrorAs(t, ApplyExtinction(tbl, []float64{1, 1}, "mag_i"), &mc)

	var lm *LengthMismatchError
	assert.ErrorAs(t, ApplyExtinction(tbl, []float64{1}, "mag_g"), &lm)
	// Unchanged after a failed call.
	assert.Equal(t, []float64{22.5, 23}, g)
}

func TestExtinctedMagnitudes(t *testing.T) {
	out, err := ExtinctedMagnitudes([]float64{20, 21}, []float64{0.25, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{20.25, 21}, out)

	_, err = ExtinctedMagnitudes([]float64{20}, nil)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}
