package catalog

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cgmdust/cosmology"
	"github.com/hupe1980/cgmdust/geometry"
)

func lensTable() *Table {
	t := NewTable()
	t.Set(ColRA, []float64{150.0, 150.5})
	t.Set(ColDec, []float64{2.0, 2.1})
	t.Set(ColRedshift, []float64{0.3, 0.4})
	t.Set(ColLogMStar, []float64{10.5, 11})
	t.Set(ColR200, []float64{200, 250})
	t.Set(ColThetaMax, []float64{0.05, 0.05})
	return t
}

func TestLensesFromTable(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		l, err := LensesFromTable(lensTable(), geometry.Degree)
		require.NoError(t, err)
		assert.Equal(t, 2, l.Len())
		assert.Equal(t, []float64{200, 250}, l.R200Kpc)

		back := l.Table()
		assert.Equal(t, 2, back.Len())
		assert.True(t, back.Has(ColThetaMax))
	})

	t.Run("missing column", func(t *testing.T) {
		tbl := NewTable()
		tbl.Set(ColRA, []float64{1})
		tbl.Set(ColDec, []float64{1})
		_, err := LensesFromTable(tbl, geometry.Degree)

		var mc *MissingColumnError
		require.ErrorAs(t, err, &mc)
		assert.Equal(t, ColRedshift, mc.Column)
		assert.ErrorIs(t, err, ErrInvalidCatalog)
	})

	t.Run("ragged", func(t *testing.T) {
		tbl := lensTable()
		tbl.Set(ColR200, []float64{200})
		_, err := LensesFromTable(tbl, geometry.Degree)

		var lm *LengthMismatchError
		require.ErrorAs(t, err, &lm)
		assert.Equal(t, ColR200, lm.Column)
		assert.Equal(t, 2, lm.Expected)
		assert.Equal(t, 1, lm.Actual)
	})

	t.Run("invalid unit", func(t *testing.T) {
		_, err := LensesFromTable(lensTable(), geometry.Unit(42))
		var iu *InvalidUnitError
		require.ErrorAs(t, err, &iu)
		assert.ErrorIs(t, err, ErrInvalidCatalog)
	})
}

func TestLensesValidate(t *testing.T) {
	tests := []struct {
		name   string
		column string
		value  float64
	}{
		{"nan ra", ColRA, math.NaN()},
		{"inf dec", ColDec, math.Inf(1)},
		{"negative redshift", ColRedshift, -0.1},
		{"nan mass", ColLogMStar, math.NaN()},
		{"zero r200", ColR200, 0},
		{"negative r200", ColR200, -5},
		{"negative theta", ColThetaMax, -0.01},
		{"theta beyond small angle", ColThetaMax, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := lensTable()
			col, _ := tbl.Column(tt.column)
			col[1] = tt.value

			_, err := LensesFromTable(tbl, geometry.Degree)
			var iv *InvalidValueError
			require.ErrorAs(t, err, &iv)
			assert.Equal(t, tt.column, iv.Column)
			assert.Equal(t, 1, iv.Row)
		})
	}

	t.Run("theta in arcminutes", func(t *testing.T) {
		tbl := lensTable()
		tbl.Set(ColThetaMax, []float64{30, 59})
		_, err := LensesFromTable(tbl, geometry.Arcminute)
		require.NoError(t, err)

		tbl.Set(ColThetaMax, []float64{30, 61})
		_, err = LensesFromTable(tbl, geometry.Arcminute)
		assert.ErrorIs(t, err, ErrInvalidCatalog)
	})

	t.Run("empty", func(t *testing.T) {
		l := &Lenses{Unit: geometry.Degree}
		assert.NoError(t, l.Validate())
		assert.Equal(t, 0, l.Len())
	})
}

func TestDeriveThetaMax(t *testing.T) {
	dist := cosmology.Constant(1000)

	got := DeriveThetaMax(nil, []float64{10, 20}, []float64{0.1, 0.2}, dist, geometry.Radian)
	assert.InDeltaSlice(t, []float64{0.01, 0.02}, got, 1e-15)

	deg := DeriveThetaMax(got, []float64{10}, []float64{0.1}, dist, geometry.Degree)
	require.Len(t, deg, 1)
	assert.InDelta(t, 0.01*180/math.Pi, deg[0], 1e-12)
}

func TestCheckThetaMax(t *testing.T) {
	l, err := LensesFromTable(lensTable(), geometry.Degree)
	require.NoError(t, err)

	// 250 kpc at 1e6 kpc is about 0.014 degrees.
	assert.NoError(t, l.CheckThetaMax(cosmology.Constant(1e6)))

	err = l.CheckThetaMax(cosmology.Constant(1e5))
	var te *ThetaMaxError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 0, te.Row)
	assert.Equal(t, 2, te.Violations)
	assert.Greater(t, te.Required, te.ThetaMax)
	assert.True(t, errors.Is(err, ErrInvalidCatalog))

	// A derived column always passes.
	l.ThetaMax = DeriveThetaMax(nil, l.R200Kpc, l.Redshift, cosmology.Planck18, l.Unit)
	assert.NoError(t, l.CheckThetaMax(cosmology.Planck18))
}
