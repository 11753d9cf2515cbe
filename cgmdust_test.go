package cgmdust

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cgmdust/catalog"
	"github.com/hupe1980/cgmdust/cosmology"
	"github.com/hupe1980/cgmdust/dust"
	"github.com/hupe1980/cgmdust/geometry"
)

func testLenses() *catalog.Lenses {
	return &catalog.Lenses{
		Unit:     geometry.Degree,
		RA:       []float64{0},
		Dec:      []float64{0},
		Redshift: []float64{0.3},
		LogMStar: []float64{11},
		R200Kpc:  []float64{200},
		ThetaMax: []float64{0.05},
	}
}

func testSources() *catalog.Sources {
	return &catalog.Sources{
		Unit:     geometry.Degree,
		RA:       []float64{0.01, 0.01, 0.2},
		Dec:      []float64{0, 0, 0},
		Redshift: []float64{0.8, 0.1, 0.8},
	}
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		est, err := New()
		require.NoError(t, err)
		assert.Equal(t, dust.DefaultProfile, est.Profile())
		assert.NotNil(t, est.Cosmology())
	})

	t.Run("alpha", func(t *testing.T) {
		est, err := New(WithAlpha(-1.2))
		require.NoError(t, err)
		assert.Equal(t, -1.2, est.Profile().Alpha)
		assert.Equal(t, dust.DefaultProfile.RMinKpc, est.Profile().RMinKpc)
	})

	t.Run("invalid profile", func(t *testing.T) {
		for _, alpha := range []float64{0, 0.8, 2} {
			_, err := New(WithAlpha(alpha))
			assert.ErrorIs(t, err, ErrInvalidProfile, "alpha=%v", alpha)
			assert.ErrorIs(t, err, dust.ErrInvalidSlope)
		}

		_, err := New(WithProfile(dust.Profile{RMinKpc: -1, Alpha: -0.8, KV: 3.217}))
		assert.ErrorIs(t, err, ErrInvalidProfile)
	})

	t.Run("invalid cosmology", func(t *testing.T) {
		_, err := New(WithCosmology(nil, 0))
		assert.ErrorIs(t, err, ErrInvalidConfig)

		_, err = New(WithCosmology(cosmology.FlatLambdaCDM{H0: -70, Om0: 0.3}, 0))
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.ErrorIs(t, err, cosmology.ErrInvalidParameters)
	})

	t.Run("negative memory limit", func(t *testing.T) {
		_, err := New(WithMemoryLimit(-1))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("negative max workers", func(t *testing.T) {
		_, err := New(WithMaxWorkers(-1))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("nil options", func(t *testing.T) {
		est, err := New(nil, WithLogger(nil), WithMetricsCollector(nil))
		require.NoError(t, err)
		_, err = est.Estimate(t.Context(), testLenses(), testSources())
		require.NoError(t, err)
	})
}

func TestEstimate(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	est, err := New(WithWorkers(2), WithMetricsCollector(metrics))
	require.NoError(t, err)

	res, err := est.Estimate(t.Context(), testLenses(), testSources())
	require.NoError(t, err)
	require.Len(t, res.Extinction, 3)

	assert.Greater(t, res.Extinction[0], 0.0)
	assert.Equal(t, 0.0, res.Extinction[1])
	assert.Equal(t, 0.0, res.Extinction[2])
	assert.Equal(t, uint64(1), res.Affected.GetCardinality())
	assert.True(t, res.Affected.Contains(0))
	assert.Equal(t, 2, res.Stats.Pairs)
	assert.Equal(t, 1, res.Stats.Masked)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.EstimateCount)
	assert.Equal(t, int64(0), stats.EstimateErrors)
	assert.Equal(t, int64(1), stats.Lenses)
	assert.Equal(t, int64(3), stats.Sources)
	assert.Equal(t, int64(2), stats.Pairs)
}

func TestEstimate_CosmologyIsCached(t *testing.T) {
	est, err := New(WithCosmology(cosmology.Planck18, 16))
	require.NoError(t, err)

	for range 3 {
		_, err = est.Estimate(t.Context(), testLenses(), testSources())
		require.NoError(t, err)
	}

	cached, ok := est.Cosmology().(*cosmology.Cached)
	require.True(t, ok)
	hits, misses := cached.Stats()
	assert.Equal(t, int64(1), misses)
	assert.Positive(t, hits)
}

func TestEstimate_Errors(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	est, err := New(WithMetricsCollector(metrics), WithLogger(logger))
	require.NoError(t, err)

	t.Run("invalid value", func(t *testing.T) {
		lenses := testLenses()
		lenses.Redshift[0] = -1

		res, err := est.Estimate(t.Context(), lenses, testSources())
		assert.Nil(t, res)
		assert.ErrorIs(t, err, ErrInvalidCatalog)
		assert.ErrorIs(t, err, catalog.ErrInvalidCatalog)

		var ic *ErrInvalidColumn
		require.ErrorAs(t, err, &ic)
		assert.Equal(t, "lens", ic.Catalog)
		assert.Equal(t, catalog.ColRedshift, ic.Column)
	})

	t.Run("length mismatch", func(t *testing.T) {
		src := testSources()
		src.Dec = src.Dec[:2]

		_, err := est.Estimate(t.Context(), testLenses(), src)
		var ic *ErrInvalidColumn
		require.ErrorAs(t, err, &ic)
		assert.Equal(t, "source", ic.Catalog)
		assert.ErrorIs(t, err, ErrInvalidCatalog)
	})

	t.Run("unit mismatch", func(t *testing.T) {
		src := testSources()
		src.Unit = geometry.Arcminute

		_, err := est.Estimate(t.Context(), testLenses(), src)
		assert.ErrorIs(t, err, ErrInvalidCatalog)
		var ic *ErrInvalidColumn
		assert.False(t, errors.As(err, &ic))
	})

	t.Run("nil catalog", func(t *testing.T) {
		_, err := est.Estimate(t.Context(), nil, testSources())
		assert.ErrorIs(t, err, ErrInvalidCatalog)
	})

	stats := metrics.GetStats()
	assert.Equal(t, int64(4), stats.EstimateCount)
	assert.Equal(t, int64(4), stats.EstimateErrors)
	assert.Equal(t, int64(0), stats.Pairs)
	assert.Contains(t, buf.String(), `"msg":"estimate failed"`)
}

func TestEstimate_ThetaMaxCheck(t *testing.T) {
	lenses := testLenses()
	lenses.ThetaMax[0] = 1e-4

	est, err := New()
	require.NoError(t, err)
	_, err = est.Estimate(t.Context(), lenses, testSources())
	require.NoError(t, err)

	est, err = New(WithThetaMaxCheck(true))
	require.NoError(t, err)
	_, err = est.Estimate(t.Context(), lenses, testSources())
	assert.ErrorIs(t, err, ErrInvalidCatalog)

	var tm *catalog.ThetaMaxError
	assert.ErrorAs(t, err, &tm)
}

func TestEstimate_MemoryLimit(t *testing.T) {
	est, err := New(WithMemoryLimit(8))
	require.NoError(t, err)

	_, err = est.Estimate(t.Context(), testLenses(), testSources())
	assert.ErrorIs(t, err, ErrMemoryLimitExceeded)

	est, err = New(WithMemoryLimit(24), WithWorkers(8))
	require.NoError(t, err)

	res, err := est.Estimate(t.Context(), testLenses(), testSources())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.Workers)
}

func TestEstimate_MaxWorkers(t *testing.T) {
	est, err := New(WithWorkers(8), WithMaxWorkers(1))
	require.NoError(t, err)

	lenses := testLenses()
	for range 3 {
		lenses.RA = append(lenses.RA, 0)
		lenses.Dec = append(lenses.Dec, 0)
		lenses.Redshift = append(lenses.Redshift, 0.3)
		lenses.LogMStar = append(lenses.LogMStar, 11)
		lenses.R200Kpc = append(lenses.R200Kpc, 200)
		lenses.ThetaMax = append(lenses.ThetaMax, 0.05)
	}

	res, err := est.Estimate(t.Context(), lenses, testSources())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.Workers)
	assert.Equal(t, 8, res.Stats.Pairs)
}

func TestEstimate_Canceled(t *testing.T) {
	est, err := New()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err = est.Estimate(ctx, testLenses(), testSources())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEstimateTables(t *testing.T) {
	est, err := New()
	require.NoError(t, err)

	lt := testLenses().Table()
	st := testSources().Table()

	res, err := est.EstimateTables(t.Context(), lt, st, geometry.Degree)
	require.NoError(t, err)
	assert.Len(t, res.Extinction, 3)

	t.Run("missing column", func(t *testing.T) {
		bad := catalog.NewTable()
		bad.Set(catalog.ColRA, []float64{0})

		_, err := est.EstimateTables(t.Context(), lt, bad, geometry.Degree)
		var ic *ErrInvalidColumn
		require.ErrorAs(t, err, &ic)
		assert.Equal(t, catalog.ColDec, ic.Column)
		assert.ErrorIs(t, err, ErrInvalidCatalog)
	})

	t.Run("nil table", func(t *testing.T) {
		_, err := est.EstimateTables(t.Context(), nil, st, geometry.Degree)
		assert.ErrorIs(t, err, ErrInvalidCatalog)
	})
}
