package geometry_test

import (
	"math"
	"sync"
	"testing"

	"github.com/hupe1980/cgmdust/geometry"
	"github.com/hupe1980/cgmdust/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKDTree(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		tree, err := geometry.NewKDTree(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, tree.Len())
		assert.Empty(t, tree.Radius(0, 0, 10))
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		_, err := geometry.NewKDTree([]float64{1, 2}, []float64{1})
		assert.ErrorIs(t, err, geometry.ErrLengthMismatch)
	})

	t.Run("NonFinite", func(t *testing.T) {
		_, err := geometry.NewKDTree([]float64{1, math.NaN()}, []float64{1, 2})
		assert.ErrorIs(t, err, geometry.ErrNonFinite)
		_, err = geometry.NewKDTree([]float64{1}, []float64{math.Inf(-1)})
		assert.ErrorIs(t, err, geometry.ErrNonFinite)
	})

	t.Run("InclusiveBoundary", func(t *testing.T) {
		tree, err := geometry.NewKDTree([]float64{0, 3, 10}, []float64{0, 4, 10})
		require.NoError(t, err)
		assert.Equal(t, []uint32{0, 1}, tree.Radius(0, 0, 5))
		assert.Equal(t, []uint32{0}, tree.Radius(0, 0, 4.999))
	})

	t.Run("InvalidRadius", func(t *testing.T) {
		tree, err := geometry.NewKDTree([]float64{0}, []float64{0})
		require.NoError(t, err)
		assert.Empty(t, tree.Radius(0, 0, -1))
		assert.Empty(t, tree.Radius(0, 0, math.NaN()))
		assert.Equal(t, []uint32{0}, tree.Radius(0, 0, 0))
	})

	t.Run("Duplicates", func(t *testing.T) {
		x := make([]float64, 50)
		y := make([]float64, 50)
		tree, err := geometry.NewKDTree(x, y)
		require.NoError(t, err)
		assert.Len(t, tree.Radius(0, 0, 0), 50)
		assert.Empty(t, tree.Radius(1, 1, 0.5))
	})

	t.Run("AppendRadius", func(t *testing.T) {
		tree, err := geometry.NewKDTree([]float64{0, 1, 2}, []float64{0, 0, 0})
		require.NoError(t, err)
		dst := []uint32{99}
		dst = tree.AppendRadius(dst, 2, 0, 1)
		assert.Equal(t, []uint32{99, 1, 2}, dst)
	})
}

func TestKDTree_MatchesBruteForce(t *testing.T) {
	rng := testutil.NewRNG(4711)

	tests := []struct {
		name string
		n    int
		ra   []float64
		dec  []float64
	}{
		{name: "Uniform", n: 2000},
		{name: "Clustered", n: 2000},
		{name: "Tiny", n: 5},
	}
	for i := range tests {
		switch tests[i].name {
		case "Clustered":
			tests[i].ra, tests[i].dec = rng.Clustered(tests[i].n, 12, 0.01, 150, 151, 2, 3)
		default:
			tests[i].ra = rng.Uniform(tests[i].n, 150, 151)
			tests[i].dec = rng.Uniform(tests[i].n, 2, 3)
		}
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := geometry.NewKDTree(tt.ra, tt.dec)
			require.NoError(t, err)
			require.Equal(t, tt.n, tree.Len())

			qra := rng.Uniform(200, 149.9, 151.1)
			qdec := rng.Uniform(200, 1.9, 3.1)
			radii := rng.Uniform(200, 0, 0.1)
			for q := range qra {
				want := testutil.BruteRadius(tt.ra, tt.dec, qra[q], qdec[q], radii[q])
				got := tree.Radius(qra[q], qdec[q], radii[q])
				if len(want) == 0 {
					assert.Empty(t, got)
					continue
				}
				assert.Equal(t, want, got, "query %d", q)
			}
		})
	}
}

func TestKDTree_ConcurrentQueries(t *testing.T) {
	rng := testutil.NewRNG(42)
	ra := rng.Uniform(5000, 0, 1)
	dec := rng.Uniform(5000, 0, 1)
	tree, err := geometry.NewKDTree(ra, dec)
	require.NoError(t, err)

	want := tree.Radius(0.5, 0.5, 0.05)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				assert.Equal(t, want, tree.Radius(0.5, 0.5, 0.05))
			}
		}()
	}
	wg.Wait()
}
