package dust

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMass(t *testing.T) {
	t.Run("Known", func(t *testing.T) {
		// 2000 * (1e10)^0.4 = 2000 * 1e4
		assert.InDelta(t, 2e7, Mass(10), 1e-6)
	})

	t.Run("Monotonic", func(t *testing.T) {
		assert.Less(t, Mass(9.5), Mass(10.5))
	})

	t.Run("SlopeScaling", func(t *testing.T) {
		// One dex in stellar mass is 10^0.4 in dust mass.
		ratio := Mass(11) / Mass(10)
		assert.InDelta(t, math.Pow(10, MassSlope), ratio, 1e-12)
	})
}

func TestMasses(t *testing.T) {
	in := []float64{9, 10, 11}
	out := Masses(nil, in)
	assert.Len(t, out, 3)
	for i, m := range in {
		assert.Equal(t, Mass(m), out[i])
	}

	buf := make([]float64, 0, 8)
	out = Masses(buf, in)
	assert.Len(t, out, 3)
	assert.Same(t, &buf[:1][0], &out[0], "expected buffer reuse")
}
