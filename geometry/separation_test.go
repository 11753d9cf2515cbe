package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeparation(t *testing.T) {
	assert.Equal(t, 5.0, Separation(0, 0, 3, 4))
	assert.Equal(t, 5.0, Separation(3, 4, 0, 0))
	assert.Equal(t, 0.0, Separation(1.5, -2, 1.5, -2))
	assert.InDelta(t, 0.01, Separation(0, 0, 0.01, 0), 1e-17)
}

func TestUnit(t *testing.T) {
	t.Run("ToRadians", func(t *testing.T) {
		assert.InDelta(t, math.Pi, Degree.ToRadians(180), 1e-15)
		assert.InEpsilon(t, math.Pi/180, Arcminute.ToRadians(60), 1e-15)
		assert.Equal(t, 0.25, Radian.ToRadians(0.25))
	})

	t.Run("RoundTrip", func(t *testing.T) {
		for _, u := range []Unit{Degree, Arcminute, Radian} {
			assert.InEpsilon(t, 0.05, u.FromRadians(u.ToRadians(0.05)), 1e-15, u.String())
		}
	})

	t.Run("Parse", func(t *testing.T) {
		for _, u := range []Unit{Degree, Arcminute, Radian} {
			got, err := ParseUnit(u.String())
			require.NoError(t, err)
			assert.Equal(t, u, got)
			assert.True(t, u.Valid())
		}
		_, err := ParseUnit("parsec")
		assert.Error(t, err)
		assert.False(t, Unit(7).Valid())
		assert.Equal(t, "Unit(7)", Unit(7).String())
	})

	t.Run("SmallAngleLimit", func(t *testing.T) {
		assert.InDelta(t, 1.0, Degree.FromRadians(MaxSmallAngle), 1e-12)
	})
}
