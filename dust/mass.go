package dust

import "math"

const (
	// MassNormalization is the A coefficient of the stellar-to-dust relation
	// (Peek et al. 2015).
	MassNormalization = 2e3

	// MassSlope is the beta exponent of the stellar-to-dust relation.
	MassSlope = 0.4
)

// Mass returns the dust mass associated with a galaxy of the given
// log10 stellar mass: A * (10^logMStar)^beta.
func Mass(logMStar float64) float64 {
	return MassNormalization * math.Pow(math.Pow(10, logMStar), MassSlope)
}

// Masses evaluates Mass elementwise. If dst has enough capacity it is reused.
func Masses(dst, logMStar []float64) []float64 {
	dst = grow(dst, len(logMStar))
	for i, m := range logMStar {
		dst[i] = Mass(m)
	}
	return dst
}

func grow(dst []float64, n int) []float64 {
	if cap(dst) < n {
		return make([]float64, n)
	}
	return dst[:n]
}
