// Package extinction evaluates the extinction a single lens galaxy imparts on
// the sources behind it.
package extinction

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/cgmdust/cosmology"
	"github.com/hupe1980/cgmdust/dust"
)

// ErrLengthMismatch is returned when separations and source redshifts differ
// in length.
var ErrLengthMismatch = errors.New("extinction: separation/redshift length mismatch")

// Params describes one lens.
type Params struct {
	// Redshift of the lens.
	Redshift float64
	// Amplitude is the profile normalization A0 in magnitudes.
	Amplitude float64
	// R200Kpc is the halo virial radius in kpc.
	R200Kpc float64
	// Alpha is the (negative) profile exponent.
	Alpha float64
}

// Counts tallies pairs that were forced to zero.
type Counts struct {
	// Masked counts sources not strictly behind the lens.
	Masked int
	// NonFinite counts NaN or infinite raw values.
	NonFinite int
}

// Add accumulates o into c.
func (c *Counts) Add(o Counts) {
	c.Masked += o.Masked
	c.NonFinite += o.NonFinite
}

// Contributions computes, for each candidate source i, the extinction in
// magnitudes caused by the lens described by p:
//
//	A0 * (sep[i] * D_A(z_lens) / (0.91 * R200))^alpha
//
// angSep holds angular separations in radians. Sources that are not strictly
// behind the lens get exactly zero, as does any non-finite value (for example
// a source at zero separation with alpha < 0).
//
// The result is written to dst, which is grown if needed, and returned.
func Contributions(dst []float64, p Params, dist cosmology.Provider, angSep, zSources []float64) ([]float64, error) {
	if len(angSep) == 0 {
		return ContributionsAt(dst, p, 0, angSep, zSources)
	}
	return ContributionsAt(dst, p, dist.AngularDiameterDistance(p.Redshift), angSep, zSources)
}

// ContributionsAt is Contributions with the lens distance dA (kpc) already
// resolved. Callers that need the zeroing tallies use ContributionsCount.
func ContributionsAt(dst []float64, p Params, dA float64, angSep, zSources []float64) ([]float64, error) {
	dst, _, err := ContributionsCount(dst, p, dA, angSep, zSources)
	return dst, err
}

// ContributionsCount is ContributionsAt that also reports how many pairs were
// masked or sanitized.
func ContributionsCount(dst []float64, p Params, dA float64, angSep, zSources []float64) ([]float64, Counts, error) {
	var c Counts
	if len(angSep) != len(zSources) {
		return dst[:0], c, fmt.Errorf("%w: %d separations, %d redshifts", ErrLengthMismatch, len(angSep), len(zSources))
	}
	if cap(dst) < len(angSep) {
		dst = make([]float64, len(angSep))
	}
	dst = dst[:len(angSep)]

	impact := dust.EffectiveRadius(p.R200Kpc)
	for i, sep := range angSep {
		if !(p.Redshift < zSources[i]) {
			dst[i] = 0
			c.Masked++
			continue
		}
		v := p.Amplitude * math.Pow(sep*dA/impact, p.Alpha)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			dst[i] = 0
			c.NonFinite++
			continue
		}
		dst[i] = v
	}
	return dst, c, nil
}

// Value is the scalar form of Contributions.
func Value(p Params, dist cosmology.Provider, angSep, zSource float64) float64 {
	if !(p.Redshift < zSource) {
		return 0
	}
	physical := angSep * dist.AngularDiameterDistance(p.Redshift)
	return Sanitize(p.Amplitude * math.Pow(physical/dust.EffectiveRadius(p.R200Kpc), p.Alpha))
}

// Sanitize maps NaN and ±Inf to zero and returns finite values unchanged.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
