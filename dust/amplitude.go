package dust

import (
	"errors"
	"fmt"
	"math"
)

const (
	// EffectiveRadiusFactor scales R200 to the radius at which the profile
	// is normalized (Ménard et al. 2010).
	EffectiveRadiusFactor = 0.91

	kpcToPc = 1e3
)

var (
	// ErrInvalidSlope is returned for a non-negative profile exponent.
	ErrInvalidSlope = errors.New("dust: profile slope must be negative")

	// ErrInvalidRadius is returned for a non-positive or non-finite inner radius.
	ErrInvalidRadius = errors.New("dust: inner radius must be positive")

	// ErrInvalidCoefficient is returned for a non-positive extinction coefficient.
	ErrInvalidCoefficient = errors.New("dust: extinction coefficient must be positive")
)

// Profile holds the shape parameters of the extinction profile.
type Profile struct {
	// RMinKpc is the inner cutoff radius of the dust distribution in kpc.
	RMinKpc float64

	// Alpha is the power-law exponent of the profile. Must be negative.
	Alpha float64

	// KV is the V-band extinction coefficient (3.217 for SMC-type dust).
	KV float64
}

// DefaultProfile is the SMC-type dust profile used by Ménard et al. (2010).
var DefaultProfile = Profile{
	RMinKpc: 10,
	Alpha:   -0.8,
	KV:      3.217,
}

// Validate reports whether p describes a usable profile.
// A non-negative alpha is rejected; this also excludes the singular alpha = 2.
func (p Profile) Validate() error {
	if math.IsNaN(p.Alpha) || math.IsInf(p.Alpha, 0) || p.Alpha >= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidSlope, p.Alpha)
	}
	if math.IsNaN(p.RMinKpc) || math.IsInf(p.RMinKpc, 0) || p.RMinKpc <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidRadius, p.RMinKpc)
	}
	if math.IsNaN(p.KV) || math.IsInf(p.KV, 0) || p.KV <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidCoefficient, p.KV)
	}
	return nil
}

// EffectiveRadius returns the normalization radius r_eff = 0.91 * R200 in kpc.
func EffectiveRadius(r200Kpc float64) float64 {
	return EffectiveRadiusFactor * r200Kpc
}

// Degenerate reports whether a halo is too small for the profile:
// R200 must exceed the inner cutoff radius.
func (p Profile) Degenerate(r200Kpc float64) bool {
	return !(r200Kpc > p.RMinKpc)
}

// Amplitude returns the profile normalization A0 (magnitudes) such that the
// profile integrates to dustMass over [RMinKpc, R200].
//
// The result is returned unguarded: for R200 <= RMinKpc the integral is
// non-positive and A0 is negative or infinite. Use Profile.Degenerate to
// screen halos.
func Amplitude(dustMass, r200Kpc float64, p Profile) float64 {
	rEffPc := EffectiveRadius(r200Kpc) * kpcToPc
	rMinPc := p.RMinKpc * kpcToPc
	rMaxPc := r200Kpc * kpcToPc

	exp := 2 - p.Alpha
	integral := math.Pow(rMaxPc, exp) - math.Pow(rMinPc, exp)
	prefactor := 2.5 * p.KV * exp / (2 * math.Pi * math.Ln10)

	return dustMass * prefactor / (math.Pow(rEffPc, p.Alpha) * integral)
}

// Amplitudes evaluates Amplitude elementwise over paired mass and R200 slices.
// It panics if the slices differ in length.
func Amplitudes(dst, dustMass, r200Kpc []float64, p Profile) []float64 {
	if len(dustMass) != len(r200Kpc) {
		panic(fmt.Sprintf("dust: length mismatch: %d masses, %d radii", len(dustMass), len(r200Kpc)))
	}
	dst = grow(dst, len(dustMass))
	for i := range dustMass {
		dst[i] = Amplitude(dustMass[i], r200Kpc[i], p)
	}
	return dst
}
