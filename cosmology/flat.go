package cosmology

import (
	"errors"
	"fmt"
	"math"
)

// SpeedOfLight in km/s.
const SpeedOfLight = 299792.458

// ErrInvalidParameters is returned for unphysical cosmological parameters.
var ErrInvalidParameters = errors.New("cosmology: invalid parameters")

// FlatLambdaCDM is a spatially flat ΛCDM model without radiation.
type FlatLambdaCDM struct {
	// H0 is the Hubble constant in km/s/Mpc.
	H0 float64
	// Om0 is the matter density parameter today. Ode0 = 1 - Om0.
	Om0 float64
}

// The presets carry H0 and Om0 only. Radiation and massive neutrinos
// (Tcmb0, Neff, m_nu) are ignored, so distances differ from astropy's
// Planck18 and WMAP9 by roughly 0.01 to 0.1 percent at z < 1.
var (
	// Planck18 parameters (Planck Collaboration 2020, Table 2, TT,TE,EE+lowE+lensing+BAO).
	Planck18 = FlatLambdaCDM{H0: 67.66, Om0: 0.30966}

	// WMAP9 parameters (Hinshaw et al. 2013).
	WMAP9 = FlatLambdaCDM{H0: 69.32, Om0: 0.2865}
)

// NewFlatLambdaCDM validates the parameters and returns a model.
func NewFlatLambdaCDM(h0, om0 float64) (FlatLambdaCDM, error) {
	c := FlatLambdaCDM{H0: h0, Om0: om0}
	if err := c.Validate(); err != nil {
		return FlatLambdaCDM{}, err
	}
	return c, nil
}

// Validate checks H0 > 0 and 0 <= Om0 <= 1.
func (c FlatLambdaCDM) Validate() error {
	if !(c.H0 > 0) || math.IsInf(c.H0, 0) {
		return fmt.Errorf("%w: H0=%v", ErrInvalidParameters, c.H0)
	}
	if !(c.Om0 >= 0 && c.Om0 <= 1) {
		return fmt.Errorf("%w: Om0=%v", ErrInvalidParameters, c.Om0)
	}
	return nil
}

// HubbleDistance returns c/H0 in kpc.
func (c FlatLambdaCDM) HubbleDistance() float64 {
	return SpeedOfLight / c.H0 * 1e3
}

// E returns the dimensionless Hubble parameter H(z)/H0.
func (c FlatLambdaCDM) E(z float64) float64 {
	zp1 := 1 + z
	return math.Sqrt(c.Om0*zp1*zp1*zp1 + (1 - c.Om0))
}

// ComovingDistance returns the line-of-sight comoving distance in kpc.
// Non-positive redshifts yield 0.
func (c FlatLambdaCDM) ComovingDistance(z float64) float64 {
	if math.IsNaN(z) {
		return math.NaN()
	}
	if z <= 0 {
		return 0
	}
	return c.HubbleDistance() * c.integrateInverseE(z)
}

// AngularDiameterDistance implements Provider. The result is in kpc.
func (c FlatLambdaCDM) AngularDiameterDistance(z float64) float64 {
	return c.ComovingDistance(z) / (1 + z)
}

// integrateInverseE integrates 1/E(z') over [0, z] with composite Simpson.
// 1/E is smooth and slowly varying, so a few hundred panels per unit
// redshift keep the relative error far below 1e-9.
func (c FlatLambdaCDM) integrateInverseE(z float64) float64 {
	n := int(math.Ceil(z * 512))
	if n < 64 {
		n = 64
	}
	if n%2 == 1 {
		n++
	}

	h := z / float64(n)
	sum := 1/c.E(0) + 1/c.E(z)
	for i := 1; i < n; i++ {
		w := 2.0
		if i%2 == 1 {
			w = 4.0
		}
		sum += w / c.E(float64(i)*h)
	}
	return sum * h / 3
}
