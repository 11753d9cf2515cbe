// Package dust converts lens galaxy properties into the parameters of a
// circumgalactic dust extinction profile.
//
// The profile is a spherically symmetric power law in projected radius:
//
//	A(r) = A0 * (r / r_eff)^alpha,  r_eff = 0.91 * R200
//
// Alpha is the exponent itself and is negative (default -0.8). The same value
// is used when normalizing the profile (Amplitude) and when evaluating it
// (package extinction); there is no implicit sign flip anywhere.
//
// # Usage
//
//	mass := dust.Mass(11.0)                            // log10 stellar mass
//	a0 := dust.Amplitude(mass, 200, dust.DefaultProfile) // magnitudes
package dust
