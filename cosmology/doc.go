// Package cosmology provides angular diameter distances for converting angular
// separations on the sky into projected physical separations.
//
// Consumers depend only on the Provider interface; FlatLambdaCDM is a concrete
// model and Cached memoizes any Provider for catalogs with repeated redshifts.
//
//	p := cosmology.NewCached(cosmology.Planck18, 4096)
//	dA := p.AngularDiameterDistance(0.3) // kpc
package cosmology
