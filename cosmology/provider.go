package cosmology

// Provider returns the angular diameter distance in kpc for a redshift.
// Implementations must be safe for concurrent use.
type Provider interface {
	AngularDiameterDistance(z float64) float64
}

// ProviderFunc adapts an ordinary function to the Provider interface.
type ProviderFunc func(z float64) float64

// AngularDiameterDistance implements Provider.
func (f ProviderFunc) AngularDiameterDistance(z float64) float64 { return f(z) }

// Constant returns a Provider that yields d for every redshift.
// Useful in tests and for thin-shell approximations.
func Constant(d float64) Provider {
	return ProviderFunc(func(float64) float64 { return d })
}
