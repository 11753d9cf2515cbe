package testutil

import (
	"math"
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Perm returns a pseudo-random permutation of [0,n).
func (r *RNG) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

// Uniform returns n values uniformly distributed in [minVal, maxVal).
func (r *RNG) Uniform(n int, minVal, maxVal float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float64, n)
	span := maxVal - minVal
	for i := range out {
		out[i] = minVal + r.rand.Float64()*span
	}
	return out
}

// Clustered returns n positions grouped around random centers inside the box
// [raMin, raMax) x [decMin, decMax). spread is the Gaussian sigma around each
// center. Galaxies cluster; uniform fields under-test dense index regions.
func (r *RNG) Clustered(n, clusters int, spread, raMin, raMax, decMin, decMax float64) (ra, dec []float64) {
	if clusters < 1 {
		clusters = 1
	}
	cra := r.Uniform(clusters, raMin, raMax)
	cdec := r.Uniform(clusters, decMin, decMax)

	r.mu.Lock()
	defer r.mu.Unlock()

	ra = make([]float64, n)
	dec = make([]float64, n)
	for i := range n {
		c := i % clusters
		ra[i] = cra[c] + r.rand.NormFloat64()*spread
		dec[i] = cdec[c] + r.rand.NormFloat64()*spread
	}
	return ra, dec
}

// BruteRadius returns, in ascending order, the indices of all points whose
// flat-sky separation from (qx, qy) is <= radius. O(N) ground truth for
// spatial index tests.
func BruteRadius(x, y []float64, qx, qy, radius float64) []uint32 {
	var out []uint32
	for i := range x {
		dx := x[i] - qx
		dy := y[i] - qy
		if math.Sqrt(dx*dx+dy*dy) <= radius {
			out = append(out, uint32(i))
		}
	}
	return out
}

// MaxRelativeError returns the largest elementwise |a-b| / max(|a|, |b|).
// Pairs that are both zero count as equal. It panics on length mismatch.
func MaxRelativeError(a, b []float64) float64 {
	if len(a) != len(b) {
		panic("testutil: length mismatch")
	}
	var worst float64
	for i := range a {
		den := math.Max(math.Abs(a[i]), math.Abs(b[i]))
		if den == 0 {
			continue
		}
		if e := math.Abs(a[i]-b[i]) / den; e > worst {
			worst = e
		}
	}
	return worst
}
