// Package testutil provides testing utilities for cgmdust.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random sky positions and redshifts,
// brute-force radius matches, and comparing extinction vectors.
//
// # Random Catalog Columns
//
//	rng := testutil.NewRNG(seed)
//	ra := rng.Uniform(1000, 150, 151)      // degrees
//	z := rng.Uniform(1000, 0.1, 1.2)
//	ra, dec := rng.Clustered(1000, 10, 0.02, 150, 151, 2, 3)
//
// # Exact Search (Ground Truth)
//
//	want := testutil.BruteRadius(ra, dec, qx, qy, r)
package testutil
