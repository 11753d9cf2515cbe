// Package pipeline cross-matches a lens catalog against a source catalog and
// accumulates the circumgalactic dust extinction every lens imparts on the
// sources behind it.
//
// Run builds a k-d tree over the source positions once, computes dust masses
// and profile amplitudes for all lenses, then splits the lenses into
// contiguous chunks processed by a fixed number of workers. Each worker owns a
// private accumulator as long as the source catalog; the accumulators are
// summed in chunk order once all workers finish. For a fixed worker count the
// output is therefore bit-for-bit reproducible. Across worker counts and lens
// orderings it agrees up to floating-point summation order.
//
// Inputs are validated before anything is computed, and Run either returns a
// complete Result or an error.
package pipeline
