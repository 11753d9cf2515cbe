package cgmdust

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; see the
// metric package for a Prometheus implementation.
type MetricsCollector interface {
	// RecordEstimate is called after each Estimate call.
	// pairs is the number of matched lens/source pairs (0 on error),
	// duration is the total time taken, err is nil if successful.
	RecordEstimate(lenses, sources, pairs int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordEstimate(int, int, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	EstimateCount      atomic.Int64
	EstimateErrors     atomic.Int64
	EstimateTotalNanos atomic.Int64
	Lenses             atomic.Int64
	Sources            atomic.Int64
	Pairs              atomic.Int64
}

// RecordEstimate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEstimate(lenses, sources, pairs int, duration time.Duration, err error) {
	b.EstimateCount.Add(1)
	b.EstimateTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.EstimateErrors.Add(1)
		return
	}
	b.Lenses.Add(int64(lenses))
	b.Sources.Add(int64(sources))
	b.Pairs.Add(int64(pairs))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		EstimateCount:    b.EstimateCount.Load(),
		EstimateErrors:   b.EstimateErrors.Load(),
		EstimateAvgNanos: b.getAvgEstimateNanos(),
		Lenses:           b.Lenses.Load(),
		Sources:          b.Sources.Load(),
		Pairs:            b.Pairs.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgEstimateNanos() int64 {
	count := b.EstimateCount.Load()
	if count == 0 {
		return 0
	}
	return b.EstimateTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
// Lenses, Sources and Pairs only count successful estimates.
type BasicMetricsStats struct {
	EstimateCount    int64
	EstimateErrors   int64
	EstimateAvgNanos int64
	Lenses           int64
	Sources          int64
	Pairs            int64
}
