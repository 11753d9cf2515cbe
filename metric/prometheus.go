package metric

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "cgmdust"

// PrometheusCollector implements cgmdust.MetricsCollector.
type PrometheusCollector struct {
	latency   *prometheus.HistogramVec
	estimates *prometheus.CounterVec
	lenses    prometheus.Counter
	sources   prometheus.Counter
	pairs     prometheus.Counter
	lastPairs prometheus.Gauge
}

// NewPrometheusCollector creates the collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &PrometheusCollector{
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "estimate_duration_seconds",
			Help:      "Latency of extinction estimates",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"status"}),
		estimates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimates_total",
			Help:      "Total extinction estimates",
		}, []string{"status"}),
		lenses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lenses_total",
			Help:      "Lenses processed by successful estimates",
		}),
		sources: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sources_total",
			Help:      "Sources processed by successful estimates",
		}),
		pairs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pairs_total",
			Help:      "Lens/source pairs within the search radius",
		}),
		lastPairs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_estimate_pairs",
			Help:      "Pairs matched by the most recent successful estimate",
		}),
	}

	for _, col := range []prometheus.Collector{c.latency, c.estimates, c.lenses, c.sources, c.pairs, c.lastPairs} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordEstimate implements cgmdust.MetricsCollector.
func (c *PrometheusCollector) RecordEstimate(lenses, sources, pairs int, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.latency.WithLabelValues(status).Observe(d.Seconds())
	c.estimates.WithLabelValues(status).Inc()
	if err != nil {
		return
	}
	c.lenses.Add(float64(lenses))
	c.sources.Add(float64(sources))
	c.pairs.Add(float64(pairs))
	c.lastPairs.Set(float64(pairs))
}

// Push sends all metrics gathered by g to a Prometheus Pushgateway under job.
func Push(ctx context.Context, url, job string, g prometheus.Gatherer) error {
	return push.New(url, job).Gatherer(g).PushContext(ctx)
}
