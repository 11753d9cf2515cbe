package cgmdust

import (
	"log/slog"

	"github.com/hupe1980/cgmdust/cosmology"
	"github.com/hupe1980/cgmdust/dust"
)

type options struct {
	profile          dust.Profile
	cosmology        cosmology.Provider
	cacheSize        int
	workers          int
	maxWorkers       int64
	memoryLimit      int64
	thetaMaxCheck    bool
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures an Estimator.
type Option func(*options)

// WithProfile sets the full extinction profile.
// The profile is validated by New.
func WithProfile(p dust.Profile) Option {
	return func(o *options) {
		o.profile = p
	}
}

// WithAlpha overrides only the profile exponent.
// Alpha is the (negative) power-law slope, e.g. -0.8.
func WithAlpha(alpha float64) Option {
	return func(o *options) {
		o.profile.Alpha = alpha
	}
}

// WithCosmology sets the angular diameter distance provider.
// Distances are memoized in an LRU of cacheSize entries; cacheSize <= 0
// uses the default size. The provider must be safe for concurrent use.
//
// Example:
//
//	c, _ := cosmology.NewFlatLambdaCDM(70, 0.3)
//	est, _ := cgmdust.New(cgmdust.WithCosmology(c, 0))
func WithCosmology(p cosmology.Provider, cacheSize int) Option {
	return func(o *options) {
		o.cosmology = p
		o.cacheSize = cacheSize
	}
}

// WithWorkers sets the number of concurrent lens workers.
// Values <= 0 use runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMaxWorkers caps the lens workers running at once across all concurrent
// Estimate calls. 0 means unlimited.
func WithMaxWorkers(n int64) Option {
	return func(o *options) {
		o.maxWorkers = n
	}
}

// WithMemoryLimit bounds the memory held by per-worker accumulators across
// all concurrent Estimate calls. 0 means unlimited.
//
// When the limit admits fewer accumulators than workers, fewer workers run.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithThetaMaxCheck makes Estimate reject lens catalogs whose theta_max is
// smaller than the angular size of the halo.
func WithThetaMaxCheck(enabled bool) Option {
	return func(o *options) {
		o.thetaMaxCheck = enabled
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &cgmdust.BasicMetricsCollector{}
//	est, _ := cgmdust.New(cgmdust.WithMetricsCollector(metrics))
//	// ... use est ...
//	stats := metrics.GetStats()
//	fmt.Printf("Estimates: %d, Pairs: %d\n", stats.EstimateCount, stats.Pairs)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		profile:          dust.DefaultProfile,
		cosmology:        cosmology.Planck18,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
