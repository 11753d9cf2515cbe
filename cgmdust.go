package cgmdust

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/cgmdust/catalog"
	"github.com/hupe1980/cgmdust/cosmology"
	"github.com/hupe1980/cgmdust/dust"
	"github.com/hupe1980/cgmdust/geometry"
	"github.com/hupe1980/cgmdust/internal/resource"
	"github.com/hupe1980/cgmdust/pipeline"
)

type (
	// Result is the outcome of a successful Estimate.
	Result = pipeline.Result

	// Stats summarizes an Estimate call.
	Stats = pipeline.Stats
)

// Estimator computes foreground CGM dust extinction for source catalogs.
// It is safe for concurrent use; concurrent calls share the memory limit.
type Estimator struct {
	profile       dust.Profile
	cosmology     *cosmology.Cached
	workers       int
	thetaMaxCheck bool
	resources     *resource.Controller
	metrics       MetricsCollector
	logger        *Logger
}

// New creates an Estimator. Without options it uses the SMC profile
// (alpha = -0.8, r_min = 10 kpc) and the Planck18 cosmology.
func New(optFns ...Option) (*Estimator, error) {
	opts := applyOptions(optFns)

	if err := opts.profile.Validate(); err != nil {
		return nil, translateError(err)
	}
	if opts.cosmology == nil {
		return nil, fmt.Errorf("%w: nil cosmology", ErrInvalidConfig)
	}
	if v, ok := opts.cosmology.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return nil, translateError(err)
		}
	}
	if opts.memoryLimit < 0 {
		return nil, fmt.Errorf("%w: negative memory limit %d", ErrInvalidConfig, opts.memoryLimit)
	}
	if opts.maxWorkers < 0 {
		return nil, fmt.Errorf("%w: negative max workers %d", ErrInvalidConfig, opts.maxWorkers)
	}

	return &Estimator{
		profile:       opts.profile,
		cosmology:     cosmology.NewCached(opts.cosmology, opts.cacheSize),
		workers:       opts.workers,
		thetaMaxCheck: opts.thetaMaxCheck,
		resources: resource.NewController(resource.Config{
			MemoryLimitBytes: opts.memoryLimit,
			MaxWorkers:       opts.maxWorkers,
		}),
		metrics: opts.metricsCollector,
		logger:  opts.logger,
	}, nil
}

// Profile returns the extinction profile in use.
func (e *Estimator) Profile() dust.Profile { return e.profile }

// Cosmology returns the memoized distance provider in use.
func (e *Estimator) Cosmology() cosmology.Provider { return e.cosmology }

// Estimate returns the total extinction of every source caused by all lenses
// in front of it. Result.Extinction is aligned with the source order.
//
// Both catalogs are validated before any computation; on error no partial
// result is returned.
func (e *Estimator) Estimate(ctx context.Context, lenses *catalog.Lenses, sources *catalog.Sources) (*Result, error) {
	start := time.Now()
	res, err := pipeline.Run(ctx, lenses, sources, e.cosmology, func(o *pipeline.Options) {
		o.Profile = e.profile
		o.Workers = e.workers
		o.Resources = e.resources
		o.CheckThetaMax = e.thetaMaxCheck
		o.Logger = e.logger.Logger
	})
	duration := time.Since(start)
	err = translateError(err)

	nLens, nSrc := 0, 0
	if lenses != nil {
		nLens = lenses.Len()
	}
	if sources != nil {
		nSrc = sources.Len()
	}

	var stats Stats
	if res != nil {
		stats = res.Stats
	}
	e.metrics.RecordEstimate(nLens, nSrc, stats.Pairs, duration, err)
	e.logger.LogEstimate(ctx, nLens, nSrc, stats, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// EstimateTables is like Estimate but reads the catalogs from tables whose
// angular columns are in unit.
func (e *Estimator) EstimateTables(ctx context.Context, lensTable, sourceTable *catalog.Table, unit geometry.Unit) (*Result, error) {
	if lensTable == nil || sourceTable == nil {
		return nil, fmt.Errorf("%w: nil table", ErrInvalidCatalog)
	}
	lenses, err := catalog.LensesFromTable(lensTable, unit)
	if err != nil {
		return nil, translateError(err)
	}
	sources, err := catalog.SourcesFromTable(sourceTable, unit)
	if err != nil {
		return nil, translateError(err)
	}
	return e.Estimate(ctx, lenses, sources)
}
