package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/cgmdust/catalog"
	"github.com/hupe1980/cgmdust/cosmology"
	"github.com/hupe1980/cgmdust/dust"
	"github.com/hupe1980/cgmdust/extinction"
	"github.com/hupe1980/cgmdust/geometry"
	"github.com/hupe1980/cgmdust/internal/resource"
)

const bytesPerSource = 8

var (
	// ErrUnitMismatch is returned when lens and source catalogs use different
	// angular units. It is always accompanied by catalog.ErrInvalidCatalog.
	ErrUnitMismatch = errors.New("pipeline: lens and source units differ")

	// ErrNilProvider is returned when no cosmology provider is given.
	ErrNilProvider = errors.New("pipeline: nil cosmology provider")
)

// Run computes the total extinction of every source caused by all lenses.
// dist must be safe for concurrent use.
func Run(ctx context.Context, lenses *catalog.Lenses, sources *catalog.Sources, dist cosmology.Provider, optFns ...func(o *Options)) (*Result, error) {
	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.normalize()

	if err := validate(lenses, sources, dist, &opts); err != nil {
		return nil, err
	}

	start := time.Now()
	log := opts.Logger
	nLens, nSrc := lenses.Len(), sources.Len()

	res := &Result{
		Affected: roaring.New(),
		Stats:    Stats{Lenses: nLens, Sources: nSrc},
	}
	if nLens == 0 || nSrc == 0 {
		res.Extinction = make([]float64, nSrc)
		log.DebugContext(ctx, "empty catalog, nothing to match", slog.Int("lenses", nLens), slog.Int("sources", nSrc))
		return res, nil
	}

	tree, err := geometry.NewKDTree(sources.RA, sources.Dec)
	if err != nil {
		return nil, fmt.Errorf("build source index: %w", err)
	}
	log.DebugContext(ctx, "source index built", slog.Int("sources", tree.Len()), slog.Duration("elapsed", time.Since(start)))

	masses := dust.Masses(nil, lenses.LogMStar)
	amps := dust.Amplitudes(nil, masses, lenses.R200Kpc, opts.Profile)

	workers, err := workerCount(opts.Workers, nLens, nSrc, opts.Resources)
	if err != nil {
		return nil, err
	}
	reserved := int64(workers) * int64(nSrc) * bytesPerSource
	if err := opts.Resources.WaitMemory(ctx, reserved); err != nil {
		return nil, fmt.Errorf("reserve accumulators: %w", err)
	}
	defer opts.Resources.ReleaseMemory(reserved)

	log.DebugContext(ctx, "lenses partitioned",
		slog.Int("lenses", nLens),
		slog.Int("workers", workers),
		slog.Int64("accumulator_bytes", reserved))

	m := &matcher{
		lenses:  lenses,
		sources: sources,
		tree:    tree,
		amps:    amps,
		dist:    dist,
		profile: opts.Profile,
	}

	accs := make([][]float64, workers)
	stats := make([]Stats, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		lo, hi := w*nLens/workers, (w+1)*nLens/workers
		g.Go(func() error {
			if err := opts.Resources.AcquireWorker(gctx); err != nil {
				return err
			}
			defer opts.Resources.ReleaseWorker()

			acc := make([]float64, nSrc)
			st, err := m.match(gctx, acc, lo, hi)
			if err != nil {
				return err
			}
			accs[w], stats[w] = acc, st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Fold in chunk order so the sum is reproducible for a fixed worker count.
	ext := accs[0]
	for _, acc := range accs[1:] {
		for j, v := range acc {
			ext[j] += v
		}
	}

	res.Extinction = ext
	res.Stats.Workers = workers
	for _, st := range stats {
		res.Stats.add(st)
	}
	for j, v := range ext {
		if v != 0 {
			res.Affected.Add(uint32(j))
		}
	}
	res.Stats.AffectedSources = int(res.Affected.GetCardinality())

	if res.Stats.DegenerateLenses > 0 {
		log.WarnContext(ctx, "skipped lenses with R200 <= r_min or a non-finite amplitude",
			slog.Int("count", res.Stats.DegenerateLenses),
			slog.Float64("r_min_kpc", opts.Profile.RMinKpc))
	}
	log.DebugContext(ctx, "accumulators reduced",
		slog.Any("stats", res.Stats),
		slog.Duration("elapsed", time.Since(start)))

	return res, nil
}

func validate(lenses *catalog.Lenses, sources *catalog.Sources, dist cosmology.Provider, opts *Options) error {
	if lenses == nil || sources == nil {
		return fmt.Errorf("%w: nil catalog", catalog.ErrInvalidCatalog)
	}
	if dist == nil {
		return ErrNilProvider
	}
	if err := opts.Profile.Validate(); err != nil {
		return err
	}
	if err := lenses.Validate(); err != nil {
		return err
	}
	if err := sources.Validate(); err != nil {
		return err
	}
	if lenses.Unit != sources.Unit {
		return fmt.Errorf("%w: %w: lenses in %s, sources in %s",
			catalog.ErrInvalidCatalog, ErrUnitMismatch, lenses.Unit, sources.Unit)
	}
	if opts.CheckThetaMax {
		return lenses.CheckThetaMax(dist)
	}
	return nil
}

// workerCount caps the requested workers by the lens count, the shared
// worker slots and how many accumulators fit in the memory budget.
func workerCount(requested, nLens, nSrc int, rc *resource.Controller) (int, error) {
	workers := min(requested, nLens)
	if slots := rc.MaxWorkers(); slots > 0 && int64(workers) > slots {
		workers = int(slots)
	}
	if limit := rc.MemoryLimit(); limit > 0 {
		acc := int64(nSrc) * bytesPerSource
		if acc > limit {
			return 0, fmt.Errorf("%w: one accumulator needs %d bytes, limit is %d",
				resource.ErrMemoryLimitExceeded, acc, limit)
		}
		workers = min(workers, int(limit/acc))
	}
	return max(workers, 1), nil
}

type matcher struct {
	lenses  *catalog.Lenses
	sources *catalog.Sources
	tree    *geometry.KDTree
	amps    []float64
	dist    cosmology.Provider
	profile dust.Profile
}

// match scatter-adds the contributions of lenses [lo, hi) into acc.
func (m *matcher) match(ctx context.Context, acc []float64, lo, hi int) (Stats, error) {
	var (
		st      Stats
		idx     []uint32
		seps    []float64
		zs      []float64
		contrib []float64
		counts  extinction.Counts
		err     error
	)
	unit := m.sources.Unit

	for i := lo; i < hi; i++ {
		if err := ctx.Err(); err != nil {
			return st, err
		}

		r200 := m.lenses.R200Kpc[i]
		if amp := m.amps[i]; m.profile.Degenerate(r200) || !(amp > 0) || math.IsInf(amp, 1) {
			st.DegenerateLenses++
			continue
		}

		ra, dec := m.lenses.RA[i], m.lenses.Dec[i]
		idx = m.tree.AppendRadius(idx[:0], ra, dec, m.lenses.ThetaMax[i])
		if len(idx) == 0 {
			st.EmptyLenses++
			continue
		}
		st.Pairs += len(idx)

		seps, zs = seps[:0], zs[:0]
		for _, j := range idx {
			sep := geometry.Separation(ra, dec, m.sources.RA[j], m.sources.Dec[j])
			seps = append(seps, unit.ToRadians(sep))
			zs = append(zs, m.sources.Redshift[j])
		}

		p := extinction.Params{
			Redshift:  m.lenses.Redshift[i],
			Amplitude: m.amps[i],
			R200Kpc:   r200,
			Alpha:     m.profile.Alpha,
		}
		var c extinction.Counts
		contrib, c, err = extinction.ContributionsCount(contrib, p, m.dist.AngularDiameterDistance(p.Redshift), seps, zs)
		if err != nil {
			return st, err
		}
		counts.Add(c)

		for k, j := range idx {
			acc[j] += contrib[k]
		}
	}

	st.Masked, st.NonFinite = counts.Masked, counts.NonFinite
	return st, nil
}
