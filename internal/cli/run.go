package cli

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/hupe1980/cgmdust"
	"github.com/hupe1980/cgmdust/blobstore"
	"github.com/hupe1980/cgmdust/catalog"
	"github.com/hupe1980/cgmdust/internal/config"
	"github.com/hupe1980/cgmdust/internal/resource"
	"github.com/hupe1980/cgmdust/metric"
	"github.com/hupe1980/cgmdust/persistence"
)

// pushJob is the Pushgateway job name of CLI runs.
const pushJob = "cgmdust"

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Lenses  string
	Sources string
	Output  string
	Workers int
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compute source extinction and store the result",
		Long: `Cross-match a lens catalog with a source catalog, sum the extinction
of every source and store the result file in the configured storage backend.

Example:
  cgmdust run --lenses lenses.csv --sources sources.csv --out cosmos.cgmx
  cgmdust run -c s3.yaml --lenses lenses.csv --sources - --out runs/42.cgmx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Lenses, "lenses", "", "lens catalog CSV, - for stdin (required)")
	cmd.Flags().StringVar(&opts.Sources, "sources", "", "source catalog CSV, - for stdin (required)")
	cmd.Flags().StringVarP(&opts.Output, "out", "o", "", "result name in the storage backend (required)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "concurrent lens workers (overrides config)")
	_ = cmd.MarkFlagRequired("lenses")
	_ = cmd.MarkFlagRequired("sources")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runEstimate(opts *RunOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	log := opts.logger(cmd.ErrOrStderr())

	if opts.Lenses == stdio && opts.Sources == stdio {
		return WrapExitError(ExitCommandError, "invalid flags", errors.New("--lenses and --sources cannot both read stdin"))
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if opts.Workers > 0 {
		cfg.Pipeline.Workers = opts.Workers
	}
	unit, err := cfg.Unit()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid catalog unit", err)
	}

	lensTable, err := readCatalog(opts.Lenses, cmd.InOrStdin(),
		catalog.ColRA, catalog.ColDec, catalog.ColRedshift, catalog.ColLogMStar, catalog.ColR200, catalog.ColThetaMax)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read lens catalog", err)
	}
	sourceTable, err := readCatalog(opts.Sources, cmd.InOrStdin(), catalog.ColRA, catalog.ColDec, catalog.ColRedshift)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read source catalog", err)
	}
	log.Info("catalogs loaded", "lenses", lensTable.Len(), "sources", sourceTable.Len(), "unit", unit)

	var reg *prometheus.Registry
	var mc cgmdust.MetricsCollector = cgmdust.NoopMetricsCollector{}
	if opts.Pushgateway != "" {
		reg = prometheus.NewRegistry()
		pc, err := metric.NewPrometheusCollector(reg)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to register metrics", err)
		}
		mc = pc
	}

	est, err := newEstimator(cfg, log, mc)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid estimator configuration", err)
	}

	res, err := est.EstimateTables(ctx, lensTable, sourceTable, unit)
	if reg != nil {
		if perr := metric.Push(ctx, opts.Pushgateway, pushJob, reg); perr != nil {
			log.Warn("failed to push metrics", "url", opts.Pushgateway, "error", perr)
		}
	}
	if err != nil {
		if errors.Is(err, cgmdust.ErrInvalidCatalog) || errors.Is(err, cgmdust.ErrMemoryLimitExceeded) {
			return WrapExitError(ExitCommandError, "estimate rejected", err)
		}
		return WrapExitError(ExitFailure, "estimate failed", err)
	}
	log.Info("estimate completed", "stats", res.Stats)

	if err := saveResult(cmd, cfg, store, opts.Output, res); err != nil {
		return err
	}
	log.Info("result saved", "name", opts.Output, "backend", cfg.Storage.Backend)

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d sources, %d affected, %d pairs\n",
		opts.Output, res.Stats.Sources, res.Stats.AffectedSources, res.Stats.Pairs)
	return nil
}

func newEstimator(cfg *config.Config, log *cgmdust.Logger, mc cgmdust.MetricsCollector) (*cgmdust.Estimator, error) {
	model, err := cfg.CosmologyModel()
	if err != nil {
		return nil, err
	}
	return cgmdust.New(
		cgmdust.WithProfile(cfg.DustProfile()),
		cgmdust.WithCosmology(model, cfg.Cosmology.CacheSize),
		cgmdust.WithWorkers(cfg.Pipeline.Workers),
		cgmdust.WithMaxWorkers(cfg.Pipeline.MaxWorkers),
		cgmdust.WithMemoryLimit(cfg.Pipeline.MemoryLimitBytes),
		cgmdust.WithThetaMaxCheck(cfg.Pipeline.ThetaMaxCheck),
		cgmdust.WithLogger(log),
		cgmdust.WithMetricsCollector(mc),
	)
}

func saveResult(cmd *cobra.Command, cfg *config.Config, store blobstore.Store, name string, res *cgmdust.Result) error {
	comp, err := cfg.Compression()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid compression", err)
	}
	rc := ioController(cfg)
	if err := persistence.Save(cmd.Context(), store, name, res, func(o *persistence.Options) {
		o.Compression = comp
		o.Resources = rc
	}); err != nil {
		return WrapExitError(ExitFailure, "failed to save result", err)
	}
	return nil
}

func ioController(cfg *config.Config) *resource.Controller {
	if cfg.Storage.IOLimitBytesPerSec <= 0 {
		return nil
	}
	return resource.NewController(resource.Config{
		IOLimitBytesPerSec: cfg.Storage.IOLimitBytesPerSec,
	})
}
