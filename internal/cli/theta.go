package cli

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/cgmdust/catalog"
	"github.com/hupe1980/cgmdust/cosmology"
)

// ThetaOptions holds flags for the theta command.
type ThetaOptions struct {
	*RootOptions
	Lenses string
	Output string
}

// NewThetaCommand creates the theta command.
func NewThetaCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ThetaOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "theta",
		Short: "Derive the theta_max column of a lens catalog",
		Long: `Compute theta_max = R200 / D_A(z) for every lens with the configured
cosmology and catalog unit. An existing theta_max column is replaced.

Example:
  cgmdust theta --lenses lenses.csv --out lenses_theta.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTheta(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Lenses, "lenses", "", "lens catalog CSV, - for stdin (required)")
	cmd.Flags().StringVarP(&opts.Output, "out", "o", stdio, "output CSV, - for stdout")
	_ = cmd.MarkFlagRequired("lenses")

	return cmd
}

func runTheta(opts *ThetaOptions, cmd *cobra.Command) error {
	log := opts.logger(cmd.ErrOrStderr())

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	unit, err := cfg.Unit()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid catalog unit", err)
	}
	model, err := cfg.CosmologyModel()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid cosmology", err)
	}

	t, err := readCatalog(opts.Lenses, cmd.InOrStdin())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read lens catalog", err)
	}
	if err := t.Validate("lens"); err != nil {
		return WrapExitError(ExitCommandError, "invalid lens catalog", err)
	}
	r200, ok := t.Column(catalog.ColR200)
	if !ok {
		return WrapExitError(ExitCommandError, "invalid lens catalog", &catalog.MissingColumnError{Catalog: "lens", Column: catalog.ColR200})
	}
	z, ok := t.Column(catalog.ColRedshift)
	if !ok {
		return WrapExitError(ExitCommandError, "invalid lens catalog", &catalog.MissingColumnError{Catalog: "lens", Column: catalog.ColRedshift})
	}

	dist := cosmology.NewCached(model, cfg.Cosmology.CacheSize)
	t.Set(catalog.ColThetaMax, catalog.DeriveThetaMax(nil, r200, z, dist, unit))
	hits, misses := dist.Stats()
	log.Debug("theta_max derived", "lenses", t.Len(), "unit", unit, "cache_hits", hits, "cache_misses", misses)

	if err := writeCatalog(opts.Output, cmd.OutOrStdout(), t); err != nil {
		return WrapExitError(ExitFailure, "failed to write catalog", err)
	}
	return nil
}
