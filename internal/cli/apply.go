package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/cgmdust/catalog"
	"github.com/hupe1980/cgmdust/persistence"
)

// ApplyOptions holds flags for the apply command.
type ApplyOptions struct {
	*RootOptions
	Sources string
	Result  string
	Columns []string
	Output  string

	// AddColumn appends the extinction itself as a column.
	AddColumn bool
}

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ApplyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Add stored extinction to source magnitudes",
		Long: `Load a result file and add its extinction to magnitude columns of the
source catalog it was computed for. All other columns are copied unchanged.

Example:
  cgmdust apply --sources sources.csv --result cosmos.cgmx --columns mag_g,mag_r --out extincted.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Sources, "sources", "", "source catalog CSV, - for stdin (required)")
	cmd.Flags().StringVar(&opts.Result, "result", "", "result name in the storage backend (required)")
	cmd.Flags().StringSliceVar(&opts.Columns, "columns", nil, "magnitude columns to correct")
	cmd.Flags().StringVarP(&opts.Output, "out", "o", stdio, "output CSV, - for stdout")
	cmd.Flags().BoolVar(&opts.AddColumn, "add-column", false, "append an extinction column")
	_ = cmd.MarkFlagRequired("sources")
	_ = cmd.MarkFlagRequired("result")

	return cmd
}

func runApply(opts *ApplyOptions, cmd *cobra.Command) error {
	if len(opts.Columns) == 0 && !opts.AddColumn {
		return WrapExitError(ExitCommandError, "nothing to do", fmt.Errorf("set --columns or --add-column"))
	}
	log := opts.logger(cmd.ErrOrStderr())

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	res, err := persistence.Load(cmd.Context(), store, opts.Result, func(o *persistence.Options) {
		o.Resources = ioController(cfg)
	})
	if err != nil {
		return WrapExitError(ExitFailure, "failed to load result", err)
	}

	t, err := readCatalog(opts.Sources, cmd.InOrStdin())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read source catalog", err)
	}
	if t.Len() != len(res.Extinction) {
		return WrapExitError(ExitCommandError, "source catalog does not match result",
			fmt.Errorf("%d rows, result has %d", t.Len(), len(res.Extinction)))
	}

	if err := catalog.ApplyExtinction(t, res.Extinction, opts.Columns...); err != nil {
		return WrapExitError(ExitCommandError, "failed to apply extinction", err)
	}
	if opts.AddColumn {
		t.Set(catalog.ColExtinction, res.Extinction)
	}
	log.Debug("extinction applied", "columns", opts.Columns, "affected", res.Stats.AffectedSources)

	if err := writeCatalog(opts.Output, cmd.OutOrStdout(), t); err != nil {
		return WrapExitError(ExitFailure, "failed to write catalog", err)
	}
	return nil
}
