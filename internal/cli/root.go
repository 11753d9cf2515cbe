package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/cgmdust"
	"github.com/hupe1980/cgmdust/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose     bool
	ConfigPath  string
	Pushgateway string
}

// NewRootCommand creates the root command for the cgmdust CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cgmdust",
		Short: "Foreground CGM dust extinction for source catalogs",
		Long: `Estimate the extinction that dust in the circumgalactic medium of
foreground galaxies imposes on background sources.

Catalogs are CSV files whose header row names the columns. Lens catalogs
need ra, dec, redshift, log_m_star, R200_kpc and theta_max; source catalogs
need ra, dec and redshift.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Pushgateway, "pushgateway", "", "Prometheus Pushgateway URL to push run metrics to")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewApplyCommand(opts))
	cmd.AddCommand(NewThetaCommand(opts))
	cmd.AddCommand(NewInspectCommand(opts))

	return cmd
}

// logger writes text logs to w, at debug level with --verbose.
func (o *RootOptions) logger(w io.Writer) *cgmdust.Logger {
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	return cgmdust.NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

func (o *RootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	return cfg, nil
}
