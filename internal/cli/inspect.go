package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hupe1980/cgmdust/persistence"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	JSON bool
}

// inspectOutput is the JSON form of a result header.
type inspectOutput struct {
	Name             string `json:"name"`
	Version          uint16 `json:"version"`
	Compression      string `json:"compression"`
	Sources          uint64 `json:"sources"`
	PayloadBytes     uint64 `json:"payload_bytes"`
	BitmapBytes      uint64 `json:"bitmap_bytes"`
	Checksum         uint32 `json:"checksum"`
	Workers          uint64 `json:"workers"`
	Lenses           uint64 `json:"lenses"`
	Pairs            uint64 `json:"pairs"`
	EmptyLenses      uint64 `json:"empty_lenses"`
	DegenerateLenses uint64 `json:"degenerate_lenses"`
	Masked           uint64 `json:"masked"`
	NonFinite        uint64 `json:"non_finite"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect <result>",
		Short: "Print the header and run statistics of a result",
		Long: `Read only the header of a stored result and print its format fields and
run statistics. The payload is not decompressed.

Example:
  cgmdust inspect cosmos.cgmx
  cgmdust inspect -c s3.yaml runs/42.cgmx --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "print JSON")

	return cmd
}

func runInspect(opts *InspectOptions, name string, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	h, err := persistence.Stat(cmd.Context(), store, name)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read result header", err)
	}

	out := inspectOutput{
		Name:             name,
		Version:          h.Version,
		Compression:      h.Compression.String(),
		Sources:          h.Count,
		PayloadBytes:     h.PayloadSize,
		BitmapBytes:      h.BitmapSize,
		Checksum:         h.Checksum,
		Workers:          h.Stats.Workers,
		Lenses:           h.Stats.Lenses,
		Pairs:            h.Stats.Pairs,
		EmptyLenses:      h.Stats.EmptyLenses,
		DegenerateLenses: h.Stats.DegenerateLenses,
		Masked:           h.Stats.Masked,
		NonFinite:        h.Stats.NonFinite,
	}

	if opts.JSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "name\t%s\n", out.Name)
	fmt.Fprintf(tw, "version\t%d\n", out.Version)
	fmt.Fprintf(tw, "compression\t%s\n", out.Compression)
	fmt.Fprintf(tw, "sources\t%d\n", out.Sources)
	fmt.Fprintf(tw, "payload bytes\t%d\n", out.PayloadBytes)
	fmt.Fprintf(tw, "bitmap bytes\t%d\n", out.BitmapBytes)
	fmt.Fprintf(tw, "checksum\t%08x\n", out.Checksum)
	fmt.Fprintf(tw, "workers\t%d\n", out.Workers)
	fmt.Fprintf(tw, "lenses\t%d\n", out.Lenses)
	fmt.Fprintf(tw, "pairs\t%d\n", out.Pairs)
	fmt.Fprintf(tw, "empty lenses\t%d\n", out.EmptyLenses)
	fmt.Fprintf(tw, "degenerate lenses\t%d\n", out.DegenerateLenses)
	fmt.Fprintf(tw, "masked pairs\t%d\n", out.Masked)
	fmt.Fprintf(tw, "non-finite pairs\t%d\n", out.NonFinite)
	return tw.Flush()
}
