package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qchip/pkg/layout"
	"github.com/matzehuels/qchip/pkg/pipeline"
)

// layoutCommand creates the layout command for placing a lattice.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		chip    chipFlags
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Place a qubit lattice and write it as JSON",
		Long: `Place a qubit lattice and write it as JSON.

The layout holds every site, coupler (with its mirror flag), plaquette and
drawable shape. It can be drawn later with 'qchip render <file>' or
'qchip graph <file>' without recomputing the placement.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := chip.apply(&opts); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	chip.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "chip"+layoutSuffix, "output file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.NoShade, "no-shade", false, "omit plaquette shading")
	cmd.Flags().BoolVar(&opts.NoLabels, "no-labels", false, "omit qubit and coupler labels")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runLayout places the lattice and writes the layout file.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Placing lattice...")
	spinner.Start()
	l, cacheHit, err := runner.LayoutWithCacheInfo(ctx, opts)
	spinner.Stop()
	if err != nil {
		printError("Layout failed")
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := layout.WriteLayoutFile(l, output); err != nil {
		return err
	}

	printSuccess("Layout complete (%dx%d, pitch %.1f µm)", l.Rows, l.Cols, l.Pitch)
	printFile(output)
	printStats(chipStats{sites: len(l.Qubits), couplers: len(l.Couplers), cached: cacheHit})
	printNewline()
	printNextStep("Render", appName+" render "+output)
	return nil
}
