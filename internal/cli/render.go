package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/layout"
	"github.com/matzehuels/qchip/pkg/pipeline"
	"github.com/matzehuels/qchip/pkg/render"
)

// drawParams describes one 2D rendering run.
type drawParams struct {
	input   string // saved layout; empty places a fresh lattice
	output  string
	noCache bool
	opts    pipeline.Options
}

// renderCommand creates the render command for drawing the chip geometry.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		chip       chipFlags
		formatsStr string
		p          drawParams
	)

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Draw the chip as SVG, PNG, PDF, JSON or DOT",
		Long: `Draw the chip as SVG, PNG, PDF, JSON or DOT.

Without an argument the lattice is placed from the chip flags first. With a
layout file (from 'qchip layout') the saved placement is drawn as is and the
chip flags are ignored.

PDF output needs rsvg-convert on PATH.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.opts.VizType = pipeline.VizTypeChip
			p.opts.Formats = parseFormats(formatsStr, pipeline.FormatSVG)
			if err := requireFormats(p.opts.Formats, pipeline.ValidFormats, "2D"); err != nil {
				return err
			}
			if slices.Contains(p.opts.Formats, pipeline.FormatPDF) && !render.Available() {
				printWarning("rsvg-convert not found on PATH; skipping pdf")
				p.opts.Formats = slices.DeleteFunc(p.opts.Formats, func(f string) bool { return f == pipeline.FormatPDF })
				if len(p.opts.Formats) == 0 {
					return errors.New(errors.ErrCodeUnsupported, "pdf output needs rsvg-convert")
				}
			}
			if len(args) == 1 {
				p.input = args[0]
			} else if err := chip.apply(&p.opts); err != nil {
				return err
			}
			return c.runDraw(cmd.Context(), p)
		},
	}

	chip.register(cmd)
	cmd.Flags().StringVarP(&p.output, "output", "o", "", "output path; the format extension is added (default: chip)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVar(&p.opts.Palette, "palette", "", "colour palette: default, blueprint")
	cmd.Flags().Float64Var(&p.opts.Scale, "scale", 0, "PNG pixels per µm (default 0.5)")
	cmd.Flags().BoolVar(&p.opts.NoShade, "no-shade", false, "omit plaquette shading")
	cmd.Flags().BoolVar(&p.opts.NoLabels, "no-labels", false, "omit qubit and coupler labels")
	cmd.Flags().BoolVar(&p.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&p.opts.Refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// graphCommand creates the graph command for drawing the coupling graph.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		chip       chipFlags
		formatsStr string
		p          drawParams
	)

	cmd := &cobra.Command{
		Use:   "graph [layout.json]",
		Short: "Draw the qubit coupling graph with Graphviz",
		Long: `Draw the qubit coupling graph with Graphviz.

Qubits become nodes pinned at their lattice positions and couplers become
edges, coloured by whether the coupler is mirrored.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.opts.VizType = pipeline.VizTypeGraph
			p.opts.Formats = parseFormats(formatsStr, pipeline.FormatSVG)
			if err := requireFormats(p.opts.Formats, pipeline.ValidFormats, "2D"); err != nil {
				return err
			}
			if len(args) == 1 {
				p.input = args[0]
			} else if err := chip.apply(&p.opts); err != nil {
				return err
			}
			if p.output == "" {
				p.output = basePath("", p.input, pipeline.DefaultName) + ".graph"
			}
			return c.runDraw(cmd.Context(), p)
		},
	}

	chip.register(cmd)
	cmd.Flags().StringVarP(&p.output, "output", "o", "", "output path; the format extension is added (default: chip.graph)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot (comma-separated)")
	cmd.Flags().BoolVar(&p.opts.Detailed, "detailed", false, "add site coordinates and coupler directions to labels")
	cmd.Flags().Float64Var(&p.opts.Scale, "scale", 0, "PNG scale factor (default 2)")
	cmd.Flags().BoolVar(&p.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runDraw places (or loads) the layout, renders it and writes the files.
func (c *CLI) runDraw(ctx context.Context, p drawParams) error {
	runner, err := c.newRunner(p.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", strings.Join(p.opts.Formats, ", ")))
	spinner.Start()

	var (
		artifacts map[string][]byte
		stats     chipStats
	)
	if p.input != "" {
		var l layout.Layout
		l, err = layout.ReadLayoutFile(p.input)
		if err == nil {
			artifacts, stats.cached, err = runner.RenderWithCacheInfo(ctx, l, p.opts)
			stats.sites, stats.couplers = len(l.Qubits), len(l.Couplers)
		}
	} else {
		var res *pipeline.Result
		res, err = runner.Execute(ctx, p.opts)
		if err == nil {
			artifacts = res.Artifacts
			stats = chipStats{sites: res.Stats.Sites, couplers: res.Stats.Couplers, cached: res.CacheInfo.RenderHit}
		}
	}
	spinner.Stop()
	if err != nil {
		printError("Rendering failed")
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	c.Logger.Debug("rendered", "artifacts", len(artifacts), "cached", stats.cached)
	paths, err := writeArtifacts(basePath(p.output, p.input, pipeline.DefaultName), p.opts.Formats, artifacts)
	if err != nil {
		return err
	}

	printSuccess("Rendered %d file(s)", len(paths))
	for _, path := range paths {
		printFile(path)
	}
	printStats(stats)
	return nil
}
