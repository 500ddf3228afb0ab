package cli

import (
	"context"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qchip/pkg/pipeline"
)

// meshCommand creates the mesh command for 3D export.
func (c *CLI) meshCommand() *cobra.Command {
	var (
		chip       chipFlags
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "mesh",
		Short: "Export the chip as watertight 3D meshes",
		Long: `Export the chip as watertight 3D meshes.

Every qubit, coupler, bridge and the substrate become closed, outward-wound
meshes. OBJ output is always paired with an MTL material library of the same
base name. Units are scaled by --scene-scale (default 0.01, so 1 µm = 0.01).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = meshFormats(parseFormats(formatsStr, pipeline.FormatOBJ))
			if err := requireFormats(opts.Formats, pipeline.ValidSceneFormats, "3D"); err != nil {
				return err
			}
			if err := chip.apply(&opts); err != nil {
				return err
			}
			return c.runMesh(cmd.Context(), opts, output, noCache)
		},
	}

	chip.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path; the format extension is added (default: chip)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): obj (default), stl, scene (comma-separated)")
	cmd.Flags().BoolVar(&opts.NoMirror, "no-mirror", false, "ignore the checkerboard when orienting couplers")
	cmd.Flags().BoolVar(&opts.NoSubstrate, "no-substrate", false, "omit the substrate slab")
	cmd.Flags().Float64Var(&opts.SceneScale, "scene-scale", 0, "scene units per µm (default 0.01)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "rebuild even when cached")

	return cmd
}

// meshFormats adds mtl next to obj.
func meshFormats(formats []string) []string {
	if slices.Contains(formats, pipeline.FormatOBJ) && !slices.Contains(formats, pipeline.FormatMTL) {
		formats = append(formats, pipeline.FormatMTL)
	}
	return formats
}

func (c *CLI) runMesh(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	base := basePath(output, "", pipeline.DefaultName)
	opts.Name = filepath.Base(base)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Building meshes...")
	spinner.Start()
	artifacts, cacheHit, err := runner.SceneWithCacheInfo(ctx, opts)
	spinner.Stop()
	if err != nil {
		printError("Mesh export failed")
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	prog.done("exported scene", "formats", opts.Formats, "cached", cacheHit)

	paths, err := writeArtifacts(base, opts.Formats, artifacts)
	if err != nil {
		return err
	}

	printSuccess("Exported %d file(s)", len(paths))
	for _, path := range paths {
		printFile(path)
	}
	printStats(chipStats{cached: cacheHit})
	return nil
}
