// Package cli implements the qchip command-line interface.
//
// Commands:
//   - layout: place a lattice and write the layout as JSON
//   - render: draw a chip (or a saved layout) as SVG, PNG, PDF or DOT
//   - mesh: export the 3D chip as OBJ/MTL, STL or a JSON scene
//   - graph: draw the coupling graph through graphviz
//   - preview: browse the lattice interactively in the terminal
//   - config: create, show and validate TOML dimension files
//   - cache: inspect and clear the local cache
//   - serve: run the HTTP API
//
// All commands accept --verbose (-v) for debug logging.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/qchip/pkg/buildinfo"
	"github.com/matzehuels/qchip/pkg/cache"
	"github.com/matzehuels/qchip/pkg/dims"
	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "qchip"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "qchip lays out superconducting qubit lattices",
		Long:         `qchip places fluxonium qubits and tunable couplers on a checkerboard lattice and exports the chip as 2D drawings or watertight 3D meshes.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.meshCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/qchip/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Chip Flags
// =============================================================================

// chipFlags are the lattice options shared by every command that builds a chip.
type chipFlags struct {
	config    string
	rows      int
	cols      int
	pitch     float64
	pattern   string
	firstCell string
}

func (f *chipFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "TOML dimension file (default: built-in dimensions)")
	cmd.Flags().IntVar(&f.rows, "rows", 0, "lattice rows (overrides config)")
	cmd.Flags().IntVar(&f.cols, "cols", 0, "lattice columns (overrides config)")
	cmd.Flags().Float64Var(&f.pitch, "pitch", 0, "site spacing in µm (overrides config; 0 keeps config or auto)")
	cmd.Flags().StringVar(&f.pattern, "pattern", "checkerboard", "coupler orientation pattern: checkerboard, none")
	cmd.Flags().StringVar(&f.firstCell, "first-cell", "resonator", "type of cell (0,0): resonator, flux_line")
}

// apply loads the config file and copies the flags into opts.
func (f *chipFlags) apply(opts *pipeline.Options) error {
	if f.config != "" {
		cfg, err := dims.LoadFile(f.config)
		if err != nil {
			return err
		}
		opts.Config = &cfg
	}
	opts.Rows = f.rows
	opts.Cols = f.cols
	opts.Pitch = f.pitch
	opts.Pattern = f.pattern
	opts.FirstCell = f.firstCell
	return nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s, fallback string) []string {
	if s == "" {
		return []string{fallback}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// requireFormats rejects formats outside allowed.
func requireFormats(formats []string, allowed map[string]bool, kind string) error {
	for _, f := range formats {
		if err := pipeline.ValidateFormat(f); err != nil {
			return err
		}
		if !allowed[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "format %q is not a %s format", f, kind)
		}
	}
	return nil
}
