// Package pipeline provides the core chip pipeline shared by the CLI and the
// API server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Layout: resolve the chip config and place the lattice
//  2. Render: draw the layout (SVG, PNG, PDF, JSON, DOT)
//  3. Scene: build watertight 3D meshes (OBJ, MTL, STL, scene JSON)
//
// Each stage can be run independently or as part of [Runner.Execute]. The
// layout and every artifact are cached by content hash, so the same chip
// config produces a cache hit regardless of which front end asked for it.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Rows:    4,
//	    Cols:    4,
//	    Formats: []string{"svg", "obj"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/qchip/pkg/cache"
	"github.com/matzehuels/qchip/pkg/chip3d"
	"github.com/matzehuels/qchip/pkg/dims"
	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/lattice"
	"github.com/matzehuels/qchip/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultVizType draws the full chip geometry.
	DefaultVizType = VizTypeChip

	// DefaultName is the base name used for the OBJ material library.
	DefaultName = "chip"

	// DefaultGraphScale is the PNG scale for connectivity graphs.
	DefaultGraphScale = 2.0
)

// Visualization types for 2D output.
const (
	VizTypeChip  = "chip"
	VizTypeGraph = "graph"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"

	FormatOBJ   = "obj"
	FormatMTL   = "mtl"
	FormatSTL   = "stl"
	FormatScene = "scene"
)

// ValidFormats is the set of supported 2D output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidSceneFormats is the set of supported 3D output formats.
var ValidSceneFormats = map[string]bool{
	FormatOBJ:   true,
	FormatMTL:   true,
	FormatSTL:   true,
	FormatScene: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeChip:  true,
	VizTypeGraph: true,
}

// FormatExt returns the file extension for an output format.
func FormatExt(format string) string {
	if format == FormatScene {
		return "scene.json"
	}
	return format
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Chip options. Rows, Cols and Pitch override Config when non-zero.
	Config *dims.ChipConfig `json:"config,omitempty"`
	Rows   int              `json:"rows,omitempty"`
	Cols   int              `json:"cols,omitempty"`
	Pitch  float64          `json:"pitch,omitempty"`

	// Layout options
	Pattern   string `json:"pattern,omitempty"`
	FirstCell string `json:"first_cell,omitempty"`
	NoShade   bool   `json:"no_shade,omitempty"`
	NoLabels  bool   `json:"no_labels,omitempty"`

	// Render options
	VizType  string   `json:"viz_type,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	Palette  string   `json:"palette,omitempty"`
	Scale    float64  `json:"scale,omitempty"` // PNG pixels per chip unit
	Detailed bool     `json:"detailed,omitempty"`

	// Scene options
	NoMirror    bool    `json:"no_mirror,omitempty"`
	NoSubstrate bool    `json:"no_substrate,omitempty"`
	SceneScale  float64 `json:"scene_scale,omitempty"`
	Name        string  `json:"name,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the placed lattice.
	Layout layout.Layout

	// LayoutHash is the content hash of the serialized layout.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Sites      int           `json:"sites" bson:"sites"`
	Couplers   int           `json:"couplers" bson:"couplers"`
	Shapes     int           `json:"shapes" bson:"shapes"`
	LayoutTime time.Duration `json:"layout_ns" bson:"layout_ns"`
	RenderTime time.Duration `json:"render_ns" bson:"render_ns"`
	SceneTime  time.Duration `json:"scene_ns" bson:"scene_ns"`
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool `json:"layout_hit" bson:"layout_hit"` // Whether the layout came from cache
	RenderHit bool `json:"render_hit" bson:"render_hit"` // Whether all 2D artifacts came from cache
	SceneHit  bool `json:"scene_hit" bson:"scene_hit"`   // Whether all 3D artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is a known 2D or 3D format.
func ValidateFormat(format string) error {
	if !ValidFormats[format] && !ValidSceneFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(AllFormats(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType,
			"invalid viz_type: %q (must be one of: chip, graph)", vizType)
	}
	return nil
}

// ValidatePattern checks that a cell pattern is valid.
func ValidatePattern(pattern string) error {
	if pattern != layout.PatternCheckerboard && pattern != layout.PatternNone {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid pattern: %q (must be one of: %s, %s)", pattern, layout.PatternCheckerboard, layout.PatternNone)
	}
	return nil
}

// AllFormats returns every supported format, sorted.
func AllFormats() []string {
	all := slices.Collect(maps.Keys(ValidFormats))
	all = slices.AppendSeq(all, maps.Keys(ValidSceneFormats))
	slices.Sort(all)
	return all
}

// SplitFormats separates 2D formats from 3D formats, keeping order.
func SplitFormats(formats []string) (flat, scene []string) {
	for _, f := range formats {
		if ValidSceneFormats[f] {
			scene = append(scene, f)
		} else {
			flat = append(flat, f)
		}
	}
	return flat, scene
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ChipConfig returns the configuration with the size overrides applied.
func (o *Options) ChipConfig() dims.ChipConfig {
	cfg := dims.DefaultChipConfig()
	if o.Config != nil {
		cfg = *o.Config
	}
	if o.Rows != 0 {
		cfg.Lattice.Rows = o.Rows
	}
	if o.Cols != 0 {
		cfg.Lattice.Cols = o.Cols
	}
	if o.Pitch != 0 {
		cfg.Lattice.Pitch = o.Pitch
	}
	return cfg
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Pattern == "" {
		o.Pattern = layout.PatternCheckerboard
	}
	if o.FirstCell == "" {
		o.FirstCell = lattice.CellResonator.String()
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := o.ChipConfig().Validate(); err != nil {
		return err
	}
	if err := ValidatePattern(o.Pattern); err != nil {
		return err
	}
	_, err := lattice.ParseCellType(o.FirstCell)
	return err
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.SceneScale == 0 {
		o.SceneScale = chip3d.GlobalScale
	}
	if o.Name == "" {
		o.Name = DefaultName
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Palette != "" {
		if _, err := dims.LookupPalette(o.Palette); err != nil {
			return err
		}
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be >= 0 (got %g)", o.Scale)
	}
	return errors.Positive("scene_scale", o.SceneScale)
}

// IsGraph returns true if 2D output is the connectivity graph.
func (o *Options) IsGraph() bool {
	return o.VizType == VizTypeGraph
}

// CellType returns the parsed first-cell type. Call after validation.
func (o *Options) CellType() lattice.CellType {
	t, _ := lattice.ParseCellType(o.FirstCell)
	return t
}

// PlaceOptions returns the lattice placement options.
func (o *Options) PlaceOptions() lattice.PlaceOptions {
	p := lattice.DefaultPlaceOptions()
	p.Pattern = o.Pattern
	p.FirstCell = o.CellType()
	p.ShadeCells = !o.NoShade
	p.Labels = !o.NoLabels
	return p
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Pattern:   o.Pattern,
		FirstCell: o.CellType().String(),
		Shade:     !o.NoShade,
		Labels:    !o.NoLabels,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:  format,
		Palette: o.Palette,
		Scale:   o.Scale,
	}
	if format != FormatJSON {
		k.Format = o.VizType + ":" + format
		k.Detailed = o.Detailed
	}
	return k
}

// SceneKeyOpts returns cache key options for one scene format.
func (o *Options) SceneKeyOpts(format string) cache.SceneKeyOpts {
	k := cache.SceneKeyOpts{
		FirstCell: o.CellType().String(),
		Mirror:    !o.NoMirror && o.Pattern == layout.PatternCheckerboard,
		Substrate: !o.NoSubstrate,
		Scale:     o.SceneScale,
		Format:    format,
	}
	if format == FormatOBJ {
		k.Format += ":" + o.Name
	}
	return k
}
