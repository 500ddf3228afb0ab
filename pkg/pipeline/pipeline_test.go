package pipeline

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/qchip/pkg/dims"
	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/layout"
	"github.com/matzehuels/qchip/pkg/observability"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"obj", false},
		{"mtl", false},
		{"stl", false},
		{"scene", false},
		{"gif", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestSplitFormats(t *testing.T) {
	flat, scene := SplitFormats([]string{"obj", "svg", "stl", "json"})
	if diff := cmp.Diff([]string{"svg", "json"}, flat); diff != "" {
		t.Errorf("flat (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"obj", "stl"}, scene); diff != "" {
		t.Errorf("scene (-want +got):\n%s", diff)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("zero options should validate: %v", err)
	}

	if opts.Pattern != layout.PatternCheckerboard {
		t.Errorf("Pattern = %q", opts.Pattern)
	}
	if opts.FirstCell != "resonator" {
		t.Errorf("FirstCell = %q", opts.FirstCell)
	}
	if diff := cmp.Diff([]string{FormatSVG}, opts.Formats); diff != "" {
		t.Errorf("Formats (-want +got):\n%s", diff)
	}
	if opts.VizType != VizTypeChip || opts.Name != DefaultName || opts.SceneScale != 0.01 {
		t.Errorf("render defaults = %q %q %g", opts.VizType, opts.Name, opts.SceneScale)
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"empty lattice", Options{Rows: -1}, errors.ErrCodeInvalidLattice},
		{"bad component", Options{Config: &dims.ChipConfig{}}, errors.ErrCodeInvalidLattice},
		{"pattern", Options{Pattern: "stripes"}, errors.ErrCodeInvalidInput},
		{"first cell", Options{FirstCell: "qubit"}, errors.ErrCodeInvalidInput},
		{"format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"viz type", Options{VizType: "tower"}, errors.ErrCodeInvalidVizType},
		{"palette", Options{Palette: "neon"}, errors.ErrCodeInvalidStyle},
		{"scale", Options{Scale: -1}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestChipConfigOverrides(t *testing.T) {
	base := dims.DefaultChipConfig()
	base.Lattice.Pitch = 800
	opts := Options{Config: &base, Rows: 2, Cols: 5}

	cfg := opts.ChipConfig()
	if cfg.Lattice.Rows != 2 || cfg.Lattice.Cols != 5 || cfg.Lattice.Pitch != 800 {
		t.Errorf("lattice = %+v", cfg.Lattice)
	}
	if base.Lattice.Rows != 3 {
		t.Error("ChipConfig must not modify the caller's config")
	}
}

func TestArtifactKeysDependOnVizType(t *testing.T) {
	chip := Options{VizType: VizTypeChip}
	graph := Options{VizType: VizTypeGraph}
	if chip.ArtifactKeyOpts("svg") == graph.ArtifactKeyOpts("svg") {
		t.Error("svg keys should differ between chip and graph")
	}
	if chip.ArtifactKeyOpts("json") != graph.ArtifactKeyOpts("json") {
		t.Error("json is the layout itself and should share a key")
	}
}

func TestGenerateLayoutKeepsPalette(t *testing.T) {
	cfg := dims.DefaultChipConfig()
	cfg.Lattice.Rows, cfg.Lattice.Cols = 1, 2
	cfg.Palette = dims.Palette{dims.RoleResonator: "#112233"}
	opts := Options{Config: &cfg}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	l, err := GenerateLayout(opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Qubits) != 2 || len(l.Couplers) != 1 {
		t.Errorf("counts = %d/%d, want 2/1", len(l.Qubits), len(l.Couplers))
	}
	if l.Config.Palette[dims.RoleResonator] != "#112233" {
		t.Errorf("palette lost: %v", l.Config.Palette)
	}
}

func TestRenderGraphDOT(t *testing.T) {
	opts := Options{Rows: 2, Cols: 2, VizType: VizTypeGraph, Formats: []string{FormatDOT}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	l, err := GenerateLayout(opts)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Render(l, opts)
	if err != nil {
		t.Fatal(err)
	}
	dot := string(out[FormatDOT])
	if !strings.HasPrefix(dot, "graph G {") || strings.Count(dot, " -- ") != 4 {
		t.Errorf("unexpected DOT:\n%s", dot)
	}
}

func TestExecuteCaching(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := NewRunner(mc, nil, quietLogger())
	formats := []string{FormatSVG, FormatJSON, FormatDOT, FormatOBJ, FormatMTL}

	first, err := r.Execute(ctx, Options{Rows: 2, Cols: 2, Formats: formats})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if first.CacheInfo != (CacheInfo{}) {
		t.Errorf("first run CacheInfo = %+v, want all misses", first.CacheInfo)
	}
	for _, f := range formats {
		if len(first.Artifacts[f]) == 0 {
			t.Errorf("missing artifact %s", f)
		}
	}
	if first.Stats.Sites != 4 || first.Stats.Couplers != 4 {
		t.Errorf("stats = %+v", first.Stats)
	}
	if !bytes.HasPrefix(first.Artifacts[FormatOBJ], []byte("# qchip\nmtllib chip.mtl\n")) {
		t.Errorf("obj header: %q", first.Artifacts[FormatOBJ][:40])
	}

	second, err := r.Execute(ctx, Options{Rows: 2, Cols: 2, Formats: formats})
	if err != nil {
		t.Fatal(err)
	}
	want := CacheInfo{LayoutHit: true, RenderHit: true, SceneHit: true}
	if second.CacheInfo != want {
		t.Errorf("second run CacheInfo = %+v, want %+v", second.CacheInfo, want)
	}
	for _, f := range formats {
		if !bytes.Equal(first.Artifacts[f], second.Artifacts[f]) {
			t.Errorf("cached %s differs from the rendered one", f)
		}
	}
	if first.LayoutHash == "" || first.LayoutHash != second.LayoutHash {
		t.Errorf("layout hash %q vs %q", first.LayoutHash, second.LayoutHash)
	}

	refreshed, err := r.Execute(ctx, Options{Rows: 2, Cols: 2, Formats: formats, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheInfo != (CacheInfo{}) {
		t.Errorf("refresh CacheInfo = %+v, want all misses", refreshed.CacheInfo)
	}
}

func TestExecuteDifferentOptionsMiss(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(newMemCache(), nil, quietLogger())

	if _, err := r.Execute(ctx, Options{Rows: 2, Cols: 2}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, Options{Rows: 2, Cols: 2, FirstCell: "flux_line"})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("a different first cell must not reuse the cached layout")
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(nil, nil, quietLogger())
	if _, err := r.Execute(ctx, Options{Rows: 1, Cols: 1}); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRunnerHooks(t *testing.T) {
	defer observability.Reset()
	h := &countingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)

	r := NewRunner(newMemCache(), nil, quietLogger())
	opts := Options{Rows: 1, Cols: 2, Formats: []string{FormatSVG, FormatSTL}}
	for range 2 {
		if _, err := r.Execute(context.Background(), opts); err != nil {
			t.Fatal(err)
		}
	}
	if h.layouts != 1 || h.renders != 1 || h.scenes != 1 {
		t.Errorf("stage runs = %d/%d/%d, want 1/1/1", h.layouts, h.renders, h.scenes)
	}
	if h.hits != 3 || h.sets != 3 {
		t.Errorf("cache hits/sets = %d/%d, want 3/3", h.hits, h.sets)
	}
}

// =============================================================================
// Test helpers
// =============================================================================

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[key]
	return d, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memCache) Close() error { return nil }

type countingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks
	layouts, renders, scenes int
	hits, sets               int
}

func (h *countingHooks) OnLayoutStart(context.Context, int, int) { h.layouts++ }
func (h *countingHooks) OnRenderStart(context.Context, []string) { h.renders++ }
func (h *countingHooks) OnSceneStart(context.Context, int, int)  { h.scenes++ }
func (h *countingHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingHooks) OnCacheSet(context.Context, string, int) { h.sets++ }
