package sink

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/qchip/pkg/dims"
	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/geom"
	"github.com/matzehuels/qchip/pkg/lattice"
	"github.com/matzehuels/qchip/pkg/layout"
)

func tiny() layout.Layout {
	shade := geom.NewRect(dims.RoleCellResonator, geom.RectXYWH(0, 0, 100, 50)).WithZ(geom.ZShading)
	shade.Alpha = 0.15
	return layout.Layout{
		Pattern: layout.PatternNone,
		Bounds:  geom.BBox{Min: geom.V2(0, 0), Max: geom.V2(100, 50)},
		Shapes: []geom.Shape{
			geom.NewRect(dims.RoleXmonBody, geom.Rect{Center: geom.V2(50, 25), W: 40, H: 20}),
			shade,
			geom.NewRect(dims.RoleFluxLine, geom.Rect{Center: geom.V2(10, 10), W: 4, H: 4}),
		},
		Labels: []layout.Label{{Text: "D0", Kind: layout.LabelQubit, Position: geom.V2(50, 10)}},
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(tiny()))

	for _, want := range []string{
		`viewBox="0 0 100.0 50.0"`,
		`fill="#F5F5F7"`,
		`fill-opacity="0.15"`,
		// lower-left corner of the flux line, flipped into image space
		`points="8.00,42.00 12.00,42.00 12.00,38.00 8.00,38.00"`,
		`>D0</text>`,
		`x="50.00" y="40.00"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}

	shade := strings.Index(svg, `class="cell_resonator"`)
	body := strings.Index(svg, `class="xmon_body"`)
	if shade < 0 || body < 0 || shade > body {
		t.Errorf("shading at %d should be drawn before the body at %d", shade, body)
	}
	if n := strings.Count(svg, "<polygon"); n != 3 {
		t.Errorf("polygons = %d, want 3", n)
	}
}

func TestRenderSVGOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    []SVGOption
		want    []string
		notWant []string
	}{
		{
			name:    "no labels",
			opts:    []SVGOption{WithoutLabels()},
			notWant: []string{"<text"},
		},
		{
			name: "palette override",
			opts: []SVGOption{WithPalette(dims.Palette{dims.RoleXmonBody: "#123456"})},
			want: []string{`class="xmon_body" points="30.00,35.00 70.00,35.00 70.00,15.00 30.00,15.00" fill="#123456"`},
		},
		{
			name: "width",
			opts: []SVGOption{WithWidth(200)},
			want: []string{`width="200" height="100"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := string(RenderSVG(tiny(), tt.opts...))
			for _, w := range tt.want {
				if !strings.Contains(svg, w) {
					t.Errorf("SVG missing %q", w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(svg, w) {
					t.Errorf("SVG contains %q", w)
				}
			}
		})
	}
}

func TestRenderSVGLayoutPalette(t *testing.T) {
	l := tiny()
	l.Config.Palette = dims.Palette{dims.RoleBackground: "#000000"}
	if svg := string(RenderSVG(l)); !strings.Contains(svg, `fill="#000000"`) {
		t.Error("layout palette not applied to background")
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	svg := string(RenderSVG(layout.Layout{}))
	if !strings.Contains(svg, `viewBox="0 0 2.0 2.0"`) {
		t.Errorf("empty layout viewBox: %s", svg)
	}
}

func TestRenderSVGLattice(t *testing.T) {
	lat, err := lattice.FromConfig(dims.DefaultChipConfig())
	if err != nil {
		t.Fatal(err)
	}
	l, err := lat.Place(lattice.DefaultPlaceOptions())
	if err != nil {
		t.Fatal(err)
	}
	svg := string(RenderSVG(l))
	if n := strings.Count(svg, "<polygon"); n != len(l.Shapes) {
		t.Errorf("polygons = %d, want %d", n, len(l.Shapes))
	}
	if n := strings.Count(svg, "<text"); n != len(l.Labels) {
		t.Errorf("labels = %d, want %d", n, len(l.Labels))
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(tiny(), WithScale(1))
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("size = %dx%d, want 100x50", b.Dx(), b.Dy())
	}

	tests := []struct {
		name    string
		x, y    int
		r, g, b uint32
	}{
		{"body", 50, 25, 0x9E, 0xAA, 0xB2},
		{"flux line", 10, 40, 0x8B, 0x6C, 0x42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, _ := img.At(tt.x, tt.y).RGBA()
			if !near(r>>8, tt.r) || !near(g>>8, tt.g) || !near(b>>8, tt.b) {
				t.Errorf("pixel = #%02X%02X%02X, want #%02X%02X%02X", r>>8, g>>8, b>>8, tt.r, tt.g, tt.b)
			}
		})
	}
}

func near(a, b uint32) bool {
	d := int(a) - int(b)
	return d >= -3 && d <= 3
}

func TestRenderPNGErrors(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		code  errors.Code
	}{
		{"zero scale", 0, errors.ErrCodeInvalidDimension},
		{"too large", 1000, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RenderPNG(tiny(), WithScale(tt.scale))
			if !errors.Is(err, tt.code) {
				t.Errorf("RenderPNG() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRenderJSON(t *testing.T) {
	in := tiny()
	data, err := RenderJSON(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := layout.UnmarshalLayout(data)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(RenderSVG(in), RenderSVG(out)) {
		t.Error("re-rendered JSON layout differs")
	}
}
