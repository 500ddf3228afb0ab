package mesh

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/geom"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func mustValid(t *testing.T, m Mesh) {
	t.Helper()
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if v := m.SignedVolume(); v <= 0 {
		t.Fatalf("SignedVolume() = %v, want > 0", v)
	}
}

func TestCuboid(t *testing.T) {
	m := Cuboid(geom.V3(1, 2, 3), geom.V3(2, 4, 6))
	mustValid(t, m)
	if m.NumVertices() != 8 || m.NumFaces() != 6 {
		t.Errorf("cuboid has %d vertices, %d faces; want 8, 6", m.NumVertices(), m.NumFaces())
	}
	if got := m.SignedVolume(); math.Abs(got-48) > 1e-9 {
		t.Errorf("SignedVolume() = %v, want 48", got)
	}
	lo, hi := m.Bounds()
	if diff := cmp.Diff([]geom.Vec3{{X: 0, Y: 0, Z: 0}, {X: 2, Y: 4, Z: 6}}, []geom.Vec3{lo, hi}, approx); diff != "" {
		t.Errorf("Bounds() mismatch (-want +got):\n%s", diff)
	}
}

func TestPrism(t *testing.T) {
	m := Prism(geom.Rect{Center: geom.V2(10, 0), W: 4, H: 2, Angle: 90}, 0, 3)
	mustValid(t, m)
	lo, hi := m.Bounds()
	want := []geom.Vec3{{X: 9, Y: -2, Z: 0}, {X: 11, Y: 2, Z: 3}}
	if diff := cmp.Diff(want, []geom.Vec3{lo, hi}, approx); diff != "" {
		t.Errorf("Bounds() mismatch (-want +got):\n%s", diff)
	}
	if got := m.SignedVolume(); math.Abs(got-24) > 1e-9 {
		t.Errorf("SignedVolume() = %v, want 24", got)
	}
}

func TestExtrudedPath(t *testing.T) {
	tests := []struct {
		name string
		pts  []geom.Vec2
	}{
		{"straight", []geom.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}}},
		{"elbow", []geom.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}},
		{"backwards", []geom.Vec2{{X: 0, Y: 0}, {X: -5, Y: 0}, {X: -10, Y: 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ExtrudedPath(tt.pts, 2, 0, 3)
			if err != nil {
				t.Fatal(err)
			}
			mustValid(t, m)
			if want := 4 * len(tt.pts); m.NumVertices() != want {
				t.Errorf("NumVertices() = %d, want %d", m.NumVertices(), want)
			}
			if want := 4*(len(tt.pts)-1) + 2; m.NumFaces() != want {
				t.Errorf("NumFaces() = %d, want %d", m.NumFaces(), want)
			}
		})
	}

	straight, _ := ExtrudedPath(tests[0].pts, 2, 0, 3)
	if got := straight.SignedVolume(); math.Abs(got-60) > 1e-9 {
		t.Errorf("straight SignedVolume() = %v, want 60", got)
	}
}

func TestExtrudedPathCoincidentPoints(t *testing.T) {
	m, err := ExtrudedPath([]geom.Vec2{{X: 1, Y: 1}, {X: 1, Y: 1}}, 2, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	// Zero tangent falls back to +X, so the section spans Y.
	if got := m.Vertices[0]; got != geom.V3(1, 0, 0) {
		t.Errorf("first vertex = %v, want (1, 0, 0)", got)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestExtrudedPathErrors(t *testing.T) {
	if _, err := ExtrudedPath([]geom.Vec2{{X: 0, Y: 0}}, 1, 0, 1); !errors.Is(err, errors.ErrCodeDegenerateGeometry) {
		t.Errorf("single point error = %v", err)
	}
	if _, err := ExtrudedPath([]geom.Vec2{{}, {X: 1}}, 0, 0, 1); !errors.Is(err, errors.ErrCodeInvalidDimension) {
		t.Errorf("zero width error = %v", err)
	}
}

func TestDoubleProfile(t *testing.T) {
	p := BridgeParams{Length: 20, Width: 2, HStep: 3, Thickness: 3, Overlap: 1.5, Steepness: 2}
	z := p.DoubleProfile()
	tests := []struct {
		x, want, tol float64
	}{
		{-10, 3, 0.2},
		{0, 0, 1e-6},
		{10, 3, 0.2},
	}
	for _, tt := range tests {
		if got := z(tt.x); math.Abs(got-tt.want) > tt.tol {
			t.Errorf("z(%v) = %v, want %v ± %v", tt.x, got, tt.want, tt.tol)
		}
	}
	if math.Abs(z(-3)-z(3)) > 1e-12 {
		t.Errorf("profile not symmetric: z(-3)=%v z(3)=%v", z(-3), z(3))
	}
}

func TestHalfProfile(t *testing.T) {
	p := BridgeParams{Length: 20, Width: 2, HStep: 3, Thickness: 3, Overlap: 1.5, Steepness: 2}
	z := p.HalfProfile()
	if got := z(-10); got > 1e-6 {
		t.Errorf("z(-10) = %v, want ≈ 0", got)
	}
	if got := z(10); math.Abs(got-3) > 0.2 {
		t.Errorf("z(10) = %v, want ≈ 3", got)
	}
	if got := z(8.5); math.Abs(got-1.5) > 1e-9 {
		t.Errorf("z(step) = %v, want h/2", got)
	}
}

func TestDolanBridge(t *testing.T) {
	p := BridgeParams{Length: 27, Width: 12.75, HStep: 2.95, Thickness: 3, Overlap: 6}
	m, err := DolanBridge(p)
	if err != nil {
		t.Fatal(err)
	}
	mustValid(t, m)
	if m.NumVertices() != 4*DefaultBridgeSamples {
		t.Errorf("NumVertices() = %d, want %d", m.NumVertices(), 4*DefaultBridgeSamples)
	}
	lo, hi := m.Bounds()
	if math.Abs(lo.X+13.5) > 1e-9 || math.Abs(hi.X-13.5) > 1e-9 {
		t.Errorf("X extent = [%v, %v], want ±13.5", lo.X, hi.X)
	}
	if lo.Z < 0 || hi.Z > 2*2.95+3 {
		t.Errorf("Z extent = [%v, %v] out of range", lo.Z, hi.Z)
	}
}

func TestHalfBridge(t *testing.T) {
	m, err := HalfBridge(BridgeParams{Length: 23, Width: 6, HStep: 2.95, Thickness: 3, Overlap: 6})
	if err != nil {
		t.Fatal(err)
	}
	mustValid(t, m)
	if m.NumVertices() != 4*DefaultHalfBridgeSamples {
		t.Errorf("NumVertices() = %d, want %d", m.NumVertices(), 4*DefaultHalfBridgeSamples)
	}
}

func TestBridgeValidation(t *testing.T) {
	base := BridgeParams{Length: 20, Width: 2, HStep: 3, Thickness: 1, Overlap: 1.5}
	tests := []struct {
		name   string
		mutate func(*BridgeParams)
		half   bool
		code   errors.Code
	}{
		{"zero length", func(p *BridgeParams) { p.Length = 0 }, false, errors.ErrCodeInvalidDimension},
		{"zero width", func(p *BridgeParams) { p.Width = 0 }, false, errors.ErrCodeInvalidDimension},
		{"zero thickness", func(p *BridgeParams) { p.Thickness = 0 }, true, errors.ErrCodeInvalidDimension},
		{"one sample", func(p *BridgeParams) { p.Samples = 1 }, false, errors.ErrCodeInvalidDimension},
		{"overlap meets", func(p *BridgeParams) { p.Overlap = 10 }, false, errors.ErrCodeDegenerateGeometry},
		{"half overlap", func(p *BridgeParams) { p.Overlap = 20 }, true, errors.ErrCodeDegenerateGeometry},
		{"undersampled", func(p *BridgeParams) { p.Samples = 10 }, false, errors.ErrCodeDegenerateGeometry},
		{"too steep", func(p *BridgeParams) { p.Steepness = 50 }, true, errors.ErrCodeDegenerateGeometry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)
			build := DolanBridge
			if tt.half {
				build = HalfBridge
			}
			if _, err := build(p); !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestMinSamples(t *testing.T) {
	for _, tt := range []struct{ length, k float64 }{{20, 2}, {200, 2}, {27, 8}} {
		p := BridgeParams{Length: tt.length, Width: 1, HStep: 1, Thickness: 1, Steepness: tt.k, Samples: MinSamples(tt.length, tt.k)}
		if _, err := DolanBridge(p); err != nil {
			t.Errorf("MinSamples(%v, %v) = %d rejected: %v", tt.length, tt.k, p.Samples, err)
		}
	}
}

func TestTransformAndMerge(t *testing.T) {
	a := Cuboid(geom.V3(0, 0, 0), geom.V3(2, 2, 2))
	b := a.Place(geom.Placement{Origin: geom.V2(10, 0), Angle: 90}, 5)
	if got := b.Vertices[0]; cmp.Diff(geom.V3(11, -1, 4), got, approx) != "" {
		t.Errorf("placed vertex = %v, want (11, -1, 4)", got)
	}
	if a.Vertices[0] != geom.V3(-1, -1, -1) {
		t.Error("Place modified the receiver")
	}

	m := Merge(a, b)
	mustValid(t, m)
	if m.NumVertices() != 16 || m.NumFaces() != 12 {
		t.Errorf("merged %d vertices, %d faces", m.NumVertices(), m.NumFaces())
	}
	if got := m.SignedVolume(); math.Abs(got-16) > 1e-9 {
		t.Errorf("merged volume = %v, want 16", got)
	}
	if got := a.Scale(0.5).SignedVolume(); math.Abs(got-1) > 1e-9 {
		t.Errorf("scaled volume = %v, want 1", got)
	}
}

func TestValidateRejects(t *testing.T) {
	open := Cuboid(geom.V3(0, 0, 0), geom.V3(1, 1, 1))
	open.Faces = open.Faces[:len(open.Faces)-1]
	if err := open.Validate(); !errors.Is(err, errors.ErrCodeDegenerateGeometry) {
		t.Errorf("open mesh error = %v", err)
	}

	flipped := Cuboid(geom.V3(0, 0, 0), geom.V3(1, 1, 1))
	f := flipped.Faces[0]
	flipped.Faces[0] = []int{f[3], f[2], f[1], f[0]}
	if err := flipped.Validate(); err == nil {
		t.Error("inconsistent winding accepted")
	}

	if err := (Mesh{}).Validate(); err == nil {
		t.Error("empty mesh accepted")
	}
}

func TestWriteOBJ(t *testing.T) {
	var buf bytes.Buffer
	o := NewOBJWriter(&buf, "chip.mtl")
	cube := Cuboid(geom.V3(0, 0, 0), geom.V3(1, 1, 1))
	if err := o.Object("D0 cross", "aluminum", cube); err != nil {
		t.Fatal(err)
	}
	if err := o.Object("D1", "", cube); err != nil {
		t.Fatal(err)
	}
	if err := o.Flush(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"mtllib chip.mtl\n", "o D0_cross\n", "usemtl aluminum\n", "o D1\n", "f 9 10 14 13\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("OBJ output missing %q", want)
		}
	}
	if got := strings.Count(out, "\nv "); got != 16 {
		t.Errorf("OBJ has %d vertices, want 16", got)
	}
}

func TestWriteSTL(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSTL(&buf, "chip", Cuboid(geom.V3(0, 0, 0), geom.V3(1, 1, 1))); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "solid chip\n") || !strings.HasSuffix(out, "endsolid chip\n") {
		t.Errorf("STL framing wrong:\n%s", out)
	}
	if got := strings.Count(out, "facet normal"); got != 12 {
		t.Errorf("STL has %d facets, want 12", got)
	}
}
