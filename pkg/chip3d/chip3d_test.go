package chip3d

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/qchip/pkg/dims"
	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/geom"
	"github.com/matzehuels/qchip/pkg/lattice"
	"github.com/matzehuels/qchip/pkg/primitives"
	"github.com/matzehuels/qchip/pkg/qubits"
)

func names(objs []Object) []string {
	out := make([]string, len(objs))
	for i, o := range objs {
		out[i] = o.Name
	}
	return out
}

func TestMaterialCache(t *testing.T) {
	c := NewMaterialCache()
	if c.Len() != 0 {
		t.Fatalf("new cache has %d materials", c.Len())
	}
	m, err := c.Get(MatAluminum)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "Mat_aluminum" || m.Key != MatAluminum {
		t.Errorf("Get() = %+v", m)
	}
	c.Get(MatAluminum)
	c.Get(MatCoupler)
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if diff := cmp.Diff([]string{"Mat_aluminum", "Mat_coupler"}, []string{c.Materials()[0].Name, c.Materials()[1].Name}); diff != "" {
		t.Errorf("Materials() order (-want +got):\n%s", diff)
	}

	if _, err := c.Get("gold"); !errors.Is(err, errors.ErrCodeMaterialNotFound) {
		t.Errorf("Get(gold) error = %v, want MATERIAL_NOT_FOUND", err)
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
	if len(MaterialKeys()) != 5 {
		t.Errorf("MaterialKeys() = %v", MaterialKeys())
	}
}

func TestBuilderStickyError(t *testing.T) {
	b := NewBuilder(NewMaterialCache())
	b.Box("a", "gold", geom.Rect{W: 1, H: 1})
	b.Box("b", MatAluminum, geom.Rect{W: 1, H: 1})
	if !errors.Is(b.Err(), errors.ErrCodeMaterialNotFound) {
		t.Errorf("Err() = %v", b.Err())
	}
	if len(b.Objects()) != 0 {
		t.Errorf("objects added after error: %v", names(b.Objects()))
	}
}

func TestXmon3D(t *testing.T) {
	cross, err := primitives.NewCross(dims.DefaultXmon().Cross(), dims.RoleXmonBody)
	if err != nil {
		t.Fatal(err)
	}
	b := NewBuilder(NewMaterialCache())
	NewXmon3D(cross, MatAluminum).Place(b, geom.Placement{}, "X")
	want := []string{
		"X_Center",
		"X_Arm0", "X_Pad0", "X_Arm90", "X_Pad90",
		"X_Arm180", "X_Pad180", "X_Arm270", "X_Pad270",
	}
	if diff := cmp.Diff(want, names(b.Objects())); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	_, hi := b.Objects()[2].Mesh.Bounds()
	if math.Abs(hi.X-195) > 1e-9 || math.Abs(hi.Z-LayerHeight) > 1e-9 {
		t.Errorf("east pad reaches %v, want x=195 z=%v", hi, LayerHeight)
	}
}

func TestJJChain3D(t *testing.T) {
	chain, err := primitives.NewJJChain(dims.DefaultJJChain())
	if err != nil {
		t.Fatal(err)
	}
	j, err := NewJJChain3D(chain)
	if err != nil {
		t.Fatal(err)
	}
	b := NewBuilder(NewMaterialCache())
	j.Place(b, geom.Placement{}, "J")
	objs := b.Objects()
	if len(objs) != 11 {
		t.Fatalf("got %d objects, want 6 islands + 5 bridges", len(objs))
	}
	if objs[5].Name != "J_Island_5" || objs[6].Name != "J_Bridge_0" || objs[6].Material != "Mat_aluminum2" {
		t.Errorf("objects 5/6 = %s, %s (%s)", objs[5].Name, objs[6].Name, objs[6].Material)
	}
	// First bridge spans the first gap plus one overlap on each side.
	lo, hi := objs[6].Mesh.Bounds()
	if math.Abs(lo.X-14) > 1e-9 || math.Abs(hi.X-41) > 1e-9 {
		t.Errorf("bridge 0 spans x=[%v, %v], want [14, 41]", lo.X, hi.X)
	}
	if hi.Z > BridgeHStep+LayerHeight+1e-9 || lo.Z < 0 {
		t.Errorf("bridge 0 z range [%v, %v]", lo.Z, hi.Z)
	}
}

func TestDCSQUID3D(t *testing.T) {
	sq, err := primitives.NewDCSQUID(dims.DefaultDCSQUID())
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewDCSQUID3D(sq)
	if err != nil {
		t.Fatal(err)
	}
	b := NewBuilder(NewMaterialCache())
	s.Place(b, geom.Placement{}, "S")
	want := []string{"S_LegBot_Island", "S_JJ_Bot", "S_LegTop_Island", "S_JJ_Top", "S_UBar"}
	if diff := cmp.Diff(want, names(b.Objects())); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	// Turned half bridge: its ramp end overlaps the island just past the midpoint.
	lo, hi := b.Objects()[1].Mesh.Bounds()
	if math.Abs(lo.X-20) > 1e-9 || math.Abs(hi.X-40) > 1e-9 {
		t.Errorf("junction bridge spans x=[%v, %v], want [20, 40]", lo.X, hi.X)
	}
}

func newLattice(t *testing.T, rows, cols int) *lattice.Lattice {
	t.Helper()
	cfg := dims.DefaultChipConfig()
	cfg.Lattice.Rows, cfg.Lattice.Cols = rows, cols
	l, err := lattice.FromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestFluxonium3D(t *testing.T) {
	fx, err := qubits.NewFluxonium(dims.DefaultFluxonium())
	if err != nil {
		t.Fatal(err)
	}
	f, err := NewFluxonium3D(fx)
	if err != nil {
		t.Fatal(err)
	}
	b := NewBuilder(NewMaterialCache())
	f.Place(b, geom.Placement{}, "D0")
	objs := b.Objects()
	if len(objs) != 9+2*11+2 {
		t.Fatalf("got %d objects", len(objs))
	}
	if objs[9].Name != "D0_ChainA_Island_0" || objs[len(objs)-1].Name != "D0_ConnBridge" {
		t.Errorf("names: %s ... %s", objs[9].Name, objs[len(objs)-1].Name)
	}
}

func TestRender(t *testing.T) {
	l := newLattice(t, 2, 2)
	mats := NewMaterialCache()
	r, err := NewRenderer(l, mats)
	if err != nil {
		t.Fatal(err)
	}
	scene, err := r.Render(lattice.CellResonator)
	if err != nil {
		t.Fatal(err)
	}

	// 4 fluxonium × 33, 4 couplers × 16, substrate.
	if got, want := scene.Stats().Objects, 4*33+4*16+1; got != want {
		t.Errorf("Stats().Objects = %d, want %d", got, want)
	}
	for _, name := range []string{"D0_Xmon_Center", "D3_ConnBridge", "C0_SQUID_JJ_Top", "C3_Res_Meander", "C2_Flux_Line", "Substrate"} {
		if _, ok := scene.Object(name); !ok {
			t.Errorf("scene has no object %q", name)
		}
	}
	if err := scene.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	var keys []string
	for _, m := range scene.Materials {
		keys = append(keys, m.Key)
	}
	if diff := cmp.Diff([]string{MatAluminum, MatAluminum2, MatCoupler, MatSubstrate}, keys); diff != "" {
		t.Errorf("materials (-want +got):\n%s", diff)
	}

	center, _ := scene.Object("D0_Xmon_Center")
	lo, hi := center.Mesh.Bounds()
	if math.Abs(hi.X-0.15) > 1e-9 || math.Abs(lo.Y+0.15) > 1e-9 || math.Abs(hi.Z-0.03) > 1e-9 {
		t.Errorf("scaled center bounds = %v %v", lo, hi)
	}
	sub, _ := scene.Object("Substrate")
	if _, hi := sub.Mesh.Bounds(); math.Abs(hi.Z-SubstrateTop*GlobalScale) > 1e-12 {
		t.Errorf("substrate top = %v", hi.Z)
	}
}

func TestRenderMirroring(t *testing.T) {
	l := newLattice(t, 2, 2)
	meanderY := func(opts ...Option) (lo, hi float64) {
		r, err := NewRenderer(l, NewMaterialCache(), append(opts, WithScale(1), WithoutSubstrate())...)
		if err != nil {
			t.Fatal(err)
		}
		scene, err := r.Render(lattice.CellResonator)
		if err != nil {
			t.Fatal(err)
		}
		res, ok := scene.Object("C0_Res_Meander")
		if !ok {
			t.Fatal("no C0 resonator")
		}
		a, b := res.Mesh.Bounds()
		return a.Y, b.Y
	}

	// C0 is the bottom edge of a resonator cell: its resonator faces up.
	if lo, _ := meanderY(); lo <= 0 {
		t.Errorf("mirrored resonator reaches y=%v, want above the edge", lo)
	}
	if _, hi := meanderY(WithoutMirroring()); hi >= 0 {
		t.Errorf("unmirrored resonator reaches y=%v, want below the edge", hi)
	}
}

func TestSceneExport(t *testing.T) {
	l := newLattice(t, 1, 2)
	r, err := NewRenderer(l, NewMaterialCache())
	if err != nil {
		t.Fatal(err)
	}
	scene, err := r.Render(lattice.CellResonator)
	if err != nil {
		t.Fatal(err)
	}

	var obj, mtl, stl bytes.Buffer
	if err := scene.WriteOBJ(&obj, "chip.mtl"); err != nil {
		t.Fatal(err)
	}
	if err := scene.WriteMTL(&mtl); err != nil {
		t.Fatal(err)
	}
	if err := scene.WriteSTL(&stl); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"mtllib chip.mtl", "o D0_Xmon_Center", "usemtl Mat_aluminum", "o Substrate"} {
		if !strings.Contains(obj.String(), want) {
			t.Errorf("OBJ missing %q", want)
		}
	}
	if !strings.Contains(mtl.String(), "newmtl Mat_substrate") {
		t.Errorf("MTL missing substrate:\n%s", mtl.String())
	}
	if !strings.HasPrefix(stl.String(), "solid qchip") {
		t.Error("STL header missing")
	}

	data, err := MarshalScene(scene)
	if err != nil {
		t.Fatal(err)
	}
	back, err := UnmarshalScene(data)
	if err != nil {
		t.Fatal(err)
	}
	if back.Stats() != scene.Stats() {
		t.Errorf("round trip stats = %+v, want %+v", back.Stats(), scene.Stats())
	}
}
