package qubits

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/qchip/pkg/dims"
	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/geom"
)

const tol = 1e-9

func newFluxonium(t *testing.T) *Fluxonium {
	t.Helper()
	f, err := NewFluxonium(dims.DefaultFluxonium())
	if err != nil {
		t.Fatalf("NewFluxonium() error = %v", err)
	}
	return f
}

func newCoupler(t *testing.T) *TunableCoupler {
	t.Helper()
	c, err := NewTunableCoupler(dims.DefaultTunableTransmon())
	if err != nil {
		t.Fatalf("NewTunableCoupler() error = %v", err)
	}
	return c
}

func TestFluxoniumAnchors(t *testing.T) {
	f := newFluxonium(t)
	want := []string{"arm_0", "arm_180", "arm_270", "arm_90", "center"}
	if diff := cmp.Diff(want, f.Anchors().Names()); diff != "" {
		t.Errorf("anchor names mismatch (-want +got):\n%s", diff)
	}

	got, err := f.AnchorGlobal("arm_0", geom.At(100, 200, 90))
	if err != nil {
		t.Fatal(err)
	}
	if !got.ApproxEqual(geom.V2(100, 395), tol) {
		t.Errorf("AnchorGlobal(arm_0) = %v, want (100, 395)", got)
	}

	if _, err := f.AnchorGlobal("arm_45", geom.Placement{}); !errors.Is(err, errors.ErrCodeAnchorNotFound) {
		t.Errorf("AnchorGlobal(arm_45) error = %v, want ANCHOR_NOT_FOUND", err)
	}
}

func TestFluxoniumAnchorsAreCopies(t *testing.T) {
	f := newFluxonium(t)
	a := f.Anchors()
	a["center"] = geom.V2(1, 1)
	if got := f.Anchors()["center"]; got != (geom.Vec2{}) {
		t.Errorf("internal anchors mutated: center = %v", got)
	}
}

func TestFluxoniumLoop(t *testing.T) {
	f := newFluxonium(t)
	l := f.Loop(geom.Placement{})

	s := math.Sqrt2 / 2
	want := geom.V2(210*s, -210*s)
	if !l.BarCenter.ApproxEqual(want, 1e-9) {
		t.Errorf("BarCenter = %v, want %v", l.BarCenter, want)
	}
	if got := l.StartA.Sub(l.StartB).Len(); math.Abs(got-40) > tol {
		t.Errorf("chain separation = %v, want 40", got)
	}
	if got := l.EndA.Sub(l.StartA).Len(); math.Abs(got-195) > tol {
		t.Errorf("chain run = %v, want 195", got)
	}
	if l.BarLength != 46 || l.BarHeight != 6 {
		t.Errorf("bar = %vx%v, want 46x6", l.BarLength, l.BarHeight)
	}
	if got := l.BarRect().Angle; got != 45 {
		t.Errorf("bar angle = %v, want 45", got)
	}

	// Rotating the placement rotates the whole loop.
	r := f.Loop(geom.At(0, 0, 90))
	if !r.BarCenter.ApproxEqual(l.BarCenter.Rotate(90), 1e-9) {
		t.Errorf("rotated BarCenter = %v, want %v", r.BarCenter, l.BarCenter.Rotate(90))
	}
	if r.Angle != 45 {
		t.Errorf("rotated Angle = %v, want 45", r.Angle)
	}
}

func TestFluxoniumPlace(t *testing.T) {
	f := newFluxonium(t)
	shapes := f.Place(geom.At(50, 50, 0))
	// cross 9, two chains of 11, bar, junction
	if len(shapes) != 33 {
		t.Fatalf("len(Place()) = %d, want 33", len(shapes))
	}
	last := shapes[len(shapes)-1]
	if last.Role != dims.RoleJunction || last.Z != geom.ZMarker {
		t.Errorf("last shape = %s z=%d, want junction marker", last.Role, last.Z)
	}
	if shapes[len(shapes)-2].Role != dims.RoleConnector {
		t.Errorf("bar role = %s, want %s", shapes[len(shapes)-2].Role, dims.RoleConnector)
	}
}

func TestCouplerArms(t *testing.T) {
	c := newCoupler(t)
	sq, res := c.Arms(false)
	if sq != dims.North || res != dims.South {
		t.Errorf("Arms(false) = %v, %v, want arm_90, arm_270", sq, res)
	}
	sq, res = c.Arms(true)
	if sq != dims.South || res != dims.North {
		t.Errorf("Arms(true) = %v, %v, want arm_270, arm_90", sq, res)
	}
}

func TestCouplerLayout(t *testing.T) {
	c := newCoupler(t)
	l := c.Layout(geom.Placement{}, false)

	if !l.Squid.Origin.ApproxEqual(geom.V2(0, 92), tol) || l.Squid.Angle != 90 {
		t.Errorf("Squid = %+v, want origin (0, 92) angle 90", l.Squid)
	}
	if l.FluxLine != l.Squid {
		t.Errorf("FluxLine = %+v, want the SQUID placement %+v", l.FluxLine, l.Squid)
	}
	if !l.Resonator.Origin.ApproxEqual(geom.V2(0, -205), 1e-9) || l.Resonator.Angle != 450 {
		t.Errorf("Resonator = %+v, want origin (0, -205) angle 450", l.Resonator)
	}

	// The resonator's own end lands next to the pad gap point.
	end := c.Resonator().Centerline()
	tail := l.Resonator.Apply(end[len(end)-1])
	if !tail.ApproxEqual(geom.V2(-15, -102), 1e-9) {
		t.Errorf("resonator tail = %v, want (-15, -102)", tail)
	}
}

func TestCouplerMirrorFlipsSides(t *testing.T) {
	c := newCoupler(t)
	p := geom.At(300, 0, 0)
	plain := c.Layout(p, false)
	mirrored := c.Layout(p, true)

	if plain.Resonator.Origin.Y >= 0 {
		t.Errorf("unmirrored resonator y = %v, want below the body", plain.Resonator.Origin.Y)
	}
	if mirrored.Resonator.Origin.Y <= 0 {
		t.Errorf("mirrored resonator y = %v, want above the body", mirrored.Resonator.Origin.Y)
	}
	if got := len(c.Place(p, true)); got != 16 {
		t.Errorf("len(Place()) = %d, want 16", got)
	}
}

func TestNewCouplerInvalid(t *testing.T) {
	d := dims.DefaultTunableTransmon()
	d.ResonatorArmIndex = d.SquidArmIndex
	if _, err := NewTunableCoupler(d); !errors.Is(err, errors.ErrCodeInvalidDimension) {
		t.Errorf("NewTunableCoupler() error = %v, want INVALID_DIMENSION", err)
	}
}
