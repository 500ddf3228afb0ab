package qubits

import (
	"maps"
	"slices"

	"github.com/matzehuels/qchip/pkg/dims"
	"github.com/matzehuels/qchip/pkg/geom"
	"github.com/matzehuels/qchip/pkg/primitives"
)

// Size of the phase-slip junction closing the fluxonium loop.
const (
	PhaseSlipJunctionWidth  = 6
	PhaseSlipJunctionHeight = 10
)

// Fluxonium is an Xmon with a superinductance loop: two parallel junction
// chains leave the center at ChainAngle and are closed at the far end by a
// connector bar carrying a phase-slip junction.
type Fluxonium struct {
	dims     dims.FluxoniumDims
	xmon     *primitives.Cross
	chain    *primitives.JJChain
	junction *primitives.Junction
	anchors  Anchors
	loop     Loop
}

// Loop is the resolved superinductance geometry in one frame.
type Loop struct {
	Angle     float64   // chain direction
	StartA    geom.Vec2 // chain A start, on the +perpendicular side
	StartB    geom.Vec2
	EndA      geom.Vec2
	EndB      geom.Vec2
	BarCenter geom.Vec2
	BarLength float64
	BarHeight float64
}

// Transform returns the loop mapped through p.
func (l Loop) Transform(p geom.Placement) Loop {
	return Loop{
		Angle:     l.Angle + p.Angle,
		StartA:    p.Apply(l.StartA),
		StartB:    p.Apply(l.StartB),
		EndA:      p.Apply(l.EndA),
		EndB:      p.Apply(l.EndB),
		BarCenter: p.Apply(l.BarCenter),
		BarLength: l.BarLength,
		BarHeight: l.BarHeight,
	}
}

// BarRect returns the connector bar, perpendicular to the chains.
func (l Loop) BarRect() geom.Rect {
	return geom.Rect{Center: l.BarCenter, W: l.BarLength, H: l.BarHeight, Angle: l.Angle + 90}
}

func NewFluxonium(d dims.FluxoniumDims) (*Fluxonium, error) {
	if err := d.Validate("fluxonium"); err != nil {
		return nil, err
	}
	xmon, err := primitives.NewCross(d.Xmon.Cross(), dims.RoleXmonBody)
	if err != nil {
		return nil, err
	}
	chain, err := primitives.NewJJChain(d.Chain)
	if err != nil {
		return nil, err
	}
	jj, err := primitives.NewJunction(PhaseSlipJunctionWidth, PhaseSlipJunctionHeight)
	if err != nil {
		return nil, err
	}

	f := &Fluxonium{dims: d, xmon: xmon, chain: chain, junction: jj, anchors: crossAnchors(xmon)}

	fwd := geom.Polar(1, d.ChainAngle)
	perp := fwd.Perp().Scale(d.ChainSeparation / 2)
	start := fwd.Scale(d.ChainStartDist)
	run := fwd.Scale(chain.TotalLength())
	f.loop = Loop{
		Angle:     d.ChainAngle,
		StartA:    start.Add(perp),
		StartB:    start.Sub(perp),
		EndA:      start.Add(perp).Add(run),
		EndB:      start.Sub(perp).Add(run),
		BarCenter: start.Add(run),
		BarLength: d.ChainSeparation + d.ConnectorBarExtra,
		BarHeight: d.ConnectorBarHeight,
	}
	return f, nil
}

func (f *Fluxonium) Dims() dims.FluxoniumDims   { return f.dims }
func (f *Fluxonium) Cross() *primitives.Cross   { return f.xmon }
func (f *Fluxonium) Chain() *primitives.JJChain { return f.chain }
func (f *Fluxonium) Reach() float64             { return f.xmon.Reach() }
func (f *Fluxonium) Anchors() Anchors           { return maps.Clone(f.anchors) }

// AnchorGlobal returns the named anchor placed by p.
func (f *Fluxonium) AnchorGlobal(name string, p geom.Placement) (geom.Vec2, error) {
	return f.anchors.Global(name, p)
}

// Loop returns the superinductance geometry placed by p.
func (f *Fluxonium) Loop(p geom.Placement) Loop { return f.loop.Transform(p) }

// Place returns every shape of the qubit placed by p: cross, both chains,
// connector bar, then the junction marker.
func (f *Fluxonium) Place(p geom.Placement) []geom.Shape {
	l := f.Loop(p)
	shapes := slices.Concat(
		f.xmon.Place(p),
		f.chain.Place(geom.Placement{Origin: l.StartA, Angle: l.Angle}),
		f.chain.Place(geom.Placement{Origin: l.StartB, Angle: l.Angle}),
	)
	shapes = append(shapes, geom.NewRect(dims.RoleConnector, l.BarRect()))
	return append(shapes, f.junction.Place(geom.Placement{Origin: l.BarCenter, Angle: l.Angle})...)
}
