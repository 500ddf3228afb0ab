package chip3d

import (
	"fmt"

	"github.com/matzehuels/qchip/pkg/dims"
	"github.com/matzehuels/qchip/pkg/geom"
	"github.com/matzehuels/qchip/pkg/mesh"
	"github.com/matzehuels/qchip/pkg/primitives"
	"github.com/matzehuels/qchip/pkg/qubits"
)

// LayerHeight is the thickness of every deposited film.
const LayerHeight = 3.0

// Junction geometry. BridgeHStep sits slightly below the island top so the
// bridge penetrates it instead of z-fighting with it.
const (
	BridgeHStep          = LayerHeight - 0.05
	BridgeWidthFraction  = 1.0
	SquidJunctionOverlap = 1.5
)

// bridge builds a sigmoid strip with enough samples for its length.
func bridge(half bool, length, width, overlap float64) (mesh.Mesh, error) {
	p := mesh.BridgeParams{
		Length:    length,
		Width:     width,
		HStep:     BridgeHStep,
		Thickness: LayerHeight,
		Overlap:   overlap,
		Steepness: mesh.DefaultSteepness,
	}
	if half {
		p.Samples = max(mesh.DefaultHalfBridgeSamples, mesh.MinSamples(length, p.Steepness))
		return mesh.HalfBridge(p)
	}
	p.Samples = max(mesh.DefaultBridgeSamples, mesh.MinSamples(length, p.Steepness))
	return mesh.DolanBridge(p)
}

// Xmon3D extrudes a cross.
type Xmon3D struct {
	cross    *primitives.Cross
	material string
}

func NewXmon3D(c *primitives.Cross, material string) *Xmon3D {
	return &Xmon3D{cross: c, material: material}
}

// Place adds the center, then arm and pad per direction, named
// <prefix>_Center, <prefix>_Arm<deg>, <prefix>_Pad<deg>.
func (x *Xmon3D) Place(b *Builder, p geom.Placement, prefix string) {
	for i, s := range x.cross.Place(p) {
		name := prefix + "_Center"
		if i > 0 {
			dir := dims.Directions[(i-1)/2]
			part := "Arm"
			if i%2 == 0 {
				part = "Pad"
			}
			name = fmt.Sprintf("%s_%s%d", prefix, part, int(dir.Degrees()))
		}
		b.Box(name, x.material, s.Rect)
	}
}

// JJChain3D is a chain of first-layer islands joined by Dolan bridges.
type JJChain3D struct {
	chain  *primitives.JJChain
	bridge mesh.Mesh
}

func NewJJChain3D(c *primitives.JJChain) (*JJChain3D, error) {
	d := c.Dims()
	m, err := bridge(false, d.Gap+2*d.Overlap, d.Width*BridgeWidthFraction, d.Overlap)
	if err != nil {
		return nil, err
	}
	return &JJChain3D{chain: c, bridge: m}, nil
}

// Place adds <prefix>_Island_<i> and <prefix>_Bridge_<i> objects.
func (j *JJChain3D) Place(b *Builder, p geom.Placement, prefix string) {
	for i, r := range j.chain.IslandRects() {
		b.Box(fmt.Sprintf("%s_Island_%d", prefix, i), MatAluminum, r.Transform(p))
	}
	for i, r := range j.chain.BridgeRects() {
		at := p.Then(geom.Placement{Origin: r.Center, Angle: r.Angle})
		b.Add(fmt.Sprintf("%s_Bridge_%d", prefix, i), MatAluminum2, j.bridge.Place(at, 0))
	}
}

// DCSQUID3D splits each leg into an island that runs just past the midpoint
// and a half bridge whose ramp lands on it.
type DCSQUID3D struct {
	squid  *primitives.DCSQUID
	bridge mesh.Mesh
}

func NewDCSQUID3D(s *primitives.DCSQUID) (*DCSQUID3D, error) {
	d := s.Dims()
	m, err := bridge(true, d.LegLength/2, d.LegWidth*BridgeWidthFraction, SquidJunctionOverlap)
	if err != nil {
		return nil, err
	}
	return &DCSQUID3D{squid: s, bridge: m}, nil
}

func (s *DCSQUID3D) Place(b *Builder, p geom.Placement, prefix string) {
	d := s.squid.Dims()
	mid := d.LegLength / 2
	islandLen := mid + SquidJunctionOverlap
	for i, y := range s.squid.LegOffsets() {
		tag := [2]string{"Bot", "Top"}[i]
		island := geom.Rect{Center: geom.V2(islandLen/2, y), W: islandLen, H: d.LegWidth}
		b.Box(fmt.Sprintf("%s_Leg%s_Island", prefix, tag), MatCoupler, island.Transform(p))

		// Turned so the ramp at the bridge's +X end faces the island.
		at := p.Then(geom.Placement{Origin: geom.V2(mid+mid/2, y), Angle: 180})
		b.Add(fmt.Sprintf("%s_JJ_%s", prefix, tag), MatAluminum2, s.bridge.Place(at, 0))
	}
	ubar := geom.Rect{Center: geom.V2(d.LegLength, 0), W: d.UBarWidth, H: d.LegSeparation + d.LegWidth}
	b.Box(prefix+"_UBar", MatCoupler, ubar.Transform(p))
}

// Resonator3D sweeps the meander centerline.
type Resonator3D struct {
	res *primitives.Resonator
}

func NewResonator3D(r *primitives.Resonator) *Resonator3D { return &Resonator3D{res: r} }

func (r *Resonator3D) Place(b *Builder, p geom.Placement, prefix string) {
	local := r.res.Centerline()
	pts := make([]geom.Vec2, len(local))
	for i, v := range local {
		pts[i] = p.Apply(v)
	}
	m, err := mesh.ExtrudedPath(pts, 2*r.res.Dims().Width, 0, LayerHeight)
	if err != nil {
		b.Fail(err)
		return
	}
	b.Add(prefix+"_Meander", MatAluminum, m)
}

// FluxLine3D extrudes the feed line.
type FluxLine3D struct {
	line *primitives.FluxLine
}

func NewFluxLine3D(f *primitives.FluxLine) *FluxLine3D { return &FluxLine3D{line: f} }

func (f *FluxLine3D) Place(b *Builder, p geom.Placement, prefix string) {
	b.Box(prefix+"_Line", MatCoupler, f.line.Rect().Transform(p))
}

// Fluxonium3D is the data qubit: cross, two chains, and a connector made of
// an island bar and a half bridge meeting just past the bar's center.
type Fluxonium3D struct {
	fx        *qubits.Fluxonium
	xmon      *Xmon3D
	chain     *JJChain3D
	connector mesh.Mesh
}

func NewFluxonium3D(fx *qubits.Fluxonium) (*Fluxonium3D, error) {
	chain, err := NewJJChain3D(fx.Chain())
	if err != nil {
		return nil, err
	}
	l := fx.Loop(geom.Placement{})
	conn, err := bridge(true, l.BarLength/2, l.BarHeight*BridgeWidthFraction, fx.Dims().Chain.Overlap)
	if err != nil {
		return nil, err
	}
	return &Fluxonium3D{fx: fx, xmon: NewXmon3D(fx.Cross(), MatAluminum), chain: chain, connector: conn}, nil
}

func (f *Fluxonium3D) Place(b *Builder, p geom.Placement, prefix string) {
	f.xmon.Place(b, p, prefix+"_Xmon")

	l := f.fx.Loop(p)
	f.chain.Place(b, geom.Placement{Origin: l.StartA, Angle: l.Angle}, prefix+"_ChainA")
	f.chain.Place(b, geom.Placement{Origin: l.StartB, Angle: l.Angle}, prefix+"_ChainB")

	barAngle := l.Angle + 90
	unit := geom.Polar(1, barAngle)
	overlap := f.fx.Dims().Chain.Overlap
	islandLen := l.BarLength/2 + overlap
	island := geom.Rect{
		Center: l.BarCenter.Add(unit.Scale(l.BarLength/4 - overlap/2)),
		W:      islandLen,
		H:      l.BarHeight,
		Angle:  barAngle,
	}
	b.Box(prefix+"_ConnIsland", MatAluminum, island)

	at := geom.Placement{Origin: l.BarCenter.Sub(unit.Scale(l.BarLength / 4)), Angle: barAngle}
	b.Add(prefix+"_ConnBridge", MatAluminum2, f.connector.Place(at, 0))
}

// Coupler3D is the tunable coupler: cross, SQUID, resonator and flux line,
// arranged exactly as the 2D coupler.
type Coupler3D struct {
	coupler   *qubits.TunableCoupler
	xmon      *Xmon3D
	squid     *DCSQUID3D
	resonator *Resonator3D
	fluxLine  *FluxLine3D
}

func NewCoupler3D(c *qubits.TunableCoupler) (*Coupler3D, error) {
	squid, err := NewDCSQUID3D(c.Squid())
	if err != nil {
		return nil, err
	}
	return &Coupler3D{
		coupler:   c,
		xmon:      NewXmon3D(c.Cross(), MatCoupler),
		squid:     squid,
		resonator: NewResonator3D(c.Resonator()),
		fluxLine:  NewFluxLine3D(c.FluxLine()),
	}, nil
}

func (c *Coupler3D) Place(b *Builder, p geom.Placement, mirror bool, prefix string) {
	l := c.coupler.Layout(p, mirror)
	c.xmon.Place(b, l.Body, prefix+"_Xmon")
	c.squid.Place(b, l.Squid, prefix+"_SQUID")
	c.resonator.Place(b, l.Resonator, prefix+"_Res")
	c.fluxLine.Place(b, l.FluxLine, prefix+"_Flux")
}
