package qubits

import (
	"maps"
	"slices"

	"github.com/matzehuels/qchip/pkg/dims"
	"github.com/matzehuels/qchip/pkg/geom"
	"github.com/matzehuels/qchip/pkg/primitives"
)

// ResonatorGap is the clearance between the resonator arm's pad and the
// start of the resonator.
const ResonatorGap = 10

// TunableCoupler is an asymmetric cross whose long arms face the neighbouring
// data qubits. One short arm carries a DC SQUID with its flux line, the other
// a readout resonator.
type TunableCoupler struct {
	dims      dims.TunableTransmonDims
	xmon      *primitives.Cross
	squid     *primitives.DCSQUID
	resonator *primitives.Resonator
	fluxLine  *primitives.FluxLine
	squidArm  dims.Direction
	resArm    dims.Direction
	anchors   Anchors
}

// CouplerLayout holds the placement of every sub-component of one coupler.
type CouplerLayout struct {
	Body         geom.Placement
	SquidArm     dims.Direction // local arm carrying the SQUID
	ResonatorArm dims.Direction // local arm carrying the resonator
	Squid        geom.Placement
	Resonator    geom.Placement
	FluxLine     geom.Placement
}

func NewTunableCoupler(d dims.TunableTransmonDims) (*TunableCoupler, error) {
	if err := d.Validate("coupler"); err != nil {
		return nil, err
	}
	xmon, err := primitives.NewCross(d.Xmon.Cross(), dims.RoleCouplerBody)
	if err != nil {
		return nil, err
	}
	squid, err := primitives.NewDCSQUID(d.DCSQUID)
	if err != nil {
		return nil, err
	}
	res, err := primitives.NewResonator(d.Resonator)
	if err != nil {
		return nil, err
	}
	fl, err := primitives.NewFluxLine(d.FluxLine, d.DCSQUID.LegLength)
	if err != nil {
		return nil, err
	}
	return &TunableCoupler{
		dims:      d,
		xmon:      xmon,
		squid:     squid,
		resonator: res,
		fluxLine:  fl,
		squidArm:  dims.ShortArms[d.SquidArmIndex],
		resArm:    dims.ShortArms[d.ResonatorArmIndex],
		anchors:   crossAnchors(xmon),
	}, nil
}

func (c *TunableCoupler) Dims() dims.TunableTransmonDims   { return c.dims }
func (c *TunableCoupler) Cross() *primitives.Cross         { return c.xmon }
func (c *TunableCoupler) Squid() *primitives.DCSQUID       { return c.squid }
func (c *TunableCoupler) Resonator() *primitives.Resonator { return c.resonator }
func (c *TunableCoupler) FluxLine() *primitives.FluxLine   { return c.fluxLine }
func (c *TunableCoupler) Reach() float64                   { return c.xmon.Reach() }
func (c *TunableCoupler) Anchors() Anchors                 { return maps.Clone(c.anchors) }

// AnchorGlobal returns the named anchor placed by p.
func (c *TunableCoupler) AnchorGlobal(name string, p geom.Placement) (geom.Vec2, error) {
	return c.anchors.Global(name, p)
}

// Arms returns the local angles of the SQUID arm and the resonator arm.
// Mirroring swaps them.
func (c *TunableCoupler) Arms(mirror bool) (squid, resonator dims.Direction) {
	if mirror {
		return c.resArm, c.squidArm
	}
	return c.squidArm, c.resArm
}

// Layout resolves where each sub-component goes for a coupler placed by p.
//
// The SQUID legs start at the squid arm's pad edge and point outward. The
// resonator's meander is built along +x from its origin; it is turned by
// arm+180° and shifted by twice its bounding-box center so that the body
// lies beyond the pad, starting ResonatorGap from the pad edge.
func (c *TunableCoupler) Layout(p geom.Placement, mirror bool) CouplerLayout {
	squidArm, resArm := c.Arms(mirror)

	squid := p.Then(geom.Placement{Origin: c.xmon.ArmTip(squidArm), Angle: squidArm.Degrees()})

	tip := c.xmon.ArmTip(resArm)
	origin := tip.Add(tip.Unit().Scale(ResonatorGap))
	shifted := origin.Add(c.resonator.Center().Scale(2).Rotate(resArm.Degrees()))
	res := p.Then(geom.Placement{Origin: shifted, Angle: resArm.Degrees() + 180})

	return CouplerLayout{
		Body:         p,
		SquidArm:     squidArm,
		ResonatorArm: resArm,
		Squid:        squid,
		Resonator:    res,
		FluxLine:     squid,
	}
}

// Place returns every shape of the coupler placed by p: body, SQUID,
// resonator, then flux line.
func (c *TunableCoupler) Place(p geom.Placement, mirror bool) []geom.Shape {
	l := c.Layout(p, mirror)
	return slices.Concat(
		c.xmon.Place(l.Body),
		c.squid.Place(l.Squid),
		c.resonator.Place(l.Resonator),
		c.fluxLine.Place(l.FluxLine),
	)
}
