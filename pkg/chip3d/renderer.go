package chip3d

import (
	"fmt"

	"github.com/matzehuels/qchip/pkg/geom"
	"github.com/matzehuels/qchip/pkg/lattice"
	"github.com/matzehuels/qchip/pkg/mesh"
)

// Scene framing.
const (
	GlobalScale     = 0.01  // data units to export units
	SubstrateMargin = 200   // AutoLims margin for the substrate footprint
	SubstrateSpan   = 5     // substrate is this many times the framed extent
	SubstrateTop    = -0.05 // just below the film bottoms
	SubstrateDepth  = 2.0
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithScale overrides GlobalScale.
func WithScale(s float64) Option { return func(r *Renderer) { r.scale = s } }

// WithoutSubstrate omits the substrate slab.
func WithoutSubstrate() Option { return func(r *Renderer) { r.substrate = false } }

// WithoutMirroring places every coupler unmirrored, matching the "none"
// cell pattern of the 2D layout.
func WithoutMirroring() Option { return func(r *Renderer) { r.mirror = false } }

// Renderer builds the 3D scene of a lattice.
type Renderer struct {
	lattice   *lattice.Lattice
	mats      *MaterialCache
	fluxonium *Fluxonium3D
	coupler   *Coupler3D
	scale     float64
	substrate bool
	mirror    bool
}

// NewRenderer prepares the 3D components for l. Materials are resolved
// through mats, which the caller owns.
func NewRenderer(l *lattice.Lattice, mats *MaterialCache, opts ...Option) (*Renderer, error) {
	fx, err := NewFluxonium3D(l.Fluxonium())
	if err != nil {
		return nil, err
	}
	cp, err := NewCoupler3D(l.Coupler())
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		lattice:   l,
		mats:      mats,
		fluxonium: fx,
		coupler:   cp,
		scale:     GlobalScale,
		substrate: true,
		mirror:    true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Render places data qubits D0… in site order and couplers C0… in edge
// order, adds the substrate and scales the result.
func (r *Renderer) Render(first lattice.CellType) (*Scene, error) {
	b := NewBuilder(r.mats)

	sites := r.lattice.SitePositions()
	for i, s := range r.lattice.Sites() {
		r.fluxonium.Place(b, geom.Placement{Origin: sites[s]}, fmt.Sprintf("D%d", i))
	}
	for i, e := range r.lattice.Edges() {
		mirror := false
		if r.mirror {
			m, err := r.lattice.MirrorForEdge(e.Key, first)
			if err != nil {
				return nil, err
			}
			mirror = m
		}
		p := geom.Placement{Origin: e.Pos, Angle: e.Direction.Angle()}
		r.coupler.Place(b, p, mirror, fmt.Sprintf("C%d", i))
	}
	if r.substrate {
		b.Add("Substrate", MatSubstrate, r.substrateSlab())
	}
	if err := b.Err(); err != nil {
		return nil, err
	}

	objects := b.Objects()
	for i := range objects {
		objects[i].Mesh = objects[i].Mesh.Scale(r.scale)
	}
	return &Scene{Objects: objects, Materials: r.mats.Materials(), Scale: r.scale}, nil
}

func (r *Renderer) substrateSlab() mesh.Mesh {
	lims := r.lattice.AutoLims(SubstrateMargin)
	c := lims.Center()
	size := geom.V3(lims.Width()*SubstrateSpan, lims.Height()*SubstrateSpan, SubstrateDepth)
	return mesh.Cuboid(geom.V3(c.X, c.Y, SubstrateTop-SubstrateDepth/2), size)
}
