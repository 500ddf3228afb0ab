package lattice

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/qchip/pkg/dims"
	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/geom"
	"github.com/matzehuels/qchip/pkg/layout"
	"github.com/matzehuels/qchip/pkg/qubits"
)

// DefaultMargin is the AutoLims margin used for 2D framing.
const DefaultMargin = 350

// Site is a lattice coordinate.
type Site struct {
	Row, Col int
}

func (s Site) String() string { return fmt.Sprintf("(%d,%d)", s.Row, s.Col) }

func compareSites(a, b Site) int {
	return cmp.Or(cmp.Compare(a.Row, b.Row), cmp.Compare(a.Col, b.Col))
}

// EdgeKey names an edge by its two endpoint sites, lower-left first.
type EdgeKey struct {
	A, B Site
}

func (k EdgeKey) String() string { return k.A.String() + "-" + k.B.String() }

func compareEdges(a, b EdgeKey) int {
	return cmp.Or(compareSites(a.A, b.A), compareSites(a.B, b.B))
}

// Direction is the orientation of an edge.
type Direction string

const (
	Horizontal Direction = layout.Horizontal
	Vertical   Direction = layout.Vertical
)

// Angle returns the coupler rotation for an edge: its long arms point at the
// two sites it joins.
func (d Direction) Angle() float64 {
	if d == Vertical {
		return 90
	}
	return 0
}

// Edge is a coupler slot.
type Edge struct {
	Key       EdgeKey
	Pos       geom.Vec2
	Direction Direction
}

// Lattice is a rows × cols grid of fluxonium qubits with a tunable coupler on
// every edge between neighbours.
type Lattice struct {
	cfg       dims.LatticeConfig
	fluxonium *qubits.Fluxonium
	coupler   *qubits.TunableCoupler
	sites     map[Site]geom.Vec2
	edges     map[EdgeKey]Edge
}

// New builds the lattice. A non-positive pitch is replaced by MinPitch.
// rows < 1 or cols < 1 yields an empty lattice.
func New(cfg dims.LatticeConfig, fd dims.FluxoniumDims, cd dims.TunableTransmonDims) (*Lattice, error) {
	if err := errors.First(errors.Finite("lattice.pitch", cfg.Pitch), errors.Positive("lattice.pad_gap", cfg.PadGap)); err != nil {
		return nil, err
	}
	fx, err := qubits.NewFluxonium(fd)
	if err != nil {
		return nil, err
	}
	cp, err := qubits.NewTunableCoupler(cd)
	if err != nil {
		return nil, err
	}
	if cfg.AutoPitch() {
		cfg.Pitch = MinPitch(fd, cd, cfg.PadGap)
	}
	l := &Lattice{cfg: cfg, fluxonium: fx, coupler: cp}
	l.build()
	return l, nil
}

// FromConfig builds the lattice described by a chip config.
func FromConfig(c dims.ChipConfig) (*Lattice, error) {
	return New(c.Lattice, c.Fluxonium, c.Coupler)
}

// MinPitch is the smallest pitch at which the pads of a data qubit and the
// long-arm pads of a coupler leave padGap of clearance on both sides.
func MinPitch(fd dims.FluxoniumDims, cd dims.TunableTransmonDims, padGap float64) float64 {
	return 2 * (fd.Xmon.Cross().Reach() + cd.Xmon.Cross().Reach() + padGap)
}

func (l *Lattice) build() {
	p := l.cfg.Pitch
	l.sites = make(map[Site]geom.Vec2)
	l.edges = make(map[EdgeKey]Edge)

	for r := range max(l.cfg.Rows, 0) {
		for c := range max(l.cfg.Cols, 0) {
			l.sites[Site{r, c}] = geom.V2(float64(c)*p, float64(r)*p)
		}
	}
	for r := range max(l.cfg.Rows, 0) {
		for c := range max(l.cfg.Cols-1, 0) {
			k := EdgeKey{Site{r, c}, Site{r, c + 1}}
			l.edges[k] = Edge{Key: k, Pos: geom.V2(float64(c)*p+p/2, float64(r)*p), Direction: Horizontal}
		}
	}
	for r := range max(l.cfg.Rows-1, 0) {
		for c := range max(l.cfg.Cols, 0) {
			k := EdgeKey{Site{r, c}, Site{r + 1, c}}
			l.edges[k] = Edge{Key: k, Pos: geom.V2(float64(c)*p, float64(r)*p+p/2), Direction: Vertical}
		}
	}
}

func (l *Lattice) Config() dims.LatticeConfig      { return l.cfg }
func (l *Lattice) Rows() int                       { return l.cfg.Rows }
func (l *Lattice) Cols() int                       { return l.cfg.Cols }
func (l *Lattice) Pitch() float64                  { return l.cfg.Pitch }
func (l *Lattice) Fluxonium() *qubits.Fluxonium    { return l.fluxonium }
func (l *Lattice) Coupler() *qubits.TunableCoupler { return l.coupler }
func (l *Lattice) NumDataQubits() int              { return len(l.sites) }
func (l *Lattice) NumCouplers() int                { return len(l.edges) }

// SitePositions returns a copy of the site map.
func (l *Lattice) SitePositions() map[Site]geom.Vec2 { return maps.Clone(l.sites) }

// EdgePositions returns a copy of the edge map.
func (l *Lattice) EdgePositions() map[EdgeKey]Edge { return maps.Clone(l.edges) }

// Sites returns every site in (row, col) order.
func (l *Lattice) Sites() []Site {
	return slices.SortedFunc(maps.Keys(l.sites), compareSites)
}

// Edges returns every edge ordered by key.
func (l *Lattice) Edges() []Edge {
	keys := slices.SortedFunc(maps.Keys(l.edges), compareEdges)
	out := make([]Edge, len(keys))
	for i, k := range keys {
		out[i] = l.edges[k]
	}
	return out
}

// Edge looks up a single edge.
func (l *Lattice) Edge(k EdgeKey) (Edge, bool) {
	e, ok := l.edges[k]
	return e, ok
}

// HasCell reports whether the plaquette with lower-left site (r, c) exists.
func (l *Lattice) HasCell(r, c int) bool {
	return r >= 0 && c >= 0 && r < l.cfg.Rows-1 && c < l.cfg.Cols-1
}

// CellType returns the type of the plaquette with lower-left site (r, c).
func (l *Lattice) CellType(r, c int, first CellType) CellType { return TypeOf(r, c, first) }

// MirrorForEdge decides which side of the coupler on edge k carries the
// resonator. For horizontal edges true means the resonator faces up; for
// vertical edges true means it faces left.
//
// The decision is taken from the cell above (horizontal) or to the right
// (vertical). On the top row and right column that cell does not exist and
// the opposite neighbour is consulted with the comparison inverted. An edge
// with no neighbouring cell at all is not mirrored.
func (l *Lattice) MirrorForEdge(k EdgeKey, first CellType) (bool, error) {
	e, ok := l.edges[k]
	if !ok {
		return false, errors.New(errors.ErrCodeEdgeNotFound, "edge %s is not in the %dx%d lattice", k, l.cfg.Rows, l.cfg.Cols)
	}
	r, c := k.A.Row, k.A.Col

	if e.Direction == Horizontal {
		switch {
		case l.HasCell(r, c):
			return TypeOf(r, c, first) == CellResonator, nil
		case l.HasCell(r-1, c):
			return TypeOf(r-1, c, first) != CellResonator, nil
		}
		return false, nil
	}

	switch {
	case l.HasCell(r, c):
		return TypeOf(r, c, first) != CellResonator, nil
	case l.HasCell(r, c-1):
		return TypeOf(r, c-1, first) == CellResonator, nil
	}
	return false, nil
}

// AutoLims returns the box enclosing every site grown by margin. An empty
// lattice yields the margin box around the origin.
func (l *Lattice) AutoLims(margin float64) geom.BBox {
	if len(l.sites) == 0 {
		return geom.NewBBoxAround(geom.Vec2{}, margin)
	}
	return geom.BoundsOf(slices.Collect(maps.Values(l.sites))...).Expand(margin)
}
