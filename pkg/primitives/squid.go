package primitives

import (
	"slices"

	"github.com/matzehuels/qchip/pkg/dims"
	"github.com/matzehuels/qchip/pkg/geom"
)

// DCSQUID is two parallel legs running along +x, closed at the far end by a
// U-bar, with one junction marker at the midpoint of each leg.
type DCSQUID struct {
	dims  dims.DCSQUIDDims
	local []geom.Shape
}

func NewDCSQUID(d dims.DCSQUIDDims) (*DCSQUID, error) {
	if err := d.Validate("dc_squid"); err != nil {
		return nil, err
	}
	s := &DCSQUID{dims: d}

	lw, sep, ll := d.LegWidth, d.LegSeparation, d.LegLength
	for _, y := range s.LegOffsets() {
		s.local = append(s.local, geom.NewRect(dims.RoleSquidLeg, geom.RectXYWH(0, y-lw/2, ll, lw)))
	}
	s.local = append(s.local, geom.NewRect(dims.RoleSquidLeg,
		geom.RectXYWH(ll-d.UBarWidth/2, -sep/2, d.UBarWidth, sep)))
	for _, y := range s.LegOffsets() {
		jj := geom.RectXYWH(ll/2-d.JunctionWidth/2, y-d.JunctionHeight/2, d.JunctionWidth, d.JunctionHeight)
		s.local = append(s.local, geom.NewRect(dims.RoleSquidJunction, jj).WithZ(geom.ZMarker))
	}
	return s, nil
}

func (s *DCSQUID) Dims() dims.DCSQUIDDims { return s.dims }

// LegOffsets returns the y coordinate of each leg's center line.
func (s *DCSQUID) LegOffsets() [2]float64 {
	return [2]float64{-s.dims.LegSeparation / 2, s.dims.LegSeparation / 2}
}

// Shapes returns a copy of the local shapes.
func (s *DCSQUID) Shapes() []geom.Shape { return slices.Clone(s.local) }

// Place returns the SQUID shapes transformed by p.
func (s *DCSQUID) Place(p geom.Placement) []geom.Shape { return geom.PlaceAll(s.local, p) }
