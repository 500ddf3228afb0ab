package primitives

import (
	"math"
	"slices"

	"github.com/matzehuels/qchip/pkg/dims"
	"github.com/matzehuels/qchip/pkg/geom"
)

// ArcSamples is the number of points emitted per circular arc.
const ArcSamples = 30

// endExtension lengthens the trace past its last centerline vertex.
const endExtension = 0.01

// Resonator is a meandered readout line. The centerline leaves the origin
// along +x, turns down, then snakes between y = ±A/2 with semicircular
// U-turns.
type Resonator struct {
	dims       dims.ResonatorDims
	centerline []geom.Vec2
	center     geom.Vec2
	local      []geom.Shape
}

func NewResonator(d dims.ResonatorDims) (*Resonator, error) {
	if err := d.Validate("resonator"); err != nil {
		return nil, err
	}
	r := &Resonator{dims: d, centerline: meander(d)}
	r.center = geom.BoundsOf(r.centerline...).Center()
	r.local = []geom.Shape{geom.NewPolygon(dims.RoleResonator, geom.Ribbon(r.centerline, d.Width, endExtension))}
	return r, nil
}

func meander(d dims.ResonatorDims) []geom.Vec2 {
	R, A := d.TurnRadius, d.MeanderAmplitude
	n := float64(ArcSamples)
	arc := func(pts []geom.Vec2, c geom.Vec2, theta func(i float64) float64) []geom.Vec2 {
		for i := 1; i <= ArcSamples; i++ {
			s, co := math.Sincos(theta(float64(i)))
			pts = append(pts, geom.V2(c.X+R*co, c.Y+R*s))
		}
		return pts
	}

	x := d.LeadLength
	pts := []geom.Vec2{{}, geom.V2(x, 0)}

	// Quarter turn from +x to -y.
	pts = arc(pts, geom.V2(x, -R), func(i float64) float64 { return math.Pi / 2 * (1 - i/n) })
	x += R
	if A/2-R > 0 {
		pts = append(pts, geom.V2(x, -A/2))
	}

	bottom := true
	for range d.NumTurns {
		if bottom {
			pts = arc(pts, geom.V2(x+R, -A/2), func(i float64) float64 { return math.Pi + math.Pi*i/n })
			x += 2 * R
			pts = append(pts, geom.V2(x, A/2))
		} else {
			pts = arc(pts, geom.V2(x+R, A/2), func(i float64) float64 { return math.Pi - math.Pi*i/n })
			x += 2 * R
			pts = append(pts, geom.V2(x, -A/2))
		}
		bottom = !bottom
	}
	return pts
}

func (r *Resonator) Dims() dims.ResonatorDims { return r.dims }

// Centerline returns a copy of the local centerline.
func (r *Resonator) Centerline() []geom.Vec2 { return slices.Clone(r.centerline) }

// Center returns the midpoint of the centerline's bounding box.
func (r *Resonator) Center() geom.Vec2 { return r.center }

// Shapes returns a copy of the local ribbon.
func (r *Resonator) Shapes() []geom.Shape { return slices.Clone(r.local) }

// Place returns the ribbon transformed by p.
func (r *Resonator) Place(p geom.Placement) []geom.Shape { return geom.PlaceAll(r.local, p) }
