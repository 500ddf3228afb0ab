package primitives

import (
	"github.com/matzehuels/qchip/pkg/dims"
	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/geom"
)

// FluxLine is the flux-bias feed line. It shares the SQUID's placement and
// starts Standoff beyond the end of the SQUID legs.
type FluxLine struct {
	dims  dims.FluxLineDims
	start float64
	local geom.Shape
}

// NewFluxLine builds a line for a SQUID whose legs are squidLegLength long.
func NewFluxLine(d dims.FluxLineDims, squidLegLength float64) (*FluxLine, error) {
	if err := errors.First(d.Validate("flux_line"), errors.Positive("flux_line.squid_leg_length", squidLegLength)); err != nil {
		return nil, err
	}
	f := &FluxLine{dims: d, start: squidLegLength + d.Standoff}
	f.local = geom.NewRect(dims.RoleFluxLine, geom.RectXYWH(f.start, -d.Width, d.Length, 2*d.Width))
	return f, nil
}

func (f *FluxLine) Dims() dims.FluxLineDims { return f.dims }

// Start is the local x coordinate where the line begins.
func (f *FluxLine) Start() float64 { return f.start }

// Rect returns the local rectangle of the line.
func (f *FluxLine) Rect() geom.Rect { return f.local.Rect }

func (f *FluxLine) Shapes() []geom.Shape { return []geom.Shape{f.local} }

func (f *FluxLine) Place(p geom.Placement) []geom.Shape {
	return []geom.Shape{f.local.Transform(p)}
}
