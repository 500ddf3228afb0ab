package primitives

import (
	"slices"

	"github.com/matzehuels/qchip/pkg/dims"
	"github.com/matzehuels/qchip/pkg/geom"
)

// Cross is a cross-shaped capacitor: a center square with one arm and end
// pad per Direction.
type Cross struct {
	dims    dims.CrossDims
	lengths dims.ArmLengths
	local   []geom.Shape
}

// NewCross builds a cross whose shapes carry the given palette role.
func NewCross(d dims.CrossDims, role string) (*Cross, error) {
	if err := d.Validate("cross"); err != nil {
		return nil, err
	}
	c := &Cross{dims: d, lengths: d.Arms.Lengths()}
	c.local = c.generate(role)
	return c, nil
}

func (c *Cross) generate(role string) []geom.Shape {
	aw := c.dims.ArmWidth
	half := aw / 2
	pw := c.dims.PadWidth()
	ph := c.dims.PadHeadSize

	shapes := []geom.Shape{geom.NewRect(role, geom.RectXYWH(-half, -half, aw, aw))}
	for _, dir := range dims.Directions {
		l := c.lengths[dir]
		rot := geom.At(0, 0, dir.Degrees())
		arm := geom.Rect{Center: geom.V2(half+l/2, 0), W: l, H: aw}
		pad := geom.Rect{Center: geom.V2(half+l+pw/2, 0), W: pw, H: ph}
		shapes = append(shapes,
			geom.NewRect(role, arm.Transform(rot)),
			geom.NewRect(role, pad.Transform(rot)),
		)
	}
	return shapes
}

// Dims returns the resolved cross dimensions.
func (c *Cross) Dims() dims.CrossDims { return c.dims }

// ArmLength returns the length of the arm pointing in dir.
func (c *Cross) ArmLength(dir dims.Direction) float64 { return c.lengths[dir] }

// ArmTip returns the local position of the outer edge of the pad on dir.
func (c *Cross) ArmTip(dir dims.Direction) geom.Vec2 {
	r := c.dims.ArmWidth/2 + c.lengths[dir] + c.dims.PadWidth()
	return geom.Polar(r, dir.Degrees())
}

// Reach returns the distance from the center to the farthest pad edge.
func (c *Cross) Reach() float64 { return c.dims.Reach() }

// Shapes returns a copy of the local shapes.
func (c *Cross) Shapes() []geom.Shape { return slices.Clone(c.local) }

// Place returns the cross shapes transformed by p.
func (c *Cross) Place(p geom.Placement) []geom.Shape { return geom.PlaceAll(c.local, p) }
