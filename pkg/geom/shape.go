package geom

// Kind discriminates the variants of a Shape.
type Kind string

const (
	KindRect    Kind = "rect"
	KindPolygon Kind = "polygon"
)

// Draw orders shared by the generators. Higher values are drawn later.
const (
	ZShading = -1
	ZBody    = 0
	ZMarker  = 10
)

// Rect is an oriented rectangle.
type Rect struct {
	Center Vec2    `json:"center" bson:"center"`
	W      float64 `json:"w" bson:"w"`
	H      float64 `json:"h" bson:"h"`
	Angle  float64 `json:"angle,omitempty" bson:"angle,omitempty"`
}

// RectXYWH returns the axis-aligned rectangle with lower-left corner (x, y).
func RectXYWH(x, y, w, h float64) Rect {
	return Rect{Center: Vec2{x + w/2, y + h/2}, W: w, H: h}
}

// Corners returns the four corners counter-clockwise, starting lower-left in
// the rectangle's own frame.
func (r Rect) Corners() []Vec2 {
	hw, hh := r.W/2, r.H/2
	local := [4]Vec2{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	out := make([]Vec2, 4)
	for i, c := range local {
		out[i] = c.Rotate(r.Angle).Add(r.Center)
	}
	return out
}

// Transform returns r rotated about the parent origin by p and moved
// by its translation.
func (r Rect) Transform(p Placement) Rect {
	return Rect{Center: p.Apply(r.Center), W: r.W, H: r.H, Angle: r.Angle + p.Angle}
}

// Shape is one drawable piece of chip geometry.
type Shape struct {
	Kind   Kind    `json:"kind" bson:"kind"`
	Role   string  `json:"role" bson:"role"`
	Z      int     `json:"z,omitempty" bson:"z,omitempty"`
	Alpha  float64 `json:"alpha,omitempty" bson:"alpha,omitempty"`
	Rect   Rect    `json:"rect,omitzero" bson:"rect,omitempty"`
	Points []Vec2  `json:"points,omitempty" bson:"points,omitempty"`
}

// NewRect returns a rectangle shape with the given role.
func NewRect(role string, r Rect) Shape {
	return Shape{Kind: KindRect, Role: role, Rect: r}
}

// NewPolygon returns a closed polygon shape with the given role.
func NewPolygon(role string, pts []Vec2) Shape {
	return Shape{Kind: KindPolygon, Role: role, Points: pts}
}

// WithZ returns s with draw order z.
func (s Shape) WithZ(z int) Shape {
	s.Z = z
	return s
}

// Transform returns a transformed copy of s. The receiver is not modified.
func (s Shape) Transform(p Placement) Shape {
	out := s
	switch s.Kind {
	case KindRect:
		out.Rect = s.Rect.Transform(p)
	case KindPolygon:
		out.Points = make([]Vec2, len(s.Points))
		for i, v := range s.Points {
			out.Points[i] = p.Apply(v)
		}
	}
	return out
}

// Outline returns the closed boundary of s as a vertex list.
func (s Shape) Outline() []Vec2 {
	if s.Kind == KindRect {
		return s.Rect.Corners()
	}
	return s.Points
}

// Bounds returns the axis-aligned bounding box of s.
func (s Shape) Bounds() BBox {
	return BoundsOf(s.Outline()...)
}

// PlaceAll transforms every shape in local by p.
func PlaceAll(local []Shape, p Placement) []Shape {
	out := make([]Shape, len(local))
	for i, s := range local {
		out[i] = s.Transform(p)
	}
	return out
}

// BoundsOfShapes returns the union of the bounds of shapes.
func BoundsOfShapes(shapes []Shape) BBox {
	b := EmptyBBox()
	for _, s := range shapes {
		b = b.Union(s.Bounds())
	}
	return b
}
