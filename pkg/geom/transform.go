package geom

// Placement is a rigid 2D transform: rotate by Angle degrees about the local
// origin, then translate by Origin.
type Placement struct {
	Origin Vec2    `json:"origin" bson:"origin"`
	Angle  float64 `json:"angle" bson:"angle"`
}

// At returns the placement at (x, y) with rotation angle.
func At(x, y, angle float64) Placement {
	return Placement{Origin: Vec2{X: x, Y: y}, Angle: angle}
}

// Apply maps a local point into the placement's parent frame.
func (p Placement) Apply(v Vec2) Vec2 {
	return v.Rotate(p.Angle).Add(p.Origin)
}

// Direction maps a local direction; the translation is ignored.
func (p Placement) Direction(v Vec2) Vec2 {
	return v.Rotate(p.Angle)
}

// Then returns the placement equivalent to applying inner first and p second.
func (p Placement) Then(inner Placement) Placement {
	return Placement{Origin: p.Apply(inner.Origin), Angle: p.Angle + inner.Angle}
}

// Affine returns p as an affine matrix.
func (p Placement) Affine() Affine {
	return Translation(p.Origin.X, p.Origin.Y).Mul(Rotation(p.Angle))
}

// Affine is a 2x3 matrix [A C E ; B D F] mapping (x, y) to
// (A·x + C·y + E, B·x + D·y + F). Renderers use it for the world to
// canvas mapping, which includes a y flip that a Placement cannot express.
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Affine { return Affine{A: 1, D: 1} }

// Translation returns a pure translation.
func Translation(tx, ty float64) Affine { return Affine{A: 1, D: 1, E: tx, F: ty} }

// Scaling returns a scale about the origin.
func Scaling(sx, sy float64) Affine { return Affine{A: sx, D: sy} }

// Rotation returns a counter-clockwise rotation by deg degrees.
func Rotation(deg float64) Affine {
	c := Vec2{X: 1}.Rotate(deg)
	return Affine{A: c.X, B: c.Y, C: -c.Y, D: c.X}
}

// Mul returns t ∘ u: u is applied first, then t.
func (t Affine) Mul(u Affine) Affine {
	return Affine{
		A: t.A*u.A + t.C*u.B,
		B: t.B*u.A + t.D*u.B,
		C: t.A*u.C + t.C*u.D,
		D: t.B*u.C + t.D*u.D,
		E: t.A*u.E + t.C*u.F + t.E,
		F: t.B*u.E + t.D*u.F + t.F,
	}
}

// Apply maps p through the transform.
func (t Affine) Apply(p Vec2) Vec2 {
	return Vec2{
		X: t.A*p.X + t.C*p.Y + t.E,
		Y: t.B*p.X + t.D*p.Y + t.F,
	}
}

// ViewTransform maps the world box b onto a canvas of the given scale whose
// origin is the top-left corner, flipping y so that world-up is canvas-up.
func ViewTransform(b BBox, scale float64) Affine {
	return Scaling(scale, -scale).Mul(Translation(-b.Min.X, -b.Max.Y))
}
