package geom

import "math"

// Epsilon is the length below which a direction vector is treated as zero.
const Epsilon = 1e-9

// Vec2 is a point or direction in the chip plane.
type Vec2 struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// V2 is shorthand for Vec2{x, y}.
func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Polar returns the vector of length r at angle deg.
func Polar(r, deg float64) Vec2 {
	s, c := math.Sincos(Radians(deg))
	return Vec2{X: r * c, Y: r * s}
}

func (v Vec2) Add(u Vec2) Vec2             { return Vec2{v.X + u.X, v.Y + u.Y} }
func (v Vec2) Sub(u Vec2) Vec2             { return Vec2{v.X - u.X, v.Y - u.Y} }
func (v Vec2) Scale(k float64) Vec2        { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Dot(u Vec2) float64          { return v.X*u.X + v.Y*u.Y }
func (v Vec2) Len() float64                { return math.Hypot(v.X, v.Y) }
func (v Vec2) Perp() Vec2                  { return Vec2{-v.Y, v.X} }
func (v Vec2) Lerp(u Vec2, t float64) Vec2 { return v.Add(u.Sub(v).Scale(t)) }

// Mid returns the midpoint of v and u.
func (v Vec2) Mid(u Vec2) Vec2 { return Vec2{(v.X + u.X) / 2, (v.Y + u.Y) / 2} }

// Rotate rotates v about the origin by deg degrees.
func (v Vec2) Rotate(deg float64) Vec2 {
	if deg == 0 {
		return v
	}
	s, c := math.Sincos(Radians(deg))
	return Vec2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// Unit returns v scaled to length 1. A zero-length vector yields +X so that
// callers never divide by zero on degenerate input.
func (v Vec2) Unit() Vec2 {
	l := v.Len()
	if l < Epsilon {
		return Vec2{X: 1}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Angle returns the direction of v in degrees.
func (v Vec2) Angle() float64 { return Degrees(math.Atan2(v.Y, v.X)) }

// ApproxEqual reports whether v and u differ by at most tol on each axis.
func (v Vec2) ApproxEqual(u Vec2, tol float64) bool {
	return math.Abs(v.X-u.X) <= tol && math.Abs(v.Y-u.Y) <= tol
}

// Vec3 is a point or direction in chip space; z points out of the substrate.
type Vec3 struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
	Z float64 `json:"z" bson:"z"`
}

// V3 is shorthand for Vec3{x, y, z}.
func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(u Vec3) Vec3      { return Vec3{v.X + u.X, v.Y + u.Y, v.Z + u.Z} }
func (v Vec3) Sub(u Vec3) Vec3      { return Vec3{v.X - u.X, v.Y - u.Y, v.Z - u.Z} }
func (v Vec3) Scale(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }
func (v Vec3) Dot(u Vec3) float64   { return v.X*u.X + v.Y*u.Y + v.Z*u.Z }
func (v Vec3) Len() float64         { return math.Sqrt(v.Dot(v)) }
func (v Vec3) XY() Vec2             { return Vec2{v.X, v.Y} }

func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		X: v.Y*u.Z - v.Z*u.Y,
		Y: v.Z*u.X - v.X*u.Z,
		Z: v.X*u.Y - v.Y*u.X,
	}
}

// Unit returns v scaled to length 1, or the zero vector when v is degenerate.
func (v Vec3) Unit() Vec3 {
	l := v.Len()
	if l < Epsilon {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// RotateZ rotates v about the z axis by rad radians.
func (v Vec3) RotateZ(rad float64) Vec3 {
	if rad == 0 {
		return v
	}
	s, c := math.Sincos(rad)
	return Vec3{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c, Z: v.Z}
}

func Radians(deg float64) float64 { return deg * math.Pi / 180 }
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }
