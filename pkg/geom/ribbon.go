package geom

// Tangents returns the unit tangent at every vertex of pts using central
// differences (one-sided at the ends). Coincident neighbours produce a zero
// difference, which falls back to +X rather than dividing by zero.
func Tangents(pts []Vec2) []Vec2 {
	n := len(pts)
	out := make([]Vec2, n)
	if n < 2 {
		for i := range out {
			out[i] = Vec2{X: 1}
		}
		return out
	}
	for i := range pts {
		prev, next := max(i-1, 0), min(i+1, n-1)
		out[i] = pts[next].Sub(pts[prev]).Unit()
	}
	return out
}

// Ribbon offsets the polyline pts by ±halfWidth along each vertex normal and
// returns the closed outline: the left side in order, then the right side
// reversed. When endExtend is non-zero an extra vertex is appended endExtend
// beyond the last one along the final segment, so that the butt end overlaps
// whatever it terminates on.
func Ribbon(pts []Vec2, halfWidth, endExtend float64) []Vec2 {
	if len(pts) == 0 {
		return nil
	}
	path := make([]Vec2, len(pts), len(pts)+1)
	copy(path, pts)
	if endExtend != 0 && len(path) >= 2 {
		last := path[len(path)-1]
		dir := last.Sub(path[len(path)-2]).Unit()
		path = append(path, last.Add(dir.Scale(endExtend)))
	}
	tan := Tangents(path)

	left := make([]Vec2, len(path))
	right := make([]Vec2, len(path))
	for i, p := range path {
		n := tan[i].Perp().Scale(halfWidth)
		left[i] = p.Add(n)
		right[i] = p.Sub(n)
	}

	out := make([]Vec2, 0, 2*len(path))
	out = append(out, left...)
	for i := len(right) - 1; i >= 0; i-- {
		out = append(out, right[i])
	}
	return out
}

// PolylineLength returns the summed segment lengths of pts.
func PolylineLength(pts []Vec2) float64 {
	var l float64
	for i := 1; i < len(pts); i++ {
		l += pts[i].Sub(pts[i-1]).Len()
	}
	return l
}

// PolygonArea returns the signed area of a closed polygon; positive when
// the vertices run counter-clockwise.
func PolygonArea(pts []Vec2) float64 {
	var a float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}
