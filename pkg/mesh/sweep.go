package mesh

import (
	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/geom"
)

// ring is one cross-section: bottom-left, bottom-right, top-left, top-right.
// "Left" is the right-hand side of the direction of travel, so that a sweep
// along +X puts bl at −Y.
type ring [4]geom.Vec3

// sweep stitches consecutive rings into a closed tube with end caps.
func sweep(rings []ring) Mesh {
	m := Mesh{
		Vertices: make([]geom.Vec3, 0, 4*len(rings)),
		Faces:    make([][]int, 0, 4*(len(rings)-1)+2),
	}
	for _, r := range rings {
		m.Vertices = append(m.Vertices, r[:]...)
	}
	idx := func(i int) (bl, br, tl, tr int) { return 4 * i, 4*i + 1, 4*i + 2, 4*i + 3 }

	for i := range len(rings) - 1 {
		bl0, br0, tl0, tr0 := idx(i)
		bl1, br1, tl1, tr1 := idx(i + 1)
		m.Faces = append(m.Faces,
			[]int{bl0, br0, br1, bl1}, // bottom
			[]int{tl0, tl1, tr1, tr0}, // top
			[]int{bl0, bl1, tl1, tl0}, // left wall
			[]int{br0, tr0, tr1, br1}, // right wall
		)
	}
	bl, br, tl, tr := idx(0)
	m.Faces = append(m.Faces, []int{bl, tl, tr, br})
	bl, br, tl, tr = idx(len(rings) - 1)
	m.Faces = append(m.Faces, []int{bl, br, tr, tl})
	return m
}

// Cuboid is an axis-aligned box of full extents size centred on center.
func Cuboid(center, size geom.Vec3) Mesh {
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2
	rings := make([]ring, 2)
	for i, x := range []float64{-hx, hx} {
		rings[i] = ring{
			geom.V3(x, -hy, -hz), geom.V3(x, hy, -hz),
			geom.V3(x, -hy, hz), geom.V3(x, hy, hz),
		}
	}
	return sweep(rings).Transform(0, center)
}

// Prism extrudes a 2D rectangle from z0 to z0+height.
func Prism(r geom.Rect, z0, height float64) Mesh {
	return Cuboid(geom.V3(0, 0, z0+height/2), geom.V3(r.W, r.H, height)).
		Transform(geom.Radians(r.Angle), geom.V3(r.Center.X, r.Center.Y, 0))
}

// ExtrudedPath sweeps a width × height rectangle along a polyline. The
// section spans z0 to z0+height and is perpendicular to the local tangent,
// which falls back to +X where consecutive points coincide.
func ExtrudedPath(pts []geom.Vec2, width, z0, height float64) (Mesh, error) {
	if len(pts) < 2 {
		return Mesh{}, errors.New(errors.ErrCodeDegenerateGeometry, "extruded path needs at least 2 points, got %d", len(pts))
	}
	if err := errors.First(errors.Positive("path.width", width), errors.Positive("path.height", height)); err != nil {
		return Mesh{}, err
	}
	hw := width / 2
	z1 := z0 + height
	tangents := geom.Tangents(pts)
	rings := make([]ring, len(pts))
	for i, p := range pts {
		n := tangents[i].Perp().Scale(hw)
		l, r := p.Sub(n), p.Add(n)
		rings[i] = ring{
			geom.V3(l.X, l.Y, z0), geom.V3(r.X, r.Y, z0),
			geom.V3(l.X, l.Y, z1), geom.V3(r.X, r.Y, z1),
		}
	}
	return sweep(rings), nil
}
