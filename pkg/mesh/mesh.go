package mesh

import (
	"math"

	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/geom"
)

// Mesh is an indexed polygon mesh. Faces list vertex indices counter-clockwise
// when seen from outside.
type Mesh struct {
	Vertices []geom.Vec3 `json:"vertices"`
	Faces    [][]int     `json:"faces"`
}

// NumVertices returns the vertex count.
func (m Mesh) NumVertices() int { return len(m.Vertices) }

// NumFaces returns the face count.
func (m Mesh) NumFaces() int { return len(m.Faces) }

// Transform rotates m about the Z axis by rad and then translates it by t.
// The receiver is not modified.
func (m Mesh) Transform(rad float64, t geom.Vec3) Mesh {
	out := Mesh{Vertices: make([]geom.Vec3, len(m.Vertices)), Faces: m.Faces}
	for i, v := range m.Vertices {
		out.Vertices[i] = v.RotateZ(rad).Add(t)
	}
	return out
}

// Place applies a 2D placement (degrees) and lifts the result by z.
func (m Mesh) Place(p geom.Placement, z float64) Mesh {
	return m.Transform(geom.Radians(p.Angle), geom.V3(p.Origin.X, p.Origin.Y, z))
}

// Scale multiplies every vertex by s about the origin.
func (m Mesh) Scale(s float64) Mesh {
	out := Mesh{Vertices: make([]geom.Vec3, len(m.Vertices)), Faces: m.Faces}
	for i, v := range m.Vertices {
		out.Vertices[i] = v.Scale(s)
	}
	return out
}

// Merge concatenates meshes into one, re-indexing faces.
func Merge(meshes ...Mesh) Mesh {
	var out Mesh
	for _, m := range meshes {
		base := len(out.Vertices)
		out.Vertices = append(out.Vertices, m.Vertices...)
		for _, f := range m.Faces {
			nf := make([]int, len(f))
			for i, idx := range f {
				nf[i] = idx + base
			}
			out.Faces = append(out.Faces, nf)
		}
	}
	return out
}

// Triangles fan-triangulates every face.
func (m Mesh) Triangles() [][3]int {
	var out [][3]int
	for _, f := range m.Faces {
		for i := 1; i+1 < len(f); i++ {
			out = append(out, [3]int{f[0], f[i], f[i+1]})
		}
	}
	return out
}

// SignedVolume is the enclosed volume by the divergence theorem. It is
// positive for a closed mesh with outward normals.
func (m Mesh) SignedVolume() float64 {
	var vol float64
	for _, t := range m.Triangles() {
		a, b, c := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
		vol += a.Dot(b.Cross(c))
	}
	return vol / 6
}

// Bounds returns the axis-aligned extent of the vertices.
func (m Mesh) Bounds() (lo, hi geom.Vec3) {
	lo = geom.V3(math.Inf(1), math.Inf(1), math.Inf(1))
	hi = geom.V3(math.Inf(-1), math.Inf(-1), math.Inf(-1))
	for _, v := range m.Vertices {
		lo = geom.V3(min(lo.X, v.X), min(lo.Y, v.Y), min(lo.Z, v.Z))
		hi = geom.V3(max(hi.X, v.X), max(hi.Y, v.Y), max(hi.Z, v.Z))
	}
	return lo, hi
}

type halfEdge struct{ from, to int }

// Validate checks that m is a closed, consistently oriented 2-manifold: every
// directed edge is used by exactly one face and its reverse by exactly one
// other.
func (m Mesh) Validate() error {
	if len(m.Faces) == 0 {
		return errors.New(errors.ErrCodeDegenerateGeometry, "mesh has no faces")
	}
	seen := make(map[halfEdge]int)
	for fi, f := range m.Faces {
		if len(f) < 3 {
			return errors.New(errors.ErrCodeDegenerateGeometry, "face %d has %d vertices", fi, len(f))
		}
		for i, a := range f {
			b := f[(i+1)%len(f)]
			if a < 0 || a >= len(m.Vertices) {
				return errors.New(errors.ErrCodeDegenerateGeometry, "face %d references vertex %d of %d", fi, a, len(m.Vertices))
			}
			if a == b {
				return errors.New(errors.ErrCodeDegenerateGeometry, "face %d repeats vertex %d", fi, a)
			}
			seen[halfEdge{a, b}]++
		}
	}
	for e, n := range seen {
		if n != 1 {
			return errors.New(errors.ErrCodeDegenerateGeometry, "edge %d→%d used %d times", e.from, e.to, n)
		}
		if seen[halfEdge{e.to, e.from}] != 1 {
			return errors.New(errors.ErrCodeDegenerateGeometry, "edge %d→%d has no opposite", e.from, e.to)
		}
	}
	return nil
}
