package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/qchip/pkg/geom"
)

// OBJWriter streams named meshes into a single Wavefront OBJ document.
// Vertex indices are global across objects, so the writer tracks the running
// offset.
type OBJWriter struct {
	w      *bufio.Writer
	offset int
	err    error
}

// NewOBJWriter starts an OBJ document. A non-empty mtllib emits a material
// library reference.
func NewOBJWriter(w io.Writer, mtllib string) *OBJWriter {
	o := &OBJWriter{w: bufio.NewWriter(w)}
	o.printf("# qchip\n")
	if mtllib != "" {
		o.printf("mtllib %s\n", mtllib)
	}
	return o
}

func (o *OBJWriter) printf(format string, args ...any) {
	if o.err != nil {
		return
	}
	_, o.err = fmt.Fprintf(o.w, format, args...)
}

// Object appends one named mesh. An empty material skips usemtl.
func (o *OBJWriter) Object(name, material string, m Mesh) error {
	o.printf("o %s\n", sanitize(name))
	for _, v := range m.Vertices {
		o.printf("v %.6f %.6f %.6f\n", v.X, v.Y, v.Z)
	}
	if material != "" {
		o.printf("usemtl %s\n", sanitize(material))
	}
	for _, f := range m.Faces {
		o.printf("f")
		for _, idx := range f {
			o.printf(" %d", idx+o.offset+1)
		}
		o.printf("\n")
	}
	o.offset += len(m.Vertices)
	return o.err
}

// Flush writes any buffered data.
func (o *OBJWriter) Flush() error {
	if o.err != nil {
		return o.err
	}
	return o.w.Flush()
}

// WriteOBJ writes a single mesh as an OBJ document.
func WriteOBJ(w io.Writer, name string, m Mesh) error {
	o := NewOBJWriter(w, "")
	if err := o.Object(name, "", m); err != nil {
		return err
	}
	return o.Flush()
}

// WriteSTL writes meshes as one ASCII STL solid. Faces are fan-triangulated
// and facet normals derived from the winding.
func WriteSTL(w io.Writer, name string, meshes ...Mesh) error {
	bw := bufio.NewWriter(w)
	name = sanitize(name)
	fmt.Fprintf(bw, "solid %s\n", name)
	for _, m := range meshes {
		for _, t := range m.Triangles() {
			a, b, c := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
			n := b.Sub(a).Cross(c.Sub(a)).Unit()
			fmt.Fprintf(bw, "  facet normal %.6e %.6e %.6e\n    outer loop\n", n.X, n.Y, n.Z)
			for _, v := range [3]geom.Vec3{a, b, c} {
				fmt.Fprintf(bw, "      vertex %.6e %.6e %.6e\n", v.X, v.Y, v.Z)
			}
			fmt.Fprintf(bw, "    endloop\n  endfacet\n")
		}
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)
	return bw.Flush()
}

// sanitize makes a name safe for the single-token fields of OBJ and STL.
func sanitize(s string) string {
	if s == "" {
		return "unnamed"
	}
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return '_'
		}
		return r
	}, s)
}
