package chip3d

import (
	"encoding/json"
	"io"
	"slices"

	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/mesh"
)

// Scene is a rendered chip: named meshes plus the materials they use.
type Scene struct {
	Objects   []Object   `json:"objects"`
	Materials []Material `json:"materials"`
	Scale     float64    `json:"scale"`
}

// Stats summarises a scene.
type Stats struct {
	Objects  int `json:"objects"`
	Vertices int `json:"vertices"`
	Faces    int `json:"faces"`
}

func (s *Scene) Stats() Stats {
	st := Stats{Objects: len(s.Objects)}
	for _, o := range s.Objects {
		st.Vertices += o.Mesh.NumVertices()
		st.Faces += o.Mesh.NumFaces()
	}
	return st
}

// Object looks up an object by name.
func (s *Scene) Object(name string) (Object, bool) {
	i := slices.IndexFunc(s.Objects, func(o Object) bool { return o.Name == name })
	if i < 0 {
		return Object{}, false
	}
	return s.Objects[i], true
}

// Validate checks every mesh is closed and outward-facing.
func (s *Scene) Validate() error {
	for _, o := range s.Objects {
		if err := o.Mesh.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeDegenerateGeometry, err, "object %s", o.Name)
		}
		if v := o.Mesh.SignedVolume(); v <= 0 {
			return errors.New(errors.ErrCodeDegenerateGeometry, "object %s has non-positive volume %g", o.Name, v)
		}
	}
	return nil
}

// WriteOBJ writes every object into one OBJ document referencing mtllib.
func (s *Scene) WriteOBJ(w io.Writer, mtllib string) error {
	o := mesh.NewOBJWriter(w, mtllib)
	for _, obj := range s.Objects {
		if err := o.Object(obj.Name, obj.Material, obj.Mesh); err != nil {
			return err
		}
	}
	return o.Flush()
}

// WriteMTL writes the material library for WriteOBJ.
func (s *Scene) WriteMTL(w io.Writer) error { return WriteMTL(w, s.Materials) }

// WriteSTL writes every object as a single ASCII STL solid.
func (s *Scene) WriteSTL(w io.Writer) error {
	meshes := make([]mesh.Mesh, len(s.Objects))
	for i, o := range s.Objects {
		meshes[i] = o.Mesh
	}
	return mesh.WriteSTL(w, "qchip", meshes...)
}

// MarshalScene serializes a scene to JSON.
func MarshalScene(s *Scene) ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalScene deserializes a scene.
func UnmarshalScene(data []byte) (*Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "unmarshal scene")
	}
	return &s, nil
}
