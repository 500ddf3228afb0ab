package chip3d

import (
	"github.com/matzehuels/qchip/pkg/geom"
	"github.com/matzehuels/qchip/pkg/mesh"
)

// Object is one named mesh in a scene.
type Object struct {
	Name     string    `json:"name"`
	Material string    `json:"material"`
	Mesh     mesh.Mesh `json:"mesh"`
}

// Builder collects objects while components are placed. The first error
// sticks and later additions are ignored.
type Builder struct {
	mats    *MaterialCache
	objects []Object
	err     error
}

// NewBuilder returns a builder resolving materials through mats.
func NewBuilder(mats *MaterialCache) *Builder {
	return &Builder{mats: mats}
}

// Add appends a mesh under name with the palette material key.
func (b *Builder) Add(name, key string, m mesh.Mesh) {
	if b.err != nil {
		return
	}
	mat, err := b.mats.Get(key)
	if err != nil {
		b.Fail(err)
		return
	}
	b.objects = append(b.objects, Object{Name: name, Material: mat.Name, Mesh: m})
}

// Fail records err unless an earlier error is already held.
func (b *Builder) Fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Box adds a first-layer prism with footprint r.
func (b *Builder) Box(name, key string, r geom.Rect) {
	b.Add(name, key, mesh.Prism(r, 0, LayerHeight))
}

func (b *Builder) Objects() []Object { return b.objects }
func (b *Builder) Err() error        { return b.err }
