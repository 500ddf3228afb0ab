package primitives

import (
	"github.com/matzehuels/qchip/pkg/dims"
	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/geom"
)

// Junction is a single Josephson-junction marker centered on its origin and
// drawn above the surrounding metal.
type Junction struct {
	W, H float64
}

// NewJunction returns a w × h junction marker.
func NewJunction(w, h float64) (*Junction, error) {
	if err := errors.First(errors.Positive("junction.width", w), errors.Positive("junction.height", h)); err != nil {
		return nil, err
	}
	return &Junction{W: w, H: h}, nil
}

// Place returns the marker transformed by p.
func (j *Junction) Place(p geom.Placement) []geom.Shape {
	s := geom.NewRect(dims.RoleJunction, geom.Rect{W: j.W, H: j.H}).WithZ(geom.ZMarker)
	return []geom.Shape{s.Transform(p)}
}
