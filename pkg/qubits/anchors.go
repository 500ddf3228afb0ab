package qubits

import (
	"maps"
	"slices"

	"github.com/matzehuels/qchip/pkg/dims"
	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/geom"
	"github.com/matzehuels/qchip/pkg/primitives"
)

// AnchorCenter is the anchor at the cross center.
const AnchorCenter = "center"

// Anchors maps anchor names to local positions.
type Anchors map[string]geom.Vec2

func crossAnchors(c *primitives.Cross) Anchors {
	a := Anchors{AnchorCenter: {}}
	for _, dir := range dims.Directions {
		a[dir.String()] = c.ArmTip(dir)
	}
	return a
}

// Names returns the anchor names, sorted.
func (a Anchors) Names() []string { return slices.Sorted(maps.Keys(a)) }

// Global returns anchor name placed by p: rotated about the local origin,
// then translated.
func (a Anchors) Global(name string, p geom.Placement) (geom.Vec2, error) {
	v, ok := a[name]
	if !ok {
		return geom.Vec2{}, errors.New(errors.ErrCodeAnchorNotFound, "unknown anchor %q (valid: %v)", name, a.Names())
	}
	return p.Apply(v), nil
}
