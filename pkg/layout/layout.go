// Package layout defines the serialized form of a placed chip lattice.
//
// A [Layout] is what the 2D renderers consume and what the cache, job store
// and HTTP API persist. It carries the ordered draw list (cell shading, then
// data qubits, then couplers), the labels, structured site and coupler
// records, and the ChipConfig it was computed from so that a 3D scene can be
// rebuilt from a stored layout.
package layout

import (
	"encoding/json"
	"os"

	"github.com/matzehuels/qchip/pkg/dims"
	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/geom"
)

// Cell patterns.
const (
	PatternCheckerboard = "checkerboard"
	PatternNone         = "none"
)

// Edge directions.
const (
	Horizontal = "horizontal"
	Vertical   = "vertical"
)

// Label kinds.
const (
	LabelQubit   = "qubit"
	LabelCoupler = "coupler"
)

// =============================================================================
// Layout
// =============================================================================

// Layout is a fully placed lattice.
type Layout struct {
	Rows      int       `json:"rows" bson:"rows"`
	Cols      int       `json:"cols" bson:"cols"`
	Pitch     float64   `json:"pitch" bson:"pitch"`
	Origin    geom.Vec2 `json:"origin" bson:"origin"`
	Pattern   string    `json:"pattern" bson:"pattern"`
	FirstCell string    `json:"first_cell,omitempty" bson:"first_cell,omitempty"`
	Bounds    geom.BBox `json:"bounds" bson:"bounds"`

	Qubits   []Qubit   `json:"qubits" bson:"qubits"`
	Couplers []Coupler `json:"couplers" bson:"couplers"`
	Cells    []Cell    `json:"cells,omitempty" bson:"cells,omitempty"`

	// Draw list in paint order; Z breaks ties upward.
	Shapes []geom.Shape `json:"shapes" bson:"shapes"`
	Labels []Label      `json:"labels,omitempty" bson:"labels,omitempty"`

	Config dims.ChipConfig `json:"config" bson:"config"`
}

// Qubit is one data-qubit site.
type Qubit struct {
	Label    string    `json:"label" bson:"label"`
	Row      int       `json:"row" bson:"row"`
	Col      int       `json:"col" bson:"col"`
	Position geom.Vec2 `json:"position" bson:"position"`
}

// Coupler is one edge between neighbouring sites.
type Coupler struct {
	Label     string    `json:"label" bson:"label"`
	From      [2]int    `json:"from" bson:"from"`
	To        [2]int    `json:"to" bson:"to"`
	Position  geom.Vec2 `json:"position" bson:"position"`
	Direction string    `json:"direction" bson:"direction"`
	Angle     float64   `json:"angle" bson:"angle"`
	Mirror    bool      `json:"mirror" bson:"mirror"`
}

// Cell is one plaquette between four data qubits.
type Cell struct {
	Row    int       `json:"row" bson:"row"`
	Col    int       `json:"col" bson:"col"`
	Type   string    `json:"type" bson:"type"`
	Center geom.Vec2 `json:"center" bson:"center"`
}

// Label is a text annotation anchored at Position.
type Label struct {
	Text     string    `json:"text" bson:"text"`
	Kind     string    `json:"kind" bson:"kind"`
	Position geom.Vec2 `json:"position" bson:"position"`
}

// Checkerboard reports whether cell types drive the coupler mirrors.
func (l *Layout) Checkerboard() bool { return l.Pattern == PatternCheckerboard }

// Validate checks the structural invariants a renderer relies on.
func (l *Layout) Validate() error {
	if l.Rows < 0 || l.Cols < 0 {
		return errors.New(errors.ErrCodeInvalidLattice, "layout has negative size %dx%d", l.Rows, l.Cols)
	}
	if len(l.Qubits) != max(l.Rows, 0)*max(l.Cols, 0) {
		return errors.New(errors.ErrCodeInvalidLattice,
			"layout has %d qubits, want %d for %dx%d", len(l.Qubits), l.Rows*l.Cols, l.Rows, l.Cols)
	}
	switch l.Pattern {
	case PatternCheckerboard, PatternNone:
	default:
		return errors.New(errors.ErrCodeInvalidLattice, "unknown cell pattern %q", l.Pattern)
	}
	for i, s := range l.Shapes {
		if s.Kind != geom.KindRect && s.Kind != geom.KindPolygon {
			return errors.New(errors.ErrCodeInvalidLattice, "shape %d has unknown kind %q", i, s.Kind)
		}
	}
	return nil
}

// =============================================================================
// Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and validates it.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "unmarshal layout")
	}
	if l.Pattern == "" {
		l.Pattern = PatternCheckerboard
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	return UnmarshalLayout(data)
}
