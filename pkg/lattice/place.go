package lattice

import (
	"fmt"

	"github.com/matzehuels/qchip/pkg/dims"
	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/geom"
	"github.com/matzehuels/qchip/pkg/layout"
)

// Placement defaults.
const (
	DefaultShadeAlpha  = 0.15
	shadeFraction      = 0.46
	qubitLabelOffset   = 40
	couplerLabelOffset = 30
)

// PlaceOptions controls Place.
type PlaceOptions struct {
	Origin     geom.Vec2 // global offset applied to every site
	Pattern    string    // layout.PatternCheckerboard or layout.PatternNone
	FirstCell  CellType  // type of cell (0, 0)
	ShadeCells bool      // draw a colour wash behind each cell
	ShadeAlpha float64
	Labels     bool
	Margin     float64 // AutoLims margin for Layout.Bounds
}

// DefaultPlaceOptions returns checkerboard placement with shading and labels.
func DefaultPlaceOptions() PlaceOptions {
	return PlaceOptions{
		Pattern:    layout.PatternCheckerboard,
		FirstCell:  CellResonator,
		ShadeCells: true,
		ShadeAlpha: DefaultShadeAlpha,
		Labels:     true,
		Margin:     DefaultMargin,
	}
}

// Place lays out the whole lattice. Shapes are emitted in paint order: cell
// shading, data qubits in site order labelled D0, D1, ..., then couplers in
// edge order labelled C0, C1, ....
func (l *Lattice) Place(opts PlaceOptions) (layout.Layout, error) {
	if opts.Pattern == "" {
		opts.Pattern = layout.PatternCheckerboard
	}
	if opts.Pattern != layout.PatternCheckerboard && opts.Pattern != layout.PatternNone {
		return layout.Layout{}, errors.New(errors.ErrCodeInvalidInput,
			"unknown cell pattern %q (valid: %s, %s)", opts.Pattern, layout.PatternCheckerboard, layout.PatternNone)
	}
	if opts.ShadeAlpha <= 0 {
		opts.ShadeAlpha = DefaultShadeAlpha
	}
	if opts.Margin <= 0 {
		opts.Margin = DefaultMargin
	}
	checker := opts.Pattern == layout.PatternCheckerboard

	out := layout.Layout{
		Rows:    l.cfg.Rows,
		Cols:    l.cfg.Cols,
		Pitch:   l.cfg.Pitch,
		Origin:  opts.Origin,
		Pattern: opts.Pattern,
		Config: dims.ChipConfig{
			Lattice:   l.cfg,
			Fluxonium: l.fluxonium.Dims(),
			Coupler:   l.coupler.Dims(),
		},
		Qubits:   []layout.Qubit{},
		Couplers: []layout.Coupler{},
	}
	if checker {
		out.FirstCell = opts.FirstCell.String()
		out.Cells = l.cells(opts)
		if opts.ShadeCells {
			out.Shapes = append(out.Shapes, l.shading(out.Cells, opts.ShadeAlpha)...)
		}
	}

	for i, s := range l.Sites() {
		pos := l.sites[s].Add(opts.Origin)
		out.Shapes = append(out.Shapes, l.fluxonium.Place(geom.Placement{Origin: pos})...)
		label := fmt.Sprintf("D%d", i)
		out.Qubits = append(out.Qubits, layout.Qubit{Label: label, Row: s.Row, Col: s.Col, Position: pos})
		if opts.Labels {
			out.Labels = append(out.Labels, layout.Label{
				Text: label, Kind: layout.LabelQubit, Position: pos.Sub(geom.V2(0, qubitLabelOffset)),
			})
		}
	}

	for i, e := range l.Edges() {
		pos := e.Pos.Add(opts.Origin)
		mirror := false
		if checker {
			m, err := l.MirrorForEdge(e.Key, opts.FirstCell)
			if err != nil {
				return layout.Layout{}, err
			}
			mirror = m
		}
		p := geom.Placement{Origin: pos, Angle: e.Direction.Angle()}
		out.Shapes = append(out.Shapes, l.coupler.Place(p, mirror)...)

		label := fmt.Sprintf("C%d", i)
		out.Couplers = append(out.Couplers, layout.Coupler{
			Label:     label,
			From:      [2]int{e.Key.A.Row, e.Key.A.Col},
			To:        [2]int{e.Key.B.Row, e.Key.B.Col},
			Position:  pos,
			Direction: string(e.Direction),
			Angle:     p.Angle,
			Mirror:    mirror,
		})
		if opts.Labels {
			out.Labels = append(out.Labels, layout.Label{
				Text: label, Kind: layout.LabelCoupler, Position: pos.Sub(geom.V2(0, couplerLabelOffset)),
			})
		}
	}

	b := l.AutoLims(opts.Margin)
	out.Bounds = geom.BBox{Min: b.Min.Add(opts.Origin), Max: b.Max.Add(opts.Origin)}
	return out, nil
}

func (l *Lattice) cells(opts PlaceOptions) []layout.Cell {
	p := l.cfg.Pitch
	var out []layout.Cell
	for r := range max(l.cfg.Rows-1, 0) {
		for c := range max(l.cfg.Cols-1, 0) {
			center := geom.V2(float64(c)*p+p/2, float64(r)*p+p/2).Add(opts.Origin)
			out = append(out, layout.Cell{Row: r, Col: c, Type: TypeOf(r, c, opts.FirstCell).String(), Center: center})
		}
	}
	return out
}

func (l *Lattice) shading(cells []layout.Cell, alpha float64) []geom.Shape {
	side := 2 * shadeFraction * l.cfg.Pitch
	out := make([]geom.Shape, 0, len(cells))
	for _, c := range cells {
		role := dims.RoleCellResonator
		if c.Type == CellFluxLine.String() {
			role = dims.RoleCellFluxLine
		}
		s := geom.NewRect(role, geom.Rect{Center: c.Center, W: side, H: side}).WithZ(geom.ZShading)
		s.Alpha = alpha
		out = append(out, s)
	}
	return out
}
