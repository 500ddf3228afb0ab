package sink

import (
	"bytes"
	"cmp"
	"fmt"
	"html"
	"slices"
	"strings"

	"github.com/matzehuels/qchip/pkg/dims"
	"github.com/matzehuels/qchip/pkg/geom"
	"github.com/matzehuels/qchip/pkg/layout"
)

// Label font sizes in chip units.
const (
	qubitFontSize   = 28.0
	couplerFontSize = 24.0
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette dims.Palette
	labels  bool
	width   float64
}

// WithPalette overrides the colours stored in the layout's config.
func WithPalette(p dims.Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithoutLabels omits the D<i>/C<i> annotations.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// WithWidth sets the width attribute of the root element; the height follows
// the aspect ratio. The viewBox stays in chip units.
func WithWidth(w float64) SVGOption { return func(r *svgRenderer) { r.width = w } }

// RenderSVG draws the layout. It never fails: unknown roles fall back to a
// neutral grey and an empty layout yields an empty canvas.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(l, opts...)

	bounds := canvasBounds(l)
	w, h := bounds.Width(), bounds.Height()
	view := geom.ViewTransform(bounds, 1)

	outW, outH := w, h
	if r.width > 0 && w > 0 {
		outW, outH = r.width, r.width*h/w
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, outW, outH)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		w, h, r.palette.Color(dims.RoleBackground))

	buf.WriteString(`  <g id="shapes">` + "\n")
	for _, s := range drawOrder(l.Shapes) {
		renderShape(&buf, s, view, r.palette)
	}
	buf.WriteString("  </g>\n")

	if r.labels && len(l.Labels) > 0 {
		renderLabels(&buf, l.Labels, view, r.palette)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(l layout.Layout, opts ...SVGOption) svgRenderer {
	r := svgRenderer{labels: true}
	for _, opt := range opts {
		opt(&r)
	}
	r.palette = resolvePalette(l, r.palette)
	return r
}

// resolvePalette layers the explicit override over the layout's own palette
// over the defaults.
func resolvePalette(l layout.Layout, override dims.Palette) dims.Palette {
	return dims.DefaultPalette().Merge(l.Config.Palette).Merge(override)
}

// canvasBounds is the layout's recorded frame, or the shape bounds when the
// layout was built without one.
func canvasBounds(l layout.Layout) geom.BBox {
	if !l.Bounds.Empty() && l.Bounds.Width() > 0 && l.Bounds.Height() > 0 {
		return l.Bounds
	}
	b := geom.BoundsOfShapes(l.Shapes)
	if b.Empty() {
		return geom.NewBBoxAround(geom.Vec2{}, 1)
	}
	return b
}

// drawOrder returns the shapes sorted by Z, keeping layout order for ties.
func drawOrder(shapes []geom.Shape) []geom.Shape {
	out := slices.Clone(shapes)
	slices.SortStableFunc(out, func(a, b geom.Shape) int { return cmp.Compare(a.Z, b.Z) })
	return out
}

func opacity(s geom.Shape) float64 {
	if s.Alpha <= 0 || s.Alpha > 1 {
		return 1
	}
	return s.Alpha
}

func renderShape(buf *bytes.Buffer, s geom.Shape, view geom.Affine, p dims.Palette) {
	outline := s.Outline()
	if len(outline) < 3 {
		return
	}
	pts := make([]string, len(outline))
	for i, v := range outline {
		q := view.Apply(v)
		pts[i] = fmt.Sprintf("%.2f,%.2f", q.X, q.Y)
	}
	fmt.Fprintf(buf, `    <polygon class="%s" points="%s" fill="%s"`, s.Role, strings.Join(pts, " "), p.Color(s.Role))
	if a := opacity(s); a < 1 {
		fmt.Fprintf(buf, ` fill-opacity="%.2f"`, a)
	}
	buf.WriteString("/>\n")
}

func renderLabels(buf *bytes.Buffer, labels []layout.Label, view geom.Affine, p dims.Palette) {
	fmt.Fprintf(buf, `  <g id="labels" fill="%s" font-family="Helvetica, Arial, sans-serif" text-anchor="middle" dominant-baseline="hanging">`+"\n",
		p.Color(dims.RoleLabel))
	for _, lb := range labels {
		q := view.Apply(lb.Position)
		size := qubitFontSize
		if lb.Kind == layout.LabelCoupler {
			size = couplerFontSize
		}
		fmt.Fprintf(buf, `    <text class="%s" x="%.2f" y="%.2f" font-size="%.0f">%s</text>`+"\n",
			lb.Kind, q.X, q.Y, size, html.EscapeString(lb.Text))
	}
	buf.WriteString("  </g>\n")
}
