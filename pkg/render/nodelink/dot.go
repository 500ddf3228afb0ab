package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/layout"
	"github.com/matzehuels/qchip/pkg/render"
)

// Edge colours by coupler orientation.
const (
	MirroredColor = "#D95F5F"
	PlainColor    = "#4A6C6F"
)

// DefaultScale maps chip units (um) to Graphviz points.
const DefaultScale = 0.1

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the row/column to qubit labels and the direction to
	// coupler labels. When false, only D<i> and C<i> are shown.
	Detailed bool
	// Scale maps chip units to points. Zero means DefaultScale.
	Scale float64
}

// ToDOT converts a layout to an undirected Graphviz graph. Every data qubit
// becomes a node pinned at its site position; every coupler becomes an edge,
// red when its resonator arm is mirrored.
func ToDOT(l layout.Layout, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=\"#9EAAB2\", fontsize=12, width=0.5, fixedsize=true];\n")
	buf.WriteString("  edge [penwidth=3, fontsize=10];\n")
	buf.WriteString("\n")

	ids := make(map[[2]int]string, len(l.Qubits))
	for _, q := range l.Qubits {
		ids[[2]int{q.Row, q.Col}] = q.Label
		label := q.Label
		if opts.Detailed {
			label = fmt.Sprintf("%s\n(%d,%d)", q.Label, q.Row, q.Col)
		}
		fmt.Fprintf(&buf, "  %q [label=%q, pos=\"%.1f,%.1f!\"];\n",
			q.Label, label, q.Position.X*scale, q.Position.Y*scale)
	}

	buf.WriteString("\n")
	for _, c := range l.Couplers {
		from, to := ids[c.From], ids[c.To]
		if from == "" || to == "" {
			continue
		}
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", from, to, strings.Join(edgeAttrs(c, opts.Detailed), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeAttrs(c layout.Coupler, detailed bool) []string {
	label := c.Label
	if detailed && c.Direction != "" {
		label = c.Label + " " + c.Direction
	}
	color := PlainColor
	if c.Mirror {
		color = MirroredColor
	}
	return []string{fmt.Sprintf("label=%q", label), fmt.Sprintf("color=%q", color)}
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine so that
// pinned positions are honoured.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
