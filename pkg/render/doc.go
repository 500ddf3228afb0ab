// Package render turns placed chip layouts into pictures.
//
// # Overview
//
// Geometry packages return plain data. The renderers here are thin adapters
// on top of it:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Chip drawings (in [chip/sink] subpackage)
//   - Lattice connectivity graphs (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). A missing tool is reported
// with code UNSUPPORTED.
//
//	svg := sink.RenderSVG(layout)
//	pdf, err := render.ToPDF(svg)
//
// # Chip Drawings
//
// [chip/sink] draws the layout's shape list in paint order, flipped from the
// y-up chip frame into image space. PNG output is rasterized in-process, so it
// does not need librsvg.
//
// # Node-Link Diagrams
//
// [nodelink] emits a Graphviz graph with one pinned node per data qubit and
// one edge per coupler, coloured by the coupler's mirror flag.
//
//	dot := nodelink.ToDOT(layout, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// [chip/sink]: github.com/matzehuels/qchip/pkg/render/chip/sink
// [nodelink]: github.com/matzehuels/qchip/pkg/render/nodelink
package render
