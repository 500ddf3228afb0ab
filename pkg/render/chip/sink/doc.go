// Package sink provides output format renderers for placed chip layouts.
//
// # Overview
//
// A "sink" transforms a computed [layout.Layout] into a final output format.
// This package provides renderers for:
//
//   - SVG: vector drawing of the full draw list with qubit and coupler labels
//   - PNG: in-process rasterization of the same draw list
//   - PDF: print-ready output (requires rsvg-convert)
//   - JSON: the layout itself, for caching and round trips
//
// All renderers paint shapes in ascending Z order. Shapes with equal Z keep
// their layout order, which places cell shading under the data qubits and
// the data qubits under the couplers.
//
// The chip frame is y-up; image space is y-down. Both raster and vector
// outputs flip through [geom.ViewTransform] so that row 0 ends up at the
// bottom of the picture.
//
// Basic usage:
//
//	svg := sink.RenderSVG(l, sink.WithPalette(dims.BlueprintPalette()))
//	png, err := sink.RenderPNG(l, sink.WithScale(0.5))
//
// [layout.Layout]: github.com/matzehuels/qchip/pkg/layout.Layout
// [geom.ViewTransform]: github.com/matzehuels/qchip/pkg/geom.ViewTransform
package sink
