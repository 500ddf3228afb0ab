// Package nodelink renders the lattice connectivity as a node-link diagram.
//
// # Overview
//
// Data qubits become round nodes pinned at their chip positions; couplers
// become undirected edges. Edge colour shows the coupler's mirror flag, which
// makes the checkerboard rule visible at a glance without drawing the full
// chip geometry.
//
// # Usage
//
//	dot := nodelink.ToDOT(l, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] with the neato engine so
// that pinned positions are kept. PDF and PNG conversion requires librsvg
// (rsvg-convert).
package nodelink
