// Package pkg is the root of qchip's public Go packages: a layout and
// geometry engine for superconducting quantum chips built from fluxonium
// data qubits on a square lattice joined by tunable couplers.
//
// # Overview
//
// A chip is described by a handful of dimension records and a lattice
// size. From those qchip places every qubit, decides which couplers and
// flux lines are mirrored by a checkerboard rule, draws the result in 2D
// and extrudes it into watertight 3D meshes with sigmoid Dolan bridges.
//
//	dims → lattice → layout → render (SVG, PNG, PDF, DOT)
//	                       ↘ chip3d → mesh (OBJ, MTL, STL, scene JSON)
//
// # Package Organization
//
// ## Geometry
//
// [geom] - Points, polygons, ribbons, bounding boxes and affine transforms
// shared by every geometry package.
//
// [primitives] - 2D outlines of individual chip elements: pads, arms,
// junction leads, SQUID loops and flux lines.
//
// [qubits] - Composites built from primitives: the fluxonium qubit and the
// tunable coupler, in plain or mirrored orientation.
//
// [mesh] - Closed polygon meshes: prism extrusion of outlines and the
// double-sigmoid bridge used for Dolan junctions.
//
// ## Chip Model
//
// [dims] - Dimension records, colour palettes and TOML config loading.
//
// [lattice] - Site and edge placement on the square lattice, including the
// checkerboard cell pattern and the mirror rule for couplers.
//
// [layout] - Placed 2D chip layouts and their JSON serialization.
//
// [chip3d] - Scenes of named, material-tagged meshes built from a layout.
//
// ## Output
//
// [render] - Format conversion through rsvg-convert (SVG to PDF).
//
//   - [render/chip]: Styled 2D drawings of a placed chip
//   - [render/chip/sink]: SVG, PNG and JSON writers
//   - [render/nodelink]: Connectivity graphs through Graphviz
//
// ## Infrastructure
//
// [pipeline] - The layout → render → mesh pipeline shared by the CLI and
// the HTTP server, with caching keyed on the normalized options.
//
// [cache] - File, Redis and null caches for layouts, artifacts and scenes.
//
// [store] - Render job persistence in memory or MongoDB.
//
// [server] - HTTP API for synchronous and asynchronous renders.
//
// [observability] - Hook interfaces for pipeline, cache and HTTP events.
//
// [errors] - Coded errors and input validation helpers.
//
// [buildinfo] - Version information stamped at link time.
//
// # Common Workflows
//
// Place a lattice and write an SVG:
//
//	cfg := dims.DefaultChipConfig()
//	cfg.Lattice.Rows, cfg.Lattice.Cols = 3, 3
//	lat, _ := lattice.FromConfig(cfg)
//	l, _ := lat.Place(lattice.DefaultPlaceOptions())
//
// Run the whole pipeline:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, _ := runner.Execute(ctx, pipeline.Options{
//	    Rows: 3, Cols: 3, Formats: []string{pipeline.FormatSVG},
//	})
//
// Build meshes from the command line:
//
//	qchip mesh --rows 4 --cols 4 -f obj,stl -o chip
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/qchip/pkg/geom
// [primitives]: https://pkg.go.dev/github.com/matzehuels/qchip/pkg/primitives
// [qubits]: https://pkg.go.dev/github.com/matzehuels/qchip/pkg/qubits
// [mesh]: https://pkg.go.dev/github.com/matzehuels/qchip/pkg/mesh
// [dims]: https://pkg.go.dev/github.com/matzehuels/qchip/pkg/dims
// [lattice]: https://pkg.go.dev/github.com/matzehuels/qchip/pkg/lattice
// [layout]: https://pkg.go.dev/github.com/matzehuels/qchip/pkg/layout
// [chip3d]: https://pkg.go.dev/github.com/matzehuels/qchip/pkg/chip3d
// [render]: https://pkg.go.dev/github.com/matzehuels/qchip/pkg/render
// [render/chip]: https://pkg.go.dev/github.com/matzehuels/qchip/pkg/render/chip
// [render/chip/sink]: https://pkg.go.dev/github.com/matzehuels/qchip/pkg/render/chip/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/qchip/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/qchip/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/qchip/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/qchip/pkg/store
// [server]: https://pkg.go.dev/github.com/matzehuels/qchip/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/qchip/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/qchip/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/qchip/pkg/buildinfo
package pkg
