// Package mesh builds closed polygon meshes for the 3D chip model.
//
// Every builder here produces a watertight, consistently oriented 2-manifold
// with outward-facing normals. Most of them are a sweep: a ring of four
// vertices (bottom-left, bottom-right, top-left, top-right) is placed at each
// sample along a path and adjacent rings are stitched with quads, then both
// ends are capped. The same stitching serves cuboids, extruded resonator
// centerlines and sigmoid-profiled Dolan bridges, so they share one winding
// convention.
//
// # Bridges
//
// A Dolan bridge is a thin strip of the second deposited metal layer that
// climbs onto an island at each end and dips to the substrate in the gap:
//
//	z(x) = h · (σ(−k(x − left)) + σ(k(x − right)))
//
// with left = −L/2 + overlap and right = L/2 − overlap. A half bridge has a
// single ramp near its +X end. See [DolanBridge] and [HalfBridge].
//
// # Export
//
// [OBJWriter] streams named meshes into one Wavefront OBJ file and
// [WriteSTL] emits ASCII STL.
package mesh
