// Package chip3d turns a placed lattice into a 3D scene of named, closed
// meshes.
//
// Every metal film has the same thickness, [LayerHeight]. Junctions are
// modelled the way they are fabricated: islands are first-layer boxes and
// the second layer crosses each gap as a sigmoid-profiled Dolan bridge that
// climbs onto both neighbouring islands. Single junctions (SQUID legs, the
// fluxonium connector) use a half bridge with one ramp.
//
// The 3D components reuse the 2D primitives for their footprints, so a
// scene and a 2D layout built from the same configuration always agree.
//
// Materials come from a fixed palette held by a [MaterialCache]; a scene
// records which ones it used so the OBJ exporter can write a matching MTL
// library.
package chip3d
