// Package geom provides the 2D and 3D value types shared by every geometry
// generator in qchip.
//
// Generators build their shapes in a local frame once and hand out
// transformed copies. A [Placement] is the rigid transform used for that:
// rotate about the local origin, then translate. Angles are in degrees,
// counter-clockwise, with the y axis pointing up.
//
// [Shape] is the plain-data drawing primitive consumed by the renderers. It
// is either an oriented rectangle or a closed polygon, tagged with a palette
// role and a draw order. [Ribbon] turns a polyline into a polygon of constant
// width and is used for the resonator meander.
package geom
