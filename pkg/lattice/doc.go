// Package lattice places fluxonium data qubits on the sites of a square
// grid and tunable couplers on the edges between them.
//
// Site (r, c) sits at (c·pitch, r·pitch) with (0, 0) at the bottom-left
// qubit, +x right and +y up. Horizontal edges connect (r, c) to (r, c+1);
// vertical edges connect (r, c) to (r+1, c). Both maps are computed once at
// construction and exposed as copies.
//
// # Cells and mirroring
//
// The plaquette whose lower-left site is (r, c) is a cell. Cells alternate
// between resonator and flux-line types in a checkerboard. Each coupler
// carries its readout resonator on one short arm and its SQUID plus flux
// line on the other; [Lattice.MirrorForEdge] picks the side so that every
// interior cell receives only resonators or only flux lines from the
// couplers on its border.
package lattice
