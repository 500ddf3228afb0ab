// Package qubits composes primitives into the two qubit types placed on a
// lattice: the fluxonium data qubit and the tunable-transmon coupler.
//
// Both composites own their primitive generators and expose named anchor
// points in their local frame ("center", "arm_0", "arm_90", "arm_180",
// "arm_270") so that neighbours can be aligned without knowing the internal
// geometry.
package qubits
