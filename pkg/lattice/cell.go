package lattice

import (
	"github.com/matzehuels/qchip/pkg/errors"
)

// CellType is the role of a plaquette in the checkerboard.
type CellType int

const (
	CellResonator CellType = iota
	CellFluxLine
)

func (t CellType) String() string {
	if t == CellFluxLine {
		return "flux_line"
	}
	return "resonator"
}

// Other returns the opposite cell type.
func (t CellType) Other() CellType {
	if t == CellResonator {
		return CellFluxLine
	}
	return CellResonator
}

// ParseCellType parses "resonator" or "flux_line".
func ParseCellType(s string) (CellType, error) {
	switch s {
	case "resonator", "":
		return CellResonator, nil
	case "flux_line", "fluxline", "flux":
		return CellFluxLine, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown cell type %q (valid: resonator, flux_line)", s)
}

// TypeOf returns the type of cell (r, c) when cell (0, 0) has type first.
func TypeOf(r, c int, first CellType) CellType {
	if (r+c)%2 == 0 {
		return first
	}
	return first.Other()
}
