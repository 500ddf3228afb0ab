package dims

import (
	"maps"
	"regexp"
	"slices"

	"github.com/matzehuels/qchip/pkg/errors"
)

// Palette roles. Every 2D shape carries one of these.
const (
	RoleXmonBody      = "xmon_body"
	RoleChainIsland   = "jj_chain_island"
	RoleChainBridge   = "jj_chain_bridge"
	RoleJunction      = "junction"
	RoleResonator     = "resonator"
	RoleSquidJunction = "dc_squid_body"
	RoleSquidLeg      = "squid_leg"
	RoleConnector     = "connector"
	RoleBackground    = "background"
	RoleCouplerBody   = "coupler_body"
	RoleFluxLine      = "flux_line"
	RoleLabel         = "label"
	RoleCellResonator = "cell_resonator"
	RoleCellFluxLine  = "cell_flux_line"
)

// Palette maps a role onto a "#rrggbb" colour.
type Palette map[string]string

// DefaultPalette returns the light illustration palette.
func DefaultPalette() Palette {
	return Palette{
		RoleXmonBody:      "#9EAAB2",
		RoleChainIsland:   "#6B8E9B",
		RoleChainBridge:   "#4A6C6F",
		RoleJunction:      "#D95F5F",
		RoleResonator:     "#7BA3B8",
		RoleSquidJunction: "#D95F5F",
		RoleSquidLeg:      "#D4B84A",
		RoleConnector:     "#6B8E9B",
		RoleBackground:    "#F5F5F7",
		RoleCouplerBody:   "#B8A07A",
		RoleFluxLine:      "#8B6C42",
		RoleLabel:         "#333333",
		RoleCellResonator: "#d0e0ff",
		RoleCellFluxLine:  "#ffe0d0",
	}
}

// BlueprintPalette returns a dark palette for slides.
func BlueprintPalette() Palette {
	return Palette{
		RoleXmonBody:      "#C8D6E5",
		RoleChainIsland:   "#8FB8C9",
		RoleChainBridge:   "#5E8C99",
		RoleJunction:      "#FF7B72",
		RoleResonator:     "#79C0FF",
		RoleSquidJunction: "#FF7B72",
		RoleSquidLeg:      "#F2CC60",
		RoleConnector:     "#8FB8C9",
		RoleBackground:    "#0D1B2A",
		RoleCouplerBody:   "#D2B48C",
		RoleFluxLine:      "#E3A857",
		RoleLabel:         "#E6EDF3",
		RoleCellResonator: "#1F4E79",
		RoleCellFluxLine:  "#7A3E1D",
	}
}

// Palettes lists the built-in palettes by name.
var Palettes = map[string]func() Palette{
	"default":   DefaultPalette,
	"blueprint": BlueprintPalette,
}

// PaletteNames returns the built-in palette names, sorted.
func PaletteNames() []string {
	return slices.Sorted(maps.Keys(Palettes))
}

// LookupPalette returns the named built-in palette.
func LookupPalette(name string) (Palette, error) {
	if name == "" {
		return DefaultPalette(), nil
	}
	fn, ok := Palettes[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown palette %q (valid: %v)", name, PaletteNames())
	}
	return fn(), nil
}

const fallbackColor = "#888888"

// Color returns the colour for role, or a neutral grey when unset.
func (p Palette) Color(role string) string {
	if c, ok := p[role]; ok {
		return c
	}
	return fallbackColor
}

// Merge returns a copy of p with the entries of o overriding it.
func (p Palette) Merge(o Palette) Palette {
	out := maps.Clone(p)
	if out == nil {
		out = Palette{}
	}
	maps.Copy(out, o)
	return out
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks that every entry is a "#rrggbb" colour.
func (p Palette) Validate() error {
	for _, role := range slices.Sorted(maps.Keys(p)) {
		if !hexColor.MatchString(p[role]) {
			return errors.New(errors.ErrCodeInvalidStyle, "palette.%s: %q is not a #rrggbb colour", role, p[role])
		}
	}
	return nil
}
