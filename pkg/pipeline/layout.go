package pipeline

import (
	"github.com/matzehuels/qchip/pkg/lattice"
	"github.com/matzehuels/qchip/pkg/layout"
)

// GenerateLayout builds the lattice described by opts and places it.
// The layout carries the full chip config, palette included, so that a
// stored layout renders the same way it was first drawn.
func GenerateLayout(opts Options) (layout.Layout, error) {
	cfg := opts.ChipConfig()
	lat, err := lattice.FromConfig(cfg)
	if err != nil {
		return layout.Layout{}, err
	}
	l, err := lat.Place(opts.PlaceOptions())
	if err != nil {
		return layout.Layout{}, err
	}
	l.Config.Palette = cfg.Palette
	return l, nil
}
