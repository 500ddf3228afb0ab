package dims

import (
	"bytes"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/qchip/pkg/errors"
)

// ChipConfig is the root of a chip description file.
type ChipConfig struct {
	Lattice   LatticeConfig       `toml:"lattice" json:"lattice"`
	Fluxonium FluxoniumDims       `toml:"fluxonium" json:"fluxonium"`
	Coupler   TunableTransmonDims `toml:"coupler" json:"coupler"`
	Palette   Palette             `toml:"palette,omitempty" json:"palette,omitempty"`
}

// DefaultChipConfig returns the 3x3 lattice with default components.
func DefaultChipConfig() ChipConfig {
	return ChipConfig{
		Lattice:   DefaultLattice(),
		Fluxonium: DefaultFluxonium(),
		Coupler:   DefaultTunableTransmon(),
	}
}

// Validate checks every record and returns the first failure.
func (c ChipConfig) Validate() error {
	return errors.First(
		c.Lattice.Validate("lattice"),
		c.Fluxonium.Validate("fluxonium"),
		c.Coupler.Validate("coupler"),
		c.Palette.Validate(),
	)
}

// Parse decodes TOML on top of the defaults, so a file only needs the keys
// it changes, and validates the result.
func Parse(data []byte) (ChipConfig, error) {
	cfg := DefaultChipConfig()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return ChipConfig{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse chip config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return ChipConfig{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return ChipConfig{}, err
	}
	return cfg, nil
}

// LoadFile reads and parses a TOML chip config.
func LoadFile(path string) (ChipConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ChipConfig{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return ChipConfig{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data)
}

// Encode renders cfg as TOML.
func Encode(cfg ChipConfig) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode chip config")
	}
	return buf.Bytes(), nil
}

// WriteFile writes cfg as TOML to path.
func WriteFile(path string, cfg ChipConfig) error {
	data, err := Encode(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
