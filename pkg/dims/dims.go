package dims

import "github.com/matzehuels/qchip/pkg/errors"

// XmonDims describes a symmetric Xmon cross.
type XmonDims struct {
	ArmLen      float64 `toml:"arm_len" json:"arm_len"`
	ArmWidth    float64 `toml:"arm_width" json:"arm_width"`
	PadHeadSize float64 `toml:"pad_head_size" json:"pad_head_size"`
}

func DefaultXmon() XmonDims {
	return XmonDims{ArmLen: 140, ArmWidth: 30, PadHeadSize: 60}
}

// Cross resolves the record into a symmetric CrossDims.
func (d XmonDims) Cross() CrossDims {
	return CrossDims{Arms: Symmetric{Len: d.ArmLen}, ArmWidth: d.ArmWidth, PadHeadSize: d.PadHeadSize}
}

func (d XmonDims) Validate(prefix string) error { return d.Cross().Validate(prefix) }

// CouplerXmonDims describes the asymmetric cross of a tunable coupler: long
// arms at 0° and 180°, short arms at 90° and 270°.
type CouplerXmonDims struct {
	LongArmLen  float64 `toml:"long_arm_len" json:"long_arm_len"`
	ShortArmLen float64 `toml:"short_arm_len" json:"short_arm_len"`
	ArmWidth    float64 `toml:"arm_width" json:"arm_width"`
	PadHeadSize float64 `toml:"pad_head_size" json:"pad_head_size"`
}

func DefaultCouplerXmon() CouplerXmonDims {
	return CouplerXmonDims{LongArmLen: 100, ShortArmLen: 50, ArmWidth: 24, PadHeadSize: 45}
}

// Cross resolves the record into an asymmetric CrossDims.
func (d CouplerXmonDims) Cross() CrossDims {
	return CrossDims{
		Arms:        Asymmetric{Long: d.LongArmLen, Short: d.ShortArmLen},
		ArmWidth:    d.ArmWidth,
		PadHeadSize: d.PadHeadSize,
	}
}

func (d CouplerXmonDims) Validate(prefix string) error { return d.Cross().Validate(prefix) }

// JJChainDims describes a Josephson-junction chain: alternating islands and
// overlapping bridges along the chain axis.
type JJChainDims struct {
	Length    float64 `toml:"length" json:"length"`
	Width     float64 `toml:"width" json:"width"`
	IslandLen float64 `toml:"island_len" json:"island_len"`
	Gap       float64 `toml:"gap" json:"gap"`
	Overlap   float64 `toml:"overlap" json:"overlap"`
}

func DefaultJJChain() JJChainDims {
	return JJChainDims{Length: 200, Width: 15, IslandLen: 20, Gap: 15, Overlap: 6}
}

func (d JJChainDims) Validate(prefix string) error {
	return errors.First(
		errors.Positive(prefix+".length", d.Length),
		errors.Positive(prefix+".width", d.Width),
		errors.Positive(prefix+".island_len", d.IslandLen),
		errors.Positive(prefix+".gap", d.Gap),
		errors.Positive(prefix+".overlap", d.Overlap),
	)
}

// FluxoniumDims describes a fluxonium qubit: an Xmon with two parallel
// junction chains closed by a connector bar and a junction.
type FluxoniumDims struct {
	Xmon               XmonDims    `toml:"xmon" json:"xmon"`
	Chain              JJChainDims `toml:"chain" json:"chain"`
	ChainSeparation    float64     `toml:"chain_separation" json:"chain_separation"`
	ChainStartDist     float64     `toml:"chain_start_dist" json:"chain_start_dist"`
	ChainAngle         float64     `toml:"chain_angle" json:"chain_angle"`
	ConnectorBarExtra  float64     `toml:"connector_bar_extra" json:"connector_bar_extra"`
	ConnectorBarHeight float64     `toml:"connector_bar_height" json:"connector_bar_height"`
}

func DefaultFluxonium() FluxoniumDims {
	return FluxoniumDims{
		Xmon:               DefaultXmon(),
		Chain:              DefaultJJChain(),
		ChainSeparation:    40,
		ChainStartDist:     15,
		ChainAngle:         -45,
		ConnectorBarExtra:  6,
		ConnectorBarHeight: 6,
	}
}

func (d FluxoniumDims) Validate(prefix string) error {
	return errors.First(
		d.Xmon.Validate(prefix+".xmon"),
		d.Chain.Validate(prefix+".chain"),
		errors.Positive(prefix+".chain_separation", d.ChainSeparation),
		errors.Positive(prefix+".chain_start_dist", d.ChainStartDist),
		errors.Finite(prefix+".chain_angle", d.ChainAngle),
		errors.Positive(prefix+".connector_bar_extra", d.ConnectorBarExtra),
		errors.Positive(prefix+".connector_bar_height", d.ConnectorBarHeight),
	)
}

// DCSQUIDDims describes a DC SQUID: two parallel legs joined by a U-bar, with
// one junction per leg.
type DCSQUIDDims struct {
	LegLength      float64 `toml:"leg_length" json:"leg_length"`
	LegSeparation  float64 `toml:"leg_separation" json:"leg_separation"`
	LegWidth       float64 `toml:"leg_width" json:"leg_width"`
	UBarWidth      float64 `toml:"u_bar_width" json:"u_bar_width"`
	JunctionWidth  float64 `toml:"junction_width" json:"junction_width"`
	JunctionHeight float64 `toml:"junction_height" json:"junction_height"`
}

func DefaultDCSQUID() DCSQUIDDims {
	return DCSQUIDDims{LegLength: 40, LegSeparation: 20, LegWidth: 3, UBarWidth: 3, JunctionWidth: 10, JunctionHeight: 8}
}

func (d DCSQUIDDims) Validate(prefix string) error {
	return errors.First(
		errors.Positive(prefix+".leg_length", d.LegLength),
		errors.Positive(prefix+".leg_separation", d.LegSeparation),
		errors.Positive(prefix+".leg_width", d.LegWidth),
		errors.Positive(prefix+".u_bar_width", d.UBarWidth),
		errors.Positive(prefix+".junction_width", d.JunctionWidth),
		errors.Positive(prefix+".junction_height", d.JunctionHeight),
	)
}

// ResonatorDims describes a meandered readout resonator. Width is the
// half-width of the trace.
type ResonatorDims struct {
	LeadLength       float64 `toml:"lead_length" json:"lead_length"`
	TurnRadius       float64 `toml:"turn_radius" json:"turn_radius"`
	MeanderAmplitude float64 `toml:"meander_amplitude" json:"meander_amplitude"`
	NumTurns         int     `toml:"num_turns" json:"num_turns"`
	Width            float64 `toml:"width" json:"width"`
}

func DefaultResonator() ResonatorDims {
	return ResonatorDims{LeadLength: 15, TurnRadius: 8, MeanderAmplitude: 30, NumTurns: 5, Width: 3}
}

func (d ResonatorDims) Validate(prefix string) error {
	return errors.First(
		errors.Positive(prefix+".lead_length", d.LeadLength),
		errors.Positive(prefix+".turn_radius", d.TurnRadius),
		errors.Positive(prefix+".meander_amplitude", d.MeanderAmplitude),
		errors.AtLeast(prefix+".num_turns", d.NumTurns, 1),
		errors.Positive(prefix+".width", d.Width),
	)
}

// FluxLineDims describes the flux-bias feed line. Width is the half-width.
type FluxLineDims struct {
	Length   float64 `toml:"length" json:"length"`
	Width    float64 `toml:"width" json:"width"`
	Standoff float64 `toml:"standoff" json:"standoff"`
}

func DefaultFluxLine() FluxLineDims {
	return FluxLineDims{Length: 60, Width: 3, Standoff: 8}
}

func (d FluxLineDims) Validate(prefix string) error {
	return errors.First(
		errors.Positive(prefix+".length", d.Length),
		errors.Positive(prefix+".width", d.Width),
		errors.Positive(prefix+".standoff", d.Standoff),
	)
}

// TunableTransmonDims describes a tunable-transmon coupler. The arm indices
// select which short arm carries the SQUID and which the resonator:
// index 0 is the 90° arm, index 1 the 270° arm.
type TunableTransmonDims struct {
	Xmon              CouplerXmonDims `toml:"xmon" json:"xmon"`
	DCSQUID           DCSQUIDDims     `toml:"dc_squid" json:"dc_squid"`
	Resonator         ResonatorDims   `toml:"resonator" json:"resonator"`
	FluxLine          FluxLineDims    `toml:"flux_line" json:"flux_line"`
	SquidArmIndex     int             `toml:"squid_arm_index" json:"squid_arm_index"`
	ResonatorArmIndex int             `toml:"resonator_arm_index" json:"resonator_arm_index"`
}

func DefaultTunableTransmon() TunableTransmonDims {
	return TunableTransmonDims{
		Xmon:              DefaultCouplerXmon(),
		DCSQUID:           DefaultDCSQUID(),
		Resonator:         DefaultResonator(),
		FluxLine:          DefaultFluxLine(),
		SquidArmIndex:     0,
		ResonatorArmIndex: 1,
	}
}

// ShortArms maps a short-arm index onto its direction.
var ShortArms = [2]Direction{North, South}

func (d TunableTransmonDims) Validate(prefix string) error {
	if err := errors.First(
		d.Xmon.Validate(prefix+".xmon"),
		d.DCSQUID.Validate(prefix+".dc_squid"),
		d.Resonator.Validate(prefix+".resonator"),
		d.FluxLine.Validate(prefix+".flux_line"),
		errors.OneOf(prefix+".squid_arm_index", d.SquidArmIndex, 0, 1),
		errors.OneOf(prefix+".resonator_arm_index", d.ResonatorArmIndex, 0, 1),
	); err != nil {
		return err
	}
	if d.SquidArmIndex == d.ResonatorArmIndex {
		return errors.New(errors.ErrCodeInvalidDimension,
			"%s: squid_arm_index and resonator_arm_index must differ (both %d)", prefix, d.SquidArmIndex)
	}
	return nil
}

// LatticeConfig sizes a square lattice. A Pitch <= 0 requests the automatic
// pitch derived from the component dimensions; PadGap is the clearance
// between facing pads used by that computation.
type LatticeConfig struct {
	Rows   int     `toml:"rows" json:"rows"`
	Cols   int     `toml:"cols" json:"cols"`
	Pitch  float64 `toml:"pitch" json:"pitch"`
	PadGap float64 `toml:"pad_gap" json:"pad_gap"`
}

func DefaultLattice() LatticeConfig {
	return LatticeConfig{Rows: 3, Cols: 3, Pitch: 0, PadGap: 20}
}

// Validate rejects empty lattices. The lattice engine itself tolerates
// rows or cols < 1 and produces an empty grid; front ends call this to fail
// fast instead.
func (c LatticeConfig) Validate(prefix string) error {
	if c.Rows < 1 || c.Cols < 1 {
		return errors.New(errors.ErrCodeInvalidLattice,
			"%s: rows and cols must be >= 1 (got %dx%d)", prefix, c.Rows, c.Cols)
	}
	return errors.First(
		errors.Finite(prefix+".pitch", c.Pitch),
		errors.Positive(prefix+".pad_gap", c.PadGap),
	)
}

// AutoPitch reports whether the pitch must be derived from component sizes.
func (c LatticeConfig) AutoPitch() bool { return c.Pitch <= 0 }
