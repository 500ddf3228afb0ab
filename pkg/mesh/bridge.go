package mesh

import (
	"math"

	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/geom"
)

// Bridge defaults.
const (
	DefaultSteepness         = 2.0
	DefaultBridgeSamples     = 120
	DefaultHalfBridgeSamples = 80

	// transitionSpan is the 10-90 % rise of the logistic in units of 1/k.
	transitionSpan = 4.4
	// samplesPerTransition is the minimum number of rings across one ramp.
	samplesPerTransition = 4
)

// BridgeParams describes a sigmoid-profiled strip along local +X, centred on
// the origin.
type BridgeParams struct {
	Length    float64 // full X extent
	Width     float64 // Y extent
	HStep     float64 // height of the islands the strip climbs onto
	Thickness float64 // thickness of the strip
	Overlap   float64 // distance the strip extends onto an island
	Steepness float64 // logistic rate k; zero means DefaultSteepness
	Samples   int     // rings along X; zero means the variant default
}

// Profile is the bottom-surface height as a function of local x.
type Profile func(x float64) float64

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

// TransitionWidth is the X distance over which a ramp rises from 10 % to
// 90 % of its height.
func TransitionWidth(k float64) float64 { return transitionSpan / k }

// MinSamples returns the smallest ring count that resolves each ramp of a
// bridge of the given length with steepness k.
func MinSamples(length, k float64) int {
	step := TransitionWidth(k) / samplesPerTransition
	return int(math.Ceil(length/step)) + 1
}

func (p BridgeParams) withDefaults(samples int) BridgeParams {
	if p.Steepness == 0 {
		p.Steepness = DefaultSteepness
	}
	if p.Samples == 0 {
		p.Samples = samples
	}
	return p
}

func (p BridgeParams) validate(kind string, maxOverlap float64) error {
	err := errors.First(
		errors.Positive(kind+".length", p.Length),
		errors.Positive(kind+".width", p.Width),
		errors.Positive(kind+".thickness", p.Thickness),
		errors.Finite(kind+".h_step", p.HStep),
		errors.Positive(kind+".steepness", p.Steepness),
		errors.AtLeast(kind+".samples", p.Samples, 2),
	)
	if err != nil {
		return err
	}
	if p.Overlap < 0 || p.Overlap >= maxOverlap {
		return errors.New(errors.ErrCodeDegenerateGeometry,
			"%s.overlap must be in [0, %g) for length %g (got %g)", kind, maxOverlap, p.Length, p.Overlap)
	}
	spacing := p.Length / float64(p.Samples-1)
	if limit := TransitionWidth(p.Steepness) / samplesPerTransition; spacing > limit {
		return errors.New(errors.ErrCodeDegenerateGeometry,
			"%s: sample spacing %.3g exceeds %.3g; use at least %d samples or lower the steepness",
			kind, spacing, limit, MinSamples(p.Length, p.Steepness))
	}
	return nil
}

// DoubleProfile is the Dolan bridge profile: HStep at both ends, 0 in the
// gap.
func (p BridgeParams) DoubleProfile() Profile {
	p = p.withDefaults(DefaultBridgeSamples)
	left := -p.Length/2 + p.Overlap
	right := p.Length/2 - p.Overlap
	k, h := p.Steepness, p.HStep
	return func(x float64) float64 {
		return h * (sigmoid(-k*(x-left)) + sigmoid(k*(x-right)))
	}
}

// HalfProfile is the single-ramp profile: 0 at −X, rising to HStep within
// Overlap of the +X end.
func (p BridgeParams) HalfProfile() Profile {
	p = p.withDefaults(DefaultHalfBridgeSamples)
	step := p.Length/2 - p.Overlap
	k, h := p.Steepness, p.HStep
	return func(x float64) float64 {
		return h * sigmoid(k*(x-step))
	}
}

// DolanBridge builds a closed strip whose bottom follows DoubleProfile and
// whose top is Thickness above it.
func DolanBridge(p BridgeParams) (Mesh, error) {
	p = p.withDefaults(DefaultBridgeSamples)
	if err := p.validate("bridge", p.Length/2); err != nil {
		return Mesh{}, err
	}
	return profiled(p, p.DoubleProfile()), nil
}

// HalfBridge builds a closed strip whose bottom follows HalfProfile.
func HalfBridge(p BridgeParams) (Mesh, error) {
	p = p.withDefaults(DefaultHalfBridgeSamples)
	if err := p.validate("half_bridge", p.Length); err != nil {
		return Mesh{}, err
	}
	return profiled(p, p.HalfProfile()), nil
}

func profiled(p BridgeParams, z Profile) Mesh {
	hy := p.Width / 2
	rings := make([]ring, p.Samples)
	for i := range rings {
		x := -p.Length/2 + p.Length*float64(i)/float64(p.Samples-1)
		zb := z(x)
		zt := zb + p.Thickness
		rings[i] = ring{
			geom.V3(x, -hy, zb), geom.V3(x, hy, zb),
			geom.V3(x, -hy, zt), geom.V3(x, hy, zt),
		}
	}
	return sweep(rings)
}
