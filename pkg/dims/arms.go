package dims

import (
	"math"

	"github.com/matzehuels/qchip/pkg/errors"
)

// Direction names one of the four arms of a cross.
type Direction int

const (
	East Direction = iota
	North
	West
	South
)

// Directions lists the arms in counter-clockwise order starting at 0°.
var Directions = [4]Direction{East, North, West, South}

// Degrees returns the arm angle: 0, 90, 180 or 270.
func (d Direction) Degrees() float64 { return float64(d) * 90 }

func (d Direction) String() string {
	switch d {
	case East:
		return "arm_0"
	case North:
		return "arm_90"
	case West:
		return "arm_180"
	case South:
		return "arm_270"
	}
	return "arm_?"
}

// DirectionOf maps an angle in degrees onto an arm. Angles are normalized
// into [0, 360) and must be a multiple of 90.
func DirectionOf(deg float64) (Direction, error) {
	n := math.Mod(deg, 360)
	if n < 0 {
		n += 360
	}
	q := n / 90
	if math.Abs(q-math.Round(q)) > 1e-9 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "arm angle %g is not a multiple of 90", deg)
	}
	return Direction(int(math.Round(q)) % 4), nil
}

// ArmLengths holds one arm length per Direction.
type ArmLengths [4]float64

// Max returns the longest arm.
func (a ArmLengths) Max() float64 {
	return max(a[0], a[1], a[2], a[3])
}

// ArmLayout is the arm configuration of a cross: either every arm has the
// same length, or the horizontal pair is long and the vertical pair short.
type ArmLayout interface {
	Lengths() ArmLengths
	Validate(prefix string) error
}

// Symmetric gives all four arms the same length.
type Symmetric struct {
	Len float64
}

func (s Symmetric) Lengths() ArmLengths { return ArmLengths{s.Len, s.Len, s.Len, s.Len} }

func (s Symmetric) Validate(prefix string) error {
	return errors.Positive(prefix+".arm_len", s.Len)
}

// Asymmetric gives the 0° and 180° arms length Long and the 90° and 270° arms
// length Short.
type Asymmetric struct {
	Long, Short float64
}

func (a Asymmetric) Lengths() ArmLengths { return ArmLengths{a.Long, a.Short, a.Long, a.Short} }

func (a Asymmetric) Validate(prefix string) error {
	return errors.First(
		errors.Positive(prefix+".long_arm_len", a.Long),
		errors.Positive(prefix+".short_arm_len", a.Short),
	)
}

// CrossDims is the resolved geometry of a cross-shaped capacitor.
type CrossDims struct {
	Arms        ArmLayout
	ArmWidth    float64
	PadHeadSize float64
}

// Validate checks that every length is positive.
func (c CrossDims) Validate(prefix string) error {
	if c.Arms == nil {
		return errors.New(errors.ErrCodeInvalidDimension, "%s: arm layout is required", prefix)
	}
	return errors.First(
		c.Arms.Validate(prefix),
		errors.Positive(prefix+".arm_width", c.ArmWidth),
		errors.Positive(prefix+".pad_head_size", c.PadHeadSize),
	)
}

// PadWidth is the radial extent of each end pad.
func (c CrossDims) PadWidth() float64 { return c.PadHeadSize / 1.5 }

// Reach is the distance from the cross center to the outer edge of the pad on
// the longest arm.
func (c CrossDims) Reach() float64 {
	return c.ArmWidth/2 + c.Arms.Lengths().Max() + c.PadWidth()
}
