package curve

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-edit/dsp/core"
)

// Type selects the interpolation shape of a curve segment.
type Type int

const (
	Linear Type = iota
	Exponential
	Logarithmic
	SCurve
	EqualPower
	Step
	Bezier
)

var typeNames = [...]string{
	Linear:      "linear",
	Exponential: "exponential",
	Logarithmic: "logarithmic",
	SCurve:      "s-curve",
	EqualPower:  "equal-power",
	Step:        "step",
	Bezier:      "bezier",
}

// Types lists every curve type in declaration order.
func Types() []Type {
	return []Type{Linear, Exponential, Logarithmic, SCurve, EqualPower, Step, Bezier}
}

func (t Type) valid() bool {
	return t >= Linear && t <= Bezier
}

func (t Type) String() string {
	if !t.valid() {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// ParseType converts a type name to a Type. Matching ignores case and
// accepts names without the dash ("scurve", "equalpower").
func ParseType(s string) (Type, error) {
	norm := strings.ToLower(strings.ReplaceAll(s, "-", ""))
	for t, name := range typeNames {
		if norm == strings.ReplaceAll(name, "-", "") {
			return Type(t), nil
		}
	}
	return 0, fmt.Errorf("curve: unknown type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, fmt.Errorf("curve: invalid type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Control is a Bezier handle in segment-local coordinates. X spans the
// segment in [0, 1]; Y is normalized to the segment's value range and may
// overshoot into [-1, 2].
type Control struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Control bounds.
const (
	ControlMinY = -1.0
	ControlMaxY = 2.0
)

// DefaultControl is the segment midpoint, for which a rising Bezier is
// the straight line.
var DefaultControl = Control{X: 0.5, Y: 0.5}

// Clamp returns c limited to [0,1]×[-1,2].
func (c Control) Clamp() Control {
	return Control{
		X: core.Clamp01(c.X),
		Y: core.Clamp(c.Y, ControlMinY, ControlMaxY),
	}
}

// Point is one curve breakpoint. Its Type, controls and tension shape the
// segment that starts at this point.
type Point struct {
	Time  float64 `json:"time"`
	Value float64 `json:"value"`
	Type  Type    `json:"type"`

	// Ctrl1 is the quadratic Bezier handle. Ctrl2 is the second handle
	// offered by editors; it is kept with the point but not evaluated.
	Ctrl1 Control `json:"ctrl1"`
	Ctrl2 Control `json:"ctrl2"`

	// Shaped enables the tension blend toward the Bezier through Ctrl1.
	// Unshaped segments use Tension 0.5.
	Shaped  bool    `json:"shaped,omitempty"`
	Tension float64 `json:"tension"`
}

// P returns an unshaped point.
func P(time, value float64, typ Type) Point {
	return Point{Time: time, Value: value, Type: typ, Ctrl1: DefaultControl, Ctrl2: DefaultControl, Tension: 0.5}
}
