package curve

import (
	"math"

	"github.com/cwbudde/algo-edit/dsp/core"
)

// Base returns the rising base shape of t at normalized position u in [0,1].
// Step returns 0 below u=1. The base of Bezier is the straight line u.
func Base(t Type, u float64) float64 {
	u = core.Clamp01(u)
	switch t {
	case Exponential:
		return u * u
	case Logarithmic:
		return math.Sqrt(u)
	case SCurve:
		return u * u * (3 - 2*u)
	case EqualPower:
		return math.Sin(u * math.Pi / 2)
	case Step:
		if u >= 1 {
			return 1
		}
		return 0
	default:
		return u
	}
}

// quadBezier evaluates the quadratic Bezier through p0, c, p2 at s.
func quadBezier(s, p0, c, p2 float64) float64 {
	r := 1 - s
	return r*r*p0 + 2*r*s*c + s*s*p2
}

// Shape evaluates a normalized curve segment at u in [0,1].
//
// A rising segment runs from 0 to 1 and a falling segment from 1 to 0; the
// caller rescales the result to the segment's actual values. Falling base
// shapes are the rising shape played backwards, so an equal-power fade-out is
// cos(u·π/2).
//
// The base shape is blended with the quadratic Bezier from the start level
// through (ctrlX, ctrlY) to the end level by (tension-0.5)*2. The base of a
// Bezier segment is the straight line, so tension 1 gives the pure Bezier.
// The result is clamped to [0,1].
//
// ctrlX does not affect the value: u is used directly as the Bezier parameter.
func Shape(t Type, u, ctrlX, ctrlY float64, rising bool, tension float64) float64 {
	u = core.Clamp01(u)

	start, end := 0.0, 1.0
	if !rising {
		start, end = 1, 0
	}

	if t == Step {
		if u >= 1 {
			return end
		}
		return start
	}

	bez := quadBezier(u, start, core.Clamp(ctrlY, ControlMinY, ControlMaxY), end)

	base := Base(t, u)
	if !rising {
		base = Base(t, 1-u)
	}

	blend := (tension - 0.5) * 2
	return core.Clamp01(base + blend*(bez-base))
}

// Preview fills dst with len(dst) evenly spaced samples of Shape over
// [0,1], for drawing a curve thumbnail. A single sample is taken at u=0.
func Preview(dst []float64, t Type, ctrl Control, rising bool, tension float64) {
	n := len(dst)
	if n == 0 {
		return
	}
	if n == 1 {
		dst[0] = Shape(t, 0, ctrl.X, ctrl.Y, rising, tension)
		return
	}
	step := 1 / float64(n-1)
	for i := range dst {
		dst[i] = Shape(t, float64(i)*step, ctrl.X, ctrl.Y, rising, tension)
	}
}
