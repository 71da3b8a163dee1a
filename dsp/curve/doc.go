// Package curve evaluates fade and automation curves.
//
// A curve is an ordered list of [Point] values. Each point starts a segment
// that runs to the next point, and the point's [Type] selects the segment
// shape:
//
//   - [Linear]:      u
//   - [Exponential]: u²
//   - [Logarithmic]: √u
//   - [SCurve]:      3u² - 2u³ (smoothstep)
//   - [EqualPower]:  sin(u·π/2)
//   - [Step]:        holds the start value for the whole segment
//   - [Bezier]:      u, bent toward a quadratic Bezier through a user control point
//
// Shaped segments blend the base shape with the Bezier through the point's
// control handle. A tension of 0.5 gives the base shape, 1.0 gives the Bezier,
// and 0.0 pushes the same distance away from the Bezier on the other side of
// the base curve.
//
// The Bezier is evaluated with the normalized position used directly as the
// curve parameter instead of solving X(s) = u. The control X coordinate
// therefore does not change the value; this keeps evaluation cheap and matches
// the shapes drawn by the editor.
//
// [EvaluateAt] works on any point slice with a forward scan. [Curve] validates
// and binary-searches a point list for playback and rendering, and [Fade]
// applies a shape as gain to a sample buffer.
package curve
