package curve

import "github.com/cwbudde/algo-edit/dsp/core"

// EvaluateAt returns the curve value at time t.
//
// Points must be sorted by time; EvaluateAt does not check. Before the first
// point it returns the first value and from the last point on the last
// value. With no points it returns 0. It does not allocate.
func EvaluateAt(points []Point, t float64) float64 {
	n := len(points)
	if n == 0 {
		return 0
	}
	if t <= points[0].Time {
		return points[0].Value
	}
	if t >= points[n-1].Time {
		return points[n-1].Value
	}

	for i := 0; i < n-1; i++ {
		if points[i].Time <= t && t < points[i+1].Time {
			return segment(&points[i], &points[i+1], t)
		}
	}

	// Unsorted input.
	return points[n-1].Value
}

// segment evaluates the segment from p to q at t, with p.Time <= t < q.Time.
func segment(p, q *Point, t float64) float64 {
	span := q.Time - p.Time
	if span <= 0 {
		return q.Value
	}
	u := core.Clamp01((t - p.Time) / span)

	switch {
	case p.Type == Step:
		return p.Value
	case (p.Type == Linear || p.Type == Bezier) && !p.Shaped:
		return p.Value + u*(q.Value-p.Value)
	}

	tension := 0.5
	if p.Shaped {
		tension = p.Tension
	}

	rising := q.Value >= p.Value
	s := Shape(p.Type, u, p.Ctrl1.X, p.Ctrl1.Y, rising, tension)

	lo, hi := p.Value, q.Value
	if !rising {
		lo, hi = q.Value, p.Value
	}
	return lo + s*(hi-lo)
}
