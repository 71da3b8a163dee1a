package curve

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
)

var (
	// ErrNoPoints is returned for an empty point list.
	ErrNoPoints = errors.New("curve: no points")
	// ErrUnsorted is returned when point times decrease.
	ErrUnsorted = errors.New("curve: points not sorted by time")
)

// Validate reports whether points can be evaluated. Equal neighboring times
// are allowed and produce a jump.
func Validate(points []Point) error {
	if len(points) == 0 {
		return ErrNoPoints
	}
	for i := 1; i < len(points); i++ {
		if points[i].Time < points[i-1].Time {
			return fmt.Errorf("%w: point %d at %g before %g", ErrUnsorted, i, points[i].Time, points[i-1].Time)
		}
	}
	return nil
}

// Curve is a validated, immutable point list.
type Curve struct {
	points []Point
}

// New copies and validates points.
func New(points []Point) (*Curve, error) {
	if err := Validate(points); err != nil {
		return nil, err
	}
	return &Curve{points: slices.Clone(points)}, nil
}

// Len returns the number of points.
func (c *Curve) Len() int { return len(c.points) }

// Points returns a copy of the point list.
func (c *Curve) Points() []Point { return slices.Clone(c.points) }

// Start returns the time of the first point.
func (c *Curve) Start() float64 { return c.points[0].Time }

// End returns the time of the last point.
func (c *Curve) End() float64 { return c.points[len(c.points)-1].Time }

// At returns the curve value at t. It gives the same result as [EvaluateAt]
// but locates the segment by binary search.
func (c *Curve) At(t float64) float64 {
	p := c.points
	n := len(p)
	if t <= p[0].Time {
		return p[0].Value
	}
	if t >= p[n-1].Time {
		return p[n-1].Value
	}
	// First index with Time > t; the segment starts one before it.
	i := sort.Search(n, func(k int) bool { return p[k].Time > t }) - 1
	if i < 0 || i >= n-1 {
		// NaN t.
		return p[n-1].Value
	}
	return segment(&p[i], &p[i+1], t)
}

// Render fills dst with the curve sampled at t0, t0+dt, t0+2dt, ...
// A non-positive dt samples t0 everywhere.
func (c *Curve) Render(dst []float64, t0, dt float64) {
	if dt <= 0 {
		v := c.At(t0)
		for i := range dst {
			dst[i] = v
		}
		return
	}

	p := c.points
	n := len(p)
	seg := 0
	for i := range dst {
		t := t0 + float64(i)*dt
		switch {
		case math.IsNaN(t):
			dst[i] = p[n-1].Value
		case t <= p[0].Time:
			dst[i] = p[0].Value
		case t >= p[n-1].Time:
			dst[i] = p[n-1].Value
		default:
			for seg < n-2 && p[seg+1].Time <= t {
				seg++
			}
			dst[i] = segment(&p[seg], &p[seg+1], t)
		}
	}
}
