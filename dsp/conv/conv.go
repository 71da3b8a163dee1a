package conv

import (
	"errors"

	"github.com/cwbudde/algo-vecmath"
)

// ErrEmptyInput is returned when a correlation input has no samples.
var ErrEmptyInput = errors.New("conv: empty input")

// overlapRange returns the index range [lo, hi) of a for which b[i+lag]
// is in bounds. hi <= lo means the signals do not overlap at lag.
func overlapRange(lenA, lenB, lag int) (lo, hi int) {
	return max(0, -lag), min(lenA, lenB-lag)
}

// OverlapAt returns how many sample pairs a[i], b[i+lag] exist for
// signals of length lenA and lenB.
func OverlapAt(lenA, lenB, lag int) int {
	lo, hi := overlapRange(lenA, lenB, lag)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// LagDot computes sum(a[i] * b[i+lag]) over the overlapping region and
// returns the sum and the number of overlapping pairs.
//
// This is a single point of the cross-correlation; it is O(overlap) and
// SIMD-accelerated through vecmath.DotProduct.
func LagDot(a, b []float64, lag int) (sum float64, n int) {
	lo, hi := overlapRange(len(a), len(b), lag)
	if hi <= lo {
		return 0, 0
	}
	return vecmath.DotProduct(a[lo:hi], b[lo+lag:hi+lag]), hi - lo
}

// nextPowerOf2 returns the smallest power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
