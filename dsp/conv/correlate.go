package conv

import (
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
)

// CorrelateDirect computes the full cross-correlation of a and b in the time domain.
// The result has length len(a) + len(b) - 1.
// Output index k holds sum(a[i] * b[i+lag]) for lag = k - (len(a) - 1).
func CorrelateDirect(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	out := make([]float64, len(a)+len(b)-1)
	for k := range out {
		out[k], _ = LagDot(a, b, LagFromIndex(k, len(a)))
	}
	return out, nil
}

// CorrelateFFT computes the same result as CorrelateDirect using FFT.
// This is more efficient for longer signals.
func CorrelateFFT(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	n := len(a)
	m := len(b)
	outputLen := n + m - 1
	fftSize := nextPowerOf2(outputLen)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	aPadded := make([]complex128, fftSize)
	bPadded := make([]complex128, fftSize)
	for i, v := range a {
		aPadded[i] = complex(v, 0)
	}
	for i, v := range b {
		bPadded[i] = complex(v, 0)
	}

	aFreq := make([]complex128, fftSize)
	bFreq := make([]complex128, fftSize)
	if err := plan.Forward(aFreq, aPadded); err != nil {
		return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
	}
	if err := plan.Forward(bFreq, bPadded); err != nil {
		return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
	}

	// conj(A) * B yields sum(a[i] * b[i+lag]) at circular index lag.
	for i := range aFreq {
		aFreq[i] = complex(real(aFreq[i]), -imag(aFreq[i])) * bFreq[i]
	}

	circ := bPadded
	if err := plan.Inverse(circ, aFreq); err != nil {
		return nil, fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	// Negative lags wrap to the end of the circular result.
	result := make([]float64, outputLen)
	for k := range result {
		lag := LagFromIndex(k, n)
		if lag < 0 {
			lag += fftSize
		}
		result[k] = real(circ[lag])
	}

	return result, nil
}

// FindPeakRange returns the index and value of the maximum of corr[lo:hi+1].
// The first maximum wins on ties, so the scan order defines the tie-break.
// Bounds are clamped to the slice; an empty range returns -1.
func FindPeakRange(corr []float64, lo, hi int) (index int, value float64) {
	lo = max(lo, 0)
	hi = min(hi, len(corr)-1)
	if lo > hi {
		return -1, 0
	}

	index = lo
	value = corr[lo]

	for i := lo + 1; i <= hi; i++ {
		if corr[i] > value {
			index = i
			value = corr[i]
		}
	}

	return index, value
}

// LagFromIndex converts a correlation result index to a lag value.
// For a correlation whose first input has length lenA,
// the lag at index i is i - (lenA - 1).
func LagFromIndex(index, lenA int) int {
	return index - (lenA - 1)
}

// IndexFromLag converts a lag value to a correlation result index.
func IndexFromLag(lag, lenA int) int {
	return lag + (lenA - 1)
}
