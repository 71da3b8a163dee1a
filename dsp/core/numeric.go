package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [lo, hi].
// Swapped bounds are reordered.
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	if value < lo {
		return lo
	}

	if value > hi {
		return hi
	}

	return value
}

// Clamp01 limits value to [0, 1]. NaN maps to 0.
func Clamp01(value float64) float64 {
	if !(value > 0) {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

// NearlyEqual reports whether a and b are equal within eps, using a
// relative tolerance for large magnitudes.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return false
	}

	return diff/largest <= eps
}

// SamplesToMillis converts a signed sample count to milliseconds.
// Returns 0 for a non-positive sample rate.
func SamplesToMillis(samples int, sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return float64(samples) * 1000 / sampleRate
}

// MillisToSamples converts milliseconds to the nearest sample count.
// Returns 0 for a non-positive sample rate.
func MillisToSamples(ms, sampleRate float64) int {
	if sampleRate <= 0 {
		return 0
	}
	return int(math.Round(ms * sampleRate / 1000))
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
