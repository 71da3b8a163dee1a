package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Square generates a ±amplitude square wave with the given period in samples.
// The first half of each period is positive.
func Square(period int, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	if period < 2 {
		period = 2
	}
	for i := range out {
		if i%period < period/2 {
			out[i] = amplitude
		} else {
			out[i] = -amplitude
		}
	}
	return out
}

// Delay returns x shifted later by d samples, zero-filled at the front and
// truncated to the input length. Negative d shifts earlier.
func Delay(x []float64, d int) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		j := i + d
		if j >= 0 && j < len(out) {
			out[j] = x[i]
		}
	}
	return out
}

// Pad returns x with lead zeros before and tail zeros after it.
func Pad(x []float64, lead, tail int) []float64 {
	out := make([]float64, lead+len(x)+tail)
	copy(out[lead:], x)
	return out
}

// Float32 narrows x to float32 samples.
func Float32(x []float64) []float32 {
	out := make([]float32, len(x))
	for i, v := range x {
		out[i] = float32(v)
	}
	return out
}

// Interleave builds an interleaved stereo slice from left and right.
func Interleave(left, right []float64) []float32 {
	n := min(len(left), len(right))
	out := make([]float32, 2*n)
	for i := 0; i < n; i++ {
		out[2*i] = float32(left[i])
		out[2*i+1] = float32(right[i])
	}
	return out
}
