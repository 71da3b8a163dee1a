package buffer

import (
	"errors"

	"github.com/cwbudde/algo-edit/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by Audio validation.
var (
	ErrChannels   = errors.New("buffer: channel count must be 1 or 2")
	ErrSampleRate = errors.New("buffer: sample rate must be positive")
)

// Audio is a block of 32-bit float samples with its sample rate and channel
// count. Stereo data is interleaved L, R, L, R, ...
type Audio struct {
	Samples    []float32
	SampleRate float64
	Channels   int
}

// NewMono wraps samples as a mono buffer without copying.
func NewMono(samples []float32, sampleRate float64) *Audio {
	return &Audio{Samples: samples, SampleRate: sampleRate, Channels: 1}
}

// NewStereo interleaves left and right into a new stereo buffer.
// The shorter channel determines the frame count.
func NewStereo(left, right []float32, sampleRate float64) *Audio {
	n := min(len(left), len(right))
	data := make([]float32, 2*n)
	for i := 0; i < n; i++ {
		data[2*i] = left[i]
		data[2*i+1] = right[i]
	}
	return &Audio{Samples: data, SampleRate: sampleRate, Channels: 2}
}

// Validate reports whether the buffer metadata is usable.
func (a *Audio) Validate() error {
	if a.Channels != 1 && a.Channels != 2 {
		return ErrChannels
	}
	if a.SampleRate <= 0 {
		return ErrSampleRate
	}
	return nil
}

// Frames returns the number of sample frames.
func (a *Audio) Frames() int {
	if a.Channels <= 1 {
		return len(a.Samples)
	}
	return len(a.Samples) / a.Channels
}

// DurationSeconds returns the buffer length in seconds, or 0 when the
// sample rate is unset.
func (a *Audio) DurationSeconds() float64 {
	if a.SampleRate <= 0 {
		return 0
	}
	return float64(a.Frames()) / a.SampleRate
}

// Clone returns a deep copy.
func (a *Audio) Clone() *Audio {
	out := *a
	out.Samples = append([]float32(nil), a.Samples...)
	return &out
}

// Downmix writes the mono version of a into dst, reusing its capacity.
//
// Stereo buffers with an even sample count greater than 2 are reduced to the
// mean of each interleaved pair. Everything else, including mono input and
// odd-length data, is passed through unchanged.
func Downmix(dst []float64, a *Audio) []float64 {
	n := len(a.Samples)
	if a.Channels != 2 || n <= 2 || n%2 != 0 {
		return core.Widen(dst, a.Samples)
	}

	frames := n / 2
	dst = core.EnsureLen(dst, frames)
	for i := 0; i < frames; i++ {
		dst[i] = 0.5 * (float64(a.Samples[2*i]) + float64(a.Samples[2*i+1]))
	}
	return dst
}

// PeakNormalize scales x in place so that max |x| becomes 1 and returns the
// original peak. Silent input is left untouched and reports a peak of 0.
func PeakNormalize(x []float64) float64 {
	peak := vecmath.MaxAbs(x)
	if peak == 0 {
		return 0
	}
	vecmath.ScaleBlockInPlace(x, 1/peak)
	return peak
}
