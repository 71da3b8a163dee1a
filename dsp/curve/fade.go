package curve

import (
	"math"

	"github.com/cwbudde/algo-edit/dsp/core"
)

// Fade is a gain ramp at the head (fade-in) or tail (fade-out) of a clip.
type Fade struct {
	Type Type `json:"type"`
	// Length in seconds.
	Length float64 `json:"length"`
	In     bool    `json:"in"`

	Ctrl    Control `json:"ctrl"`
	Shaped  bool    `json:"shaped,omitempty"`
	Tension float64 `json:"tension"`
}

// FadeIn returns an unshaped fade-in.
func FadeIn(t Type, length float64) Fade {
	return Fade{Type: t, Length: length, In: true, Ctrl: DefaultControl, Tension: 0.5}
}

// FadeOut returns an unshaped fade-out.
func FadeOut(t Type, length float64) Fade {
	return Fade{Type: t, Length: length, Ctrl: DefaultControl, Tension: 0.5}
}

func (f *Fade) tension() float64 {
	if f.Shaped {
		return f.Tension
	}
	return 0.5
}

// Gain returns the gain at pos seconds into the fade. A fade-in runs from
// 0 to 1 and holds 1 after Length; a fade-out runs from 1 to 0 and holds 0
// after Length.
func (f *Fade) Gain(pos float64) float64 {
	if f.Length <= 0 || math.IsNaN(pos) {
		if f.In {
			return 1
		}
		return 0
	}
	u := core.Clamp01(pos / f.Length)
	return Shape(f.Type, u, f.Ctrl.X, f.Ctrl.Y, f.In, f.tension())
}

// ApplyFloat32 multiplies the fade into interleaved samples in place. A
// fade-in covers the first Length seconds, a fade-out the last. Frames
// outside the fade are left untouched.
func (f *Fade) ApplyFloat32(samples []float32, channels int, sampleRate float64) {
	if channels < 1 || sampleRate <= 0 || f.Length <= 0 {
		return
	}
	frames := len(samples) / channels
	n := int(math.Round(f.Length * sampleRate))
	if n > frames {
		n = frames
	}
	if n == 0 {
		return
	}

	first := 0
	if !f.In {
		first = frames - n
	}
	// Position is measured so the ramp reaches its end on the last frame.
	den := float64(n - 1)
	if den == 0 {
		den = 1
	}
	for k := 0; k < n; k++ {
		g := float32(Shape(f.Type, float64(k)/den, f.Ctrl.X, f.Ctrl.Y, f.In, f.tension()))
		base := (first + k) * channels
		for c := 0; c < channels; c++ {
			samples[base+c] *= g
		}
	}
}

// Crossfade mixes the outgoing from and the incoming to buffers into dst
// with a fade of type t over the full length. The incoming gain follows
// the rising shape and the outgoing gain the falling shape. All buffers
// hold interleaved frames with the given channel count; the shortest
// buffer sets the length. It returns the number of frames written.
func Crossfade(dst, from, to []float32, channels int, t Type) int {
	if channels < 1 {
		return 0
	}
	n := min(len(dst), len(from), len(to)) / channels
	if n == 0 {
		return 0
	}
	den := float64(n - 1)
	if den == 0 {
		den = 1
	}
	for k := 0; k < n; k++ {
		u := float64(k) / den
		gIn := float32(Shape(t, u, DefaultControl.X, DefaultControl.Y, true, 0.5))
		gOut := float32(Shape(t, u, DefaultControl.X, DefaultControl.Y, false, 0.5))
		base := k * channels
		for c := 0; c < channels; c++ {
			i := base + c
			dst[i] = from[i]*gOut + to[i]*gIn
		}
	}
	return n
}

// EqualPowerCrossfade is Crossfade with the EqualPower shape, which keeps
// the summed power of uncorrelated material constant.
func EqualPowerCrossfade(dst, from, to []float32, channels int) int {
	return Crossfade(dst, from, to, channels, EqualPower)
}
