package align

import "github.com/cwbudde/algo-edit/dsp/buffer"

// Apply returns a copy of target moved by -offsetSamples frames so that it
// lines up with the reference the offset was measured against.
//
// A positive offset (target lags) drops the first offset frames; a negative
// offset prepends silence. The original buffer is not modified.
func Apply(target *buffer.Audio, offsetSamples int) *buffer.Audio {
	out := &buffer.Audio{SampleRate: target.SampleRate, Channels: target.Channels}
	ch := max(target.Channels, 1)

	switch {
	case offsetSamples > 0:
		skip := offsetSamples * ch
		if skip < len(target.Samples) {
			out.Samples = append([]float32(nil), target.Samples[skip:]...)
		} else {
			out.Samples = []float32{}
		}
	case offsetSamples < 0:
		lead := -offsetSamples * ch
		out.Samples = make([]float32, lead+len(target.Samples))
		copy(out.Samples[lead:], target.Samples)
	default:
		out.Samples = append([]float32(nil), target.Samples...)
	}

	return out
}
