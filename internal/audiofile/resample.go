package audiofile

import (
	"github.com/cwbudde/algo-dsp/dsp/resample"
	"github.com/cwbudde/algo-edit/dsp/buffer"
)

// Resample converts a to rate. It returns a unchanged when the rates match.
// Each channel is resampled separately.
func Resample(a *buffer.Audio, rate float64) (*buffer.Audio, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if a.SampleRate == rate {
		return a, nil
	}

	ch := a.Channels
	frames := a.Frames()
	var out []float32
	for c := 0; c < ch; c++ {
		r, err := resample.NewForRates(a.SampleRate, rate, resample.WithQuality(resample.QualityBest))
		if err != nil {
			return nil, err
		}
		in := make([]float64, frames)
		for i := range in {
			in[i] = float64(a.Samples[i*ch+c])
		}
		y := r.Process(in)
		if out == nil {
			out = make([]float32, len(y)*ch)
		}
		n := min(len(y), len(out)/ch)
		for i := 0; i < n; i++ {
			out[i*ch+c] = float32(y[i])
		}
	}
	return &buffer.Audio{Samples: out, SampleRate: rate, Channels: ch}, nil
}
