package audiofile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-edit/dsp/buffer"
	"github.com/cwbudde/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/mewkiz/flac"
)

// ErrUnsupported is returned for file extensions without a decoder.
var ErrUnsupported = errors.New("audiofile: unsupported format")

// Load decodes the file at path, choosing the decoder by extension.
// Files with more than two channels keep the first two.
func Load(path string) (*buffer.Audio, error) {
	var (
		a   *buffer.Audio
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav", ".wave":
		a, err = loadWAV(path)
	case ".mp3":
		a, err = loadMP3(path)
	case ".flac":
		a, err = loadFLAC(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return a, nil
}

func loadWAV(path string) (*buffer.Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, errors.New("invalid wav file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, errors.New("invalid wav buffer")
	}
	if buf.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid wav sample-rate: %d", buf.Format.SampleRate)
	}
	return fromInterleaved(buf.Data, buf.Format.NumChannels, float64(buf.Format.SampleRate)), nil
}

// loadMP3 decodes the whole stream. go-mp3 always yields 16-bit
// little-endian stereo.
func loadMP3(path string) (*buffer.Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("decode mp3: %w", err)
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decode mp3: %w", err)
	}

	n := len(raw) / 2
	samples := make([]float32, n)
	for i := 0; i < n; i++ {
		samples[i] = float32(int16(binary.LittleEndian.Uint16(raw[i*2:]))) / 32768
	}
	// Drop a trailing half frame.
	samples = samples[:n&^1]
	return &buffer.Audio{Samples: samples, SampleRate: float64(dec.SampleRate()), Channels: 2}, nil
}

func loadFLAC(path string) (*buffer.Audio, error) {
	stream, err := flac.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode flac: %w", err)
	}
	defer stream.Close()

	info := stream.Info
	srcCh := int(info.NChannels)
	if srcCh < 1 || info.SampleRate == 0 || info.BitsPerSample == 0 {
		return nil, fmt.Errorf("invalid flac stream info: %d channels, %d Hz", srcCh, info.SampleRate)
	}
	ch := min(srcCh, 2)
	scale := 1 / float32(int64(1)<<(info.BitsPerSample-1))

	var samples []float32
	if info.NSamples > 0 {
		samples = make([]float32, 0, int(info.NSamples)*ch)
	}
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode flac: %w", err)
		}
		for i := 0; i < int(frame.BlockSize); i++ {
			for c := 0; c < ch; c++ {
				samples = append(samples, float32(frame.Subframes[c].Samples[i])*scale)
			}
		}
	}
	return &buffer.Audio{Samples: samples, SampleRate: float64(info.SampleRate), Channels: ch}, nil
}

// fromInterleaved keeps at most two channels of data.
func fromInterleaved(data []float32, channels int, sampleRate float64) *buffer.Audio {
	if channels <= 2 {
		frames := len(data) / channels
		out := make([]float32, frames*channels)
		copy(out, data)
		return &buffer.Audio{Samples: out, SampleRate: sampleRate, Channels: channels}
	}
	frames := len(data) / channels
	out := make([]float32, frames*2)
	for i := 0; i < frames; i++ {
		out[2*i] = data[i*channels]
		out[2*i+1] = data[i*channels+1]
	}
	return &buffer.Audio{Samples: out, SampleRate: sampleRate, Channels: 2}
}
