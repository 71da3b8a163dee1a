package audiofile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-edit/dsp/buffer"
	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
)

// SaveWAV writes a as 16-bit PCM, creating parent directories.
func SaveWAV(path string, a *buffer.Audio) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	rate := int(a.SampleRate)
	enc := wav.NewEncoder(f, rate, 16, a.Channels, 1)
	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  rate,
			NumChannels: a.Channels,
		},
		Data:           a.Samples[:a.Frames()*a.Channels],
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
