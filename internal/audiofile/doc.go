// Package audiofile loads and stores sample buffers for the command-line
// tools. WAV, MP3 and FLAC files are decoded to interleaved float32 in
// [-1, 1]; only WAV is written.
package audiofile
