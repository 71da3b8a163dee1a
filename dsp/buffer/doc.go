// Package buffer describes interleaved float32 audio handed to the analysis
// code by track loaders, plus the mono preparation steps shared by the
// alignment analyzer: downmix, peak normalization, and a scratch pool for
// allocation-friendly batch work.
//
// An [Audio] value is treated as an immutable snapshot while it is being
// analyzed. Functions in this package never modify Audio.Samples.
package buffer
