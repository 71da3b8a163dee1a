// Package conv provides cross-correlation primitives for signal matching and
// alignment.
//
// All functions use the same lag convention: the value at lag L is
//
//	sum(a[i] * b[i+L])
//
// over every i for which both indices are in bounds, so a positive lag means
// b is delayed relative to a.
//
// # Usage
//
// A single lag, with its overlap count:
//
//	sum, n := conv.LagDot(reference, target, lag)
//
// Every lag at once, in the time domain or via FFT:
//
//	corr, err := conv.CorrelateDirect(reference, target)
//	corr, err := conv.CorrelateFFT(reference, target)
//	idx, peak := conv.FindPeakRange(corr, conv.IndexFromLag(-100, len(reference)), conv.IndexFromLag(100, len(reference)))
//	lag := conv.LagFromIndex(idx, len(reference))
//
// # Performance
//
// CorrelateDirect is O(N*M). CorrelateFFT is O((N+M) log(N+M)) and should be
// preferred once both signals are more than a few hundred samples long.
package conv
