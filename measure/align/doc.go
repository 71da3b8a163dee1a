// Package align estimates the time offset between a reference take and one
// or more target takes by brute-force cross-correlation.
//
// Both signals are downmixed to mono and peak-normalized, then every integer
// offset in [-max, +max] is scored by the mean product of the overlapping
// samples:
//
//	score(o) = sum(ref[i] * target[i+o]) / overlap(o)
//
// The offset with the highest score wins; ties keep the lowest offset.
// A positive offset means the target lags the reference.
//
// The score is not energy-normalized, so it is not a Pearson coefficient and
// is not guaranteed to lie in [-1, 1] for signals of different RMS. A
// peak-normalized sine scores about 0.5 against itself.
//
// # Usage
//
//	res := align.Align(reference, target, 4800)
//	if !res.Success {
//		return errors.New(res.Err)
//	}
//	fmt.Printf("offset %d samples (%.2f ms), score %.3f\n",
//		res.OffsetSamples, res.OffsetMillis, res.Correlation)
//
// Several targets against one reference run in parallel:
//
//	an := align.NewAnalyzer(align.WithWorkers(4), align.WithMethod(align.MethodFFT))
//	results := an.AlignBatch(ctx, reference, targets, 4800)
//
// # Failure
//
// Align never panics across its boundary and never returns an error value.
// Short input, invalid arguments, cancellation, and recovered panics all
// produce a Result with Success == false and a reason in Err.
package align
