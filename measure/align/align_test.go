package align

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-edit/dsp/buffer"
	"github.com/cwbudde/algo-edit/internal/testutil"
)

const testRate = 44100

func mono(x []float64) *buffer.Audio {
	return buffer.NewMono(testutil.Float32(x), testRate)
}

// selfScore is the mean square of the prepared (float32, peak-normalized) signal.
func selfScore(x []float64) float64 {
	m := buffer.Downmix(nil, mono(x))
	buffer.PeakNormalize(m)
	var sum float64
	for _, v := range m {
		sum += v * v
	}
	return sum / float64(len(m))
}

func TestAlignSelfIsZeroOffset(t *testing.T) {
	x := testutil.DeterministicNoise(1, 0.7, 4096)

	res := Align(mono(x), mono(x), 256)
	if !res.Success {
		t.Fatalf("Align failed: %s", res.Err)
	}
	if res.OffsetSamples != 0 {
		t.Fatalf("OffsetSamples = %d, want 0", res.OffsetSamples)
	}
	if res.OffsetMillis != 0 {
		t.Fatalf("OffsetMillis = %v, want 0", res.OffsetMillis)
	}
	testutil.RequireNearlyEqual(t, "Correlation", res.Correlation, selfScore(x), 1e-9)
	if res.Overlap != len(x) {
		t.Fatalf("Overlap = %d, want %d", res.Overlap, len(x))
	}
}

func TestAlignDetectsShift(t *testing.T) {
	x := testutil.DeterministicNoise(7, 1, 4096)

	for _, shift := range []int{0, 1, 7, 123, -45, -200, 256, -256} {
		for _, method := range []Method{MethodDirect, MethodFFT} {
			t.Run(method.String(), func(t *testing.T) {
				an := NewAnalyzer(WithMethod(method))
				res := an.Align(mono(x), mono(testutil.Delay(x, shift)), 256)
				if !res.Success {
					t.Fatalf("Align failed: %s", res.Err)
				}
				if res.OffsetSamples != shift {
					t.Fatalf("shift %d: OffsetSamples = %d", shift, res.OffsetSamples)
				}
				if res.Method != method {
					t.Fatalf("Method = %v, want %v", res.Method, method)
				}
			})
		}
	}
}

func TestAlignDelayedSine(t *testing.T) {
	// 441 Hz at 44.1 kHz is exactly 100 samples per cycle, so the reference
	// holds 10 whole cycles.
	ref := testutil.DeterministicSine(441, testRate, 1, 1000)
	target := testutil.Pad(ref, 50, 100)

	res := Align(mono(ref), mono(target), 200)
	if !res.Success {
		t.Fatalf("Align failed: %s", res.Err)
	}
	if res.OffsetSamples != 50 {
		t.Fatalf("OffsetSamples = %d, want 50", res.OffsetSamples)
	}
	testutil.RequireNearlyEqual(t, "OffsetMillis", res.OffsetMillis, 50*1000.0/testRate, 1e-12)

	self := Align(mono(ref), mono(ref), 200)
	testutil.RequireNearlyEqual(t, "Correlation", res.Correlation, self.Correlation, 1e-9)
	testutil.RequireNearlyEqual(t, "sine score", res.Correlation, 0.5, 1e-6)
}

func TestAlignDelayedSquareScoresHigh(t *testing.T) {
	ref := testutil.Square(100, 0.8, 1000)
	target := testutil.Pad(ref, 50, 100)

	res := Align(mono(ref), mono(target), 200)
	if !res.Success {
		t.Fatalf("Align failed: %s", res.Err)
	}
	if res.OffsetSamples != 50 {
		t.Fatalf("OffsetSamples = %d, want 50", res.OffsetSamples)
	}
	if res.Correlation <= 0.95 {
		t.Fatalf("Correlation = %v, want > 0.95", res.Correlation)
	}
}

func TestAlignAdvancedTargetIsNegative(t *testing.T) {
	x := testutil.DeterministicNoise(5, 1, 2048)
	res := Align(mono(x), mono(x[30:]), 100)
	if !res.Success {
		t.Fatalf("Align failed: %s", res.Err)
	}
	if res.OffsetSamples != -30 {
		t.Fatalf("OffsetSamples = %d, want -30", res.OffsetSamples)
	}
	if res.OffsetMillis >= 0 {
		t.Fatalf("OffsetMillis = %v, want negative", res.OffsetMillis)
	}
}

func TestAlignTooShort(t *testing.T) {
	short := mono(make([]float64, 99))
	long := mono(testutil.DeterministicNoise(2, 1, 1000))

	for _, maxOffset := range []int{0, 10, 5000} {
		for _, pair := range [][2]*buffer.Audio{{short, long}, {long, short}, {short, short}} {
			res := Align(pair[0], pair[1], maxOffset)
			if res.Success {
				t.Fatalf("max %d: expected failure for short input", maxOffset)
			}
			if res.Err != ErrTooShort.Error() {
				t.Fatalf("Err = %q, want %q", res.Err, ErrTooShort.Error())
			}
		}
	}
}

func TestAlignTooShortCountsMonoSamples(t *testing.T) {
	noise := testutil.DeterministicNoise(3, 1, 100)
	long := mono(testutil.DeterministicNoise(4, 1, 1000))

	// 99 stereo frames downmix to 99 mono samples.
	st := &buffer.Audio{Samples: testutil.Interleave(noise[:99], noise[:99]), SampleRate: testRate, Channels: 2}
	if res := Align(long, st, 10); res.Success {
		t.Fatal("expected failure for 99 stereo frames")
	}

	st = &buffer.Audio{Samples: testutil.Interleave(noise, noise), SampleRate: testRate, Channels: 2}
	if res := Align(long, st, 10); !res.Success {
		t.Fatalf("100 stereo frames failed: %s", res.Err)
	}
}

func TestAlignStereoReference(t *testing.T) {
	x := testutil.DeterministicNoise(11, 0.5, 4096)
	ref := &buffer.Audio{Samples: testutil.Interleave(x, x), SampleRate: testRate, Channels: 2}

	res := Align(ref, mono(testutil.Delay(x, 33)), 64)
	if !res.Success {
		t.Fatalf("Align failed: %s", res.Err)
	}
	if res.OffsetSamples != 33 {
		t.Fatalf("OffsetSamples = %d, want 33", res.OffsetSamples)
	}
}

func TestAlignTieKeepsLowestOffset(t *testing.T) {
	dc := make([]float64, 200)
	for i := range dc {
		dc[i] = 0.25
	}

	an := NewAnalyzer(WithMethod(MethodDirect))
	res := an.Align(mono(dc), mono(dc), 20)
	if !res.Success {
		t.Fatalf("Align failed: %s", res.Err)
	}
	if res.OffsetSamples != -20 {
		t.Fatalf("OffsetSamples = %d, want -20 (first of equal scores)", res.OffsetSamples)
	}
	if res.Correlation != 1 {
		t.Fatalf("Correlation = %v, want 1", res.Correlation)
	}
	if res.Overlap != 180 {
		t.Fatalf("Overlap = %d, want 180", res.Overlap)
	}
}

func TestAlignSilenceHasNoNaN(t *testing.T) {
	silent := mono(make([]float64, 500))

	res := Align(silent, silent, 10)
	if !res.Success {
		t.Fatalf("Align failed: %s", res.Err)
	}
	if math.IsNaN(res.Correlation) || res.Correlation != 0 {
		t.Fatalf("Correlation = %v, want 0", res.Correlation)
	}
	if res.OffsetSamples != -10 {
		t.Fatalf("OffsetSamples = %d, want -10", res.OffsetSamples)
	}
}

func TestAlignAntiCorrelated(t *testing.T) {
	x := testutil.DeterministicNoise(8, 1, 1000)
	inv := make([]float64, len(x))
	for i, v := range x {
		inv[i] = -v
	}

	res := Align(mono(x), mono(inv), 0)
	if !res.Success {
		t.Fatalf("Align failed: %s", res.Err)
	}
	if res.Correlation >= 0 {
		t.Fatalf("Correlation = %v, want negative", res.Correlation)
	}
}

func TestAlignFFTMatchesDirect(t *testing.T) {
	x := testutil.DeterministicNoise(21, 1, 3000)
	y := testutil.Pad(testutil.DeterministicNoise(21, 1, 2500), 77, 10)

	direct := NewAnalyzer(WithMethod(MethodDirect)).Align(mono(x), mono(y), 150)
	fft := NewAnalyzer(WithMethod(MethodFFT)).Align(mono(x), mono(y), 150)

	if !direct.Success || !fft.Success {
		t.Fatalf("failures: direct=%q fft=%q", direct.Err, fft.Err)
	}
	if direct.OffsetSamples != fft.OffsetSamples {
		t.Fatalf("offsets differ: direct=%d fft=%d", direct.OffsetSamples, fft.OffsetSamples)
	}
	testutil.RequireNearlyEqual(t, "fft correlation", fft.Correlation, direct.Correlation, 1e-9)
	if direct.Overlap != fft.Overlap {
		t.Fatalf("overlaps differ: direct=%d fft=%d", direct.Overlap, fft.Overlap)
	}
}

func TestAlignAutoMethod(t *testing.T) {
	x := testutil.DeterministicNoise(2, 1, 1000)

	small := NewAnalyzer(WithMethod(MethodAuto)).Align(mono(x), mono(x), 10)
	if small.Method != MethodDirect {
		t.Fatalf("small search used %v, want direct", small.Method)
	}

	big := NewAnalyzer(WithMethod(MethodAuto), WithAutoThreshold(1000)).Align(mono(x), mono(x), 10)
	if big.Method != MethodFFT {
		t.Fatalf("large search used %v, want fft", big.Method)
	}
	if big.OffsetSamples != 0 {
		t.Fatalf("OffsetSamples = %d, want 0", big.OffsetSamples)
	}
}

func TestAlignInvalidArguments(t *testing.T) {
	x := mono(testutil.DeterministicNoise(1, 1, 500))

	if res := Align(nil, x, 10); res.Success || res.Err != ErrNilBuffer.Error() {
		t.Fatalf("nil reference: %+v", res)
	}
	if res := Align(x, nil, 10); res.Success || res.Err != ErrNilBuffer.Error() {
		t.Fatalf("nil target: %+v", res)
	}
	if res := Align(x, x, -1); res.Success || res.Err != ErrNegativeOffset.Error() {
		t.Fatalf("negative offset: %+v", res)
	}
}

func TestAlignContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	x := mono(testutil.DeterministicNoise(1, 1, 500))
	for _, method := range []Method{MethodDirect, MethodFFT} {
		res := NewAnalyzer(WithMethod(method)).AlignContext(ctx, x, x, 10)
		if res.Success {
			t.Fatalf("%v: expected failure after cancel", method)
		}
		if res.Err != context.Canceled.Error() {
			t.Fatalf("%v: Err = %q, want %q", method, res.Err, context.Canceled.Error())
		}
	}
}

func TestAlignMinSamplesOption(t *testing.T) {
	x := mono(testutil.DeterministicNoise(1, 1, 150))

	res := NewAnalyzer(WithMinSamples(200)).Align(x, x, 5)
	if res.Success || res.Err != ErrTooShort.Error() {
		t.Fatalf("expected too-short failure, got %+v", res)
	}
	if res := NewAnalyzer(WithMinSamples(-5)).Align(x, x, 5); !res.Success {
		t.Fatalf("invalid option must keep default: %s", res.Err)
	}
}

func TestRunCarriesID(t *testing.T) {
	x := mono(testutil.DeterministicNoise(1, 1, 500))
	res := NewAnalyzer().Run(context.Background(), Request{ID: "take-2", Reference: x, Target: x, MaxOffsetSamples: 5})
	if res.ID != "take-2" || !res.Success {
		t.Fatalf("Run() = %+v", res)
	}
}

func TestRecoverIntoConvertsPanic(t *testing.T) {
	res := func() (res Result) {
		res.ID = "boom"
		defer recoverInto(&res)
		panic(errors.New("index out of range"))
	}()

	if res.Success {
		t.Fatal("expected failure")
	}
	if res.ID != "boom" {
		t.Fatalf("ID = %q, want boom", res.ID)
	}
	if res.Err != "align: internal error: index out of range" {
		t.Fatalf("Err = %q", res.Err)
	}
}

func TestAlignHugeWindow(t *testing.T) {
	x := testutil.DeterministicNoise(11, 1, 1000)
	y := testutil.Delay(x, 5)

	for _, method := range []Method{MethodDirect, MethodFFT, MethodAuto} {
		t.Run(method.String(), func(t *testing.T) {
			for _, maxOffset := range []int{math.MaxInt / 2, math.MaxInt} {
				res := NewAnalyzer(WithMethod(method)).Align(mono(x), mono(y), maxOffset)
				if !res.Success {
					t.Fatalf("max=%d: Align failed: %s", maxOffset, res.Err)
				}
				want := NewAnalyzer(WithMethod(method)).Align(mono(x), mono(y), 999)
				if res.OffsetSamples != 5 || res.OffsetSamples != want.OffsetSamples {
					t.Fatalf("max=%d: OffsetSamples = %d, want 5", maxOffset, res.OffsetSamples)
				}
				testutil.RequireNearlyEqual(t, "Correlation", res.Correlation, want.Correlation, 1e-12)
			}
		})
	}
}

func TestLagBounds(t *testing.T) {
	tests := []struct {
		refLen, tgtLen, max int
		lo, hi              int
	}{
		{1000, 1000, 10, -10, 10},
		{1000, 500, math.MaxInt, -999, 499},
		{100, 300, 200, -99, 200},
		{100, 100, 0, 0, 0},
	}
	for _, tt := range tests {
		lo, hi := lagBounds(tt.refLen, tt.tgtLen, tt.max)
		if lo != tt.lo || hi != tt.hi {
			t.Fatalf("lagBounds(%d, %d, %d) = %d, %d, want %d, %d", tt.refLen, tt.tgtLen, tt.max, lo, hi, tt.lo, tt.hi)
		}
	}
}

func TestAlignRejectsNonFinite(t *testing.T) {
	x := testutil.DeterministicNoise(2, 1, 1000)
	for _, bad := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		y := append([]float64(nil), x...)
		y[300] = bad

		for _, res := range []Result{Align(mono(x), mono(y), 20), Align(mono(y), mono(x), 20)} {
			if res.Success {
				t.Fatalf("sample %v: expected failure", bad)
			}
			if res.Err != ErrNonFinite.Error() {
				t.Fatalf("sample %v: Err = %q, want %q", bad, res.Err, ErrNonFinite)
			}
		}
	}
}
