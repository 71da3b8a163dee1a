package align

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-edit/dsp/buffer"
	"github.com/cwbudde/algo-edit/dsp/conv"
	"github.com/cwbudde/algo-edit/dsp/core"
)

// Errors reported through Result.Err.
var (
	ErrTooShort       = errors.New("audio too short for analysis")
	ErrNilBuffer      = errors.New("align: nil audio buffer")
	ErrNegativeOffset = errors.New("align: max offset must be >= 0")
	ErrNoOverlap      = errors.New("align: signals do not overlap within the search window")
	ErrNonFinite      = errors.New("align: audio contains NaN or Inf samples")
	ErrDuplicateID    = errors.New("align: duplicate target id")
)

// Request describes one alignment of a target take against a reference.
type Request struct {
	ID               string
	Reference        *buffer.Audio
	Target           *buffer.Audio
	MaxOffsetSamples int
}

// Result is the outcome of one alignment. It is never modified after it is
// returned.
type Result struct {
	ID string `json:"id,omitempty"`

	// OffsetSamples is positive when the target lags the reference,
	// i.e. target[i+OffsetSamples] lines up with reference[i].
	OffsetSamples int     `json:"offset_samples"`
	OffsetMillis  float64 `json:"offset_ms"`

	// Correlation is the mean product of the overlapping normalized samples
	// at the chosen offset. It can be negative for anti-correlated input.
	Correlation float64 `json:"correlation"`
	Overlap     int     `json:"overlap"`
	Method      Method  `json:"method"`

	Success bool   `json:"success"`
	Err     string `json:"error,omitempty"`
}

func failure(err error) Result {
	return Result{Err: err.Error()}
}

// recoverInto turns a panic in the calling function into a failed Result.
// It must be deferred directly.
func recoverInto(res *Result) {
	if r := recover(); r != nil {
		id := res.ID
		*res = failure(fmt.Errorf("align: internal error: %v", r))
		res.ID = id
	}
}

// Analyzer aligns audio buffers with a fixed configuration.
// It holds no per-call state and is safe for concurrent use.
type Analyzer struct {
	cfg config
}

// NewAnalyzer returns an Analyzer configured by opts.
func NewAnalyzer(opts ...Option) *Analyzer {
	return &Analyzer{cfg: applyOptions(opts...)}
}

var defaultAnalyzer = NewAnalyzer()

// Align finds the offset of target relative to reference within
// ±maxOffsetSamples using the default Analyzer.
func Align(reference, target *buffer.Audio, maxOffsetSamples int) Result {
	return defaultAnalyzer.Align(reference, target, maxOffsetSamples)
}

// Align finds the offset of target relative to reference within
// ±maxOffsetSamples.
func (a *Analyzer) Align(reference, target *buffer.Audio, maxOffsetSamples int) Result {
	return a.AlignContext(context.Background(), reference, target, maxOffsetSamples)
}

// Run executes req.
func (a *Analyzer) Run(ctx context.Context, req Request) Result {
	res := a.AlignContext(ctx, req.Reference, req.Target, req.MaxOffsetSamples)
	res.ID = req.ID
	return res
}

// AlignContext is Align with cooperative cancellation. ctx is checked once
// per candidate offset.
func (a *Analyzer) AlignContext(ctx context.Context, reference, target *buffer.Audio, maxOffsetSamples int) (res Result) {
	defer recoverInto(&res)

	if reference == nil || target == nil {
		return failure(ErrNilBuffer)
	}

	ref := a.prepare(reference)
	defer a.cfg.pool.Put(ref)

	return a.alignTo(ctx, *ref, reference.SampleRate, target, maxOffsetSamples)
}

// alignTo aligns target against an already prepared reference.
func (a *Analyzer) alignTo(ctx context.Context, ref []float64, sampleRate float64, target *buffer.Audio, maxOffset int) Result {
	if maxOffset < 0 {
		return failure(ErrNegativeOffset)
	}
	if len(ref) < a.cfg.minSamples {
		return failure(ErrTooShort)
	}

	tgt := a.prepare(target)
	defer a.cfg.pool.Put(tgt)

	if len(*tgt) < a.cfg.minSamples {
		return failure(ErrTooShort)
	}

	if !finite(ref) || !finite(*tgt) {
		return failure(ErrNonFinite)
	}

	method := a.resolve(len(ref), len(*tgt), maxOffset)

	var (
		sc  scan
		err error
	)
	switch method {
	case MethodFFT:
		sc, err = searchFFT(ctx, ref, *tgt, maxOffset)
	default:
		sc, err = searchDirect(ctx, ref, *tgt, maxOffset)
	}
	if err != nil {
		return failure(err)
	}

	return Result{
		OffsetSamples: sc.offset,
		OffsetMillis:  core.SamplesToMillis(sc.offset, sampleRate),
		Correlation:   sc.score,
		Overlap:       sc.overlap,
		Method:        method,
		Success:       true,
	}
}

// prepare returns the downmixed, peak-normalized mono version of x in a
// pooled scratch slice.
func (a *Analyzer) prepare(x *buffer.Audio) *[]float64 {
	s := a.cfg.pool.Get(0)
	*s = buffer.Downmix(*s, x)
	buffer.PeakNormalize(*s)
	return s
}

func (a *Analyzer) resolve(refLen, tgtLen, maxOffset int) Method {
	if a.cfg.method != MethodAuto {
		return a.cfg.method
	}
	lo, hi := lagBounds(refLen, tgtLen, maxOffset)
	work := float64(hi-lo+1) * float64(min(refLen, tgtLen))
	if work > float64(a.cfg.fftWork) {
		return MethodFFT
	}
	return MethodDirect
}

// scan is the best candidate found by a search.
type scan struct {
	offset  int
	score   float64
	overlap int
}

// better records score at offset if it strictly improves on the current best,
// which keeps the lowest offset on ties.
func (s *scan) better(offset int, score float64, overlap int) {
	if score > s.score {
		s.offset, s.score, s.overlap = offset, score, overlap
	}
}

func newScan() scan {
	return scan{score: math.Inf(-1)}
}

func (s scan) result() (scan, error) {
	if s.overlap == 0 {
		return s, ErrNoOverlap
	}
	return s, nil
}

// lagBounds limits the window -maxOffset..maxOffset to the offsets at which
// the signals overlap. hi < lo when none do.
func lagBounds(refLen, tgtLen, maxOffset int) (lo, hi int) {
	return max(-maxOffset, -(refLen - 1)), min(maxOffset, tgtLen-1)
}

// finite reports whether x holds no NaN or Inf.
func finite(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func searchDirect(ctx context.Context, ref, tgt []float64, maxOffset int) (scan, error) {
	best := newScan()
	lo, hi := lagBounds(len(ref), len(tgt), maxOffset)
	for offset := lo; offset <= hi; offset++ {
		if err := ctx.Err(); err != nil {
			return best, err
		}
		sum, n := conv.LagDot(ref, tgt, offset)
		if n == 0 {
			continue
		}
		best.better(offset, sum/float64(n), n)
	}
	return best.result()
}

// searchFFT produces the same scores as searchDirect from a single FFT
// cross-correlation. Scores agree to rounding error, so exact ties between
// distinct offsets may resolve differently than in the direct search.
func searchFFT(ctx context.Context, ref, tgt []float64, maxOffset int) (scan, error) {
	best := newScan()
	if err := ctx.Err(); err != nil {
		return best, err
	}

	corr, err := conv.CorrelateFFT(ref, tgt)
	if err != nil {
		return best, err
	}

	lo, hi := lagBounds(len(ref), len(tgt), maxOffset)
	for offset := lo; offset <= hi; offset++ {
		if err := ctx.Err(); err != nil {
			return best, err
		}
		n := conv.OverlapAt(len(ref), len(tgt), offset)
		if n == 0 {
			continue
		}
		best.better(offset, corr[conv.IndexFromLag(offset, len(ref))]/float64(n), n)
	}
	return best.result()
}
