package align

import (
	"runtime"

	"github.com/cwbudde/algo-edit/dsp/buffer"
)

// MinSamples is the default minimum mono length accepted for analysis.
const MinSamples = 100

// defaultFFTWork is the (searched offsets)*min(len) product above which MethodAuto
// switches to the FFT search.
const defaultFFTWork = 1 << 22

type config struct {
	method     Method
	minSamples int
	workers    int
	fftWork    int
	pool       *buffer.Pool
	hook       func(Result)
}

// Option configures an Analyzer.
type Option func(*config)

func defaultConfig() config {
	return config{
		method:     MethodDirect,
		minSamples: MinSamples,
		workers:    runtime.GOMAXPROCS(0),
		fftWork:    defaultFFTWork,
	}
}

// WithMethod selects the correlation search. Unknown methods are ignored.
func WithMethod(m Method) Option {
	return func(cfg *config) {
		if m.valid() {
			cfg.method = m
		}
	}
}

// WithMinSamples sets the minimum mono length for analysis.
func WithMinSamples(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.minSamples = n
		}
	}
}

// WithWorkers bounds the number of targets aligned concurrently by AlignBatch.
func WithWorkers(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.workers = n
		}
	}
}

// WithAutoThreshold sets the work estimate above which MethodAuto uses FFT.
func WithAutoThreshold(work int) Option {
	return func(cfg *config) {
		if work > 0 {
			cfg.fftWork = work
		}
	}
}

// WithPool shares a scratch pool between analyzers.
func WithPool(p *buffer.Pool) Option {
	return func(cfg *config) {
		if p != nil {
			cfg.pool = p
		}
	}
}

// WithResultHook registers fn to be called with every batch result as soon
// as it is available. fn is called from worker goroutines and must be safe
// for concurrent use.
func WithResultHook(fn func(Result)) Option {
	return func(cfg *config) {
		cfg.hook = fn
	}
}

func applyOptions(opts ...Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.pool == nil {
		cfg.pool = buffer.NewPool()
	}
	return cfg
}
