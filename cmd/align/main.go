// Command align finds the sample offset of one or more takes against a
// reference recording.
//
// Usage:
//
//	align -reference ref.wav -target take1.wav [-target take2.flac ...] [flags]
//
// Targets may also be given as trailing arguments. Each target is resampled
// to the reference rate before alignment. A positive offset means the take
// starts late.
//
// Examples:
//
//	align -reference drums.wav -target room.wav
//	align -reference vox.wav -max-offset-ms 500 -method fft take*.wav
//	align -reference vox.wav -write-dir aligned/ -json take1.mp3 take2.flac
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/cwbudde/algo-edit/dsp/core"
	"github.com/cwbudde/algo-edit/internal/audiofile"
	"github.com/cwbudde/algo-edit/measure/align"
)

var logger = slog.Default()

func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// pathList collects a repeatable path flag.
type pathList []string

func (p *pathList) String() string { return strings.Join(*p, ",") }

func (p *pathList) Set(v string) error {
	if v == "" {
		return fmt.Errorf("empty path")
	}
	*p = append(*p, v)
	return nil
}

func main() {
	var targets pathList
	referencePath := flag.String("reference", "", "Reference audio path (.wav, .mp3, .flac)")
	flag.Var(&targets, "target", "Target audio path; repeatable")
	maxOffsetMS := flag.Float64("max-offset-ms", 250, "Search window in milliseconds either side of zero")
	methodName := flag.String("method", "auto", "Correlation method: direct, fft or auto")
	workers := flag.Int("workers", 0, "Parallel alignments; 0 uses GOMAXPROCS")
	jsonOut := flag.Bool("json", false, "Print results as JSON")
	writeDir := flag.String("write-dir", "", "Optional directory for aligned target WAVs")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: align -reference ref.wav -target take.wav [flags] [target ...]\n\n")
		fmt.Fprintf(os.Stderr, "Finds the sample offset of each target against the reference.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	initLogger(*verbose)

	targets = append(targets, flag.Args()...)
	if *referencePath == "" || len(targets) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if *maxOffsetMS < 0 {
		die("max-offset-ms must be non-negative, got %g", *maxOffsetMS)
	}
	method, err := align.ParseMethod(*methodName)
	if err != nil {
		die("%v", err)
	}

	ref, err := audiofile.Load(*referencePath)
	if err != nil {
		die("failed to read reference: %v", err)
	}
	logger.Debug("loaded reference", "path", *referencePath, "rate", ref.SampleRate,
		"channels", ref.Channels, "seconds", ref.DurationSeconds())

	paths := uniquePaths(targets)
	loaded, failed := loadTargets(paths, ref.SampleRate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []align.Option{
		align.WithMethod(method),
		align.WithResultHook(func(r align.Result) {
			logger.Debug("aligned", "id", r.ID, "offset", r.OffsetSamples, "score", r.Correlation, "ok", r.Success)
		}),
	}
	if *workers > 0 {
		opts = append(opts, align.WithWorkers(*workers))
	}
	an := align.NewAnalyzer(opts...)

	maxOffset := core.MillisToSamples(*maxOffsetMS, ref.SampleRate)
	logger.Info("aligning", "targets", len(loaded), "max_offset_samples", maxOffset, "method", method)
	results := an.AlignBatch(ctx, ref, loaded, maxOffset)
	for id, r := range failed {
		results[id] = r
	}

	ordered := make([]align.Result, 0, len(paths))
	for _, p := range paths {
		ordered = append(ordered, results[p])
	}

	if *writeDir != "" {
		writeAligned(*writeDir, loaded, results)
	}

	if *jsonOut {
		err = printJSON(os.Stdout, ordered)
	} else {
		err = printTable(os.Stdout, ordered)
	}
	if err != nil {
		die("failed to write output: %v", err)
	}

	for _, r := range ordered {
		if !r.Success {
			os.Exit(1)
		}
	}
}

// uniquePaths drops repeated targets, keeping the first.
func uniquePaths(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if seen[p] {
			logger.Warn("skipping repeated target", "path", p)
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// loadTargets decodes and resamples each path. Failures are returned as
// results keyed by path.
func loadTargets(paths []string, rate float64) ([]align.Target, map[string]align.Result) {
	targets := make([]align.Target, 0, len(paths))
	failed := make(map[string]align.Result)
	for _, p := range paths {
		a, err := audiofile.Load(p)
		if err == nil {
			a, err = audiofile.Resample(a, rate)
		}
		if err != nil {
			logger.Error("target unusable", "path", p, "err", err)
			failed[p] = align.Result{ID: p, Err: err.Error()}
			continue
		}
		logger.Debug("loaded target", "path", p, "seconds", a.DurationSeconds())
		targets = append(targets, align.Target{ID: p, Audio: a})
	}
	return targets, failed
}

func writeAligned(dir string, targets []align.Target, results map[string]align.Result) {
	ids := make([]string, len(targets))
	for i, t := range targets {
		ids[i] = t.ID
	}
	names := alignedNames(ids)

	for i, t := range targets {
		r := results[t.ID]
		if !r.Success {
			continue
		}
		out := filepath.Join(dir, names[i])
		if err := audiofile.SaveWAV(out, align.Apply(t.Audio, r.OffsetSamples)); err != nil {
			logger.Error("write failed", "path", out, "err", err)
			continue
		}
		logger.Info("wrote aligned take", "path", out, "offset", r.OffsetSamples)
	}
}

// alignedName maps take.flac to take.aligned.wav.
func alignedName(path string) string {
	return stem(path) + ".aligned.wav"
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// alignedNames returns one output file name per path. Paths whose names
// collide, ignoring case, get a numeric suffix: a/take.wav and b/take.wav
// become take.aligned.wav and take-2.aligned.wav.
func alignedNames(paths []string) []string {
	used := make(map[string]bool, len(paths))
	names := make([]string, len(paths))
	for i, p := range paths {
		name := alignedName(p)
		for k := 2; used[strings.ToLower(name)]; k++ {
			name = fmt.Sprintf("%s-%d.aligned.wav", stem(p), k)
		}
		used[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

func printTable(w io.Writer, results []align.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Target\tOffset [samples]\tOffset [ms]\tCorrelation\tOverlap\tMethod\tStatus\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "------\t----------------\t-----------\t-----------\t-------\t------\t------\n"); err != nil {
		return err
	}
	for _, r := range results {
		if !r.Success {
			if _, err := fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t-\terror: %s\n", r.ID, r.Err); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.4f\t%d\t%s\tok\n",
			r.ID,
			r.OffsetSamples,
			r.OffsetMillis,
			r.Correlation,
			r.Overlap,
			r.Method,
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printJSON(w io.Writer, results []align.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
