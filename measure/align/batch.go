package align

import (
	"context"

	"github.com/cwbudde/algo-edit/dsp/buffer"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Target is one take to align in a batch. An empty ID is replaced by a
// random UUID.
type Target struct {
	ID    string
	Audio *buffer.Audio
}

// AlignBatch aligns every target against reference using the default Analyzer.
func AlignBatch(ctx context.Context, reference *buffer.Audio, targets []Target, maxOffsetSamples int) map[string]Result {
	return defaultAnalyzer.AlignBatch(ctx, reference, targets, maxOffsetSamples)
}

// AlignBatch aligns every target against reference and returns the results
// keyed by target ID.
//
// Targets run concurrently on at most WithWorkers goroutines. The reference
// is prepared once and shared read-only. Each target gets its own Result;
// a failure or cancellation of one target does not affect the others.
//
// A repeated ID is not aligned: the map keeps the first target with that ID
// and the result hook receives an ErrDuplicateID failure for the repeat.
func (a *Analyzer) AlignBatch(ctx context.Context, reference *buffer.Audio, targets []Target, maxOffsetSamples int) map[string]Result {
	ids := assignIDs(targets)
	results := make([]Result, len(targets))

	var ref *[]float64
	if reference != nil {
		ref = a.prepare(reference)
		defer a.cfg.pool.Put(ref)
	}

	var g errgroup.Group
	g.SetLimit(a.cfg.workers)

	for i := range targets {
		g.Go(func() error {
			res := a.alignBatchTarget(ctx, ref, reference, targets[i].Audio, maxOffsetSamples, ids[i])
			results[i] = res
			if a.cfg.hook != nil {
				a.cfg.hook(res)
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]Result, len(results))
	for _, res := range results {
		if _, seen := out[res.ID]; seen {
			continue
		}
		out[res.ID] = res
	}
	return out
}

func (a *Analyzer) alignBatchTarget(ctx context.Context, ref *[]float64, reference, target *buffer.Audio, maxOffset int, id batchID) (res Result) {
	res.ID = id.id
	defer recoverInto(&res)

	switch {
	case id.duplicate:
		res = failure(ErrDuplicateID)
	case ref == nil || target == nil:
		res = failure(ErrNilBuffer)
	default:
		res = a.alignTo(ctx, *ref, reference.SampleRate, target, maxOffset)
	}
	res.ID = id.id
	return res
}

type batchID struct {
	id        string
	duplicate bool
}

// assignIDs fills in missing IDs and marks every repeat of an ID after its
// first occurrence as a duplicate.
func assignIDs(targets []Target) []batchID {
	ids := make([]batchID, len(targets))
	seen := make(map[string]bool, len(targets))
	for i, t := range targets {
		id := t.ID
		if id == "" {
			id = uuid.NewString()
		}
		ids[i] = batchID{id: id, duplicate: seen[id]}
		seen[id] = true
	}
	return ids
}
