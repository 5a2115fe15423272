package engine

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/KartheekReddy100/PDF-Kompressor/internal/fsutil"
)

// ResultFunc receives each Result as soon as its job finishes, for live
// progress reporting.
type ResultFunc func(Result)

// Batch processes jobs strictly sequentially. One failed job never aborts
// the batch; cancelling the context stops before the next job starts.
type Batch struct {
	runner   *Runner
	log      *logrus.Logger
	onResult ResultFunc
}

// NewBatch returns a Batch streaming results through onResult (may be nil).
func NewBatch(runner *Runner, log *logrus.Logger, onResult ResultFunc) *Batch {
	return &Batch{runner: runner, log: log, onResult: onResult}
}

// Run executes all jobs in order and returns their results.
func (b *Batch) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, 0, len(jobs))
	for i, job := range jobs {
		if ctx.Err() != nil {
			b.log.Warnf("Batch cancelled after %d of %d files", i, len(jobs))
			break
		}

		res := b.runner.Run(ctx, job)
		b.logResult(i+1, len(jobs), res)
		if b.onResult != nil {
			b.onResult(res)
		}
		results = append(results, res)
	}
	return results
}

func (b *Batch) logResult(n, total int, res Result) {
	entry := b.log.WithFields(logrus.Fields{
		"file":   res.Job.Source,
		"engine": string(res.Engine),
	})
	if res.Succeeded() {
		entry.Infof("[%d/%d] Compressed %s -> %s (%s -> %s, saved %.1f%%)",
			n, total, res.Job.Source, res.OutputPath,
			fsutil.HumanSize(res.OriginalSize), fsutil.HumanSize(res.CompressedSize),
			res.SavedPercent())
		return
	}
	entry.Errorf("[%d/%d] Failed %s: %v", n, total, res.Job.Source, res.Err)
}

// Summary aggregates a batch into the final per-run report.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	BytesIn   int64
	BytesOut  int64
}

// Summarize folds per-file results into a Summary. Only succeeded jobs count
// toward the byte totals.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Succeeded() {
			s.Succeeded++
			s.BytesIn += r.OriginalSize
			s.BytesOut += r.CompressedSize
		} else {
			s.Failed++
		}
	}
	return s
}

// SavedPercent returns the overall size reduction across succeeded jobs.
func (s Summary) SavedPercent() float64 {
	if s.BytesIn <= 0 {
		return 0
	}
	return float64(s.BytesIn-s.BytesOut) * 100 / float64(s.BytesIn)
}

func (s Summary) String() string {
	if s.Succeeded == 0 {
		return fmt.Sprintf("Done. 0 of %d files compressed, %d failed.", s.Total, s.Failed)
	}
	return fmt.Sprintf("Done. %d of %d files compressed, %d failed. %s -> %s (saved %.1f%%)",
		s.Succeeded, s.Total, s.Failed,
		fsutil.HumanSize(s.BytesIn), fsutil.HumanSize(s.BytesOut), s.SavedPercent())
}
