package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/KartheekReddy100/PDF-Kompressor/internal/fsutil"
	"github.com/KartheekReddy100/PDF-Kompressor/internal/gs"
)

// Locator finds the external Ghostscript executable. The runner consults it
// once per job so tests can inject a fixed answer instead of touching the
// file system.
type Locator interface {
	Locate() (path string, ok bool)
}

// ProcessRunner executes the external compressor. Implementations must
// return an error wrapping ErrLaunchFailed or ErrNonZeroExit on failure.
type ProcessRunner interface {
	Run(ctx context.Context, bin string, args []string) error
}

// Fallback is the in-process compression path used when the external engine
// is unavailable or fails under auto.
type Fallback interface {
	Compress(ctx context.Context, inputPath, outputPath string, quality Quality) error
}

// Runner executes single compression jobs. All errors stay inside the
// returned Result; Run never aborts a batch.
type Runner struct {
	locator  Locator
	proc     ProcessRunner
	fallback Fallback
	log      *logrus.Logger
}

// NewRunner wires a Runner from its collaborators.
func NewRunner(locator Locator, proc ProcessRunner, fallback Fallback, log *logrus.Logger) *Runner {
	return &Runner{locator: locator, proc: proc, fallback: fallback, log: log}
}

// Run compresses one file. Engine dispatch:
//
//   - basic: in-process compressor, no discovery.
//   - ghostscript: external only; missing tool or a failed run is the job's
//     error, the fallback is never consulted.
//   - auto: external when the tool is found, otherwise fallback; a failed
//     external run gets exactly one fallback attempt.
func (r *Runner) Run(ctx context.Context, job Job) Result {
	res := Result{Job: job, Engine: job.Engine, StartedAt: time.Now()}

	info, err := os.Stat(job.Source)
	if err != nil {
		res.Err = fmt.Errorf("%w: %s", ErrInvalidInput, job.Source)
		res.FinishedAt = time.Now()
		return res
	}
	res.OriginalSize = info.Size()

	switch job.Engine {
	case EngineBasic:
		r.runFallback(ctx, &res)
	case EngineGhostscript, EngineAuto:
		bin, ok := r.locator.Locate()
		if !ok {
			if job.Engine == EngineGhostscript {
				res.Err = ErrToolNotFound
				break
			}
			r.log.WithField("file", job.Source).Debug("Ghostscript not found, using fallback compressor")
			r.runFallback(ctx, &res)
			break
		}
		if err := r.runExternal(ctx, bin, &res); err != nil {
			if job.Engine == EngineGhostscript {
				res.Err = err
				break
			}
			r.log.WithFields(logrus.Fields{
				"file":  job.Source,
				"error": err.Error(),
			}).Warn("Ghostscript failed, retrying with fallback compressor")
			r.runFallback(ctx, &res)
		}
	default:
		res.Err = fmt.Errorf("unknown engine %q", job.Engine)
	}

	res.FinishedAt = time.Now()
	return res
}

// runExternal runs Ghostscript into a temporary file and moves it into place
// on success. The temp file lives in the destination directory so the final
// rename stays on one volume.
func (r *Runner) runExternal(ctx context.Context, bin string, res *Result) error {
	destDir := filepath.Dir(res.Job.Dest)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(destDir, ".gs-*.pdf")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	args := gs.BuildArgs(string(res.Job.Quality), res.Job.Source, tmpPath)
	if err := r.proc.Run(ctx, bin, args); err != nil {
		return err
	}

	st, err := os.Stat(tmpPath)
	if err != nil || st.Size() == 0 {
		return ErrOutputMissing
	}

	out := fsutil.EnsureUniquePath(res.Job.Dest)
	if err := fsutil.MoveFile(tmpPath, out); err != nil {
		return fmt.Errorf("move output into place: %w", err)
	}

	res.Engine = EngineGhostscript
	res.OutputPath = out
	res.CompressedSize = st.Size()
	return nil
}

// runFallback compresses in process, writing the uniquified destination
// directly. The in-process library performs a single save, so no temp hop is
// needed.
func (r *Runner) runFallback(ctx context.Context, res *Result) {
	if err := os.MkdirAll(filepath.Dir(res.Job.Dest), 0755); err != nil {
		res.Err = fmt.Errorf("create output dir: %w", err)
		return
	}

	out := fsutil.EnsureUniquePath(res.Job.Dest)
	if err := r.fallback.Compress(ctx, res.Job.Source, out, res.Job.Quality); err != nil {
		_ = os.Remove(out)
		res.Err = fmt.Errorf("%w: %v", ErrFallbackFailed, err)
		return
	}

	st, err := os.Stat(out)
	if err != nil || st.Size() == 0 {
		res.Err = ErrOutputMissing
		return
	}

	res.Engine = EngineBasic
	res.OutputPath = out
	res.CompressedSize = st.Size()
}
