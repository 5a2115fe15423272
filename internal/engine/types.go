package engine

import (
	"fmt"
	"time"
)

// Quality selects how aggressively a document is recompressed.
type Quality string

const (
	QualityExtreme  Quality = "extreme"
	QualityStrong   Quality = "strong"
	QualityBalanced Quality = "balanced"
	QualityHigh     Quality = "high"
)

// ParseQuality validates a user-supplied quality preset name.
func ParseQuality(s string) (Quality, error) {
	switch Quality(s) {
	case QualityExtreme, QualityStrong, QualityBalanced, QualityHigh:
		return Quality(s), nil
	}
	return "", fmt.Errorf("unknown quality preset %q (valid: extreme, strong, balanced, high)", s)
}

// Choice selects which compression engine handles a job. Auto resolves to
// Ghostscript when it can be located, otherwise the in-process fallback.
type Choice string

const (
	EngineAuto        Choice = "auto"
	EngineGhostscript Choice = "ghostscript"
	EngineBasic       Choice = "basic"
)

// ParseChoice validates a user-supplied engine name.
func ParseChoice(s string) (Choice, error) {
	switch Choice(s) {
	case EngineAuto, EngineGhostscript, EngineBasic:
		return Choice(s), nil
	}
	return "", fmt.Errorf("unknown engine %q (valid: auto, ghostscript, basic)", s)
}

// Job is one source-file-to-destination-file compression task. Jobs are
// immutable once created; the destination is uniquified at write time, never
// in the job itself.
type Job struct {
	Source  string
	Dest    string
	Quality Quality
	Engine  Choice
}

// Result describes the outcome of a single job.
type Result struct {
	Job            Job
	Engine         Choice // engine that actually produced the output
	OutputPath     string
	OriginalSize   int64
	CompressedSize int64
	Err            error
	StartedAt      time.Time
	FinishedAt     time.Time
}

// Succeeded reports whether the job produced an output file.
func (r Result) Succeeded() bool {
	return r.Err == nil
}

// SavedPercent returns the size reduction in percent. Negative when the
// output grew.
func (r Result) SavedPercent() float64 {
	if r.OriginalSize <= 0 {
		return 0
	}
	return float64(r.OriginalSize-r.CompressedSize) * 100 / float64(r.OriginalSize)
}
