package engine

import "errors"

var (
	// ErrToolNotFound reports that the external engine was requested
	// explicitly but no Ghostscript executable could be located.
	ErrToolNotFound = errors.New("ghostscript executable not found")
	// ErrLaunchFailed reports that the external process could not be started.
	ErrLaunchFailed = errors.New("failed to launch external compressor")
	// ErrNonZeroExit reports an external process that ran but failed.
	ErrNonZeroExit = errors.New("external compressor exited with an error")
	// ErrOutputMissing reports a compressor run that left no usable output
	// file (missing or zero bytes).
	ErrOutputMissing = errors.New("compressor produced no output")
	// ErrFallbackFailed reports an error from the in-process compressor.
	ErrFallbackFailed = errors.New("fallback compressor failed")

	// ErrInvalidInput is a setup-level error: the input path does not exist
	// or is not a PDF. It is fatal to the run and raised before any job starts.
	ErrInvalidInput = errors.New("invalid input path")
	// ErrNoPDFs is a setup-level error: the input folder holds no PDF files.
	ErrNoPDFs = errors.New("no pdf files found")
)
