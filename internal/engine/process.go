package engine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ExecRunner runs the external compressor as a subprocess. A zero Timeout
// means the process may run until it exits or the context is cancelled.
type ExecRunner struct {
	Timeout time.Duration
}

// Run blocks until the process exits. Stderr is captured and folded into the
// returned error; Ghostscript prints its diagnostics there.
func (e *ExecRunner) Run(ctx context.Context, bin string, args []string) error {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrLaunchFailed, err)
	}
	if err := cmd.Wait(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("%w: %s", ErrNonZeroExit, msg)
	}
	return nil
}
