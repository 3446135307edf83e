// Package extool runs the external utilities the pipeline depends on
// (pdfunite, pandoc, pdftotext) behind a byte-stream contract with a
// per-invocation timeout and a shared concurrency limit, so a stuck or
// storming process cannot exhaust the host.
package extool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Error wraps a failed external invocation.
type Error struct {
	Tool    string
	Timeout bool
	Stderr  string
	Err     error
}

func (e *Error) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s: tempo limite excedido: %v", e.Tool, e.Err)
	}
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %v: %s", e.Tool, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", e.Tool, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Runner executes external commands with bounded concurrency. The semaphore
// is shared across batches: concurrent pipeline runs compete for the same
// process budget.
type Runner struct {
	sem     chan struct{}
	timeout time.Duration
	log     *slog.Logger
}

func NewRunner(maxConcurrent int, timeout time.Duration, log *slog.Logger) *Runner {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Runner{
		sem:     make(chan struct{}, maxConcurrent),
		timeout: timeout,
		log:     log,
	}
}

// Run executes name with args, feeding stdin when non-nil, and returns
// stdout. A nonzero exit status or an elapsed timeout yields an *Error.
func (r *Runner) Run(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error) {
	select {
	case r.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, &Error{Tool: name, Err: ctx.Err()}
	}
	defer func() { <-r.sem }()

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, name, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	if r.log != nil {
		r.log.Debug("external tool finished",
			"tool", name,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
	}
	if err != nil {
		return nil, &Error{
			Tool:    name,
			Timeout: errors.Is(runCtx.Err(), context.DeadlineExceeded),
			Stderr:  tail(stderr.String(), 512),
			Err:     err,
		}
	}
	return stdout.Bytes(), nil
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) > n {
		s = s[len(s)-n:]
	}
	return s
}
