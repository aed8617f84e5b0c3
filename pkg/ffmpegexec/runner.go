// Package ffmpegexec wraps ffmpeg/ffprobe subprocess invocations with a
// bounded wait, captured diagnostics, and structured exit-code errors.
package ffmpegexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// StderrExcerptLimit caps the diagnostic excerpt carried inside errors. The
// full stream still goes to the log at the call site.
const StderrExcerptLimit = 2048

// CommandError describes a subprocess that exited non-zero or was killed by
// the per-invocation timeout.
type CommandError struct {
	Binary        string
	ExitCode      int
	StderrExcerpt string
	TimedOut      bool
}

func (e *CommandError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("%s timed out", e.Binary)
	}
	return fmt.Sprintf("%s exited with code %d", e.Binary, e.ExitCode)
}

// Result carries the captured output streams of a finished subprocess.
type Result struct {
	Stdout []byte
	Stderr []byte
}

// Runner executes ffmpeg and ffprobe with a per-invocation timeout.
type Runner struct {
	FfmpegPath  string
	FfprobePath string
	Timeout     time.Duration
}

func NewRunner(ffmpegPath, ffprobePath string, timeout time.Duration) *Runner {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Runner{
		FfmpegPath:  ffmpegPath,
		FfprobePath: ffprobePath,
		Timeout:     timeout,
	}
}

// RunFfmpeg runs ffmpeg with the given arguments, blocking until exit or
// timeout. A nil error means exit code zero.
func (r *Runner) RunFfmpeg(ctx context.Context, args ...string) (*Result, error) {
	return r.run(ctx, r.FfmpegPath, args)
}

// RunFfprobe runs ffprobe with the given arguments.
func (r *Runner) RunFfprobe(ctx context.Context, args ...string) (*Result, error) {
	return r.run(ctx, r.FfprobePath, args)
}

func (r *Runner) run(parent context.Context, binary string, args []string) (*Result, error) {
	ctx := parent
	cancel := func() {}
	if r.Timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, r.Timeout)
	}
	defer cancel()

	cmd := exec.CommandContext(ctx, binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return result, nil
	}

	cmdErr := &CommandError{
		Binary:        binary,
		ExitCode:      -1,
		StderrExcerpt: ExcerptStderr(stderr.Bytes()),
	}
	if ctx.Err() == context.DeadlineExceeded && parent.Err() == nil {
		cmdErr.TimedOut = true
		return result, cmdErr
	}
	// The caller gave up; that is not an encoder failure.
	if parent.Err() != nil {
		return result, fmt.Errorf("%s interrupted: %w", binary, parent.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cmdErr.ExitCode = exitErr.ExitCode()
		return result, cmdErr
	}
	// Binary missing or not executable: surface the raw error.
	return result, fmt.Errorf("start %s: %w", binary, err)
}

// ExcerptStderr truncates captured stderr to a size suitable for error
// payloads, keeping the tail where ffmpeg prints the actual failure.
func ExcerptStderr(stderr []byte) string {
	s := strings.TrimSpace(string(stderr))
	if len(s) <= StderrExcerptLimit {
		return s
	}
	return "..." + s[len(s)-StderrExcerptLimit:]
}
