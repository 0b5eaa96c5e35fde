// Package process runs external engines as child processes.
package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// stderrTailBytes bounds how much engine stderr is kept for error messages.
const stderrTailBytes = 4096

// Runner executes an argument vector, streaming the child's output to the
// given sinks. A nil sink discards that stream.
type Runner interface {
	Run(ctx context.Context, args []string, stdout, stderr io.Writer) error
}

// ExitError reports a child process that ran but exited non-zero.
type ExitError struct {
	Args     []string
	ExitCode int
	Stderr   string // tail of the child's standard error
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", strings.Join(e.Args, " "), e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// ExecRunner runs commands with os/exec. No shell is involved.
type ExecRunner struct {
	logger *zap.Logger
}

// NewExecRunner creates a runner that logs each invocation to logger.
func NewExecRunner(logger *zap.Logger) *ExecRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecRunner{logger: logger}
}

// Run starts args[0] with args[1:] and blocks until it exits.
func (r *ExecRunner) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errors.New("empty command")
	}

	tail := &tailBuffer{max: stderrTailBytes}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = stdout
	if stderr != nil {
		cmd.Stderr = io.MultiWriter(stderr, tail)
	} else {
		cmd.Stderr = tail
	}

	r.logger.Debug("running command", zap.Strings("args", args))

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{
				Args:     args,
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(tail.String()),
			}
		}
		return fmt.Errorf("run %s: %w", args[0], err)
	}
	return nil
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	buf []byte
	max int
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.max; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	return string(t.buf)
}
