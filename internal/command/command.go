package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Command is a single program invocation.
type Command struct {
	Name string
	Args []string
	Dir  string   // working directory; empty means the current one
	Env  []string // extra KEY=VALUE pairs appended to the inherited environment
}

// String renders the command for logs and error messages.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result captures what a finished command produced.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes commands. Implementations are swapped for fakes in tests.
type Runner interface {
	// Run executes c and waits for it to finish. A non-zero exit is reported
	// through Result.ExitCode with a nil error; the error is reserved for
	// failures to start or wait on the process.
	Run(ctx context.Context, c Command) (*Result, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Stream, when set, receives a live copy of stdout and stderr.
	Stream io.Writer
	Logger zerolog.Logger
}

// NewExecRunner returns a runner that logs through logger.
func NewExecRunner(logger zerolog.Logger, stream io.Writer) *ExecRunner {
	return &ExecRunner{Stream: stream, Logger: logger}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, c Command) (*Result, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(cmd.Environ(), c.Env...)
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	if r.Stream != nil {
		// os/exec copies stdout and stderr on separate goroutines.
		stream := &lockedWriter{w: r.Stream}
		cmd.Stdout = io.MultiWriter(stream, &stdoutBuf)
		cmd.Stderr = io.MultiWriter(stream, &stderrBuf)
	} else {
		cmd.Stdout = &stdoutBuf
		cmd.Stderr = &stderrBuf
	}

	start := time.Now()
	err := cmd.Run()

	res := &Result{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		err = nil
	default:
		res.ExitCode = -1
	}

	r.Logger.Debug().
		Str("cmd", c.String()).
		Str("dir", c.Dir).
		Int("exit", res.ExitCode).
		Dur("took", time.Since(start)).
		Msg("command finished")

	if err != nil {
		return res, fmt.Errorf("running %s: %w", c.Name, err)
	}
	return res, nil
}

// lockedWriter serializes writes to w.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// ExitError describes a command that ran but exited non-zero.
type ExitError struct {
	Command  Command
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
	if tail := lastLines(e.Stderr, 5); tail != "" {
		msg += "\n" + tail
	}
	return msg
}

// Check runs c and turns a non-zero exit into an *ExitError.
func Check(ctx context.Context, r Runner, c Command) (*Result, error) {
	res, err := r.Run(ctx, c)
	if err != nil {
		return res, err
	}
	if res.ExitCode != 0 {
		return res, &ExitError{Command: c, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return res, nil
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
