package solver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Result captures a single solver run. Stdout is always populated, even
// when the run is classified as failed.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// ExecError describes a run classified as failed. Callers still receive
// the Result alongside it and decide how to surface the diagnostic.
type ExecError struct {
	ExitCode int
	Stderr   string
}

func (e *ExecError) Error() string {
	s := strings.TrimSpace(e.Stderr)
	if s == "" {
		return fmt.Sprintf("solver exited with code %d", e.ExitCode)
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return fmt.Sprintf("solver exited with code %d: %s", e.ExitCode, s)
}

// Run writes the expanded source to a fresh temp file, invokes the solver
// on it, and captures stdout, stderr, and the exit code. The temp file is
// removed on every exit path; uniqueness comes from os.CreateTemp, so
// concurrent evaluations never collide.
//
// Classification: a run fails when the process did not produce a numeric
// exit status, the exit code is negative, or stderr is non-empty. A
// positive exit code with empty stderr is a success — solvers encode
// satisfiability in positive exit codes, not errors.
//
// Exactly one attempt is made; there are no retries and no internal
// timeout. Cancel ctx to kill a runaway solver.
func Run(ctx context.Context, source string, inv Invocation) (Result, error) {
	start := time.Now()

	f, err := os.CreateTemp("", "blocksolve-*.lp")
	if err != nil {
		return Result{}, fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	defer func() { _ = os.Remove(path) }()

	if _, err := f.WriteString(source); err != nil {
		_ = f.Close()
		return Result{}, fmt.Errorf("write source: %w", err)
	}
	if err := f.Close(); err != nil {
		return Result{}, fmt.Errorf("close source: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, inv.Path, inv.Args(path)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("spawning solver", "path", inv.Path, "args", inv.Args(path))

	waitErr := cmd.Run()

	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	numeric := true
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			// negative when killed by a signal
			res.ExitCode = exitErr.ExitCode()
		} else {
			numeric = false
			res.ExitCode = -1
		}
	}

	if !numeric || res.ExitCode < 0 || len(res.Stderr) > 0 {
		stderrText := res.Stderr
		if !numeric && strings.TrimSpace(stderrText) == "" {
			stderrText = waitErr.Error()
		}
		return res, &ExecError{ExitCode: res.ExitCode, Stderr: stderrText}
	}

	if res.ExitCode != 0 {
		slog.Debug("solver exited non-zero without stderr, treating as success",
			"exit_code", res.ExitCode)
	}

	return res, nil
}
