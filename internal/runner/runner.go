package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes an external command and returns its standard output.
// The subprocess-facing stages of the pipeline depend on this interface so
// tests can substitute fakes without spawning real processes.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExitError reports a command that started but exited non-zero. Stderr is
// captured so the failure reason survives into logs and error chains.
type ExitError struct {
	Cmd      string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s exited with code %d: %s", e.Cmd, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("%s exited with code %d", e.Cmd, e.ExitCode)
}

type execRunner struct{}

// New returns a Runner backed by os/exec.
func New() Runner {
	return &execRunner{}
}

// Run executes the command and blocks until it exits. When ctx is cancelled
// or times out the process is killed and the context error is returned so
// callers can tell a timeout from a crash. A non-zero exit surfaces as
// *ExitError.
func (r *execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("command %s: %w", name, ctx.Err())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &ExitError{
				Cmd:      name,
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(stderr.String()),
			}
		}
		return "", fmt.Errorf("command %s: %w", name, err)
	}

	return stdout.String(), nil
}
