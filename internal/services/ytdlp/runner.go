package ytdlp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"tubescribe/internal/services"
)

// Runner executes the tool binary and returns its captured stdout. Both
// output streams are buffered fully in memory; nothing is truncated.
type Runner interface {
	Run(ctx context.Context, binary string, args []string) (string, error)
}

type commandRunner struct{}

// NewCommandRunner returns the production Runner backed by os/exec.
func NewCommandRunner() Runner {
	return commandRunner{}
}

func (commandRunner) Run(ctx context.Context, binary string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		runErr := &services.ExtractionError{
			Binary:   filepath.Base(binary),
			ExitCode: exitErr.ExitCode(),
			Stderr:   strings.TrimSpace(stderr.String()),
		}
		if ctxErr := context.Cause(ctx); ctxErr != nil {
			// Killed by the run timeout or caller cancellation; keep the
			// cause visible in the chain.
			return "", fmt.Errorf("%w: %w", runErr, ctxErr)
		}
		return "", runErr
	}

	return "", services.Wrap(services.ErrToolUnavailable, filepath.Base(binary), "cannot start", err)
}
