package local

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/apperror"
)

// runSpec describes one child-process invocation. Every spec owns its own
// timeout: a compile timeout does not shorten the run budget and a per-test
// driver timeout only fails that one test case.
type runSpec struct {
	Command string
	Args    []string
	Dir     string
	Stdin   string
	Timeout time.Duration
}

// runnerFunc spawns a process and returns its accumulated stdout. Non-zero
// exit, spawn failure and timeout all surface as *apperror.AppError. Tests
// swap the engine's runnerFunc for a fake.
type runnerFunc func(ctx context.Context, spec runSpec) (string, error)

// runProcess is the real runnerFunc. It resolves exactly once: a select over
// process-exit and context-done, with the kill issued only on the context
// path, so the natural exit and the timeout kill cannot race.
func runProcess(ctx context.Context, spec runSpec) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, spec.Timeout)
	defer cancel()

	cmd := exec.Command(spec.Command, spec.Args...)
	cmd.Dir = spec.Dir
	if spec.Stdin != "" {
		cmd.Stdin = strings.NewReader(spec.Stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return "", apperror.ExecutionFailed("failed to start process: " + err.Error())
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				var exitErr *exec.ExitError
				if errors.As(err, &exitErr) {
					msg = fmt.Sprintf("Process exited with code %d", exitErr.ExitCode())
				} else {
					msg = err.Error()
				}
			}
			return "", apperror.ExecutionFailed(msg)
		}
		return stdout.String(), nil

	case <-runCtx.Done():
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		// Wait must still be reaped after the kill or the child leaks.
		<-done
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return "", apperror.Timeout()
		}
		return "", apperror.ExecutionFailed("execution cancelled: " + runCtx.Err().Error())
	}
}
