package apperror

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "RuntimeUnavailable wraps ErrRuntimeUnavailable",
			err:       RuntimeUnavailable("python", "binary not found"),
			target:    ErrRuntimeUnavailable,
			wantMatch: true,
		},
		{
			name:      "CompilationFailed wraps ErrCompilation",
			err:       CompilationFailed("solution.cpp:3: expected ';'"),
			target:    ErrCompilation,
			wantMatch: true,
		},
		{
			name:      "ExecutionFailed wraps ErrExecution",
			err:       ExecutionFailed("segmentation fault"),
			target:    ErrExecution,
			wantMatch: true,
		},
		{
			name:      "Timeout wraps ErrTimeout",
			err:       Timeout(),
			target:    ErrTimeout,
			wantMatch: true,
		},
		{
			name:      "Unsupported wraps ErrUnsupported",
			err:       Unsupported("brainfuck"),
			target:    ErrUnsupported,
			wantMatch: true,
		},
		{
			name:      "Timeout does NOT match ErrExecution",
			err:       Timeout(),
			target:    ErrExecution,
			wantMatch: false,
		},
		{
			name:      "CompilationFailed does NOT match ErrTimeout",
			err:       CompilationFailed("bad code"),
			target:    ErrTimeout,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "CompilationFailed prefixes compiler output",
			err:         CompilationFailed("solution.cpp:3: expected ';'"),
			wantMessage: "Compilation failed: solution.cpp:3: expected ';'",
		},
		{
			name:        "Timeout has the fixed timeout message",
			err:         Timeout(),
			wantMessage: "Execution timeout",
		},
		{
			name:        "Unsupported names the language",
			err:         Unsupported("cobol"),
			wantMessage: `language "cobol" is not supported`,
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("code is required"),
			wantMessage: "code is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	// errors.Is depends on Unwrap returning the sentinel.
	err := ExecutionFailed("exit status 1")
	if unwrapped := err.Unwrap(); unwrapped != ErrExecution {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrExecution)
	}
}

func TestDetailKeepsRawStderr(t *testing.T) {
	// Detail holds the raw process output; Message may add a prefix.
	stderr := "solution.java:1: error: class Main is public"
	err := CompilationFailed(stderr)

	if err.Detail != stderr {
		t.Errorf("Detail = %q, want %q", err.Detail, stderr)
	}
	if !strings.HasPrefix(err.Message, "Compilation failed: ") {
		t.Errorf("Message %q missing compilation prefix", err.Message)
	}
}
