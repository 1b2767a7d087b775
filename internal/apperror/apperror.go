package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrRuntimeUnavailable = errors.New("runtime unavailable")
	ErrCompilation        = errors.New("compilation failed")
	ErrExecution          = errors.New("execution failed")
	ErrTimeout            = errors.New("execution timeout")
	ErrUnsupported        = errors.New("language not supported")
)

// AppError carries a sentinel error for errors.Is dispatch plus a
// human-readable message safe to surface to the caller.
type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Detail  string // Optional: stderr or other raw process output
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func ValidationFailed(message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
	}
}

// RuntimeUnavailable signals that the interpreter/compiler for a language
// is missing from the host. Non-fatal: the engine degrades to simulation.
func RuntimeUnavailable(language, message string) *AppError {
	return &AppError{
		Err:     ErrRuntimeUnavailable,
		Message: fmt.Sprintf("%s runtime unavailable: %s", language, message),
	}
}

// CompilationFailed wraps compiler stderr. The engine pre-fails every test
// case with this message and never attempts the run step.
func CompilationFailed(stderr string) *AppError {
	return &AppError{
		Err:     ErrCompilation,
		Message: "Compilation failed: " + stderr,
		Detail:  stderr,
	}
}

func ExecutionFailed(stderr string) *AppError {
	return &AppError{
		Err:     ErrExecution,
		Message: stderr,
		Detail:  stderr,
	}
}

// Timeout signals that the wall-clock budget elapsed and the process was
// killed. Callers treat it like ExecutionFailed but with a distinct message.
func Timeout() *AppError {
	return &AppError{
		Err:     ErrTimeout,
		Message: "Execution timeout",
	}
}

func Unsupported(language string) *AppError {
	return &AppError{
		Err:     ErrUnsupported,
		Message: fmt.Sprintf("language %q is not supported", language),
	}
}
