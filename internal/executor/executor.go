package executor

import (
	"context"
)

// ExecutionRequest represents a request to run user-submitted code against
// optional test cases.
type ExecutionRequest struct {
	Code      string     `json:"code"`
	Language  string     `json:"language"`
	TestCases []TestCase `json:"testCases,omitempty"`
}

// TestCase is one (input, expected output) pair supplied by the caller.
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
	Description    string `json:"description,omitempty"`
}

// TestResult is the verdict for a single test case. Results are returned in
// the same order as the request's test cases so callers can correlate them
// positionally.
type TestResult struct {
	Passed         bool   `json:"passed"`
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
	ActualOutput   string `json:"actualOutput,omitempty"`
	Error          string `json:"error,omitempty"`
}

// ExecutionResult is the engine's output contract.
//
// Success reports whether compilation and the primary run completed;
// individual test-case failures do not flip it. When Success is false the
// root cause is in Error. IsSimulated marks verdicts produced without
// executing anything (missing runtime or markup/framework submissions) and
// must never be presented as a real pass/fail.
type ExecutionResult struct {
	Success           bool         `json:"success"`
	Output            string       `json:"output,omitempty"`
	Error             string       `json:"error,omitempty"`
	ExecutionTimeMs   int64        `json:"executionTimeMs"`
	TestResults       []TestResult `json:"testResults,omitempty"`
	IsSimulated       bool         `json:"isSimulated,omitempty"`
	RuntimeMissing    bool         `json:"runtimeMissing,omitempty"`
	InstallationGuide string       `json:"installationGuide,omitempty"`
}

// Executor is the core interface for running code in an isolated environment.
//
// Implementations encode every normal failure mode (compile error, runtime
// error, timeout, missing runtime) in the returned ExecutionResult; the error
// return is reserved for internal defects.
type Executor interface {
	Execute(ctx context.Context, req ExecutionRequest) (*ExecutionResult, error)
}
