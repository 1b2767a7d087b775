// Package local implements the executor.Executor interface by running
// submissions as OS processes on the host: write the source into an ephemeral
// workspace, optionally compile, run with a hard wall-clock timeout, check
// each test case, and remove the workspace on every exit path. When the
// language's runtime is missing from the host the engine degrades to the
// simulation fallback instead of executing anything.
package local

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/apperror"
	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/compare"
	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/executor"
	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/metrics"
	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/runtime"
	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/simulate"
)

// Resolver produces the invocation recipe for a language. Satisfied by
// *runtime.Resolver; faked in tests.
type Resolver interface {
	Resolve(ctx context.Context, language string) runtime.Runtime
}

// Config holds the engine's timeouts and workspace root.
type Config struct {
	// WorkspaceRoot is the directory execution workspaces are created under.
	WorkspaceRoot string
	// CompileTimeout bounds the compile step.
	CompileTimeout time.Duration
	// RunTimeout bounds the primary program run.
	RunTimeout time.Duration
	// CaseTimeout bounds each per-test-case run (driver script or stdin
	// re-run).
	CaseTimeout time.Duration
}

// DefaultConfig returns the standard budgets: short for compile and per-case
// runs, longer for the primary run.
func DefaultConfig(workspaceRoot string) Config {
	return Config{
		WorkspaceRoot:  workspaceRoot,
		CompileTimeout: 5 * time.Second,
		RunTimeout:     10 * time.Second,
		CaseTimeout:    5 * time.Second,
	}
}

// Engine orchestrates the whole pipeline. Safe for concurrent use: every
// execution owns its private workspace and no state is shared across calls.
type Engine struct {
	config   Config
	resolver Resolver
	logger   *slog.Logger

	// run spawns child processes; tests replace it with a fake.
	run runnerFunc
}

// New creates an Engine executing on the host via OS processes.
func New(cfg Config, resolver Resolver, logger *slog.Logger) *Engine {
	return &Engine{
		config:   cfg,
		resolver: resolver,
		logger:   logger,
		run:      runProcess,
	}
}

// Execute runs a submission and returns a well-formed ExecutionResult for
// every normal failure mode; the error return is reserved for internal
// defects.
func (e *Engine) Execute(ctx context.Context, req executor.ExecutionRequest) (*executor.ExecutionResult, error) {
	start := time.Now()
	lang := runtime.Normalize(req.Language)

	res := e.execute(ctx, lang, req)
	res.ExecutionTimeMs = time.Since(start).Milliseconds()

	e.observe(lang, res)
	return res, nil
}

func (e *Engine) execute(ctx context.Context, lang runtime.Language, req executor.ExecutionRequest) *executor.ExecutionResult {
	// Markup and framework submissions have no interpreter; they never touch
	// the filesystem.
	if lang.SimulationOnly() {
		return simulate.Run(lang, req.Code, req.TestCases)
	}

	rt := e.resolver.Resolve(ctx, req.Language)

	if lang == runtime.Unknown {
		return &executor.ExecutionResult{
			Success:     false,
			Error:       rt.UnavailableMessage,
			TestResults: failCases(req.TestCases, rt.UnavailableMessage),
		}
	}

	if !rt.Available {
		// No workspace is created on this path.
		e.logger.Info("runtime missing, falling back to simulation",
			slog.String("language", string(lang)),
		)
		res := simulate.Run(lang, req.Code, req.TestCases)
		res.RuntimeMissing = true
		res.InstallationGuide = simulate.InstallGuide(lang)
		return res
	}

	return e.executeReal(ctx, lang, rt, req)
}

// executeReal is the real execution path: workspace, optional compile,
// primary run, per-test-case runs, comparison. Workspace cleanup is deferred
// so it runs whether or not any step fails.
func (e *Engine) executeReal(ctx context.Context, lang runtime.Language, rt runtime.Runtime, req executor.ExecutionRequest) *executor.ExecutionResult {
	ws, err := newWorkspace(e.config.WorkspaceRoot)
	if err != nil {
		e.logger.Error("workspace creation failed", slog.String("error", err.Error()))
		return internalFailure(req.TestCases)
	}
	defer ws.cleanup(e.logger)

	if _, err := ws.writeFile(rt.SourceFile(), req.Code); err != nil {
		e.logger.Error("writing source failed", slog.String("error", err.Error()))
		return internalFailure(req.TestCases)
	}

	if rt.Compiled() {
		compileStart := time.Now()
		_, err := e.run(ctx, runSpec{
			Command: rt.CompileCommand,
			Args:    rt.CompileArgs,
			Dir:     ws.dir,
			Timeout: e.config.CompileTimeout,
		})
		metrics.ExecutionDuration.WithLabelValues(string(lang), "compile").
			Observe(float64(time.Since(compileStart).Milliseconds()))
		if err != nil {
			// No run step after a failed compile; every test case carries
			// the compiler's message.
			compErr := apperror.CompilationFailed(errorText(err))
			return &executor.ExecutionResult{
				Success:     false,
				Error:       compErr.Message,
				TestResults: failCases(req.TestCases, compErr.Message),
			}
		}
	}

	runStart := time.Now()
	output, runErr := e.run(ctx, runSpec{
		Command: rt.RunCommand,
		Args:    rt.RunArgs,
		Dir:     ws.dir,
		Timeout: e.config.RunTimeout,
	})
	metrics.ExecutionDuration.WithLabelValues(string(lang), "run").
		Observe(float64(time.Since(runStart).Milliseconds()))

	res := &executor.ExecutionResult{
		Success: runErr == nil,
		Output:  strings.TrimSpace(output),
	}
	if runErr != nil {
		res.Error = errorText(runErr)
	}

	if len(req.TestCases) > 0 {
		res.TestResults = e.runTestCases(ctx, lang, rt, ws, req, runErr)
	}
	return res
}

// runTestCases produces one TestResult per TestCase, strictly in input
// order. A failure inside one case is recorded on that case alone; it never
// aborts the loop or flips the top-level success flag.
func (e *Engine) runTestCases(ctx context.Context, lang runtime.Language, rt runtime.Runtime, ws *workspace, req executor.ExecutionRequest, runErr error) []executor.TestResult {
	if runErr != nil {
		return failCases(req.TestCases, errorText(runErr))
	}

	results := make([]executor.TestResult, 0, len(req.TestCases))
	for i, tc := range req.TestCases {
		tr := executor.TestResult{
			Input:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
		}

		actual, err := e.runCase(ctx, lang, rt, ws, req.Code, i, tc)
		if err != nil {
			tr.Error = errorText(err)
		} else {
			tr.ActualOutput = actual
			tr.Passed = compare.Equal(actual, tc.ExpectedOutput)
		}

		verdict := "failed"
		if tr.Passed {
			verdict = "passed"
		}
		metrics.TestCasesTotal.WithLabelValues(string(lang), verdict).Inc()
		results = append(results, tr)
	}
	return results
}

// runCase obtains the actual output for one test case. JavaScript goes
// through the synthesized driver script; every other language re-runs the
// program with the test input on stdin.
func (e *Engine) runCase(ctx context.Context, lang runtime.Language, rt runtime.Runtime, ws *workspace, code string, idx int, tc executor.TestCase) (string, error) {
	if lang == runtime.JavaScript {
		fn := extractFunctionName(code)
		if fn == "" {
			return "", errors.New("could not find function definition in submitted code")
		}
		driverFile := fmt.Sprintf("driver_%d.js", idx)
		if _, err := ws.writeFile(driverFile, buildDriver(code, fn, tc.Input)); err != nil {
			return "", err
		}
		out, err := e.run(ctx, runSpec{
			Command: rt.RunCommand,
			Args:    []string{driverFile},
			Dir:     ws.dir,
			Timeout: e.config.CaseTimeout,
		})
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(out), nil
	}

	out, err := e.run(ctx, runSpec{
		Command: rt.RunCommand,
		Args:    rt.RunArgs,
		Dir:     ws.dir,
		Stdin:   tc.Input,
		Timeout: e.config.CaseTimeout,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (e *Engine) observe(lang runtime.Language, res *executor.ExecutionResult) {
	status := "success"
	switch {
	case res.IsSimulated:
		status = "simulated"
	case !res.Success:
		status = "error"
	}
	metrics.ExecutionsTotal.WithLabelValues(string(lang), status).Inc()
	metrics.ExecutionDuration.WithLabelValues(string(lang), "total").
		Observe(float64(res.ExecutionTimeMs))
}

// errorText extracts the user-facing message from a pipeline error.
func errorText(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func failCases(cases []executor.TestCase, msg string) []executor.TestResult {
	results := make([]executor.TestResult, 0, len(cases))
	for _, tc := range cases {
		results = append(results, executor.TestResult{
			Passed:         false,
			Input:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
			Error:          msg,
		})
	}
	return results
}

func internalFailure(cases []executor.TestCase) *executor.ExecutionResult {
	const msg = "internal error: failed to prepare execution workspace"
	return &executor.ExecutionResult{
		Success:     false,
		Error:       msg,
		TestResults: failCases(cases, msg),
	}
}
