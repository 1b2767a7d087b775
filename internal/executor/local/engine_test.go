package local

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/apperror"
	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/executor"
	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/runtime"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeResolver returns a fixed Runtime without probing the host.
type fakeResolver struct {
	rt runtime.Runtime
}

func (f fakeResolver) Resolve(_ context.Context, _ string) runtime.Runtime {
	return f.rt
}

// fakeRun records every spawned spec and answers from a script keyed by the
// command, letting engine tests run without any host toolchain.
type fakeRun struct {
	specs   []runSpec
	handler func(spec runSpec) (string, error)
}

func (f *fakeRun) run(_ context.Context, spec runSpec) (string, error) {
	f.specs = append(f.specs, spec)
	return f.handler(spec)
}

func newTestEngine(t *testing.T, rt runtime.Runtime, handler func(runSpec) (string, error)) (*Engine, *fakeRun) {
	t.Helper()
	fake := &fakeRun{handler: handler}
	e := New(DefaultConfig(t.TempDir()), fakeResolver{rt: rt}, testLogger())
	e.run = fake.run
	return e, fake
}

func pythonRuntime() runtime.Runtime {
	return runtime.Runtime{
		Language:      runtime.Python,
		Available:     true,
		RunCommand:    "python",
		RunArgs:       []string{"solution.py"},
		FileExtension: ".py",
	}
}

func cppRuntime() runtime.Runtime {
	return runtime.Runtime{
		Language:       runtime.Cpp,
		Available:      true,
		CompileCommand: "g++",
		CompileArgs:    []string{"solution.cpp", "-o", "solution"},
		RunCommand:     "./solution",
		FileExtension:  ".cpp",
	}
}

func nodeRuntime() runtime.Runtime {
	return runtime.Runtime{
		Language:      runtime.JavaScript,
		Available:     true,
		RunCommand:    "node",
		RunArgs:       []string{"solution.js"},
		FileExtension: ".js",
	}
}

func TestExecute_SuccessfulRun(t *testing.T) {
	e, fake := newTestEngine(t, pythonRuntime(), func(spec runSpec) (string, error) {
		return "hello\n", nil
	})

	res, err := e.Execute(context.Background(), executor.ExecutionRequest{
		Code:     "print('hello')",
		Language: "python",
	})

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "hello", res.Output)
	assert.False(t, res.IsSimulated)
	require.Len(t, fake.specs, 1)
	assert.Equal(t, "python", fake.specs[0].Command)
}

func TestExecute_TestCaseOrderPreserved(t *testing.T) {
	// Each re-run echoes its stdin, so every case gets a distinct actual
	// output and the positional correspondence is observable.
	e, _ := newTestEngine(t, pythonRuntime(), func(spec runSpec) (string, error) {
		if spec.Stdin == "" {
			return "primary", nil
		}
		return "echo:" + spec.Stdin, nil
	})

	cases := []executor.TestCase{
		{Input: "a", ExpectedOutput: "echo:a"},
		{Input: "b", ExpectedOutput: "echo:b"},
		{Input: "c", ExpectedOutput: "nope"},
	}
	res, err := e.Execute(context.Background(), executor.ExecutionRequest{
		Code:      "code",
		Language:  "python",
		TestCases: cases,
	})

	require.NoError(t, err)
	require.Len(t, res.TestResults, len(cases))
	for i, tr := range res.TestResults {
		assert.Equal(t, cases[i].Input, tr.Input, "result %d must correspond to case %d", i, i)
	}
	assert.True(t, res.TestResults[0].Passed)
	assert.True(t, res.TestResults[1].Passed)
	assert.False(t, res.TestResults[2].Passed)
	assert.Equal(t, "echo:c", res.TestResults[2].ActualOutput)
}

func TestExecute_CompilationFailureShortCircuits(t *testing.T) {
	e, fake := newTestEngine(t, cppRuntime(), func(spec runSpec) (string, error) {
		if spec.Command == "g++" {
			return "", apperror.ExecutionFailed("solution.cpp:3: error: expected ';'")
		}
		t.Fatalf("run step must not execute after a failed compile, got %q", spec.Command)
		return "", nil
	})

	cases := []executor.TestCase{
		{Input: "1", ExpectedOutput: "1"},
		{Input: "2", ExpectedOutput: "2"},
	}
	res, err := e.Execute(context.Background(), executor.ExecutionRequest{
		Code:      "int main() {}",
		Language:  "cpp",
		TestCases: cases,
	})

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.True(t, strings.HasPrefix(res.Error, "Compilation failed: "), res.Error)
	require.Len(t, fake.specs, 1)
	require.Len(t, res.TestResults, 2)
	for _, tr := range res.TestResults {
		assert.False(t, tr.Passed)
		assert.Equal(t, res.Error, tr.Error)
	}
}

func TestExecute_CompileThenRun(t *testing.T) {
	e, fake := newTestEngine(t, cppRuntime(), func(spec runSpec) (string, error) {
		if spec.Command == "g++" {
			return "", nil
		}
		return "42\n", nil
	})

	res, err := e.Execute(context.Background(), executor.ExecutionRequest{
		Code:     "#include <iostream>\nint main() { std::cout << 42; }",
		Language: "c++",
	})

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "42", res.Output)
	require.Len(t, fake.specs, 2)
	assert.Equal(t, "g++", fake.specs[0].Command)
	assert.Equal(t, "./solution", fake.specs[1].Command)
}

func TestExecute_RunFailureFailsAllCases(t *testing.T) {
	e, _ := newTestEngine(t, pythonRuntime(), func(spec runSpec) (string, error) {
		return "", apperror.ExecutionFailed("NameError: name 'x' is not defined")
	})

	res, err := e.Execute(context.Background(), executor.ExecutionRequest{
		Code:      "print(x)",
		Language:  "python",
		TestCases: []executor.TestCase{{Input: "1", ExpectedOutput: "1"}},
	})

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "NameError")
	require.Len(t, res.TestResults, 1)
	assert.Equal(t, res.Error, res.TestResults[0].Error)
}

func TestExecute_TimeoutHasDistinctMessage(t *testing.T) {
	e, _ := newTestEngine(t, pythonRuntime(), func(spec runSpec) (string, error) {
		return "", apperror.Timeout()
	})

	res, err := e.Execute(context.Background(), executor.ExecutionRequest{
		Code:     "while True: pass",
		Language: "python",
	})

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Execution timeout", res.Error)
}

func TestExecute_PerCaseFailureDoesNotAbortOthers(t *testing.T) {
	call := 0
	e, _ := newTestEngine(t, pythonRuntime(), func(spec runSpec) (string, error) {
		if spec.Stdin == "" {
			return "primary", nil
		}
		call++
		if call == 2 {
			return "", apperror.Timeout()
		}
		return "ok", nil
	})

	cases := []executor.TestCase{
		{Input: "a", ExpectedOutput: "ok"},
		{Input: "b", ExpectedOutput: "ok"},
		{Input: "c", ExpectedOutput: "ok"},
	}
	res, err := e.Execute(context.Background(), executor.ExecutionRequest{
		Code:      "code",
		Language:  "python",
		TestCases: cases,
	})

	require.NoError(t, err)
	// One timed-out case does not flip the top-level success flag.
	assert.True(t, res.Success)
	require.Len(t, res.TestResults, 3)
	assert.True(t, res.TestResults[0].Passed)
	assert.False(t, res.TestResults[1].Passed)
	assert.Equal(t, "Execution timeout", res.TestResults[1].Error)
	assert.True(t, res.TestResults[2].Passed)
}

func TestExecute_JavaScriptDriverPath(t *testing.T) {
	e, fake := newTestEngine(t, nodeRuntime(), func(spec runSpec) (string, error) {
		if len(spec.Args) == 1 && strings.HasPrefix(spec.Args[0], "driver_") {
			return "5\n", nil
		}
		return "", nil
	})

	res, err := e.Execute(context.Background(), executor.ExecutionRequest{
		Code:      "function add(a, b) { return a + b; }",
		Language:  "javascript",
		TestCases: []executor.TestCase{{Input: "[2,3]", ExpectedOutput: "5"}},
	})

	require.NoError(t, err)
	assert.True(t, res.Success)
	require.Len(t, res.TestResults, 1)
	assert.True(t, res.TestResults[0].Passed)
	assert.Equal(t, "5", res.TestResults[0].ActualOutput)

	// Primary run plus one driver run.
	require.Len(t, fake.specs, 2)
	assert.Equal(t, []string{"solution.js"}, fake.specs[0].Args)
	assert.Equal(t, []string{"driver_0.js"}, fake.specs[1].Args)
}

func TestExecute_JavaScriptWithoutFunctionDefinition(t *testing.T) {
	e, _ := newTestEngine(t, nodeRuntime(), func(spec runSpec) (string, error) {
		return "", nil
	})

	res, err := e.Execute(context.Background(), executor.ExecutionRequest{
		Code:      "const x = 42;",
		Language:  "javascript",
		TestCases: []executor.TestCase{{Input: "[1]", ExpectedOutput: "1"}},
	})

	require.NoError(t, err)
	require.Len(t, res.TestResults, 1)
	assert.False(t, res.TestResults[0].Passed)
	assert.Contains(t, res.TestResults[0].Error, "could not find function definition")
}

func TestExecute_RuntimeMissingFallsBackToSimulation(t *testing.T) {
	rt := runtime.Runtime{
		Language:           runtime.Cpp,
		Available:          false,
		UnavailableMessage: "g++ is not installed on this host",
	}
	e, fake := newTestEngine(t, rt, func(spec runSpec) (string, error) {
		t.Fatal("no process may be spawned when the runtime is missing")
		return "", nil
	})

	root := e.config.WorkspaceRoot
	res, err := e.Execute(context.Background(), executor.ExecutionRequest{
		Code:      "#include <iostream>\nint main() { return 0; }",
		Language:  "cpp",
		TestCases: []executor.TestCase{{Input: "", ExpectedOutput: "0"}},
	})

	require.NoError(t, err)
	assert.True(t, res.IsSimulated)
	assert.True(t, res.RuntimeMissing)
	assert.Contains(t, res.InstallationGuide, "g++")
	assert.Empty(t, fake.specs)

	// No workspace may be created on this path.
	entries, readErr := os.ReadDir(root)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestExecute_SimulationOnlyLanguages(t *testing.T) {
	e, fake := newTestEngine(t, runtime.Runtime{}, func(spec runSpec) (string, error) {
		t.Fatal("markup submissions never spawn processes")
		return "", nil
	})

	res, err := e.Execute(context.Background(), executor.ExecutionRequest{
		Code:     "<!DOCTYPE html><html></html>",
		Language: "html",
	})

	require.NoError(t, err)
	assert.True(t, res.IsSimulated)
	assert.True(t, res.Success)
	assert.Empty(t, fake.specs)
}

func TestExecute_UnsupportedLanguage(t *testing.T) {
	rt := runtime.Runtime{
		Available:          false,
		UnavailableMessage: `language "cobol" is not supported for execution`,
	}
	e, _ := newTestEngine(t, rt, func(spec runSpec) (string, error) {
		return "", nil
	})

	res, err := e.Execute(context.Background(), executor.ExecutionRequest{
		Code:     "DISPLAY 'HI'.",
		Language: "cobol",
	})

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "not supported")
}

func TestExecute_WorkspaceCleanedUpOnEveryPath(t *testing.T) {
	tests := []struct {
		name    string
		handler func(runSpec) (string, error)
	}{
		{
			name:    "success",
			handler: func(runSpec) (string, error) { return "ok", nil },
		},
		{
			name: "run failure",
			handler: func(runSpec) (string, error) {
				return "", apperror.ExecutionFailed("crash")
			},
		},
		{
			name: "timeout",
			handler: func(runSpec) (string, error) {
				return "", apperror.Timeout()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t, pythonRuntime(), tt.handler)
			root := e.config.WorkspaceRoot

			_, err := e.Execute(context.Background(), executor.ExecutionRequest{
				Code:     "print(1)",
				Language: "python",
			})
			require.NoError(t, err)

			entries, readErr := os.ReadDir(root)
			require.NoError(t, readErr)
			assert.Empty(t, entries, "workspace must be removed after execution")
		})
	}
}

func TestExecute_ConcurrentWorkspacesAreDistinct(t *testing.T) {
	seen := make(chan string, 8)
	e, _ := newTestEngine(t, pythonRuntime(), func(spec runSpec) (string, error) {
		seen <- spec.Dir
		return "ok", nil
	})

	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			_, _ = e.Execute(context.Background(), executor.ExecutionRequest{
				Code:     "print(1)",
				Language: "python",
			})
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}
	close(seen)

	dirs := make(map[string]bool)
	for dir := range seen {
		assert.False(t, dirs[dir], "workspace %s reused concurrently", dir)
		dirs[dir] = true
	}
	assert.Len(t, dirs, 4)
}

func TestExecute_SourceFileWrittenIntoWorkspace(t *testing.T) {
	var sawSource bool
	e, _ := newTestEngine(t, pythonRuntime(), func(spec runSpec) (string, error) {
		b, err := os.ReadFile(fmt.Sprintf("%s/solution.py", spec.Dir))
		if err == nil && string(b) == "print('hi')" {
			sawSource = true
		}
		return "hi", nil
	})

	_, err := e.Execute(context.Background(), executor.ExecutionRequest{
		Code:     "print('hi')",
		Language: "python",
	})

	require.NoError(t, err)
	assert.True(t, sawSource, "solution.py must exist in the workspace during the run")
}
