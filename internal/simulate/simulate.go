// Package simulate produces best-effort verdicts without executing anything.
// It is used when the host lacks a language runtime, and for markup/framework
// submissions that have no real interpreter at all. Every result it produces
// carries IsSimulated=true; nothing here is a correctness check and callers
// must never present a simulated pass as a real one.
package simulate

import (
	"fmt"
	"strings"

	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/executor"
	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/runtime"
)

// Run produces a simulated ExecutionResult for the given submission.
// Framework and markup languages get structural checks with a feature
// narrative; executable languages get a syntax pre-check followed by the
// heuristic per-test verdicts.
func Run(lang runtime.Language, code string, cases []executor.TestCase) *executor.ExecutionResult {
	switch lang {
	case runtime.JSX, runtime.TSX, runtime.Vue, runtime.Angular, runtime.Svelte:
		return runFramework(lang, code, cases)
	case runtime.HTML, runtime.CSS, runtime.SCSS:
		return runMarkup(lang, code, cases)
	default:
		return runCode(lang, code, cases)
	}
}

// runCode handles executable languages whose runtime is missing: a syntax
// pre-check short-circuits, otherwise each test case gets a heuristic
// verdict.
func runCode(lang runtime.Language, code string, cases []executor.TestCase) *executor.ExecutionResult {
	if msg := checkSyntax(lang, code); msg != "" {
		return &executor.ExecutionResult{
			Success:     false,
			Error:       msg,
			IsSimulated: true,
			TestResults: failAll(cases, msg),
		}
	}

	return &executor.ExecutionResult{
		Success:     true,
		Output:      fmt.Sprintf("Simulated execution: %s code passed structural checks (no runtime available to run it)", lang),
		IsSimulated: true,
		TestResults: heuristicResults(code, cases),
	}
}

// checkSyntax applies the per-family structural checks. It returns a
// descriptive message on violation and "" when the code looks plausible.
func checkSyntax(lang runtime.Language, code string) string {
	switch lang {
	case runtime.Java:
		if !strings.Contains(code, "public class") {
			return "Syntax error: Java code requires a public class declaration"
		}
		if !strings.Contains(code, "public static void main") {
			return "Syntax error: Java code requires a main method (public static void main)"
		}
	case runtime.Python:
		if line, ok := unindentedAfterColon(code); ok {
			return fmt.Sprintf("Syntax error: expected an indented block after line ending in ':' (near %q)", line)
		}
	case runtime.Cpp:
		if !strings.Contains(code, "#include") {
			return "Syntax error: C++ code requires at least one #include directive"
		}
		if !strings.Contains(code, "main") {
			return "Syntax error: C++ code requires a main function"
		}
	case runtime.JavaScript, runtime.TypeScript:
		if !balanced(code, '{', '}') {
			return "Syntax error: unbalanced braces"
		}
	}
	return ""
}

// unindentedAfterColon scans for the classic Python indentation mistake: a
// line ending in ':' immediately followed by a non-empty line with no
// leading whitespace. Returns the offending header line.
func unindentedAfterColon(code string) (string, bool) {
	lines := strings.Split(code, "\n")
	for i := 0; i < len(lines)-1; i++ {
		header := strings.TrimRight(lines[i], " \t\r")
		if !strings.HasSuffix(header, ":") {
			continue
		}
		next := strings.TrimRight(lines[i+1], " \t\r")
		if next == "" {
			continue
		}
		if !strings.HasPrefix(next, " ") && !strings.HasPrefix(next, "\t") {
			return strings.TrimSpace(header), true
		}
	}
	return "", false
}

func balanced(code string, open, close rune) bool {
	depth := 0
	for _, c := range code {
		switch c {
		case open:
			depth++
		case close:
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// heuristicResults marks a case passed when the source textually contains a
// prefix of the expected output, a crude proxy for "the code plausibly
// produces this", nothing more.
func heuristicResults(code string, cases []executor.TestCase) []executor.TestResult {
	results := make([]executor.TestResult, 0, len(cases))
	for _, tc := range cases {
		r := executor.TestResult{
			Input:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
		}
		if probe := expectedPrefix(tc.ExpectedOutput); probe != "" && strings.Contains(code, probe) {
			r.Passed = true
			r.ActualOutput = tc.ExpectedOutput
		} else {
			r.Error = "unable to execute: no runtime available"
		}
		results = append(results, r)
	}
	return results
}

func expectedPrefix(expected string) string {
	s := strings.TrimSpace(expected)
	const n = 5
	if len(s) > n {
		return s[:n]
	}
	return s
}

func failAll(cases []executor.TestCase, msg string) []executor.TestResult {
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
