package local

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// JavaScript test cases do not feed stdin; instead a driver script embeds the
// submission, calls its top-level function with the test input and prints the
// JSON-encoded return value. This mirrors how the test inputs are authored:
// "[2,3]" means add(2,3), not a stdin line.

var (
	jsFunctionDecl = regexp.MustCompile(`(?m)^\s*(?:export\s+)?(?:async\s+)?function\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*\(`)
	jsFunctionExpr = regexp.MustCompile(`(?m)^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*=\s*(?:async\s*)?(?:function\b|\([^)]*\)\s*=>|[A-Za-z_$][A-Za-z0-9_$]*\s*=>)`)
)

// extractFunctionName finds the first top-level function definition in the
// submission via a simple signature scan. Empty when nothing matches.
func extractFunctionName(code string) string {
	if m := jsFunctionDecl.FindStringSubmatch(code); m != nil {
		return m[1]
	}
	if m := jsFunctionExpr.FindStringSubmatch(code); m != nil {
		return m[1]
	}
	return ""
}

// buildDriver synthesizes the driver script for one test case. When the
// input parses as JSON the driver re-parses it at run time and spreads
// arrays positionally; otherwise the raw input text is substituted into the
// call expression as written.
func buildDriver(code, fn, input string) string {
	trimmed := strings.TrimSpace(input)

	var call string
	if trimmed != "" && json.Valid([]byte(trimmed)) {
		quoted, _ := json.Marshal(trimmed)
		call = fmt.Sprintf(`(() => {
	const __parsed = JSON.parse(%s);
	return Array.isArray(__parsed) ? %s(...__parsed) : %s(__parsed);
})()`, quoted, fn, fn)
	} else {
		call = fmt.Sprintf("%s(%s)", fn, trimmed)
	}

	return fmt.Sprintf("%s\n\nconst __result = %s;\nconsole.log(JSON.stringify(__result));\n", code, call)
}
