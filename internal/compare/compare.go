// Package compare decides whether a program's output matches a test case's
// expected output. Comparison is tiered: structural (JSON) first, then
// numeric, then a trimmed case-insensitive string match. The order lets
// structured answers be compared semantically before the looser text
// fallbacks, while still tolerating formatting noise in scalar outputs.
package compare

import (
	"encoding/json"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Equal reports whether actual matches expected. First matching tier wins.
func Equal(actual, expected string) bool {
	if matched, decided := jsonEqual(actual, expected); decided {
		return matched
	}
	if matched, decided := numericEqual(actual, expected); decided {
		return matched
	}
	return strings.EqualFold(normalize(actual), normalize(expected))
}

// jsonEqual compares both sides as parsed JSON. decided is false when the
// tier cannot produce a verdict (either side is not JSON, or the sides are
// arrays of different lengths) and comparison falls through.
func jsonEqual(actual, expected string) (matched, decided bool) {
	var a, e any
	if err := json.Unmarshal([]byte(actual), &a); err != nil {
		return false, false
	}
	if err := json.Unmarshal([]byte(expected), &e); err != nil {
		return false, false
	}

	aArr, aIsArr := a.([]any)
	eArr, eIsArr := e.([]any)
	if aIsArr && eIsArr {
		if len(aArr) != len(eArr) {
			// A length mismatch is not a structural verdict, the looser
			// tiers get a chance (they will almost certainly disagree too).
			return false, false
		}
		if arraysEqual(aArr, eArr) {
			return true, true
		}
		// Retry with both sides sorted: handles set-like answers where the
		// element order is immaterial.
		return arraysEqual(sortedCopy(aArr), sortedCopy(eArr)), true
	}
	if aIsArr != eIsArr {
		return false, false
	}

	return reflect.DeepEqual(a, e), true
}

func arraysEqual(a, b []any) bool {
	for i := range a {
		if stringify(a[i]) != stringify(b[i]) {
			return false
		}
	}
	return true
}

func sortedCopy(arr []any) []any {
	out := make([]any, len(arr))
	copy(out, arr)
	sort.Slice(out, func(i, j int) bool {
		return stringify(out[i]) < stringify(out[j])
	})
	return out
}

// stringify gives elements a canonical form so mixed-type arrays compare
// deterministically.
func stringify(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func numericEqual(actual, expected string) (matched, decided bool) {
	a, errA := strconv.ParseFloat(normalize(actual), 64)
	e, errE := strconv.ParseFloat(normalize(expected), 64)
	if errA != nil || errE != nil {
		return false, false
	}
	return a == e, true
}

func normalize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
}
