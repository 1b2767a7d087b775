package compare

import (
	"testing"
)

func TestEqual_StructuralTier(t *testing.T) {
	tests := []struct {
		name     string
		actual   string
		expected string
		want     bool
	}{
		{
			name:     "identical arrays",
			actual:   "[1,2,3]",
			expected: "[1,2,3]",
			want:     true,
		},
		{
			name:     "arrays equal after sorting",
			actual:   "[2,1]",
			expected: "[1,2]",
			want:     true,
		},
		{
			name:     "array length mismatch falls through and fails",
			actual:   "[2,1,1]",
			expected: "[1,2]",
			want:     false,
		},
		{
			name:     "nested arrays in order",
			actual:   "[[1,2],[3,4]]",
			expected: "[[1,2],[3,4]]",
			want:     true,
		},
		{
			name:     "objects compared structurally",
			actual:   `{"a":1,"b":2}`,
			expected: `{"b":2,"a":1}`,
			want:     true,
		},
		{
			name:     "objects with different values",
			actual:   `{"a":1}`,
			expected: `{"a":2}`,
			want:     false,
		},
		{
			name:     "string arrays equal as sets",
			actual:   `["b","a"]`,
			expected: `["a","b"]`,
			want:     true,
		},
		{
			name:     "json booleans",
			actual:   "true",
			expected: "true",
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.actual, tt.expected); got != tt.want {
				t.Errorf("Equal(%q, %q) = %v, want %v", tt.actual, tt.expected, got, tt.want)
			}
		})
	}
}

func TestEqual_NumericTier(t *testing.T) {
	tests := []struct {
		name     string
		actual   string
		expected string
		want     bool
	}{
		{"trailing zero", "3.0", "3", true},
		{"whitespace around number", " 42\n", "42", true},
		{"different numbers", "3", "4", false},
		{"negative numbers", "-7", "-7.0", true},
		{"scientific notation", "1e2", "100", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.actual, tt.expected); got != tt.want {
				t.Errorf("Equal(%q, %q) = %v, want %v", tt.actual, tt.expected, got, tt.want)
			}
		})
	}
}

func TestEqual_StringFallback(t *testing.T) {
	tests := []struct {
		name     string
		actual   string
		expected string
		want     bool
	}{
		{"case insensitive", "Hello", "hello", true},
		{"surrounding whitespace trimmed", "  hello world \n", "hello world", true},
		{"windows line endings", "hello\r\nworld", "hello\nworld", true},
		{"different text", "hello", "goodbye", false},
		{"empty both sides", "", "", true},
		{"empty vs non-empty", "", "x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.actual, tt.expected); got != tt.want {
				t.Errorf("Equal(%q, %q) = %v, want %v", tt.actual, tt.expected, got, tt.want)
			}
		})
	}
}

func TestEqual_TierOrder(t *testing.T) {
	// A JSON-string answer must be compared structurally, not textually:
	// "\"A\"" and "\"a\"" are different JSON values even though the string
	// fallback would match them case-insensitively.
	if Equal(`"A"`, `"a"`) {
		t.Error(`Equal("\"A\"", "\"a\"") = true, structural tier should decide first`)
	}
}

func BenchmarkEqual_Array(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Equal("[3,1,2,5,4]", "[1,2,3,4,5]")
	}
}

func BenchmarkEqual_String(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Equal("Hello World", "hello world")
	}
}
