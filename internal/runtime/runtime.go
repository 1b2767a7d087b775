// Package runtime resolves a language name to the host toolchain needed to
// execute it: the invocation recipe plus whether the required binaries are
// actually present on the PATH.
package runtime

import (
	"strings"
)

// Language is the normalized identifier for a submission's language.
type Language string

const (
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	Python     Language = "python"
	Java       Language = "java"
	Cpp        Language = "cpp"

	// Markup/framework languages never execute for real; the engine routes
	// them straight to simulation.
	JSX     Language = "jsx"
	TSX     Language = "tsx"
	Vue     Language = "vue"
	Angular Language = "angular"
	Svelte  Language = "svelte"
	HTML    Language = "html"
	CSS     Language = "css"
	SCSS    Language = "scss"

	Unknown Language = ""
)

// Normalize maps a caller-supplied language name to a Language. Anything
// outside the fixed set yields Unknown.
func Normalize(name string) Language {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "javascript", "js":
		return JavaScript
	case "typescript", "ts":
		return TypeScript
	case "python", "python3", "py":
		return Python
	case "java":
		return Java
	case "cpp", "c++":
		return Cpp
	case "jsx", "react":
		return JSX
	case "tsx":
		return TSX
	case "vue":
		return Vue
	case "angular":
		return Angular
	case "svelte":
		return Svelte
	case "html":
		return HTML
	case "css":
		return CSS
	case "scss", "sass":
		return SCSS
	default:
		return Unknown
	}
}

// SimulationOnly reports whether the language has no real interpreter and is
// always handled by the simulation path.
func (l Language) SimulationOnly() bool {
	switch l {
	case JSX, TSX, Vue, Angular, Svelte, HTML, CSS, SCSS:
		return true
	}
	return false
}

// Executable reports whether the language belongs to the real-execution set.
func (l Language) Executable() bool {
	switch l {
	case JavaScript, TypeScript, Python, Java, Cpp:
		return true
	}
	return false
}

// ExecutableLanguages lists the languages that run against a real
// toolchain when one is installed.
func ExecutableLanguages() []Language {
	return []Language{JavaScript, TypeScript, Python, Java, Cpp}
}

// SimulatedLanguages lists the languages that are always analyzed
// statically instead of executed.
func SimulatedLanguages() []Language {
	return []Language{JSX, TSX, Vue, Angular, Svelte, HTML, CSS, SCSS}
}

// Runtime describes how to execute one language on this host. Constructed
// fresh on every execution request and immutable after construction.
type Runtime struct {
	Language  Language
	Available bool

	RunCommand string
	RunArgs    []string

	// Present only for compiled languages (Java, C++).
	CompileCommand string
	CompileArgs    []string

	FileExtension      string
	UnavailableMessage string
}

// Compiled reports whether a compile step must run before the program.
func (r Runtime) Compiled() bool {
	return r.CompileCommand != ""
}

// SourceFile is the name the engine writes the submission to inside the
// workspace.
func (r Runtime) SourceFile() string {
	return "solution" + r.FileExtension
}
