package runtime

import (
	"context"
	"fmt"
	"os/exec"
	goruntime "runtime"
	"time"
)

// DefaultProbeTimeout bounds a single binary probe. It is deliberately much
// shorter than any execution timeout: the probe only has to answer "does this
// binary resolve and start", not run anything.
const DefaultProbeTimeout = 2 * time.Second

// Prober reports whether a binary is usable on this host. It must never
// block past its context and must never fail with an error; absence is
// reported as false.
type Prober func(ctx context.Context, binary string) bool

// Resolver builds Runtime records by probing the host toolchain. A fresh
// probe runs on every Resolve call; availability is never cached across
// requests, so installing or removing a runtime takes effect without a
// restart.
type Resolver struct {
	probe        Prober
	probeTimeout time.Duration
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithProber replaces the host probe. Tests use this to fake toolchain
// availability without touching the PATH.
func WithProber(p Prober) Option {
	return func(r *Resolver) { r.probe = p }
}

// WithProbeTimeout overrides the per-binary probe budget.
func WithProbeTimeout(d time.Duration) Option {
	return func(r *Resolver) { r.probeTimeout = d }
}

// NewResolver creates a Resolver probing the real host PATH.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		probe:        probeBinary,
		probeTimeout: DefaultProbeTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// probeBinary is the default Prober: a PATH lookup followed by a short
// version spawn, so a broken shim that resolves but cannot start still
// reports unavailable.
func probeBinary(ctx context.Context, binary string) bool {
	if _, err := exec.LookPath(binary); err != nil {
		return false
	}
	cmd := exec.CommandContext(ctx, binary, "--version")
	return cmd.Run() == nil
}

func (r *Resolver) available(ctx context.Context, binary string) bool {
	probeCtx, cancel := context.WithTimeout(ctx, r.probeTimeout)
	defer cancel()
	return r.probe(probeCtx, binary)
}

// Resolve returns the invocation recipe for the named language. Unsupported
// names yield an unavailable Runtime with a "not supported" message; Resolve
// itself never fails.
func (r *Resolver) Resolve(ctx context.Context, name string) Runtime {
	lang := Normalize(name)

	switch lang {
	case JavaScript:
		return r.resolveJavaScript(ctx)
	case TypeScript:
		return r.resolveTypeScript(ctx)
	case Python:
		return r.resolvePython(ctx)
	case Java:
		return r.resolveJava(ctx)
	case Cpp:
		return r.resolveCpp(ctx)
	default:
		return Runtime{
			Language:           lang,
			Available:          false,
			UnavailableMessage: fmt.Sprintf("language %q is not supported for execution", name),
		}
	}
}

func (r *Resolver) resolveJavaScript(ctx context.Context) Runtime {
	rt := Runtime{
		Language:      JavaScript,
		RunCommand:    "node",
		RunArgs:       []string{"solution.js"},
		FileExtension: ".js",
	}
	if r.available(ctx, "node") {
		rt.Available = true
	} else {
		rt.UnavailableMessage = "Node.js is not installed on this host"
	}
	return rt
}

func (r *Resolver) resolveTypeScript(ctx context.Context) Runtime {
	rt := Runtime{
		Language:      TypeScript,
		RunCommand:    "npx",
		RunArgs:       []string{"ts-node", "solution.ts"},
		FileExtension: ".ts",
	}
	// ts-node is fetched by npx, so the probe only needs npx plus a node
	// runtime behind it.
	if r.available(ctx, "npx") && r.available(ctx, "node") {
		rt.Available = true
	} else {
		rt.UnavailableMessage = "Node.js with npx is not installed on this host"
	}
	return rt
}

func (r *Resolver) resolvePython(ctx context.Context) Runtime {
	rt := Runtime{
		Language:      Python,
		FileExtension: ".py",
	}
	// Prefer `python`, fall back to `python3`.
	switch {
	case r.available(ctx, "python"):
		rt.Available = true
		rt.RunCommand = "python"
	case r.available(ctx, "python3"):
		rt.Available = true
		rt.RunCommand = "python3"
	default:
		rt.RunCommand = "python"
		rt.UnavailableMessage = "Python is not installed on this host"
	}
	rt.RunArgs = []string{"solution.py"}
	return rt
}

func (r *Resolver) resolveJava(ctx context.Context) Runtime {
	rt := Runtime{
		Language:       Java,
		CompileCommand: "javac",
		CompileArgs:    []string{"solution.java"},
		RunCommand:     "java",
		RunArgs:        []string{"-cp", ".", "solution"},
		FileExtension:  ".java",
	}
	// The compiler and the VM ship separately in some distributions, so both
	// must resolve.
	if r.available(ctx, "javac") && r.available(ctx, "java") {
		rt.Available = true
	} else {
		rt.UnavailableMessage = "JDK (javac and java) is not installed on this host"
	}
	return rt
}

func (r *Resolver) resolveCpp(ctx context.Context) Runtime {
	bin := "./solution"
	if goruntime.GOOS == "windows" {
		bin = "solution.exe"
	}
	rt := Runtime{
		Language:       Cpp,
		CompileCommand: "g++",
		CompileArgs:    []string{"solution.cpp", "-o", "solution"},
		RunCommand:     bin,
		FileExtension:  ".cpp",
	}
	if r.available(ctx, "g++") {
		rt.Available = true
	} else {
		rt.UnavailableMessage = "g++ is not installed on this host"
	}
	return rt
}
