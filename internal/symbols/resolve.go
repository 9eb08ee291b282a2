package symbols

import (
	"fmt"

	"lime/internal/ast"
	"lime/internal/diag"
	"lime/internal/lexenv"
	"lime/internal/trace"
)

// Options configures a resolution pass.
type Options struct {
	Reporter diag.Reporter
	Tracer   trace.Tracer
	// ParentSpan attaches trace events to the caller's span.
	ParentSpan uint64
}

// Result summarises one pass.
type Result struct {
	Declared   int
	Resolved   int
	Conflicts  int
	Unresolved int
}

func (r Result) String() string {
	return fmt.Sprintf("declared=%d resolved=%d conflicts=%d unresolved=%d",
		r.Declared, r.Resolved, r.Conflicts, r.Unresolved)
}

// Resolve runs the pass over root with env as the incoming scope of root.
// Top-level declarations of a module are bound directly in env.
func Resolve(root ast.Node, env *lexenv.Env, opts Options) Result {
	r := newResolver(opts)
	r.walk(root, env)
	trace.Point(r.tracer, trace.ScopeUnit, "resolve", r.result.String(), opts.ParentSpan)
	return r.result
}
