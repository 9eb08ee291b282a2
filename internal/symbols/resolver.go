package symbols

import (
	"errors"

	"lime/internal/ast"
	"lime/internal/diag"
	"lime/internal/lexenv"
	"lime/internal/source"
	"lime/internal/trace"
)

const (
	msgDuplicate    = "This symbol already exists in the current scope"
	msgPrevious     = "Previously declared here"
	msgUnresolved   = "Cannot find this symbol in the current scope"
	msgFrozenTarget = "cannot declare in a frozen scope"
)

// Resolver holds the state of one pass.
type resolver struct {
	reporter diag.Reporter
	tracer   trace.Tracer
	parent   uint64
	result   Result
}

func newResolver(opts Options) *resolver {
	t := opts.Tracer
	if t == nil {
		t = trace.Nop
	}
	return &resolver{
		reporter: opts.Reporter,
		tracer:   t,
		parent:   opts.ParentSpan,
	}
}

// declare binds the name of decl in env. Declarations whose name failed to
// parse are skipped.
func (r *resolver) declare(env *lexenv.Env, decl ast.Decl) {
	name := decl.DeclName()
	if name == nil {
		return
	}
	err := env.Insert(name.Text, decl)
	if err == nil {
		r.result.Declared++
		trace.Point(r.tracer, trace.ScopeNode, "declare", name.Text, r.parent)
		return
	}

	var bound *lexenv.AlreadyBoundError
	switch {
	case errors.As(err, &bound):
		r.result.Conflicts++
		r.reportDuplicate(name, bound.Previous)
	case errors.Is(err, lexenv.ErrFrozen):
		diag.ReportError(r.reporter, diag.InternalFailure, name.Range(), msgFrozenTarget).Emit()
	}
}

// resolve binds ref to the nearest declaration of its name.
func (r *resolver) resolve(env *lexenv.Env, ref ast.Ref) {
	decl, ok := r.lookup(env, ref.RefName(), ref.Range())
	if ok {
		ref.Bind(decl)
	}
}

func (r *resolver) lookup(env *lexenv.Env, name string, at source.Section) (ast.Node, bool) {
	if b, ok := env.Lookup(name, lexenv.Recursive); ok {
		if decl, isNode := b.(ast.Node); isNode {
			r.result.Resolved++
			return decl, true
		}
	}
	r.result.Unresolved++
	trace.Point(r.tracer, trace.ScopeNode, "unresolved", name, r.parent)
	diag.ReportError(r.reporter, diag.ScopeUnresolvedSymbol, at, msgUnresolved).Emit()
	return nil, false
}

func (r *resolver) reportDuplicate(name *ast.Identifier, previous lexenv.Binding) {
	b := diag.ReportError(r.reporter, diag.ScopeDuplicateSymbol, name.Range(), msgDuplicate)
	if previous != nil {
		b.WithHint(previousLocation(previous), msgPrevious)
	}
	b.Emit()
}

// previousLocation prefers the earlier declaration's name over its full range.
func previousLocation(b lexenv.Binding) source.Section {
	if d, ok := b.(ast.Decl); ok && d.DeclName() != nil {
		return d.DeclName().Range()
	}
	return b.Range()
}
