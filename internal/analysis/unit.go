package analysis

import (
	"fmt"
	"runtime/debug"

	"lime/internal/ast"
	"lime/internal/diag"
	"lime/internal/lexenv"
	"lime/internal/parser"
	"lime/internal/source"
	"lime/internal/symbols"
	"lime/internal/trace"
)

// Unit is one analysed buffer: its tree, its module environment and the
// diagnostics of each phase. A unit is immutable once returned.
type Unit struct {
	ctx        *Context
	buf        *source.Buffer
	root       *ast.Module
	nodes      *ast.Arena[ast.Node]
	env        *lexenv.Env
	parseDiags *diag.Bag
	scopeDiags *diag.Bag
	result     symbols.Result
	parseErrs  uint
}

// Buffer implements ast.Owner.
func (u *Unit) Buffer() *source.Buffer { return u.buf }

// ID returns the buffer id the unit is cached under.
func (u *Unit) ID() string { return u.buf.ID() }

// Root is nil only when analysis failed internally.
func (u *Unit) Root() *ast.Module { return u.root }

// Env is the module scope. For user units it overlays the prelude.
func (u *Unit) Env() *lexenv.Env { return u.env }

func (u *Unit) Context() *Context                   { return u.ctx }
func (u *Unit) Resolution() symbols.Result          { return u.result }
func (u *Unit) ParseDiagnostics() []diag.Diagnostic { return u.parseDiags.Items() }
func (u *Unit) ScopeDiagnostics() []diag.Diagnostic { return u.scopeDiags.Items() }

// Diagnostics returns parse then scope diagnostics as one sorted slice.
func (u *Unit) Diagnostics() []diag.Diagnostic {
	all := diag.NewBag(0)
	all.Merge(u.parseDiags)
	all.Merge(u.scopeDiags)
	all.Sort()
	return all.Items()
}

func (u *Unit) HasErrors() bool {
	return u.parseDiags.HasErrors() || u.scopeDiags.HasErrors()
}

// Node returns the node with the given id.
func (u *Unit) Node(id ast.NodeID) (ast.Node, bool) {
	if u.nodes == nil || id == ast.NoNodeID {
		return nil, false
	}
	return u.nodes.Get(uint32(id))
}

// NodeCount returns how many nodes the unit's tree allocated.
func (u *Unit) NodeCount() int {
	if u.nodes == nil {
		return 0
	}
	return int(u.nodes.Len())
}

// build runs parse and resolution. A panic in either phase is turned into
// a single InternalFailure diagnostic and leaves the unit without a tree.
func (u *Unit) build(parent uint64) {
	c := u.ctx
	span := trace.Begin(c.tracer, trace.ScopeUnit, "unit", parent).With("id", u.buf.ID())
	defer func() {
		if rec := recover(); rec != nil {
			u.root = nil
			u.nodes = nil
			msg := fmt.Sprint(rec)
			if c.opts.Debug {
				msg = fmt.Sprintf("%s\n%s", msg, debug.Stack())
			}
			u.parseDiags.Force(diag.NewError(diag.InternalFailure, nil, msg))
			trace.Fail(c.tracer, trace.ScopeUnit, "panic", fmt.Sprint(rec), span.ID())
			span.End("panic")
			return
		}
		span.End(u.result.String())
	}()

	if c.tracer.Level() >= trace.LevelDebug {
		head := source.Span{End: min(u.buf.Len(), 120)}
		trace.Point(c.tracer, trace.ScopeNode, "source", u.buf.Snippet(head, 80), span.ID())
	}
	parseSpan := trace.Begin(c.tracer, trace.ScopeUnit, "parse", span.ID())
	res := parser.Parse(u, parser.Options{
		MaxErrors: c.opts.MaxErrors,
		Reporter:  diag.BagReporter{Bag: u.parseDiags},
	})
	parseSpan.End(fmt.Sprintf("errors=%d", res.Errors))
	u.root = res.Module
	u.nodes = res.Builder.Nodes()
	u.parseErrs = res.Errors
	c.failpoint("resolve", u)

	u.env = lexenv.NewOverlay(c.preludeEnv)
	u.result = symbols.Resolve(u.root, u.env, symbols.Options{
		Reporter:   diag.NewDedupReporter(diag.BagReporter{Bag: u.scopeDiags}),
		Tracer:     c.tracer,
		ParentSpan: span.ID(),
	})
}
