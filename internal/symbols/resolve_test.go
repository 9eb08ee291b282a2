package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lime/internal/ast"
	"lime/internal/diag"
	"lime/internal/lexenv"
	"lime/internal/parser"
	"lime/internal/source"
)

type testOwner struct{ buf *source.Buffer }

func (o testOwner) Buffer() *source.Buffer { return o.buf }

func testPrelude(t *testing.T) *lexenv.Env {
	t.Helper()
	b := ast.NewBuilder(testOwner{buf: source.NewBuffer("<prelude>", "")})
	env := lexenv.New(nil)
	for _, p := range []struct {
		name string
		size int
	}{{"unit", 0}, {"bool", 1}, {"int", 4}} {
		require.NoError(t, env.Insert(p.name, b.SyntheticTypeDecl(p.name, p.size)))
	}
	env.Freeze()
	return env
}

type resolved struct {
	module  *ast.Module
	env     *lexenv.Env
	prelude *lexenv.Env
	bag     *diag.Bag
	result  Result
}

func resolveSource(t *testing.T, src string) resolved {
	t.Helper()
	parseBag := diag.NewBag(0)
	res := parser.Parse(testOwner{buf: source.NewBuffer("test.lime", src)}, parser.Options{
		Reporter: diag.BagReporter{Bag: parseBag},
	})
	require.Zero(t, parseBag.Len(), "unexpected parse diagnostics")

	prelude := testPrelude(t)
	env := lexenv.NewOverlay(prelude)
	bag := diag.NewBag(0)
	result := Resolve(res.Module, env, Options{Reporter: diag.BagReporter{Bag: bag}})
	return resolved{module: res.Module, env: env, prelude: prelude, bag: bag, result: result}
}

func symbolsNamed(root ast.Node, name string) []ast.Ref {
	var out []ast.Ref
	ast.Inspect(root, func(n ast.Node) bool {
		if ref, ok := n.(ast.Ref); ok && ref.RefName() == name {
			out = append(out, ref)
		}
		return true
	})
	return out
}

func codes(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestNearestEnclosingDeclarationWins(t *testing.T) {
	r := resolveSource(t, "fun f(x: int) {\n  fun g() {\n    const x = 0\n    x\n  }\n}")
	require.Zero(t, r.bag.Len())

	refs := symbolsNamed(r.module, "x")
	require.Len(t, refs, 1)
	decl, ok := refs[0].Decl().(*ast.ConstDecl)
	require.True(t, ok, "x must resolve to the inner const")
	assert.Equal(t, "3:10", decl.Name.Range().Start.String())
}

func TestInitializerDoesNotSeeItsOwnName(t *testing.T) {
	r := resolveSource(t, "const x = x")

	require.Equal(t, []diag.Code{diag.ScopeUnresolvedSymbol}, codes(r.bag))
	d := r.bag.Items()[0]
	assert.Equal(t, "Cannot find this symbol in the current scope", d.Message)
	assert.Equal(t, "1:10", d.Range.Start.String())
	assert.Nil(t, symbolsNamed(r.module, "x")[0].Decl())
}

func TestDuplicateTopLevelFunction(t *testing.T) {
	r := resolveSource(t, "fun main() {} fun main() {}")

	require.Equal(t, []diag.Code{diag.ScopeDuplicateSymbol}, codes(r.bag))
	d := r.bag.Items()[0]
	assert.Equal(t, "This symbol already exists in the current scope", d.Message)
	assert.Equal(t, "1:18", d.Range.Start.String())
	require.Len(t, d.Hints, 1)
	assert.Equal(t, "Previously declared here", d.Hints[0].Message)
	require.NotNil(t, d.Hints[0].Range)
	assert.Equal(t, "1:4", d.Hints[0].Range.Start.String())
}

func TestDirectRecursionResolves(t *testing.T) {
	r := resolveSource(t, "fun main() { main() }")
	require.Zero(t, r.bag.Len())

	refs := symbolsNamed(r.module, "main")
	require.Len(t, refs, 1)
	assert.Same(t, r.module.At(0), refs[0].Decl())
}

func TestParametersShareTheBodyScope(t *testing.T) {
	r := resolveSource(t, "fun main(x: int) { const x = 0 }")
	assert.Equal(t, []diag.Code{diag.ScopeDuplicateSymbol}, codes(r.bag))

	r = resolveSource(t, "fun main(main: int) { const x = 0 }")
	assert.Zero(t, r.bag.Len())
}

func TestPreludeSharesModuleNamespace(t *testing.T) {
	r := resolveSource(t, "const x: int = 0\nconst b: bool = true")
	require.Zero(t, r.bag.Len())

	ty := symbolsNamed(r.module, "int")
	require.Len(t, ty, 1)
	decl, ok := ty[0].Decl().(*ast.TypeDecl)
	require.True(t, ok)
	assert.Equal(t, "<prelude>", decl.Range().Buffer.ID())

	r = resolveSource(t, "const int = 0")
	assert.Equal(t, []diag.Code{diag.ScopeDuplicateSymbol}, codes(r.bag))
	assert.Equal(t, 3, r.prelude.Len(), "prelude must stay untouched")
	assert.Empty(t, r.env.Names())
}

func TestEveryNodeIsStamped(t *testing.T) {
	r := resolveSource(t, "const k = 1\nfun f(a: int, b: (int) -> bool = f) -> int {\n  var c = if a < k { -a } else { b(a) }\n  c = c + 1\n  c\n}\nfun g(x: int) -> bool { true }")
	require.Zero(t, r.bag.Len())

	fn := r.module.At(1).(*ast.FunDecl)
	require.NotNil(t, fn.Scope())
	assert.Same(t, r.env, fn.Scope().Parent())

	ast.Inspect(r.module, func(n ast.Node) bool {
		assert.NotNil(t, n.Env(), "%s has no env", ast.NodeName(n))
		return true
	})
	assert.Same(t, r.env, fn.Env())
	assert.Same(t, fn.Scope(), fn.Body.Env())
	assert.Equal(t, []string{"k", "f", "g"}, r.env.Names())
	assert.Equal(t, []string{"a", "b", "c"}, fn.Scope().Names())
}

func TestAssignmentTargetResolves(t *testing.T) {
	r := resolveSource(t, "fun main() { var y = 0; y = 1; z = 2 }")

	require.Equal(t, []diag.Code{diag.ScopeUnresolvedSymbol}, codes(r.bag))
	assert.Equal(t, "1:31", r.bag.Items()[0].Range.Start.String())

	block := r.module.At(0).(*ast.FunDecl).Body.(*ast.BlockExpr)
	affect := block.Elems.At(1).(*ast.VarAffect)
	assert.Same(t, block.Elems.At(0), affect.Target())
}

func TestWalkContinuesAfterErrors(t *testing.T) {
	r := resolveSource(t, "const a = b\nconst c = d\nconst a = 0")

	assert.Equal(t, []diag.Code{
		diag.ScopeUnresolvedSymbol,
		diag.ScopeUnresolvedSymbol,
		diag.ScopeDuplicateSymbol,
	}, codes(r.bag))
	assert.Equal(t, Result{Declared: 2, Resolved: 0, Conflicts: 1, Unresolved: 2}, r.result)
}

func TestFrozenScopeIsReported(t *testing.T) {
	prelude := testPrelude(t)
	res := parser.Parse(testOwner{buf: source.NewBuffer("t.lime", "const a = 0")}, parser.Options{})
	bag := diag.NewBag(0)
	Resolve(res.Module, prelude, Options{Reporter: diag.BagReporter{Bag: bag}})
	assert.Equal(t, []diag.Code{diag.InternalFailure}, codes(bag))
}
