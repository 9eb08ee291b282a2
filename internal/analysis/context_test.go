package analysis

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lime/internal/ast"
	"lime/internal/diag"
	"lime/internal/lexenv"
	"lime/internal/trace"
)

func messages(ds []diag.Diagnostic) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Code.ID()+" "+d.Message)
	}
	return out
}

func TestPreludeDeclaresScalars(t *testing.T) {
	c := NewContext(Options{})
	p := c.Prelude()

	require.NotNil(t, p.Root())
	assert.Equal(t, PreludeID, p.ID())
	assert.Same(t, c, p.Context())
	assert.True(t, c.PreludeEnv().Frozen())
	assert.Equal(t, []string{"unit", "bool", "int"}, c.PreludeEnv().Names())
	assert.Empty(t, p.Diagnostics())

	decl, ok := c.PreludeEnv().Lookup("int", lexenv.Local)
	require.True(t, ok)
	assert.Equal(t, "TypeDecl\n|  name: Identifier { text: int }\n|  expr: ScalarType { size: 4 }",
		ast.TreeString(decl.(ast.Node)))
	assert.Same(t, p, decl.(ast.Node).Owner())

	assert.Equal(t, 1, c.Len())
	assert.Same(t, p, c.AnalyseBuffer(PreludeID, "const x = 1", true))
}

func TestAnalyseBufferResolvesAgainstPrelude(t *testing.T) {
	c := NewContext(Options{})
	u := c.AnalyseBuffer("main.lime", "fun main() -> int { const b: bool = true; 1 }", false)

	require.NotNil(t, u.Root())
	assert.Empty(t, u.Diagnostics())
	assert.False(t, u.HasErrors())
	assert.Same(t, c.PreludeEnv(), u.Env().Parent())
	assert.Equal(t, []string{"main"}, u.Env().Names())
	assert.Same(t, u, u.Root().Owner())

	_, ok := u.Env().Lookup("int", lexenv.Local)
	assert.True(t, ok, "module scope shares the prelude namespace")
	assert.Equal(t, []string{"unit", "bool", "int"}, c.PreludeEnv().Names())
}

func TestCacheIsKeyedByID(t *testing.T) {
	c := NewContext(Options{})
	first := c.AnalyseBuffer("a.lime", "const x = 1", false)
	again := c.AnalyseBuffer("a.lime", "const y = 2", false)
	assert.Same(t, first, again)
	assert.Equal(t, "const x = 1", again.Buffer().Content())

	fresh := c.AnalyseBuffer("a.lime", "const y = 2", true)
	assert.NotSame(t, first, fresh)
	assert.Equal(t, []string{"y"}, fresh.Env().Names())

	cached, ok := c.Lookup("a.lime")
	require.True(t, ok)
	assert.Same(t, fresh, cached)

	c.AnalyseBuffer("0.lime", "", false)
	ids := make([]string, 0, c.Len())
	for _, u := range c.Units() {
		ids = append(ids, u.ID())
	}
	assert.Equal(t, []string{"0.lime", "<prelude>", "a.lime"}, ids)

	assert.True(t, c.Forget("a.lime"))
	assert.False(t, c.Forget(PreludeID))
	_, ok = c.Lookup("a.lime")
	assert.False(t, ok)
}

func TestIncompleteSourceStillYieldsTree(t *testing.T) {
	c := NewContext(Options{})
	u := c.AnalyseBuffer("broken.lime", "const x = (", false)

	require.NotNil(t, u.Root())
	require.NotEmpty(t, u.ParseDiagnostics())
	for _, d := range u.ParseDiagnostics() {
		assert.True(t, strings.HasPrefix(d.Code.ID(), "SYN"), d.Code.ID())
	}
	assert.Empty(t, u.ScopeDiagnostics())
	assert.True(t, u.HasErrors())
	assert.Equal(t, []string{"x"}, u.Env().Names())
}

func TestScopeDiagnosticsAreSeparate(t *testing.T) {
	c := NewContext(Options{})
	u := c.AnalyseBuffer("s.lime", "const int = 1\nfun main() { y }", false)

	assert.Empty(t, u.ParseDiagnostics())
	assert.Equal(t, []string{
		"SCO3001 This symbol already exists in the current scope",
		"SCO3002 Cannot find this symbol in the current scope",
	}, messages(u.ScopeDiagnostics()))

	dup := u.ScopeDiagnostics()[0]
	require.Len(t, dup.Hints, 1)
	assert.Equal(t, "Previously declared here", dup.Hints[0].Message)
	assert.Equal(t, PreludeID, dup.Hints[0].Range.Buffer.ID())

	// прелюдия не изменилась
	decl, _ := c.PreludeEnv().Lookup("int", lexenv.Local)
	assert.Equal(t, PreludeID, decl.(ast.Node).Owner().Buffer().ID())
	assert.Equal(t, 1, u.Resolution().Conflicts)
	assert.Equal(t, 1, u.Resolution().Unresolved)
}

func TestNodesAreAddressableByID(t *testing.T) {
	c := NewContext(Options{})
	u := c.AnalyseBuffer("n.lime", "const a = 1 + 2", false)

	assert.Equal(t, 7, u.NodeCount())
	assert.Equal(t, 7, ast.Count(u.Root()))
	ast.Inspect(u.Root(), func(n ast.Node) bool {
		got, ok := u.Node(n.ID())
		require.True(t, ok)
		assert.Same(t, n, got)
		return true
	})
	_, ok := u.Node(ast.NoNodeID)
	assert.False(t, ok)
}

func TestInternalFailureBecomesDiagnostic(t *testing.T) {
	for _, debug := range []bool{false, true} {
		c := NewContext(Options{Debug: debug})
		c.failpoint = func(stage string, u *Unit) {
			if stage == "resolve" {
				panic("boom")
			}
		}
		u := c.AnalyseBuffer("p.lime", "const a = 1", false)

		assert.Nil(t, u.Root())
		require.Len(t, u.ParseDiagnostics(), 1)
		d := u.ParseDiagnostics()[0]
		assert.Equal(t, diag.InternalFailure, d.Code)
		assert.Nil(t, d.Range)
		if debug {
			assert.True(t, strings.HasPrefix(d.Message, "boom\n"))
			assert.Contains(t, d.Message, "goroutine")
		} else {
			assert.Equal(t, "boom", d.Message)
		}
		assert.Zero(t, u.NodeCount())
	}
}

func TestInternalFailureSurvivesFullBag(t *testing.T) {
	c := NewContext(Options{MaxDiagnostics: 1})
	c.failpoint = func(stage string, u *Unit) {
		if stage == "resolve" {
			panic("boom")
		}
	}
	// два неизвестных символа заполняют bag раньше паники
	u := c.AnalyseBuffer("full.lime", "const a = $ $ 1", false)

	diags := u.ParseDiagnostics()
	require.Len(t, diags, 2)
	assert.Equal(t, diag.LexUnknownChar, diags[0].Code)
	assert.Equal(t, diag.InternalFailure, diags[1].Code)
	assert.True(t, u.HasErrors())
}

func TestDebugTraceRecordsSourceHead(t *testing.T) {
	ring := trace.NewRingTracer(256, trace.LevelDebug)
	c := NewContext(Options{Tracer: ring})
	c.AnalyseBuffer("t.lime", "const a = 1\nconst b = a", false)

	var details []string
	for _, ev := range ring.Snapshot() {
		if ev.Name == "source" {
			details = append(details, ev.Detail)
		}
	}
	assert.Equal(t, []string{`const a = 1\nconst b = a`}, details)
}

func TestConcurrentRequestsShareUnit(t *testing.T) {
	c := NewContext(Options{})
	const n = 16
	units := make([]*Unit, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			units[i] = c.AnalyseBuffer("shared.lime", "fun f(x: int) -> int { x }", false)
		}()
	}
	wg.Wait()
	for _, u := range units[1:] {
		assert.Same(t, units[0], u)
	}
	assert.Equal(t, 2, c.Len())
}

func TestAnalyseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.lime")
	require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBFconst x = 1\r\n"), 0o600))

	c := NewContext(Options{Charset: "utf-8"})
	u, err := c.AnalyseFile(path, false)
	require.NoError(t, err)
	assert.Empty(t, u.Diagnostics())
	assert.Equal(t, "const x = 1\n", u.Buffer().Content())
	assert.Equal(t, filepath.ToSlash(filepath.Clean(path)), u.ID())

	_, err = c.AnalyseFile(filepath.Join(dir, "missing.lime"), false)
	require.Error(t, err)
	d := LoadFailure("missing.lime", err)
	assert.Equal(t, diag.IOLoadFileError, d.Code)
	assert.Equal(t, 2, c.Len())
}
