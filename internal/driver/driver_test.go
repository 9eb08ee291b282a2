package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lime/internal/diag"
	"lime/internal/observ"
	"lime/internal/token"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return root
}

func codes(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestListFilesSkipsHiddenAndForeign(t *testing.T) {
	root := writeTree(t, map[string]string{
		"b.lime":          "",
		"a/c.lime":        "",
		"a/notes.txt":     "",
		".cache/x.lime":   "",
		"z/deeper/d.lime": "",
	})
	files, err := ListFiles(root)
	require.NoError(t, err)

	rel := make([]string, len(files))
	for i, f := range files {
		r, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rel[i] = filepath.ToSlash(r)
	}
	assert.Equal(t, []string{"a/c.lime", "b.lime", "z/deeper/d.lime"}, rel)
}

func TestDiagnoseDirInParallel(t *testing.T) {
	root := writeTree(t, map[string]string{
		"ok.lime":       "fun main() -> int { 0 }",
		"dup.lime":      "const a = 1\nconst a = 2",
		"syntax.lime":   "const x = (",
		"nested/u.lime": "fun f() { g() }",
	})
	events := make(chan Event, 64)
	timer := observ.NewTimer()
	d := New(Options{Jobs: 2, Events: events, Timer: timer})

	results, err := d.Diagnose(context.Background(), root)
	require.NoError(t, err)
	close(events)
	require.Len(t, results, 4)

	byName := map[string]FileResult{}
	for _, r := range results {
		byName[filepath.Base(r.Path)] = r
		require.NotNil(t, r.Unit)
		assert.False(t, r.Cached)
	}
	assert.Empty(t, byName["ok.lime"].Bag.Items())
	assert.Equal(t, []diag.Code{diag.ScopeDuplicateSymbol}, codes(byName["dup.lime"].Bag))
	assert.Equal(t, []diag.Code{diag.ScopeUnresolvedSymbol}, codes(byName["u.lime"].Bag))
	assert.True(t, byName["syntax.lime"].HasErrors())

	done := 0
	for ev := range events {
		if ev.Status == StatusDone {
			done++
		}
	}
	assert.Equal(t, 4, done)

	var phases []string
	for _, p := range timer.Report().Phases {
		phases = append(phases, p.Name)
	}
	assert.Equal(t, []string{"load", "analyse"}, phases)
}

func TestDiagnoseMissingFile(t *testing.T) {
	d := New(Options{})
	res := d.DiagnoseFile(context.Background(), filepath.Join(t.TempDir(), "nope.lime"), 0)
	assert.Nil(t, res.Buffer)
	assert.Nil(t, res.Unit)
	assert.Equal(t, []diag.Code{diag.IOLoadFileError}, codes(res.Bag))

	_, err := d.Diagnose(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestDiskCacheRoundTrip(t *testing.T) {
	root := writeTree(t, map[string]string{
		"m.lime": "const int = 1\nfun main() { y }",
	})
	cache, err := OpenDiskCache(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	path := filepath.Join(root, "m.lime")

	first := New(Options{Cache: cache}).DiagnoseFile(context.Background(), path, 0)
	require.False(t, first.Cached)
	require.Equal(t, 2, first.Bag.Len())

	second := New(Options{Cache: cache}).DiagnoseFile(context.Background(), path, 0)
	require.True(t, second.Cached)
	assert.Nil(t, second.Unit)
	assert.Equal(t, first.Bag.Items(), second.Bag.Items())

	dup := second.Bag.Items()[0]
	require.Len(t, dup.Hints, 1)
	assert.Equal(t, "<prelude>", dup.Hints[0].Range.Buffer.ID())

	// другие настройки - другой ключ
	third := New(Options{Cache: cache, MaxErrors: 1}).DiagnoseFile(context.Background(), path, 0)
	assert.False(t, third.Cached)
	debug := New(Options{Cache: cache, Debug: true}).DiagnoseFile(context.Background(), path, 0)
	assert.False(t, debug.Cached)
	assert.NotEqual(t, cacheKey(first.Buffer, Options{}), cacheKey(first.Buffer, Options{Debug: true}))

	require.NoError(t, cache.DropAll())
	fourth := New(Options{Cache: cache}).DiagnoseFile(context.Background(), path, 0)
	assert.False(t, fourth.Cached)
}

func TestTokenize(t *testing.T) {
	root := writeTree(t, map[string]string{"t.lime": "const x = $ 1"})
	res, err := Tokenize(filepath.Join(root, "t.lime"), "", 0)
	require.NoError(t, err)

	kinds := make([]token.Kind, len(res.Tokens))
	for i, tok := range res.Tokens {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []token.Kind{
		token.KwConst, token.Ident, token.Assign, token.Invalid, token.IntLit, token.EOF,
	}, kinds)
	assert.Equal(t, []diag.Code{diag.LexUnknownChar}, codes(res.Bag))
}
