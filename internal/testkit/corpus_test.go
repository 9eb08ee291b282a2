package testkit_test

import (
	"strings"
	"testing"

	"lime/internal/analysis"
	"lime/internal/ast"
	"lime/internal/diag"
	"lime/internal/diagfmt"
	"lime/internal/testkit"
)

func TestAnalysisCorpus(t *testing.T) {
	testkit.Corpus{
		Root:      "testdata",
		Refresh:   "LIME_REFRESH",
		Extension: "lime",
		Outputs: []testkit.Output{
			{Extension: "tree"},
			{Extension: "diag"},
		},
		Test: func(t *testing.T, name, text string) []string {
			ctx := analysis.NewContext(analysis.Options{})
			u := ctx.AnalyseBuffer(name, text, false)
			if u.Root() == nil {
				t.Fatalf("no tree for %s", name)
			}
			if err := testkit.CheckTree(u.Root()); err != nil {
				t.Errorf("tree invariants:\n%v", err)
			}

			bag := diag.NewBag(0)
			for _, d := range u.Diagnostics() {
				bag.Add(d)
			}
			var diags strings.Builder
			if err := diagfmt.Short(&diags, bag, diagfmt.PathModeBasename, ""); err != nil {
				t.Fatal(err)
			}
			return []string{ast.TreeString(u.Root()) + "\n", diags.String()}
		},
	}.Run(t)
}

func TestDiff(t *testing.T) {
	if msg := testkit.Diff("a\nb\n", "a\nb\n"); msg != "" {
		t.Fatalf("equal strings reported a diff: %s", msg)
	}
	msg := testkit.Diff("a\nc\n", "a\nb\n")
	for _, want := range []string{"--- want", "+++ got", "-b", "+c"} {
		if !strings.Contains(msg, want) {
			t.Errorf("diff is missing %q:\n%s", want, msg)
		}
	}
}
