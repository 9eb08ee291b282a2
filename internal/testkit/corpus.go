// Package testkit holds helpers shared by package tests: a file-based golden
// corpus runner and structural checks for syntax trees.
package testkit

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus is a table-driven test whose table lives in testdata: every file
// with Extension is a case, and each Output is stored next to it as
// <case>.<ext>.
type Corpus struct {
	// Root is relative to the directory of the test file calling Run.
	Root string
	// Refresh names an environment variable holding a glob; matching cases
	// rewrite their outputs instead of comparing.
	Refresh string
	// Extension без точки, например "lime".
	Extension string
	Outputs   []Output
	// Test returns one string per Output.
	Test func(t *testing.T, name, text string) []string
}

// Output is one expected artefact of a case. A missing file means empty output.
type Output struct {
	Extension string
	// Compare returns "" on match; nil compares byte-for-byte.
	Compare Compare
}

type Compare func(got, want string) string

// Run executes every case of the corpus as a subtest.
func (c Corpus) Run(t *testing.T) {
	t.Helper()
	testDir := callerDir(0)
	root := filepath.Join(testDir, c.Root)

	cases, err := c.cases(root)
	if err != nil {
		t.Fatalf("testkit: walk %q: %v", root, err)
	}
	if len(cases) == 0 {
		t.Fatalf("testkit: no *.%s cases under %q", c.Extension, root)
	}

	refresh := ""
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if refresh != "" && !doublestar.ValidatePattern(refresh) {
			t.Fatalf("testkit: %s=%q is not a valid glob", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		// обновление эталонов не должно выглядеть как зелёный прогон
		t.Logf("testkit: refreshing outputs matching %q", refresh)
		t.Fail()
	}

	for _, path := range cases {
		name, err := filepath.Rel(root, path)
		if err != nil {
			t.Fatalf("testkit: %v", err)
		}
		name = filepath.ToSlash(name)
		t.Run(name, func(t *testing.T) {
			content, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("testkit: read %q: %v", path, err)
			}
			results := c.Test(t, name, string(content))
			if len(results) != len(c.Outputs) {
				t.Fatalf("testkit: Test returned %d outputs, want %d", len(results), len(c.Outputs))
			}

			rewrite := false
			if refresh != "" {
				rewrite, _ = doublestar.Match(refresh, name)
			}
			for i, out := range c.Outputs {
				outPath := path + "." + out.Extension
				if rewrite {
					if err := writeOutput(outPath, results[i]); err != nil {
						t.Errorf("testkit: %v", err)
					}
					continue
				}
				want, err := os.ReadFile(outPath)
				if err != nil && !errors.Is(err, fs.ErrNotExist) {
					t.Errorf("testkit: read %q: %v", outPath, err)
					continue
				}
				cmp := out.Compare
				if cmp == nil {
					cmp = Diff
				}
				if msg := cmp(results[i], string(want)); msg != "" {
					t.Errorf("output mismatch for %s:\n%s", filepath.Base(outPath), msg)
				}
			}
		})
	}
}

func (c Corpus) cases(root string) ([]string, error) {
	var out []string
	suffix := "." + c.Extension
	err := filepath.WalkDir(root, func(path string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !e.IsDir() && strings.HasSuffix(path, suffix) {
			out = append(out, path)
		}
		return nil
	})
	sort.Strings(out)
	return out, err
}

func writeOutput(path, content string) error {
	if content == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}
	return os.WriteFile(path, []byte(content), 0o600)
}

// Diff compares byte-for-byte and describes a mismatch as a unified diff
// from want to got.
func Diff(got, want string) string {
	if got == want {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	if diff == "" {
		return fmt.Sprintf("outputs differ only in line endings:\nwant %q\ngot  %q", want, got)
	}
	return diff
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("testkit: cannot determine the caller's directory")
	}
	return filepath.Dir(file)
}
