package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// languageSeeds cover every construct of the grammar plus recovery cases.
var languageSeeds = []string{
	"",
	"const x = 1",
	"const x: int = 1 + 2 * 3 - -4",
	"fun main() -> int { 0 }",
	"fun f(a: int, b: (int) -> bool = g,) -> unit { var c = if a < 1 { -a } else { b(a=1) }; c = c + 1 }",
	"fun g(x: int) -> bool { !(x == 1) && x != 2 || x >= 3 }",
	"fun h() { { ;; } () (()) h()(1) }",
	"const t: (int, bool,) -> () -> int = f",
	"fun nested() { fun inner() { inner() } /* a /* b */ c */ }",
	"const x = (",
	"fun ( { const",
	"var x = 1",
	"const = = = }}}",
	"fun f() { if true { 1 } else if false { 2 } else { 3 } }",
	"const big = 123456789012345678901234567890",
	"const € = $",
	"/* unterminated",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "testkit", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.lime файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".lime" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) string {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return string(input)
}
