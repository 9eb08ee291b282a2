package fuzztests

import (
	"context"
	"testing"
	"time"

	"lime/internal/analysis"
	"lime/internal/diag"
	"lime/internal/lexer"
	"lime/internal/parser"
	"lime/internal/source"
	"lime/internal/token"
)

// parseTimeout is the time allowed for one input; longer means a recovery loop.
const parseTimeout = 5 * time.Second

type owner struct{ buf *source.Buffer }

func (o owner) Buffer() *source.Buffer { return o.buf }

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		buf := source.NewBuffer("fuzz.lime", clampInput(input))
		bag := diag.NewBag(64)
		toks := lexer.Tokenize(buf, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("token stream does not end with EOF")
		}
		for _, tok := range toks {
			if tok.Span.End < tok.Span.Start || tok.Span.End > buf.Len() {
				t.Fatalf("token %s has span %s outside the buffer", tok.Kind, tok.Span)
			}
		}
	})
}

func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		text := clampInput(input)
		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan parser.Result, 1)
		go func() {
			bag := diag.NewBag(128)
			done <- parser.Parse(owner{buf: source.NewBuffer("fuzz.lime", text)}, parser.Options{
				Reporter:  diag.BagReporter{Bag: bag},
				MaxErrors: 128,
			})
		}()

		select {
		case res := <-done:
			if res.Module == nil {
				t.Fatalf("parser returned no module")
			}
		case <-ctx.Done():
			t.Fatalf("parser hang: no result after %v\ninput (%d bytes): %q",
				parseTimeout, len(text), truncateForLog(text, 200))
		}
	})
}

// FuzzAnalysisNoInternalFailure runs the whole unit pipeline; a recovered
// panic shows up as an internal failure diagnostic.
func FuzzAnalysisNoInternalFailure(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		ctx := analysis.NewContext(analysis.Options{Debug: true})
		u := ctx.AnalyseBuffer("fuzz.lime", clampInput(input), false)
		for _, d := range u.Diagnostics() {
			if d.Code == diag.InternalFailure {
				t.Fatalf("internal failure: %s", d.Message)
			}
		}
		if u.Root() == nil {
			t.Fatalf("no tree without an internal failure")
		}
	})
}

func truncateForLog(input string, maxLen int) string {
	if len(input) <= maxLen {
		return input
	}
	return input[:maxLen] + "..."
}
