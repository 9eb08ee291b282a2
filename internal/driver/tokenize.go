package driver

import (
	"lime/internal/diag"
	"lime/internal/lexer"
	"lime/internal/source"
	"lime/internal/token"
)

type TokenizeResult struct {
	Buffer *source.Buffer
	Tokens []token.Token
	Bag    *diag.Bag
}

// Tokenize loads path and runs only the lexer. Invalid tokens stay in the
// stream; their diagnostics are in Bag.
func Tokenize(path, charset string, maxDiagnostics int) (*TokenizeResult, error) {
	buf, err := source.Load(path, charset)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	tokens := lexer.Tokenize(buf, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return &TokenizeResult{
		Buffer: buf,
		Tokens: tokens,
		Bag:    bag,
	}, nil
}
