package parser

import (
	"fmt"
	"strings"

	"lime/internal/diag"
	"lime/internal/source"
	"lime/internal/token"
)

// advance - съедает следующий токен и обновляет lastSpan. EOF не съедается.
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// spanFrom - span от начала start до конца последнего съеденного токена.
func (p *Parser) spanFrom(start source.Span) source.Span {
	if p.lastSpan.End < start.Start {
		return source.Span{Start: start.Start, End: start.Start}
	}
	return start.Cover(p.lastSpan)
}

// expect - ожидаем конкретный токен. Если следующий за текущим токен
// подходит, текущий считается лишним и выбрасывается.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	if p.peekN(1).Kind == k && p.peek().Kind != token.EOF {
		p.unwanted(p.peek(), k)
		p.advance()
		return p.advance(), true
	}
	p.missing(k)
	return token.Token{Kind: token.Invalid, Span: p.peek().Span}, false
}

// Missing X (got Y instead)
func (p *Parser) missing(k token.Kind) {
	got := p.peek()
	p.report(diag.SynMissingToken, got.Span,
		fmt.Sprintf("Missing %s (got %s instead)", k.Display(), got.Kind.Display()))
}

// Unexpected input: X; expecting { A, B }
func (p *Parser) unexpectedInput(tok token.Token, expecting ...token.Kind) {
	p.report(diag.SynUnexpectedInput, tok.Span,
		fmt.Sprintf("Unexpected input: %s; expecting %s", tok.Kind.Display(), kindSet(expecting)))
}

// Unwanted token: X; expecting { A }
func (p *Parser) unwanted(tok token.Token, expecting ...token.Kind) {
	p.report(diag.SynUnwantedToken, tok.Span,
		fmt.Sprintf("Unwanted token: %s; expecting %s", tok.Kind.Display(), kindSet(expecting)))
}

// Cannot process token: X; stop parsing
func (p *Parser) cannotProcess(tok token.Token) {
	p.report(diag.SynStopParsing, tok.Span,
		fmt.Sprintf("Cannot process token: %s; stop parsing", tok.Kind.Display()))
}

func kindSet(kinds []token.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.Display()
	}
	return "{ " + strings.Join(names, ", ") + " }"
}

// report - одна ошибка на позицию: каскад на том же токене подавляется.
func (p *Parser) report(code diag.Code, sp source.Span, msg string) bool {
	if p.errAt == p.pos {
		return false
	}
	p.errAt = p.pos
	limited := p.opts.Enough()
	p.opts.CurrentErrors++
	if limited || p.opts.Reporter == nil {
		return false
	}
	diag.ReportError(p.opts.Reporter, code, p.b.Section(sp), msg).Emit()
	return true
}
