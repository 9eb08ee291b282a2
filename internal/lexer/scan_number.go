package lexer

import (
	"lime/internal/diag"
	"lime/internal/token"
)

// Только десятичные целые: [0-9]+. Любое продолжение идентификатора сразу
// после цифр ("1_var", "12ab") поглощается в один Invalid токен с репортом.
// Значение не ограничено машинным словом - разбор в big.Int делает билдер.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	if b := lx.cursor.Peek(); isIdentStartByte(b) || b >= utf8RuneSelf {
		r, sz := lx.peekRune()
		if sz > 0 && (b < utf8RuneSelf || isIdentContinueRune(r)) {
			lx.skipIdentContinue()
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "malformed number literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.Text(sp)}
		}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.IntLit, Span: sp, Text: lx.cursor.Text(sp)}
}
