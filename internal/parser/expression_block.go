package parser

import (
	"lime/internal/ast"
	"lime/internal/token"
)

// parseBlockExpr: "{" { elem [";"] } "}". Без '{' репортит Missing и
// возвращает nil.
func (p *Parser) parseBlockExpr() ast.Expr {
	if !p.at(token.LBrace) {
		p.missing(token.LBrace)
		return nil
	}
	open := p.advance()
	bb := p.b.StartBlock(open.Span)

loop:
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.RBrace || tok.Kind == token.EOF:
			break loop
		case tok.Kind == token.Semicolon:
			p.advance()
			bb.Terminator(tok.Span)
		case isBlockElemStart(tok.Kind):
			bb.Add(p.parseBlockElem())
		default:
			p.cannotProcess(tok)
			p.resyncBlock()
		}
	}

	closeSpan := p.peek().Span
	p.expect(token.RBrace)
	full := p.spanFrom(open.Span)
	return p.b.BlockExpr(full, bb.Finish(full, closeSpan))
}

func (p *Parser) parseBlockElem() ast.Stmt {
	switch p.peek().Kind {
	case token.KwConst:
		return p.parseConstDecl()
	case token.KwVar:
		return p.parseVarDecl()
	case token.KwFun:
		return p.parseFunDecl()
	case token.Ident:
		if p.peekN(1).Kind == token.Assign {
			return p.parseVarAffect()
		}
	}
	return p.parseExpr()
}

// resyncBlock - прокручиваем до ';', '}' или начала декларации на текущем
// уровне вложенности. Хотя бы один токен всегда съедается.
func (p *Parser) resyncBlock() {
	depth := 0
	p.advance()
	for {
		switch p.peek().Kind {
		case token.EOF:
			return
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth == 0 {
				return
			}
			depth--
		case token.Semicolon, token.KwConst, token.KwVar, token.KwFun:
			if depth == 0 {
				return
			}
		}
		p.advance()
	}
}
