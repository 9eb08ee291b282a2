package parser

import (
	"lime/internal/ast"
	"lime/internal/token"
)

// parseType: IDENT | "(" [ type { "," type } [","] ] ")" "->" type
func (p *Parser) parseType() ast.TypeExpr {
	switch p.peek().Kind {
	case token.Ident:
		return p.b.SymbolType(p.advance())
	case token.LParen:
		return p.parseFunType()
	default:
		p.unexpectedInput(p.peek(), typeStarters...)
		return nil
	}
}

func (p *Parser) parseFunType() ast.TypeExpr {
	open := p.advance() // (
	params := p.b.TypeExprs(open.Span)

	for p.atOr(typeStarters...) {
		p.b.AppendType(params, p.parseType())
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expect(token.RParen)
	p.b.SetRange(params, p.spanFrom(open.Span))

	var ret ast.TypeExpr
	if _, ok := p.expect(token.Arrow); ok {
		ret = p.parseType()
	}
	return p.b.FunType(p.spanFrom(open.Span), params, ret)
}
