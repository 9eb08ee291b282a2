package parser

import (
	"lime/internal/ast"
	"lime/internal/token"
)

// parseConstDecl: const name [: type] = value
func (p *Parser) parseConstDecl() *ast.ConstDecl {
	start := p.advance() // const
	name := p.parseName()

	var typ ast.TypeExpr
	if p.at(token.Colon) {
		p.advance()
		typ = p.parseType()
	}

	var value ast.Expr
	if _, ok := p.expect(token.Assign); ok {
		value = p.parseExpr()
	}
	return p.b.ConstDecl(p.spanFrom(start.Span), name, typ, value)
}

// parseVarDecl: var name [: type] [= value]
func (p *Parser) parseVarDecl() *ast.VarDecl {
	start := p.advance() // var
	name := p.parseName()

	var typ ast.TypeExpr
	if p.at(token.Colon) {
		p.advance()
		typ = p.parseType()
	}

	var value ast.Expr
	if p.at(token.Assign) {
		p.advance()
		value = p.parseExpr()
	}
	return p.b.VarDecl(p.spanFrom(start.Span), name, typ, value)
}

// parseVarAffect: name = value. Вызывается только когда за Ident идёт '='.
func (p *Parser) parseVarAffect() *ast.VarAffect {
	start := p.peek()
	name := p.parseName()
	p.advance() // =
	value := p.parseExpr()
	return p.b.VarAffect(p.spanFrom(start.Span), name, value)
}

// parseFunDecl: fun name(params) [-> type] { body }
func (p *Parser) parseFunDecl() *ast.FunDecl {
	start := p.advance() // fun
	name := p.parseName()
	params := p.parseParamList()

	var ret ast.TypeExpr
	if p.at(token.Arrow) {
		p.advance()
		ret = p.parseType()
	}

	body := p.parseBlockExpr()
	return p.b.FunDecl(p.spanFrom(start.Span), name, params, ret, body)
}

// parseParamList: "(" [ param { "," param } [","] ] ")"
func (p *Parser) parseParamList() *ast.ParamList {
	if !p.at(token.LParen) {
		p.missing(token.LParen)
		return nil
	}
	open := p.advance()
	list := p.b.ParamList(open.Span)

	for p.at(token.Ident) {
		p.b.AppendParam(list, p.parseParam())
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}

	p.expect(token.RParen)
	p.b.SetRange(list, p.spanFrom(open.Span))
	return list
}

// parseParam: name: type [= default]
func (p *Parser) parseParam() *ast.Param {
	start := p.peek()
	name := p.parseName()

	var typ ast.TypeExpr
	if _, ok := p.expect(token.Colon); ok {
		typ = p.parseType()
	}

	var def ast.Expr
	if p.at(token.Assign) {
		p.advance()
		def = p.parseExpr()
	}
	return p.b.Param(p.spanFrom(start.Span), name, typ, def)
}
