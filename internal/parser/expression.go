package parser

import (
	"lime/internal/ast"
	"lime/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений.
// Возвращает nil, если выражение не удалось разобрать (ошибка уже отрепорчена).
func (p *Parser) parseExpr() ast.Expr {
	return p.parseBinaryExpr(precLogicalOr)
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) ast.Expr {
	start := p.peek().Span
	left := p.parseUnaryExpr()
	if left == nil {
		return nil
	}

	for {
		prec := binaryPrec(p.peek().Kind)
		if prec == precNone || prec < minPrec {
			break
		}
		op := p.b.Operator(p.advance())
		right := p.parseBinaryExpr(prec + 1)
		left = p.b.BinOp(p.spanFrom(start), left, op, right)
	}
	return left
}

// parseUnaryExpr: [ "+" | "-" | "!" ] postfix. Операнд не может сам быть унарным.
func (p *Parser) parseUnaryExpr() ast.Expr {
	if !isUnaryOp(p.peek().Kind) {
		return p.parsePostfixExpr()
	}
	opTok := p.advance()
	op := p.b.Operator(opTok)

	var value ast.Expr
	if isUnaryOp(p.peek().Kind) {
		p.unexpectedInput(p.peek(), primaryStarters...)
		// вложенный операнд разбираем только для восстановления
		p.parseUnaryExpr()
	} else {
		value = p.parsePostfixExpr()
	}
	return p.b.UnOp(p.spanFrom(opTok.Span), op, value)
}

// parsePostfixExpr: primary { "(" args ")" }. Вызывать можно только имя,
// скобки или результат другого вызова: `{...}` и `if` на следующей строке
// перед `(` остаются отдельными элементами блока.
func (p *Parser) parsePostfixExpr() ast.Expr {
	start := p.peek().Span
	expr := p.parsePrimaryExpr()
	for expr != nil && p.at(token.LParen) && isCallee(expr) {
		args := p.parseArgList()
		expr = p.b.FunCall(p.spanFrom(start), expr, args)
	}
	return expr
}

func isCallee(e ast.Expr) bool {
	switch e.(type) {
	case *ast.SymbolLiteral, *ast.BracketExpr, *ast.FunCall:
		return true
	default:
		return false
	}
}

// parseArgList: "(" [ arg { "," arg } [","] ] ")"
func (p *Parser) parseArgList() *ast.ArgList {
	open := p.advance() // (
	list := p.b.ArgList(open.Span)

	for isExprStart(p.peek().Kind) {
		p.b.AppendArg(list, p.parseArg())
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expect(token.RParen)
	p.b.SetRange(list, p.spanFrom(open.Span))
	return list
}

// parseArg: [ name "=" ] value
func (p *Parser) parseArg() *ast.Arg {
	start := p.peek()
	var name *ast.Identifier
	if start.Kind == token.Ident && p.peekN(1).Kind == token.Assign {
		name = p.parseName()
		p.advance() // =
	}
	value := p.parseExpr()
	return p.b.Arg(p.spanFrom(start.Span), name, value)
}

func (p *Parser) parsePrimaryExpr() ast.Expr {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit:
		return p.b.IntLiteral(p.advance())
	case token.KwTrue, token.KwFalse:
		return p.b.BooleanLiteral(p.advance())
	case token.Ident:
		return p.b.SymbolLiteral(p.advance())
	case token.LParen:
		return p.parseParenExpr()
	case token.LBrace:
		return p.parseBlockExpr()
	case token.KwIf:
		return p.parseConditionalExpr()
	default:
		p.unexpectedInput(tok, exprStarters...)
		return nil
	}
}

// parseParenExpr: "(" ")" | "(" expr ")"
func (p *Parser) parseParenExpr() ast.Expr {
	open := p.advance() // (
	if p.at(token.RParen) {
		p.advance()
		return p.b.UnitLiteral(p.spanFrom(open.Span))
	}
	inner := p.parseExpr()
	p.expect(token.RParen)
	return p.b.BracketExpr(p.spanFrom(open.Span), inner)
}

// parseConditionalExpr: if cond { then } [ else ( { else } | if ... ) ]
func (p *Parser) parseConditionalExpr() ast.Expr {
	start := p.advance() // if
	cond := p.parseExpr()
	then := p.parseBlockExpr()

	var els ast.Expr
	if p.at(token.KwElse) {
		p.advance()
		if p.at(token.KwIf) {
			els = p.parseConditionalExpr()
		} else {
			els = p.parseBlockExpr()
		}
	}
	return p.b.ConditionalExpr(p.spanFrom(start.Span), cond, then, els)
}
