package parser

import (
	"slices"

	"lime/internal/ast"
	"lime/internal/diag"
	"lime/internal/lexer"
	"lime/internal/source"
	"lime/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	// Module is never nil, even when every declaration failed to parse.
	Module  *ast.Module
	Builder *ast.Builder
	Errors  uint
}

// Parser - состояние парсера на один буфер
type Parser struct {
	toks     []token.Token // значимые токены; последний всегда EOF
	pos      int
	b        *ast.Builder
	opts     Options
	lastSpan source.Span // span последнего съеденного токена
	errAt    int         // позиция последней ошибки; -1 если не было
}

// Parse tokenizes the owner's buffer and builds its module. Lexical and
// syntax errors go to opts.Reporter; unparseable slots stay nil.
func Parse(owner ast.Owner, opts Options) Result {
	buf := owner.Buffer()
	toks := lexer.Tokenize(buf, lexer.Options{Reporter: opts.Reporter})
	// Invalid токены уже отрепорчены лексером, парсер их не видит
	toks = slices.DeleteFunc(toks, func(t token.Token) bool {
		return t.Kind == token.Invalid
	})

	p := Parser{
		toks:  toks,
		b:     ast.NewBuilder(owner),
		opts:  opts,
		errAt: -1,
	}
	m := p.parseModule()
	return Result{
		Module:  m,
		Builder: p.b,
		Errors:  p.opts.CurrentErrors,
	}
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekN смотрит на n токенов вперёд, не проходя за EOF.
func (p *Parser) peekN(n int) token.Token {
	return p.toks[min(p.pos+n, len(p.toks)-1)]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// parseModule - основной цикл верхнего уровня: пока не EOF - const или fun.
func (p *Parser) parseModule() *ast.Module {
	m := p.b.Module(source.Span{Start: 0, End: p.b.Buffer().Len()})
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.KwConst:
			p.b.AppendDecl(m, p.parseConstDecl())
		case token.KwFun:
			p.b.AppendDecl(m, p.parseFunDecl())
		default:
			p.unexpectedTopLevel()
		}
	}
	return m
}

// unexpectedTopLevel пропускает мусор между декларациями. Одиночный лишний
// токен перед стартером удаляется, иначе прокручиваем до const/fun/EOF.
func (p *Parser) unexpectedTopLevel() {
	tok := p.peek()
	if isTopLevelStarter(p.peekN(1).Kind) {
		p.unwanted(tok, topLevelFollow...)
		p.advance()
		return
	}
	p.unexpectedInput(tok, topLevelFollow...)
	for !isTopLevelStarter(p.peek().Kind) {
		p.advance()
	}
}

var topLevelFollow = []token.Kind{token.KwConst, token.KwFun, token.EOF}

func isTopLevelStarter(k token.Kind) bool {
	return slices.Contains(topLevelFollow, k)
}

// parseName - ожидает Ident; на ошибке репортит Missing и возвращает nil.
func (p *Parser) parseName() *ast.Identifier {
	if p.at(token.Ident) {
		return p.b.Identifier(p.advance())
	}
	p.missing(token.Ident)
	return nil
}
