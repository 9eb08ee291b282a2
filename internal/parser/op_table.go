package parser

import "lime/internal/token"

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет; все бинарные операторы левоассоциативны
const (
	precNone           = 0
	precLogicalOr      = 1 // ||
	precLogicalAnd     = 2 // &&
	precComparison     = 3 // == != < <= > >=
	precAdditive       = 4 // + -
	precMultiplicative = 5 // * /
)

// binaryPrec возвращает приоритет оператора или precNone
func binaryPrec(kind token.Kind) int {
	switch kind {
	case token.OrOr:
		return precLogicalOr
	case token.AndAnd:
		return precLogicalAnd
	case token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash:
		return precMultiplicative
	default:
		return precNone
	}
}

func isUnaryOp(kind token.Kind) bool {
	switch kind {
	case token.Plus, token.Minus, token.Bang:
		return true
	default:
		return false
	}
}

// primaryStarters - токены, с которых начинается операнд унарного оператора.
var primaryStarters = []token.Kind{
	token.IntLit, token.KwTrue, token.KwFalse, token.Ident,
	token.LParen, token.LBrace, token.KwIf,
}

// exprStarters - токены, с которых начинается выражение.
var exprStarters = append(primaryStarters[:len(primaryStarters):len(primaryStarters)],
	token.Plus, token.Minus, token.Bang)

var typeStarters = []token.Kind{token.Ident, token.LParen}

func isExprStart(kind token.Kind) bool {
	switch kind {
	case token.IntLit, token.KwTrue, token.KwFalse, token.Ident,
		token.LParen, token.LBrace, token.KwIf,
		token.Plus, token.Minus, token.Bang:
		return true
	default:
		return false
	}
}

func isBlockElemStart(kind token.Kind) bool {
	switch kind {
	case token.KwConst, token.KwVar, token.KwFun:
		return true
	default:
		return isExprStart(kind)
	}
}
