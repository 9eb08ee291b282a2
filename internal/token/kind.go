package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents a decimal integer literal.
	IntLit

	KwFun   // fun
	KwConst // const
	KwVar   // var
	KwIf    // if
	KwElse  // else
	KwTrue  // true
	KwFalse // false

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Assign    // =
	EqEq      // ==
	Bang      // !
	BangEq    // !=
	Lt        // <
	LtEq      // <=
	Gt        // >
	GtEq      // >=
	AndAnd    // &&
	OrOr      // ||
	Colon     // :
	Semicolon // ;
	Comma     // ,
	Arrow     // ->
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	IntLit:    "IntLit",
	KwFun:     "KwFun",
	KwConst:   "KwConst",
	KwVar:     "KwVar",
	KwIf:      "KwIf",
	KwElse:    "KwElse",
	KwTrue:    "KwTrue",
	KwFalse:   "KwFalse",
	Plus:      "Plus",
	Minus:     "Minus",
	Star:      "Star",
	Slash:     "Slash",
	Assign:    "Assign",
	EqEq:      "EqEq",
	Bang:      "Bang",
	BangEq:    "BangEq",
	Lt:        "Lt",
	LtEq:      "LtEq",
	Gt:        "Gt",
	GtEq:      "GtEq",
	AndAnd:    "AndAnd",
	OrOr:      "OrOr",
	Colon:     "Colon",
	Semicolon: "Semicolon",
	Comma:     "Comma",
	Arrow:     "Arrow",
	LParen:    "LParen",
	RParen:    "RParen",
	LBrace:    "LBrace",
	RBrace:    "RBrace",
}

var kindLexemes = [...]string{
	KwFun:     "fun",
	KwConst:   "const",
	KwVar:     "var",
	KwIf:      "if",
	KwElse:    "else",
	KwTrue:    "true",
	KwFalse:   "false",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Assign:    "=",
	EqEq:      "==",
	Bang:      "!",
	BangEq:    "!=",
	Lt:        "<",
	LtEq:      "<=",
	Gt:        ">",
	GtEq:      ">=",
	AndAnd:    "&&",
	OrOr:      "||",
	Colon:     ":",
	Semicolon: ";",
	Comma:     ",",
	Arrow:     "->",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Display is the name used in syntax diagnostics: fixed lexemes are quoted,
// token classes are written in angle brackets.
func (k Kind) Display() string {
	switch k {
	case EOF:
		return "<EOF>"
	case Ident:
		return "<IDENTIFIER>"
	case IntLit:
		return "<INT_LITERAL>"
	case Invalid:
		return "<INVALID>"
	}
	if int(k) < len(kindLexemes) && kindLexemes[k] != "" {
		return "'" + kindLexemes[k] + "'"
	}
	return k.String()
}
