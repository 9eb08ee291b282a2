package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexBadNumber                Code = 1002
	LexUnterminatedBlockComment Code = 1003

	// Синтаксические
	SynInfo            Code = 2000
	SynUnexpectedInput Code = 2001
	SynMissingToken    Code = 2002
	SynUnwantedToken   Code = 2003
	SynStopParsing     Code = 2004

	// Области видимости
	ScopeInfo             Code = 3000
	ScopeDuplicateSymbol  Code = 3001
	ScopeUnresolvedSymbol Code = 3002

	// Ввод-вывод
	IOLoadFileError Code = 4001

	// Внутренние сбои анализа
	InternalFailure Code = 9001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexBadNumber:                "Malformed number literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	SynInfo:                     "Syntax information",
	SynUnexpectedInput:          "Unexpected input",
	SynMissingToken:             "Missing token",
	SynUnwantedToken:            "Unwanted token",
	SynStopParsing:              "Parsing stopped",
	ScopeInfo:                   "Scope information",
	ScopeDuplicateSymbol:        "Duplicate symbol",
	ScopeUnresolvedSymbol:       "Unresolved symbol",
	IOLoadFileError:             "I/O load file error",
	InternalFailure:             "Internal analysis failure",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SCO%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("INT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
