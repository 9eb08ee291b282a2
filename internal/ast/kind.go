package ast

// Kind is the variant tag of a node.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindModule
	KindIdentifier

	// декларации
	KindConstDecl
	KindVarDecl
	KindVarAffect
	KindFunDecl
	KindParam
	KindParamList
	KindTypeDecl

	// выражения
	KindUnitLiteral
	KindBooleanLiteral
	KindIntLiteral
	KindSymbolLiteral
	KindBracketExpr
	KindConditionalExpr
	KindBlockExpr
	KindBlockElems
	KindFunCall
	KindArg
	KindArgList
	KindArithBinOp
	KindCompBinOp
	KindLogicBinOp
	KindArithUnOp
	KindLogicUnOp
	KindOperator

	// типы
	KindSymbolType
	KindFunType
	KindScalarType
	KindTypeExprs
)

var kindNames = [...]string{
	KindInvalid:         "Invalid",
	KindModule:          "Module",
	KindIdentifier:      "Identifier",
	KindConstDecl:       "ConstDecl",
	KindVarDecl:         "VarDecl",
	KindVarAffect:       "VarAffect",
	KindFunDecl:         "FunDecl",
	KindParam:           "Param",
	KindParamList:       "ParamList",
	KindTypeDecl:        "TypeDecl",
	KindUnitLiteral:     "UnitLiteral",
	KindBooleanLiteral:  "BooleanLiteral",
	KindIntLiteral:      "IntLiteral",
	KindSymbolLiteral:   "SymbolLiteral",
	KindBracketExpr:     "BracketExpr",
	KindConditionalExpr: "ConditionalExpr",
	KindBlockExpr:       "BlockExpr",
	KindBlockElems:      "BlockElems",
	KindFunCall:         "FunCall",
	KindArg:             "Arg",
	KindArgList:         "ArgList",
	KindArithBinOp:      "ArithBinOp",
	KindCompBinOp:       "CompBinOp",
	KindLogicBinOp:      "LogicBinOp",
	KindArithUnOp:       "ArithUnOp",
	KindLogicUnOp:       "LogicUnOp",
	KindOperator:        "Operator",
	KindSymbolType:      "SymbolType",
	KindFunType:         "FunType",
	KindScalarType:      "ScalarType",
	KindTypeExprs:       "TypeExprs",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// NodeName is the display name of a node: the variant name, or the
// concrete operator name (PlusOp, AndOp, ...) for operator leaves.
func NodeName(n Node) string {
	if op, ok := n.(*Operator); ok {
		return op.Op.NodeName()
	}
	return n.Kind().String()
}
