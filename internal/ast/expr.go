package ast

import "math/big"

type exprBase struct {
	nodeBase
}

func (*exprBase) exprNode() {}
func (*exprBase) stmtNode() {}

// UnitLiteral is `()`, or the implicit value of a block without one.
type UnitLiteral struct {
	exprBase
	// Implicit marks literals synthesised for an elided value.
	Implicit bool
}

func (*UnitLiteral) Kind() Kind { return KindUnitLiteral }
func (*UnitLiteral) Children() []Child { return nil }

type BooleanLiteral struct {
	exprBase
	Value bool
}

func (*BooleanLiteral) Kind() Kind { return KindBooleanLiteral }
func (l *BooleanLiteral) Children() []Child {
	return []Child{leaf("value", l.Value)}
}

// IntLiteral holds an arbitrary precision value.
type IntLiteral struct {
	exprBase
	Value *big.Int
}

func (*IntLiteral) Kind() Kind { return KindIntLiteral }
func (l *IntLiteral) Children() []Child {
	return []Child{leaf("value", l.Value)}
}

// Ref is a node that refers to a declaration by name.
type Ref interface {
	Node
	RefName() string
	// Decl is the declaration the name resolved to, or nil.
	Decl() Node
	Bind(decl Node)
}

type refBase struct {
	Symbol string
	decl   Node
}

func (r *refBase) RefName() string { return r.Symbol }
func (r *refBase) Decl() Node { return r.decl }
func (r *refBase) Bind(decl Node) { r.decl = decl }

// SymbolLiteral is a use of a name in expression position.
type SymbolLiteral struct {
	exprBase
	refBase
}

func (*SymbolLiteral) Kind() Kind { return KindSymbolLiteral }
func (l *SymbolLiteral) Children() []Child {
	return []Child{leaf("symbol", l.Symbol)}
}

// BracketExpr keeps explicit parentheses in the tree.
type BracketExpr struct {
	exprBase
	Expr Expr
}

func (*BracketExpr) Kind() Kind { return KindBracketExpr }
func (e *BracketExpr) Children() []Child {
	return []Child{iface("expr", SlotNullable, e.Expr)}
}

// ConditionalExpr: if condition thenExpr [else elseExpr]
type ConditionalExpr struct {
	exprBase
	Condition Expr
	Then      Expr
	Else      Expr // optional
}

func (*ConditionalExpr) Kind() Kind { return KindConditionalExpr }
func (e *ConditionalExpr) Children() []Child {
	return []Child{
		iface("condition", SlotNullable, e.Condition),
		iface("thenExpr", SlotNullable, e.Then),
		iface("elseExpr", SlotOptional, e.Else),
	}
}

// BlockExpr is `{ elems }`. Its value is the last element.
type BlockExpr struct {
	exprBase
	Elems *BlockElems
}

func (*BlockExpr) Kind() Kind { return KindBlockExpr }
func (e *BlockExpr) Children() []Child {
	return []Child{slot("elems", SlotRequired, e.Elems)}
}

// Value returns the trailing value expression of the block, or nil.
func (e *BlockExpr) Value() Expr {
	if e.Elems == nil || e.Elems.Len() == 0 {
		return nil
	}
	v, _ := e.Elems.At(e.Elems.Len() - 1).(Expr)
	return v
}

type FunCall struct {
	exprBase
	Callee Expr
	Args   *ArgList
}

func (*FunCall) Kind() Kind { return KindFunCall }
func (e *FunCall) Children() []Child {
	return []Child{
		iface("callee", SlotRequired, e.Callee),
		slot("args", SlotRequired, e.Args),
	}
}

// Arg is a call argument, optionally named: `name = value`.
type Arg struct {
	nodeBase
	Name  *Identifier // optional
	Value Expr
}

func (*Arg) Kind() Kind { return KindArg }
func (a *Arg) Children() []Child {
	return []Child{
		slot("name", SlotOptional, a.Name),
		iface("value", SlotNullable, a.Value),
	}
}

// BinOp is an arithmetic, comparison or logic binary operation; the family
// follows the operator.
type BinOp struct {
	exprBase
	Left  Expr
	Op    *Operator
	Right Expr
}

func (e *BinOp) Kind() Kind {
	if e.Op == nil {
		return KindInvalid
	}
	return binOpKind(e.Op.Op.Family())
}

func (e *BinOp) Children() []Child {
	return []Child{
		iface("left", SlotNullable, e.Left),
		slot("op", SlotRequired, e.Op),
		iface("right", SlotNullable, e.Right),
	}
}

// UnOp is an arithmetic (+, -) or logic (!) prefix operation.
type UnOp struct {
	exprBase
	Op    *Operator
	Value Expr
}

func (e *UnOp) Kind() Kind {
	if e.Op == nil {
		return KindInvalid
	}
	return unOpKind(e.Op.Op.Family())
}

func (e *UnOp) Children() []Child {
	return []Child{
		slot("op", SlotRequired, e.Op),
		iface("value", SlotNullable, e.Value),
	}
}
