package ast

import "lime/internal/lexenv"

// Identifier is a name as written in a declaration. Symbol uses are
// SymbolLiteral or SymbolType, not Identifier.
type Identifier struct {
	nodeBase
	Text string
}

func (*Identifier) Kind() Kind { return KindIdentifier }
func (i *Identifier) Children() []Child {
	return []Child{leaf("text", i.Text)}
}

type declBase struct {
	nodeBase
	Name *Identifier
}

func (*declBase) declNode() {}
func (*declBase) stmtNode() {}

func (d *declBase) DeclName() *Identifier { return d.Name }

// ConstDecl: const name [: type] = value
type ConstDecl struct {
	declBase
	Type  TypeExpr // optional
	Value Expr
}

func (*ConstDecl) Kind() Kind { return KindConstDecl }
func (d *ConstDecl) Children() []Child {
	return []Child{
		slot("name", SlotNullable, d.Name),
		iface("type", SlotOptional, d.Type),
		iface("value", SlotNullable, d.Value),
	}
}

// VarDecl: var name [: type] [= value]
type VarDecl struct {
	declBase
	Type  TypeExpr // optional
	Value Expr     // optional
}

func (*VarDecl) Kind() Kind { return KindVarDecl }
func (d *VarDecl) Children() []Child {
	return []Child{
		slot("name", SlotNullable, d.Name),
		iface("type", SlotOptional, d.Type),
		iface("value", SlotOptional, d.Value),
	}
}

// VarAffect: name = value. It assigns rather than declares; the name is
// resolved against the enclosing scopes.
type VarAffect struct {
	declBase
	Value Expr

	target Node
}

func (*VarAffect) Kind() Kind { return KindVarAffect }
func (d *VarAffect) Children() []Child {
	return []Child{
		slot("name", SlotNullable, d.Name),
		iface("value", SlotNullable, d.Value),
	}
}

// Target is the declaration the assigned name resolved to, or nil.
func (d *VarAffect) Target() Node { return d.target }
func (d *VarAffect) BindTarget(n Node) { d.target = n }

// FunDecl: fun name(params) [-> returnType] body
type FunDecl struct {
	declBase
	Params     *ParamList
	ReturnType TypeExpr // optional
	Body       Expr

	scope *lexenv.Env
}

func (*FunDecl) Kind() Kind { return KindFunDecl }
func (d *FunDecl) Children() []Child {
	return []Child{
		slot("name", SlotNullable, d.Name),
		slot("params", SlotNullable, d.Params),
		iface("returnType", SlotOptional, d.ReturnType),
		iface("body", SlotNullable, d.Body),
	}
}

// Scope is the environment opened by the function for its parameters and body.
func (d *FunDecl) Scope() *lexenv.Env { return d.scope }
func (d *FunDecl) SetScope(env *lexenv.Env) { d.scope = env }

// Param: name: type [= defaultValue]
type Param struct {
	declBase
	Type    TypeExpr
	Default Expr // optional
}

func (*Param) Kind() Kind { return KindParam }
func (d *Param) Children() []Child {
	return []Child{
		slot("name", SlotNullable, d.Name),
		iface("type", SlotNullable, d.Type),
		iface("defaultValue", SlotOptional, d.Default),
	}
}

// TypeDecl binds a name to a type expression. Only the prelude produces these.
type TypeDecl struct {
	declBase
	Expr TypeExpr
}

func (*TypeDecl) Kind() Kind { return KindTypeDecl }
func (d *TypeDecl) Children() []Child {
	return []Child{
		slot("name", SlotNullable, d.Name),
		iface("expr", SlotNullable, d.Expr),
	}
}
