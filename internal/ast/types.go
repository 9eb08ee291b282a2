package ast

type typeBase struct {
	nodeBase
}

func (*typeBase) typeExprNode() {}

// SymbolType names a type: `int`.
type SymbolType struct {
	typeBase
	refBase
}

func (*SymbolType) Kind() Kind { return KindSymbolType }
func (t *SymbolType) Children() []Child {
	return []Child{leaf("symbol", t.Symbol)}
}

// FunType: (paramTypes) -> returnType
type FunType struct {
	typeBase
	Params *TypeExprs
	Return TypeExpr
}

func (*FunType) Kind() Kind { return KindFunType }
func (t *FunType) Children() []Child {
	return []Child{
		slot("paramTypes", SlotNullable, t.Params),
		iface("returnType", SlotNullable, t.Return),
	}
}

// ScalarType is a built-in type described only by its size in bytes.
type ScalarType struct {
	typeBase
	Size int
}

func (*ScalarType) Kind() Kind { return KindScalarType }
func (t *ScalarType) Children() []Child {
	return []Child{leaf("size", t.Size)}
}
