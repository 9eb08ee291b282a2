package ast

// OpKind identifies a concrete operator.
type OpKind uint8

const (
	OpInvalid OpKind = iota
	OpPlus
	OpMinus
	OpMul
	OpDiv
	OpEq
	OpNeq
	OpLt
	OpGt
	OpLeq
	OpGeq
	OpAnd
	OpOr
	OpNot
)

// OpFamily groups operators by the kind of operation node they build.
type OpFamily uint8

const (
	FamilyInvalid OpFamily = iota
	FamilyArith
	FamilyComp
	FamilyLogic
)

var opInfo = [...]struct {
	node   string
	symbol string
	family OpFamily
}{
	OpInvalid: {"InvalidOp", "?", FamilyInvalid},
	OpPlus:    {"PlusOp", "+", FamilyArith},
	OpMinus:   {"MinusOp", "-", FamilyArith},
	OpMul:     {"MulOp", "*", FamilyArith},
	OpDiv:     {"DivOp", "/", FamilyArith},
	OpEq:      {"EqOp", "==", FamilyComp},
	OpNeq:     {"NeqOp", "!=", FamilyComp},
	OpLt:      {"LtOp", "<", FamilyComp},
	OpGt:      {"GtOp", ">", FamilyComp},
	OpLeq:     {"LeqOp", "<=", FamilyComp},
	OpGeq:     {"GeqOp", ">=", FamilyComp},
	OpAnd:     {"AndOp", "&&", FamilyLogic},
	OpOr:      {"OrOp", "||", FamilyLogic},
	OpNot:     {"NotOp", "!", FamilyLogic},
}

func (o OpKind) info() (string, string, OpFamily) {
	if int(o) >= len(opInfo) {
		o = OpInvalid
	}
	i := opInfo[o]
	return i.node, i.symbol, i.family
}

// NodeName is the tree name of the operator node, e.g. "PlusOp".
func (o OpKind) NodeName() string {
	n, _, _ := o.info()
	return n
}

// Symbol is the source spelling of the operator.
func (o OpKind) Symbol() string {
	_, s, _ := o.info()
	return s
}

func (o OpKind) Family() OpFamily {
	_, _, f := o.info()
	return f
}

func (o OpKind) String() string {
	return o.Symbol()
}

// Operator is the leaf node carrying an operator and its own source range.
type Operator struct {
	nodeBase
	Op OpKind
}

func (*Operator) Kind() Kind { return KindOperator }
func (*Operator) Children() []Child { return nil }

func binOpKind(f OpFamily) Kind {
	switch f {
	case FamilyArith:
		return KindArithBinOp
	case FamilyComp:
		return KindCompBinOp
	case FamilyLogic:
		return KindLogicBinOp
	}
	return KindInvalid
}

func unOpKind(f OpFamily) Kind {
	switch f {
	case FamilyArith:
		return KindArithUnOp
	case FamilyLogic:
		return KindLogicUnOp
	}
	return KindInvalid
}
