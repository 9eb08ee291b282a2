package ast

import (
	"math/big"

	"lime/internal/source"
	"lime/internal/token"
)

// Builder constructs the nodes of one tree. It owns the conversions from
// tokens to leaves and the elision policy for block values; the parser calls
// it bottom-up with the spans it consumed.
//
// Constructors used in expression or type position return interfaces so
// that a failed conversion yields a true nil slot, never a typed nil.
type Builder struct {
	owner Owner
	buf   *source.Buffer
	nodes *Arena[Node]
}

func NewBuilder(owner Owner) *Builder {
	return &Builder{
		owner: owner,
		buf:   owner.Buffer(),
		nodes: NewArena[Node](256),
	}
}

func (b *Builder) Buffer() *source.Buffer { return b.buf }

// Nodes returns every node built so far, indexed by NodeID.
func (b *Builder) Nodes() *Arena[Node] { return b.nodes }

// Section converts a byte span of the buffer into a source section.
func (b *Builder) Section(sp source.Span) source.Section {
	return b.buf.Section(sp)
}

func (b *Builder) register(n Node, rng source.Section) {
	base := n.base()
	base.owner = b.owner
	base.rng = rng
	base.id = NodeID(b.nodes.Allocate(n))
}

func (b *Builder) at(n Node, sp source.Span) {
	b.register(n, b.Section(sp))
}

// ===== листья =====

// Identifier converts an identifier token. Any other token, including the
// parser's placeholder for a missing identifier, yields nil.
func (b *Builder) Identifier(tok token.Token) *Identifier {
	if tok.Kind != token.Ident || tok.Text == "" {
		return nil
	}
	id := &Identifier{Text: tok.Text}
	b.at(id, tok.Span)
	return id
}

// IntLiteral parses a decimal literal into an arbitrary precision integer.
func (b *Builder) IntLiteral(tok token.Token) Expr {
	if tok.Kind != token.IntLit {
		return nil
	}
	v, ok := new(big.Int).SetString(tok.Text, 10)
	if !ok {
		return nil
	}
	lit := &IntLiteral{Value: v}
	b.at(lit, tok.Span)
	return lit
}

func (b *Builder) BooleanLiteral(tok token.Token) Expr {
	if tok.Kind != token.KwTrue && tok.Kind != token.KwFalse {
		return nil
	}
	lit := &BooleanLiteral{Value: tok.Kind == token.KwTrue}
	b.at(lit, tok.Span)
	return lit
}

func (b *Builder) SymbolLiteral(tok token.Token) Expr {
	if tok.Kind != token.Ident || tok.Text == "" {
		return nil
	}
	lit := &SymbolLiteral{}
	lit.Symbol = tok.Text
	b.at(lit, tok.Span)
	return lit
}

// UnitLiteral is an explicit `()`.
func (b *Builder) UnitLiteral(sp source.Span) Expr {
	lit := &UnitLiteral{}
	b.at(lit, sp)
	return lit
}

// ImplicitUnit synthesises the value of an elided position at sp.
func (b *Builder) ImplicitUnit(sp source.Span) *UnitLiteral {
	lit := &UnitLiteral{Implicit: true}
	b.at(lit, sp)
	return lit
}

var tokenOps = map[token.Kind]OpKind{
	token.Plus:   OpPlus,
	token.Minus:  OpMinus,
	token.Star:   OpMul,
	token.Slash:  OpDiv,
	token.EqEq:   OpEq,
	token.BangEq: OpNeq,
	token.Lt:     OpLt,
	token.Gt:     OpGt,
	token.LtEq:   OpLeq,
	token.GtEq:   OpGeq,
	token.AndAnd: OpAnd,
	token.OrOr:   OpOr,
	token.Bang:   OpNot,
}

// Operator converts an operator token; non-operators yield nil.
func (b *Builder) Operator(tok token.Token) *Operator {
	op, ok := tokenOps[tok.Kind]
	if !ok {
		return nil
	}
	n := &Operator{Op: op}
	b.at(n, tok.Span)
	return n
}

// ===== выражения =====

func (b *Builder) BinOp(sp source.Span, left Expr, op *Operator, right Expr) Expr {
	if op == nil {
		return nil
	}
	n := &BinOp{Left: left, Op: op, Right: right}
	b.register(n, coverChildren(b.Section(sp), n))
	return n
}

func (b *Builder) UnOp(sp source.Span, op *Operator, value Expr) Expr {
	if op == nil {
		return nil
	}
	n := &UnOp{Op: op, Value: value}
	b.register(n, coverChildren(b.Section(sp), n))
	return n
}

func (b *Builder) BracketExpr(sp source.Span, inner Expr) Expr {
	n := &BracketExpr{Expr: inner}
	b.at(n, sp)
	return n
}

func (b *Builder) ConditionalExpr(sp source.Span, cond, then, els Expr) Expr {
	n := &ConditionalExpr{Condition: cond, Then: then, Else: els}
	b.at(n, sp)
	return n
}

func (b *Builder) BlockExpr(sp source.Span, elems *BlockElems) Expr {
	n := &BlockExpr{Elems: elems}
	b.at(n, sp)
	return n
}

func (b *Builder) FunCall(sp source.Span, callee Expr, args *ArgList) Expr {
	if callee == nil || args == nil {
		return nil
	}
	n := &FunCall{Callee: callee, Args: args}
	b.register(n, coverChildren(b.Section(sp), n))
	return n
}

// coverChildren widens rng so that every present child of n lies inside it.
func coverChildren(rng source.Section, n Node) source.Section {
	for _, c := range NodesOf(n) {
		rng = rng.Cover(c.Range())
	}
	return rng
}

func (b *Builder) ArgList(sp source.Span) *ArgList {
	n := &ArgList{}
	b.at(n, sp)
	return n
}

func (b *Builder) Arg(sp source.Span, name *Identifier, value Expr) *Arg {
	n := &Arg{Name: name, Value: value}
	b.at(n, sp)
	return n
}

func (b *Builder) AppendArg(l *ArgList, a *Arg) {
	if a != nil {
		l.push(a)
	}
}

// ===== блоки =====

// BlockBuilder accumulates block elements and applies the elision policy:
// every `;` that closes an empty position yields one implicit unit literal,
// and a block whose last position is not a value expression gets one
// implicit unit literal as its value.
type BlockBuilder struct {
	b       *Builder
	elems   *BlockElems
	pending Stmt // элемент текущей позиции; nil если позиция пуста
}

func (b *Builder) StartBlock(open source.Span) *BlockBuilder {
	elems := &BlockElems{}
	b.at(elems, open)
	return &BlockBuilder{b: b, elems: elems}
}

// Add appends an element in the current position.
func (bb *BlockBuilder) Add(s Stmt) {
	if Node(s) == nil {
		return
	}
	bb.elems.push(s)
	bb.pending = s
}

// Terminator records a `;` at sp.
func (bb *BlockBuilder) Terminator(sp source.Span) {
	if bb.pending == nil {
		bb.elems.push(bb.b.ImplicitUnit(sp))
	}
	bb.pending = nil
}

// Finish closes the block at the closing brace span and returns the
// elements with their range covering the whole block content.
func (bb *BlockBuilder) Finish(full, close source.Span) *BlockElems {
	if _, isExpr := bb.pending.(Expr); !isExpr {
		bb.elems.push(bb.b.ImplicitUnit(source.Span{Start: close.Start, End: close.Start}))
	}
	bb.elems.setRange(bb.b.Section(full))
	return bb.elems
}

// ===== декларации =====

func (b *Builder) Module(sp source.Span) *Module {
	m := &Module{}
	b.at(m, sp)
	return m
}

func (b *Builder) AppendDecl(m *Module, d Decl) {
	if Node(d) != nil {
		m.push(d)
	}
}

// SetRange widens a node's range after its last token is known.
func (b *Builder) SetRange(n Node, sp source.Span) {
	n.base().setRange(b.Section(sp))
}

func (b *Builder) ConstDecl(sp source.Span, name *Identifier, typ TypeExpr, value Expr) *ConstDecl {
	n := &ConstDecl{Type: typ, Value: value}
	n.Name = name
	b.at(n, sp)
	return n
}

func (b *Builder) VarDecl(sp source.Span, name *Identifier, typ TypeExpr, value Expr) *VarDecl {
	n := &VarDecl{Type: typ, Value: value}
	n.Name = name
	b.at(n, sp)
	return n
}

func (b *Builder) VarAffect(sp source.Span, name *Identifier, value Expr) *VarAffect {
	n := &VarAffect{Value: value}
	n.Name = name
	b.at(n, sp)
	return n
}

func (b *Builder) FunDecl(sp source.Span, name *Identifier, params *ParamList, ret TypeExpr, body Expr) *FunDecl {
	n := &FunDecl{Params: params, ReturnType: ret, Body: body}
	n.Name = name
	b.at(n, sp)
	return n
}

func (b *Builder) ParamList(sp source.Span) *ParamList {
	n := &ParamList{}
	b.at(n, sp)
	return n
}

func (b *Builder) Param(sp source.Span, name *Identifier, typ TypeExpr, def Expr) *Param {
	n := &Param{Type: typ, Default: def}
	n.Name = name
	b.at(n, sp)
	return n
}

func (b *Builder) AppendParam(l *ParamList, p *Param) {
	if p != nil {
		l.push(p)
	}
}

// ===== типы =====

func (b *Builder) SymbolType(tok token.Token) TypeExpr {
	if tok.Kind != token.Ident || tok.Text == "" {
		return nil
	}
	t := &SymbolType{}
	t.Symbol = tok.Text
	b.at(t, tok.Span)
	return t
}

func (b *Builder) FunType(sp source.Span, params *TypeExprs, ret TypeExpr) TypeExpr {
	t := &FunType{Params: params, Return: ret}
	b.at(t, sp)
	return t
}

func (b *Builder) TypeExprs(sp source.Span) *TypeExprs {
	n := &TypeExprs{}
	b.at(n, sp)
	return n
}

func (b *Builder) AppendType(l *TypeExprs, t TypeExpr) {
	if Node(t) != nil {
		l.push(t)
	}
}

// ===== синтетические узлы (прелюдия) =====

// SyntheticTypeDecl builds `name = ScalarType(size)` with the synthetic
// range of the builder's buffer.
func (b *Builder) SyntheticTypeDecl(name string, size int) *TypeDecl {
	rng := source.Synthetic(b.buf)
	id := &Identifier{Text: name}
	b.register(id, rng)
	scalar := &ScalarType{Size: size}
	b.register(scalar, rng)
	decl := &TypeDecl{Expr: scalar}
	decl.Name = id
	b.register(decl, rng)
	return decl
}

// SyntheticModule builds an empty module spanning nothing.
func (b *Builder) SyntheticModule() *Module {
	m := &Module{}
	b.register(m, source.Synthetic(b.buf))
	return m
}
