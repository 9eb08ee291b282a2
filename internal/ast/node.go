package ast

import (
	"lime/internal/lexenv"
	"lime/internal/source"
)

// NodeID numbers nodes in allocation order within one tree; 0 means none.
type NodeID uint32

const NoNodeID NodeID = 0

// Owner is the analysis unit that produced a tree.
type Owner interface {
	Buffer() *source.Buffer
}

// Node is implemented by every syntax tree variant. The set is closed.
type Node interface {
	Kind() Kind
	Range() source.Section
	Owner() Owner
	ID() NodeID
	// Children lists the declared child slots in their fixed order.
	Children() []Child

	// Env is the lexical environment the node resides in; nil before resolution.
	Env() *lexenv.Env
	SetEnv(env *lexenv.Env)

	base() *nodeBase
}

// Expr is a node that produces a value.
type Expr interface {
	Stmt
	exprNode()
}

// Decl is a node that introduces or assigns a name.
type Decl interface {
	Stmt
	declNode()
	// DeclName is the identifier being declared; nil after a parse error.
	DeclName() *Identifier
}

// TypeExpr is a node that denotes a type.
type TypeExpr interface {
	Node
	typeExprNode()
}

// Stmt is anything that may appear in a block: expressions and declarations.
type Stmt interface {
	Node
	stmtNode()
}

type nodeBase struct {
	owner Owner
	rng   source.Section
	id    NodeID
	env   *lexenv.Env
}

func (b *nodeBase) Range() source.Section { return b.rng }
func (b *nodeBase) Owner() Owner { return b.owner }
func (b *nodeBase) ID() NodeID { return b.id }
func (b *nodeBase) Env() *lexenv.Env { return b.env }
func (b *nodeBase) SetEnv(env *lexenv.Env) { b.env = env }
func (b *nodeBase) base() *nodeBase { return b }
func (b *nodeBase) setRange(rng source.Section) { b.rng = rng }

// SlotKind classifies a child slot.
type SlotKind uint8

const (
	// SlotRequired always holds a node.
	SlotRequired SlotKind = iota
	// SlotNullable holds a node, or nil where the parser recorded an error.
	SlotNullable
	// SlotOptional holds a node, or nil for a valid absence.
	SlotOptional
	// SlotLeaf holds a scalar Value.
	SlotLeaf
)

func (s SlotKind) String() string {
	switch s {
	case SlotRequired:
		return "required"
	case SlotNullable:
		return "nullable"
	case SlotOptional:
		return "optional"
	case SlotLeaf:
		return "leaf"
	}
	return "unknown"
}

// Child is one named slot of a node.
type Child struct {
	Name  string
	Slot  SlotKind
	Node  Node
	Value any
}

// Missing reports a nullable or required slot left empty by a parse error.
func (c Child) Missing() bool {
	return c.Slot != SlotLeaf && c.Slot != SlotOptional && c.Node == nil
}

func leaf(name string, v any) Child {
	return Child{Name: name, Slot: SlotLeaf, Value: v}
}

// slot builds a node child without storing a typed nil pointer in the interface.
func slot[T any, P interface {
	*T
	Node
}](name string, kind SlotKind, p P) Child {
	c := Child{Name: name, Slot: kind}
	if p != nil {
		c.Node = p
	}
	return c
}

// iface is the same guard for children already typed as an interface.
func iface[N Node](name string, kind SlotKind, n N) Child {
	c := Child{Name: name, Slot: kind}
	if Node(n) != nil {
		c.Node = n
	}
	return c
}

// NodesOf returns the non-empty node children of n in order.
func NodesOf(n Node) []Node {
	children := n.Children()
	out := make([]Node, 0, len(children))
	for _, c := range children {
		if c.Node != nil {
			out = append(out, c.Node)
		}
	}
	return out
}
