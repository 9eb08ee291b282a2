package ast

import "strconv"

// ListNode is a node whose children are a uniform ordered sequence.
type ListNode interface {
	Node
	Len() int
	Elem(i int) Node
	listNode()
}

type list[T Node] struct {
	nodeBase
	items []T
}

func (l *list[T]) Len() int { return len(l.items) }
func (l *list[T]) At(i int) T { return l.items[i] }
func (l *list[T]) Elem(i int) Node { return l.items[i] }
func (*list[T]) listNode() {}

// Items returns the elements in source order. The slice must not be modified.
func (l *list[T]) Items() []T {
	return l.items
}

func (l *list[T]) Children() []Child {
	out := make([]Child, len(l.items))
	for i, it := range l.items {
		out[i] = Child{Name: strconv.Itoa(i), Slot: SlotRequired, Node: it}
	}
	return out
}

func (l *list[T]) push(n T) {
	l.items = append(l.items, n)
}

// Module is the list of top-level declarations of one buffer.
type Module struct{ list[Decl] }

// BlockElems is the ordered content of a block; the last element is the block value.
type BlockElems struct{ list[Stmt] }

// ParamList holds the parameters of a function declaration.
type ParamList struct{ list[*Param] }

// ArgList holds the arguments of a call.
type ArgList struct{ list[*Arg] }

// TypeExprs holds the parameter types of a function type.
type TypeExprs struct{ list[TypeExpr] }

func (*Module) Kind() Kind { return KindModule }
func (*BlockElems) Kind() Kind { return KindBlockElems }
func (*ParamList) Kind() Kind { return KindParamList }
func (*ArgList) Kind() Kind { return KindArgList }
func (*TypeExprs) Kind() Kind { return KindTypeExprs }
