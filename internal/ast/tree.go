package ast

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

const (
	parsingError = "<PARSING_ERROR>"
	noneValue    = "None"
)

// TreeString renders n and its subtree:
//
//	Name                      no children
//	Name { child: value }     a single child that is not a node
//	Name                      otherwise one indented line per child
//	|  child: subtree
//
// Missing nodes render as <PARSING_ERROR>, absent optional nodes as None.
// List nodes render as "Name (list node)" followed by "<i>: element" lines.
func TreeString(n Node) string {
	if n == nil {
		return parsingError
	}
	var b strings.Builder
	writeTree(&b, n, 0)
	return b.String()
}

func writeTree(b *strings.Builder, n Node, level int) {
	b.WriteString(NodeName(n))

	if l, ok := n.(ListNode); ok {
		b.WriteString(" (list node)")
		for i := range l.Len() {
			b.WriteByte('\n')
			writeIndent(b, level+1)
			fmt.Fprintf(b, "<%d>: ", i)
			writeTree(b, l.Elem(i), level+1)
		}
		return
	}

	children := n.Children()
	if len(children) == 0 {
		return
	}
	if len(children) == 1 && children[0].Node == nil {
		fmt.Fprintf(b, " { %s: ", children[0].Name)
		writeChild(b, children[0], level)
		b.WriteString(" }")
		return
	}
	for _, c := range children {
		b.WriteByte('\n')
		writeIndent(b, level+1)
		b.WriteString(c.Name)
		b.WriteString(": ")
		writeChild(b, c, level)
	}
}

func writeChild(b *strings.Builder, c Child, level int) {
	switch {
	case c.Slot == SlotLeaf:
		b.WriteString(FormatLeaf(c.Value))
	case c.Node != nil:
		writeTree(b, c.Node, level+1)
	case c.Slot == SlotOptional:
		b.WriteString(noneValue)
	default:
		b.WriteString(parsingError)
	}
}

func writeIndent(b *strings.Builder, level int) {
	for range level {
		b.WriteString("|  ")
	}
}

// FormatLeaf renders a leaf value the way the tree printer does.
func FormatLeaf(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case *big.Int:
		if x == nil {
			return parsingError
		}
		return x.String()
	case nil:
		return parsingError
	default:
		return fmt.Sprint(x)
	}
}
