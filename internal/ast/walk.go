package ast

// Inspect traverses the tree depth-first, left to right, in declared child
// order. If f returns false the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range n.Children() {
		if c.Node != nil {
			Inspect(c.Node, f)
		}
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func Count(n Node) int {
	total := 0
	Inspect(n, func(Node) bool {
		total++
		return true
	})
	return total
}

// Missing returns the parent nodes that have at least one slot left empty
// by a parse error, in traversal order.
func Missing(n Node) []Node {
	var out []Node
	Inspect(n, func(cur Node) bool {
		for _, c := range cur.Children() {
			if c.Missing() {
				out = append(out, cur)
				break
			}
		}
		return true
	})
	return out
}
