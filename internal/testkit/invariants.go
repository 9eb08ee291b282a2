package testkit

import (
	"errors"
	"fmt"

	"lime/internal/ast"
)

// CheckTree runs the structural invariants every parsed tree must satisfy:
//  1. each node is owned by the buffer its range points into
//  2. node IDs are non-zero and unique
//  3. each child's range lies within its parent's range
func CheckTree(root ast.Node) error {
	if root == nil {
		return errors.New("nil root")
	}
	if root.Owner() == nil {
		return fmt.Errorf("%s has no owner", ast.NodeName(root))
	}
	buf := root.Owner().Buffer()
	seen := make(map[ast.NodeID]ast.Node)

	var errs []error
	ast.Inspect(root, func(n ast.Node) bool {
		name := ast.NodeName(n)
		r := n.Range()
		if n.Owner() == nil || n.Owner().Buffer() != buf {
			errs = append(errs, fmt.Errorf("%s belongs to another unit", name))
		}
		if !r.Buffer.Equal(buf) {
			errs = append(errs, fmt.Errorf("%s range %s points outside its buffer", name, r))
		}

		id := n.ID()
		if id == ast.NoNodeID {
			errs = append(errs, fmt.Errorf("%s at %s has no id", name, r))
		} else if prev, dup := seen[id]; dup {
			errs = append(errs, fmt.Errorf("id %d shared by %s and %s", id, ast.NodeName(prev), name))
		} else {
			seen[id] = n
		}

		for _, c := range n.Children() {
			if c.Node == nil {
				continue
			}
			cr := c.Node.Range()
			if !r.Contains(cr.Start) || !r.Contains(cr.End) {
				errs = append(errs, fmt.Errorf("%s.%s %s-%s escapes %s %s-%s",
					name, c.Name, cr.Start, cr.End, name, r.Start, r.End))
			}
		}
		return true
	})
	return errors.Join(errs...)
}
