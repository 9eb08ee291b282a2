package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"lime/internal/ast"
)

// ASTFormat selects how `lime parse` prints a tree.
type ASTFormat uint8

const (
	ASTTree ASTFormat = iota
	ASTJSON
	ASTYAML
)

func ParseASTFormat(s string) (ASTFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tree":
		return ASTTree, nil
	case "json":
		return ASTJSON, nil
	case "yaml":
		return ASTYAML, nil
	}
	return ASTTree, fmt.Errorf("unknown tree format %q (tree|json|yaml)", s)
}

type ASTNodeOutput struct {
	Type  string           `json:"type" yaml:"type"`
	Range string           `json:"range,omitempty" yaml:"range,omitempty"`
	Slots []ASTSlotOutput  `json:"slots,omitempty" yaml:"slots,omitempty"`
	Elems []*ASTNodeOutput `json:"elems,omitempty" yaml:"elems,omitempty"`
}

// ASTSlotOutput is one named child. Exactly one of Value, Node, Missing or
// None describes it.
type ASTSlotOutput struct {
	Name    string         `json:"name" yaml:"name"`
	Value   string         `json:"value,omitempty" yaml:"value,omitempty"`
	Node    *ASTNodeOutput `json:"node,omitempty" yaml:"node,omitempty"`
	Missing bool           `json:"missing,omitempty" yaml:"missing,omitempty"`
	None    bool           `json:"none,omitempty" yaml:"none,omitempty"`
}

// BuildAST converts n into its serialisable form; nil yields nil.
func BuildAST(n ast.Node) *ASTNodeOutput {
	if n == nil {
		return nil
	}
	rng := n.Range()
	out := &ASTNodeOutput{
		Type:  ast.NodeName(n),
		Range: rng.Start.String() + "-" + rng.End.String(),
	}
	if l, ok := n.(ast.ListNode); ok {
		out.Elems = make([]*ASTNodeOutput, 0, l.Len())
		for i := range l.Len() {
			out.Elems = append(out.Elems, BuildAST(l.Elem(i)))
		}
		return out
	}
	for _, c := range n.Children() {
		s := ASTSlotOutput{Name: c.Name}
		switch {
		case c.Slot == ast.SlotLeaf:
			s.Value = ast.FormatLeaf(c.Value)
		case c.Node != nil:
			s.Node = BuildAST(c.Node)
		case c.Slot == ast.SlotOptional:
			s.None = true
		default:
			s.Missing = true
		}
		out.Slots = append(out.Slots, s)
	}
	return out
}

// FormatAST writes root in the requested format.
func FormatAST(w io.Writer, root ast.Node, format ASTFormat) error {
	switch format {
	case ASTJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(BuildAST(root))
	case ASTYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(BuildAST(root)); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintln(w, ast.TreeString(root))
		return err
	}
}
