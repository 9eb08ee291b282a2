package parser

import (
	"testing"

	"lime/internal/ast"
)

func TestParseTreeShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "error slot",
			input: "const x = (",
			want: "Module (list node)\n" +
				"|  <0>: ConstDecl\n" +
				"|  |  name: Identifier { text: x }\n" +
				"|  |  type: None\n" +
				"|  |  value: BracketExpr { expr: <PARSING_ERROR> }",
		},
		{
			name:  "logic precedence",
			input: "const x = a || b && c",
			want: "Module (list node)\n" +
				"|  <0>: ConstDecl\n" +
				"|  |  name: Identifier { text: x }\n" +
				"|  |  type: None\n" +
				"|  |  value: LogicBinOp\n" +
				"|  |  |  left: SymbolLiteral { symbol: a }\n" +
				"|  |  |  op: OrOp\n" +
				"|  |  |  right: LogicBinOp\n" +
				"|  |  |  |  left: SymbolLiteral { symbol: b }\n" +
				"|  |  |  |  op: AndOp\n" +
				"|  |  |  |  right: SymbolLiteral { symbol: c }",
		},
		{
			name:  "redundant terminators",
			input: "const x = { ;; }",
			want: "Module (list node)\n" +
				"|  <0>: ConstDecl\n" +
				"|  |  name: Identifier { text: x }\n" +
				"|  |  type: None\n" +
				"|  |  value: BlockExpr\n" +
				"|  |  |  elems: BlockElems (list node)\n" +
				"|  |  |  |  <0>: UnitLiteral\n" +
				"|  |  |  |  <1>: UnitLiteral\n" +
				"|  |  |  |  <2>: UnitLiteral",
		},
		{
			name:  "function",
			input: "fun f(x: int) -> int { x }",
			want: "Module (list node)\n" +
				"|  <0>: FunDecl\n" +
				"|  |  name: Identifier { text: f }\n" +
				"|  |  params: ParamList (list node)\n" +
				"|  |  |  <0>: Param\n" +
				"|  |  |  |  name: Identifier { text: x }\n" +
				"|  |  |  |  type: SymbolType { symbol: int }\n" +
				"|  |  |  |  defaultValue: None\n" +
				"|  |  returnType: SymbolType { symbol: int }\n" +
				"|  |  body: BlockExpr\n" +
				"|  |  |  elems: BlockElems (list node)\n" +
				"|  |  |  |  <0>: SymbolLiteral { symbol: x }",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := parseSource(t, tt.input)
			if got := ast.TreeString(m); got != tt.want {
				t.Fatalf("tree mismatch:\n got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestParseArithmeticAssociativity(t *testing.T) {
	m, bag := parseSource(t, "const x = 1 - 2 - 3 * 4")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	outer, ok := firstConstValue(t, m).(*ast.BinOp)
	if !ok || outer.Op.Op != ast.OpMinus {
		t.Fatalf("outer op is not '-'")
	}
	inner, ok := outer.Left.(*ast.BinOp)
	if !ok || inner.Op.Op != ast.OpMinus {
		t.Fatalf("left operand is not (1 - 2)")
	}
	mul, ok := outer.Right.(*ast.BinOp)
	if !ok || mul.Op.Op != ast.OpMul {
		t.Fatalf("right operand is not (3 * 4)")
	}
}

func TestParseBlockValues(t *testing.T) {
	tests := []struct {
		input    string
		elems    int
		implicit int
		value    ast.Kind
	}{
		{"const x = {}", 1, 1, ast.KindUnitLiteral},
		{"const x = { 0 }", 1, 0, ast.KindIntLiteral},
		{"const x = { 0; }", 2, 1, ast.KindUnitLiteral},
		{"const x = { ; }", 2, 2, ast.KindUnitLiteral},
		{"const x = { var y = 0 }", 2, 1, ast.KindUnitLiteral},
		{"const x = { y = 0 }", 2, 1, ast.KindUnitLiteral},
		{"const x = { var y = 0; y }", 2, 0, ast.KindSymbolLiteral},
		{"const x = { ()\n() }", 2, 0, ast.KindUnitLiteral},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, bag := parseSource(t, tt.input)
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
			}
			block, ok := firstConstValue(t, m).(*ast.BlockExpr)
			if !ok {
				t.Fatalf("value is not a block")
			}
			if got := block.Elems.Len(); got != tt.elems {
				t.Fatalf("elems = %d, want %d", got, tt.elems)
			}
			implicit := 0
			for _, e := range block.Elems.Items() {
				if u, ok := e.(*ast.UnitLiteral); ok && u.Implicit {
					implicit++
				}
			}
			if implicit != tt.implicit {
				t.Fatalf("implicit units = %d, want %d", implicit, tt.implicit)
			}
			if got := block.Value().Kind(); got != tt.value {
				t.Fatalf("value kind = %s, want %s", got, tt.value)
			}
		})
	}
}

func TestParseCallOnlyOnCallableCallee(t *testing.T) {
	m, bag := parseSource(t, "fun main() {\n    { a }\n    ((0))\n    f(1)(2)\n}")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	fn := m.At(0).(*ast.FunDecl)
	elems := fn.Body.(*ast.BlockExpr).Elems
	if elems.Len() != 3 {
		t.Fatalf("elems = %d, want 3:\n%s", elems.Len(), ast.TreeString(elems))
	}
	kinds := []ast.Kind{ast.KindBlockExpr, ast.KindBracketExpr, ast.KindFunCall}
	for i, k := range kinds {
		if got := elems.At(i).Kind(); got != k {
			t.Fatalf("elem %d = %s, want %s", i, got, k)
		}
	}
	call := elems.At(2).(*ast.FunCall)
	if _, ok := call.Callee.(*ast.FunCall); !ok {
		t.Fatalf("callee of f(1)(2) should be a call")
	}
}

func TestParseRanges(t *testing.T) {
	m, _ := parseSource(t, "const  foo = 12345678901234567890123")
	decl := m.At(0).(*ast.ConstDecl)

	name := decl.Name.Range()
	if name.Start.String() != "1:7" || name.End.String() != "1:10" {
		t.Fatalf("identifier range = %s-%s, want 1:7-1:10", name.Start, name.End)
	}
	if decl.Range().Start.String() != "1:0" || decl.Range().End.String() != "1:36" {
		t.Fatalf("decl range = %s-%s", decl.Range().Start, decl.Range().End)
	}
	lit := decl.Value.(*ast.IntLiteral)
	if lit.Value.String() != "12345678901234567890123" {
		t.Fatalf("int literal = %s", lit.Value)
	}
}

func TestParseEveryNodeInsideParent(t *testing.T) {
	m, _ := parseSource(t, "fun f(a: int, b: (int) -> bool = g) -> int {\n  var c = if a < 1 { -a } else { b(a=1) };\n  c = c + 1\n}")
	ast.Inspect(m, func(n ast.Node) bool {
		r := n.Range()
		for _, c := range n.Children() {
			if c.Node == nil {
				continue
			}
			cr := c.Node.Range()
			if cr.Start.Before(r.Start) || r.End.Before(cr.End) {
				t.Errorf("%s %s-%s escapes parent %s %s-%s",
					ast.NodeName(c.Node), cr.Start, cr.End, ast.NodeName(n), r.Start, r.End)
			}
		}
		return true
	})
}
