package parser

import (
	"fmt"
	"strings"
	"testing"

	"lime/internal/ast"
	"lime/internal/diag"
	"lime/internal/source"
)

type testOwner struct{ buf *source.Buffer }

func (o testOwner) Buffer() *source.Buffer { return o.buf }

// parseSource разбирает input и возвращает модуль вместе с диагностиками.
func parseSource(t *testing.T, input string) (*ast.Module, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(0)
	res := Parse(testOwner{buf: source.NewBuffer("test.lime", input)}, Options{
		Reporter: diag.BagReporter{Bag: bag},
	})
	if res.Module == nil {
		t.Fatalf("Parse(%q) returned nil module", input)
	}
	return res.Module, bag
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// firstConstValue возвращает значение первой const декларации.
func firstConstValue(t *testing.T, m *ast.Module) ast.Expr {
	t.Helper()
	if m.Len() == 0 {
		t.Fatalf("module is empty")
	}
	decl, ok := m.At(0).(*ast.ConstDecl)
	if !ok {
		t.Fatalf("first decl is %s, want ConstDecl", ast.NodeName(m.At(0)))
	}
	return decl.Value
}
