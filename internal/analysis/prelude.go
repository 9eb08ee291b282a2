package analysis

import (
	"lime/internal/ast"
	"lime/internal/diag"
	"lime/internal/lexenv"
	"lime/internal/source"
	"lime/internal/symbols"
)

// PreludeID is the buffer id of the built-in unit.
const PreludeID = "<prelude>"

// builtin scalar types with their byte size
var preludeScalars = []struct {
	name string
	size int
}{
	{"unit", 0},
	{"bool", 1},
	{"int", 4},
}

// newPrelude builds the synthetic unit declaring the scalar types and
// returns it together with its frozen environment.
func newPrelude() (*Unit, *lexenv.Env) {
	u := &Unit{
		buf:        source.NewBuffer(PreludeID, ""),
		parseDiags: diag.NewBag(0),
		scopeDiags: diag.NewBag(0),
	}
	b := ast.NewBuilder(u)
	m := b.SyntheticModule()
	for _, s := range preludeScalars {
		b.AppendDecl(m, b.SyntheticTypeDecl(s.name, s.size))
	}

	env := lexenv.New(nil)
	u.result = symbols.Resolve(m, env, symbols.Options{
		Reporter: diag.BagReporter{Bag: u.scopeDiags},
	})
	env.Freeze()

	u.root = m
	u.nodes = b.Nodes()
	u.env = env
	return u, env
}
