// Package lexenv implements lexical environments: name to declaration
// tables chained to a parent scope.
//
// An Env binds each name at most once. Insert reports a conflict as an
// *AlreadyBoundError carrying the earlier binding so the caller can point at
// both declarations. Lookup either stays in the receiving scope (Local) or
// walks the parent chain outwards (Recursive), so the nearest enclosing
// binding wins.
//
// A frozen Env (the prelude) rejects inserts with ErrFrozen and is safe for
// concurrent lookups from any number of units.
package lexenv

import (
	"errors"
	"fmt"
	"strings"

	"lime/internal/source"
)

// Binding is the declaration a name is bound to.
type Binding interface {
	Range() source.Section
}

// LookupMode selects how far Lookup searches.
type LookupMode uint8

const (
	// Local searches the receiving scope only.
	Local LookupMode = iota
	// Recursive walks the parent chain until the name is found.
	Recursive
)

func (m LookupMode) String() string {
	if m == Recursive {
		return "recursive"
	}
	return "local"
}

// ErrFrozen is returned by Insert on a frozen environment.
var ErrFrozen = errors.New("lexical environment is frozen")

// AlreadyBoundError reports a second binding of Name in one scope.
type AlreadyBoundError struct {
	Name     string
	Previous Binding
}

func (e *AlreadyBoundError) Error() string {
	return fmt.Sprintf("symbol %q is already bound in this scope", e.Name)
}

type Env struct {
	parent   *Env
	bindings map[string]Binding
	names    []string // порядок вставки для детерминированного вывода
	children []*Env
	frozen   bool
	// flat: локальный поиск и проверка конфликтов видят также привязки parent
	flat bool
}

// New creates an empty environment under parent; parent may be nil.
func New(parent *Env) *Env {
	env := &Env{
		parent:   parent,
		bindings: make(map[string]Binding),
	}
	if parent != nil && !parent.frozen {
		parent.children = append(parent.children, env)
	}
	return env
}

// NewOverlay creates a scope that shares one namespace with base: names bound
// in base count as bound here for Local lookups and conflicts, while inserts
// land in the overlay and never touch base. Used for module scopes seeded by
// the prelude.
func NewOverlay(base *Env) *Env {
	env := New(base)
	env.flat = base != nil
	return env
}

func (e *Env) Parent() *Env { return e.parent }
func (e *Env) Children() []*Env { return e.children }
func (e *Env) Frozen() bool { return e.frozen }

// Freeze forbids further inserts into e.
func (e *Env) Freeze() {
	e.frozen = true
}

// Len returns the number of names bound directly in e.
func (e *Env) Len() int {
	return len(e.names)
}

// Names returns the names bound directly in e, in insertion order.
func (e *Env) Names() []string {
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}

// Insert binds name to decl in e.
func (e *Env) Insert(name string, decl Binding) error {
	if e.frozen {
		return ErrFrozen
	}
	if prev, ok := e.Lookup(name, Local); ok {
		return &AlreadyBoundError{Name: name, Previous: prev}
	}
	e.bindings[name] = decl
	e.names = append(e.names, name)
	return nil
}

// Lookup returns the declaration bound to name; absence is not an error.
func (e *Env) Lookup(name string, mode LookupMode) (Binding, bool) {
	if mode == Local {
		return e.lookupLocal(name)
	}
	for env := e; env != nil; env = env.parent {
		if b, ok := env.bindings[name]; ok {
			return b, true
		}
	}
	return nil, false
}

func (e *Env) lookupLocal(name string) (Binding, bool) {
	if b, ok := e.bindings[name]; ok {
		return b, true
	}
	if e.flat {
		b, ok := e.parent.bindings[name]
		return b, ok
	}
	return nil, false
}

// Depth returns the number of ancestors of e.
func (e *Env) Depth() int {
	d := 0
	for env := e.parent; env != nil; env = env.parent {
		d++
	}
	return d
}

// String renders bindings and children recursively in insertion order.
func (e *Env) String() string {
	var b strings.Builder
	e.write(&b)
	return b.String()
}

func (e *Env) write(b *strings.Builder) {
	b.WriteString("LexEnv(bindings=[")
	for i, name := range e.names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		if sec := e.bindings[name].Range(); sec.Buffer != nil {
			fmt.Fprintf(b, "@%s", sec.Start)
		}
	}
	b.WriteString("], children=[")
	for i, child := range e.children {
		if i > 0 {
			b.WriteString(", ")
		}
		child.write(b)
	}
	b.WriteString("])")
}
