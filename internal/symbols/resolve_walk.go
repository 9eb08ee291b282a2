package symbols

import (
	"lime/internal/ast"
	"lime/internal/lexenv"
)

func (r *resolver) walk(n ast.Node, env *lexenv.Env) {
	if n == nil {
		return
	}
	n.SetEnv(env)

	switch n := n.(type) {
	case *ast.FunDecl:
		r.walkFun(n, env)
	case *ast.ConstDecl, *ast.VarDecl, *ast.Param, *ast.TypeDecl:
		// имя связывается только после обхода детей
		r.walkChildren(n, env)
		r.declare(env, n.(ast.Decl))
	case *ast.VarAffect:
		r.walkAffect(n, env)
	case ast.Ref:
		r.resolve(env, n)
	default:
		r.walkChildren(n, env)
	}
}

func (r *resolver) walkChildren(n ast.Node, env *lexenv.Env) {
	for _, c := range n.Children() {
		if c.Node != nil {
			r.walk(c.Node, env)
		}
	}
}

// walkFun binds the function name in the enclosing scope first, then visits
// the signature and body in a fresh scope.
func (r *resolver) walkFun(fn *ast.FunDecl, env *lexenv.Env) {
	scope := lexenv.New(env)
	fn.SetScope(scope)
	r.declare(env, fn)

	if fn.Name != nil {
		fn.Name.SetEnv(env)
	}
	if fn.Params != nil {
		r.walk(fn.Params, scope)
	}
	r.walk(fn.ReturnType, scope)
	r.walk(fn.Body, scope)
}

// walkAffect resolves the assigned name, then the value.
func (r *resolver) walkAffect(a *ast.VarAffect, env *lexenv.Env) {
	if a.Name != nil {
		a.Name.SetEnv(env)
		if decl, ok := r.lookup(env, a.Name.Text, a.Name.Range()); ok {
			a.BindTarget(decl)
		}
	}
	r.walk(a.Value, env)
}
