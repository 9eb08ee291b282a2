// Package symbols implements the scope resolution pass.
//
// Resolve walks a tree once, depth-first and left to right in declared child
// order. Every node is stamped with the environment it resides in. A FunDecl
// opens a child environment for its parameters and body after binding its
// own name in the enclosing one, so direct recursion resolves. Declarations
// bind their name only after their children were visited: an initializer
// never sees the name it initializes. Symbol references look their name up
// recursively and keep the declaration they resolved to.
//
// Conflicts and unresolved names are reported and the walk continues.
package symbols
