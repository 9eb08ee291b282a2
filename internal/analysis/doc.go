// Package analysis ties the front-end together. A Context holds the
// built-in prelude and a cache of units keyed by buffer id; each Unit is one
// buffer parsed into a tree and resolved against a module scope that
// overlays the prelude.
//
// Parsing and resolution never fail as a whole: problems become
// diagnostics on the unit, and a panic inside either phase is reported as a
// single InternalFailure diagnostic.
package analysis
