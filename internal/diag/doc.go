// Package diag defines the diagnostic model shared by the lexer, parser and
// scope resolution pass.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Error, Warning or Info.
//   - Code – compact numeric identifier (see codes.go) with a stable string form.
//   - Message – human oriented text; keep it short.
//   - Range – optional source.Section the diagnostic points at.
//   - Hints – ordered secondary messages, each with an optional range
//     (e.g. "Previously declared here").
//
// # Emitting diagnostics
//
// Phases emit through a Reporter so that storage stays decoupled from the
// producer. ReportError/ReportWarning/ReportInfo return a ReportBuilder that
// collects hints before Emit. BagReporter stores diagnostics into a Bag,
// which supports a cap, sorting and deduplication.
//
// Rendering lives in internal/diagfmt; this package performs no IO.
package diag
