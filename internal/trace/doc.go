// Package trace records what the lime tools do as leveled, structured
// events.
//
//	lime diag --trace=- --trace-level=phase src/
//	lime diag --trace-mode=ring --trace-level=error src/
//
// A tracer is either a StreamTracer that writes text or NDJSON lines, a
// RingTracer that keeps the last events for a dump at exit, or a Tee of
// both. Nop is used when tracing is off.
//
// Spans nest through parent ids:
//
//	span := trace.Begin(t, trace.ScopePass, "file", parent).With("path", path)
//	defer span.End("")
//
// Every event carries the id of the emitting goroutine so that files
// analysed in parallel can be told apart.
package trace
