package diag

import "lime/internal/source"

type dedupKey struct {
	code  Code
	sev   Severity
	buf   string
	start source.Location
	end   source.Location
	msg   string
}

// DedupReporter wraps another Reporter and suppresses duplicate diagnostics
// with the same code, severity, range and message.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

// NewDedupReporter returns a Reporter that filters out duplicates while
// forwarding unique diagnostics to the provided reporter.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[dedupKey]struct{}),
	}
}

func (r *DedupReporter) Report(code Code, sev Severity, rng *source.Section, msg string, hints []Hint) {
	if r == nil {
		return
	}
	key := dedupKey{code: code, sev: sev, msg: msg}
	if rng != nil {
		key.start, key.end = rng.Start, rng.End
		if rng.Buffer != nil {
			key.buf = rng.Buffer.ID()
		}
	}
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, rng, msg, hints)
	}
}
