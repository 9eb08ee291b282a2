package diag

import (
	"lime/internal/source"
)

// Hint is a secondary message attached to a diagnostic.
type Hint struct {
	Message string
	Range   *source.Section
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Range    *source.Section
	Hints    []Hint
}

func New(sev Severity, code Code, rng *source.Section, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Range:    rng,
		Message:  msg,
	}
}

func NewError(code Code, rng *source.Section, msg string) Diagnostic {
	return New(SevError, code, rng, msg)
}

// At returns a pointer to a copy of sec, for optional range fields.
func At(sec source.Section) *source.Section {
	return &sec
}

func (d Diagnostic) WithHint(rng *source.Section, msg string) Diagnostic {
	d.Hints = append(d.Hints, Hint{Message: msg, Range: rng})
	return d
}

// Location returns the start of the primary range, or source.First when the
// diagnostic has no range.
func (d Diagnostic) Location() source.Location {
	if d.Range == nil {
		return source.First
	}
	return d.Range.Start
}

// BufferID returns the id of the buffer the diagnostic points into, or "".
func (d Diagnostic) BufferID() string {
	if d.Range == nil || d.Range.Buffer == nil {
		return ""
	}
	return d.Range.Buffer.ID()
}
