package trace

import (
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/petermattis/goid"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

func newEvent(kind Kind, scope Scope, name string) Event {
	return Event{
		Time:  time.Now(),
		Seq:   seqCounter.Add(1),
		Kind:  kind,
		Scope: scope,
		GID:   uint64(goid.Get()),
		Name:  name,
	}
}

func enabled(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().Allows(scope)
}

// Span is an open begin/end pair. A span filtered out by the level is inert
// and reports its parent as ID.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	gid     uint64
	scope   Scope
	name    string
	started time.Time
	attrs   []Attr
}

// Begin emits the begin event of a new span under parent (0 for a root).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !enabled(t, scope) {
		return &Span{parent: parent}
	}
	ev := newEvent(KindBegin, scope, name)
	ev.Span = spanCounter.Add(1)
	ev.Parent = parent
	t.Emit(&ev)
	return &Span{
		tracer:  t,
		id:      ev.Span,
		parent:  parent,
		gid:     ev.GID,
		scope:   scope,
		name:    name,
		started: ev.Time,
	}
}

// With attaches an attribute to the end event, replacing an earlier value
// of the same key.
func (s *Span) With(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	i, found := slices.BinarySearchFunc(s.attrs, key, func(a Attr, k string) int {
		return strings.Compare(a.Key, k)
	})
	if found {
		s.attrs[i].Value = value
	} else {
		s.attrs = slices.Insert(s.attrs, i, Attr{Key: key, Value: value})
	}
	return s
}

// End emits the end event and returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	ev := newEvent(KindEnd, s.scope, s.name)
	ev.Span = s.id
	ev.Parent = s.parent
	ev.GID = s.gid
	ev.Detail = detail
	ev.Attrs = s.attrs
	s.tracer.Emit(&ev)
	return ev.Time.Sub(s.started)
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	if s.id == 0 {
		return s.parent
	}
	return s.id
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if !enabled(t, scope) {
		return
	}
	ev := newEvent(KindPoint, scope, name)
	ev.Parent = parent
	ev.Detail = detail
	t.Emit(&ev)
}

// Fail records a failure. It is emitted at every level but off, so a ring
// kept at LevelError still holds it.
func Fail(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t == nil || !t.Enabled() {
		return
	}
	ev := newEvent(KindError, scope, name)
	ev.Parent = parent
	ev.Detail = detail
	t.Emit(&ev)
}
