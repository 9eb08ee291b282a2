package trace

import (
	"fmt"
	"time"
)

// Kind is the type of a trace event.
type Kind uint8

const (
	KindBegin Kind = iota + 1
	KindEnd
	KindPoint
	// KindError is a failure; it passes every level except off.
	KindError
	KindHeartbeat
)

var kindNames = [...]string{"unknown", "begin", "end", "point", "error", "heartbeat"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[0]
}

// Scope is the granularity of an event; smaller values are coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // batch of files
	ScopePass                    // one file: load, analyse, cache
	ScopeUnit                    // inside a unit: parse, resolve
	ScopeNode                    // declarations and references
)

var scopeNames = [...]string{"unknown", "driver", "pass", "unit", "node"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return scopeNames[0]
}

func ParseScope(s string) (Scope, error) {
	for i := 1; i < len(scopeNames); i++ {
		if scopeNames[i] == s {
			return Scope(i), nil
		}
	}
	return 0, fmt.Errorf("invalid trace scope: %q (expected: driver|pass|unit|node)", s)
}

// Attr is a key/value annotation of an event.
type Attr struct {
	Key   string
	Value string
}

// Event is one trace record.
type Event struct {
	Time   time.Time
	Seq    uint64 // global, monotonic
	Kind   Kind
	Scope  Scope
	Span   uint64 // 0 for points
	Parent uint64 // 0 at the root
	GID    uint64 // emitting goroutine
	Name   string // "unit", "parse", "resolve", "file", ...
	Detail string
	Attrs  []Attr // sorted by key
}

// passes applies the level filter to ev.
func (ev *Event) passes(l Level) bool {
	switch ev.Kind {
	case KindHeartbeat:
		return l > LevelOff
	case KindError:
		return l >= LevelError
	}
	return l.Allows(ev.Scope)
}
