package trace

import (
	"fmt"
	"strings"
)

// Level controls how much is traced. Each level includes the previous ones.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // only failures; the ring keeps them for a dump
	LevelPhase        // driver and pass boundaries
	LevelDetail       // per-unit events
	LevelDebug        // declarations and references
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts a level name in any case.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// Allows reports whether span and point events of scope pass the level.
func (l Level) Allows(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopePass
	case LevelDetail:
		return scope <= ScopeUnit
	case LevelDebug:
		return true
	}
	return false
}
