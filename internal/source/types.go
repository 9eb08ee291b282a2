package source

import "fmt"

// BufferFlags encodes how a buffer's content was normalised on load.
type BufferFlags uint8

const (
	// BufferVirtual marks a buffer created from memory (test, stdin, editor).
	BufferVirtual BufferFlags = 1 << iota
	BufferHadBOM
	BufferNormalizedCRLF
)

// Location is a human-readable position: 1-based line, 0-based column in runes.
type Location struct {
	Line   uint32
	Column uint32
}

// First is the position given to synthetic nodes that have no real origin.
var First = Location{Line: 1, Column: 0}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Before reports whether l is strictly before other.
func (l Location) Before(other Location) bool {
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Column < other.Column
}
