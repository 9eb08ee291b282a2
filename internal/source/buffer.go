package source

import (
	"crypto/sha256"
	"fmt"
	"hash/maphash"
	"strings"

	"fortio.org/safecast"
)

var bufferSeed = maphash.MakeSeed()

// Buffer is an immutable, identified text buffer.
// Two buffers are the same buffer when their ids match; content is not compared.
type Buffer struct {
	id      string
	content string
	lineIdx []uint32
	hash    [32]byte
	flags   BufferFlags
}

// NewBuffer wraps content under the given id. Content is taken as is.
func NewBuffer(id, content string) *Buffer {
	return newBuffer(id, content, BufferVirtual)
}

func newBuffer(id, content string, flags BufferFlags) *Buffer {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("buffer %q too large: %w", id, err))
	}
	return &Buffer{
		id:      id,
		content: content,
		lineIdx: buildLineIndex(content),
		hash:    sha256.Sum256([]byte(content)),
		flags:   flags,
	}
}

func (b *Buffer) ID() string { return b.id }
func (b *Buffer) Content() string { return b.content }
func (b *Buffer) Flags() BufferFlags { return b.flags }
func (b *Buffer) ContentHash() [32]byte { return b.hash }

// Len returns the content length in bytes.
func (b *Buffer) Len() uint32 {
	return uint32(len(b.content))
}

// Equal reports whether b and other name the same buffer.
func (b *Buffer) Equal(other *Buffer) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.id == other.id
}

// Hash is a function of the id alone, consistent with Equal.
func (b *Buffer) Hash() uint64 {
	return maphash.String(bufferSeed, b.id)
}

func (b *Buffer) String() string {
	return b.id
}

// LineCount returns the number of lines; an empty buffer has one empty line.
func (b *Buffer) LineCount() int {
	return len(b.lineIdx) + 1
}

// Line returns the 1-based line without its terminator, or "" when out of range.
func (b *Buffer) Line(n int) string {
	if n < 1 || n > b.LineCount() {
		return ""
	}
	start := lineStart(b.lineIdx, n-1)
	end := b.Len()
	if n-1 < len(b.lineIdx) {
		end = b.lineIdx[n-1]
	}
	return b.content[start:end]
}

// Lines returns count lines starting at the 1-based line start.
// The result is clipped to the buffer.
func (b *Buffer) Lines(start, count int) []string {
	if start < 1 {
		count += start - 1
		start = 1
	}
	if count <= 0 || start > b.LineCount() {
		return nil
	}
	last := min(start+count-1, b.LineCount())
	out := make([]string, 0, last-start+1)
	for n := start; n <= last; n++ {
		out = append(out, b.Line(n))
	}
	return out
}

// Location converts a byte offset into a line/column position.
func (b *Buffer) Location(off uint32) Location {
	return toLocation(b.content, b.lineIdx, off)
}

// Offset converts a position back into a byte offset. Columns past the
// end of the line clamp to the line end.
func (b *Buffer) Offset(loc Location) uint32 {
	if loc.Line < 1 {
		return 0
	}
	if int(loc.Line) > b.LineCount() {
		return b.Len()
	}
	line := b.Line(int(loc.Line))
	start := lineStart(b.lineIdx, int(loc.Line)-1)
	col := uint32(0)
	for i := range line {
		if col == loc.Column {
			return start + uint32(i)
		}
		col++
	}
	return start + uint32(len(line))
}

// Section converts a byte span into a normalised section of this buffer.
func (b *Buffer) Section(span Span) Section {
	return NewSection(b, b.Location(span.Start), b.Location(span.End))
}

// Text returns the bytes covered by span, clipped to the buffer.
func (b *Buffer) Text(span Span) string {
	end := min(span.End, b.Len())
	start := min(span.Start, end)
	return b.content[start:end]
}

// Snippet renders a short single-line excerpt, used in debug output.
func (b *Buffer) Snippet(span Span, limit int) string {
	text := strings.ReplaceAll(b.Text(span), "\n", "\\n")
	if limit > 0 && len(text) > limit {
		text = text[:limit] + "..."
	}
	return text
}
