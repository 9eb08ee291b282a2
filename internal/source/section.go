package source

import "fmt"

// Section is a range of positions inside one buffer. Start never follows End.
type Section struct {
	Buffer *Buffer
	Start  Location
	End    Location
}

// NewSection builds a section, swapping the bounds when start lies after end.
func NewSection(buf *Buffer, start, end Location) Section {
	if end.Before(start) {
		start, end = end, start
	}
	return Section{Buffer: buf, Start: start, End: end}
}

// Synthetic returns the section used for nodes without a source origin.
func Synthetic(buf *Buffer) Section {
	return Section{Buffer: buf, Start: First, End: First}
}

// Lines returns the full text of every line the section touches.
func (s Section) Lines() []string {
	if s.Buffer == nil {
		return nil
	}
	return s.Buffer.Lines(int(s.Start.Line), int(s.End.Line-s.Start.Line)+1)
}

// Cover returns the smallest section spanning s and other. Sections of
// different buffers are not merged.
func (s Section) Cover(other Section) Section {
	if !s.Buffer.Equal(other.Buffer) {
		return s
	}
	if other.Start.Before(s.Start) {
		s.Start = other.Start
	}
	if s.End.Before(other.End) {
		s.End = other.End
	}
	return s
}

// Contains reports whether loc falls inside the section, end inclusive.
func (s Section) Contains(loc Location) bool {
	return !loc.Before(s.Start) && !s.End.Before(loc)
}

func (s Section) String() string {
	id := "<nil>"
	if s.Buffer != nil {
		id = s.Buffer.ID()
	}
	return fmt.Sprintf("%s:%s-%s", id, s.Start, s.End)
}
