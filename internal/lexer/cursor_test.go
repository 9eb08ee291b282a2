package lexer

import (
	"testing"

	"lime/internal/source"
)

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(source.NewBuffer("test.lime", "a\nb"))

	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("Expected peek %q, got %q", want, got)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Expected bump %q, got %q", want, got)
		}
	}
	if !cursor.EOF() {
		t.Error("Expected EOF at end")
	}
	if cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Error("Expected zero bytes after EOF")
	}
}

func TestMarkSpanReset(t *testing.T) {
	cursor := NewCursor(source.NewBuffer("test.lime", "const"))
	m := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	sp := cursor.SpanFrom(m)
	if sp.Start != 0 || sp.End != 2 || cursor.Text(sp) != "co" {
		t.Fatalf("unexpected span %v (%q)", sp, cursor.Text(sp))
	}
	cursor.Reset(m)
	if cursor.Off != 0 {
		t.Fatalf("reset failed: %d", cursor.Off)
	}
	if !cursor.Eat('c') || cursor.Eat('x') {
		t.Fatal("Eat mismatch")
	}
}

func TestPeek2(t *testing.T) {
	cursor := NewCursor(source.NewBuffer("test.lime", "->"))
	b0, b1, ok := cursor.Peek2()
	if !ok || b0 != '-' || b1 != '>' {
		t.Fatalf("Peek2 = %q %q %v", b0, b1, ok)
	}
	cursor.Bump()
	if _, _, ok := cursor.Peek2(); ok {
		t.Fatal("Peek2 must fail with one byte left")
	}
}
