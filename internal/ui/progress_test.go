package ui

import (
	"strings"
	"testing"

	"lime/internal/driver"
)

func TestProgressTracksEvents(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("lime diag", []string{"a.lime", "b.lime"}, events).(*progressModel)

	m.applyEvent(driver.Event{Path: "a.lime", Status: driver.StatusWorking})
	if got := m.fraction(); got != 0.25 {
		t.Errorf("fraction = %v, want 0.25", got)
	}
	m.applyEvent(driver.Event{Path: "a.lime", Status: driver.StatusDone, Errors: 2})
	m.applyEvent(driver.Event{Path: "b.lime", Status: driver.StatusCached})
	m.applyEvent(driver.Event{Path: "unknown.lime", Status: driver.StatusFailed})
	if got := m.fraction(); got != 1 {
		t.Errorf("fraction = %v, want 1", got)
	}

	m.Update(doneMsg{})
	view := m.View()
	if !strings.Contains(view, "done: lime diag") {
		t.Errorf("header missing:\n%s", view)
	}
	for _, want := range []string{"2 errors", "a.lime", "cached", "b.lime"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short.lime", 20, "short.lime"},
		{"very/long/path/file.lime", 10, "very/lo..."},
		{"abcdef", 2, "ab"},
		{"日本語のファイル", 7, "日本..."},
	}
	for _, c := range cases {
		if got := truncate(c.in, c.width); got != c.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", c.in, c.width, got, c.want)
		}
	}
}
