package diag

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lime/internal/source"
)

func sec(buf *source.Buffer, l1, c1, l2, c2 uint32) *source.Section {
	s := source.NewSection(buf, source.Location{Line: l1, Column: c1}, source.Location{Line: l2, Column: c2})
	return &s
}

func TestBagCapAndDropped(t *testing.T) {
	bag := NewBag(2)
	assert.True(t, bag.Add(NewError(SynUnexpectedInput, nil, "a")))
	assert.True(t, bag.Add(NewError(SynUnexpectedInput, nil, "b")))
	assert.False(t, bag.Add(NewError(SynUnexpectedInput, nil, "c")))
	assert.Equal(t, 2, bag.Len())
	assert.Equal(t, 1, bag.Dropped())

	bag.Force(NewError(InternalFailure, nil, "boom"))
	require.Equal(t, 3, bag.Len())
	assert.Equal(t, InternalFailure, bag.Items()[2].Code)

	unbounded := NewBag(0)
	for range 100 {
		unbounded.Add(New(SevInfo, LexInfo, nil, "x"))
	}
	assert.Equal(t, 100, unbounded.Len())
	assert.False(t, unbounded.HasErrors())
}

func TestBagSortIsDeterministic(t *testing.T) {
	a := source.NewBuffer("a.lime", "x\ny\nz")
	b := source.NewBuffer("b.lime", "x")

	bag := NewBag(0)
	bag.Add(NewError(ScopeUnresolvedSymbol, sec(b, 1, 0, 1, 1), "b1"))
	bag.Add(New(SevWarning, ScopeDuplicateSymbol, sec(a, 2, 0, 2, 1), "a2-warn"))
	bag.Add(NewError(ScopeDuplicateSymbol, sec(a, 2, 0, 2, 1), "a2-err"))
	bag.Add(NewError(SynUnexpectedInput, sec(a, 1, 0, 1, 1), "a1"))
	bag.Add(NewError(InternalFailure, nil, "boom"))
	bag.Sort()

	var got []string
	for _, d := range bag.Items() {
		got = append(got, d.Message)
	}
	want := []string{"boom", "a1", "a2-err", "a2-warn", "b1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sorted order mismatch (-want +got):\n%s", diff)
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	buf := source.NewBuffer("m.lime", "fun main() {}\nfun main() {}")
	bag := NewBag(10)
	r := BagReporter{Bag: bag}

	first := source.NewSection(buf, source.Location{Line: 1, Column: 4}, source.Location{Line: 1, Column: 8})
	second := source.NewSection(buf, source.Location{Line: 2, Column: 4}, source.Location{Line: 2, Column: 8})

	b := ReportError(r, ScopeDuplicateSymbol, second, "This symbol already exists in the current scope").
		WithHint(first, "Previously declared here")
	b.Emit()
	b.Emit()

	require.Equal(t, 1, bag.Len())
	d := bag.Items()[0]
	assert.Equal(t, SevError, d.Severity)
	assert.Equal(t, second, *d.Range)
	require.Len(t, d.Hints, 1)
	assert.Equal(t, first, *d.Hints[0].Range)
	assert.Equal(t, "Previously declared here", d.Hints[0].Message)
}

func TestDedupReporter(t *testing.T) {
	buf := source.NewBuffer("d.lime", "x")
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})

	r.Report(LexUnknownChar, SevError, sec(buf, 1, 0, 1, 1), "bad", nil)
	r.Report(LexUnknownChar, SevError, sec(buf, 1, 0, 1, 1), "bad", nil)
	r.Report(LexUnknownChar, SevError, sec(buf, 1, 0, 1, 1), "other", nil)

	assert.Equal(t, 2, bag.Len())
}

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexUnknownChar, "LEX1001"},
		{SynMissingToken, "SYN2002"},
		{ScopeUnresolvedSymbol, "SCO3002"},
		{InternalFailure, "INT9001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.ID())
	}
	assert.Equal(t, "[SCO3001]: Duplicate symbol", ScopeDuplicateSymbol.String())
}
