package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"off", "error", "phase", "detail", "debug"} {
		lvl, err := ParseLevel(strings.ToUpper(name))
		require.NoError(t, err)
		assert.Equal(t, name, lvl.String())
	}
	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestLevelAllows(t *testing.T) {
	assert.False(t, LevelOff.Allows(ScopeDriver))
	assert.False(t, LevelError.Allows(ScopeDriver))
	assert.True(t, LevelPhase.Allows(ScopePass))
	assert.False(t, LevelPhase.Allows(ScopeUnit))
	assert.True(t, LevelDetail.Allows(ScopeUnit))
	assert.False(t, LevelDetail.Allows(ScopeNode))
	assert.True(t, LevelDebug.Allows(ScopeNode))
}

func TestErrorLevelKeepsOnlyFailures(t *testing.T) {
	ring := NewRingTracer(8, LevelError)
	span := Begin(ring, ScopeDriver, "diagnose-dir", 0)
	Fail(ring, ScopeUnit, "panic", "boom", span.ID())
	span.End("")

	events := ring.Snapshot()
	require.Len(t, events, 1)
	assert.Equal(t, KindError, events[0].Kind)
	assert.Equal(t, "boom", events[0].Detail)
}

func TestRingTracerWraps(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopeNode, name, "", 0)
	}
	events := ring.Snapshot()
	require.Len(t, events, 3)
	assert.Equal(t, "c", events[0].Name)
	assert.Equal(t, "d", events[1].Name)
	assert.Equal(t, "e", events[2].Name)

	var out bytes.Buffer
	require.NoError(t, ring.Dump(&out, FormatText))
	assert.Equal(t, 3, strings.Count(out.String(), "\n"))
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)

	span := Begin(st, ScopePass, "file", 0)
	span.With("path", "main.lime").With("jobs", "2").With("path", "other.lime").End("ok")
	Point(st, ScopeUnit, "filtered", "", span.ID())
	require.NoError(t, st.Flush())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var end jsonEvent
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &end))
	assert.Equal(t, "end", end.Kind)
	assert.Equal(t, "pass", end.Scope)
	assert.Equal(t, "file", end.Name)
	assert.Equal(t, "ok", end.Detail)
	assert.Equal(t, map[string]string{"jobs": "2", "path": "other.lime"}, end.Attrs)
	assert.NotZero(t, end.GID)
}

func TestTextEncoding(t *testing.T) {
	ev := &Event{
		Kind:   KindEnd,
		Scope:  ScopeUnit,
		Name:   "parse",
		Detail: "errors=0",
		Parent: 3,
		Attrs:  []Attr{{"a", "1"}, {"b", "2"}},
	}
	out := string(Encode(ev, FormatText))
	assert.Contains(t, out, "  <- unit/parse (errors=0) a=1 b=2\n")
}

func TestTeeFansOut(t *testing.T) {
	r1 := NewRingTracer(8, LevelDebug)
	r2 := NewRingTracer(8, LevelDebug)
	tt := Tee(LevelDebug, r1, r2)

	Point(tt, ScopeDriver, "start", "", 0)
	assert.Len(t, r1.Snapshot(), 1)
	assert.Len(t, r2.Snapshot(), 1)
	assert.Len(t, Rings(tt), 2)
	assert.NoError(t, tt.Close())
}

func TestDisabledSpanKeepsParent(t *testing.T) {
	ring := NewRingTracer(8, LevelPhase)
	span := Begin(ring, ScopeNode, "ident", 42)
	assert.Equal(t, uint64(42), span.ID())
	assert.Zero(t, span.End(""))
	assert.Empty(t, ring.Snapshot())
}

func TestContext(t *testing.T) {
	assert.Equal(t, Nop, FromContext(context.Background()))

	ring := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	assert.Same(t, ring, FromContext(ctx))
}

func TestNew(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	require.NoError(t, err)
	assert.False(t, tr.Enabled())

	path := filepath.Join(t.TempDir(), "trace.ndjson")
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, OutputPath: path})
	require.NoError(t, err)
	Point(tr, ScopeDriver, "start", "", 0)
	require.Len(t, Rings(tr), 1)
	require.NoError(t, tr.Close())

	_, err = ParseMode("ring")
	assert.NoError(t, err)
	_, err = ParseMode("tape")
	assert.Error(t, err)
}

func TestHeartbeat(t *testing.T) {
	ring := NewRingTracer(64, LevelPhase)
	stop := StartHeartbeat(ring, time.Millisecond)
	require.Eventually(t, func() bool { return len(ring.Snapshot()) > 0 }, time.Second, time.Millisecond)
	stop()
	stop()
	assert.Equal(t, KindHeartbeat, ring.Snapshot()[0].Kind)

	StartHeartbeat(Nop, time.Millisecond)()
}

func TestEventsCarryGoroutineID(t *testing.T) {
	ring := NewRingTracer(8, LevelDebug)
	Point(ring, ScopeDriver, "main", "", 0)
	done := make(chan struct{})
	go func() {
		defer close(done)
		Point(ring, ScopeDriver, "worker", "", 0)
	}()
	<-done

	events := ring.Snapshot()
	require.Len(t, events, 2)
	assert.NotZero(t, events[0].GID)
	assert.NotZero(t, events[1].GID)
	assert.NotEqual(t, events[0].GID, events[1].GID)
}
