package trace

import (
	"bufio"
	"errors"
	"io"
	"slices"
	"sync"
)

// StreamTracer encodes events to a writer as they arrive.
type StreamTracer struct {
	mu     sync.Mutex
	w      *bufio.Writer
	closer io.Closer
	level  Level
	format Format
}

// NewStreamTracer writes to w; the caller keeps ownership of w.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return newStreamTracer(w, nil, level, format)
}

func newStreamTracer(w io.Writer, closer io.Closer, level Level, format Format) *StreamTracer {
	if format == FormatAuto {
		format = FormatText
	}
	return &StreamTracer{w: bufio.NewWriter(w), closer: closer, level: level, format: format}
}

func (s *StreamTracer) Emit(ev *Event) {
	if ev == nil || !ev.passes(s.level) {
		return
	}
	line := Encode(ev, s.format)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.w.Write(line)
	// ошибки и heartbeat должны быть видны сразу, даже если процесс завис
	if ev.Kind == KindError || ev.Kind == KindHeartbeat {
		_ = s.w.Flush()
	}
}

func (s *StreamTracer) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Flush()
}

func (s *StreamTracer) Close() error {
	err := s.Flush()
	if s.closer != nil {
		err = errors.Join(err, s.closer.Close())
		s.closer = nil
	}
	return err
}

func (s *StreamTracer) Level() Level  { return s.level }
func (s *StreamTracer) Enabled() bool { return s.level > LevelOff }

// RingTracer keeps the most recent events in memory for a post-mortem dump.
type RingTracer struct {
	mu     sync.Mutex
	events []Event
	size   int
	next   int // slot to overwrite once events is full
	level  Level
}

func NewRingTracer(size int, level Level) *RingTracer {
	if size <= 0 {
		size = defaultRingSize
	}
	return &RingTracer{events: make([]Event, 0, size), size: size, level: level}
}

func (r *RingTracer) Emit(ev *Event) {
	if ev == nil || !ev.passes(r.level) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) < r.size {
		r.events = append(r.events, *ev)
		return
	}
	r.events[r.next] = *ev
	r.next = (r.next + 1) % r.size
}

// Snapshot returns the retained events, oldest first.
func (r *RingTracer) Snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Concat(r.events[r.next:], r.events[:r.next])
}

// Dump writes the retained events to w.
func (r *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range r.Snapshot() {
		if _, err := w.Write(Encode(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (r *RingTracer) Flush() error  { return nil }
func (r *RingTracer) Close() error  { return nil }
func (r *RingTracer) Level() Level  { return r.level }
func (r *RingTracer) Enabled() bool { return r.level > LevelOff }

type tee struct {
	level   Level
	tracers []Tracer
}

// Tee fans events out to every tracer.
func Tee(level Level, tracers ...Tracer) Tracer {
	return &tee{level: level, tracers: tracers}
}

func (t *tee) Emit(ev *Event) {
	for _, tr := range t.tracers {
		tr.Emit(ev)
	}
}

func (t *tee) Flush() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Flush())
	}
	return errors.Join(errs...)
}

func (t *tee) Close() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Close())
	}
	return errors.Join(errs...)
}

func (t *tee) Level() Level  { return t.level }
func (t *tee) Enabled() bool { return t.level > LevelOff }

// Rings returns the ring buffers reachable from t.
func Rings(t Tracer) []*RingTracer {
	switch tt := t.(type) {
	case *RingTracer:
		return []*RingTracer{tt}
	case *tee:
		var out []*RingTracer
		for _, inner := range tt.tracers {
			out = append(out, Rings(inner)...)
		}
		return out
	}
	return nil
}
