package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

// Счётчики общие для всех трейсеров процесса.
var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// goroutineID parses "goroutine 123 [running]:". ParseDir runs one document
// per goroutine, so the id tells interleaved doc:<path> spans apart.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	rest, ok := bytes.CutPrefix(buf[:n], []byte("goroutine "))
	if !ok {
		return 0
	}
	digits, _, _ := bytes.Cut(rest, []byte(" "))
	gid, err := strconv.ParseUint(string(digits), 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// Span tracks one open pipeline step; End emits the closing event with
// whatever extras were attached meanwhile.
type Span struct {
	tracer   Tracer
	id       uint64
	parentID uint64
	gid      uint64
	scope    Scope
	name     string
	started  time.Time
	extra    map[string]string
}

// Begin opens a span under parent (0 for a root span). A disabled tracer or
// a scope below the tracer's level yields an inert span.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{tracer: Nop}
	}
	s := &Span{
		tracer:   t,
		id:       spanCounter.Add(1),
		parentID: parent,
		gid:      goroutineID(),
		scope:    scope,
		name:     name,
		started:  time.Now(),
	}
	t.Emit(s.event(KindSpanBegin, s.started, name, ""))
	return s
}

func (s *Span) live() bool { return s != nil && s.tracer != nil && s.tracer.Enabled() }

func (s *Span) event(kind Kind, at time.Time, name, detail string) *Event {
	return &Event{
		Time:     at,
		Seq:      seqCounter.Add(1),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parentID,
		GID:      s.gid,
		Name:     name,
		Detail:   detail,
	}
}

// End emits the closing event and returns the span's duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	now := time.Now()
	ev := s.event(KindSpanEnd, now, s.name, detail)
	ev.Extra = s.extra
	s.tracer.Emit(ev)
	return now.Sub(s.started)
}

// EndErr closes the span with err as detail and error=true, or cleanly when err is nil.
func (s *Span) EndErr(err error) time.Duration {
	if err == nil {
		return s.End("")
	}
	return s.WithExtra("error", "true").End(err.Error())
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 4)
	}
	s.extra[key] = value
	return s
}

// WithInt is WithExtra for counters such as bytes, tokens and nodes.
func (s *Span) WithInt(key string, v int64) *Span {
	if !s.live() {
		return s
	}
	return s.WithExtra(key, strconv.FormatInt(v, 10))
}

// Point emits an instant event under the span.
func (s *Span) Point(name, detail string) {
	if !s.live() {
		return
	}
	s.tracer.Emit(s.event(KindPoint, time.Now(), name, detail))
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}
