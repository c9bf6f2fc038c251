package tracing

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/GriffinCanCode/PelkOS/backend/internal/shared/id"
	"go.uber.org/zap"
)

// Propagation headers shared with the browser
const (
	HeaderTraceID = "X-Trace-ID"
	HeaderSpanID  = "X-Span-ID"
)

// Span kinds
const (
	KindHTTP = "http"
	KindWS   = "ws"
)

const spanBuffer = 1000

// DefaultRecent is how many finished spans Recent can return
const DefaultRecent = 256

// TraceID groups the spans caused by one browser action
type TraceID string

// SpanID identifies a single span
type SpanID string

// Span is one traced request or stream message
type Span struct {
	TraceID   TraceID           `json:"trace_id"`
	SpanID    SpanID            `json:"span_id"`
	ParentID  SpanID            `json:"parent_id,omitempty"`
	Kind      string            `json:"kind"`
	Name      string            `json:"name"`
	DesktopID string            `json:"desktop_id,omitempty"`
	StartTime time.Time         `json:"start_time"`
	Duration  time.Duration     `json:"duration"`
	Status    int               `json:"status,omitempty"`
	Error     string            `json:"error,omitempty"`
	Attrs     map[string]string `json:"attrs,omitempty"`
}

// SetAttr adds an attribute to the span
func (s *Span) SetAttr(key, value string) {
	if s.Attrs == nil {
		s.Attrs = make(map[string]string)
	}
	s.Attrs[key] = value
}

// Tracer hands out spans and keeps the most recent finished ones
type Tracer struct {
	service string
	logger  *zap.Logger
	spans   chan Span
	done    chan struct{}
	once    sync.Once

	mu     sync.Mutex
	recent []Span
	next   int
	filled bool
}

// New creates a tracer and starts its collector
func New(service string, logger *zap.Logger) *Tracer {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tracer{
		service: service,
		logger:  logger,
		spans:   make(chan Span, spanBuffer),
		done:    make(chan struct{}),
		recent:  make([]Span, DefaultRecent),
	}
	go t.collect()
	return t
}

// Start opens a span. A trace already on ctx is continued.
func (t *Tracer) Start(ctx context.Context, kind, name, desktopID string) (*Span, context.Context) {
	traceID := TraceFromContext(ctx)
	if traceID == "" {
		traceID = TraceID(id.NewRequestID())
	}

	span := &Span{
		TraceID:   traceID,
		SpanID:    SpanID(id.NewRequestID()),
		ParentID:  SpanFromContext(ctx),
		Kind:      kind,
		Name:      name,
		DesktopID: desktopID,
		StartTime: time.Now(),
	}

	ctx = context.WithValue(ctx, traceIDKey, traceID)
	ctx = context.WithValue(ctx, spanIDKey, span.SpanID)
	return span, ctx
}

// End closes the span with its outcome and queues it for the collector.
// Spans ended after Close are dropped.
func (t *Tracer) End(span *Span, status int, err error) {
	span.Duration = time.Since(span.StartTime)
	span.Status = status
	if err != nil {
		span.Error = err.Error()
	}

	select {
	case <-t.done:
		return
	default:
	}

	select {
	case t.spans <- *span:
	default:
		t.logger.Warn("Span buffer full, dropping span",
			zap.String("trace_id", string(span.TraceID)),
			zap.String("name", span.Name),
		)
	}
}

// Recent returns up to limit finished spans, newest first
func (t *Tracer) Recent(limit int) []Span {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := t.next
	if t.filled {
		n = len(t.recent)
	}
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]Span, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (t.next - i + len(t.recent)) % len(t.recent)
		out = append(out, t.recent[idx])
	}
	return out
}

// Close stops the collector
func (t *Tracer) Close() {
	t.once.Do(func() { close(t.done) })
}

func (t *Tracer) collect() {
	for {
		select {
		case span := <-t.spans:
			t.record(span)
		case <-t.done:
			return
		}
	}
}

func (t *Tracer) record(span Span) {
	t.mu.Lock()
	t.recent[t.next] = span
	t.next = (t.next + 1) % len(t.recent)
	if t.next == 0 {
		t.filled = true
	}
	t.mu.Unlock()

	fields := []zap.Field{
		zap.String("service", t.service),
		zap.String("kind", span.Kind),
		zap.String("name", span.Name),
		zap.String("trace_id", string(span.TraceID)),
		zap.String("span_id", string(span.SpanID)),
		zap.Duration("duration", span.Duration),
	}
	if span.ParentID != "" {
		fields = append(fields, zap.String("parent_id", string(span.ParentID)))
	}
	if span.DesktopID != "" {
		fields = append(fields, zap.String("desktop_id", span.DesktopID))
	}
	if span.Status != 0 {
		fields = append(fields, zap.Int("status", span.Status))
	}

	if span.Error != "" {
		t.logger.Warn("Span failed", append(fields, zap.String("error", span.Error))...)
		return
	}
	t.logger.Debug("Span finished", fields...)
}

type contextKey string

const (
	traceIDKey contextKey = "trace_id"
	spanIDKey  contextKey = "span_id"
)

// FromHeaders puts a trace continued by the browser on ctx
func FromHeaders(ctx context.Context, h http.Header) context.Context {
	if v := h.Get(HeaderTraceID); v != "" {
		ctx = context.WithValue(ctx, traceIDKey, TraceID(v))
	}
	if v := h.Get(HeaderSpanID); v != "" {
		ctx = context.WithValue(ctx, spanIDKey, SpanID(v))
	}
	return ctx
}

// TraceFromContext returns the trace id on ctx, if any
func TraceFromContext(ctx context.Context) TraceID {
	v, _ := ctx.Value(traceIDKey).(TraceID)
	return v
}

// SpanFromContext returns the current span id on ctx, if any
func SpanFromContext(ctx context.Context) SpanID {
	v, _ := ctx.Value(spanIDKey).(SpanID)
	return v
}
