package telemetry

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/fpdgen/internal/core/ports"
)

// LogBufferSize is how many output chunks may wait for the renderer before new ones are dropped.
const LogBufferSize = 4096

type outputChunk struct {
	stepID string
	data   []byte
}

// OTelTracer is a ports.Tracer on the global OpenTelemetry provider. Tool output
// reaches the renderer through one delivery goroutine so the renderer sees it in order.
type OTelTracer struct {
	tracer trace.Tracer

	mu       sync.RWMutex
	renderer ports.Renderer

	output    chan outputChunk
	delivered chan struct{}
	closeOnce sync.Once
}

// NewOTelTracer returns a tracer named name. Call Shutdown to stop output delivery.
func NewOTelTracer(name string) *OTelTracer {
	t := &OTelTracer{
		tracer:    otel.Tracer(name),
		output:    make(chan outputChunk, LogBufferSize),
		delivered: make(chan struct{}),
	}
	go t.deliver()
	return t
}

// WithRenderer attaches the renderer that receives plans and tool output.
func (t *OTelTracer) WithRenderer(r ports.Renderer) *OTelTracer {
	t.mu.Lock()
	t.renderer = r
	t.mu.Unlock()
	return t
}

func (t *OTelTracer) currentRenderer() ports.Renderer {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.renderer
}

func (t *OTelTracer) deliver() {
	defer close(t.delivered)
	for chunk := range t.output {
		if r := t.currentRenderer(); r != nil {
			r.OnStepLog(chunk.stepID, chunk.data)
		}
	}
}

// Shutdown waits until queued output has reached the renderer or ctx ends.
func (t *OTelTracer) Shutdown(ctx context.Context) error {
	t.closeOnce.Do(func() { close(t.output) })
	select {
	case <-t.delivered:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start opens a span. With a renderer attached, output written to the span is batched
// and forwarded as step logs.
func (t *OTelTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	var cfg ports.SpanConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, span := t.tracer.Start(ctx, name)
	if cfg.Parent != "" {
		span.SetAttributes(attribute.String("parent_step", cfg.Parent))
	}

	s := &OTelSpan{span: span}
	if t.currentRenderer() != nil {
		id := span.SpanContext().SpanID().String()
		s.batcher = NewOutputBatcher(0, 0, func(data []byte) {
			select {
			case t.output <- outputChunk{stepID: id, data: data}:
			default:
				// A slow renderer loses output instead of stalling the tool.
			}
		})
	}
	return ctx, s
}

// EmitPlan records the planned step names on the span in ctx and announces them to the renderer.
func (t *OTelTracer) EmitPlan(ctx context.Context, steps []string) {
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.AddEvent("plan_emitted", trace.WithAttributes(attribute.StringSlice("steps", steps)))
	}
	if r := t.currentRenderer(); r != nil {
		r.OnPlanEmit(steps)
	}
}

// OTelSpan is the ports.Span handed out by OTelTracer.
type OTelSpan struct {
	span    trace.Span
	batcher *OutputBatcher
}

// Batcher returns the output batcher, nil when no renderer is attached.
func (s *OTelSpan) Batcher() *OutputBatcher {
	return s.batcher
}

// End flushes pending output and ends the span.
func (s *OTelSpan) End() {
	if s.batcher != nil {
		_ = s.batcher.Close()
	}
	s.span.End()
}

// MarkExecStart records when the tool process started, after the setup the span also covers.
func (s *OTelSpan) MarkExecStart() {
	s.span.AddEvent("exec_start")
}

// RecordError marks the span failed with err.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

func (s *OTelSpan) SetAttribute(key string, value any) {
	s.span.SetAttributes(toAttribute(key, value))
}

// Write forwards p to the renderer or, without one, records it as a span event.
func (s *OTelSpan) Write(p []byte) (int, error) {
	if s.batcher != nil {
		return s.batcher.Write(p)
	}
	s.span.AddEvent("log", trace.WithAttributes(attribute.String("message", string(p))))
	return len(p), nil
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case []string:
		return attribute.StringSlice(key, v)
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}
