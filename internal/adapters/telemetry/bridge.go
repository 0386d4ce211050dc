package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/fpdgen/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*StepProcessor)(nil)

// StepProcessor turns span starts and ends into renderer step events.
type StepProcessor struct {
	renderer ports.Renderer
}

// NewStepProcessor returns a processor reporting to renderer. A nil renderer drops everything.
func NewStepProcessor(renderer ports.Renderer) *StepProcessor {
	return &StepProcessor{renderer: renderer}
}

// Install makes a provider reporting to renderer the global tracer provider.
// Callers shut it down when the run ends.
func Install(renderer ports.Renderer) *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(NewStepProcessor(renderer)))
	otel.SetTracerProvider(tp)
	return tp
}

func (p *StepProcessor) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	id, ok := stepID(s.SpanContext())
	if p.renderer == nil || !ok {
		return
	}
	parentID, _ := stepID(trace.SpanContextFromContext(parent))
	p.renderer.OnStepStart(id, parentID, s.Name(), s.StartTime())
}

func (p *StepProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	id, ok := stepID(s.SpanContext())
	if p.renderer == nil || !ok {
		return
	}
	p.renderer.OnStepComplete(id, s.EndTime(), stepFailure(s.Status()))
}

func (*StepProcessor) ForceFlush(context.Context) error { return nil }

func (*StepProcessor) Shutdown(context.Context) error { return nil }

func stepID(sc trace.SpanContext) (string, bool) {
	if !sc.IsValid() {
		return "", false
	}
	return sc.SpanID().String(), true
}

// stepFailure returns nil unless the span ended with an error status.
func stepFailure(status sdktrace.Status) error {
	if status.Code != codes.Error {
		return nil
	}
	if status.Description == "" {
		return errors.New("step failed")
	}
	return errors.New(status.Description)
}
