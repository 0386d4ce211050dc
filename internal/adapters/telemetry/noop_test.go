package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/fpdgen/internal/adapters/telemetry"
)

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	got, span := tracer.Start(ctx, "step")
	assert.Equal(t, ctx, got)

	n, err := span.Write([]byte("data"))
	assert.NoError(t, err)
	assert.Equal(t, 4, n)

	assert.NotPanics(t, func() {
		tracer.EmitPlan(ctx, []string{"a"})
		span.SetAttribute("k", "v")
		span.RecordError(errors.New("x"))
		span.End()
	})
}
