package checkoutlog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNewEntry_WithoutSpan(t *testing.T) {
	e := NewEntry(context.Background(), "key-1", StatusStarted)

	assert.Equal(t, "key-1", e.AttemptID)
	assert.Equal(t, StatusStarted, e.Status)
	assert.Empty(t, e.TraceID)
	assert.Empty(t, e.SpanID)
	assert.False(t, e.UpdatedAt.IsZero())
}

func TestNewEntry_WithSpan(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()
	ctx, span := tp.Tracer("test").Start(context.Background(), "checkout.submit")
	defer span.End()

	e := NewEntry(ctx, "key-1", StatusCompleted)

	assert.Equal(t, span.SpanContext().TraceID().String(), e.TraceID)
	assert.Len(t, e.SpanID, 16)
}
