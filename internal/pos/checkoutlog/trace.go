package checkoutlog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

type TraceInfo struct {
	TraceID string
	SpanID  string
}

// ExtractTraceInfo returns the ids of the active span in ctx, or empty
// strings when there is none (tracing disabled, unit tests).
func ExtractTraceInfo(ctx context.Context) TraceInfo {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return TraceInfo{}
	}
	return TraceInfo{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}

// NewEntry builds an Entry stamped with the trace of ctx.
//
//	entry := checkoutlog.NewEntry(ctx, key, checkoutlog.StatusFailed)
//	entry.Error = err.Error()
//	_ = journal.Save(ctx, entry)
func NewEntry(ctx context.Context, attemptID string, status Status) *Entry {
	ti := ExtractTraceInfo(ctx)
	return &Entry{
		AttemptID: attemptID,
		Status:    status,
		TraceID:   ti.TraceID,
		SpanID:    ti.SpanID,
		UpdatedAt: time.Now().UTC(),
	}
}
