// Package checkoutlog is an append-only journal of checkout attempts.
//
// Every submission writes a STARTED row and then exactly one COMPLETED or
// FAILED row under the same attempt id (the idempotency key), so a cashier's
// "did that sale go through?" can be answered from the terminal alone and
// joined with the distributed trace through trace_id.
package checkoutlog

import "time"

type Status string

const (
	StatusStarted   Status = "STARTED"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// Entry is one row of the journal.
type Entry struct {
	// AttemptID is the idempotency key sent with the request. Retries of an
	// unchanged cart share it.
	AttemptID string

	Status Status

	// Payload is the JSON request body, written on STARTED only.
	Payload string

	// InvoiceNumber is set on COMPLETED.
	InvoiceNumber string

	// Error is the server or transport error text on FAILED.
	Error string

	TraceID string
	SpanID  string

	UpdatedAt time.Time
}
