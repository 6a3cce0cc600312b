// Package checkout submits a cart to the invoicing backend.
//
// A Client moves Idle → Submitting → Idle for every attempt. Only one
// submission can be in flight; a second Submit fails fast with
// ErrSubmitInProgress. Each attempt carries an idempotency key tied to the
// cart version and checkout inputs it was built from, so a cashier retrying
// an unchanged sale after a failure cannot produce two invoices.
package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jcmexdev/grocery-pos/internal/pos/checkoutlog"
	"github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"
	"github.com/jcmexdev/grocery-pos/internal/pos/core/ports"
)

type State int32

const (
	Idle State = iota
	Submitting
)

func (s State) String() string {
	if s == Submitting {
		return "submitting"
	}
	return "idle"
}

type Option func(*Client)

// WithJournal records every attempt in repo.
func WithJournal(repo checkoutlog.Repository) Option {
	return func(c *Client) { c.journal = repo }
}

// WithStateHook registers fn to observe state transitions. fn runs on the
// submitting goroutine and must not call Submit.
func WithStateHook(fn func(State)) Option {
	return func(c *Client) { c.onState = fn }
}

// WithKeyGenerator replaces the UUID idempotency key source.
func WithKeyGenerator(fn func() string) Option {
	return func(c *Client) { c.newKey = fn }
}

type Client struct {
	api     ports.InvoiceAPI
	journal checkoutlog.Repository
	tracer  trace.Tracer
	onState func(State)
	newKey  func() string

	state atomic.Int32

	keyMu          sync.Mutex
	key            string
	keyFingerprint string
}

func NewClient(api ports.InvoiceAPI, opts ...Option) *Client {
	c := &Client{
		api:    api,
		tracer: otel.Tracer("github.com/jcmexdev/grocery-pos/internal/pos/checkout"),
		newKey: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) State() State {
	return State(c.state.Load())
}

// Submit sends snap to the backend. On success commit runs with the issued
// invoice before the client returns to Idle; on failure the caller's state
// is not touched. The error is one of ErrEmptyCart, ErrInvalidPaymentMethod,
// ErrSubmitInProgress, *ServerError or *TransportError.
func (c *Client) Submit(ctx context.Context, snap Snapshot, commit func(*entity.Invoice)) (*entity.Invoice, error) {
	req, err := BuildRequest(snap)
	if err != nil {
		return nil, err
	}

	if !c.state.CompareAndSwap(int32(Idle), int32(Submitting)) {
		return nil, ErrSubmitInProgress
	}
	c.notifyState(Submitting)
	defer func() {
		c.state.Store(int32(Idle))
		c.notifyState(Idle)
	}()

	key := c.idempotencyKey(fingerprint(snap.Version, req))

	ctx, span := c.tracer.Start(ctx, "checkout.submit", trace.WithAttributes(
		attribute.String("checkout.idempotency_key", key),
		attribute.Int("checkout.items", len(req.Items)),
		attribute.String("checkout.payment_method", string(req.PaymentMethod)),
	))
	defer span.End()

	started := checkoutlog.NewEntry(ctx, key, checkoutlog.StatusStarted)
	started.Payload = marshalPayload(req)
	c.record(ctx, started)

	invoice, err := c.api.CreateInvoice(ctx, key, req)
	if err != nil {
		cerr := classify(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, cerr.Error())

		failed := checkoutlog.NewEntry(ctx, key, checkoutlog.StatusFailed)
		failed.Error = err.Error()
		c.record(ctx, failed)
		return nil, cerr
	}

	span.SetAttributes(attribute.String("invoice.number", invoice.InvoiceNumber))
	completed := checkoutlog.NewEntry(ctx, key, checkoutlog.StatusCompleted)
	completed.InvoiceNumber = invoice.InvoiceNumber
	c.record(ctx, completed)

	c.resetKey()
	if commit != nil {
		commit(invoice)
	}
	return invoice, nil
}

// idempotencyKey returns the key for the sale identified by fp, minting a
// new one when anything changed since the last attempt.
func (c *Client) idempotencyKey(fp string) string {
	c.keyMu.Lock()
	defer c.keyMu.Unlock()
	if c.key == "" || c.keyFingerprint != fp {
		c.key = c.newKey()
		c.keyFingerprint = fp
	}
	return c.key
}

func fingerprint(version uint64, req entity.CheckoutRequest) string {
	customer := ""
	if req.CustomerID != nil {
		customer = *req.CustomerID
	}
	return fmt.Sprintf("%d|%s|%s|%s", version, customer, req.DiscountPercent.String(), req.PaymentMethod)
}

func (c *Client) resetKey() {
	c.keyMu.Lock()
	c.key = ""
	c.keyMu.Unlock()
}

func (c *Client) notifyState(s State) {
	if c.onState != nil {
		c.onState(s)
	}
}

// record is best effort: a broken journal never blocks a sale.
func (c *Client) record(ctx context.Context, entry *checkoutlog.Entry) {
	if c.journal == nil {
		return
	}
	if err := c.journal.Save(ctx, entry); err != nil {
		slog.WarnContext(ctx, "checkout journal write failed",
			"attempt_id", entry.AttemptID,
			"status", entry.Status,
			"error", err,
		)
	}
}
