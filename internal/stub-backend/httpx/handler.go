// Package httpx serves the stub invoicing API the terminal talks to.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/singleflight"

	"github.com/jcmexdev/grocery-pos/internal/pkg/cache"
	"github.com/jcmexdev/grocery-pos/internal/pkg/interceptors"
	"github.com/jcmexdev/grocery-pos/internal/stub-backend/store"
)

// ReplayTTL is how long a created invoice is replayed for its idempotency key.
const ReplayTTL = 24 * time.Hour

// Handler serves products and invoices from an in-memory store.
type Handler struct {
	store    *store.Store
	replay   cache.Cache // nil-safe: no idempotent replay if nil
	inflight singleflight.Group
}

// NewHandler wires the handler. replay may be nil, in which case repeated
// idempotency keys create new invoices.
func NewHandler(s *store.Store, replay cache.Cache) *Handler {
	return &Handler{store: s, replay: replay}
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, mapProducts(h.store.ListProducts()))
}

func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, mapProducts(h.store.SearchProducts(q)))
}

// CreateInvoice issues an invoice. A request repeating an idempotency key
// gets the original answer back; concurrent ones wait for the first.
func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := r.Context()
	key := interceptors.IdempotencyKey(ctx)
	slog.InfoContext(ctx, "creating invoice",
		"request_id", interceptors.RequestID(ctx),
		"idempotency_key", key,
		"items", len(req.Items),
	)

	if key == "" || h.replay == nil {
		body, status := h.create(ctx, req)
		writeRaw(w, status, body)
		return
	}

	v, _, _ := h.inflight.Do(key, func() (any, error) {
		cacheKey := h.replay.GenerateKey("invoice", key)
		if cached, err := h.replay.Get(ctx, cacheKey); err == nil && cached != "" {
			slog.InfoContext(ctx, "replaying invoice", "idempotency_key", key)
			return result{body: []byte(cached), status: http.StatusOK}, nil
		}

		body, status := h.create(ctx, req)
		if status == http.StatusOK {
			if err := h.replay.Set(ctx, cacheKey, string(body), ReplayTTL); err != nil {
				slog.WarnContext(ctx, "failed to store invoice for replay", "idempotency_key", key, "error", err)
			}
		}
		return result{body: body, status: status}, nil
	})
	res := v.(result)
	writeRaw(w, res.status, res.body)
}

type result struct {
	body   []byte
	status int
}

func (h *Handler) create(ctx context.Context, req CreateInvoiceRequest) ([]byte, int) {
	inv, err := h.store.CreateInvoice(mapCreateRequest(req))
	if err != nil {
		var rej *store.RejectionError
		if errors.As(err, &rej) {
			slog.InfoContext(ctx, "invoice rejected", "reason", rej.Message)
			return mustMarshal(ErrorResponse{Error: rej.Message}), http.StatusBadRequest
		}
		slog.ErrorContext(ctx, "invoice creation failed", "error", err)
		return mustMarshal(ErrorResponse{Error: err.Error()}), http.StatusInternalServerError
	}

	slog.InfoContext(ctx, "invoice created", "invoice_number", inv.InvoiceNumber, "total", inv.TotalAmount.String())
	return mustMarshal(CreateInvoiceResponse{Success: true, Invoice: mapInvoiceToResponse(inv)}), http.StatusOK
}

func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid invoice id")
		return
	}

	inv, err := h.store.GetInvoice(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Invoice not found")
		return
	}

	writeJSON(w, http.StatusOK, mapInvoiceToResponse(inv))
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
