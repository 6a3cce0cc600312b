package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/grocery-pos/internal/pkg/cache"
	"github.com/jcmexdev/grocery-pos/internal/pkg/interceptors/constants"
	"github.com/jcmexdev/grocery-pos/internal/stub-backend/store"
)

func newServer(t *testing.T, replay cache.Cache) (*httptest.Server, *store.Store) {
	t.Helper()
	s := store.New(store.SeedProducts(), store.SeedCustomers(),
		store.WithClock(func() time.Time { return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC) }))
	srv := httptest.NewServer(NewRouter(NewHandler(s, replay)))
	t.Cleanup(srv.Close)
	return srv, s
}

func postInvoice(t *testing.T, srv *httptest.Server, key, body string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/invoice/create", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(constants.HeaderXIdempotencyKey, key)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

const milkOrder = `{"customer_id":null,"items":[{"product_id":1,"quantity":2}],"discount_percent":10,"payment_method":"cash"}`

func TestCreateInvoice(t *testing.T) {
	srv, _ := newServer(t, nil)

	status, body := postInvoice(t, srv, "", milkOrder)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	inv := body["invoice"].(map[string]any)
	assert.Equal(t, "INV-20260301-000001", inv["invoice_number"])
	assert.Equal(t, "Walk-in Customer", inv["customer_name"])
	assert.Nil(t, inv["customer_mobile"])
	assert.Equal(t, 440.0, inv["subtotal"])
	assert.Equal(t, 79.2, inv["tax_amount"])
	assert.Equal(t, 44.0, inv["discount_amount"])
	assert.Equal(t, 475.2, inv["total_amount"])
	assert.Equal(t, 18.0, inv["tax_rate"])
	assert.Equal(t, "2026-03-01T09:30:00.000000", inv["created_at"])
}

func TestCreateInvoice_Rejected(t *testing.T) {
	srv, _ := newServer(t, nil)

	status, body := postInvoice(t, srv, "", `{"items":[{"product_id":8,"quantity":1}],"payment_method":"cash"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Insufficient stock for Tomatoes 1kg", body["error"])

	status, body = postInvoice(t, srv, "", `{"items":[],"payment_method":"cash"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "No items in cart", body["error"])

	status, body = postInvoice(t, srv, "", `not json`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid request body", body["error"])
}

func TestCreateInvoice_IdempotentReplay(t *testing.T) {
	srv, s := newServer(t, cache.NewMemoryCache("stub-backend"))

	_, first := postInvoice(t, srv, "key-1", milkOrder)
	_, again := postInvoice(t, srv, "key-1", milkOrder)
	_, other := postInvoice(t, srv, "key-2", milkOrder)

	assert.Equal(t, first, again)
	assert.NotEqual(t,
		first["invoice"].(map[string]any)["invoice_number"],
		other["invoice"].(map[string]any)["invoice_number"])

	p, _ := s.Product(1)
	assert.Equal(t, 36, p.Quantity)
}

func TestCreateInvoice_ConcurrentSameKey(t *testing.T) {
	srv, s := newServer(t, cache.NewMemoryCache("stub-backend"))

	var wg sync.WaitGroup
	numbers := make([]any, 5)
	for i := range numbers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, body := postInvoice(t, srv, "same", milkOrder)
			numbers[i] = body["invoice"].(map[string]any)["invoice_number"]
		}()
	}
	wg.Wait()

	for _, n := range numbers {
		assert.Equal(t, numbers[0], n)
	}
	p, _ := s.Product(1)
	assert.Equal(t, 38, p.Quantity)
}

func TestCreateInvoice_RejectionIsNotReplayed(t *testing.T) {
	srv, _ := newServer(t, cache.NewMemoryCache("stub-backend"))

	status, _ := postInvoice(t, srv, "k", `{"items":[{"product_id":1,"quantity":2}],"payment_method":"barter"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = postInvoice(t, srv, "k", milkOrder)
	assert.Equal(t, http.StatusOK, status)
}

func TestProductsAndInvoiceLookup(t *testing.T) {
	srv, _ := newServer(t, nil)

	resp, err := srv.Client().Get(srv.URL + "/api/products/search?q=milk")
	require.NoError(t, err)
	defer resp.Body.Close()
	var products []ProductResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	require.Len(t, products, 1)
	assert.Equal(t, "Fresh Milk 1L", products[0].Name)
	assert.Equal(t, "Dairy", *products[0].CategoryName)
	assert.NotEmpty(t, resp.Header.Get(constants.HeaderXRequestId))

	resp, err = srv.Client().Get(srv.URL + "/api/invoice/1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	postInvoice(t, srv, "", milkOrder)
	resp, err = srv.Client().Get(srv.URL + "/api/invoice/1")
	require.NoError(t, err)
	defer resp.Body.Close()
	var inv InvoiceResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&inv))
	assert.Equal(t, "INV-20260301-000001", inv.InvoiceNumber)
}
