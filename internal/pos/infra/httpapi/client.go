// Package httpapi talks to the invoicing backend over its JSON API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/grocery-pos/internal/pkg/interceptors"
	"github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"
	"github.com/jcmexdev/grocery-pos/internal/pos/core/ports"
)

var (
	_ ports.InvoiceAPI      = (*Client)(nil)
	_ ports.ProductSearcher = (*Client)(nil)
	_ ports.ProductLister   = (*Client)(nil)
)

// Bodies larger than this are treated as a broken response.
const maxBodyBytes = 4 << 20

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the backend at baseURL. Every request
// carries a span, X-Request-Id and, on checkout, X-Idempotency-Key. Cookies
// set by Login are kept for later calls. Redirects are not followed: the
// backend only redirects to its login page.
func NewClient(baseURL string, timeout time.Duration) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(interceptors.NewHeaderTransport(nil)),
			Jar:       jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Login signs in with the backend's form login. The session cookie it sets
// authenticates every later request.
func (c *Client) Login(ctx context.Context, username, password string) error {
	form := url.Values{"username": {username}, "password": {password}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", strings.NewReader(form))
	if err != nil {
		return fmt.Errorf("httpapi: login: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("httpapi: login: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

	// A successful login redirects away from the form; a rejected one
	// renders the form again.
	if resp.StatusCode < 300 || resp.StatusCode > 399 || isLoginRedirect(resp) {
		return fmt.Errorf("httpapi: login as %q: %w", username, ErrLoginRejected)
	}
	return nil
}

func (c *Client) CreateInvoice(ctx context.Context, idempotencyKey string, req entity.CheckoutRequest) (*entity.Invoice, error) {
	body, err := json.Marshal(mapRequest(req))
	if err != nil {
		return nil, fmt.Errorf("httpapi: create invoice: encode: %w", err)
	}
	if idempotencyKey != "" {
		ctx = interceptors.WithIdempotencyKey(ctx, idempotencyKey)
	}

	var res createInvoiceResponse
	if err := c.do(ctx, http.MethodPost, "/api/invoice/create", body, &res); err != nil {
		return nil, fmt.Errorf("httpapi: create invoice: %w", err)
	}
	if res.Error != "" {
		return nil, fmt.Errorf("httpapi: create invoice: %w", &APIError{Status: http.StatusOK, Message: res.Error})
	}
	if res.Invoice == nil {
		return nil, errors.New("httpapi: create invoice: empty invoice in response")
	}

	inv, err := mapInvoice(res.Invoice)
	if err != nil {
		return nil, fmt.Errorf("httpapi: create invoice: %w", err)
	}
	return inv, nil
}

func (c *Client) GetInvoice(ctx context.Context, id int64) (*entity.Invoice, error) {
	var dto invoiceDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/invoice/%d", id), nil, &dto); err != nil {
		return nil, fmt.Errorf("httpapi: get invoice %d: %w", id, err)
	}
	inv, err := mapInvoice(&dto)
	if err != nil {
		return nil, fmt.Errorf("httpapi: get invoice %d: %w", id, err)
	}
	return inv, nil
}

func (c *Client) SearchProducts(ctx context.Context, query string) ([]entity.Product, error) {
	var dtos []productDTO
	path := "/api/products/search?" + url.Values{"q": {query}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, fmt.Errorf("httpapi: search products %q: %w", query, err)
	}
	return mapProducts(dtos), nil
}

func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	var dtos []productDTO
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &dtos); err != nil {
		return nil, fmt.Errorf("httpapi: list products: %w", err)
	}
	return mapProducts(dtos), nil
}

// do performs one request and decodes a successful body into out. A non-2xx
// answer with an {"error"} body becomes an *APIError; any other non-2xx is a
// plain error.
func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || isLoginRedirect(resp) {
		return fmt.Errorf("status %d: %w", resp.StatusCode, ErrNotAuthenticated)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil && eb.Error != "" {
			return &APIError{Status: resp.StatusCode, Message: eb.Error}
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

func isLoginRedirect(resp *http.Response) bool {
	if resp.StatusCode < 300 || resp.StatusCode > 399 {
		return false
	}
	loc, err := resp.Location()
	return err == nil && strings.HasPrefix(loc.Path, "/login")
}
