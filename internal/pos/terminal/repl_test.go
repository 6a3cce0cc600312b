package terminal

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/grocery-pos/internal/pkg/cache"
	"github.com/jcmexdev/grocery-pos/internal/pos/infra/httpapi"
	"github.com/jcmexdev/grocery-pos/internal/pos/session"
	"github.com/jcmexdev/grocery-pos/internal/pos/view"
	"github.com/jcmexdev/grocery-pos/internal/stub-backend/httpx"
	"github.com/jcmexdev/grocery-pos/internal/stub-backend/store"
)

func newREPL(t *testing.T) (*REPL, *session.Session, *bytes.Buffer) {
	t.Helper()
	st := store.New(store.SeedProducts(), store.SeedCustomers(),
		store.WithClock(func() time.Time { return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC) }))
	srv := httptest.NewServer(httpx.NewRouter(httpx.NewHandler(st, cache.NewMemoryCache("stub-backend"))))
	t.Cleanup(srv.Close)

	out := &bytes.Buffer{}
	api := httpapi.NewClient(srv.URL, 5*time.Second)
	sess := session.New(session.Deps{
		Invoices: api,
		Products: api,
		Search:   api,
		Renderer: view.NewCartRenderer(out),
		Receipts: view.NewReceiptPresenter(out, srv.URL),
		Notifier: view.NewNoticeWriter(out),
	}, session.WithDebounce(10*time.Millisecond))
	t.Cleanup(sess.Close)
	require.NoError(t, sess.ReloadCatalog(context.Background()))
	return New(sess, out, srv.URL), sess, out
}

func TestRun_SaleFromScanToReceipt(t *testing.T) {
	r, sess, out := newREPL(t)
	input := strings.Join([]string{
		"scan rice",
		"add 1",
		"inc 1",
		"customer 2",
		"discount 10",
		"pay card",
		"checkout",
		"quit",
		"add 1",
	}, "\n")

	require.NoError(t, r.Run(context.Background(), strings.NewReader(input)))

	text := out.String()
	assert.Contains(t, text, "[success] Basmati Rice 5kg added to cart")
	assert.Contains(t, text, "[success] Fresh Milk 1L added to cart")
	assert.Contains(t, text, "Invoice: INV-20260301-000001")
	assert.Contains(t, text, "Customer: Bilal Ahmed (0321-7654321)")
	assert.Contains(t, text, "Payment: CARD")
	assert.Contains(t, text, "Thank you for shopping with us!")
	assert.Empty(t, sess.Lines(), "input after quit must not run")
}

func TestRun_ClearAsksFirst(t *testing.T) {
	r, sess, out := newREPL(t)

	require.NoError(t, r.Run(context.Background(), strings.NewReader("add 2\nclear\nn\n")))
	assert.Len(t, sess.Lines(), 1)
	assert.Contains(t, out.String(), "[y/N]")

	require.NoError(t, r.Run(context.Background(), strings.NewReader("clear\ny\n")))
	assert.Empty(t, sess.Lines())
	assert.Contains(t, out.String(), "Cart is empty\nClick on products to add them")
}

func TestRun_ReturnsWhenCancelledAtPrompt(t *testing.T) {
	r, sess, _ := newREPL(t)
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, pr) }()

	_, err := pw.Write([]byte("add 2\n"))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(sess.Lines()) == 1 }, time.Second, 5*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run kept waiting for input after cancel")
	}
}

func TestExec_Errors(t *testing.T) {
	r, _, out := newREPL(t)
	ctx := context.Background()

	r.Exec(ctx, "checkout", nil)
	assert.Contains(t, out.String(), "[warning] Cart is empty!")

	r.Exec(ctx, "add 8", nil)
	assert.Contains(t, out.String(), "[warning] Product is out of stock!")

	r.Exec(ctx, "add milk", nil)
	assert.Contains(t, out.String(), "usage: add <id>")

	r.Exec(ctx, "scan caviar", nil)
	assert.Contains(t, out.String(), "[error] Product not found")

	r.Exec(ctx, "pay barter", nil)
	assert.Contains(t, out.String(), "[warning] Invalid payment method")

	r.Exec(ctx, "frobnicate", nil)
	assert.Contains(t, out.String(), `Unknown command "frobnicate"`)

	r.Exec(ctx, "print", nil)
	assert.Contains(t, out.String(), "No invoice to print")
}

func TestExec_CategoryAndProducts(t *testing.T) {
	r, _, out := newREPL(t)
	ctx := context.Background()

	r.Exec(ctx, "category", nil)
	assert.Contains(t, out.String(), "Categories: all, Beverages, Dairy, Grains, Produce")

	out.Reset()
	r.Exec(ctx, "category Beverages", nil)
	r.Exec(ctx, "products", nil)
	assert.Contains(t, out.String(), "Green Tea 25 bags")
	assert.NotContains(t, out.String(), "Fresh Milk 1L")
}

func TestExec_ReprintAndPrint(t *testing.T) {
	r, _, out := newREPL(t)
	ctx := context.Background()

	r.Exec(ctx, "add 10", nil)
	r.Exec(ctx, "checkout", nil)
	out.Reset()

	r.Exec(ctx, "reprint 1", nil)
	assert.Contains(t, out.String(), "Invoice: INV-20260301-000001")
	assert.Contains(t, out.String(), "/invoices/1/pdf")

	path := filepath.Join(t.TempDir(), "receipt.html")
	r.Exec(ctx, "print "+path, nil)
	assert.Contains(t, out.String(), "Saved "+path)

	html, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Mineral Water 1.5L")
}
