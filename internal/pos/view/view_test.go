package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/grocery-pos/internal/pos/cart"
	"github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleInvoice() *entity.Invoice {
	return &entity.Invoice{
		ID:            12,
		InvoiceNumber: "INV-20260301-000012",
		CreatedAt:     time.Date(2026, 3, 1, 14, 5, 0, 0, time.UTC),
		PaymentMethod: "cash",
		Items: []entity.InvoiceItem{
			{ProductID: 1, ProductName: "Basmati Rice 5kg", Quantity: 2, UnitPrice: dec("1250"), TotalPrice: dec("2500")},
		},
		Subtotal:        dec("2500"),
		TaxRate:         dec("18"),
		TaxAmount:       dec("450"),
		DiscountPercent: dec("0"),
		DiscountAmount:  dec("0"),
		TotalAmount:     dec("2950"),
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "Rs. 0.00"},
		{"216", "Rs. 216.00"},
		{"1234.5", "Rs. 1,234.50"},
		{"1000000", "Rs. 1,000,000.00"},
		{"0.005", "Rs. 0.01"},
		{"-1234.5", "Rs. -1,234.50"},
		{"12345678901234567.89", "Rs. 12,345,678,901,234,567.89"},
		{"123456789012345678901.25", "Rs. 123,456,789,012,345,678,901.25"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(dec(tt.in)))
		})
	}
	assert.Equal(t, "-Rs. 20.00", FormatDeduction(dec("20")))
}

func TestCartRenderer_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewCartRenderer(&buf).Render(entity.CartView{PaymentMethod: entity.PaymentCash})

	out := buf.String()
	assert.Contains(t, out, "Cart is empty\nClick on products to add them\n")
	assert.Contains(t, out, "(disabled)")
	assert.Contains(t, out, entity.WalkInCustomer)
}

func TestCartRenderer_LinesAndTotals(t *testing.T) {
	lines := []entity.CartLine{{ProductID: 1, Name: "Milk", UnitPrice: dec("100"), Quantity: 2, MaxQuantity: 5}}
	pct := dec("10")
	customer := "42"
	var buf bytes.Buffer

	NewCartRenderer(&buf).Render(entity.CartView{
		Lines:           lines,
		Totals:          cart.ComputeTotals(lines, pct),
		DiscountPercent: pct,
		CustomerID:      &customer,
		PaymentMethod:   entity.PaymentUPI,
	})

	out := buf.String()
	assert.Contains(t, out, "Milk")
	assert.Contains(t, out, "Rs. 100.00 each")
	assert.Contains(t, out, "x2")
	assert.Contains(t, out, "Tax (18%):")
	assert.Contains(t, out, "Discount (10%):")
	assert.Contains(t, out, "-Rs. 20.00")
	assert.Contains(t, out, "Rs. 216.00")
	assert.Contains(t, out, "customer #42 | Payment: UPI")
	assert.Contains(t, out, "[ Complete Sale ]\n")
}

func TestCartRenderer_Submitting(t *testing.T) {
	var buf bytes.Buffer
	NewCartRenderer(&buf).Render(entity.CartView{
		Lines:      []entity.CartLine{{ProductID: 1, Name: "Milk", UnitPrice: dec("1"), Quantity: 1, MaxQuantity: 1}},
		Submitting: true,
	})
	assert.Contains(t, buf.String(), "[ Processing... ]")
}

func TestReceipt_WalkInWithoutDiscount(t *testing.T) {
	var buf bytes.Buffer
	NewReceiptPresenter(&buf, "http://localhost:5000/").ShowReceipt(sampleInvoice())

	out := buf.String()
	assert.Contains(t, out, "Invoice: INV-20260301-000012")
	assert.Contains(t, out, "2026-03-01 14:05:00")
	assert.Contains(t, out, "Customer: Walk-in Customer\n")
	assert.Contains(t, out, "Payment: CASH")
	assert.Contains(t, out, "Basmati Rice 5kg")
	assert.Contains(t, out, "Rs. 2,950.00")
	assert.NotContains(t, out, "Discount")
	assert.Contains(t, out, "Thank you for shopping with us!")
	assert.Contains(t, out, "PDF: http://localhost:5000/invoices/12/pdf")
}

func TestReceipt_WithDiscountAndCustomer(t *testing.T) {
	inv := sampleInvoice()
	inv.CustomerName = "Ayesha Khan"
	inv.CustomerMobile = "0300-1234567"
	inv.DiscountPercent = dec("10")
	inv.DiscountAmount = dec("250")
	inv.TotalAmount = dec("2700")

	var buf bytes.Buffer
	WriteReceipt(&buf, inv)

	out := buf.String()
	assert.Contains(t, out, "Customer: Ayesha Khan (0300-1234567)")
	assert.Contains(t, out, "Discount (10%):")
	assert.Contains(t, out, "-Rs. 250.00")
}

func TestRenderPrintable(t *testing.T) {
	inv := sampleInvoice()
	inv.Items[0].ProductName = "Tea <Premium>"

	var buf bytes.Buffer
	require.NoError(t, RenderPrintable(&buf, inv, "http://pos.local"))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "Tea &lt;Premium&gt;")
	assert.Contains(t, out, `href="http://pos.local/invoices/12/pdf"`)
	assert.Contains(t, out, "Walk-in Customer")
	assert.Contains(t, out, "Rs. 2,950.00")
	assert.NotContains(t, out, "Discount (")
	assert.Contains(t, out, "window.print()")
}

func TestNoticeWriter(t *testing.T) {
	var buf bytes.Buffer
	n := NewNoticeWriter(&buf)

	n.Notify(entity.Warning("Cart is empty!"))
	n.Notify(entity.Success("Milk added to cart"))

	assert.Equal(t, "[warning] Cart is empty!\n[success] Milk added to cart\n", buf.String())
}

func TestWriteProducts(t *testing.T) {
	var buf bytes.Buffer
	WriteProducts(&buf, []entity.Product{
		{ID: 1, Name: "Milk", Barcode: "8901", CategoryName: "Dairy", Price: dec("100"), Quantity: 5, Unit: "pcs"},
		{ID: 2, Name: "Eggs", Barcode: "8902", CategoryName: "Dairy", Price: dec("12"), Quantity: 0, Unit: "pcs"},
	})

	out := buf.String()
	assert.Contains(t, out, "5 pcs")
	assert.Contains(t, out, "out of stock")

	buf.Reset()
	WriteProducts(&buf, nil)
	assert.Equal(t, "No products match\n", buf.String())
}
