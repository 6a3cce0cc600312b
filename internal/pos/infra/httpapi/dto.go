package httpapi

import (
	"github.com/shopspring/decimal"
)

type createInvoiceItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type createInvoiceRequest struct {
	CustomerID      *string             `json:"customer_id"`
	Items           []createInvoiceItem `json:"items"`
	DiscountPercent decimal.Decimal     `json:"discount_percent"`
	PaymentMethod   string              `json:"payment_method"`
}

// createInvoiceResponse covers both shapes the endpoint answers with:
// {"error": "..."} or {"success": true, "invoice": {...}}.
type createInvoiceResponse struct {
	Error   string      `json:"error"`
	Success bool        `json:"success"`
	Invoice *invoiceDTO `json:"invoice"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Amounts decode from JSON numbers or strings.
type productDTO struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Barcode      string          `json:"barcode"`
	CategoryID   *int64          `json:"category_id"`
	CategoryName *string         `json:"category_name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Unit         string          `json:"unit"`
}

type invoiceItemDTO struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type invoiceDTO struct {
	ID              int64            `json:"id"`
	InvoiceNumber   string           `json:"invoice_number"`
	CreatedAt       *string          `json:"created_at"`
	CustomerName    *string          `json:"customer_name"`
	CustomerMobile  *string          `json:"customer_mobile"`
	PaymentMethod   string           `json:"payment_method"`
	PaymentStatus   string           `json:"payment_status"`
	Items           []invoiceItemDTO `json:"items"`
	Subtotal        decimal.Decimal  `json:"subtotal"`
	TaxRate         decimal.Decimal  `json:"tax_rate"`
	TaxAmount       decimal.Decimal  `json:"tax_amount"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
	DiscountAmount  decimal.Decimal  `json:"discount_amount"`
	TotalAmount     decimal.Decimal  `json:"total_amount"`
	Notes           *string          `json:"notes"`
}
