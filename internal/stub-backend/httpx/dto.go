package httpx

import "github.com/shopspring/decimal"

type CreateInvoiceRequest struct {
	CustomerID      *string                `json:"customer_id"`
	Items           []CreateInvoiceItemDTO `json:"items"`
	DiscountPercent decimal.Decimal        `json:"discount_percent"`
	PaymentMethod   string                 `json:"payment_method"`
	Notes           string                 `json:"notes"`
}

type CreateInvoiceItemDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type CreateInvoiceResponse struct {
	Success bool            `json:"success"`
	Invoice InvoiceResponse `json:"invoice"`
}

// Amounts are plain JSON numbers.
type ProductResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Barcode      string  `json:"barcode"`
	CategoryID   *int64  `json:"category_id"`
	CategoryName *string `json:"category_name"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	Unit         string  `json:"unit"`
	IsActive     bool    `json:"is_active"`
}

type InvoiceResponse struct {
	ID              int64                 `json:"id"`
	InvoiceNumber   string                `json:"invoice_number"`
	CustomerName    string                `json:"customer_name"`
	CustomerMobile  *string               `json:"customer_mobile"`
	Subtotal        float64               `json:"subtotal"`
	TaxAmount       float64               `json:"tax_amount"`
	TaxRate         float64               `json:"tax_rate"`
	DiscountAmount  float64               `json:"discount_amount"`
	DiscountPercent float64               `json:"discount_percent"`
	TotalAmount     float64               `json:"total_amount"`
	PaymentMethod   string                `json:"payment_method"`
	PaymentStatus   string                `json:"payment_status"`
	Notes           *string               `json:"notes"`
	CreatedAt       string                `json:"created_at"`
	Items           []InvoiceItemResponse `json:"items"`
}

type InvoiceItemResponse struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
