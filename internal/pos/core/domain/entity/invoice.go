package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalkInCustomer is shown when an invoice carries no customer.
const WalkInCustomer = "Walk-in Customer"

// Invoice is the authoritative record returned by the backend. The terminal
// displays it as-is; TaxRate is a percentage (18 means 18%).
type Invoice struct {
	ID              int64
	InvoiceNumber   string
	CreatedAt       time.Time
	CustomerName    string
	CustomerMobile  string
	PaymentMethod   string
	PaymentStatus   string
	Items           []InvoiceItem
	Subtotal        decimal.Decimal
	TaxRate         decimal.Decimal
	TaxAmount       decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	TotalAmount     decimal.Decimal
	Notes           string
}

type InvoiceItem struct {
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}
