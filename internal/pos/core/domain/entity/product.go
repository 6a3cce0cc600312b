package entity

import "github.com/shopspring/decimal"

// Product is one active catalog entry as listed by the invoicing backend.
// Quantity is the stock on hand and doubles as the cart's stock ceiling.
type Product struct {
	ID           int64
	Name         string
	Barcode      string
	CategoryID   *int64
	CategoryName string
	Price        decimal.Decimal
	Quantity     int
	Unit         string
}

func (p Product) InStock() bool {
	return p.Quantity > 0
}
