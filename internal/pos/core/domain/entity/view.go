package entity

import "github.com/shopspring/decimal"

type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// CartView is everything a renderer needs for one redraw. It is produced once
// per state change so a renderer never sees lines and totals out of step.
type CartView struct {
	Lines           []CartLine
	Totals          Totals
	DiscountPercent decimal.Decimal
	CustomerID      *string
	PaymentMethod   PaymentMethod
	Submitting      bool
}

// CheckoutEnabled reports whether the checkout control should accept input.
func (v CartView) CheckoutEnabled() bool {
	return len(v.Lines) > 0 && !v.Submitting
}
