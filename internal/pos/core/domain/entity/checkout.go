package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentUPI    PaymentMethod = "upi"
	PaymentCredit PaymentMethod = "credit"
)

var paymentMethods = []PaymentMethod{PaymentCash, PaymentCard, PaymentUPI, PaymentCredit}

func PaymentMethods() []PaymentMethod {
	return append([]PaymentMethod(nil), paymentMethods...)
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for _, m := range paymentMethods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

type CheckoutItem struct {
	ProductID int64
	Quantity  int
}

// CheckoutRequest is derived from a cart snapshot at submit time and never stored.
type CheckoutRequest struct {
	CustomerID      *string
	Items           []CheckoutItem
	DiscountPercent decimal.Decimal
	PaymentMethod   PaymentMethod
}
