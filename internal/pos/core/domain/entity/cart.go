package entity

import "github.com/shopspring/decimal"

type CartLine struct {
	ProductID   int64
	Name        string
	UnitPrice   decimal.Decimal
	Quantity    int
	MaxQuantity int
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
