package cart

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"
)

// TaxRate is the fixed sales tax applied to the subtotal.
var TaxRate = decimal.RequireFromString("0.18")

var hundred = decimal.NewFromInt(100)

// ClampDiscount limits a discount percentage to [0,100].
func ClampDiscount(pct decimal.Decimal) decimal.Decimal {
	switch {
	case pct.IsNegative():
		return decimal.Zero
	case pct.GreaterThan(hundred):
		return hundred
	}
	return pct
}

// ParseDiscount reads the cashier's discount input. Empty or unparsable input
// counts as 0.
func ParseDiscount(input string) decimal.Decimal {
	pct, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return decimal.Zero
	}
	return ClampDiscount(pct)
}

// ComputeTotals derives the provisional totals for lines. The backend's
// invoice remains authoritative.
func ComputeTotals(lines []entity.CartLine, discountPercent decimal.Decimal) entity.Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal())
	}

	tax := subtotal.Mul(TaxRate)
	discount := subtotal.Mul(ClampDiscount(discountPercent)).Div(hundred)

	return entity.Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Discount: discount,
		Total:    subtotal.Add(tax).Sub(discount),
	}
}
