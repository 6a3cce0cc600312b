package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jcmexdev/grocery-pos/internal/pos/cart"
	"github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"
	"github.com/jcmexdev/grocery-pos/internal/pos/core/ports"
)

var _ ports.Renderer = (*CartRenderer)(nil)

const (
	emptyCartTitle = "Cart is empty"
	emptyCartHint  = "Click on products to add them"
)

// CartRenderer redraws the whole cart panel on every Render.
type CartRenderer struct {
	w io.Writer
}

func NewCartRenderer(w io.Writer) *CartRenderer {
	return &CartRenderer{w: w}
}

func (r *CartRenderer) Render(v entity.CartView) {
	var b strings.Builder
	writeCart(&b, v)
	_, _ = io.WriteString(r.w, b.String())
}

func writeCart(b *strings.Builder, v entity.CartView) {
	b.WriteString("---- Cart ----\n")
	if len(v.Lines) == 0 {
		b.WriteString(emptyCartTitle + "\n")
		b.WriteString(emptyCartHint + "\n")
	} else {
		tw := tabwriter.NewWriter(b, 0, 0, 2, ' ', tabwriter.AlignRight)
		for _, l := range v.Lines {
			fmt.Fprintf(tw, "[%d]\t%s\t%s each\tx%d\t%s\t\n",
				l.ProductID, l.Name, FormatMoney(l.UnitPrice), l.Quantity, FormatMoney(l.LineTotal()))
		}
		_ = tw.Flush()
	}

	t := v.Totals
	tw := tabwriter.NewWriter(b, 0, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Subtotal:\t%s\t\n", FormatMoney(t.Subtotal))
	fmt.Fprintf(tw, "Tax (%s%%):\t%s\t\n", FormatPercent(cart.TaxRate.Shift(2)), FormatMoney(t.Tax))
	fmt.Fprintf(tw, "Discount (%s%%):\t%s\t\n", FormatPercent(v.DiscountPercent), FormatDeduction(t.Discount))
	fmt.Fprintf(tw, "Total:\t%s\t\n", FormatMoney(t.Total))
	_ = tw.Flush()

	customer := entity.WalkInCustomer
	if v.CustomerID != nil {
		customer = "customer #" + *v.CustomerID
	}
	fmt.Fprintf(b, "Customer: %s | Payment: %s\n", customer, strings.ToUpper(string(v.PaymentMethod)))
	b.WriteString(checkoutControl(v) + "\n")
}

func checkoutControl(v entity.CartView) string {
	switch {
	case v.Submitting:
		return "[ Processing... ]"
	case v.CheckoutEnabled():
		return "[ Complete Sale ]"
	}
	return "[ Complete Sale ] (disabled)"
}
