package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"
	"github.com/jcmexdev/grocery-pos/internal/pos/core/ports"
)

var _ ports.ReceiptPresenter = (*ReceiptPresenter)(nil)

const (
	storeName    = "Grocery Store"
	thankYouNote = "Thank you for shopping with us!"
	timeLayout   = "2006-01-02 15:04:05"
)

// ReceiptPresenter prints an issued invoice. Links are built against baseURL.
type ReceiptPresenter struct {
	w       io.Writer
	baseURL string
}

func NewReceiptPresenter(w io.Writer, baseURL string) *ReceiptPresenter {
	return &ReceiptPresenter{w: w, baseURL: baseURL}
}

func (p *ReceiptPresenter) ShowReceipt(inv *entity.Invoice) {
	var b strings.Builder
	WriteReceipt(&b, inv)
	fmt.Fprintf(&b, "PDF: %s\n", PDFLink(p.baseURL, inv.ID))
	_, _ = io.WriteString(p.w, b.String())
}

// PDFLink is the download target of an invoice's PDF. It is never fetched
// by the terminal.
func PDFLink(baseURL string, invoiceID int64) string {
	return fmt.Sprintf("%s/invoices/%d/pdf", strings.TrimRight(baseURL, "/"), invoiceID)
}

// CustomerName falls back to the walk-in label.
func CustomerName(inv *entity.Invoice) string {
	if strings.TrimSpace(inv.CustomerName) == "" {
		return entity.WalkInCustomer
	}
	return inv.CustomerName
}

// WriteReceipt renders inv as plain text. The discount row only appears when
// a discount was granted.
func WriteReceipt(w io.Writer, inv *entity.Invoice) {
	fmt.Fprintf(w, "==== %s ====\n", storeName)
	fmt.Fprintf(w, "Invoice: %s\n", inv.InvoiceNumber)
	if !inv.CreatedAt.IsZero() {
		fmt.Fprintf(w, "%s\n", inv.CreatedAt.Format(timeLayout))
	}
	fmt.Fprintf(w, "Customer: %s", CustomerName(inv))
	if inv.CustomerMobile != "" {
		fmt.Fprintf(w, " (%s)", inv.CustomerMobile)
	}
	fmt.Fprintf(w, "\nPayment: %s\n", strings.ToUpper(inv.PaymentMethod))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "#\tProduct\tQty\tPrice\tTotal\t\n")
	for i, it := range inv.Items {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t\n",
			i+1, it.ProductName, it.Quantity, FormatMoney(it.UnitPrice), FormatMoney(it.TotalPrice))
	}
	_ = tw.Flush()

	tw = tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Subtotal:\t%s\t\n", FormatMoney(inv.Subtotal))
	fmt.Fprintf(tw, "Tax (%s%%):\t%s\t\n", FormatPercent(inv.TaxRate), FormatMoney(inv.TaxAmount))
	if inv.DiscountAmount.IsPositive() {
		fmt.Fprintf(tw, "Discount (%s%%):\t%s\t\n", FormatPercent(inv.DiscountPercent), FormatDeduction(inv.DiscountAmount))
	}
	fmt.Fprintf(tw, "Total:\t%s\t\n", FormatMoney(inv.TotalAmount))
	_ = tw.Flush()

	fmt.Fprintln(w, thankYouNote)
}
