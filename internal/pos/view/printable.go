package view

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"
)

var printableTmpl = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"money":     FormatMoney,
	"deduction": FormatDeduction,
	"percent":   FormatPercent,
	"upper":     strings.ToUpper,
	"inc":       func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Invoice {{.Invoice.InvoiceNumber}}</title>
<style>
body { font-family: sans-serif; padding: 20px; }
table { width: 100%; border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 4px; }
.r { text-align: right; }
@media print { body { padding: 0; } }
</style>
</head>
<body>
<h4>{{.Store}}</h4>
<p>Invoice: {{.Invoice.InvoiceNumber}}</p>
{{- if .Created}}
<p>{{.Created}}</p>
{{- end}}
<p><strong>Customer:</strong> {{.Customer}}{{with .Invoice.CustomerMobile}} {{.}}{{end}}</p>
<p><strong>Payment:</strong> {{upper .Invoice.PaymentMethod}}</p>
<table>
<thead><tr><th>#</th><th>Product</th><th>Qty</th><th class="r">Price</th><th class="r">Total</th></tr></thead>
<tbody>
{{- range $i, $it := .Invoice.Items}}
<tr><td>{{inc $i}}</td><td>{{$it.ProductName}}</td><td>{{$it.Quantity}}</td><td class="r">{{money $it.UnitPrice}}</td><td class="r">{{money $it.TotalPrice}}</td></tr>
{{- end}}
</tbody>
<tfoot>
<tr><td colspan="4" class="r">Subtotal:</td><td class="r">{{money .Invoice.Subtotal}}</td></tr>
<tr><td colspan="4" class="r">Tax ({{percent .Invoice.TaxRate}}%):</td><td class="r">{{money .Invoice.TaxAmount}}</td></tr>
{{- if .Invoice.DiscountAmount.IsPositive}}
<tr><td colspan="4" class="r">Discount ({{percent .Invoice.DiscountPercent}}%):</td><td class="r">{{deduction .Invoice.DiscountAmount}}</td></tr>
{{- end}}
<tr><td colspan="4" class="r"><strong>Total:</strong></td><td class="r"><strong>{{money .Invoice.TotalAmount}}</strong></td></tr>
</tfoot>
</table>
<p><a href="{{.PDF}}">Download PDF</a></p>
<p><small>{{.Thanks}}</small></p>
<script>window.onload = function() { window.print(); }</script>
</body>
</html>
`))

// RenderPrintable writes the print view of inv: the receipt as a standalone
// HTML page that opens the print dialog on load.
func RenderPrintable(w io.Writer, inv *entity.Invoice, baseURL string) error {
	data := struct {
		Store    string
		Invoice  *entity.Invoice
		Customer string
		Created  string
		PDF      string
		Thanks   string
	}{
		Store:    storeName,
		Invoice:  inv,
		Customer: CustomerName(inv),
		PDF:      PDFLink(baseURL, inv.ID),
		Thanks:   thankYouNote,
	}
	if !inv.CreatedAt.IsZero() {
		data.Created = inv.CreatedAt.Format(timeLayout)
	}
	if err := printableTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("view: render printable %s: %w", inv.InvoiceNumber, err)
	}
	return nil
}
