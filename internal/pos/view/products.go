package view

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"
)

// WriteProducts lists the visible part of the catalog. Out-of-stock products
// are marked rather than hidden.
func WriteProducts(w io.Writer, products []entity.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products match")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "ID\tName\tCode\tCategory\tPrice\tStock\n")
	for _, p := range products {
		stock := strings.TrimSpace(strconv.Itoa(p.Quantity) + " " + p.Unit)
		if !p.InStock() {
			stock = "out of stock"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Barcode, p.CategoryName, FormatMoney(p.Price), stock)
	}
	_ = tw.Flush()
}
