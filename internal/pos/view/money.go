// Package view draws the terminal's cart, receipts and notices as text, and
// the printable receipt as HTML.
package view

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const currencyPrefix = "Rs. "

var printer = message.NewPrinter(language.English)

// FormatMoney renders d as "Rs. 1,234.50". Negative amounts keep their sign
// after the prefix.
func FormatMoney(d decimal.Decimal) string {
	return currencyPrefix + groupDigits(d)
}

// FormatDeduction renders a discount as "-Rs. 20.00".
func FormatDeduction(d decimal.Decimal) string {
	return "-" + FormatMoney(d.Abs())
}

func groupDigits(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	sign := ""
	if rest, ok := strings.CutPrefix(fixed, "-"); ok {
		sign, fixed = "-", rest
	}
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + groupWhole(whole) + "." + frac
}

// groupWhole inserts thousands separators into an unsigned digit string.
func groupWhole(whole string) string {
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		return printer.Sprint(number.Decimal(n))
	}
	var b strings.Builder
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// FormatPercent renders 18 as "18" and 12.5 as "12.5".
func FormatPercent(d decimal.Decimal) string {
	return d.String()
}
