package catalog

import (
	"strings"

	"github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"
)

// AllCategories is the category wildcard.
const AllCategories = "all"

// Filter toggles product visibility without touching the catalog. Text and
// category predicates are independent: whichever was applied last decides
// each product's visibility.
type Filter struct {
	catalog *Catalog
	hidden  map[int64]bool
}

func NewFilter(c *Catalog) *Filter {
	return &Filter{catalog: c, hidden: make(map[int64]bool)}
}

// MatchesText is a case-insensitive substring match on name or barcode.
func MatchesText(p entity.Product, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Barcode), q)
}

func MatchesCategory(p entity.Product, category string) bool {
	return category == AllCategories || p.CategoryName == category
}

func (f *Filter) ApplyText(query string) {
	f.apply(func(p entity.Product) bool { return MatchesText(p, query) })
}

func (f *Filter) ApplyCategory(category string) {
	f.apply(func(p entity.Product) bool { return MatchesCategory(p, category) })
}

// Reset makes every product visible again.
func (f *Filter) Reset() {
	clear(f.hidden)
}

func (f *Filter) IsVisible(id int64) bool {
	return !f.hidden[id]
}

// Visible returns the visible products in listing order.
func (f *Filter) Visible() []entity.Product {
	var out []entity.Product
	for _, p := range f.catalog.products {
		if !f.hidden[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

func (f *Filter) apply(match func(entity.Product) bool) {
	for _, p := range f.catalog.products {
		f.hidden[p.ID] = !match(p)
	}
}
