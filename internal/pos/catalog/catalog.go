// Package catalog is the terminal's read-only product listing: loaded once,
// indexed by id, and projected through the cashier's filters.
package catalog

import (
	"context"
	"fmt"
	"slices"

	"github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"
	"github.com/jcmexdev/grocery-pos/internal/pos/core/ports"
)

// Catalog keeps the backend's listing order and an index by product id.
type Catalog struct {
	products []entity.Product
	byID     map[int64]int
}

func New(products []entity.Product) *Catalog {
	c := &Catalog{
		products: slices.Clone(products),
		byID:     make(map[int64]int, len(products)),
	}
	for i, p := range c.products {
		c.byID[p.ID] = i
	}
	return c
}

// Load fetches the full active listing.
func Load(ctx context.Context, lister ports.ProductLister) (*Catalog, error) {
	products, err := lister.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: load: %w", err)
	}
	return New(products), nil
}

func (c *Catalog) Get(id int64) (entity.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return entity.Product{}, false
	}
	return c.products[i], true
}

func (c *Catalog) All() []entity.Product {
	return slices.Clone(c.products)
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// Categories returns the distinct category names, sorted.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range c.products {
		if p.CategoryName == "" {
			continue
		}
		if _, ok := seen[p.CategoryName]; ok {
			continue
		}
		seen[p.CategoryName] = struct{}{}
		out = append(out, p.CategoryName)
	}
	slices.Sort(out)
	return out
}
