// Package store is the stub backend's in-memory catalog, customer book and
// invoice ledger.
package store

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"
)

// SearchLimit caps product search results.
const SearchLimit = 20

var (
	taxRate        = decimal.RequireFromString("0.18")
	taxRatePercent = decimal.NewFromInt(18)
	hundred        = decimal.NewFromInt(100)
)

type Customer struct {
	ID             int64
	Name           string
	Mobile         string
	LoyaltyPoints  int64
	TotalPurchases decimal.Decimal
}

type InvoiceItem struct {
	ProductID int64
	Quantity  int
}

type CreateInvoice struct {
	CustomerID      *string
	Items           []InvoiceItem
	DiscountPercent decimal.Decimal
	PaymentMethod   string
	Notes           string
}

type Store struct {
	mu        sync.Mutex
	products  []*entity.Product
	byID      map[int64]*entity.Product
	customers map[int64]*Customer
	invoices  map[int64]*entity.Invoice
	nextID    int64
	now       func() time.Time
}

type Option func(*Store)

// WithClock fixes the time source used for invoice numbers and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(products []entity.Product, customers []Customer, opts ...Option) *Store {
	s := &Store{
		byID:      make(map[int64]*entity.Product, len(products)),
		customers: make(map[int64]*Customer, len(customers)),
		invoices:  make(map[int64]*entity.Invoice),
		nextID:    1,
		now:       time.Now,
	}
	for _, p := range products {
		s.products = append(s.products, &p)
		s.byID[p.ID] = &p
	}
	for _, c := range customers {
		s.customers[c.ID] = &c
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) ListProducts() []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out
}

// SearchProducts matches q case-insensitively against name or barcode.
func (s *Store) SearchProducts(q string) []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(q)
	var out []entity.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), needle) || strings.Contains(strings.ToLower(p.Barcode), needle) {
			out = append(out, *p)
			if len(out) == SearchLimit {
				break
			}
		}
	}
	return out
}

func (s *Store) Product(id int64) (entity.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return entity.Product{}, false
	}
	return *p, true
}

// CreateInvoice validates every line against current stock before touching
// anything, then issues the invoice and decrements stock in one step.
func (s *Store) CreateInvoice(req CreateInvoice) (*entity.Invoice, error) {
	if len(req.Items) == 0 {
		return nil, ErrNoItems
	}
	if !slices.Contains(entity.PaymentMethods(), entity.PaymentMethod(req.PaymentMethod)) {
		return nil, rejectf("Invalid payment method: %s", req.PaymentMethod)
	}
	if req.DiscountPercent.IsNegative() || req.DiscountPercent.GreaterThan(hundred) {
		return nil, rejectf("Invalid discount percent: %s", req.DiscountPercent)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var customer *Customer
	if req.CustomerID != nil && *req.CustomerID != "" {
		id, err := strconv.ParseInt(*req.CustomerID, 10, 64)
		if err != nil {
			return nil, rejectf("Invalid customer: %s", *req.CustomerID)
		}
		customer = s.customers[id]
	}

	requested := make(map[int64]int, len(req.Items))
	for _, it := range req.Items {
		p, ok := s.byID[it.ProductID]
		if !ok {
			return nil, productNotFound(it.ProductID)
		}
		if it.Quantity <= 0 {
			return nil, rejectf("Invalid quantity for %s", p.Name)
		}
		requested[it.ProductID] += it.Quantity
		if p.Quantity < requested[it.ProductID] {
			return nil, insufficientStock(p.Name)
		}
	}

	subtotal := decimal.Zero
	items := make([]entity.InvoiceItem, 0, len(req.Items))
	for _, it := range req.Items {
		p := s.byID[it.ProductID]
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		items = append(items, entity.InvoiceItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    it.Quantity,
			UnitPrice:   p.Price,
			TotalPrice:  lineTotal.Round(2),
		})
	}
	tax := subtotal.Mul(taxRate)
	discount := subtotal.Mul(req.DiscountPercent).Div(hundred)
	total := subtotal.Add(tax).Sub(discount)

	now := s.now().UTC()
	id := s.nextID
	s.nextID++

	inv := &entity.Invoice{
		ID:              id,
		InvoiceNumber:   fmt.Sprintf("INV-%s-%06d", now.Format("20060102"), id),
		CreatedAt:       now,
		CustomerName:    entity.WalkInCustomer,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   "paid",
		Items:           items,
		Subtotal:        subtotal.Round(2),
		TaxRate:         taxRatePercent,
		TaxAmount:       tax.Round(2),
		DiscountPercent: req.DiscountPercent,
		DiscountAmount:  discount.Round(2),
		TotalAmount:     total.Round(2),
		Notes:           req.Notes,
	}

	for _, it := range req.Items {
		s.byID[it.ProductID].Quantity -= it.Quantity
	}
	if customer != nil {
		inv.CustomerName = customer.Name
		inv.CustomerMobile = customer.Mobile
		customer.TotalPurchases = customer.TotalPurchases.Add(inv.TotalAmount)
		customer.LoyaltyPoints += inv.TotalAmount.Div(hundred).IntPart()
	}

	s.invoices[id] = inv
	return cloneInvoice(inv), nil
}

func (s *Store) GetInvoice(id int64) (*entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invoices[id]
	if !ok {
		return nil, ErrInvoiceNotFound
	}
	return cloneInvoice(inv), nil
}

func (s *Store) Customer(id int64) (Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[id]
	if !ok {
		return Customer{}, false
	}
	return *c, true
}

func cloneInvoice(inv *entity.Invoice) *entity.Invoice {
	out := *inv
	out.Items = slices.Clone(inv.Items)
	return &out
}
