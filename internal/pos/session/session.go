// Package session owns one cashier's terminal state: the cart, the discount,
// customer and payment inputs, the product filter and the checkout control.
//
// Every event goes through the session's lock, so the cart and its inputs
// change as if on a single event thread even though debounce timers fire on
// their own goroutines. A checkout's network round trip runs without the lock
// and re-acquires it to commit.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/grocery-pos/internal/pos/cart"
	"github.com/jcmexdev/grocery-pos/internal/pos/catalog"
	"github.com/jcmexdev/grocery-pos/internal/pos/checkout"
	"github.com/jcmexdev/grocery-pos/internal/pos/checkoutlog"
	"github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"
	"github.com/jcmexdev/grocery-pos/internal/pos/core/ports"
)

// DefaultDebounce is the quiet period before a typed filter is applied.
const DefaultDebounce = 300 * time.Millisecond

// Deps are the collaborators of a Session. Journal may be nil.
type Deps struct {
	Invoices ports.InvoiceAPI
	Products ports.ProductLister
	Search   ports.ProductSearcher
	Renderer ports.Renderer
	Receipts ports.ReceiptPresenter
	Notifier ports.Notifier
	Journal  checkoutlog.Repository
}

type Option func(*Session)

func WithDebounce(d time.Duration) Option {
	return func(s *Session) { s.debounce = d }
}

// WithPaymentMethod sets the method selected when the session starts.
func WithPaymentMethod(m entity.PaymentMethod) Option {
	return func(s *Session) { s.payment = m }
}

// WithCatalogView registers fn to receive the visible products after every
// filter change. fn runs with the session locked and must not call back in.
func WithCatalogView(fn func([]entity.Product)) Option {
	return func(s *Session) { s.onFilter = fn }
}

// WithCheckoutOptions passes extra options to the checkout client.
func WithCheckoutOptions(opts ...checkout.Option) Option {
	return func(s *Session) { s.checkoutOpts = append(s.checkoutOpts, opts...) }
}

type Session struct {
	mu sync.Mutex

	store     *cart.Store
	catalog   *catalog.Catalog
	filter    *catalog.Filter
	debouncer *catalog.Debouncer
	checkout  *checkout.Client

	invoices ports.InvoiceAPI
	products ports.ProductLister
	search   ports.ProductSearcher
	renderer ports.Renderer
	receipts ports.ReceiptPresenter
	notifier ports.Notifier

	discount    decimal.Decimal
	customerID  *string
	payment     entity.PaymentMethod
	searchInput string
	submitting  bool
	lastInvoice *entity.Invoice

	debounce     time.Duration
	onFilter     func([]entity.Product)
	checkoutOpts []checkout.Option
}

func New(deps Deps, opts ...Option) *Session {
	s := &Session{
		store:    cart.NewStore(),
		catalog:  catalog.New(nil),
		invoices: deps.Invoices,
		products: deps.Products,
		search:   deps.Search,
		renderer: deps.Renderer,
		receipts: deps.Receipts,
		notifier: deps.Notifier,
		discount: decimal.Zero,
		payment:  entity.PaymentCash,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.filter = catalog.NewFilter(s.catalog)
	s.debouncer = catalog.NewDebouncer(s.debounce)

	copts := []checkout.Option{checkout.WithStateHook(s.onCheckoutState)}
	if deps.Journal != nil {
		copts = append(copts, checkout.WithJournal(deps.Journal))
	}
	s.checkout = checkout.NewClient(deps.Invoices, append(copts, s.checkoutOpts...)...)

	s.store.Subscribe(func(lines []entity.CartLine) { s.renderLocked(lines) })
	return s
}

// Close cancels a pending filter evaluation.
func (s *Session) Close() {
	s.debouncer.Stop()
}

// ReloadCatalog replaces the catalog with the backend's current listing and
// clears all filters.
func (s *Session) ReloadCatalog(ctx context.Context) error {
	c, err := catalog.Load(ctx, s.products)
	if err != nil {
		return fmt.Errorf("session: reload catalog: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = c
	s.filter = catalog.NewFilter(c)
	s.showFilterLocked()
	return nil
}

// Render redraws the cart panel.
func (s *Session) Render() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderLocked(s.store.Lines())
}

// View returns what the cart panel currently shows.
func (s *Session) View() entity.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked(s.store.Lines())
}

func (s *Session) Lines() []entity.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Lines()
}

func (s *Session) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Categories()
}

// VisibleProducts is the catalog after the current filters.
func (s *Session) VisibleProducts() []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter.Visible()
}

func (s *Session) SearchInput() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchInput
}

// LastInvoice is the most recent invoice issued or reprinted in this session.
func (s *Session) LastInvoice() *entity.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastInvoice
}

func (s *Session) CheckoutState() checkout.State {
	return s.checkout.State()
}

// AddProduct puts one unit of p in the cart.
func (s *Session) AddProduct(p entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(p)
}

// AddByID adds a catalog product.
func (s *Session) AddByID(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.catalog.Get(id)
	if !ok {
		s.notifier.Notify(entity.Warning(msgUnknownProduct))
		return fmt.Errorf("session: add product %d: not in catalog", id)
	}
	return s.addLocked(p)
}

func (s *Session) addLocked(p entity.Product) error {
	if err := s.store.Add(p); err != nil {
		s.notifier.Notify(cartNotice(err))
		return err
	}
	s.notifier.Notify(entity.Success(p.Name + " added to cart"))
	return nil
}

func (s *Session) Remove(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Remove(productID)
}

// Adjust changes a line's quantity by delta; dropping to zero removes it.
func (s *Session) Adjust(productID int64, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.AdjustQuantity(productID, delta); err != nil {
		s.notifier.Notify(cartNotice(err))
		return err
	}
	return nil
}

// ClearCart empties the cart after confirm agrees. An empty cart is left
// alone without asking; a nil confirm clears unconditionally. confirm runs
// without the session lock held.
func (s *Session) ClearCart(confirm func() bool) bool {
	s.mu.Lock()
	empty := s.store.Len() == 0
	s.mu.Unlock()
	if empty {
		return false
	}
	if confirm != nil && !confirm() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store.Len() == 0 {
		return false
	}
	s.store.Clear()
	return true
}

// SetDiscount parses the discount input; anything unparsable counts as 0 and
// the value is clamped to [0,100].
func (s *Session) SetDiscount(input string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discount = cart.ParseDiscount(input)
	s.renderLocked(s.store.Lines())
	return s.discount
}

// SetCustomer selects a customer; an empty id means walk-in.
func (s *Session) SetCustomer(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id = strings.TrimSpace(id)
	if id == "" {
		s.customerID = nil
	} else {
		s.customerID = &id
	}
	s.renderLocked(s.store.Lines())
}

func (s *Session) SetPaymentMethod(method string) error {
	m, err := entity.ParsePaymentMethod(strings.ToLower(strings.TrimSpace(method)))
	if err != nil {
		s.notifier.Notify(entity.Warning(msgInvalidPayment))
		return fmt.Errorf("session: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payment = m
	s.renderLocked(s.store.Lines())
	return nil
}

// TypeSearch records the search input and applies it as a text filter once
// typing pauses for the debounce period.
func (s *Session) TypeSearch(input string) {
	s.mu.Lock()
	s.searchInput = input
	s.mu.Unlock()

	query := strings.ToLower(input)
	s.debouncer.Trigger(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.filter.ApplyText(query)
		s.showFilterLocked()
	})
}

// SelectCategory filters the catalog to one category, or to everything for
// catalog.AllCategories.
func (s *Session) SelectCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if category == "" {
		category = catalog.AllCategories
	}
	s.filter.ApplyCategory(category)
	s.showFilterLocked()
}

// SearchAndAdd looks query up on the backend. A single match goes straight
// into the cart, several matches filter the catalog, none is reported.
// Search failures are logged by the caller and not shown as a notice.
func (s *Session) SearchAndAdd(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	products, err := s.search.SearchProducts(ctx, query)
	if err != nil {
		return fmt.Errorf("session: search %q: %w", query, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch len(products) {
	case 0:
		s.notifier.Notify(entity.Failure(msgNotFound))
	case 1:
		// The search input clears even when the add is rejected.
		_ = s.addLocked(products[0])
		s.searchInput = ""
	default:
		s.filter.ApplyText(strings.ToLower(query))
		s.showFilterLocked()
	}
	return nil
}

// Checkout submits the cart. On success the receipt is shown and the cart,
// discount and customer are reset; on any failure they are left as they were.
func (s *Session) Checkout(ctx context.Context) (*entity.Invoice, error) {
	s.mu.Lock()
	snap := checkout.Snapshot{
		Lines:           s.store.Lines(),
		Version:         s.store.Version(),
		CustomerID:      s.customerID,
		DiscountPercent: s.discount,
		PaymentMethod:   s.payment,
	}
	s.mu.Unlock()

	inv, err := s.checkout.Submit(ctx, snap, func(inv *entity.Invoice) { s.commit(inv, snap) })
	if err != nil {
		s.notifier.Notify(checkoutNotice(ctx, err))
		return nil, err
	}
	return inv, nil
}

// commit settles the invoiced sale. Lines changed while the request was in
// flight were not invoiced and stay in the cart.
func (s *Session) commit(inv *entity.Invoice, snap checkout.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastInvoice = inv
	s.receipts.ShowReceipt(inv)
	s.discount = decimal.Zero
	s.customerID = nil
	if s.store.Version() == snap.Version {
		s.store.Clear()
		return
	}
	s.store.Deduct(snap.Lines)
	if s.store.Len() > 0 {
		s.notifier.Notify(entity.Warning(msgNotInvoiced))
	}
}

// Reprint fetches an issued invoice and shows its receipt again.
func (s *Session) Reprint(ctx context.Context, id int64) (*entity.Invoice, error) {
	inv, err := s.invoices.GetInvoice(ctx, id)
	if err != nil {
		s.notifier.Notify(entity.Failure(fmt.Sprintf("Invoice %d not found", id)))
		return nil, fmt.Errorf("session: reprint %d: %w", id, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastInvoice = inv
	s.receipts.ShowReceipt(inv)
	return inv, nil
}

func (s *Session) onCheckoutState(st checkout.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = st == checkout.Submitting
	s.renderLocked(s.store.Lines())
}

func (s *Session) viewLocked(lines []entity.CartLine) entity.CartView {
	return entity.CartView{
		Lines:           lines,
		Totals:          cart.ComputeTotals(lines, s.discount),
		DiscountPercent: s.discount,
		CustomerID:      s.customerID,
		PaymentMethod:   s.payment,
		Submitting:      s.submitting,
	}
}

// renderLocked draws lines and their totals in one step.
func (s *Session) renderLocked(lines []entity.CartLine) {
	s.renderer.Render(s.viewLocked(lines))
}

func (s *Session) showFilterLocked() {
	if s.onFilter != nil {
		s.onFilter(s.filter.Visible())
	}
}
