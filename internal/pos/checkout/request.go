package checkout

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/grocery-pos/internal/pos/cart"
	"github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"
)

// Snapshot is the session state a submission is built from. Version is the
// cart store version the lines were read at.
type Snapshot struct {
	Lines           []entity.CartLine
	Version         uint64
	CustomerID      *string
	DiscountPercent decimal.Decimal
	PaymentMethod   entity.PaymentMethod
}

// BuildRequest turns a snapshot into the request sent to the backend. The
// discount is clamped to [0,100].
func BuildRequest(s Snapshot) (entity.CheckoutRequest, error) {
	if len(s.Lines) == 0 {
		return entity.CheckoutRequest{}, ErrEmptyCart
	}
	method, err := entity.ParsePaymentMethod(string(s.PaymentMethod))
	if err != nil {
		return entity.CheckoutRequest{}, fmt.Errorf("%w: %w", ErrInvalidPaymentMethod, err)
	}

	items := make([]entity.CheckoutItem, 0, len(s.Lines))
	for _, l := range s.Lines {
		items = append(items, entity.CheckoutItem{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	var customer *string
	if s.CustomerID != nil && *s.CustomerID != "" {
		id := *s.CustomerID
		customer = &id
	}

	return entity.CheckoutRequest{
		CustomerID:      customer,
		Items:           items,
		DiscountPercent: cart.ClampDiscount(s.DiscountPercent),
		PaymentMethod:   method,
	}, nil
}

type journalItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type journalPayload struct {
	CustomerID      *string         `json:"customer_id"`
	Items           []journalItem   `json:"items"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	PaymentMethod   string          `json:"payment_method"`
}

func marshalPayload(req entity.CheckoutRequest) string {
	p := journalPayload{
		CustomerID:      req.CustomerID,
		Items:           make([]journalItem, 0, len(req.Items)),
		DiscountPercent: req.DiscountPercent,
		PaymentMethod:   string(req.PaymentMethod),
	}
	for _, it := range req.Items {
		p.Items = append(p.Items, journalItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	b, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	return string(b)
}
