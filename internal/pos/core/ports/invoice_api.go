package ports

import (
	"context"

	"github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"
)

// InvoiceAPI is the invoicing backend as seen by the checkout client.
type InvoiceAPI interface {
	CreateInvoice(ctx context.Context, idempotencyKey string, req entity.CheckoutRequest) (*entity.Invoice, error)
	GetInvoice(ctx context.Context, id int64) (*entity.Invoice, error)
}

type ProductSearcher interface {
	SearchProducts(ctx context.Context, query string) ([]entity.Product, error)
}

type ProductLister interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
}
