package httpx

import (
	"github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"
	"github.com/jcmexdev/grocery-pos/internal/stub-backend/store"
)

// Zone-less ISO 8601, as the production backend emits it.
const createdAtLayout = "2006-01-02T15:04:05.000000"

func mapCreateRequest(req CreateInvoiceRequest) store.CreateInvoice {
	items := make([]store.InvoiceItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, store.InvoiceItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return store.CreateInvoice{
		CustomerID:      req.CustomerID,
		Items:           items,
		DiscountPercent: req.DiscountPercent,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	}
}

func mapProducts(products []entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ProductResponse{
			ID:           p.ID,
			Name:         p.Name,
			Barcode:      p.Barcode,
			CategoryID:   p.CategoryID,
			CategoryName: optional(p.CategoryName),
			Price:        p.Price.InexactFloat64(),
			Quantity:     p.Quantity,
			Unit:         p.Unit,
			IsActive:     true,
		})
	}
	return out
}

func mapInvoiceToResponse(inv *entity.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, it := range inv.Items {
		items[i] = InvoiceItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.InexactFloat64(),
			TotalPrice:  it.TotalPrice.InexactFloat64(),
		}
	}
	return InvoiceResponse{
		ID:              inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		CustomerName:    inv.CustomerName,
		CustomerMobile:  optional(inv.CustomerMobile),
		Subtotal:        inv.Subtotal.InexactFloat64(),
		TaxAmount:       inv.TaxAmount.InexactFloat64(),
		TaxRate:         inv.TaxRate.InexactFloat64(),
		DiscountAmount:  inv.DiscountAmount.InexactFloat64(),
		DiscountPercent: inv.DiscountPercent.InexactFloat64(),
		TotalAmount:     inv.TotalAmount.InexactFloat64(),
		PaymentMethod:   inv.PaymentMethod,
		PaymentStatus:   inv.PaymentStatus,
		Notes:           optional(inv.Notes),
		CreatedAt:       inv.CreatedAt.UTC().Format(createdAtLayout),
		Items:           items,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
