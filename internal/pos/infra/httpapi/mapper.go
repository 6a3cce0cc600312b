package httpapi

import (
	"fmt"
	"time"

	"github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"
)

func mapRequest(req entity.CheckoutRequest) createInvoiceRequest {
	items := make([]createInvoiceItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, createInvoiceItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return createInvoiceRequest{
		CustomerID:      req.CustomerID,
		Items:           items,
		DiscountPercent: req.DiscountPercent,
		PaymentMethod:   string(req.PaymentMethod),
	}
}

func mapProduct(p productDTO) entity.Product {
	return entity.Product{
		ID:           p.ID,
		Name:         p.Name,
		Barcode:      p.Barcode,
		CategoryID:   p.CategoryID,
		CategoryName: deref(p.CategoryName),
		Price:        p.Price,
		Quantity:     p.Quantity,
		Unit:         p.Unit,
	}
}

func mapProducts(in []productDTO) []entity.Product {
	out := make([]entity.Product, 0, len(in))
	for _, p := range in {
		out = append(out, mapProduct(p))
	}
	return out
}

func mapInvoice(dto *invoiceDTO) (*entity.Invoice, error) {
	inv := &entity.Invoice{
		ID:              dto.ID,
		InvoiceNumber:   dto.InvoiceNumber,
		CustomerName:    deref(dto.CustomerName),
		CustomerMobile:  deref(dto.CustomerMobile),
		PaymentMethod:   dto.PaymentMethod,
		PaymentStatus:   dto.PaymentStatus,
		Items:           make([]entity.InvoiceItem, 0, len(dto.Items)),
		Subtotal:        dto.Subtotal,
		TaxRate:         dto.TaxRate,
		TaxAmount:       dto.TaxAmount,
		DiscountPercent: dto.DiscountPercent,
		DiscountAmount:  dto.DiscountAmount,
		TotalAmount:     dto.TotalAmount,
		Notes:           deref(dto.Notes),
	}
	if dto.CreatedAt != nil && *dto.CreatedAt != "" {
		t, err := parseTimestamp(*dto.CreatedAt)
		if err != nil {
			return nil, err
		}
		inv.CreatedAt = t
	}
	for _, it := range dto.Items {
		inv.Items = append(inv.Items, entity.InvoiceItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
		})
	}
	return inv, nil
}

// Timestamps arrive either as RFC 3339 or as a zone-less ISO 8601 local time,
// which is read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("httpapi: parse timestamp %q", s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
