package store

import (
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"
)

func category(id int64) *int64 { return &id }

// SeedProducts is a small grocery catalog for local runs.
func SeedProducts() []entity.Product {
	price := decimal.RequireFromString
	return []entity.Product{
		{ID: 1, Name: "Fresh Milk 1L", Barcode: "GRO8901000001", CategoryID: category(1), CategoryName: "Dairy", Price: price("220"), Quantity: 40, Unit: "piece"},
		{ID: 2, Name: "Yogurt 500g", Barcode: "GRO8901000002", CategoryID: category(1), CategoryName: "Dairy", Price: price("180"), Quantity: 25, Unit: "piece"},
		{ID: 3, Name: "Cheddar Cheese 200g", Barcode: "GRO8901000003", CategoryID: category(1), CategoryName: "Dairy", Price: price("650"), Quantity: 8, Unit: "piece"},
		{ID: 4, Name: "Basmati Rice 5kg", Barcode: "GRO8902000001", CategoryID: category(2), CategoryName: "Grains", Price: price("1850"), Quantity: 15, Unit: "bag"},
		{ID: 5, Name: "Whole Wheat Flour 10kg", Barcode: "GRO8902000002", CategoryID: category(2), CategoryName: "Grains", Price: price("1420"), Quantity: 12, Unit: "bag"},
		{ID: 6, Name: "Red Lentils 1kg", Barcode: "GRO8902000003", CategoryID: category(2), CategoryName: "Grains", Price: price("340.50"), Quantity: 30, Unit: "kg"},
		{ID: 7, Name: "Bananas (dozen)", Barcode: "GRO8903000001", CategoryID: category(3), CategoryName: "Produce", Price: price("160"), Quantity: 20, Unit: "dozen"},
		{ID: 8, Name: "Tomatoes 1kg", Barcode: "GRO8903000002", CategoryID: category(3), CategoryName: "Produce", Price: price("120"), Quantity: 0, Unit: "kg"},
		{ID: 9, Name: "Green Tea 25 bags", Barcode: "GRO8904000001", CategoryID: category(4), CategoryName: "Beverages", Price: price("275"), Quantity: 18, Unit: "box"},
		{ID: 10, Name: "Mineral Water 1.5L", Barcode: "GRO8904000002", CategoryID: category(4), CategoryName: "Beverages", Price: price("90"), Quantity: 60, Unit: "piece"},
		{ID: 11, Name: "Cooking Oil 5L", Barcode: "GRO8905000001", Price: price("2450"), Quantity: 6, Unit: "piece"},
	}
}

func SeedCustomers() []Customer {
	return []Customer{
		{ID: 1, Name: "Ayesha Khan", Mobile: "0300-1234567"},
		{ID: 2, Name: "Bilal Ahmed", Mobile: "0321-7654321"},
	}
}
