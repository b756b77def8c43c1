package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andresuchdata/autoorder/internal/domain"
)

// SampleProducts returns the demo catalog used when no real source is configured.
func SampleProducts() []domain.Product {
	day := func(s string) *time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return &t
	}
	price := decimal.RequireFromString

	return []domain.Product{
		{ID: "SKU-1001", Name: "Copy Paper, Letter, 500 Sheets", Category: "Office Supplies", Supplier: "Staples",
			CurrentStock: 15, ParLevel: 50, ReorderPoint: 20, UnitPrice: price("4.99"), UnitOfMeasure: "ream",
			AutoOrderEnabled: true, LastOrderDate: day("2024-01-10")},
		{ID: "SKU-1002", Name: "Ballpoint Pens, Blue, 12 Pack", Category: "Office Supplies", Supplier: "Staples",
			CurrentStock: 45, ParLevel: 100, ReorderPoint: 30, UnitPrice: price("0.99"), UnitOfMeasure: "pack",
			AutoOrderEnabled: true, LastOrderDate: day("2024-01-05")},
		{ID: "SKU-1003", Name: "Toner Cartridge, Black", Category: "Office Supplies", Supplier: "Office Depot",
			CurrentStock: 2, ParLevel: 10, ReorderPoint: 3, UnitPrice: price("79.99"), UnitOfMeasure: "each",
			AutoOrderEnabled: true, LastOrderDate: day("2023-12-20")},
		{ID: "SKU-2001", Name: "Nitrile Exam Gloves, Medium", Category: "Medical Supplies", Supplier: "McKesson",
			CurrentStock: 8, ParLevel: 40, ReorderPoint: 10, UnitPrice: price("12.50"), UnitOfMeasure: "box",
			AutoOrderEnabled: true, LastOrderDate: day("2024-01-02")},
		{ID: "SKU-2002", Name: "Alcohol Prep Pads", Category: "Medical Supplies", Supplier: "McKesson",
			CurrentStock: 120, ParLevel: 100, ReorderPoint: 40, UnitPrice: price("3.25"), UnitOfMeasure: "box",
			AutoOrderEnabled: true, LastOrderDate: day("2023-12-28")},
		{ID: "SKU-2003", Name: "Disposable Face Masks", Category: "Medical Supplies", Supplier: "Henry Schein",
			CurrentStock: 25, ParLevel: 60, ReorderPoint: 25, UnitPrice: price("8.75"), UnitOfMeasure: "box",
			AutoOrderEnabled: true, LastOrderDate: day("2024-01-08")},
		{ID: "SKU-2004", Name: "Sterile Gauze Pads 4x4", Category: "Medical Supplies", Supplier: "Henry Schein",
			CurrentStock: 5, ParLevel: 30, ReorderPoint: 10, UnitPrice: price("6.40"), UnitOfMeasure: "pack",
			AutoOrderEnabled: false, LastOrderDate: day("2023-11-30")},
		{ID: "SKU-3001", Name: "Hand Sanitizer, 8 oz", Category: "Cleaning Supplies", Supplier: "Uline",
			CurrentStock: 18, ParLevel: 48, ReorderPoint: 12, UnitPrice: price("2.89"), UnitOfMeasure: "bottle",
			AutoOrderEnabled: true, LastOrderDate: day("2024-01-03")},
		{ID: "SKU-3002", Name: "Disinfecting Wipes", Category: "Cleaning Supplies", Supplier: "Uline",
			CurrentStock: 6, ParLevel: 36, ReorderPoint: 12, UnitPrice: price("5.49"), UnitOfMeasure: "canister",
			AutoOrderEnabled: true, LastOrderDate: day("2023-12-15")},
		{ID: "SKU-4001", Name: "Printer Labels, 30 per Sheet", Category: "Office Supplies", Supplier: "Office Depot",
			CurrentStock: 60, ParLevel: 50, ReorderPoint: 15, UnitPrice: price("24.99"), UnitOfMeasure: "box",
			AutoOrderEnabled: false, LastOrderDate: day("2023-10-12")},
	}
}
