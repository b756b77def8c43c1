// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllFilterValue disables filtering on a category or supplier dimension
const AllFilterValue = "all"

// Product represents one SKU in the replenishment catalog
type Product struct {
	ID               string          `json:"id" db:"id"`
	Name             string          `json:"name" db:"name"`
	Category         string          `json:"category" db:"category"`
	Supplier         string          `json:"supplier" db:"supplier"`
	CurrentStock     float64         `json:"current_stock" db:"current_stock"`
	ParLevel         float64         `json:"par_level" db:"par_level"`
	ReorderPoint     float64         `json:"reorder_point" db:"reorder_point"`
	UnitPrice        decimal.Decimal `json:"unit_price" db:"unit_price"`
	UnitOfMeasure    string          `json:"unit_of_measure" db:"unit_of_measure"`
	AutoOrderEnabled bool            `json:"auto_order_enabled" db:"auto_order_enabled"`
	LastOrderDate    *time.Time      `json:"last_order_date,omitempty" db:"last_order_date"`
}

// OrderCandidate is the order implied by an auto-order eligible product
type OrderCandidate struct {
	Product       `json:"product"`
	OrderQuantity float64         `json:"order_quantity"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
}

// ProductStatus pairs a product with its derived stock status
type ProductStatus struct {
	Product
	Status StockStatus `json:"status"`
}

// FilterCriteria narrows the catalog before evaluation.
// Empty or "all" category/supplier values disable that dimension.
type FilterCriteria struct {
	Category   string `json:"category"`
	Supplier   string `json:"supplier"`
	SearchText string `json:"search_text"`
}

// Normalize fills defaults for unset dimensions
func (c FilterCriteria) Normalize() FilterCriteria {
	if c.Category == "" {
		c.Category = AllFilterValue
	}
	if c.Supplier == "" {
		c.Supplier = AllFilterValue
	}
	return c
}

// IsEmpty reports whether the criteria would keep every product
func (c FilterCriteria) IsEmpty() bool {
	n := c.Normalize()
	return n.Category == AllFilterValue && n.Supplier == AllFilterValue && n.SearchText == ""
}

// FilterOptions lists the values a caller can choose from when filtering
type FilterOptions struct {
	Categories []string `json:"categories"`
	Suppliers  []string `json:"suppliers"`
}
