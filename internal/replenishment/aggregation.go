package replenishment

import (
	"github.com/andresuchdata/autoorder/internal/domain"
	"github.com/shopspring/decimal"
)

// BuildCategorySummary counts products per stock status for each category.
// Categories appear in the order they are first seen in the catalog.
func BuildCategorySummary(catalog []domain.Product) []domain.CategorySummary {
	summaries := make([]domain.CategorySummary, 0)
	index := make(map[string]int)

	for _, p := range catalog {
		i, ok := index[p.Category]
		if !ok {
			i = len(summaries)
			index[p.Category] = i
			summaries = append(summaries, domain.CategorySummary{Category: p.Category})
		}

		switch Classify(p) {
		case domain.StockStatusBelowPar:
			summaries[i].BelowPar++
		case domain.StockStatusAtPar:
			summaries[i].AtPar++
		default:
			summaries[i].AbovePar++
		}
	}

	return summaries
}

// BuildSupplierSummary aggregates product counts from the catalog and pending
// orders from the eligible set, keyed by the exact supplier string.
//
// Suppliers appear in catalog first-seen order. A supplier present only in the
// eligible set is appended after them.
func BuildSupplierSummary(catalog, eligible []domain.Product) []domain.SupplierSummary {
	summaries := make([]domain.SupplierSummary, 0)
	index := make(map[string]int)

	lookup := func(supplier string) int {
		i, ok := index[supplier]
		if !ok {
			i = len(summaries)
			index[supplier] = i
			summaries = append(summaries, domain.SupplierSummary{
				Supplier:            supplier,
				EstimatedOrderValue: decimal.Zero,
			})
		}
		return i
	}

	for _, p := range catalog {
		i := lookup(p.Supplier)
		summaries[i].ProductCount++
		if p.AutoOrderEnabled {
			summaries[i].AutoOrderEnabled++
		}
	}

	for _, p := range eligible {
		i := lookup(p.Supplier)
		order := ComputeOrder(p)
		summaries[i].PendingOrders++
		summaries[i].EstimatedOrderValue = summaries[i].EstimatedOrderValue.Add(order.EstimatedCost)
	}

	return summaries
}
