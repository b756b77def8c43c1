// Package replenishment holds the automated-orders decision logic: stock status
// classification, reorder eligibility, order sizing, filtering and aggregation.
//
// Every function here is pure. Inputs are read-only catalog snapshots and the
// same snapshot always yields the same output, so callers may evaluate
// concurrently without coordination.
package replenishment

import "github.com/andresuchdata/autoorder/internal/domain"

// Classify maps a product to its stock status.
// A product sitting exactly on its reorder point is AtPar.
func Classify(p domain.Product) domain.StockStatus {
	switch {
	case p.CurrentStock < p.ReorderPoint:
		return domain.StockStatusBelowPar
	case p.CurrentStock < p.ParLevel:
		return domain.StockStatusAtPar
	default:
		return domain.StockStatusAbovePar
	}
}

// ClassifyAll returns the status of every product keyed by product ID.
// Duplicate IDs keep the status of the last occurrence.
func ClassifyAll(catalog []domain.Product) map[string]domain.StockStatus {
	statuses := make(map[string]domain.StockStatus, len(catalog))
	for _, p := range catalog {
		statuses[p.ID] = Classify(p)
	}
	return statuses
}
