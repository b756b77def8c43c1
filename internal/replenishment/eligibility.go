package replenishment

import "github.com/andresuchdata/autoorder/internal/domain"

// IsEligible reports whether a product should be auto-ordered now.
// Uses <= on the reorder point, unlike Classify which uses <.
func IsEligible(p domain.Product) bool {
	return p.AutoOrderEnabled && p.CurrentStock <= p.ReorderPoint
}

// SelectEligible keeps the auto-order eligible products in catalog order.
func SelectEligible(catalog []domain.Product) []domain.Product {
	eligible := make([]domain.Product, 0)
	for _, p := range catalog {
		if IsEligible(p) {
			eligible = append(eligible, p)
		}
	}
	return eligible
}
