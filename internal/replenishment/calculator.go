package replenishment

import (
	"github.com/andresuchdata/autoorder/internal/domain"
	"github.com/shopspring/decimal"
)

// ComputeOrder sizes the order that brings an eligible product back to par.
//
// The quantity is not clamped: a product whose reorder point exceeds its par
// level can produce a zero or negative quantity and cost.
func ComputeOrder(p domain.Product) domain.OrderCandidate {
	// 1. Order quantity = par level - current stock
	qty := p.ParLevel - p.CurrentStock

	// 2. Estimated cost = order quantity × unit price
	cost := decimal.NewFromFloat(qty).Mul(p.UnitPrice)

	return domain.OrderCandidate{
		Product:       p,
		OrderQuantity: qty,
		EstimatedCost: cost,
	}
}

// ComputeOrders sizes an order for each product, preserving order.
func ComputeOrders(eligible []domain.Product) []domain.OrderCandidate {
	candidates := make([]domain.OrderCandidate, 0, len(eligible))
	for _, p := range eligible {
		candidates = append(candidates, ComputeOrder(p))
	}
	return candidates
}
