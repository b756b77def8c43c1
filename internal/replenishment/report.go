package replenishment

import (
	"github.com/andresuchdata/autoorder/internal/domain"
	"github.com/shopspring/decimal"
)

// Evaluate runs the full pipeline over one catalog snapshot:
// filter, classify, select eligible, size orders, aggregate.
func Evaluate(catalog []domain.Product, criteria domain.FilterCriteria) domain.ReplenishmentReport {
	criteria = criteria.Normalize()
	filtered := Filter(catalog, criteria)

	products := make([]domain.ProductStatus, 0, len(filtered))
	byStatus := make(map[domain.StockStatus]int, len(domain.StockStatuses))
	for _, s := range domain.StockStatuses {
		byStatus[s] = 0
	}
	for _, p := range filtered {
		status := Classify(p)
		byStatus[status]++
		products = append(products, domain.ProductStatus{Product: p, Status: status})
	}

	eligible := SelectEligible(filtered)
	candidates := ComputeOrders(eligible)

	total := decimal.Zero
	for _, c := range candidates {
		total = total.Add(c.EstimatedCost)
	}

	return domain.ReplenishmentReport{
		Criteria:   criteria,
		Statuses:   ClassifyAll(filtered),
		Products:   products,
		Candidates: candidates,
		Categories: BuildCategorySummary(filtered),
		Suppliers:  BuildSupplierSummary(filtered, eligible),
		Totals: domain.ReportTotals{
			Products:            len(filtered),
			ByStatus:            byStatus,
			PendingOrders:       len(candidates),
			EstimatedOrderValue: total,
			BelowParRatio:       Ratio(byStatus[domain.StockStatusBelowPar], len(filtered)),
			PendingRatio:        Ratio(len(candidates), len(filtered)),
		},
	}
}

// Ratio returns part/total, or 0 when total is 0.
func Ratio(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}
