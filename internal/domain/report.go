package domain

import "github.com/shopspring/decimal"

// CategorySummary counts products per stock status within one category
type CategorySummary struct {
	Category string `json:"category"`
	BelowPar int    `json:"below_par"`
	AtPar    int    `json:"at_par"`
	AbovePar int    `json:"above_par"`
}

// Total returns the number of products counted in the summary
func (s CategorySummary) Total() int {
	return s.BelowPar + s.AtPar + s.AbovePar
}

// SupplierSummary aggregates catalog and pending order figures for one supplier
type SupplierSummary struct {
	Supplier            string          `json:"supplier"`
	ProductCount        int             `json:"product_count"`
	AutoOrderEnabled    int             `json:"auto_order_enabled"`
	PendingOrders       int             `json:"pending_orders"`
	EstimatedOrderValue decimal.Decimal `json:"estimated_order_value"`
}

// ReportTotals holds the headline numbers of a report
type ReportTotals struct {
	Products            int                 `json:"products"`
	ByStatus            map[StockStatus]int `json:"by_status"`
	PendingOrders       int                 `json:"pending_orders"`
	EstimatedOrderValue decimal.Decimal     `json:"estimated_order_value"`
	BelowParRatio       float64             `json:"below_par_ratio"`
	PendingRatio        float64             `json:"pending_ratio"`
}

// ReplenishmentReport is the full evaluation of one catalog snapshot under one filter
type ReplenishmentReport struct {
	Criteria   FilterCriteria         `json:"criteria"`
	Statuses   map[string]StockStatus `json:"statuses"`
	Products   []ProductStatus        `json:"products"`
	Candidates []OrderCandidate       `json:"candidates"`
	Categories []CategorySummary      `json:"categories"`
	Suppliers  []SupplierSummary      `json:"suppliers"`
	Totals     ReportTotals           `json:"totals"`
}
